package repository

import (
	"context"

	"coverforge/internal/models"

	"gorm.io/gorm"
)

// LetterLogRepository defines persistence operations for the append-only
// generation log. Entries are never updated or deleted individually.
type LetterLogRepository interface {
	Append(ctx context.Context, entry *models.CoverLetterLog) error
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.CoverLetterLog, int64, error)
	AllByUser(ctx context.Context, userID uint) ([]models.CoverLetterLog, error)
}

type letterLogRepository struct {
	db *gorm.DB
}

// NewLetterLogRepository returns a new LetterLogRepository implementation.
func NewLetterLogRepository(db *gorm.DB) LetterLogRepository {
	return &letterLogRepository{db: db}
}

func (r *letterLogRepository) Append(ctx context.Context, entry *models.CoverLetterLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewPersistenceError(err)
	}
	return nil
}

// ListByUser returns one page of the user's log, newest first, plus the total
// count. Ordering tie-breaks on id so pagination stays deterministic when
// timestamps collide.
func (r *letterLogRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.CoverLetterLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.CoverLetterLog{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var entries []models.CoverLetterLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entries).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return entries, total, nil
}

func (r *letterLogRepository) AllByUser(ctx context.Context, userID uint) ([]models.CoverLetterLog, error) {
	var entries []models.CoverLetterLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

package models

import "time"

// CoverLetterLog is an append-only audit record of one generation request.
// Rows are never updated or deleted while their owner exists; the foreign key
// cascades when a user row is hard-deleted.
type CoverLetterLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	JobTitle     string    `gorm:"size:100;not null" json:"job_title"`
	EmployerName string    `gorm:"size:100;not null" json:"employer_name"`
	UserID       uint      `gorm:"not null;index" json:"-"`
}

package service

import (
	"context"
	"log/slog"
	"time"

	"coverforge/internal/ai"
	"coverforge/internal/cache"
	"coverforge/internal/middleware"
	"coverforge/internal/models"
	"coverforge/internal/repository"
	"coverforge/internal/secrets"
)

// LetterService drives the generation workflow: prompt assembly, the provider
// call, the audit log append, and the per-session result slot.
type LetterService struct {
	users    repository.UserRepository
	logs     repository.LetterLogRepository
	letters  *cache.LetterStore
	provider ai.Generator
	box      *secrets.Box
	// fallbackKey is the optional shared provider credential used when a user
	// has not stored their own.
	fallbackKey string
}

// NewLetterService returns a new LetterService.
func NewLetterService(
	users repository.UserRepository,
	logs repository.LetterLogRepository,
	letters *cache.LetterStore,
	provider ai.Generator,
	box *secrets.Box,
	fallbackKey string,
) *LetterService {
	return &LetterService{
		users:       users,
		logs:        logs,
		letters:     letters,
		provider:    provider,
		box:         box,
		fallbackKey: fallbackKey,
	}
}

// GenerateInput carries the job-context fields for one generation request.
type GenerateInput struct {
	JobTitle               string
	JobDescription         string
	EmployerName           string
	EmployerDescription    string
	AdditionalInstructions string
}

// Generate runs the full workflow for one request. On success the letter is
// held in the session slot and a log row is appended. If the append fails the
// letter stays downloadable from the slot and the persistence error is
// returned for the caller to surface.
func (s *LetterService) Generate(ctx context.Context, userID uint, sessionID string, in GenerateInput) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	apiKey, err := s.providerKey(user)
	if err != nil {
		return "", err
	}

	prompt, err := ai.RenderPrompt(ai.PromptData{
		Resume:                 user.Resume,
		JobTitle:               in.JobTitle,
		JobDescription:         in.JobDescription,
		EmployerName:           in.EmployerName,
		EmployerDescription:    in.EmployerDescription,
		AdditionalInstructions: in.AdditionalInstructions,
	})
	if err != nil {
		return "", models.NewInternalError(err)
	}

	text, err := s.provider.Generate(ctx, prompt, apiKey)
	if err != nil {
		return "", models.NewProviderError(err)
	}

	if err := s.letters.Put(ctx, sessionID, cache.Letter{
		Text:         text,
		JobTitle:     in.JobTitle,
		EmployerName: in.EmployerName,
		GeneratedAt:  time.Now(),
	}); err != nil {
		// The letter is still returned in the response body; only a later
		// download is affected.
		middleware.Logger.WarnContext(ctx, "failed to store letter in session slot",
			slog.String("error", err.Error()))
	}

	if err := s.logs.Append(ctx, &models.CoverLetterLog{
		JobTitle:     in.JobTitle,
		EmployerName: in.EmployerName,
		UserID:       userID,
	}); err != nil {
		return "", err
	}

	return text, nil
}

// providerKey resolves the credential to present to the provider: the user's
// sealed credential when set, the shared fallback otherwise.
func (s *LetterService) providerKey(user *models.User) (string, error) {
	if user.HasAPICredential() {
		key, err := s.box.Open(user.APICredential)
		if err != nil {
			// The stored ciphertext no longer opens (e.g. secret rotation);
			// the user has to re-enter it.
			notConfigured := models.NewNotConfiguredError()
			notConfigured.Err = err
			return "", notConfigured
		}
		return key, nil
	}
	if s.fallbackKey != "" {
		return s.fallbackKey, nil
	}
	return "", models.NewNotConfiguredError()
}

// IsConfigured reports whether a generation for this user could proceed.
func (s *LetterService) IsConfigured(user *models.User) bool {
	return user.HasAPICredential() || s.fallbackKey != ""
}

// Held returns the session's letter, or a user-facing error when none exists.
func (s *LetterService) Held(ctx context.Context, sessionID string) (*cache.Letter, error) {
	letter, err := s.letters.Get(ctx, sessionID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if letter == nil {
		return nil, models.NewValidationError("Please generate a cover letter before downloading.")
	}
	return letter, nil
}

// Clear drops the session's held letter. Stored state is untouched.
func (s *LetterService) Clear(ctx context.Context, sessionID string) error {
	if err := s.letters.Delete(ctx, sessionID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

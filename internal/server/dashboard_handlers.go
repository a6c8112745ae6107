package server

import (
	"fmt"
	"strings"
	"time"

	"coverforge/internal/models"
	"coverforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

const logPageSize = 10

// GetDashboard handles GET /api/dashboard?page=N. It returns the profile,
// resume, credential status, and one page of the generation log.
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	entries, total, err := s.logRepo.ListByUser(c.Context(), userID, page, logPageSize)
	if err != nil {
		return respondAppError(c, err)
	}

	totalPages := int((total + logPageSize - 1) / logPageSize)

	return c.JSON(fiber.Map{
		"user":               user,
		"api_credential_set": user.HasAPICredential(),
		"logs": fiber.Map{
			"items":       entries,
			"total":       total,
			"page":        page,
			"page_size":   logPageSize,
			"total_pages": totalPages,
		},
	})
}

// UpdateDashboard handles PUT /api/dashboard. Resume and API credential are
// both optional; absent fields are untouched.
func (s *Server) UpdateDashboard(c *fiber.Ctx) error {
	var req struct {
		Resume        *string `json:"resume"`
		APICredential *string `json:"api_credential"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.accounts.UpdateDashboard(c.Context(), currentUserID(c), service.UpdateDashboardInput{
		Resume:        req.Resume,
		APICredential: req.APICredential,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":               user,
		"api_credential_set": user.HasAPICredential(),
	})
}

// ChangePassword handles PUT /api/dashboard/password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.accounts.ChangePassword(c.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password updated",
	})
}

// DeleteAccount handles DELETE /api/dashboard. Log rows cascade with the user.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.accounts.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondAppError(c, err)
	}

	// The session token stays technically valid until expiry; blacklist it so
	// the deleted account cannot keep acting.
	sessionID := currentSessionID(c)
	if sessionID != "" && s.redis != nil {
		s.redis.Set(c.Context(), "blacklist:"+sessionID, "1", sessionTTL)
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted",
	})
}

// ExportLogs handles GET /api/dashboard/logs/export. The full log is streamed
// as a tab-separated text attachment.
func (s *Server) ExportLogs(c *fiber.Ctx) error {
	entries, err := s.logRepo.AllByUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.JobTitle, e.EmployerName))
	}

	filename := fmt.Sprintf("cover_letter_log_%s.txt", time.Now().Format("20060102150405"))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.SendString(strings.Join(lines, "\n"))
}

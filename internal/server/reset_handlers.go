package server

import (
	"log/slog"

	"coverforge/internal/middleware"
	"coverforge/internal/models"

	"github.com/gofiber/fiber/v2"
)

// resetRequestMessage is returned whether or not the e-mail exists, so the
// endpoint cannot be used to enumerate accounts.
const resetRequestMessage = "If that e-mail address is registered, instructions to reset your password have been sent."

// RequestPasswordReset handles POST /api/auth/reset-request.
func (s *Server) RequestPasswordReset(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("E-mail is required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondAppError(c, err)
	}

	if user != nil {
		resetToken, err := s.resetTokens.Issue(user.ID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		// Mail failures are logged, never surfaced; the response stays uniform.
		if err := s.mailer.SendPasswordReset(c.Context(), user.Email, resetToken); err != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "failed to send reset mail",
				slog.String("error", err.Error()))
		}
	}

	return c.JSON(fiber.Map{
		"message": resetRequestMessage,
	})
}

// ConfirmPasswordReset handles POST /api/auth/reset-confirm/:token. Expired,
// tampered, and malformed tokens all produce the same rejection.
func (s *Server) ConfirmPasswordReset(c *fiber.Ctx) error {
	userID, ok := s.resetTokens.Verify(c.Params("token"))
	if !ok {
		return respondAppError(c, models.NewTokenError())
	}

	var req struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Password is required"))
	}
	if req.Password != req.ConfirmPassword {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Passwords do not match"))
	}

	if err := s.accounts.ResetPassword(c.Context(), userID, req.Password); err != nil {
		// A token for a user that no longer exists degrades to the same
		// uniform rejection as an invalid token.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return respondAppError(c, models.NewTokenError())
		}
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Your password has been updated. You are now able to log in.",
	})
}

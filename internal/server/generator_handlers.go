package server

import (
	"fmt"
	"time"

	"coverforge/internal/models"
	"coverforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Generate handles POST /api/generator/generate. It refuses before any
// provider call when no credential is configured.
func (s *Server) Generate(c *fiber.Ctx) error {
	var req struct {
		JobTitle               string `json:"job_title"`
		JobDescription         string `json:"job_description"`
		EmployerName           string `json:"employer_name"`
		EmployerDescription    string `json:"employer_description"`
		AdditionalInstructions string `json:"additional_instructions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	letter, err := s.letters.Generate(c.Context(), currentUserID(c), currentSessionID(c), service.GenerateInput{
		JobTitle:               req.JobTitle,
		JobDescription:         req.JobDescription,
		EmployerName:           req.EmployerName,
		EmployerDescription:    req.EmployerDescription,
		AdditionalInstructions: req.AdditionalInstructions,
	})
	if err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"letter": letter,
	})
}

// ClearLetter handles POST /api/generator/clear. Only the session's held
// letter is dropped; stored state is untouched.
func (s *Server) ClearLetter(c *fiber.Ctx) error {
	if err := s.letters.Clear(c.Context(), currentSessionID(c)); err != nil {
		return respondAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Cleared",
	})
}

// DownloadLetter handles GET /api/generator/download. The held letter is
// streamed as a text attachment named after the employer, job title, and
// current date.
func (s *Server) DownloadLetter(c *fiber.Ctx) error {
	letter, err := s.letters.Held(c.Context(), currentSessionID(c))
	if err != nil {
		return respondAppError(c, err)
	}

	employer := letter.EmployerName
	if employer == "" {
		employer = "Unknown Employer"
	}
	title := letter.JobTitle
	if title == "" {
		title = "Unknown Position"
	}

	filename := fmt.Sprintf("%s - %s - %s.txt", employer, title, time.Now().Format("2006.01.02"))
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.SendString(letter.Text)
}

package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrDuplicateEmail marks a duplicate-signup failure so handlers can map it
// to 409 while every other validation failure stays 400.
var ErrDuplicateEmail = errors.New("e-mail already registered")

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewDuplicateEmailError is the uniform duplicate-signup rejection.
func NewDuplicateEmailError() *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "That e-mail address is already registered. Please choose a different one.",
		Err:     ErrDuplicateEmail,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NewTokenError covers every reset-token failure; expired, tampered, and
// malformed tokens are deliberately indistinguishable to the caller.
func NewTokenError() *AppError {
	return &AppError{
		Code:    "TOKEN_ERROR",
		Message: "Invalid or expired reset token. Please request a new one.",
	}
}

// NewNotConfiguredError signals that the user's provider credential is missing.
func NewNotConfiguredError() *AppError {
	return &AppError{
		Code:    "NOT_CONFIGURED",
		Message: "Please set your API key on the dashboard before generating a cover letter.",
	}
}

// NewProviderError wraps a text-generation provider failure as retryable.
func NewProviderError(err error) *AppError {
	return &AppError{
		Code:    "PROVIDER_ERROR",
		Message: "The cover letter service is temporarily unavailable. Please try again.",
		Err:     err,
	}
}

// NewPersistenceError wraps a storage write failure with a generic user message.
func NewPersistenceError(err error) *AppError {
	return &AppError{
		Code:    "PERSISTENCE_ERROR",
		Message: "An error occurred while saving your data. Please try again.",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}

// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

const (
	minPasswordLen = 4
	maxPasswordLen = 50
	minEmailLen    = 4
	maxEmailLen    = 50
	maxResumeLen   = 5000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks email format and the storage-imposed length ceiling.
func ValidateEmail(email string) error {
	if len(email) < minEmailLen {
		return fmt.Errorf("e-mail must be at least %d characters long", minEmailLen)
	}
	if len(email) > maxEmailLen {
		return fmt.Errorf("e-mail must not exceed %d characters", maxEmailLen)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid e-mail format")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidateResume checks the resume text against the storage ceiling.
func ValidateResume(resume string) error {
	if len(resume) > maxResumeLen {
		return fmt.Errorf("resume must not exceed %d characters", maxResumeLen)
	}
	return nil
}

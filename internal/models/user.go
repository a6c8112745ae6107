// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. The password is stored only as a
// bcrypt hash. The provider API credential is stored encrypted (AES-GCM,
// base64), never hashed, so the generation workflow can decrypt and present
// it to the provider.
type User struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Email         string           `gorm:"size:50;uniqueIndex;not null" json:"email"`
	PasswordHash  string           `gorm:"not null" json:"-"`
	APICredential string           `gorm:"size:512" json:"-"`
	Resume        string           `gorm:"size:5000;not null;default:''" json:"resume"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
	Logs          []CoverLetterLog `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasAPICredential reports whether the user configured a provider credential.
func (u *User) HasAPICredential() bool {
	return u.APICredential != ""
}

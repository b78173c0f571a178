// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a permission grant stored in the user_roles table. A user may
// hold any number of roles; dashboard access requires RoleAdmin.
type Role string

const (
	RoleAdmin Role = "admin"
)

// User represents a site operator with authentication and 2FA fields.
// Authorization is not stored here — roles live in user_roles and are
// looked up per request.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	TOTPSecret   string    `json:"-"` // Empty until 2FA setup starts
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
// All users must set up 2FA on their first login.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}

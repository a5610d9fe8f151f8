package models

import (
	"strings"
	"time"
)

// User represents a bank customer identity used for authentication and
// account ownership. Sensitive fields must never be exposed outside
// trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique, case-normalized login identifier.
	Email string `json:"email"`

	// FirstName is the user's given name. Non-sensitive, may be shown in UI.
	FirstName string `json:"first_name"`

	// LastName is the user's family name. Non-sensitive, may be shown in UI.
	LastName string `json:"last_name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// MUST never hold plaintext and is never serialized.
	PasswordHash string `json:"-"`

	// NationalID holds the user's national identification number in
	// encrypted form (iv:ciphertext:tag). Decrypted only transiently
	// for authorized reads.
	NationalID string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NormalizeEmail lowercases and trims an email address so that lookups and
// the uniqueness constraint behave case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

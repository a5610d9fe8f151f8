package models

import "time"

// Session is a persisted login session owned exclusively by the session
// service. At most one live row exists per user at any time; login enforces
// this by deleting all prior rows before inserting the new one.
type Session struct {
	// Token is the compact JWS string issued at login. Primary key of the
	// sessions table.
	Token string `json:"-"`

	// UserID is the owner of the session.
	UserID int64 `json:"-"`

	// ExpiresAt is the hard cutoff after which the session is dead.
	// Validation applies a safety buffer before this instant.
	ExpiresAt time.Time `json:"expires_at"`

	// CreatedAt is the timestamp when the session was issued.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

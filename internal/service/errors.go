package service

import "errors"

var (
	// ErrInvalidDataProvided reports a structurally unusable payload.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single authentication failure surfaced
	// by Login. Unknown email and wrong password produce the same error
	// so callers cannot tell which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenCreationFailed reports a JWT signing failure at login.
	ErrTokenCreationFailed = errors.New("session token creation failed")

	// ErrSessionExpiredOrInvalid is the single session failure surfaced by
	// Validate: bad signature, wrong issuer, no matching row, and expiry
	// (including the safety buffer) all collapse to it.
	ErrSessionExpiredOrInvalid = errors.New("session is expired or invalid")

	// ErrUnsupportedAccountType reports an account type outside the
	// supported set.
	ErrUnsupportedAccountType = errors.New("unsupported account type")

	// ErrNationalIDUnreadable reports that a stored national ID failed to
	// decrypt. The profile read fails closed rather than return partial
	// data.
	ErrNationalIDUnreadable = errors.New("stored national id could not be decrypted")
)

package crypto

import "errors"

// Sentinel errors returned by the crypto package. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEmptyInput is returned when an empty plaintext or encrypted field
	// is passed to Encrypt or Decrypt. Rejected explicitly up front instead
	// of surfacing as a cryptographic failure deep in the call.
	ErrEmptyInput = errors.New("empty input")

	// ErrMalformedPayload is returned when an encrypted field does not
	// consist of exactly three non-empty hex segments (iv:ciphertext:tag).
	ErrMalformedPayload = errors.New("malformed encrypted payload")

	// ErrIntegrityCheckFailed is returned when the GCM authentication tag
	// does not verify, indicating corruption or tampering in any of the
	// three segments. No plaintext is ever returned alongside this error.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)

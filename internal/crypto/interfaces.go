package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// CredentialStore hashes and verifies user passwords. Implementations must
// use a slow adaptive one-way hash so brute-forcing carries substantial
// per-guess cost, and must never log or retain plaintext.
type CredentialStore interface {
	// Hash derives an opaque one-way hash from a plaintext password.
	// The result is safe to persist; the plaintext is never recoverable.
	Hash(password string) (string, error)

	// Verify reports whether password matches an earlier Hash output.
	// The comparison is delegated to the underlying primitive's verify
	// routine, which is timing-safe.
	Verify(password, hash string) bool
}

// PiiCipher provides authenticated symmetric encryption for sensitive
// fields at rest (e.g. a national ID). The on-disk format is a colon-joined
// hex triple: iv:ciphertext:tag.
//
// Key derivation is deliberately slow (PBKDF2, 100k+ iterations); the
// derived key is cached per instance, but correctness never depends on
// caching. Implementations hold all key material injected at construction
// and never reach into ambient process state.
type PiiCipher interface {
	// Encrypt seals plaintext with a fresh random IV. Calling it twice on
	// the same plaintext never yields identical output.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens an iv:ciphertext:tag field. Malformed shapes fail with
	// ErrMalformedPayload; any tamper in any segment fails the
	// authentication tag and returns ErrIntegrityCheckFailed. Unverified
	// or partial plaintext is never returned.
	Decrypt(field string) (string, error)
}

package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password hashing. Cost 10 keeps a
// single verification fast enough for interactive login while making bulk
// guessing expensive.
const bcryptCost = 10

// credentialStore is the private bcrypt-backed implementation of
// [CredentialStore].
type credentialStore struct {
	cost int
}

// NewCredentialStore constructs a [CredentialStore] with the fixed bcrypt
// work factor. The returned store is stateless and safe for concurrent use.
func NewCredentialStore() CredentialStore {
	return &credentialStore{cost: bcryptCost}
}

// Hash implements [CredentialStore]. The plaintext password is consumed and
// never stored or logged; only the bcrypt hash leaves this function.
func (c *credentialStore) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// Verify implements [CredentialStore]. bcrypt's comparison routine is
// timing-safe, so no early-exit leak exists on the comparison itself.
func (c *credentialStore) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

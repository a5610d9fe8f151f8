package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters for the at-rest PII key. The iteration count is
// deliberately high; the derived key is computed once at construction and
// cached for the process lifetime.
const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = 32 // 256 bits
	gcmNonceSize     = 12
)

// piiCipher is the private AES-256-GCM implementation of [PiiCipher].
type piiCipher struct {
	// aead is built once from the PBKDF2-derived key. AEAD instances are
	// safe for concurrent use.
	aead cipher.AEAD
}

// NewPiiCipher constructs a [PiiCipher] from the long-term secret and salt
// supplied by configuration at process startup. The key is derived here,
// once, with PBKDF2-SHA256; the CPU-bound derivation never runs on the
// request path.
//
// Returns an error if secret or salt is empty or the cipher cannot be built.
func NewPiiCipher(secret, salt string) (PiiCipher, error) {
	if secret == "" || salt == "" {
		return nil, fmt.Errorf("%w: pii secret and salt are required", ErrEmptyInput)
	}

	key := pbkdf2.Key([]byte(secret), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, gcmNonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &piiCipher{aead: aead}, nil
}

// Encrypt implements [PiiCipher]. A fresh 12-byte IV is read from the OS
// CSPRNG on every call, so encrypting the same plaintext twice never yields
// identical output. The GCM output is split into ciphertext and tag and the
// three components are hex-encoded and colon-joined: iv:ciphertext:tag.
func (p *piiCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyInput
	}

	iv := make([]byte, gcmNonceSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	// Seal returns ciphertext ‖ tag; the tag occupies the trailing
	// Overhead() bytes.
	sealed := p.aead.Seal(nil, iv, []byte(plaintext), nil)
	tagStart := len(sealed) - p.aead.Overhead()
	ciphertext, tag := sealed[:tagStart], sealed[tagStart:]

	return strings.Join([]string{
		hex.EncodeToString(iv),
		hex.EncodeToString(ciphertext),
		hex.EncodeToString(tag),
	}, ":"), nil
}

// Decrypt implements [PiiCipher]. The field must consist of exactly three
// non-empty colon-delimited hex segments; any other shape fails with
// [ErrMalformedPayload] before any cryptographic work. The authentication
// tag is verified during decryption — a mismatch anywhere in the triple
// fails with [ErrIntegrityCheckFailed] and no plaintext is returned.
func (p *piiCipher) Decrypt(field string) (string, error) {
	if field == "" {
		return "", ErrEmptyInput
	}

	iv, ciphertext, tag, err := splitEncryptedField(field)
	if err != nil {
		return "", err
	}

	if len(iv) != gcmNonceSize {
		return "", fmt.Errorf("%w: bad iv length %d", ErrMalformedPayload, len(iv))
	}

	// Reassemble ciphertext ‖ tag for Open; the tag is verified before any
	// plaintext is released.
	plaintext, err := p.aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIntegrityCheckFailed, err)
	}

	return string(plaintext), nil
}

// splitEncryptedField parses the iv:ciphertext:tag wire format. Exactly
// three non-empty segments are required, each valid hex.
func splitEncryptedField(field string) (iv, ciphertext, tag []byte, err error) {
	parts := strings.Split(field, ":")
	if len(parts) != 3 {
		return nil, nil, nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedPayload, len(parts))
	}

	for _, part := range parts {
		if part == "" {
			return nil, nil, nil, fmt.Errorf("%w: empty segment", ErrMalformedPayload)
		}
	}

	if iv, err = hex.DecodeString(parts[0]); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: iv is not hex", ErrMalformedPayload)
	}
	if ciphertext, err = hex.DecodeString(parts[1]); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: ciphertext is not hex", ErrMalformedPayload)
	}
	if tag, err = hex.DecodeString(parts[2]); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: tag is not hex", ErrMalformedPayload)
	}

	return iv, ciphertext, tag, nil
}

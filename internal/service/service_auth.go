package service

import (
	"context"
	"fmt"

	"github.com/mkarchin/go-bank-ledger/internal/crypto"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/store"
	"github.com/mkarchin/go-bank-ledger/internal/validators"
	"github.com/mkarchin/go-bank-ledger/models"
)

// nationalIDTailLength is how many trailing digits of the decrypted
// national ID the profile view exposes.
const nationalIDTailLength = 4

// authService is the concrete implementation of AuthService.
// It handles user registration and credential verification using a
// UserRepository for persistence, bcrypt for password hashing, and
// authenticated encryption for the national ID at rest.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// credentials hashes passwords at signup and verifies them at login.
	credentials crypto.CredentialStore

	// piiCipher encrypts the national ID before storage and decrypts it
	// transiently for the profile view.
	piiCipher crypto.PiiCipher

	// signupValidator enforces the credential policy on registration.
	signupValidator validators.SignupValidator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and crypto primitives.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, credentials crypto.CredentialStore, piiCipher crypto.PiiCipher, signupValidator validators.SignupValidator, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		credentials:     credentials,
		piiCipher:       piiCipher,
		signupValidator: signupValidator,
		logger:          logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates the payload against the credential policy, bcrypt-hashes the
// password, encrypts the national ID, and delegates persistence to the
// UserRepository. The plaintext password and national ID never leave this
// function.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - A validators sentinel error naming the violated rule.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.signupValidator.ValidateSignup(req); err != nil {
		log.Error().Str("email", req.Email).Err(err).Msg("signup payload rejected")
		return models.User{}, err
	}

	passwordHash, err := a.credentials.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	encryptedNationalID, err := a.piiCipher.Encrypt(req.NationalID)
	if err != nil {
		log.Err(err).Msg("national id encryption failed")
		return models.User{}, fmt.Errorf("national id encryption failed: %w", err)
	}

	user := models.User{
		Email:        models.NormalizeEmail(req.Email),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		NationalID:   encryptedNationalID,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by normalized email and verifies the supplied
// password against the stored bcrypt hash. An unknown email and a wrong
// password both return ErrInvalidCredentials; the response never reveals
// which factor failed.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(req.Email))
	if err != nil {
		log.Error().Str("email", req.Email).Msg("login failed: no such user")
		return models.User{}, ErrInvalidCredentials
	}

	if !a.credentials.Verify(req.Password, foundUser.PasswordHash) {
		log.Error().Int64("id", foundUser.UserID).Msg("login failed: password mismatch")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// Profile returns the owner's view of their identity record.
//
// The stored national ID is decrypted transiently and reduced to its last
// four digits before leaving the service; the full plaintext is never
// returned or logged. A decrypt failure (tampered or corrupted field) fails
// the whole request with ErrNationalIDUnreadable.
func (a *authService) Profile(ctx context.Context, userID int64) (models.Profile, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.Profile{}, fmt.Errorf("user search by id failed: %w", err)
	}

	nationalID, err := a.piiCipher.Decrypt(user.NationalID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("stored national id failed to decrypt")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrNationalIDUnreadable, err)
	}

	return models.Profile{
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		NationalIDLast4: tail(nationalID, nationalIDTailLength),
	}, nil
}

// tail returns the last n characters of s, or all of s when shorter.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

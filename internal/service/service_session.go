package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkarchin/go-bank-ledger/internal/config"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/store"
	"github.com/mkarchin/go-bank-ledger/internal/utils"
	"github.com/mkarchin/go-bank-ledger/models"
)

const (
	// sessionLifetime is how long an issued session stays valid. Fixed
	// application policy, not configuration.
	sessionLifetime = 7 * 24 * time.Hour

	// sessionExpiryBuffer rejects sessions slightly before their hard
	// expiry so a request never starts on a session that dies mid-flight.
	sessionExpiryBuffer = 5 * time.Minute
)

// Logout result messages returned to clients.
const (
	logoutMessageLoggedOut = "Logged out successfully"
	logoutMessageNoSuchRow = "Failed to log out: no matching session found"

	// LogoutMessageNoSession is returned by the transport layer when no
	// session token was presented at all; nothing to delete is still a
	// successful logout from the client's point of view.
	LogoutMessageNoSession = "No active session"
)

// sessionService is the concrete implementation of SessionService.
// It issues HMAC-SHA256 signed JWT tokens and mirrors each one in the
// sessions table: a token the table does not know is dead regardless of
// what its claims say.
type sessionService struct {
	// sessionRepository owns the sessions table.
	sessionRepository store.SessionRepository

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewSessionService constructs a new SessionService wired to the given
// SessionRepository and populated with signing parameters from cfg.
func NewSessionService(sessionRepository store.SessionRepository, cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: sessionRepository,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		logger:            logger,
	}
}

// Create issues a new session for userID.
//
// It signs a JWT carrying the user id as subject and a seven-day expiry,
// then replaces every prior session row of the user with the new one in a
// single storage transaction. However many logins race, exactly one session
// row per user survives.
func (s *sessionService) Create(ctx context.Context, userID int64) (models.Session, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, userID, sessionLifetime, s.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("session token creation failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	expiresAt, err := token.Claims.GetExpirationTime()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	session := models.Session{
		Token:     token.String(),
		UserID:    userID,
		ExpiresAt: expiresAt.Time,
		CreatedAt: time.Now(),
	}

	if err = s.sessionRepository.ReplaceForUser(ctx, session); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("session row replacement failed")
		return models.Session{}, fmt.Errorf("session row replacement failed: %w", err)
	}

	return session, nil
}

// Validate authenticates a raw session token.
//
// The token layer is checked first (signature, issuer, exp claim), then the
// sessions table must hold a matching row, and the row must not be within
// the expiry safety buffer. A row found inside the buffer is deleted
// opportunistically so later requests fail at the lookup instead. Every
// failure collapses to ErrSessionExpiredOrInvalid.
func (s *sessionService) Validate(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	if _, err := utils.ValidateAndParseJWTToken(token, s.tokenSignKey, s.tokenIssuer); err != nil {
		return models.Session{}, ErrSessionExpiredOrInvalid
	}

	session, err := s.sessionRepository.FindByToken(ctx, token)
	if err != nil {
		return models.Session{}, ErrSessionExpiredOrInvalid
	}

	// Expiry exactly at the buffered instant counts as expired.
	if !session.ExpiresAt.After(time.Now().Add(sessionExpiryBuffer)) {
		// Best effort: the row is already unusable either way.
		if err = s.sessionRepository.DeleteByToken(ctx, token); err != nil && !errors.Is(err, store.ErrSessionNotFound) {
			log.Err(err).Int64("user_id", session.UserID).Msg("stale session cleanup failed")
		}
		return models.Session{}, ErrSessionExpiredOrInvalid
	}

	return session, nil
}

// Logout ends the session for token.
//
// Three outcomes: the row was verifiably deleted (success); a token was
// presented but no row matched it (failure result, nothing to delete);
// the delete itself failed (error). Only the storage failure is an
// error. The presented-but-unknown token deliberately reports
// success=false so a client holding a stale token learns its session
// was already gone.
func (s *sessionService) Logout(ctx context.Context, token string) (models.LogoutResult, error) {
	log := logger.FromContext(ctx)

	err := s.sessionRepository.DeleteByToken(ctx, token)
	switch {
	case err == nil:
		return models.LogoutResult{Success: true, Message: logoutMessageLoggedOut}, nil
	case errors.Is(err, store.ErrSessionNotFound):
		return models.LogoutResult{Success: false, Message: logoutMessageNoSuchRow}, nil
	default:
		log.Err(err).Msg("session deletion failed")
		return models.LogoutResult{}, fmt.Errorf("session deletion failed: %w", err)
	}
}

// SweepExpired deletes every session row past its hard expiry.
func (s *sessionService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.sessionRepository.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("expired session sweep failed: %w", err)
	}

	return deleted, nil
}

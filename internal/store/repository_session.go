package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. The sessions table is owned exclusively by this type;
// nothing else in the application writes to it.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForUser enforces the single-session invariant: every existing row
// for session.UserID is deleted and the new row inserted inside one database
// transaction. When two logins race, their delete+insert pairs serialize and
// the last committed writer wins — at most one row survives.
func (r *sessionRepository) ReplaceForUser(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ReplaceForUser").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, deleteSessionsForUser, session.UserID); err != nil {
		log.Err(err).Str("func", "*sessionRepository.ReplaceForUser").Int64("user_id", session.UserID).Msg("failed to delete prior sessions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if _, err := tx.ExecContext(ctx, insertSession, session.Token, session.UserID, session.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*sessionRepository.ReplaceForUser").Int64("user_id", session.UserID).Msg("failed to insert session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*sessionRepository.ReplaceForUser").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// FindByToken retrieves a session row by its token.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrSessionNotFound].
//   - Any other error → wrapped [ErrScanningRow].
func (r *sessionRepository) FindByToken(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	row := r.db.QueryRowContext(ctx, findSessionByToken, token)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindByToken").Msg("error: row is nil")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&session.Token, &session.UserID, &session.ExpiresAt, &session.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).Str("func", "*sessionRepository.FindByToken").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return session, nil
}

// DeleteByToken removes the session row for token.
// Returns [ErrSessionNotFound] when no row was deleted, so callers can
// distinguish "logged out" from "nothing to log out of".
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteSessionByToken, token)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteByToken").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteByToken").Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpired removes every session whose hard expiry is at or before
// cutoff. Used by the background sweeper; validation also deletes
// buffer-expired rows opportunistically, so this is a safety net for rows
// no one ever presented again.
func (r *sessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteExpiredSessions, cutoff)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpired").Msg("failed to delete expired sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

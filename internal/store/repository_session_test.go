// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Karchin

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &sessionRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func sessionColumns() []string {
	return []string{"token", "user_id", "expires_at", "created_at"}
}

func TestReplaceForUser_DeletesThenInsertsInOneTx(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	session := models.Session{
		Token:     "signed.jwt.token",
		UserID:    5,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(session.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.Token, session.UserID, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceForUser(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceForUser_DeleteFailureRollsBack(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	session := models.Session{Token: "t", UserID: 5}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(session.UserID).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	err := repo.ReplaceForUser(context.Background(), session)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceForUser_InsertFailureRollsBack(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	session := models.Session{Token: "t", UserID: 5}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(session.UserID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.ReplaceForUser(context.Background(), session)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestFindByToken_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()
	expiresAt := now.Add(7 * 24 * time.Hour)

	rows := sqlmock.
		NewRows(sessionColumns()).
		AddRow("signed.jwt.token", int64(5), expiresAt, now)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("signed.jwt.token").
		WillReturnRows(rows)

	session, err := repo.FindByToken(context.Background(), "signed.jwt.token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.UserID != 5 {
		t.Errorf("expected UserID=5, got %d", session.UserID)
	}
}

func TestFindByToken_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows(sessionColumns()))

	_, err := repo.FindByToken(context.Background(), "unknown")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteByToken_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("signed.jwt.token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByToken(context.Background(), "signed.jwt.token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteByToken_NoRowDeleted(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByToken(context.Background(), "unknown")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteExpired_ReportsAffectedRows(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	cutoff := time.Now()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted rows, got %d", deleted)
	}
}

func TestDeleteExpired_ExecError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WillReturnError(errors.New("db down"))

	_, err := repo.DeleteExpired(context.Background(), time.Now())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

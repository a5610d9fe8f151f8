package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkarchin/go-bank-ledger/internal/config"
	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/mock"
	"github.com/mkarchin/go-bank-ledger/internal/store"
	"github.com/mkarchin/go-bank-ledger/internal/utils"
	"github.com/mkarchin/go-bank-ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "test-issuer"
)

func newTestSessionSvc(t *testing.T, ctrl *gomock.Controller) (*sessionService, *mock.MockSessionRepository) {
	t.Helper()
	mockSessions := mock.NewMockSessionRepository(ctrl)
	svc := NewSessionService(mockSessions, config.Auth{
		TokenSignKey: testSignKey,
		TokenIssuer:  testIssuer,
	}, logger.Nop()).(*sessionService)

	return svc, mockSessions
}

// signedTestToken returns a compact token string signed with the test key
// and issuer, valid for the full session lifetime.
func signedTestToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(testIssuer, userID, sessionLifetime, testSignKey)
	require.NoError(t, err)
	return token.String()
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestSessionService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().ReplaceForUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) error {
			assert.Equal(t, int64(42), s.UserID)
			assert.NotEmpty(t, s.Token)
			assert.WithinDuration(t, time.Now().Add(sessionLifetime), s.ExpiresAt, time.Minute)
			return nil
		},
	)

	session, err := svc.Create(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)

	// The issued token passes its own validation.
	parsed, err := utils.ValidateAndParseJWTToken(session.Token, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestSessionService_Create_ReplaceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().ReplaceForUser(ctx, gomock.Any()).Return(errors.New("connection reset"))

	_, err := svc.Create(ctx, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session row replacement failed")
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestSessionService_Validate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()
	token := signedTestToken(t, 42)

	stored := models.Session{
		Token:     token,
		UserID:    42,
		ExpiresAt: time.Now().Add(sessionLifetime),
		CreatedAt: time.Now(),
	}
	mockSessions.EXPECT().FindByToken(ctx, token).Return(stored, nil)

	session, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.UserID)
}

// TestSessionService_Validate_TokenLayerRejects verifies that tokens failing
// signature or issuer checks never reach the session store.
func TestSessionService_Validate_TokenLayerRejects(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				return "not.a.token"
			},
		},
		{
			name: "wrong sign key",
			token: func(t *testing.T) string {
				token, err := utils.GenerateJWTToken(testIssuer, 42, sessionLifetime, "some-other-key")
				require.NoError(t, err)
				return token.String()
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				token, err := utils.GenerateJWTToken("someone-else", 42, sessionLifetime, testSignKey)
				require.NoError(t, err)
				return token.String()
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				token, err := utils.GenerateJWTToken(testIssuer, 42, -time.Hour, testSignKey)
				require.NoError(t, err)
				return token.String()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No FindByToken expectation: the store must not be touched.
			svc, _ := newTestSessionSvc(t, ctrl)

			_, err := svc.Validate(context.Background(), tt.token(t))
			assert.ErrorIs(t, err, ErrSessionExpiredOrInvalid)
		})
	}
}

func TestSessionService_Validate_NoSessionRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()
	token := signedTestToken(t, 42)

	mockSessions.EXPECT().FindByToken(ctx, token).Return(models.Session{}, store.ErrSessionNotFound)

	_, err := svc.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrSessionExpiredOrInvalid)
}

// TestSessionService_Validate_ExpiryBuffer verifies the safety buffer: a
// session three minutes from expiry is rejected and cleaned up, one ten
// minutes out is accepted.
func TestSessionService_Validate_ExpiryBuffer(t *testing.T) {
	t.Run("inside buffer is rejected and deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockSessions := newTestSessionSvc(t, ctrl)
		ctx := context.Background()
		token := signedTestToken(t, 42)

		stored := models.Session{Token: token, UserID: 42, ExpiresAt: time.Now().Add(3 * time.Minute)}
		mockSessions.EXPECT().FindByToken(ctx, token).Return(stored, nil)
		mockSessions.EXPECT().DeleteByToken(ctx, token).Return(nil)

		_, err := svc.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpiredOrInvalid)
	})

	t.Run("expiry exactly at the buffered instant is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockSessions := newTestSessionSvc(t, ctrl)
		ctx := context.Background()
		token := signedTestToken(t, 42)

		// The boundary is inclusive: expiresAt == now+buffer is expired.
		stored := models.Session{Token: token, UserID: 42, ExpiresAt: time.Now().Add(sessionExpiryBuffer)}
		mockSessions.EXPECT().FindByToken(ctx, token).Return(stored, nil)
		mockSessions.EXPECT().DeleteByToken(ctx, token).Return(nil)

		_, err := svc.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpiredOrInvalid)
	})

	t.Run("outside buffer is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockSessions := newTestSessionSvc(t, ctrl)
		ctx := context.Background()
		token := signedTestToken(t, 42)

		stored := models.Session{Token: token, UserID: 42, ExpiresAt: time.Now().Add(10 * time.Minute)}
		mockSessions.EXPECT().FindByToken(ctx, token).Return(stored, nil)

		session, err := svc.Validate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), session.UserID)
	})

	t.Run("cleanup failure still rejects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockSessions := newTestSessionSvc(t, ctrl)
		ctx := context.Background()
		token := signedTestToken(t, 42)

		stored := models.Session{Token: token, UserID: 42, ExpiresAt: time.Now().Add(3 * time.Minute)}
		mockSessions.EXPECT().FindByToken(ctx, token).Return(stored, nil)
		mockSessions.EXPECT().DeleteByToken(ctx, token).Return(errors.New("connection reset"))

		_, err := svc.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpiredOrInvalid)
	})
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestSessionService_Logout(t *testing.T) {
	t.Run("session deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockSessions := newTestSessionSvc(t, ctrl)
		ctx := context.Background()

		mockSessions.EXPECT().DeleteByToken(ctx, "some-token").Return(nil)

		result, err := svc.Logout(ctx, "some-token")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, logoutMessageLoggedOut, result.Message)
	})

	t.Run("unknown token reports failure, not error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockSessions := newTestSessionSvc(t, ctrl)
		ctx := context.Background()

		mockSessions.EXPECT().DeleteByToken(ctx, "some-token").Return(store.ErrSessionNotFound)

		result, err := svc.Logout(ctx, "some-token")
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Message, "Failed to log out")
	})

	t.Run("storage failure is an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockSessions := newTestSessionSvc(t, ctrl)
		ctx := context.Background()

		mockSessions.EXPECT().DeleteByToken(ctx, "some-token").Return(errors.New("connection reset"))

		result, err := svc.Logout(ctx, "some-token")
		require.Error(t, err)
		assert.False(t, result.Success)
	})
}

// ── SweepExpired ─────────────────────────────────────────────────────────────

func TestSessionService_SweepExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().DeleteExpired(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, cutoff time.Time) (int64, error) {
			assert.WithinDuration(t, time.Now(), cutoff, time.Minute)
			return 3, nil
		},
	)

	deleted, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestSessionService_SweepExpired_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockSessions := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().DeleteExpired(ctx, gomock.Any()).Return(int64(0), errors.New("connection reset"))

	_, err := svc.SweepExpired(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired session sweep failed")
}

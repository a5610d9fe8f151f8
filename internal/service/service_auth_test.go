package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mkarchin/go-bank-ledger/internal/logger"
	"github.com/mkarchin/go-bank-ledger/internal/mock"
	"github.com/mkarchin/go-bank-ledger/internal/store"
	"github.com/mkarchin/go-bank-ledger/internal/validators"
	"github.com/mkarchin/go-bank-ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAuthSvc builds an authService with mocked storage and crypto and
// the real signup validator.
func newTestAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*authService,
	*mock.MockUserRepository,
	*mock.MockCredentialStore,
	*mock.MockPiiCipher,
) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockCredentials := mock.NewMockCredentialStore(ctrl)
	mockCipher := mock.NewMockPiiCipher(ctrl)

	svc := NewAuthService(mockUsers, mockCredentials, mockCipher, validators.NewSignupValidator(), logger.Nop()).(*authService)

	return svc, mockUsers, mockCredentials, mockCipher
}

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:      "Jordan.Reed@example.com",
		Password:   "Str0ng&Secret#42",
		FirstName:  "Jordan",
		LastName:   "Reed",
		NationalID: "123456789",
	}
}

// ── RegisterUser ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockCredentials, mockCipher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	req := validRegisterRequest()

	gomock.InOrder(
		mockCredentials.EXPECT().Hash(req.Password).Return("$2a$10$fakehash", nil),
		mockCipher.EXPECT().Encrypt(req.NationalID).Return("aa:bb:cc", nil),
		mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				// Email is normalized, password and national ID never
				// reach storage in plaintext.
				assert.Equal(t, "jordan.reed@example.com", u.Email)
				assert.Equal(t, "$2a$10$fakehash", u.PasswordHash)
				assert.Equal(t, "aa:bb:cc", u.NationalID)
				assert.NotContains(t, u.NationalID, req.NationalID)
				u.UserID = 42
				return u, nil
			},
		),
	)

	user, err := svc.RegisterUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
	assert.Equal(t, "Jordan", user.FirstName)
}

func TestAuthService_RegisterUser_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		wantErr error
	}{
		{
			name:    "bad email",
			mutate:  func(r *models.RegisterRequest) { r.Email = "not-an-email" },
			wantErr: validators.ErrInvalidEmail,
		},
		{
			name:    "short password",
			mutate:  func(r *models.RegisterRequest) { r.Password = "Sh0rt&1" },
			wantErr: validators.ErrPasswordTooShort,
		},
		{
			name:    "weak password",
			mutate:  func(r *models.RegisterRequest) { r.Password = "alllowercaseonly" },
			wantErr: validators.ErrPasswordTooWeak,
		},
		{
			name:    "missing national id",
			mutate:  func(r *models.RegisterRequest) { r.NationalID = "" },
			wantErr: validators.ErrNationalIDMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No hashing, encryption, or storage calls are expected.
			svc, _, _, _ := newTestAuthSvc(t, ctrl)

			req := validRegisterRequest()
			tt.mutate(&req)

			_, err := svc.RegisterUser(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockCredentials, mockCipher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	req := validRegisterRequest()

	mockCredentials.EXPECT().Hash(req.Password).Return("$2a$10$fakehash", nil)
	mockCipher.EXPECT().Encrypt(req.NationalID).Return("aa:bb:cc", nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.RegisterUser(ctx, req)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_RegisterUser_HashError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockCredentials, _ := newTestAuthSvc(t, ctrl)
	req := validRegisterRequest()

	mockCredentials.EXPECT().Hash(req.Password).Return("", errors.New("cost out of range"))

	_, err := svc.RegisterUser(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password hashing failed")
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockCredentials, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{UserID: 42, Email: "jordan.reed@example.com", PasswordHash: "$2a$10$fakehash"}

	mockUsers.EXPECT().FindUserByEmail(ctx, "jordan.reed@example.com").Return(stored, nil)
	mockCredentials.EXPECT().Verify("Str0ng&Secret#42", stored.PasswordHash).Return(true)

	user, err := svc.Login(ctx, models.LoginRequest{
		Email:    "  Jordan.Reed@Example.COM ", // normalized before lookup
		Password: "Str0ng&Secret#42",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)
}

// TestAuthService_Login_FailuresAreIndistinguishable verifies that an
// unknown email and a wrong password surface the exact same error.
func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockCredentials, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByEmail(ctx, "nobody@example.com").Return(models.User{}, store.ErrNoUserWasFound)
	_, errUnknown := svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "whatever-pass"})

	stored := models.User{UserID: 42, Email: "jordan.reed@example.com", PasswordHash: "$2a$10$fakehash"}
	mockUsers.EXPECT().FindUserByEmail(ctx, "jordan.reed@example.com").Return(stored, nil)
	mockCredentials.EXPECT().Verify("wrong-password", stored.PasswordHash).Return(false)
	_, errWrong := svc.Login(ctx, models.LoginRequest{Email: "jordan.reed@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The repository must not be consulted at all.
	svc, _, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ── Profile ──────────────────────────────────────────────────────────────────

func TestAuthService_Profile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockCipher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{
		UserID:     42,
		Email:      "jordan.reed@example.com",
		FirstName:  "Jordan",
		LastName:   "Reed",
		NationalID: "aa:bb:cc",
	}

	mockUsers.EXPECT().FindUserByID(ctx, int64(42)).Return(stored, nil)
	mockCipher.EXPECT().Decrypt("aa:bb:cc").Return("123456789", nil)

	profile, err := svc.Profile(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "jordan.reed@example.com", profile.Email)
	assert.Equal(t, "6789", profile.NationalIDLast4)
	assert.NotContains(t, profile.NationalIDLast4, "12345")
}

func TestAuthService_Profile_DecryptFailureFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockCipher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{UserID: 42, NationalID: "aa:bb:cc"}
	mockUsers.EXPECT().FindUserByID(ctx, int64(42)).Return(stored, nil)
	mockCipher.EXPECT().Decrypt("aa:bb:cc").Return("", errors.New("cipher: message authentication failed"))

	profile, err := svc.Profile(ctx, 42)
	assert.ErrorIs(t, err, ErrNationalIDUnreadable)
	assert.Equal(t, models.Profile{}, profile)
}

func TestAuthService_Profile_ShortNationalID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, mockCipher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByID(ctx, int64(7)).Return(models.User{UserID: 7, NationalID: "aa:bb:cc"}, nil)
	mockCipher.EXPECT().Decrypt("aa:bb:cc").Return("123", nil)

	profile, err := svc.Profile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "123", profile.NationalIDLast4)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jobtrack/jobtrack-ui/internal/domain/model"
	apperrors "github.com/jobtrack/jobtrack-ui/internal/errors"
	"github.com/jobtrack/jobtrack-ui/internal/mocks"
	mockauth "github.com/jobtrack/jobtrack-ui/internal/mocks/auth"
	"github.com/jobtrack/jobtrack-ui/internal/testutil"
)

func newTestAuthService() (*AuthService, *mockauth.MemoryUserRepo, *mockauth.MemorySessionStore) {
	users := mockauth.NewMemoryUserRepo()
	sessions := mockauth.NewMemorySessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Users:      users,
		Sessions:   sessions,
		Hasher:     mockauth.FakeHasher{},
		SessionTTL: time.Hour,
	})
	return svc, users, sessions
}

func TestAuthService_RegisterThenAuthenticate(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, testutil.NewRegisterRequest().Build())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)

	got, err := svc.Authenticate(ctx, "Ada@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, testutil.NewRegisterRequest().Build())
	require.NoError(t, err)

	_, err = svc.Register(ctx, testutil.NewRegisterRequest().WithName("Other Person").Build())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	req := testutil.NewRegisterRequest().WithPasswords("secret1", "different").Build()
	_, err := svc.Register(ctx, req)
	require.Error(t, err)
	var fe *model.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "password_confirm", fe.Field)

	// No account may exist after a failed registration.
	_, err = users.GetByEmail(ctx, "ada@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAuthService_Authenticate_SingleFailureShape(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, testutil.NewRegisterRequest().Build())
	require.NoError(t, err)

	// Wrong password and unknown account return the identical error value.
	_, wrongPw := svc.Authenticate(ctx, "ada@example.com", "not-the-password")
	_, unknown := svc.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPw, unknown)
}

func TestAuthService_EstablishSession_RotatesIDAndSecret(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	anon, err := svc.NewAnonymousSession(ctx)
	require.NoError(t, err)
	assert.False(t, anon.IsAuthenticated())
	assert.NotEmpty(t, anon.CSRFSecret)

	user, err := svc.Register(ctx, testutil.NewRegisterRequest().Build())
	require.NoError(t, err)

	sess, err := svc.EstablishSession(ctx, anon, user)
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated())
	assert.NotEqual(t, anon.ID, sess.ID, "session ID rotates on login")
	assert.NotEqual(t, anon.CSRFSecret, sess.CSRFSecret, "CSRF secret rotates on login")

	// The anonymous record is gone; only the authenticated one remains.
	_, err = svc.GetSession(ctx, anon.ID)
	assert.Error(t, err)
	got, err := svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, 1, sessions.Len())
}

func TestAuthService_SaveSession_SlidesExpiry(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	sess, err := svc.NewAnonymousSession(ctx)
	require.NoError(t, err)

	// More than half the window left: expiry stays put.
	before := sess.ExpiresAt
	require.NoError(t, svc.SaveSession(ctx, &sess))
	assert.Equal(t, before, sess.ExpiresAt)

	// Under half the window: expiry slides forward.
	sess.ExpiresAt = time.Now().Add(10 * time.Minute)
	require.NoError(t, svc.SaveSession(ctx, &sess))
	assert.Greater(t, time.Until(sess.ExpiresAt), 50*time.Minute)
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	sess, err := svc.NewAnonymousSession(ctx)
	require.NoError(t, err)

	expired := sess
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	// Write the expired record directly; the production store would have
	// refused it.
	sessions.SaveErr = nil
	require.NoError(t, func() error {
		return sessions.Save(ctx, expired)
	}())

	_, err = svc.GetSession(ctx, sess.ID)
	require.Error(t, err)

	// Expired record was removed on read.
	assert.Equal(t, 0, sessions.Len())
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions := newTestAuthService()
	ctx := context.Background()

	sess, err := svc.NewAnonymousSession(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess.ID))
	assert.Equal(t, 0, sessions.Len())

	// Logging out nothing is fine.
	assert.NoError(t, svc.Logout(ctx, ""))
}

// countingHasher wraps FakeHasher and records how many comparisons ran.
type countingHasher struct {
	mockauth.FakeHasher
	compares int
}

func (h *countingHasher) Compare(hash, password string) error {
	h.compares++
	return h.FakeHasher.Compare(hash, password)
}

func TestAuthService_Authenticate_UnknownEmailStillCompares(t *testing.T) {
	hasher := &countingHasher{}
	svc := NewAuthService(AuthServiceOptions{
		Users:      mockauth.NewMemoryUserRepo(),
		Sessions:   mockauth.NewMemorySessionStore(),
		Hasher:     hasher,
		SessionTTL: time.Hour,
	})
	ctx := context.Background()

	// Unknown account and wrong password each cost exactly one compare, so
	// response timing cannot reveal whether the email exists.
	_, err := svc.Authenticate(ctx, "nobody@example.com", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.compares)

	_, err = svc.Register(ctx, testutil.NewRegisterRequest().Build())
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ada@example.com", "not-the-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 2, hasher.compares)
}

func TestAuthService_Authenticate_LookupErrorIsNotCredentialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUserRepository(ctrl)
	svc := NewAuthService(AuthServiceOptions{
		Users:      users,
		Sessions:   mockauth.NewMemorySessionStore(),
		Hasher:     mockauth.FakeHasher{},
		SessionTTL: time.Hour,
	})

	users.EXPECT().GetByEmail(gomock.Any(), "ada@example.com").
		Return(nil, apperrors.Internal("connection refused"))

	_, err := svc.Authenticate(context.Background(), "ada@example.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "look up account")
}

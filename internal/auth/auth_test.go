package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdash/dealdash/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(storage.NewMemory(false), "unit-test-secret", time.Hour)
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"first.last+tag@example.com",
		"UPPER@EXAMPLE.ORG",
	}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.com",
		"@example.com",
		"user@nodot",
		"user@.com",
	}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), e)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	u, err := svc.Register(ctx, "x@y.co", "longenough")
	require.NoError(t, err)
	assert.NotEqual(t, "longenough", u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)

	_, err = svc.Register(ctx, "x@y.co", "longenough")
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)

	_, err = svc.Register(ctx, "short@y.co", "2short")
	assert.Error(t, err)
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	u, err := svc.Register(ctx, "login@y.co", "password123")
	require.NoError(t, err)

	got, token, err := svc.Login(ctx, "login@y.co", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	subject, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, subject)

	_, _, err = svc.Login(ctx, "login@y.co", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "ghost@y.co", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsForgedAndExpired(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret
	other := NewService(storage.NewMemory(false), "other-secret", time.Hour)
	forged, err := other.IssueToken("someone")
	require.NoError(t, err)
	_, err = svc.VerifyToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Expired token
	expiring := NewService(storage.NewMemory(false), "unit-test-secret", time.Nanosecond)
	stale, err := expiring.IssueToken("someone")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = svc.VerifyToken(stale)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	_, err := svc.Register(ctx, "reset@y.co", "firstpassword")
	require.NoError(t, err)

	// Unknown email: no token, no error
	token, err := svc.RequestPasswordReset(ctx, "ghost@y.co")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = svc.RequestPasswordReset(ctx, "reset@y.co")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, "wrong-token", "secondpassword"),
		ErrInvalidResetToken)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "secondpassword"))

	_, _, err = svc.Login(ctx, "reset@y.co", "firstpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "reset@y.co", "secondpassword")
	assert.NoError(t, err)

	// The token was cleared with the password change
	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, token, "thirdpassword"),
		ErrInvalidResetToken)
}

func TestExpiredResetToken(t *testing.T) {
	store := storage.NewMemory(false)
	svc := NewService(store, "unit-test-secret", time.Hour)
	ctx := t.Context()

	u, err := svc.Register(ctx, "stale@y.co", "firstpassword")
	require.NoError(t, err)

	token := "stale-token"
	past := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, store.SetResetToken(ctx, u.ID, &token, &past))

	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, token, "secondpassword"),
		ErrInvalidResetToken)
}

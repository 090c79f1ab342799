package auth_test

import (
	"context"
	"testing"
	"time"

	userRepo "chambers/database/repository/user"
	"chambers/models"
	"chambers/services/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, ttl time.Duration) *auth.Service {
	t.Helper()
	users := userRepo.NewMemoryUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &models.User{
		Username:     "admin",
		PasswordHash: string(hash),
	}))
	return auth.NewService(users, auth.NewMemorySessionStore(), "unit-test-signing-secret", ttl)
}

func TestLoginAndPrincipalRoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := svc.Principal(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Empty(t, user.Password)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	_, wrongPassword := svc.Login(ctx, "admin", "nope")
	_, unknownUser := svc.Login(ctx, "ghost", "s3cret!")

	assert.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLogoutKillsSession(t *testing.T) {
	svc := newTestService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "s3cret!")
	require.NoError(t, err)

	svc.Logout(ctx, token)

	_, err = svc.Principal(ctx, token)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	// Logging out a dead token is a no-op.
	svc.Logout(ctx, token)
}

func TestPrincipalRejectsForgedToken(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other := newTestService(t, time.Hour)
	ctx := context.Background()

	// Token signed by a service with a different secret.
	forged, err := other.Login(ctx, "admin", "s3cret!")
	require.NoError(t, err)

	_, err = svc.Principal(ctx, forged)
	assert.ErrorIs(t, err, auth.ErrNoSession)

	_, err = svc.Principal(ctx, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestExpiredSessionIsRejected(t *testing.T) {
	svc := newTestService(t, -time.Minute)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "s3cret!")
	require.NoError(t, err)

	_, err = svc.Principal(ctx, token)
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

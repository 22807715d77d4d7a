package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidbrief/vidbrief-server/internal/logger"
	"github.com/vidbrief/vidbrief-server/internal/model"
	"github.com/vidbrief/vidbrief-server/internal/repository/memory"
	"github.com/vidbrief/vidbrief-server/internal/service"
	"github.com/vidbrief/vidbrief-server/internal/token"
)

func newSessionFixture(t *testing.T) (*service.Session, *memory.UserStore, *memory.RefreshTokenStore) {
	t.Helper()

	users := memory.NewUserStore()
	refreshes := memory.NewRefreshTokenStore()
	manager := token.NewJWT("test-secret", 15*time.Minute)
	tokens := service.NewTokenService(manager, refreshes, 7*24*time.Hour, logger.New(0))

	return service.NewSession(users, tokens, logger.New(0)), users, refreshes
}

func TestSession_Register(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	pair, user, err := svc.Register(ctx, "Alice@Example.com ", "password123", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.Len(t, pair.Refresh, 64)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.AuthProviderEmail, user.AuthProvider)
}

func TestSession_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	_, _, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "ALICE@example.com", "otherpassword", "Imposter")
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestSession_Login(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	_, registered, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	pair, user, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
}

func TestSession_Login_InvalidCredentialsIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	_, _, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, _, unknownEmailErr := svc.Login(ctx, "nobody@example.com", "password123")
	_, _, wrongPasswordErr := svc.Login(ctx, "alice@example.com", "wrongpassword")

	require.ErrorIs(t, unknownEmailErr, model.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPasswordErr, model.ErrInvalidCredentials)
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

func TestSession_Login_FederatedAccountHasNoPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	_, user, err := svc.GoogleAuth(ctx, service.GoogleProfile{ID: "google-1", Email: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, user.Email, "anything-at-all")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestSession_GoogleAuth_CreatesThenReuses(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	profile := service.GoogleProfile{ID: "google-1", Email: "alice@example.com", Name: "Alice"}

	_, first, err := svc.GoogleAuth(ctx, profile)
	require.NoError(t, err)

	_, second, err := svc.GoogleAuth(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.AuthProviderGoogle, second.AuthProvider)
}

func TestSession_GoogleAuth_LinksExistingEmailAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	_, registered, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, linked, err := svc.GoogleAuth(ctx, service.GoogleProfile{ID: "google-1", Email: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, linked.ID)
	assert.Equal(t, model.AuthProviderGoogle, linked.AuthProvider)
}

func TestSession_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	pair, registered, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	access, user, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.Equal(t, registered.ID, user.ID)

	// The refresh value is not rotated; it stays valid for reuse.
	_, _, err = svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
}

func TestSession_Refresh_UnknownValue(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	_, _, err := svc.Refresh(ctx, "never-issued")
	require.ErrorIs(t, err, model.ErrInvalidRefresh)
}

func TestSession_Refresh_DeletedAccount(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newSessionFixture(t)

	pair, registered, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, registered.ID))

	_, _, err = svc.Refresh(ctx, pair.Refresh)
	require.ErrorIs(t, err, model.ErrInvalidRefresh)
}

func TestSession_Logout_RevokesOnlyPresentedToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	first, _, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	second, _, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	svc.Logout(ctx, first.Refresh)

	_, _, err = svc.Refresh(ctx, first.Refresh)
	require.ErrorIs(t, err, model.ErrInvalidRefresh)

	_, _, err = svc.Refresh(ctx, second.Refresh)
	require.NoError(t, err)
}

func TestSession_Logout_UnknownValueIsSilent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	svc.Logout(ctx, "never-issued")
}

func TestSession_LogoutAll(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	first, registered, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	second, _, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	svc.LogoutAll(ctx, registered.ID)

	_, _, err = svc.Refresh(ctx, first.Refresh)
	require.ErrorIs(t, err, model.ErrInvalidRefresh)
	_, _, err = svc.Refresh(ctx, second.Refresh)
	require.ErrorIs(t, err, model.ErrInvalidRefresh)
}

func TestSession_Profile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	_, registered, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered, profile)

	_, err = svc.Profile(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrUnauthenticated)
}

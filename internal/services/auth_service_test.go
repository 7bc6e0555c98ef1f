package services

import (
	"testing"
	"time"

	"tsehay_admin/internal/models"
	"tsehay_admin/internal/repositories"
	"tsehay_admin/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) (AuthService, *SessionRegistry) {
	t.Helper()
	repo := repositories.NewAuthRepository(bcrypt.MinCost)
	_, err := repo.CreateUser("admin", "secret")
	require.NoError(t, err)
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	sessions := NewSessionRegistry(newFakeData())
	return NewAuthService(repo, tokens, sessions), sessions
}

func TestLogin_OpensUnmountedSession(t *testing.T) {
	auth, sessions := newAuth(t)

	result, err := auth.Login(models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.Session.Username)
	assert.Equal(t, 1, sessions.Len())
	assert.Empty(t, result.Session.Dashboard.View().Tables, "nothing is fetched before the dashboard renders")

	session, err := auth.Authenticate(result.Token)
	require.NoError(t, err)
	assert.Same(t, result.Session, session)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth, sessions := newAuth(t)

	_, err := auth.Login(models.Credentials{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(models.Credentials{Username: "ghost", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, sessions.Len())
}

func TestAuthenticate_RejectsUnknownAndLoggedOut(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Authenticate("")
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = auth.Authenticate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)

	result, err := auth.Login(models.Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	auth.Logout(result.Session.ID)

	_, err = auth.Authenticate(result.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRegistry_Expiry(t *testing.T) {
	registry := NewSessionRegistry(newFakeData())
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	registry.now = func() time.Time { return now }

	registry.Open(models.Session{ID: "live", ExpiresAt: now.Add(time.Hour)})
	registry.Open(models.Session{ID: "stale", ExpiresAt: now.Add(-time.Minute)})

	_, ok := registry.Get("stale")
	assert.False(t, ok)
	_, ok = registry.Get("live")
	assert.True(t, ok)

	registry.Open(models.Session{ID: "stale2", ExpiresAt: now})
	assert.Equal(t, 1, registry.Sweep())
	assert.Equal(t, 1, registry.Len())
}

func TestEditState_IsSealed(t *testing.T) {
	var s EditState = NoEdit{}
	_, ok := EditingItemID(s)
	assert.False(t, ok)

	s = Editing{ItemID: "m1"}
	id, ok := EditingItemID(s)
	assert.True(t, ok)
	assert.Equal(t, "m1", id)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/canopy-api/internal/config"
	"github.com/canopy-api/internal/domain"
	jwtinfra "github.com/canopy-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func newProvider(t *testing.T, accessTTL, refreshTTL time.Duration) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		AppEnv:          "development",
		JWTSecret:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
	require.NoError(t, err)
	return p
}

func TestResolve_LiveAccessTokenFastPath(t *testing.T) {
	p := newProvider(t, time.Hour, 7*24*time.Hour)
	access, _, err := p.MintAccess("u1", "Jane", "Alpha College")
	require.NoError(t, err)

	us := &mockUserStore{}
	svc := NewService(us, p)

	claims, newAccess, err := svc.Resolve(context.Background(), access, "")
	require.NoError(t, err)
	assert.Empty(t, newAccess)
	assert.Equal(t, "u1", claims.UserID)
	us.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestResolve_ExpiredAccessRotatesViaRefresh(t *testing.T) {
	// Expired access tokens come from a provider with a negative TTL.
	expired := newProvider(t, -time.Minute, 7*24*time.Hour)
	deadAccess, _, err := expired.MintAccess("u1", "Old Name", "Alpha College")
	require.NoError(t, err)
	_, refresh, err := expired.IssuePair("u1", "Old Name", "Alpha College")
	require.NoError(t, err)

	p := newProvider(t, time.Hour, 7*24*time.Hour)
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Jane", CollegeName: "Alpha College"}, nil)

	svc := NewService(us, p)
	claims, newAccess, err := svc.Resolve(context.Background(), deadAccess, refresh)

	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	assert.Equal(t, "Jane", claims.Name, "claims are re-resolved from the store")

	verified, err := p.VerifyAccess(newAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", verified.UserID)
}

func TestResolve_RefreshOnlyNoAccessCookie(t *testing.T) {
	p := newProvider(t, time.Hour, 7*24*time.Hour)
	_, refresh, err := p.IssuePair("u1", "Jane", "Alpha College")
	require.NoError(t, err)

	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Jane", CollegeName: "Alpha College"}, nil)

	svc := NewService(us, p)
	claims, newAccess, err := svc.Resolve(context.Background(), "", refresh)

	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.Equal(t, "u1", claims.UserID)
}

func TestResolve_DeletedSubjectVoidsPair(t *testing.T) {
	p := newProvider(t, -time.Minute, 7*24*time.Hour)
	_, refresh, err := p.IssuePair("u1", "Jane", "Alpha College")
	require.NoError(t, err)

	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	svc := NewService(us, newProvider(t, time.Hour, 7*24*time.Hour))
	_, _, err = svc.Resolve(context.Background(), "", refresh)

	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_BothTokensExpired(t *testing.T) {
	expired := newProvider(t, -time.Minute, -time.Minute)
	deadAccess, deadRefresh, err := expired.IssuePair("u1", "Jane", "Alpha College")
	require.NoError(t, err)

	us := &mockUserStore{}
	svc := NewService(us, newProvider(t, time.Hour, 7*24*time.Hour))
	_, _, err = svc.Resolve(context.Background(), deadAccess, deadRefresh)

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	us.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestResolve_NoTokensAtAll(t *testing.T) {
	svc := NewService(&mockUserStore{}, newProvider(t, time.Hour, 7*24*time.Hour))
	_, _, err := svc.Resolve(context.Background(), "", "")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_NilProviderFailsClosed(t *testing.T) {
	svc := NewService(&mockUserStore{}, nil)
	_, _, err := svc.Resolve(context.Background(), "x", "y")
	require.ErrorIs(t, err, domain.ErrJWTSecretMissing)
}

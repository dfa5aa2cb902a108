package jwtinfra

import (
	"testing"
	"time"

	"github.com/canopy-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret, env string) *config.Config {
	return &config.Config{
		AppEnv:          env,
		JWTSecret:       secret,
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestNewProvider_ProductionRequiresSecret(t *testing.T) {
	_, err := NewProvider(testConfig("", "production"))
	require.ErrorIs(t, err, ErrSecretMissing)
}

func TestNewProvider_DevFallbackSecret(t *testing.T) {
	p, err := NewProvider(testConfig("", "development"))
	require.NoError(t, err)
	assert.Equal(t, devFallbackSecret, string(p.secret))
}

func TestIssuePair_AccessRoundTrip(t *testing.T) {
	p, err := NewProvider(testConfig("s3cret", "development"))
	require.NoError(t, err)

	access, refresh, err := p.IssuePair("u1", "Jane", "Alpha College")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := p.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Jane", claims.Name)
	assert.Equal(t, "Alpha College", claims.CollegeName)

	rc, err := p.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", rc.UserID)
}

func TestVerifyAccess_ExpiredToken(t *testing.T) {
	cfg := testConfig("s3cret", "development")
	cfg.AccessTokenTTL = -time.Minute
	p, err := NewProvider(cfg)
	require.NoError(t, err)

	access, _, err := p.MintAccess("u1", "Jane", "Alpha College")
	require.NoError(t, err)

	_, err = p.VerifyAccess(access)
	require.Error(t, err)
}

func TestVerifyAccess_WrongSecretRejected(t *testing.T) {
	signer, err := NewProvider(testConfig("secret-a", "development"))
	require.NoError(t, err)
	verifier, err := NewProvider(testConfig("secret-b", "development"))
	require.NoError(t, err)

	access, _, err := signer.MintAccess("u1", "Jane", "Alpha College")
	require.NoError(t, err)

	_, err = verifier.VerifyAccess(access)
	require.Error(t, err)
}

func TestVerifyRefresh_ExpiredToken(t *testing.T) {
	cfg := testConfig("s3cret", "development")
	cfg.RefreshTokenTTL = -time.Minute
	p, err := NewProvider(cfg)
	require.NoError(t, err)

	_, refresh, err := p.IssuePair("u1", "Jane", "Alpha College")
	require.NoError(t, err)

	_, err = p.VerifyRefresh(refresh)
	require.Error(t, err)
}

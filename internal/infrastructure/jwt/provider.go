package jwtinfra

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/canopy-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// devFallbackSecret is used only when JWT_SECRET is unset outside production.
// It exists so the login flow is testable locally without extra setup and must
// never sign tokens in a production deployment; NewProvider fails closed there.
const devFallbackSecret = "dev-canopy-secret"

// ErrSecretMissing is returned when no signing secret is available in a
// production context.
var ErrSecretMissing = errors.New("jwt signing secret not configured")

// AccessClaims is the payload of the short-lived access token.
type AccessClaims struct {
	UserID      string `json:"uid"`
	Name        string `json:"name"`
	CollegeName string `json:"collegeName"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of the long-lived refresh token. It carries
// only the subject; profile fields are re-resolved from the store on refresh.
type RefreshClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Provider signs and verifies the HS256 access/refresh token pair. It keeps
// no per-session state; validity is derived from signature and embedded
// expiry alone.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.IsProduction() {
			return nil, ErrSecretMissing
		}
		slog.Warn("JWT_SECRET not set, falling back to development secret")
		secret = devFallbackSecret
	}
	return &Provider{
		secret:     []byte(secret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// MintAccess signs a fresh access token and returns it with its claims.
func (p *Provider) MintAccess(userID, name, collegeName string) (string, *AccessClaims, error) {
	now := time.Now()
	claims := &AccessClaims{
		UserID:      userID,
		Name:        name,
		CollegeName: collegeName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}
	return signed, claims, nil
}

// IssuePair mints the initial access+refresh pair after OTP verification.
// The refresh token's 7-day window is fixed at issuance; it is never
// re-minted on rotation, so the maximum unattended session length is bounded.
func (p *Provider) IssuePair(userID, name, collegeName string) (access, refresh string, err error) {
	access, _, err = p.MintAccess(userID, name, collegeName)
	if err != nil {
		return "", "", err
	}
	now := time.Now()
	rc := &RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.refreshTTL)),
		},
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, rc).SignedString(p.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

// VerifyAccess checks signature and TTL and returns the decoded claims.
func (p *Provider) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := p.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// VerifyRefresh checks signature and TTL of a refresh token.
func (p *Provider) VerifyRefresh(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := p.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (p *Provider) parse(tokenStr string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// AccessTTL exposes the configured access-token lifetime for cookie max-age.
func (p *Provider) AccessTTL() time.Duration { return p.accessTTL }

// RefreshTTL exposes the configured refresh-token lifetime for cookie max-age.
func (p *Provider) RefreshTTL() time.Duration { return p.refreshTTL }

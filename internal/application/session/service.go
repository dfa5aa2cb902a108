// Package session resolves the access/refresh cookie pair on every
// authenticated request, silently re-minting the access token while the
// refresh token is still live.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/canopy-api/internal/domain"
	jwtinfra "github.com/canopy-api/internal/infrastructure/jwt"
)

// UserStore re-resolves the subject on the refresh path, guarding against
// deleted or changed accounts.
type UserStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// TokenVerifier is the token-manager surface the resolver needs.
type TokenVerifier interface {
	VerifyAccess(token string) (*jwtinfra.AccessClaims, error)
	VerifyRefresh(token string) (*jwtinfra.RefreshClaims, error)
	MintAccess(userID, name, collegeName string) (string, *jwtinfra.AccessClaims, error)
}

type Service interface {
	// Resolve returns the session claims for the given cookie values. When the
	// access token is dead but the refresh token still verifies, a replacement
	// access token is returned alongside the refreshed claims; the refresh
	// token itself is never extended.
	Resolve(ctx context.Context, accessToken, refreshToken string) (claims *jwtinfra.AccessClaims, newAccess string, err error)
}

type service struct {
	users  UserStore
	tokens TokenVerifier
}

func NewService(users UserStore, tokens TokenVerifier) Service {
	return &service{users: users, tokens: tokens}
}

func (s *service) Resolve(ctx context.Context, accessToken, refreshToken string) (*jwtinfra.AccessClaims, string, error) {
	if s.tokens == nil {
		return nil, "", domain.ErrJWTSecretMissing
	}

	// Fast path: a live access token needs no store lookup.
	if accessToken != "" {
		if claims, err := s.tokens.VerifyAccess(accessToken); err == nil {
			return claims, "", nil
		}
	}

	if refreshToken == "" {
		return nil, "", fmt.Errorf("no credentials presented: %w", domain.ErrUnauthorized)
	}
	rc, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, "", fmt.Errorf("refresh token rejected: %w", domain.ErrUnauthorized)
	}

	u, err := s.users.Get(ctx, rc.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("subject no longer resolvable: %w", domain.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("resolve subject: %v: %w", err, domain.ErrServer)
	}

	// Claims are rebuilt from the store, not copied from the old token, so a
	// renamed user or college shows up after rotation.
	newAccess, claims, err := s.tokens.MintAccess(u.UserID, u.Name, u.CollegeName)
	if err != nil {
		return nil, "", fmt.Errorf("mint access token: %v: %w", err, domain.ErrServer)
	}
	return claims, newAccess, nil
}

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/canopy-api/internal/application/session"
	"github.com/canopy-api/internal/domain"
	jwtinfra "github.com/canopy-api/internal/infrastructure/jwt"
	"github.com/canopy-api/internal/transport/http/cookies"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// Session returns middleware that resolves the session cookies and injects
// the access claims into context. When the resolver rotates the access token,
// the replacement cookie rides out on this same response.
func Session(svc session.Service, cw cookies.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, newAccess, err := svc.Resolve(r.Context(), cookies.AccessToken(r), cookies.RefreshToken(r))
			if err != nil {
				if errors.Is(err, domain.ErrJWTSecretMissing) {
					writeRaw(w, http.StatusInternalServerError, `{"ok":false,"error":"jwt_secret_missing"}`)
					return
				}
				writeRaw(w, http.StatusUnauthorized, `{"ok":false,"error":"unauthorized"}`)
				return
			}
			if newAccess != "" {
				cw.SetAccess(w, newAccess)
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the session claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.AccessClaims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.AccessClaims)
	return c, ok
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

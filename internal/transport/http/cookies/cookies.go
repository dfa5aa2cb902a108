// Package cookies centralizes the session cookie contract shared by the
// auth handlers and the session middleware.
package cookies

import (
	"net/http"
	"time"
)

// Cookie names. Access and refresh carry the live pair; the legacy name is a
// single long-lived token from before the split and is honored read-only.
const (
	AccessName  = "canopy_access"
	RefreshName = "canopy_refresh"
	LegacyName  = "canopy_token"
)

// Writer stamps session cookies with consistent attributes.
type Writer struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (cw Writer) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cw.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetPair installs a fresh access/refresh pair.
func (cw Writer) SetPair(w http.ResponseWriter, access, refresh string) {
	cw.set(w, AccessName, access, cw.AccessTTL)
	cw.set(w, RefreshName, refresh, cw.RefreshTTL)
}

// SetAccess replaces only the access cookie, leaving the refresh cookie and
// its original expiry untouched.
func (cw Writer) SetAccess(w http.ResponseWriter, access string) {
	cw.set(w, AccessName, access, cw.AccessTTL)
}

// Clear expires every session cookie, the legacy one included.
func (cw Writer) Clear(w http.ResponseWriter) {
	for _, name := range []string{AccessName, RefreshName, LegacyName} {
		cw.set(w, name, "", -time.Second)
	}
}

func read(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// AccessToken returns the presented access token, falling back to the legacy
// cookie so pre-split sessions keep working until they expire.
func AccessToken(r *http.Request) string {
	if v := read(r, AccessName); v != "" {
		return v
	}
	return read(r, LegacyName)
}

// RefreshToken returns the presented refresh token, if any.
func RefreshToken(r *http.Request) string {
	return read(r, RefreshName)
}

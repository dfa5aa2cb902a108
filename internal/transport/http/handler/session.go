package handler

import (
	"net/http"

	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/transport/http/middleware"
)

// SessionHandler reports the current session. Resolution and silent rotation
// happen in the middleware before this runs.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler { return &SessionHandler{} }

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Error: "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{OK: true, User: &domain.PublicUser{
		ID:          claims.UserID,
		Name:        claims.Name,
		CollegeName: claims.CollegeName,
	}})
}

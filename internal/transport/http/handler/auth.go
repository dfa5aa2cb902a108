package handler

import (
	"encoding/json"
	"net/http"

	"github.com/canopy-api/internal/application/auth"
	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/pkg/validate"
	"github.com/canopy-api/internal/transport/http/cookies"
)

// AuthHandler handles the passwordless login endpoints.
type AuthHandler struct {
	svc     auth.Service
	cookies cookies.Writer
}

func NewAuthHandler(svc auth.Service, cw cookies.Writer) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cw}
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "missing_fields"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	dev, err := h.svc.RequestOTP(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{OK: true, Dev: dev})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "missing_fields"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cookies.SetPair(w, res.AccessToken, res.RefreshToken)
	writeJSON(w, http.StatusOK, AuthEnvelope{OK: true, User: &res.User})
}

// Logout clears every session cookie. Tokens are stateless, so there is
// nothing server-side to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, Envelope{OK: true})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canopy-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Envelope is the generic {ok, error} response wrapper the frontend switches
// on. Error carries a stable machine code, never prose.
type Envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// AuthEnvelope wraps send-otp/verify-otp/session responses.
type AuthEnvelope struct {
	OK     bool               `json:"ok"`
	Error  string             `json:"error,omitempty"`
	Domain string             `json:"domain,omitempty"`
	Dev    bool               `json:"dev,omitempty"`
	User   *domain.PublicUser `json:"user,omitempty"`
}

// CollegeEnvelope wraps a single directory lookup.
type CollegeEnvelope struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Name   string `json:"name,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// CollegesEnvelope wraps typeahead search results.
type CollegesEnvelope struct {
	OK       bool     `json:"ok"`
	Colleges []string `json:"colleges"`
}

// ListingEnvelope wraps single-listing responses.
type ListingEnvelope struct {
	OK      bool            `json:"ok"`
	Error   string          `json:"error,omitempty"`
	Listing *domain.Listing `json:"listing,omitempty"`
}

// ListingsEnvelope wraps listing feeds.
type ListingsEnvelope struct {
	OK       bool             `json:"ok"`
	Error    string           `json:"error,omitempty"`
	Listings []domain.Listing `json:"listings"`
}

// UploadEnvelope wraps a completed upload.
type UploadEnvelope struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	URL    string `json:"url,omitempty"`
	FileID string `json:"fileId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the wire contract. Coded errors carry
// their own status and code; validation failures collapse to missing_fields;
// anything else is an opaque server_error.
func writeError(w http.ResponseWriter, err error) {
	var ce *domain.CodedError
	if errors.As(err, &ce) {
		if ce.Domain != "" {
			writeJSON(w, ce.Status, AuthEnvelope{Error: ce.Code, Domain: ce.Domain})
			return
		}
		writeJSON(w, ce.Status, Envelope{Error: ce.Code})
		return
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "missing_fields"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, Envelope{Error: "server_error"})
}

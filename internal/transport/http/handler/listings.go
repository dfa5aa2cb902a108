package handler

import (
	"encoding/json"
	"net/http"

	"github.com/canopy-api/internal/application/listing"
	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/pkg/validate"
	"github.com/canopy-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// ListingHandler handles the marketplace CRUD endpoints.
type ListingHandler struct {
	svc listing.Service
}

func NewListingHandler(svc listing.Service) *ListingHandler { return &ListingHandler{svc: svc} }

func viewerFromContext(r *http.Request) (listing.Viewer, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return listing.Viewer{}, false
	}
	return listing.Viewer{UserID: claims.UserID, Name: claims.Name, CollegeName: claims.CollegeName}, true
}

func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	v, ok := viewerFromContext(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Error: "unauthorized"})
		return
	}
	listings, err := h.svc.List(r.Context(), v, r.URL.Query().Get("type"), r.URL.Query().Get("mine") == "true")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListingsEnvelope{OK: true, Listings: listings})
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	v, ok := viewerFromContext(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Error: "unauthorized"})
		return
	}
	var req domain.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "missing_fields"})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}
	l, err := h.svc.Create(r.Context(), v, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ListingEnvelope{OK: true, Listing: l})
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	v, ok := viewerFromContext(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Error: "unauthorized"})
		return
	}
	var req domain.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "missing_fields"})
		return
	}
	l, err := h.svc.Update(r.Context(), v, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListingEnvelope{OK: true, Listing: l})
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	v, ok := viewerFromContext(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Error: "unauthorized"})
		return
	}
	if err := h.svc.Delete(r.Context(), v, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{OK: true})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/canopy-api/internal/application/college"
)

// CollegeHandler exposes the static directory.
type CollegeHandler struct {
	svc college.Service
}

func NewCollegeHandler(svc college.Service) *CollegeHandler { return &CollegeHandler{svc: svc} }

// Search handles the typeahead: GET /colleges?q=...&limit=n.
func (h *CollegeHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	names := h.svc.Search(r.URL.Query().Get("q"), limit)
	writeJSON(w, http.StatusOK, CollegesEnvelope{OK: true, Colleges: names})
}

// Lookup resolves one college: GET /college?name=...
func (h *CollegeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "missing_fields"})
		return
	}
	entry, err := h.svc.Lookup(name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CollegeEnvelope{OK: true, Name: entry.Name, Domain: entry.Domain})
}

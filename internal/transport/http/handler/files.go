package handler

import (
	"net/http"

	fileapp "github.com/canopy-api/internal/application/file"
	"github.com/canopy-api/internal/transport/http/middleware"
)

// FileHandler relays multipart uploads into object storage.
type FileHandler struct {
	svc fileapp.Service
}

func NewFileHandler(svc fileapp.Service) *FileHandler { return &FileHandler{svc: svc} }

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Envelope{Error: "unauthorized"})
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "no_file"})
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Error: "no_file"})
		return
	}
	defer f.Close()

	uploaded, err := h.svc.Upload(r.Context(), claims.UserID, header.Filename, header.Header.Get("Content-Type"), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadEnvelope{OK: true, URL: uploaded.URL, FileID: uploaded.FileID})
}

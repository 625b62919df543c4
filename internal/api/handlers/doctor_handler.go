package handlers

import (
	"bytes"
	"net/http"

	"github.com/zatekoja/ncrm/internal/application/services"
	"github.com/zatekoja/ncrm/internal/render"
)

// DoctorHandler handles doctor lookups, referrals and search
type DoctorHandler struct {
	directory *services.DirectoryService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(directory *services.DirectoryService) *DoctorHandler {
	return &DoctorHandler{directory: directory}
}

// GetDoctor handles GET /api/doctors/{name}
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	details, err := h.directory.GetDoctor(r.Context(), r.PathValue("name"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, details)
}

// AddReferral handles POST /api/doctors/{name}/referrals
func (h *DoctorHandler) AddReferral(w http.ResponseWriter, r *http.Request) {
	var payload services.DoctorInput
	if !decodeJSON(w, r, &payload) {
		return
	}

	details, err := h.directory.AddReferral(r.Context(), r.PathValue("name"), payload)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, details)
}

// Search handles GET /api/search?q=
func (h *DoctorHandler) Search(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.directory.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// Suggestions handles GET /api/suggestions
func (h *DoctorHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.directory.Suggestions(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, suggestions)
}

// Tree handles GET /api/tree and writes the (optionally filtered) forest as
// plain text.
func (h *DoctorHandler) Tree(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.directory.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Forest(&buf, hospitals); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

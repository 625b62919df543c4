package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/ncrm/internal/application/services"
)

// ImportHandler replaces the stored documents with uploaded ones
type ImportHandler struct {
	directory *services.DirectoryService
}

// NewImportHandler creates a new import handler
func NewImportHandler(directory *services.DirectoryService) *ImportHandler {
	return &ImportHandler{directory: directory}
}

type importRequest struct {
	Hospitals json.RawMessage `json:"hospitals"`
	Notes     json.RawMessage `json:"notes"`
}

// Import handles POST /api/import
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var payload importRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if err := h.directory.Import(r.Context(), payload.Hospitals, payload.Notes); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "imported",
	})
}

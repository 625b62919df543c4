package handlers

import (
	"net/http"

	"github.com/zatekoja/ncrm/internal/application/services"
)

// HospitalHandler handles hospital HTTP requests
type HospitalHandler struct {
	directory *services.DirectoryService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(directory *services.DirectoryService) *HospitalHandler {
	return &HospitalHandler{directory: directory}
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.directory.ListHospitals(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// CreateHospital handles POST /api/hospitals
func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}

	hospital, err := h.directory.AddHospital(r.Context(), payload.Name)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, hospital)
}

// GetHospital handles GET /api/hospitals/{name}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospital, err := h.directory.GetHospital(r.Context(), r.PathValue("name"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

// RenameHospital handles PUT /api/hospitals/{name}
func (h *HospitalHandler) RenameHospital(w http.ResponseWriter, r *http.Request) {
	var payload renameRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	if err := h.directory.RenameHospital(r.Context(), r.PathValue("name"), payload.Name); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "renamed",
		"name":   payload.Name,
	})
}

// AddDoctor handles POST /api/hospitals/{name}/doctors
func (h *HospitalHandler) AddDoctor(w http.ResponseWriter, r *http.Request) {
	var payload services.DoctorInput
	if !decodeJSON(w, r, &payload) {
		return
	}

	doctor, err := h.directory.AddDoctor(r.Context(), r.PathValue("name"), payload)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, doctor)
}

// RenameDoctor handles PUT /api/hospitals/{hospital}/doctors/{name}
func (h *HospitalHandler) RenameDoctor(w http.ResponseWriter, r *http.Request) {
	var payload renameRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	err := h.directory.RenameDoctor(r.Context(), r.PathValue("hospital"), r.PathValue("name"), payload.Name)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "renamed",
		"name":   payload.Name,
	})
}

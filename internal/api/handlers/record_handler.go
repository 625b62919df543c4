package handlers

import (
	"net/http"
	"strconv"

	"github.com/zatekoja/ncrm/internal/application/services"
	"github.com/zatekoja/ncrm/internal/domain/entities"
)

// RecordHandler handles doctor phones and notes
type RecordHandler struct {
	records *services.RecordService
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(records *services.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

type noteRequest struct {
	Doctor   string `json:"doctor"`
	Hospital string `json:"hospital"`
	Date     string `json:"date"`
	Desc     string `json:"desc"`
}

type phonesRequest struct {
	Doctor   string   `json:"doctor"`
	Hospital string   `json:"hospital"`
	Phones   []string `json:"phones"`
}

// recordResponse adds the list-view previews of each note.
type recordResponse struct {
	Record   *entities.DoctorRecord `json:"record"`
	Previews []string               `json:"previews"`
}

func newRecordResponse(record *entities.DoctorRecord) recordResponse {
	previews := make([]string, 0, len(record.Notes))
	for _, n := range record.Notes {
		previews = append(previews, n.Preview())
	}
	return recordResponse{Record: record, Previews: previews}
}

// GetRecord handles GET /api/records?doctor=&hospital=
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	record, err := h.records.GetRecord(r.Context(), query.Get("doctor"), query.Get("hospital"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newRecordResponse(record))
}

// AddNote handles POST /api/records/notes
func (h *RecordHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var payload noteRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	record, err := h.records.AddNote(r.Context(), payload.Doctor, payload.Hospital,
		services.NoteInput{Date: payload.Date, Desc: payload.Desc})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newRecordResponse(record))
}

// UpdateNote handles PUT /api/records/notes/{index}
func (h *RecordHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "note index must be a number")
		return
	}

	var payload noteRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	record, err := h.records.UpdateNote(r.Context(), payload.Doctor, payload.Hospital, index,
		services.NoteInput{Date: payload.Date, Desc: payload.Desc})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newRecordResponse(record))
}

// SetPhones handles PUT /api/records/phones
func (h *RecordHandler) SetPhones(w http.ResponseWriter, r *http.Request) {
	var payload phonesRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	record, err := h.records.SetPhones(r.Context(), payload.Doctor, payload.Hospital, payload.Phones)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newRecordResponse(record))
}

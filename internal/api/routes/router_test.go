package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ncrm/internal/adapters/filestore"
	"github.com/zatekoja/ncrm/internal/api/handlers"
	"github.com/zatekoja/ncrm/internal/api/routes"
	"github.com/zatekoja/ncrm/internal/application/services"
)

func newTestServer(t *testing.T) (http.Handler, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	hospitals := filestore.NewHospitalAdapter(fs, "/data/hospital_data.json")
	records := filestore.NewDoctorRecordAdapter(fs, "/data/doctor_notes.json")
	lock := services.NewStoreLock()
	directory := services.NewDirectoryService(hospitals, records, lock)
	recordService := services.NewRecordService(hospitals, records, lock)

	router := routes.NewRouter(
		handlers.NewHospitalHandler(directory),
		handlers.NewDoctorHandler(directory),
		handlers.NewRecordHandler(recordService),
		handlers.NewImportHandler(directory),
		[]string{"*"},
		nil,
	)
	return router.SetupRoutes(), fs
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestHospitalLifecycle(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/hospitals", `{"name":"General"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/api/hospitals", `{"name":"GENERAL"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, decode(t, w)["error"])

	w = do(t, h, http.MethodPost, "/api/hospitals", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/hospitals/general", `{"name":"Lagos General"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/hospitals/Lagos%20General", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lagos General", decode(t, w)["name"])

	w = do(t, h, http.MethodGet, "/api/hospitals/General", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/api/hospitals", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])
}

func TestDoctorsReferralsAndRecords(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/hospitals/General/doctors",
		`{"name":"Dr. Adeyemi","role":"Cardiologist","address":"Ikeja"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/api/hospitals/General/doctors", `{"name":"Dr. Eze","role":"","address":"Yaba"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/api/doctors/dr.%20adeyemi/referrals",
		`{"name":"Dr. Bello","role":"Neurologist","address":"Yaba"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "General", decode(t, w)["hospital"])

	w = do(t, h, http.MethodGet, "/api/doctors/DR.%20BELLO", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/api/records/notes",
		`{"doctor":"Dr. Bello","hospital":"General","date":"1/2/2025","desc":"`+strings.Repeat("x", 50)+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	previews := body["previews"].([]interface{})
	require.Len(t, previews, 1)
	assert.Equal(t, strings.Repeat("x", 40)+"...", previews[0])

	w = do(t, h, http.MethodPut, "/api/records/notes/0",
		`{"doctor":"Dr. Bello","hospital":"General","date":"2/2/2025","desc":"edited"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPut, "/api/records/notes/5",
		`{"doctor":"Dr. Bello","hospital":"General","date":"2/2/2025","desc":"edited"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPut, "/api/records/notes/first", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPut, "/api/records/phones",
		`{"doctor":"Dr. Bello","hospital":"General","phones":["0801"," "]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPut, "/api/hospitals/General/doctors/Dr.%20Bello", `{"name":"Dr. Bello-Okafor"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/records?doctor=Dr.%20Bello-Okafor&hospital=General", "")
	require.Equal(t, http.StatusOK, w.Code)
	record := decode(t, w)["record"].(map[string]interface{})
	assert.Equal(t, []interface{}{"0801"}, record["phones"])
	notes := record["notes"].([]interface{})
	require.Len(t, notes, 1)
	assert.Equal(t, "edited", notes[0].(map[string]interface{})["desc"])
}

func TestSearchSuggestionsAndTree(t *testing.T) {
	h, _ := newTestServer(t)

	do(t, h, http.MethodPost, "/api/hospitals/General/doctors", `{"name":"Dr. Adeyemi","role":"Cardiologist","address":"Ikeja"}`)
	do(t, h, http.MethodPost, "/api/hospitals/St.%20Mary/doctors", `{"name":"Dr. Okafor","role":"GP","address":"Ikoyi"}`)

	w := do(t, h, http.MethodGet, "/api/search?q=cardio", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = do(t, h, http.MethodGet, "/api/suggestions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["doctor_labels"], 2)

	w = do(t, h, http.MethodGet, "/api/tree?q=ikoyi", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "Dr. Okafor - GP (Ikoyi)")
	assert.NotContains(t, w.Body.String(), "Dr. Adeyemi")
}

func TestImport(t *testing.T) {
	h, fs := newTestServer(t)

	w := do(t, h, http.MethodPost, "/api/import", `{"hospitals":[{"name":"Imported","doctors":[]}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	exists, err := afero.Exists(fs, "/data/hospital_data.json")
	require.NoError(t, err)
	assert.False(t, exists)

	w = do(t, h, http.MethodPost, "/api/import", `{"hospitals":[{"name":"Imported","doctors":[]}],"notes":[]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/api/hospitals/imported", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	h, fs := newTestServer(t)
	require.NoError(t, afero.WriteFile(fs, "/data/hospital_data.json", []byte(`{broken`), 0o644))

	w := do(t, h, http.MethodGet, "/api/hospitals", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
}

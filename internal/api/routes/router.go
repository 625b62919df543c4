package routes

import (
	"net/http"

	"github.com/zatekoja/ncrm/internal/api/handlers"
	"github.com/zatekoja/ncrm/internal/api/middleware"
	"github.com/zatekoja/ncrm/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler *handlers.HospitalHandler
	doctorHandler   *handlers.DoctorHandler
	recordHandler   *handlers.RecordHandler
	importHandler   *handlers.ImportHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	doctorHandler *handlers.DoctorHandler,
	recordHandler *handlers.RecordHandler,
	importHandler *handlers.ImportHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		hospitalHandler: hospitalHandler,
		doctorHandler:   doctorHandler,
		recordHandler:   recordHandler,
		importHandler:   importHandler,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hospital endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("POST /api/hospitals", r.hospitalHandler.CreateHospital)
	r.mux.HandleFunc("GET /api/hospitals/{name}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("PUT /api/hospitals/{name}", r.hospitalHandler.RenameHospital)
	r.mux.HandleFunc("POST /api/hospitals/{name}/doctors", r.hospitalHandler.AddDoctor)
	r.mux.HandleFunc("PUT /api/hospitals/{hospital}/doctors/{name}", r.hospitalHandler.RenameDoctor)

	// Doctor endpoints
	r.mux.HandleFunc("GET /api/doctors/{name}", r.doctorHandler.GetDoctor)
	r.mux.HandleFunc("POST /api/doctors/{name}/referrals", r.doctorHandler.AddReferral)

	// Search endpoints
	r.mux.HandleFunc("GET /api/search", r.doctorHandler.Search)
	r.mux.HandleFunc("GET /api/suggestions", r.doctorHandler.Suggestions)
	r.mux.HandleFunc("GET /api/tree", r.doctorHandler.Tree)

	// Record endpoints
	r.mux.HandleFunc("GET /api/records", r.recordHandler.GetRecord)
	r.mux.HandleFunc("POST /api/records/notes", r.recordHandler.AddNote)
	r.mux.HandleFunc("PUT /api/records/notes/{index}", r.recordHandler.UpdateNote)
	r.mux.HandleFunc("PUT /api/records/phones", r.recordHandler.SetPhones)

	r.mux.HandleFunc("POST /api/import", r.importHandler.Import)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics, r.mux)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

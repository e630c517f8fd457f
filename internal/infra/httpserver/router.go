package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalytics "github.com/sainiharshit322/personnel-empowerment/internal/application/analytics"
	appexport "github.com/sainiharshit322/personnel-empowerment/internal/application/export"
	appquestions "github.com/sainiharshit322/personnel-empowerment/internal/application/questions"
	appsurveys "github.com/sainiharshit322/personnel-empowerment/internal/application/surveys"
	domai "github.com/sainiharshit322/personnel-empowerment/internal/domain/ai"
	domain "github.com/sainiharshit322/personnel-empowerment/internal/domain/surveys"
	"github.com/sainiharshit322/personnel-empowerment/internal/middleware"
)

type Router struct {
	surveysSvc   *appsurveys.Service
	analyticsSvc *appanalytics.Service
	questionsSvc *appquestions.Service
	exportSvc    *appexport.Service
	dbName       string
	staticDir    string
}

// Options carries the optional pieces of the HTTP surface
type Options struct {
	// DBName is reported by /api/mongodb/status
	DBName string
	// StaticDir serves the survey/analytics pages; empty disables pages
	StaticDir string
	// AllowedOrigins for the /api CORS policy; empty allows any origin
	AllowedOrigins []string
	// Export enables POST /api/analytics/export when non-nil
	Export *appexport.Service
}

func NewRouter(
	surveysSvc *appsurveys.Service,
	analyticsSvc *appanalytics.Service,
	questionsSvc *appquestions.Service,
	opts Options,
) http.Handler {
	r := &Router{
		surveysSvc:   surveysSvc,
		analyticsSvc: analyticsSvc,
		questionsSvc: questionsSvc,
		exportSvc:    opts.Export,
		dbName:       opts.DBName,
		staticDir:    opts.StaticDir,
	}
	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"mongodb": &middleware.MongoHealthChecker{Store: surveysSvc.Repo},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux.Route("/api", func(rt chi.Router) {
		rt.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
		rt.Post("/save-survey", r.wrap(r.handleSaveSurvey))
		rt.Get("/questions", r.wrap(r.handleQuestions))
		rt.Get("/surveys", r.wrap(r.handleSurveysProbe))
		rt.Get("/surveys/{id}", r.wrap(r.handleGetSurvey))
		rt.Delete("/surveys/{id}", r.wrap(r.handleDeleteSurvey))
		rt.Get("/mongodb/status", r.wrap(r.handleMongoStatus))
		rt.Get("/analytics/data", r.wrap(r.handleAnalyticsData))
		if r.exportSvc != nil {
			rt.Post("/analytics/export", r.wrap(r.handleAnalyticsExport))
		}
	})

	if r.staticDir != "" {
		mux.Get("/", r.servePage("index.html"))
		mux.Get("/survey", r.servePage("index.html"))
		mux.Get("/analytics", r.servePage("analytics.html"))
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(r.staticDir)))
		mux.Handle("/static/*", fs)
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps handler errors to the JSON error shapes the frontend expects
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]any{"error": "Survey not found"})
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /api/save-survey
// Annotates every response, then upserts the whole document by surveyId.
func (r *Router) handleSaveSurvey(w http.ResponseWriter, req *http.Request) error {
	var survey domain.Survey
	if err := json.NewDecoder(req.Body).Decode(&survey); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return nil
	}

	res, err := r.surveysSvc.Ingest(req.Context(), &survey)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return nil
	}

	middleware.IncrementSurveysIngested()
	writeJSON(w, http.StatusOK, res)
	return nil
}

// GET /api/questions
func (r *Router) handleQuestions(w http.ResponseWriter, req *http.Request) error {
	qs, err := r.questionsSvc.Questions(req.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
	return nil
}

// GET /api/surveys — health probe kept for the frontend
func (r *Router) handleSurveysProbe(w http.ResponseWriter, req *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	return nil
}

// GET /api/surveys/{id}
func (r *Router) handleGetSurvey(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	survey, err := r.surveysSvc.Get(req.Context(), domain.SurveyID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, survey)
	return nil
}

// DELETE /api/surveys/{id}
func (r *Router) handleDeleteSurvey(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	deleted, err := r.surveysSvc.Delete(req.Context(), domain.SurveyID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
	return nil
}

// GET /api/mongodb/status
func (r *Router) handleMongoStatus(w http.ResponseWriter, req *http.Request) error {
	connected := r.surveysSvc.Repo.Ping(req.Context()) == nil

	var count int64
	if connected {
		// count failure degrades to 0 rather than failing the status check
		if c, err := r.surveysSvc.Count(req.Context()); err == nil {
			count = c
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"connected":     connected,
		"surveys_count": count,
		"database":      r.dbName,
	})
	return nil
}

// GET /api/analytics/data
// A store failure still returns the full zeroed payload, with HTTP 500.
func (r *Router) handleAnalyticsData(w http.ResponseWriter, req *http.Request) error {
	snap, err := r.analyticsSvc.Snapshot(req.Context())
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, snap)
	return nil
}

// POST /api/analytics/export
func (r *Router) handleAnalyticsExport(w http.ResponseWriter, req *http.Request) error {
	res, err := r.exportSvc.Run(req.Context())
	if err != nil {
		return err
	}
	middleware.IncrementExports()
	writeJSON(w, http.StatusOK, res)
	return nil
}

func (r *Router) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(r.staticDir, name))
	}
}

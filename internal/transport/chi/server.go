package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/zoto/internal/domain"
	logpkg "github.com/kailas-cloud/zoto/internal/logger"
	healthuc "github.com/kailas-cloud/zoto/internal/usecase/health"
	sessionuc "github.com/kailas-cloud/zoto/internal/usecase/session"
	"github.com/kailas-cloud/zoto/internal/version"
)

// maxBodyBytes caps request bodies; every request body here is a tiny JSON object.
const maxBodyBytes = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the presentation API: catalogs, sessions and search triggers.
type Server struct {
	sessions      *sessionuc.Registry
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(sessions *sessionuc.Registry, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		sessions: sessions,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(sessionuc.ErrNotFound, http.StatusNotFound, CodeSessionNotFound),
		validationHandler,
	}
	return s
}

// Routes registers all API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/version", s.Version)
	r.Get("/catalog", s.Catalog)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/toggle", s.Toggle)
			r.Post("/select", s.Select)
			r.Put("/craving", s.SetCraving)
			r.Post("/search", s.StartSearch)
		})
	})
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	logpkg.FromContext(r.Context()).Debug("Session created", zap.String("session_id", sess.ID))
	writeJSON(w, http.StatusCreated, sessionToResponse(sess))
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles POST /sessions/{id}/toggle.
func (s *Server) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req FieldValueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := sess.Toggle(req.Field, req.Value); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// Select handles POST /sessions/{id}/select.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req FieldValueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := sess.Select(req.Field, req.Value); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// SetCraving handles PUT /sessions/{id}/craving.
func (s *Server) SetCraving(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req CravingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess.SetCraving(req.Text)
	writeJSON(w, http.StatusOK, sessionToResponse(sess))
}

// StartSearch handles POST /sessions/{id}/search.
// 202 when a new attempt started, 200 when one was already in flight.
// With ?wait=true the attempt runs to completion before responding.
func (s *Server) StartSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		st, accepted := sess.Search(r.Context())
		writeJSON(w, http.StatusOK, SearchResponse{Accepted: accepted, State: stateToResponse(st)})
		return
	}

	accepted := sess.StartSearch(r.Context())
	status := http.StatusAccepted
	if !accepted {
		status = http.StatusOK
	}
	writeJSON(w, status, SearchResponse{Accepted: accepted, State: stateToResponse(sess.State())})
}

// Catalog handles GET /catalog.
func (s *Server) Catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse())
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*sessionuc.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return nil, false
	}
	return sess, true
}

func sessionToResponse(sess *sessionuc.Session) SessionResponse {
	return SessionResponse{
		ID:        sess.ID,
		Selection: sess.Selection(),
		State:     stateToResponse(sess.State()),
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func validationHandler(w http.ResponseWriter, err error) bool {
	var se *domain.SearchError
	if !errors.As(err, &se) || !errors.Is(se, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, se.Message)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("Request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

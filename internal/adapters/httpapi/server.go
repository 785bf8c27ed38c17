package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/andrekvist/burgersim/internal/application/session"
	"github.com/andrekvist/burgersim/internal/domain/game"
)

// Server exposes the session service over HTTP.
type Server struct {
	sessions *session.Service
	router   chi.Router
}

// Option customizes server construction
type Option func(*serverOptions)

type serverOptions struct {
	metricsHandler http.Handler
	rateLimiter    func(http.Handler) http.Handler
	requestLogging bool
}

// WithMetricsHandler mounts a metrics endpoint at /metrics
func WithMetricsHandler(h http.Handler) Option {
	return func(o *serverOptions) { o.metricsHandler = h }
}

// WithRateLimiter installs a request rate limiting middleware
func WithRateLimiter(mw func(http.Handler) http.Handler) Option {
	return func(o *serverOptions) { o.rateLimiter = mw }
}

// WithRequestLogging logs every request; intended for debug-level operation
func WithRequestLogging() Option {
	return func(o *serverOptions) { o.requestLogging = true }
}

// NewServer builds the HTTP server and wires all routes
func NewServer(sessions *session.Service, opts ...Option) *Server {
	var options serverOptions
	for _, opt := range opts {
		opt(&options)
	}

	s := &Server{sessions: sessions}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if options.requestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	if options.rateLimiter != nil {
		r.Use(options.rateLimiter)
	}

	r.Get("/health", s.handleHealth)
	if options.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", options.metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", s.handleListLevels)
		r.Post("/games", s.handleCreateGame)
		r.Get("/games", s.handleListGames)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Post("/days", s.handleAdvanceDay)
			r.Post("/validate", s.handleValidateAction)
			r.Get("/result", s.handleGetResult)
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createGameRequest struct {
	UserID  string `json:"userId"`
	LevelID string `json:"levelId"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.LevelID == "" {
		writeJSONError(w, http.StatusBadRequest, "userId and levelId are required")
		return
	}

	sess, err := s.sessions.Create(r.Context(), req.UserID, req.LevelID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}
	sessions, err := s.sessions.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	var action game.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, err := s.sessions.Advance(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleValidateAction(w http.ResponseWriter, r *http.Request) {
	var action game.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.sessions.Validate(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.sessions.Result(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type levelSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	StartingCash   float64 `json:"startingCash"`
	DaysToComplete int     `json:"daysToComplete"`
	MaxScore       int     `json:"maxScore"`
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	var out []levelSummary
	for _, cfg := range s.sessions.Levels().List() {
		out = append(out, levelSummary{
			ID:             cfg.ID,
			Name:           cfg.Name,
			StartingCash:   cfg.StartingCash,
			DaysToComplete: cfg.DaysToComplete,
			MaxScore:       cfg.MaxScore,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeServiceError maps service errors to HTTP status codes
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeJSONError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrUnknownLevel):
		writeJSONError(w, http.StatusNotFound, "unknown level")
	case errors.Is(err, session.ErrGameOver):
		writeJSONError(w, http.StatusConflict, "game is over")
	case errors.Is(err, session.ErrActionRejected):
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/maze-runner/maze/engine"
	"github.com/wricardo/maze-runner/maze/reader"
	"github.com/wricardo/maze-runner/maze/service"
	"github.com/wricardo/maze-runner/transport/websocket"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// Server represents the REST API server
type Server struct {
	service service.MazeService
	hub     *websocket.Hub
	metrics http.Handler
	router  *mux.Router
	handler http.Handler
	log     logrus.FieldLogger
}

// Option configures a Server
type Option func(*Server)

// WithMetricsHandler serves h on /metrics
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates a new API server. hub may be nil to disable websocket pushes.
func NewServer(mazeService service.MazeService, hub *websocket.Hub, opts ...Option) *Server {
	s := &Server{
		service: mazeService,
		hub:     hub,
		router:  mux.NewRouter(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	s.handler = Cors()(s.router)
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(Logging(s.log))

	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Maze operations
	api.HandleFunc("/sessions/{id}/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/render", s.handleRender).Methods("GET")

	// Catalog
	api.HandleFunc("/mazes", s.handleListMazes).Methods("GET")
	api.HandleFunc("/mazes/{name}", s.handleGetMaze).Methods("GET")
	api.HandleFunc("/mazes/{name}", s.handleSaveMaze).Methods("PUT")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/ws", s.handleWebSocket)
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics).Methods("GET")
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto HTTP status codes
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrMazeNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidMaze),
		errors.Is(err, engine.ErrInvalidArgument),
		errors.Is(err, reader.ErrInvalidToken):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNoStartCell):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MazeID string   `json:"maze_id,omitempty"`
		Rows   []string `json:"rows,omitempty"`
	}

	// An empty body selects the default maze
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.MazeID != "" && len(req.Rows) > 0 {
		respondError(w, http.StatusBadRequest, "Provide either maze_id or rows, not both")
		return
	}

	var (
		info *service.SessionInfo
		err  error
	)
	if len(req.Rows) > 0 {
		info, err = s.service.CreateSessionFromRows(r.Context(), req.Rows)
	} else {
		info, err = s.service.CreateSession(r.Context(), req.MazeID)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

// listSessionsQuery holds the query parameters of GET /api/sessions
type listSessionsQuery struct {
	Sort  string `schema:"sort"`  // "created", "accessed" (default)
	Order string `schema:"order"` // "asc", "desc" (default)
	Limit int    `schema:"limit"`
	Maze  string `schema:"maze"`
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	var query listSessionsQuery
	if err := decoder.Decode(&query, r.URL.Query()); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid query: %v", err))
		return
	}
	if query.Sort == "" {
		query.Sort = "accessed"
	}
	if query.Order == "" {
		query.Order = "desc"
	}

	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if query.Maze != "" {
		filtered := sessions[:0]
		for _, sess := range sessions {
			if sess.MazeName == query.Maze {
				filtered = append(filtered, sess)
			}
		}
		sessions = filtered
	}
	total := len(sessions)

	sort.SliceStable(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if query.Sort == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}
		if query.Order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	if query.Limit > 0 && query.Limit < len(sessions) {
		sessions = sessions[:query.Limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     query.Sort,
		"order":    query.Order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventSessionDeleted, nil)
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Maze Operation Handlers

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Solve(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventSolveResult, result)
	}

	s.log.WithFields(logrus.Fields{
		"session":  sessionID,
		"found":    result.Found,
		"path":     result.PathLength,
		"explored": result.Explored,
	}).Info("solve")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(sessionID, websocket.EventReset, info)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Maze reset successfully",
		"session": info,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	text, err := s.service.Render(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// Catalog Handlers

func (s *Server) handleListMazes(w http.ResponseWriter, r *http.Request) {
	mazes, err := s.service.ListMazes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mazes)
}

func (s *Server) handleGetMaze(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetMaze(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleSaveMaze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows []string `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.SaveMaze(r.Context(), mux.Vars(r)["name"], req.Rows)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "WebSocket not available")
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "session query parameter is required")
		return
	}
	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

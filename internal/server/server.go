// Package server provides the local control HTTP server: health, tuning
// settings, session history, the live signal WebSocket and the camera
// preview stream.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sarkar13aditya/black-hole-chill/internal/capture"
	"github.com/sarkar13aditya/black-hole-chill/internal/input"
	"github.com/sarkar13aditya/black-hole-chill/internal/rig"
	"github.com/sarkar13aditya/black-hole-chill/internal/store"
)

// Config holds the server configuration. Nil collaborators disable the
// routes that need them.
type Config struct {
	Store   *store.Store
	Tracker *input.Tracker
	Orbit   *rig.Rig
	Camera  capture.Camera
}

// Server represents the local control HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/settings", s.handleSettings)
		s.mux.HandleFunc("/api/sessions", s.handleSessions)
	}

	if s.config.Tracker != nil {
		s.mux.Handle("/api/signal", NewSignalHandler(s.config.Tracker))
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Tracker != nil {
		response["tracking"] = s.config.Tracker.Status().String()
	}

	writeJSON(w, http.StatusOK, response)
}

// handleSettings serves the tuning row. A PUT persists the new tuning and
// hot-applies it to the running tracker and camera rig.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.config.Store.Settings().Get()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		writeJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var settings store.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := settings.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := s.config.Store.Settings().Update(&settings); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}

		if s.config.Tracker != nil {
			s.config.Tracker.SetPinchThreshold(settings.PinchThreshold)
		}
		if s.config.Orbit != nil {
			s.config.Orbit.SetRadii(settings.NearRadius, settings.FarRadius)
		}

		writeJSON(w, http.StatusOK, settings)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type sessionResponse struct {
	ID         string `json:"id"`
	InputMode  string `json:"input_mode"`
	PinchCount int    `json:"pinch_count"`
	ProbeCount int    `json:"probe_count"`
	StartedAt  string `json:"started_at"`
	EndedAt    string `json:"ended_at,omitempty"`
}

// handleSessions lists recent viewing sessions.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	sessions, err := s.config.Store.Sessions().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		resp := sessionResponse{
			ID:         sess.ID,
			InputMode:  sess.InputMode,
			PinchCount: sess.PinchCount,
			ProbeCount: sess.ProbeCount,
			StartedAt:  sess.StartedAt.Format(time.RFC3339),
		}
		if sess.EndedAt.Valid {
			resp.EndedAt = sess.EndedAt.Time.Format(time.RFC3339)
		}
		out = append(out, resp)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": out})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

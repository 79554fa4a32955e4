package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sarkar13aditya/black-hole-chill/internal/input"
	"github.com/sarkar13aditya/black-hole-chill/internal/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SignalHandler broadcasts the live input signal via WebSocket so a
// browser overlay can mirror the cursor and pinch state.
type SignalHandler struct {
	tracker *input.Tracker
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewSignalHandler creates a SignalHandler reading from the given tracker.
func NewSignalHandler(t *input.Tracker) *SignalHandler {
	h := &SignalHandler{
		tracker: t,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SignalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes the latest signal to all connected clients at ~30 Hz.
func (h *SignalHandler) broadcast() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		msg, _ := json.Marshal(map[string]any{
			"signal":    h.tracker.Latest(),
			"status":    h.tracker.Status().String(),
			"timestamp": time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}

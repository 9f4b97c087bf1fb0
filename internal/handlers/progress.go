package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// progressConn pairs a live connection with its write mutex. Gorilla
// connections do not allow concurrent writers.
type progressConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// ProgressManager maps a job id to zero-or-one live connection and delivers
// ordered progress events. Delivery is best-effort: events emitted while no
// connection is registered are lost, never queued.
type ProgressManager struct {
	logger arbor.ILogger
	mu     sync.RWMutex
	conns  map[string]*progressConn
}

// NewProgressManager creates an empty connection registry.
func NewProgressManager(logger arbor.ILogger) *ProgressManager {
	return &ProgressManager{
		logger: logger,
		conns:  make(map[string]*progressConn),
	}
}

// Register records the live connection for a job id. A second registration
// for the same id replaces the first (last-connect-wins); the replaced
// connection is closed.
func (m *ProgressManager) Register(jobID string, conn *websocket.Conn) {
	m.mu.Lock()
	old := m.conns[jobID]
	m.conns[jobID] = &progressConn{conn: conn}
	m.mu.Unlock()

	if old != nil {
		old.conn.Close()
		m.logger.Debug().Str("job_id", jobID).Msg("Replaced existing progress connection")
	}
}

// Unregister drops the mapping for the job id without closing the
// connection. Idempotent.
func (m *ProgressManager) Unregister(jobID string) {
	m.mu.Lock()
	delete(m.conns, jobID)
	m.mu.Unlock()
}

// unregisterConn drops the mapping only if it still points at the given
// connection, so a stale read loop cannot evict a replacement.
func (m *ProgressManager) unregisterConn(jobID string, conn *websocket.Conn) {
	m.mu.Lock()
	if pc, ok := m.conns[jobID]; ok && pc.conn == conn {
		delete(m.conns, jobID)
	}
	m.mu.Unlock()
}

// CloseAndUnregister closes the job's connection and drops the mapping. Used
// by the pipeline controller after the terminal event. Idempotent.
func (m *ProgressManager) CloseAndUnregister(jobID string) {
	m.mu.Lock()
	pc, ok := m.conns[jobID]
	delete(m.conns, jobID)
	m.mu.Unlock()

	if ok {
		pc.conn.Close()
	}
}

// Emit sends a step event to the job's registered connection. Returns true
// when delivered, false when no connection is registered or the write failed.
// A failed write tears the connection down; progress delivery is never a
// pipeline-fatal condition.
func (m *ProgressManager) Emit(jobID, step, detail string) bool {
	m.mu.RLock()
	pc, ok := m.conns[jobID]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	event := models.ProgressEvent{
		Step:      step,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	pc.mu.Lock()
	err := pc.conn.WriteJSON(event)
	pc.mu.Unlock()

	if err != nil {
		m.logger.Debug().Err(err).Str("job_id", jobID).Str("step", step).Msg("Progress delivery failed, dropping connection")
		m.unregisterConn(jobID, pc.conn)
		pc.conn.Close()
		return false
	}
	return true
}

// ConnectionCount reports the number of registered connections.
func (m *ProgressManager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// PipelineStarter triggers one pipeline run for a job id.
type PipelineStarter interface {
	Run(ctx context.Context, jobID string)
}

// ProgressHandler serves the live progress connection for a job.
type ProgressHandler struct {
	manager *ProgressManager
	starter PipelineStarter
	logger  arbor.ILogger
}

// NewProgressHandler creates the websocket endpoint handler.
func NewProgressHandler(manager *ProgressManager, starter PipelineStarter, logger arbor.ILogger) *ProgressHandler {
	return &ProgressHandler{
		manager: manager,
		starter: starter,
		logger:  logger,
	}
}

// HandleProgress upgrades the request, registers the connection for the job
// id, confirms with a connected event, and waits for the literal "start"
// message to launch the pipeline. Any other inbound message is ignored.
func (h *ProgressHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		WriteError(w, http.StatusBadRequest, "job_id query parameter is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("job_id", jobID).Msg("WebSocket upgrade failed")
		return
	}

	h.manager.Register(jobID, conn)
	h.manager.Emit(jobID, models.StepConnected, "Progress channel open")
	h.logger.Info().Str("job_id", jobID).Msg("Progress connection opened")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Str("job_id", jobID).Msg("Progress connection read error")
			}
			// A dropped connection never cancels a running pipeline.
			h.manager.unregisterConn(jobID, conn)
			return
		}

		switch strings.TrimSpace(string(message)) {
		case "start":
			go h.starter.Run(context.Background(), jobID)
		default:
			h.logger.Debug().Str("job_id", jobID).Str("message", string(message)).Msg("Ignoring unrecognized progress message")
		}
	}
}

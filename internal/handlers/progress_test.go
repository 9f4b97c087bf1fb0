package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

type recordingStarter struct {
	mu   sync.Mutex
	runs []string
	done chan string
}

func newRecordingStarter() *recordingStarter {
	return &recordingStarter{done: make(chan string, 4)}
}

func (s *recordingStarter) Run(_ context.Context, jobID string) {
	s.mu.Lock()
	s.runs = append(s.runs, jobID)
	s.mu.Unlock()
	s.done <- jobID
}

func newProgressFixture(t *testing.T) (*ProgressManager, *recordingStarter, *httptest.Server) {
	t.Helper()
	logger := arbor.NewLogger()
	manager := NewProgressManager(logger)
	starter := newRecordingStarter()
	handler := NewProgressHandler(manager, starter, logger)

	server := httptest.NewServer(http.HandlerFunc(handler.HandleProgress))
	t.Cleanup(server.Close)
	return manager, starter, server
}

func dial(t *testing.T, server *httptest.Server, jobID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?job_id=" + jobID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) models.ProgressEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event models.ProgressEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func TestProgress_ConnectedEventOnOpen(t *testing.T) {
	_, _, server := newProgressFixture(t)

	conn := dial(t, server, "job_1")

	event := readEvent(t, conn)
	assert.Equal(t, models.StepConnected, event.Step)
	assert.False(t, event.Timestamp.IsZero())
}

func TestProgress_StartSignalLaunchesPipeline(t *testing.T) {
	_, starter, server := newProgressFixture(t)

	conn := dial(t, server, "job_1")
	readEvent(t, conn) // connected

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("start")))

	select {
	case jobID := <-starter.done:
		assert.Equal(t, "job_1", jobID)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline was not started")
	}
}

func TestProgress_UnrecognizedMessageIgnored(t *testing.T) {
	manager, starter, server := newProgressFixture(t)

	conn := dial(t, server, "job_1")
	readEvent(t, conn) // connected

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("status please")))

	select {
	case <-starter.done:
		t.Fatal("unrecognized message must not start the pipeline")
	case <-time.After(200 * time.Millisecond):
	}

	// Connection is still live and registered.
	assert.True(t, manager.Emit("job_1", models.StepSummarizing, "x"))
	event := readEvent(t, conn)
	assert.Equal(t, models.StepSummarizing, event.Step)
}

func TestProgress_MissingJobIDRejected(t *testing.T) {
	_, _, server := newProgressFixture(t)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProgressManager_EmitWithoutConnection(t *testing.T) {
	manager := NewProgressManager(arbor.NewLogger())
	assert.False(t, manager.Emit("job_none", models.StepSummarizing, "x"))
}

func TestProgressManager_LastConnectWins(t *testing.T) {
	manager, _, server := newProgressFixture(t)

	first := dial(t, server, "job_1")
	readEvent(t, first) // connected

	second := dial(t, server, "job_1")
	readEvent(t, second) // connected

	assert.Equal(t, 1, manager.ConnectionCount())

	require.True(t, manager.Emit("job_1", models.StepPublishing, "x"))
	event := readEvent(t, second)
	assert.Equal(t, models.StepPublishing, event.Step)
}

func TestProgressManager_CloseAndUnregister(t *testing.T) {
	manager, _, server := newProgressFixture(t)

	conn := dial(t, server, "job_1")
	readEvent(t, conn) // connected

	manager.CloseAndUnregister("job_1")
	manager.CloseAndUnregister("job_1") // idempotent

	assert.False(t, manager.Emit("job_1", models.StepPublished, "x"))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "server closed the connection")
}

func TestProgressManager_UnregisterKeepsConnectionOpen(t *testing.T) {
	logger := arbor.NewLogger()
	manager := NewProgressManager(logger)

	manager.Unregister("job_unknown") // idempotent on unknown ids
	assert.Equal(t, 0, manager.ConnectionCount())
}

package server

import (
	"net/http"

	"github.com/duyenle1312/rila-ai-agent/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route - live pipeline progress per job
	mux.HandleFunc("/ws/progress", s.app.ProgressHandler.HandleProgress)

	// API routes - Documents
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.HandleUpload) // POST - upload a document

	// API routes - Published pages
	mux.HandleFunc("/api/pages", s.app.PageHandler.HandleList) // GET - published-page registry

	// API routes - Service
	mux.HandleFunc("/api/health", handlers.HandleHealth)
	mux.HandleFunc("/api/version", handlers.HandleVersion)

	mux.HandleFunc("/", handlers.HandleNotFound)

	return mux
}

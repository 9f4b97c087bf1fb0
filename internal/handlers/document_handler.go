package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/common"
	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
	"github.com/duyenle1312/rila-ai-agent/internal/models"
)

// maxUploadBytes caps the multipart document payload.
const maxUploadBytes = 32 << 20

// DocumentHandler accepts document uploads and parks them as pending jobs.
type DocumentHandler struct {
	converter interfaces.ConvertService
	store     interfaces.JobStore
	logger    arbor.ILogger
}

// NewDocumentHandler creates the upload endpoint handler.
func NewDocumentHandler(converter interfaces.ConvertService, store interfaces.JobStore, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		converter: converter,
		store:     store,
		logger:    logger,
	}
}

// HandleUpload validates the file extension, extracts the HTML body, derives
// a sanitized title, and responds with the job id and its progress channel
// address. The pipeline does not start until the client sends the start
// signal on that channel.
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !h.converter.Supported(header.Filename) {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type: %s", header.Filename))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := h.converter.Convert(r.Context(), header.Filename, data)
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", header.Filename).Msg("Document conversion failed")
		WriteError(w, http.StatusUnprocessableEntity, fmt.Sprintf("failed to extract content: %v", err))
		return
	}

	title := common.SanitizeTitle(result.Title)
	if title == "" {
		title = common.TitleFromFilename(header.Filename)
	}

	job := &models.Job{
		ID:         common.NewJobID(),
		Title:      title,
		RawContent: result.HTML,
		Status:     models.JobStatusPending,
	}
	h.store.Put(job)

	h.logger.Info().
		Str("job_id", job.ID).
		Str("title", title).
		Str("filename", header.Filename).
		Msg("Document accepted, job parked pending start signal")

	WriteJSON(w, http.StatusOK, map[string]string{
		"job_id":                   job.ID,
		"progress_channel_address": "/ws/progress?job_id=" + job.ID,
		"status":                   "processing",
	})
}

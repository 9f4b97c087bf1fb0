package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
)

// PageHandler serves the published-page registry.
type PageHandler struct {
	storage interfaces.PageStorage
	logger  arbor.ILogger
}

// NewPageHandler creates the pages endpoint handler.
func NewPageHandler(storage interfaces.PageStorage, logger arbor.ILogger) *PageHandler {
	return &PageHandler{
		storage: storage,
		logger:  logger,
	}
}

// HandleList returns published pages, newest first, paginated.
func (h *PageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	page, pageSize := GetPaginationParams(r)

	pages, err := h.storage.ListPages(r.Context(), pageSize, page*pageSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list published pages")
		WriteError(w, http.StatusInternalServerError, "failed to list pages")
		return
	}

	total, err := h.storage.CountPages(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count published pages")
		WriteError(w, http.StatusInternalServerError, "failed to count pages")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pages":     pages,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}

package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

// pageFetcher defines the minimal interface needed by PageHandler.
type pageFetcher interface {
	FetchPage(ctx context.Context, slug string) (*domain.Page, error)
}

// PageHandler serves the blog page passthrough.
type PageHandler struct {
	pages pageFetcher
	log   *slog.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(pages pageFetcher, logger *slog.Logger) *PageHandler {
	return &PageHandler{pages: pages, log: logger.With("handler", "page")}
}

type pageResponse struct {
	RawHTML string `json:"rawHtml"`
}

// Velog handles GET /api/velog?slug=...
func (h *PageHandler) Velog(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug is required")
		return
	}

	page, err := h.pages.FetchPage(r.Context(), slug)
	if err != nil {
		handleError(h.log, w, r, err, true)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{RawHTML: page.RawHTML})
}

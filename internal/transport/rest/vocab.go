package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/service/mnemonic"
)

// vocabService defines the minimal interface needed by VocabHandler.
type vocabService interface {
	Enrich(ctx context.Context, input mnemonic.EnrichInput) ([]domain.ReconciledItem, error)
}

// VocabHandler serves the enrichment endpoint.
type VocabHandler struct {
	svc vocabService
	log *slog.Logger
}

// NewVocabHandler creates a VocabHandler.
func NewVocabHandler(svc vocabService, logger *slog.Logger) *VocabHandler {
	return &VocabHandler{svc: svc, log: logger.With("handler", "vocab")}
}

type vocabItemRequest struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

type reorderRequest struct {
	Vocab []vocabItemRequest `json:"vocab"`
}

type reorderResponse struct {
	Items []domain.ReconciledItem `json:"items"`
}

// ReorderAndStory handles POST /api/reorder-and-story.
func (h *VocabHandler) ReorderAndStory(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]domain.VocabItem, len(req.Vocab))
	for i, v := range req.Vocab {
		items[i] = domain.VocabItem{Word: v.Word, RawMeaning: v.Meaning}
	}

	result, err := h.svc.Enrich(r.Context(), mnemonic.NewEnrichInput(items))
	if err != nil {
		handleError(h.log, w, r, err, false)
		return
	}

	writeJSON(w, http.StatusOK, reorderResponse{Items: result})
}

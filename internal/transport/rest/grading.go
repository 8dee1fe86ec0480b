package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/service/grading"
)

// gradingService defines the minimal interface needed by GradingHandler.
type gradingService interface {
	Grade(ctx context.Context, in grading.Input) (domain.GradeResult, error)
}

// GradingHandler serves the answer grading endpoint.
type GradingHandler struct {
	svc gradingService
	log *slog.Logger
}

// NewGradingHandler creates a GradingHandler.
func NewGradingHandler(svc gradingService, logger *slog.Logger) *GradingHandler {
	return &GradingHandler{svc: svc, log: logger.With("handler", "grading")}
}

type gradeRequest struct {
	QuestionType   string `json:"questionType"`
	CorrectWord    string `json:"correctWord"`
	CorrectMeaning string `json:"correctMeaning"`
	UserAnswer     string `json:"userAnswer"`
}

// GradeAnswer handles POST /api/grade-answer.
func (h *GradingHandler) GradeAnswer(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Grade(r.Context(), grading.Input{
		QuestionType:   domain.QuestionType(req.QuestionType),
		CorrectWord:    req.CorrectWord,
		CorrectMeaning: req.CorrectMeaning,
		UserAnswer:     req.UserAnswer,
	})
	if err != nil {
		handleError(h.log, w, r, err, false)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

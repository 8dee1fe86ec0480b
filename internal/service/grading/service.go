// Package grading asks the completion oracle whether a learner's answer to a
// vocabulary question is correct.
package grading

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/mnemo-vocab/internal/config"
	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/llmjson"
	"github.com/heartmarshall/mnemo-vocab/internal/provider"
)

// Feedback used when the oracle's verdict is incomplete.
const (
	FeedbackMalformed = "형식 오류로 인해 오답 처리되었습니다."
	FeedbackCorrect   = "정답입니다."
	FeedbackIncorrect = "오답입니다."
)

type completer interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

// Service grades answers. It keeps no state between calls.
type Service struct {
	log    *slog.Logger
	oracle completer
	model  string
	cfg    config.GradeConfig
}

// NewService creates a grading Service.
func NewService(logger *slog.Logger, oracle completer, model string, cfg config.GradeConfig) *Service {
	return &Service{
		log:    logger.With("service", "grading"),
		oracle: oracle,
		model:  model,
		cfg:    cfg,
	}
}

// Grade validates in, asks the oracle for a verdict and fills in defaults
// for a malformed one.
func (s *Service) Grade(ctx context.Context, in Input) (domain.GradeResult, error) {
	if err := in.Validate(); err != nil {
		return domain.GradeResult{}, err
	}

	system, user := buildPrompt(in)
	raw, err := s.oracle.Complete(ctx, provider.CompletionRequest{
		Model:       s.model,
		System:      system,
		User:        user,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "grade completion failed", slog.String("error", err.Error()))
		return domain.GradeResult{}, fmt.Errorf("grade completion: %w", err)
	}

	doc, err := llmjson.Parse(raw)
	if err != nil {
		s.log.ErrorContext(ctx, "grade reply is not a document", slog.String("raw", raw))
		return domain.GradeResult{}, fmt.Errorf("extract verdict: %w", err)
	}

	result := verdict(doc)
	s.log.DebugContext(ctx, "answer graded",
		slog.String("question_type", string(in.QuestionType)),
		slog.Bool("correct", result.IsCorrect),
	)
	return result, nil
}

// verdict reads the oracle's reply leniently. A non-boolean isCorrect is a
// wrong answer; missing feedback is filled from the verdict.
func verdict(doc gjson.Result) domain.GradeResult {
	correct := doc.Get("isCorrect")
	feedback := doc.Get("feedback")

	if !correct.IsBool() {
		fb := FeedbackMalformed
		if feedback.Type == gjson.String && llmjson.String(feedback) != "" {
			fb = llmjson.String(feedback)
		}
		return domain.GradeResult{IsCorrect: false, Feedback: fb}
	}

	res := domain.GradeResult{IsCorrect: correct.Bool()}
	if feedback.Type == gjson.String && llmjson.String(feedback) != "" {
		res.Feedback = llmjson.String(feedback)
	} else if res.IsCorrect {
		res.Feedback = FeedbackCorrect
	} else {
		res.Feedback = FeedbackIncorrect
	}
	return res
}

// Package mnemonic turns a raw study list into reconciled items: normalized
// meanings, etymology and a vetted mnemonic story per word.
package mnemonic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/mnemo-vocab/internal/config"
	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type completer interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

type meaningNormalizer interface {
	Normalize(raw string) string
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs the enrichment pipeline. It keeps no state between calls.
type Service struct {
	log        *slog.Logger
	oracle     completer
	normalizer meaningNormalizer
	validator  StoryValidator
	model      string
	cfg        config.StoryConfig
}

// NewService creates a mnemonic Service. model selects the oracle model for
// both the bulk call and regeneration; "" keeps the adapter default.
func NewService(
	logger *slog.Logger,
	oracle completer,
	normalizer meaningNormalizer,
	validator StoryValidator,
	model string,
	cfg config.StoryConfig,
) *Service {
	if cfg.RegenConcurrency <= 0 {
		cfg.RegenConcurrency = 1
	}
	return &Service{
		log:        logger.With("service", "mnemonic"),
		oracle:     oracle,
		normalizer: normalizer,
		validator:  validator,
		model:      model,
		cfg:        cfg,
	}
}

// Enrich normalizes every meaning, asks the oracle once for etymology and
// stories, reconciles the reply against the input and runs every story
// through the quality gate. The result has the input's length and order
// unless root grouping is enabled.
//
// Errors: *domain.ValidationError before any oracle call,
// *domain.UpstreamError when the bulk call fails, *domain.ParseError when
// the bulk reply is not a structured document.
func (s *Service) Enrich(ctx context.Context, input EnrichInput) ([]domain.ReconciledItem, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	normalized := make([]domain.NormalizedVocabItem, len(input.Items))
	for i, it := range input.Items {
		normalized[i] = domain.NormalizedVocabItem{
			Word:    it.Word,
			Meaning: s.normalizer.Normalize(it.RawMeaning),
		}
	}

	prompt := BuildPrompt(normalized)
	start := time.Now()
	raw, err := s.oracle.Complete(ctx, provider.CompletionRequest{
		Model:       s.model,
		System:      prompt.System,
		User:        prompt.User,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "story completion failed",
			slog.Int("items", len(normalized)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("story completion: %w", err)
	}

	records, err := ExtractRecords(raw)
	if err != nil {
		s.log.ErrorContext(ctx, "story reply is not a document",
			slog.String("raw", truncate(raw, 500)),
		)
		return nil, fmt.Errorf("extract records: %w", err)
	}

	items := Reconcile(normalized, records, s.cfg.NoEtymology)
	matched := countMatched(items, records)

	regenerated := s.ensureAll(ctx, normalized, items)

	if s.cfg.GroupByRoot {
		items = GroupByRoot(items, s.cfg.NoEtymology)
	}

	s.log.InfoContext(ctx, "vocab enriched",
		slog.Int("items", len(items)),
		slog.Int("records", len(records)),
		slog.Int("matched", matched),
		slog.Int("regenerated", regenerated),
		slog.Duration("duration", time.Since(start)),
	)
	return items, nil
}

// EnsureQuality returns story when it passes the gate. Otherwise it asks the
// oracle for exactly one replacement and returns it if it passes, falling
// back to the configured policy when it does not. A template fallback that
// fails the gate itself ships as "". Regeneration failures
// never escape: they count as a rejected replacement.
func (s *Service) EnsureQuality(ctx context.Context, item domain.NormalizedVocabItem, story string) string {
	if s.validator.Accept(story) {
		return story
	}

	s.log.InfoContext(ctx, "story rejected",
		slog.String("word", item.Word),
		slog.String("reason", rejectReason(s.validator, story)),
	)

	replacement, err := s.regenerate(ctx, item)
	if err != nil {
		s.log.WarnContext(ctx, "story regeneration failed",
			slog.String("word", item.Word),
			slog.String("error", err.Error()),
		)
	} else if s.validator.Accept(replacement) {
		s.log.InfoContext(ctx, "story regenerated", slog.String("word", item.Word))
		return replacement
	}

	s.log.WarnContext(ctx, "story fallback applied",
		slog.String("word", item.Word),
		slog.String("policy", s.cfg.Fallback),
	)
	rejected := replacement
	if strings.TrimSpace(rejected) == "" {
		rejected = story
	}
	policy := FallbackPolicy(s.cfg.Fallback)
	fallback := policy.apply(s.cfg.FallbackTemplate, item.Word, item.Meaning, rejected)

	// A rendered template can pick up a banned phrase from the meaning.
	if policy == FallbackTemplate && fallback != "" && !s.validator.Accept(fallback) {
		s.log.WarnContext(ctx, "fallback template rejected",
			slog.String("word", item.Word),
			slog.String("reason", rejectReason(s.validator, fallback)),
		)
		return ""
	}
	return fallback
}

// ensureAll gates every story in place and reports how many needed a
// replacement. Replacements run concurrently; each goroutine owns one index.
func (s *Service) ensureAll(ctx context.Context, normalized []domain.NormalizedVocabItem, items []domain.ReconciledItem) int {
	var g errgroup.Group
	g.SetLimit(s.cfg.RegenConcurrency)

	rejected := 0
	for i := range items {
		if s.validator.Accept(items[i].Story) {
			continue
		}
		rejected++
		g.Go(func() error {
			items[i].Story = s.EnsureQuality(ctx, normalized[i], items[i].Story)
			return nil
		})
	}
	_ = g.Wait()
	return rejected
}

func (s *Service) regenerate(ctx context.Context, item domain.NormalizedVocabItem) (string, error) {
	prompt := buildStoryPrompt(item)
	raw, err := s.oracle.Complete(ctx, provider.CompletionRequest{
		Model:       s.model,
		System:      prompt.System,
		User:        prompt.User,
		Temperature: s.cfg.RegenTemperature,
		MaxTokens:   s.cfg.RegenMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return extractStory(raw)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func countMatched(items []domain.ReconciledItem, records []domain.OracleRecord) int {
	words := make(map[string]struct{}, len(records))
	for _, r := range records {
		words[domain.NormalizeText(r.Word)] = struct{}{}
	}
	n := 0
	for _, it := range items {
		if _, ok := words[domain.NormalizeText(it.Word)]; ok {
			n++
		}
	}
	return n
}

// truncate shortens s to at most n runes for logging.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

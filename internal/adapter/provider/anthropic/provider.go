// Package anthropic is the completion oracle adapter for the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/provider"
)

const providerName = "anthropic"

// Config holds the adapter settings. APIKey is required.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Provider sends instruction pairs to Claude.
// It never retries: transport failures are surfaced to the caller.
type Provider struct {
	client    sdk.Client
	model     string
	maxTokens int
	log       *slog.Logger
}

// NewProvider creates a Provider.
func NewProvider(cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: missing API key")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic: missing model name")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Provider{
		client:    sdk.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", providerName),
	}, nil
}

// Complete returns the concatenated text blocks of the reply.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}
	maxTokens := p.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	// The Messages API caps temperature at 1.
	temperature := min(req.Temperature, 1)

	start := time.Now()
	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(model),
		MaxTokens:   int64(maxTokens),
		System:      []sdk.TextBlockParam{{Text: req.System}},
		Temperature: sdk.Float(temperature),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.User)),
		},
	})
	if err != nil {
		return "", upstreamError(err)
	}

	p.log.DebugContext(ctx, "anthropic completion",
		slog.String("model", model),
		slog.Duration("duration", time.Since(start)),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

func upstreamError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{
			Provider:   providerName,
			StatusCode: apiErr.StatusCode,
			Detail:     apiErr.RawJSON(),
			Err:        err,
		}
	}
	return &domain.UpstreamError{Provider: providerName, Detail: err.Error(), Err: err}
}

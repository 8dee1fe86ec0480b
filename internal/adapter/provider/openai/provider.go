// Package openai is the completion oracle adapter for the OpenAI chat API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/provider"
)

const providerName = "openai"

// Config holds the adapter settings. APIKey is required.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Provider sends instruction pairs to the OpenAI chat completions endpoint.
// It never retries: transport failures are surfaced to the caller.
type Provider struct {
	client oai.Client
	model  string
	log    *slog.Logger
}

// NewProvider creates a Provider.
func NewProvider(cfg Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: missing API key")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: missing model name")
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
		client: oai.NewClient(opts...),
		model:  cfg.Model,
		log:    logger.With("adapter", providerName),
	}, nil
}

// Complete returns the text of the first choice. An empty reply is not an
// error here; the extractor reports it as a parse failure.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(req.System),
			oai.UserMessage(req.User),
		},
		Temperature: oai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = oai.Int(int64(req.MaxTokens))
	}

	start := time.Now()
	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", upstreamError(err)
	}

	p.log.DebugContext(ctx, "openai completion",
		slog.String("model", model),
		slog.Duration("duration", time.Since(start)),
		slog.Int64("total_tokens", completion.Usage.TotalTokens),
	)

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

func upstreamError(err error) error {
	var apiErr *oai.Error
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

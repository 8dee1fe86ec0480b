// Package app wires configuration, adapters, services and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/heartmarshall/mnemo-vocab/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/mnemo-vocab/internal/adapter/provider/openai"
	"github.com/heartmarshall/mnemo-vocab/internal/adapter/provider/velog"
	"github.com/heartmarshall/mnemo-vocab/internal/config"
	"github.com/heartmarshall/mnemo-vocab/internal/domain"
	"github.com/heartmarshall/mnemo-vocab/internal/provider"
	"github.com/heartmarshall/mnemo-vocab/internal/service/grading"
	"github.com/heartmarshall/mnemo-vocab/internal/service/mnemonic"
	"github.com/heartmarshall/mnemo-vocab/internal/transport/middleware"
	"github.com/heartmarshall/mnemo-vocab/internal/transport/rest"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/mnemo-vocab/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and health endpoints.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// Oracle is what both completion adapters provide.
type Oracle interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

// App holds the constructed services.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Mnemonic *mnemonic.Service
	Grading  *grading.Service
	Pages    *velog.Provider
}

// New builds every collaborator from cfg. The oracle credentials are
// injected here and nowhere else.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	oracle, err := NewOracle(cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	pages, err := velog.NewProvider(velog.Config{
		BaseURL:        cfg.Page.BaseURL,
		DefaultAccount: cfg.Page.DefaultAccount,
		Timeout:        cfg.Page.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	delim, _ := utf8.DecodeRuneInString(cfg.Meaning.Delimiter)
	normalizer := domain.NewMeaningNormalizer(delim, cfg.Meaning.Separators, cfg.Meaning.SplitOnSpace)
	gate := mnemonic.NewPhraseGate(cfg.Story.MinLength, cfg.Story.BannedPhraseList())

	return &App{
		Config:   cfg,
		Log:      logger,
		Mnemonic: mnemonic.NewService(logger, oracle, normalizer, gate, cfg.LLM.StoryModel, cfg.Story),
		Grading:  grading.NewService(logger, oracle, cfg.LLM.GradeModel, cfg.Grade),
		Pages:    pages,
	}, nil
}

// NewOracle returns the completion adapter selected by cfg.Provider.
func NewOracle(cfg config.LLMConfig, logger *slog.Logger) (Oracle, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewProvider(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.StoryModel,
			Timeout: cfg.Timeout,
		}, logger)
	case config.ProviderAnthropic:
		return anthropic.NewProvider(anthropic.Config{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			Model:     cfg.StoryModel,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		}, logger)
	default:
		return nil, fmt.Errorf("app: unknown llm provider %q", cfg.Provider)
	}
}

// Handler returns the fully wrapped HTTP handler.
func (a *App) Handler() http.Handler {
	router := rest.NewRouter(rest.Handlers{
		Vocab:   rest.NewVocabHandler(a.Mnemonic, a.Log),
		Grading: rest.NewGradingHandler(a.Grading, a.Log),
		Page:    rest.NewPageHandler(a.Pages, a.Log),
		Health: rest.NewHealthHandler(BuildVersion(), map[string]rest.CompStatus{
			"llm":  {Status: "configured", Detail: a.Config.LLM.Provider + "/" + a.Config.LLM.StoryModel},
			"page": {Status: "configured", Detail: a.Config.Page.BaseURL},
		}),
	})
	return middleware.Default(a.Log, a.Config.CORS)(router)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	sc := a.Config.Server
	srv := &http.Server{
		Addr:         net.JoinHostPort(sc.Host, strconv.Itoa(sc.Port)),
		Handler:      a.Handler(),
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		IdleTimeout:  sc.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sc.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}

// Run is the server entry point: it initializes the logger, builds the
// application and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("story_model", cfg.LLM.StoryModel),
	)

	a, err := New(cfg, logger)
	if err != nil {
		return err
	}
	return a.Serve(ctx)
}

// Package velog fetches raw blog pages that hold vocabulary lists.
package velog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

const (
	providerName   = "velog"
	defaultBaseURL = "https://velog.io"
	defaultAccount = "@dvlp"
	maxPageBytes   = 8 << 20
)

// Config holds the adapter settings. Zero values fall back to defaults.
type Config struct {
	BaseURL        string
	DefaultAccount string
	Timeout        time.Duration
}

// Provider fetches pages from a blog host.
type Provider struct {
	baseURL    string
	host       string
	account    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider.
func NewProvider(cfg Config, logger *slog.Logger) (*Provider, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("velog: invalid base url %q", cfg.BaseURL)
	}

	account := strings.Trim(strings.TrimSpace(cfg.DefaultAccount), "/")
	if account == "" {
		account = defaultAccount
	}
	if !strings.HasPrefix(account, "@") {
		account = "@" + account
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Provider{
		baseURL:    base,
		host:       u.Host,
		account:    account,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", providerName),
	}, nil
}

// ResolveSlug turns user input into a "@account/post" path. It accepts a
// full post URL, a host-prefixed path or a bare post slug; a slug without
// an account gets account prepended.
func ResolveSlug(slug, host, account string) string {
	s := strings.TrimSpace(slug)

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		if u, err := url.Parse(s); err == nil {
			s = strings.TrimLeft(u.EscapedPath(), "/")
		}
	}

	for _, prefix := range []string{host + "/", "velog.io/"} {
		if prefix != "/" {
			s = strings.TrimPrefix(s, prefix)
		}
	}
	s = strings.TrimLeft(s, "/")

	if s != "" && !strings.HasPrefix(s, "@") {
		s = account + "/" + s
	}
	return s
}

// FetchPage resolves slug and returns the page's HTML. A non-OK response is
// a *domain.UpstreamError carrying the status and body.
func (p *Provider) FetchPage(ctx context.Context, slug string) (*domain.Page, error) {
	resolved := ResolveSlug(slug, p.host, p.account)
	if resolved == "" {
		return nil, domain.NewValidationError("slug", "required")
	}
	pageURL := p.baseURL + "/" + resolved

	p.log.DebugContext(ctx, "velog request", slog.String("slug", resolved))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, domain.NewValidationError("slug", "malformed")
	}

	resp, err := p.doWithRetry(ctx, req, resolved)
	if err != nil {
		p.log.ErrorContext(ctx, "velog request failed", slog.String("slug", resolved), slog.String("error", err.Error()))
		return nil, &domain.UpstreamError{Provider: providerName, Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &domain.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode, Detail: err.Error(), Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		p.log.WarnContext(ctx, "velog unexpected status", slog.String("slug", resolved), slog.Int("status", resp.StatusCode))
		upErr := &domain.UpstreamError{Provider: providerName, StatusCode: resp.StatusCode, Detail: string(body)}
		if resp.StatusCode == http.StatusNotFound {
			upErr.Err = domain.ErrNotFound
		}
		return nil, upErr
	}

	p.log.DebugContext(ctx, "velog response",
		slog.String("slug", resolved),
		slog.Int("bytes", len(body)),
	)

	return &domain.Page{Slug: resolved, URL: pageURL, RawHTML: string(body)}, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, slug string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "velog retry", slog.String("slug", slug), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

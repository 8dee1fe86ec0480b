package velog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/mnemo-vocab/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()
	p, err := NewProvider(Config{BaseURL: baseURL, DefaultAccount: "@dvlp", Timeout: 2 * time.Second}, newTestLogger())
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	p.retryDelay = time.Millisecond
	return p
}

func TestResolveSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare slug", in: "워마13-15", want: "@dvlp/워마13-15"},
		{name: "account slug", in: "@other/단어장", want: "@other/단어장"},
		{name: "padded", in: "  @other/list  ", want: "@other/list"},
		{name: "full url", in: "https://velog.io/@dvlp/list-1", want: "@dvlp/list-1"},
		{name: "full url without account", in: "https://velog.io/list-1", want: "@dvlp/list-1"},
		{name: "host prefix", in: "velog.io/@dvlp/list-1", want: "@dvlp/list-1"},
		{name: "leading slashes", in: "//@dvlp/list-1", want: "@dvlp/list-1"},
		{name: "empty", in: "   ", want: ""},
		{name: "root url", in: "https://velog.io/", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ResolveSlug(tt.in, "velog.io", "@dvlp"); got != tt.want {
				t.Errorf("ResolveSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveSlug_EncodedURL(t *testing.T) {
	t.Parallel()

	got := ResolveSlug("https://velog.io/@dvlp/%EC%9B%8C%EB%A7%8813-15", "velog.io", "@dvlp")
	if got != "@dvlp/%EC%9B%8C%EB%A7%8813-15" {
		t.Errorf("ResolveSlug = %q", got)
	}
}

func TestProvider_FetchPage_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/@dvlp/워마13-15" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>duty 의무</html>"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	page, err := p.FetchPage(context.Background(), "워마13-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.RawHTML != "<html>duty 의무</html>" {
		t.Errorf("RawHTML = %q", page.RawHTML)
	}
	if page.Slug != "@dvlp/워마13-15" {
		t.Errorf("Slug = %q", page.Slug)
	}
}

func TestProvider_FetchPage_OwnHostURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/@other/list" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	if _, err := p.FetchPage(context.Background(), srv.URL+"/@other/list"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProvider_FetchPage_NotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no such post"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.FetchPage(context.Background(), "missing")

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("err = %v, want *domain.UpstreamError", err)
	}
	if upErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", upErr.StatusCode)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false")
	}
	if upErr.Detail != "no such post" {
		t.Errorf("Detail = %q", upErr.Detail)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", got)
	}
}

func TestProvider_FetchPage_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("<html/>"))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	page, err := p.FetchPage(context.Background(), "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.RawHTML != "<html/>" {
		t.Errorf("RawHTML = %q", page.RawHTML)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestProvider_FetchPage_ServerErrorBothAttemptsFail(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	_, err := p.FetchPage(context.Background(), "list")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestProvider_FetchPage_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	p := newTestProvider(t, base)
	_, err := p.FetchPage(context.Background(), "list")

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("err = %v, want *domain.UpstreamError", err)
	}
	if upErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", upErr.StatusCode)
	}
}

func TestProvider_FetchPage_EmptySlug(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://velog.io")
	_, err := p.FetchPage(context.Background(), "  ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(Config{DefaultAccount: "mine/"}, newTestLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.baseURL != defaultBaseURL || p.host != "velog.io" || p.account != "@mine" {
		t.Errorf("defaults not applied: %+v", p)
	}

	if _, err := NewProvider(Config{BaseURL: "not a url"}, newTestLogger()); err == nil {
		t.Error("expected error for base url without host")
	}
}

package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/mnemo-vocab/internal/config"
	"github.com/heartmarshall/mnemo-vocab/pkg/ctxutil"
)

func defaultCORS() config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET,POST,OPTIONS",
		AllowedHeaders: "Content-Type",
		MaxAge:         86400,
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-before")
				next.ServeHTTP(w, r)
				order = append(order, name+"-after")
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	Chain(mark("mw1"), mark("mw2"))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	expected := []string{"mw1-before", "mw2-before", "handler", "mw2-after", "mw1-after"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Errorf("order = %v, want %v", order, expected)
	}
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	Chain()(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("expected handler to be called")
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called for preflight")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/grade-answer", nil)
	req.Header.Set("Origin", "https://codepen.io")
	rec := httptest.NewRecorder()
	CORS(defaultCORS())(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
	want := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Max-Age":       "86400",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestCORS_WildcardWithoutOrigin(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rec := httptest.NewRecorder()
	CORS(defaultCORS())(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reorder-and-story", nil))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestCORS_AllowListWithCredentials(t *testing.T) {
	t.Parallel()

	cfg := config.CORSConfig{
		AllowedOrigins:   "https://example.com, https://other.com",
		AllowedMethods:   "GET,POST",
		AllowedHeaders:   "Content-Type",
		AllowCredentials: true,
		MaxAge:           3600,
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		origin    string
		wantAllow string
		wantCreds string
	}{
		{origin: "https://other.com", wantAllow: "https://other.com", wantCreds: "true"},
		{origin: "https://evil.com", wantAllow: "", wantCreds: ""},
		{origin: "", wantAllow: "", wantCreds: ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/velog", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		rec := httptest.NewRecorder()
		CORS(cfg)(handler).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
			t.Errorf("origin %q: Allow-Origin = %q, want %q", tt.origin, got, tt.wantAllow)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
			t.Errorf("origin %q: Allow-Credentials = %q, want %q", tt.origin, got, tt.wantCreds)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  string
	}{
		{status: http.StatusOK, level: "INFO"},
		{status: http.StatusBadRequest, level: "WARN"},
		{status: http.StatusBadGateway, level: "ERROR"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte("hello"))
		})

		req := httptest.NewRequest(http.MethodPost, "/api/grade-answer", nil)
		req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-42"))
		Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		for _, want := range []string{
			`"msg":"http.request"`,
			`"level":"` + tt.level + `"`,
			`"method":"POST"`,
			`"path":"/api/grade-answer"`,
			`"bytes":5`,
			`"request_id":"req-42"`,
			"duration",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("status %d: log missing %s: %s", tt.status, want, out)
			}
		}
	}
}

func TestLogger_ImplicitOK(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
		w.WriteHeader(http.StatusTeapot) // ignored: header already sent
	})
	Logger(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	if !strings.Contains(buf.String(), `"status":200`) {
		t.Errorf("expected status 200 in log, got %s", buf.String())
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recovery(logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got := rec.Body.String(); got != `{"error":"internal server error"}` {
		t.Errorf("body = %q", got)
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("log = %s", buf.String())
	}
}

func TestRecovery_NoPanic(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	rec := httptest.NewRecorder()
	Recovery(logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inbound  string
		wantSame bool
	}{
		{name: "generated", inbound: "", wantSame: false},
		{name: "propagated", inbound: "client-abc-123", wantSame: true},
		{name: "rejected", inbound: "bad id\r\nX-Evil: 1", wantSame: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = ctxutil.RequestIDFromCtx(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inbound != "" {
				req.Header.Set(RequestIDHeader, tt.inbound)
			}
			rec := httptest.NewRecorder()
			RequestID(handler).ServeHTTP(rec, req)

			header := rec.Header().Get(RequestIDHeader)
			if header == "" || header != ctxID {
				t.Fatalf("header %q and context %q must match and be non-empty", header, ctxID)
			}
			if (header == tt.inbound) != tt.wantSame {
				t.Errorf("header = %q, inbound = %q, wantSame = %v", header, tt.inbound, tt.wantSame)
			}
		})
	}
}

func TestDefault_PanicIsLoggedAs500(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Default(logger, defaultCORS())(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if !strings.Contains(buf.String(), `"status":500`) {
		t.Errorf("request log should record 500: %s", buf.String())
	}
}

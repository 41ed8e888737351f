package httptransport

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-graphql-api/internal/auth"
)

func TestBearerMiddleware_PassesHeaderThrough(t *testing.T) {
	var got string
	h := BearerMiddleware{}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.AuthorizationFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got != "Bearer abc.def.ghi" {
		t.Errorf("header in context: got %q", got)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d", rr.Code)
	}
}

func TestBearerMiddleware_NoHeaderIsNotRejected(t *testing.T) {
	called := false
	h := BearerMiddleware{}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if v := auth.AuthorizationFromContext(r.Context()); v != "" {
			t.Errorf("expected empty header, got %q", v)
		}
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/query", nil))
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var ctxID string
	h := RequestLogger{Logger: logger}.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/query", nil))

	id := rr.Header().Get("X-Request-Id")
	if id == "" || id != ctxID {
		t.Fatalf("request id: header %q, context %q", id, ctxID)
	}
	line := buf.String()
	for _, want := range []string{"request_id=" + id, "status=418", "path=/query", "method=POST"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestRequestLogger_ReusesClientID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := RequestLogger{Logger: logger}.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-Id"); got != "client-123" {
		t.Errorf("got %q", got)
	}
}

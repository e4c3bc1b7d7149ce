package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mw := func(mark string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called += mark
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw("1"), nil, mw("2"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestRequestIDAssignsAndEchoes(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get("X-Request-ID") != seen {
		t.Fatalf("request id = %q, header = %q", seen, rr.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-1")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "upstream-1" {
		t.Fatalf("request id = %q, want upstream-1", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 500))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if len(seen) > maxRequestIDLength {
		t.Fatalf("oversized inbound id kept: %d bytes", len(seen))
	}
}

func TestRecoverPanicWrites500AndLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := RecoverPanic(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/en/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "path=/en/") {
		t.Fatalf("log = %q", buf.String())
	}
}

func TestWriteRedirect(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteRedirect(rr, httptest.NewRequest(http.MethodGet, "/", nil), "/en/", http.StatusFound)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/en/" {
		t.Fatalf("redirect = %d %q", rr.Code, rr.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodPost, "/en/newsletter", nil)
	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	WriteRedirect(rr, req, "/en/#newsletter", http.StatusSeeOther)
	if rr.Code != http.StatusOK || rr.Header().Get("HX-Redirect") != "/en/#newsletter" {
		t.Fatalf("htmx redirect = %d %q", rr.Code, rr.Header().Get("HX-Redirect"))
	}
	if rr.Header().Get("Location") != "" {
		t.Fatal("htmx redirect should not set Location")
	}
}

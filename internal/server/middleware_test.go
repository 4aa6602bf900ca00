package server

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/asesorlab/asesor-mcp/internal/common"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func TestCorrelationID_Generated(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	id := w.Header().Get("X-Correlation-ID")
	if !uuidPattern.MatchString(id) {
		t.Errorf("expected generated UUID correlation id, got %q", id)
	}
}

func TestCorrelationID_EchoesRequestID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-55")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Correlation-ID"); got != "req-55" {
		t.Errorf("expected echoed request id, got %q", got)
	}
}

func TestCorrelationID_FlowsIntoHandlerContext(t *testing.T) {
	srv := newTestServer(t)

	var seen string
	h := srv.withMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = common.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("X-Correlation-ID", "corr-99")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if seen != "corr-99" {
		t.Errorf("expected correlation id on the request context, got %q", seen)
	}
}

func TestCORS_Headers(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("preflight response must have no body, got %q", w.Body.String())
	}
}

func TestMaxBodySize_OversizedBodyRejectedGracefully(t *testing.T) {
	srv := newTestServer(t)

	// 2MB of padding inside an otherwise valid envelope; the 1MB cap cuts
	// the read short, the decode fails, and the request is dropped like
	// any other undecodable body.
	big := `{"jsonrpc":"2.0","id":1,"method":"ping","params":{"pad":"` +
		strings.Repeat("a", 2<<20) + `"}}`

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(big))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for oversized body, got %d", w.Code)
	}
}

package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(url string, opts ...ClientOption) *Client {
	return NewClient(url, append([]ClientOption{WithRateLimit(1000)}, opts...)...)
}

// --- FetchOne Tests ---

func TestFetchOne_Structured(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody analysisRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"resultado":{"full_analysis":"texto del análisis","market_summary":"resumen"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	outcome, err := c.FetchOne(context.Background(), 42, TypePortfolio)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json content type, got %s", gotContentType)
	}
	if gotBody.IDCliente != 42 || gotBody.Tipo != TypePortfolio {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
	if outcome.Kind != OutcomeStructured {
		t.Fatalf("expected structured outcome, got kind %d", outcome.Kind)
	}
	if outcome.FullAnalysis != "texto del análisis" {
		t.Errorf("unexpected full analysis: %q", outcome.FullAnalysis)
	}
	if outcome.MarketSummary != "resumen" {
		t.Errorf("unexpected market summary: %q", outcome.MarketSummary)
	}
}

func TestFetchOne_NotFoundWithMensaje(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"mensaje":"Aún no hay análisis para este cliente"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	outcome, err := c.FetchOne(context.Background(), 7, TypeTickerInfo)
	if err != nil {
		t.Fatalf("404 must not be an error, got: %v", err)
	}
	if outcome.Kind != OutcomePlain {
		t.Fatalf("expected plain outcome, got kind %d", outcome.Kind)
	}
	if outcome.Message != "Aún no hay análisis para este cliente" {
		t.Errorf("unexpected message: %q", outcome.Message)
	}
}

func TestFetchOne_NotFoundDefaultMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	outcome, err := c.FetchOne(context.Background(), 9, TypeReplacement)
	if err != nil {
		t.Fatalf("404 must not be an error, got: %v", err)
	}
	if outcome.Kind != OutcomePlain {
		t.Fatalf("expected plain outcome, got kind %d", outcome.Kind)
	}
	if !strings.Contains(outcome.Message, TypeReplacement) {
		t.Errorf("default message should name the analysis type, got %q", outcome.Message)
	}
}

func TestFetchOne_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FetchOne(context.Background(), 1, TypePortfolio)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry status and body, got: %v", err)
	}
}

func TestFetchOne_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>502 Bad Gateway</body></html>`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FetchOne(context.Background(), 1, TypePortfolio)
	if err == nil {
		t.Fatal("expected error for non-JSON 200 response")
	}
	if !strings.Contains(err.Error(), "JSON") {
		t.Errorf("error should indicate invalid JSON, got: %v", err)
	}
}

func TestFetchOne_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down immediately to force a connection error

	c := newTestClient(srv.URL)
	_, err := c.FetchOne(context.Background(), 1, TypePortfolio)
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
	if !strings.Contains(err.Error(), "motor de análisis") {
		t.Errorf("error should identify the engine connection as the cause, got: %v", err)
	}
}

func TestFetchOne_SendsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		w.Write([]byte(`{"resultado":{"full_analysis":"x"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, WithAPIKey("secreto"))
	if _, err := c.FetchOne(context.Background(), 1, TypePortfolio); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "secreto" {
		t.Errorf("expected X-Api-Key header, got %q", gotKey)
	}
}

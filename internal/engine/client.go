// Package engine provides the client for the upstream analysis engine.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/asesorlab/asesor-mcp/internal/common"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	// maxResponseSize caps the response body to prevent OOM from
	// unexpectedly large engine responses.
	maxResponseSize = 10 << 20 // 10MB
)

// Client calls the upstream analysis engine over HTTP.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithAPIKey sets the engine API key, sent as an X-Api-Key header.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets the rate limit. Non-positive values keep the default.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// NewClient creates an engine client for the given endpoint URL.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:  common.NewSilentLogger(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// analysisRequest is the JSON body the engine expects.
type analysisRequest struct {
	IDCliente int    `json:"id_cliente"`
	Tipo      string `json:"tipo"`
}

// analysisResponse is the engine's success payload.
type analysisResponse struct {
	Resultado struct {
		FullAnalysis  string `json:"full_analysis"`
		MarketSummary string `json:"market_summary"`
	} `json:"resultado"`
}

// notFoundResponse is the engine's 404 payload.
type notFoundResponse struct {
	Mensaje string `json:"mensaje"`
}

// FetchOne retrieves a single analysis for a client/type pair and
// normalizes the engine's response. A 404 from the engine means "no
// analysis stored" and yields a plain-message outcome, not an error.
func (c *Client) FetchOne(ctx context.Context, clientID int, tipo string) (Outcome, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Outcome{}, err
	}

	payload, err := json.Marshal(analysisRequest{IDCliente: clientID, Tipo: tipo})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	c.logger.Debug().Int("id_cliente", clientID).Str("tipo", tipo).Msg("engine request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("tipo", tipo).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("engine request failed")
		return Outcome{}, fmt.Errorf("no se pudo conectar con el motor de análisis: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read engine response: %w", err)
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("engine response")

	if resp.StatusCode == http.StatusNotFound {
		var nf notFoundResponse
		message := fmt.Sprintf("No se encontró análisis de tipo '%s' para el cliente %d.", tipo, clientID)
		if json.Unmarshal(body, &nf) == nil && nf.Mensaje != "" {
			message = nf.Mensaje
		}
		return Outcome{Kind: OutcomePlain, Message: message}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{}, fmt.Errorf("el motor de análisis respondió %d: %s", resp.StatusCode, string(body))
	}

	var result analysisResponse
	if err := json.Unmarshal(body, &result); err != nil {
		// HTML error pages from intermediaries arrive with a 200 status;
		// surface them as a distinct fault instead of the raw parse error.
		return Outcome{}, fmt.Errorf("el motor de análisis devolvió una respuesta que no es JSON válido: %s", truncate(string(body), 200))
	}

	return Outcome{
		Kind:          OutcomeStructured,
		FullAnalysis:  result.Resultado.FullAnalysis,
		MarketSummary: result.Resultado.MarketSummary,
	}, nil
}

// truncate shortens s to at most n bytes for error diagnostics.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

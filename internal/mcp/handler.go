package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/asesorlab/asesor-mcp/internal/common"
)

// defaultHeartbeat is the SSE keep-alive interval.
const defaultHeartbeat = 15 * time.Second

// Handler is the HTTP handler for the MCP endpoint. POST carries one
// JSON-RPC envelope per request; GET opens a keep-alive SSE stream.
type Handler struct {
	dispatcher *Dispatcher
	logger     *common.Logger
	heartbeat  time.Duration
}

// NewHandler creates the MCP HTTP handler.
func NewHandler(dispatcher *Dispatcher, logger *common.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
		heartbeat:  defaultHeartbeat,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRPC(w, r)
	case http.MethodGet:
		h.handleSSE(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRPC decodes one JSON-RPC envelope and writes the dispatch result.
// Notifications (and bodies that cannot be decoded, which by the envelope
// rules have no id) are acknowledged with 202 and an empty body.
func (h *Handler) handleRPC(w http.ResponseWriter, r *http.Request) {
	logger := h.logger
	if id := common.CorrelationIDFromContext(r.Context()); id != "" {
		logger = logger.WithCorrelationId(id)
	}

	req, err := decodeRequest(r.Body)
	if err != nil {
		logger.Debug().Str("error", err.Error()).Msg("malformed rpc body")
		w.WriteHeader(http.StatusAccepted)
		return
	}

	resp := h.dispatcher.Dispatch(r.Context(), req)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to encode rpc response")
	}
}

// handleSSE keeps an event stream open, emitting a comment heartbeat
// until the client disconnects.
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

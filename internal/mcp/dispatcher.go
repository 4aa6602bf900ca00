package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/asesorlab/asesor-mcp/internal/common"
	"github.com/asesorlab/asesor-mcp/internal/config"
	"github.com/asesorlab/asesor-mcp/internal/engine"
)

// AnalysisService retrieves and merges client analyses. Implemented by
// engine.Client; stubbed in tests.
type AnalysisService interface {
	FetchAndMerge(ctx context.Context, clientID int, tipo string) (string, error)
}

// Dispatcher routes decoded JSON-RPC envelopes to method handlers.
// It never returns an error itself: every fault becomes a structured
// JSON-RPC error response, and notifications produce nil.
type Dispatcher struct {
	service AnalysisService
	logger  *common.Logger
}

// NewDispatcher creates a dispatcher backed by the given analysis service.
func NewDispatcher(service AnalysisService, logger *common.Logger) *Dispatcher {
	return &Dispatcher{service: service, logger: logger}
}

// Dispatch handles one envelope. The nil return means "no response",
// which happens only for notifications; every request envelope yields
// exactly one response with the same id.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	// The notification rule comes before any method lookup: an envelope
	// without an id is never answered, whatever its method.
	if req == nil || req.IsNotification() {
		return nil
	}

	switch req.Method {
	case "initialize":
		return newResult(req.ID, initializeResult())
	case "tools/list":
		return newResult(req.ID, mcp.ListToolsResult{Tools: []mcp.Tool{AnalysisTool()}})
	case "tools/call":
		return d.dispatchToolCall(ctx, req)
	case "ping":
		return newResult(req.ID, struct{}{})
	case "notifications/list":
		// Kept for compatibility with an earlier protocol variant.
		return newResult(req.ID, map[string]interface{}{"notifications": []interface{}{}})
	default:
		return newError(req.ID, CodeMethodNotFound, fmt.Sprintf("Método no soportado: %s", req.Method))
	}
}

// initializeResult returns the fixed capability descriptor. It does not
// depend on params and has no side effects.
func initializeResult() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": config.GetVersion(),
		},
	}
}

// callParams is the params shape of a tools/call request.
type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// analysisArgs are the arguments of the getLatestClientAnalysis tool.
type analysisArgs struct {
	IDCliente *int   `json:"id_cliente"`
	Tipo      string `json:"tipo"`
}

func (d *Dispatcher) dispatchToolCall(ctx context.Context, req *Request) *Response {
	var params callParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return newError(req.ID, CodeInvalidParams, fmt.Sprintf("Parámetros inválidos: %v", err))
		}
	}

	if params.Name != ToolName {
		return newError(req.ID, CodeMethodNotFound, fmt.Sprintf("Herramienta desconocida: %s", params.Name))
	}

	var args analysisArgs
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return newError(req.ID, CodeInvalidParams, fmt.Sprintf("Argumentos inválidos: %v", err))
		}
	}
	if args.IDCliente == nil {
		return newError(req.ID, CodeInvalidParams, "Falta el parámetro id_cliente")
	}
	if !engine.ValidType(args.Tipo) {
		return newError(req.ID, CodeInvalidParams, fmt.Sprintf("Tipo de análisis no válido: '%s'", args.Tipo))
	}

	logger := d.logger
	if id := common.CorrelationIDFromContext(ctx); id != "" {
		logger = logger.WithCorrelationId(id)
	}

	logger.Info().
		Int("id_cliente", *args.IDCliente).
		Str("tipo", args.Tipo).
		Msg("tool call")

	text, err := d.service.FetchAndMerge(ctx, *args.IDCliente, args.Tipo)
	if err != nil {
		logger.Warn().
			Int("id_cliente", *args.IDCliente).
			Str("tipo", args.Tipo).
			Str("error", err.Error()).
			Msg("tool call failed")
		return newError(req.ID, CodeServerError, err.Error())
	}

	return newResult(req.ID, &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	})
}

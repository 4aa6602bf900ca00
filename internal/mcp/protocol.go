// Package mcp implements the JSON-RPC 2.0 surface of the MCP endpoint.
package mcp

import (
	"encoding/json"
	"io"
)

const (
	jsonrpcVersion  = "2.0"
	protocolVersion = "2024-11-05"
	serverName      = "asesor-mcp"
)

// JSON-RPC error codes used by the dispatcher.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

// Request is an inbound JSON-RPC 2.0 envelope. An absent id marks a
// notification; a present id (including null) marks a request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the envelope carries no id.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0
}

// decodeRequest parses one inbound envelope. The jsonrpc and method
// fields are read leniently: a type mismatch there must not turn a
// request into a dropped notification, so an envelope that carries an
// id always reaches the dispatcher and gets its error response.
func decodeRequest(body io.Reader) (*Request, error) {
	var raw struct {
		JSONRPC json.RawMessage `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  json.RawMessage `json:"method"`
		Params  json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, err
	}
	return &Request{
		JSONRPC: lenientString(raw.JSONRPC),
		ID:      raw.ID,
		Method:  lenientString(raw.Method),
		Params:  raw.Params,
	}, nil
}

// lenientString decodes a string field, falling back to the raw JSON
// text when the value is not a string.
func lenientString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// Response is an outbound JSON-RPC 2.0 envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// newResult builds a success response echoing the request id.
func newResult(id json.RawMessage, result interface{}) *Response {
	return &Response{JSONRPC: jsonrpcVersion, ID: id, Result: result}
}

// newError builds an error response echoing the request id.
func newError(id json.RawMessage, code int, message string) *Response {
	return &Response{JSONRPC: jsonrpcVersion, ID: id, Error: &RPCError{Code: code, Message: message}}
}

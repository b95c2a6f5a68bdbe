package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/toolrelay/toolrelay/internal/invoke"
)

// ServerInfo identifies this server in the initialize reply.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Dispatcher routes JSON-RPC requests to the invoker and the registry
// listing. It is stateless and shared by every persistent channel; the only
// state behind it is the read-only descriptor table.
type Dispatcher struct {
	log  *slog.Logger
	inv  *invoke.Invoker
	info ServerInfo
}

// NewDispatcher creates a dispatcher over the given invoker.
func NewDispatcher(log *slog.Logger, inv *invoke.Invoker, info ServerInfo) *Dispatcher {
	return &Dispatcher{
		log:  log.With("component", "rpc"),
		inv:  inv,
		info: info,
	}
}

// Handle decodes one raw message and returns the correlated response.
// Malformed JSON yields a parse-error response with a null id; Handle never
// returns nil and never fails.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) *Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		d.log.Debug("Failed to parse message", "error", err)

		return NewError(nil, CodeParseError, "Parse error")
	}

	return d.Dispatch(ctx, &req)
}

// Dispatch routes a decoded request to its method handler.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	d.log.Debug("Dispatching request", "method", req.Method, "id", string(req.ID))

	switch req.Method {
	case "initialize":
		return NewResult(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": d.info,
		})

	case "ping":
		return NewResult(req.ID, map[string]any{})

	case "tools/list":
		return NewResult(req.ID, map[string]any{
			"tools": d.inv.Registry().ListMCP(),
		})

	case "tools/call":
		return d.handleToolCall(ctx, req)

	default:
		return NewError(req.ID, CodeMethodNotFound,
			fmt.Sprintf("Method %q not found", req.Method))
	}
}

// handleToolCall runs one tool invocation and wraps the outcome as MCP text
// content. Invocation failures become JSON-RPC errors keyed by failure kind.
func (d *Dispatcher) handleToolCall(ctx context.Context, req *Request) *Response {
	name, _ := req.Params["name"].(string)
	arguments, _ := req.Params["arguments"].(map[string]any)

	if name == "" {
		return NewError(req.ID, CodeInvalidParams, "Missing tool name")
	}

	result := d.inv.Invoke(ctx, name, arguments)
	if !result.OK() {
		return NewError(req.ID, ErrorCode(result.Err.Kind), result.Err.Message)
	}

	// Result content travels as plain maps in MCP text-content shape.
	return NewResult(req.ID, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": FormatValue(result.Value)},
		},
	})
}

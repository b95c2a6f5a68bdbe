package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/toolrelay/toolrelay/internal/errors"
)

// Version is the JSON-RPC protocol version carried on every message.
const Version = "2.0"

// ProtocolVersion is the MCP protocol revision announced on initialize.
const ProtocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is an inbound JSON-RPC 2.0 request. The ID is kept raw so string
// and numeric correlation tokens echo back byte-for-byte.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  map[string]any  `json:"params,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Response is an outbound JSON-RPC 2.0 response. Exactly one of Result and
// Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// NewResult builds a success response correlated to id.
func NewResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: Version, ID: id, Result: result}
}

// NewError builds an error response correlated to id.
func NewError(id json.RawMessage, code int, message string) *Response {
	return &Response{
		JSONRPC: Version,
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}

// ErrorCode maps an invocation failure kind onto its JSON-RPC error code.
func ErrorCode(kind errors.Kind) int {
	switch kind {
	case errors.KindUnknownTool:
		return CodeMethodNotFound

	case errors.KindInvalidArguments:
		return CodeInvalidParams

	default:
		return CodeInternalError
	}
}

// FormatValue renders a handler result as display text for MCP text content.
// Scalars render bare; composite values render as compact JSON.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""

	case string:
		return v

	case bool:
		return strconv.FormatBool(v)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case int:
		return strconv.Itoa(v)

	case int64:
		return strconv.FormatInt(v, 10)

	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}

		return string(data)
	}
}

package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an invocation failure.
type Kind string

// Invocation failure kinds.
const (
	// KindUnknownTool means the caller referenced an unregistered tool name.
	KindUnknownTool Kind = "unknown_tool"

	// KindInvalidArguments means the call carried missing, extra, or
	// mistyped arguments. The handler was never invoked.
	KindInvalidArguments Kind = "invalid_arguments"

	// KindHandlerFailure means the tool handler itself failed at runtime.
	// The handler's internal failure taxonomy is not preserved, only a
	// human-readable message.
	KindHandlerFailure Kind = "handler_failure"
)

// ToolRelayError is the base interface for all toolrelay errors.
type ToolRelayError interface {
	error
	IsToolRelayError() bool
}

// Compile-time verification that all error types implement ToolRelayError.
var (
	_ ToolRelayError = (*CallError)(nil)
	_ ToolRelayError = (*ValidationError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrDuplicateTool indicates a tool name was registered twice.
	// Registration conflicts are programming errors and fatal at startup.
	ErrDuplicateTool = errors.New("duplicate tool name")

	// ErrUnknownTool indicates a lookup for an unregistered tool name.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrServerClosed indicates the server has been shut down.
	ErrServerClosed = errors.New("server closed")

	// ErrConnClosed indicates the websocket connection is closed.
	ErrConnClosed = errors.New("connection closed")
)

// CallError is the structured failure carried by an invocation result.
// Every failed invocation terminates in exactly one CallError; raw faults
// never cross the invoker boundary.
type CallError struct {
	Kind    Kind
	Tool    string
	Message string
	Err     error
}

func (e *CallError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Tool, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// IsToolRelayError implements ToolRelayError.
func (e *CallError) IsToolRelayError() bool { return true }

// NewCallError builds a CallError for the given kind, tool, and message.
func NewCallError(kind Kind, tool, message string) *CallError {
	return &CallError{Kind: kind, Tool: tool, Message: message}
}

// ValidationError describes a single argument that failed validation.
type ValidationError struct {
	Argument string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Argument, e.Reason)
}

// IsToolRelayError implements ToolRelayError.
func (e *ValidationError) IsToolRelayError() bool { return true }

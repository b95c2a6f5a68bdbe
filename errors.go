package toolrelay

import "github.com/toolrelay/toolrelay/internal/errors"

// Re-export error types from internal package

// CallError is the structured failure carried by an invocation result.
type CallError = errors.CallError

// ValidationError describes a single argument that failed validation.
type ValidationError = errors.ValidationError

// ToolRelayError is the base interface for all toolrelay errors.
type ToolRelayError = errors.ToolRelayError

// Kind classifies an invocation failure.
type Kind = errors.Kind

// Invocation failure kinds.
const (
	// KindUnknownTool indicates the caller referenced an unregistered name.
	KindUnknownTool = errors.KindUnknownTool

	// KindInvalidArguments indicates missing, extra, or mistyped arguments.
	KindInvalidArguments = errors.KindInvalidArguments

	// KindHandlerFailure indicates the underlying operation failed at runtime.
	KindHandlerFailure = errors.KindHandlerFailure
)

// Re-export sentinel errors from internal package.
var (
	// ErrDuplicateTool indicates a tool name was registered twice.
	ErrDuplicateTool = errors.ErrDuplicateTool

	// ErrUnknownTool indicates a lookup for an unregistered tool name.
	ErrUnknownTool = errors.ErrUnknownTool

	// ErrServerClosed indicates the server has been shut down.
	ErrServerClosed = errors.ErrServerClosed
)

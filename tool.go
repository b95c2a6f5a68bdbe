package toolrelay

import (
	"github.com/toolrelay/toolrelay/internal/registry"
	"github.com/toolrelay/toolrelay/internal/tools"
	"github.com/toolrelay/toolrelay/internal/validate"
)

// Re-export descriptor types from the internal registry package.
type (
	// Tool is the static descriptor of one invocable operation.
	Tool = registry.Tool

	// Param declares a single tool parameter.
	Param = registry.Param

	// TypeKind is the declared wire type of a tool parameter.
	TypeKind = registry.TypeKind

	// Handler is the function signature for tool handlers.
	Handler = registry.Handler

	// Registry maps tool names to descriptors.
	Registry = registry.Registry
)

// Parameter type kinds.
const (
	// Number accepts JSON numbers and numeric strings.
	Number = registry.Number

	// String accepts JSON strings.
	String = registry.String

	// Object accepts JSON objects.
	Object = registry.Object
)

// Re-export the unknown-argument validation policies.
type Policy = validate.Policy

// Unknown-argument policies.
const (
	// RejectUnknown fails calls that carry undeclared arguments.
	RejectUnknown = validate.RejectUnknown

	// IgnoreUnknown silently drops undeclared arguments.
	IgnoreUnknown = validate.IgnoreUnknown
)

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return registry.New()
}

// BuiltinTools returns the stock tool catalog served by default.
func BuiltinTools() []*Tool {
	return tools.All()
}

package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/toolrelay/toolrelay/internal/errors"
)

// TypeKind is the declared wire type of a tool parameter.
type TypeKind string

// Parameter type kinds. These map one-to-one onto JSON Schema types.
const (
	// Number accepts JSON numbers and numeric strings.
	Number TypeKind = "number"

	// String accepts JSON strings.
	String TypeKind = "string"

	// Object accepts JSON objects (a string-keyed mapping).
	Object TypeKind = "object"
)

// Handler is the function signature for tool handlers.
//
// Handlers receive arguments that already passed validation against the
// tool's parameter schema. A handler reports failure by returning an error;
// it must not panic, though the invoker recovers if one does.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Param declares a single tool parameter.
type Param struct {
	Name        string
	Kind        TypeKind
	Required    bool
	Default     any
	Description string
}

// Tool is the static descriptor of one invocable operation: its name,
// parameter schema, and handler. Descriptors are created once at startup and
// never mutated afterwards.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
	Annotations *mcp.ToolAnnotations
}

// InputSchema renders the parameter list as a JSON Schema object.
// The required list preserves declaration order.
func (t *Tool) InputSchema() *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(t.Params))
	required := make([]string, 0, len(t.Params))

	for _, p := range t.Params {
		prop := &jsonschema.Schema{
			Type:        string(p.Kind),
			Description: p.Description,
		}
		properties[p.Name] = prop

		if p.Required {
			required = append(required, p.Name)
		}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// MCP renders the descriptor as an MCP tool definition for wire listing.
func (t *Tool) MCP() *mcp.Tool {
	return &mcp.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: t.InputSchema(),
		Annotations: t.Annotations,
	}
}

// Registry maps tool names to descriptors.
//
// A Registry is populated during process startup and read-only for the rest
// of the process lifetime. Register is not safe for concurrent use; all
// registration must complete before the registry is shared with transports.
// Once frozen this way, concurrent Lookup and List need no locking.
type Registry struct {
	tools map[string]*Tool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tools: make(map[string]*Tool, 32),
	}
}

// Register adds a descriptor to the registry.
//
// It returns ErrDuplicateTool if the name is already present. Callers treat
// registration failures as fatal: a duplicate name is a programming error in
// the descriptor table, not a runtime condition.
func (r *Registry) Register(t *Tool) error {
	if t == nil {
		return fmt.Errorf("register: nil tool")
	}

	if t.Name == "" {
		return fmt.Errorf("register: tool name must not be empty")
	}

	if t.Handler == nil {
		return fmt.Errorf("register %s: nil handler", t.Name)
	}

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("register %s: %w", t.Name, errors.ErrDuplicateTool)
	}

	r.tools[t.Name] = t

	return nil
}

// MustRegister registers descriptors and panics on failure.
// Intended for startup-time descriptor tables where a registration conflict
// should abort process initialization.
func (r *Registry) MustRegister(tools ...*Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the descriptor for name, or false if not registered.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.tools[name]

	return t, ok
}

// List returns all descriptors sorted by name. Successive calls over an
// unchanged registry return identical listings.
func (r *Registry) List() []*Tool {
	result := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Names returns all registered tool names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// ListMCP renders every descriptor as an MCP tool definition, sorted by name.
// Both transports expose exactly this projection.
func (r *Registry) ListMCP() []*mcp.Tool {
	tools := r.List()
	result := make([]*mcp.Tool, 0, len(tools))

	for _, t := range tools {
		result = append(result, t.MCP())
	}

	return result
}

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolrelay/toolrelay/internal/errors"
)

func noopHandler(_ context.Context, _ map[string]any) (any, error) {
	return nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New()

	err := reg.Register(&Tool{
		Name:        "echo",
		Description: "Echo back the input text",
		Params: []Param{
			{Name: "text", Kind: String, Required: true},
		},
		Handler: noopHandler,
	})
	require.NoError(t, err)

	tool, ok := reg.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", tool.Name)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := New()
	tool := &Tool{Name: "echo", Handler: noopHandler}

	require.NoError(t, reg.Register(tool))

	err := reg.Register(tool)
	require.ErrorIs(t, err, errors.ErrDuplicateTool)
}

func TestRegisterRejectsInvalidDescriptors(t *testing.T) {
	reg := New()

	require.Error(t, reg.Register(nil))
	require.Error(t, reg.Register(&Tool{Handler: noopHandler}))
	require.Error(t, reg.Register(&Tool{Name: "no_handler"}))
}

func TestMustRegisterPanicsOnConflict(t *testing.T) {
	reg := New()
	reg.MustRegister(&Tool{Name: "add", Handler: noopHandler})

	require.Panics(t, func() {
		reg.MustRegister(&Tool{Name: "add", Handler: noopHandler})
	})
}

func TestListIsSortedAndStable(t *testing.T) {
	reg := New()
	reg.MustRegister(
		&Tool{Name: "sqrt", Handler: noopHandler},
		&Tool{Name: "add", Handler: noopHandler},
		&Tool{Name: "echo", Handler: noopHandler},
	)

	first := reg.Names()
	assert.Equal(t, []string{"add", "echo", "sqrt"}, first)

	// Listing twice without a registry change yields the identical name set.
	assert.Equal(t, first, reg.Names())

	listed := reg.List()
	require.Len(t, listed, 3)
	for i, tool := range listed {
		assert.Equal(t, first[i], tool.Name)
	}
}

func TestLookupReturnsMatchingName(t *testing.T) {
	reg := New()
	reg.MustRegister(
		&Tool{Name: "add", Handler: noopHandler},
		&Tool{Name: "divide", Handler: noopHandler},
		&Tool{Name: "hash_md5", Handler: noopHandler},
	)

	for _, name := range reg.Names() {
		tool, ok := reg.Lookup(name)
		require.True(t, ok)
		assert.Equal(t, name, tool.Name)
	}
}

func TestInputSchema(t *testing.T) {
	tool := &Tool{
		Name: "make_request",
		Params: []Param{
			{Name: "url", Kind: String, Required: true, Description: "URL to request"},
			{Name: "method", Kind: String, Default: "GET"},
			{Name: "headers", Kind: Object, Default: map[string]any{}},
		},
		Handler: noopHandler,
	}

	schema := tool.InputSchema()
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"url"}, schema.Required)

	require.Contains(t, schema.Properties, "url")
	assert.Equal(t, "string", schema.Properties["url"].Type)
	assert.Equal(t, "URL to request", schema.Properties["url"].Description)

	require.Contains(t, schema.Properties, "headers")
	assert.Equal(t, "object", schema.Properties["headers"].Type)
}

func TestListMCP(t *testing.T) {
	reg := New()
	reg.MustRegister(
		&Tool{
			Name:        "add",
			Description: "Add two numbers together",
			Params: []Param{
				{Name: "a", Kind: Number, Required: true},
				{Name: "b", Kind: Number, Required: true},
			},
			Handler: noopHandler,
		},
		&Tool{Name: "get_time", Description: "Get current server time", Handler: noopHandler},
	)

	tools := reg.ListMCP()
	require.Len(t, tools, 2)

	assert.Equal(t, "add", tools[0].Name)
	assert.Equal(t, "Add two numbers together", tools[0].Description)
	require.NotNil(t, tools[0].InputSchema)
	assert.Equal(t, []string{"a", "b"}, tools[0].InputSchema.Required)

	assert.Equal(t, "get_time", tools[1].Name)
	assert.Empty(t, tools[1].InputSchema.Required)
}

package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolrelay/toolrelay/internal/registry"
)

// catalog builds the builtin set once and indexes it by name.
func catalog(t *testing.T, opts ...Option) map[string]*registry.Tool {
	t.Helper()

	byName := make(map[string]*registry.Tool)
	for _, tool := range All(opts...) {
		require.NotContains(t, byName, tool.Name, "duplicate builtin name")
		byName[tool.Name] = tool
	}

	return byName
}

func call(t *testing.T, tool *registry.Tool, args map[string]any) any {
	t.Helper()

	value, err := tool.Handler(context.Background(), args)
	require.NoError(t, err)

	return value
}

func TestAllRegistersWithoutConflicts(t *testing.T) {
	reg := registry.New()
	for _, tool := range All() {
		require.NoError(t, reg.Register(tool))
	}

	assert.Equal(t, 21, reg.Len())
}

func TestBasicTools(t *testing.T) {
	tools := catalog(t)

	assert.Equal(t, "hello", call(t, tools["echo"], map[string]any{"text": "hello"}))

	now := call(t, tools["get_time"], nil).(string)
	_, err := time.Parse(time.RFC3339Nano, now)
	require.NoError(t, err)
}

func TestMathTools(t *testing.T) {
	tools := catalog(t)

	assert.Equal(t, 6.0, call(t, tools["add"], map[string]any{"a": 2.0, "b": 4.0}))
	assert.Equal(t, -2.0, call(t, tools["subtract"], map[string]any{"a": 2.0, "b": 4.0}))
	assert.Equal(t, 8.0, call(t, tools["multiply"], map[string]any{"a": 2.0, "b": 4.0}))
	assert.Equal(t, 0.5, call(t, tools["divide"], map[string]any{"a": 2.0, "b": 4.0}))
	assert.Equal(t, 8.0, call(t, tools["power"], map[string]any{"base": 2.0, "exponent": 3.0}))
	assert.Equal(t, 3.0, call(t, tools["sqrt"], map[string]any{"number": 9.0}))
}

func TestMathToolFailures(t *testing.T) {
	tools := catalog(t)

	_, err := tools["divide"].Handler(context.Background(), map[string]any{"a": 1.0, "b": 0.0})
	require.EqualError(t, err, "division by zero is not allowed")

	_, err = tools["sqrt"].Handler(context.Background(), map[string]any{"number": -1.0})
	require.EqualError(t, err, "cannot calculate square root of negative number")
}

func TestStringTools(t *testing.T) {
	tools := catalog(t)

	assert.Equal(t, "HELLO", call(t, tools["uppercase"], map[string]any{"text": "Hello"}))
	assert.Equal(t, "hello", call(t, tools["lowercase"], map[string]any{"text": "Hello"}))
	assert.Equal(t, "olleh", call(t, tools["reverse_string"], map[string]any{"text": "hello"}))
	assert.Equal(t, "ñéd", call(t, tools["reverse_string"], map[string]any{"text": "déñ"}))
	assert.Equal(t, 5, call(t, tools["string_length"], map[string]any{"text": "héllo"}))
}

func TestFileTools(t *testing.T) {
	tools := catalog(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	written := call(t, tools["write_file"], map[string]any{
		"filepath": path,
		"content":  "hello world",
	})
	assert.Contains(t, written, "Successfully wrote 11 characters")

	assert.Equal(t, "hello world", call(t, tools["read_file"], map[string]any{"filepath": path}))

	listing := call(t, tools["list_directory"], map[string]any{"path": dir}).(map[string]any)
	assert.Equal(t, dir, listing["path"])
	assert.Equal(t, 1, listing["count"])
	assert.Equal(t, []string{"note.txt"}, listing["items"])
}

func TestFileToolFailures(t *testing.T) {
	tools := catalog(t)
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := tools["read_file"].Handler(context.Background(), map[string]any{"filepath": missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = tools["list_directory"].Handler(context.Background(), map[string]any{"path": missing})
	require.Error(t, err)
}

func TestUtilityTools(t *testing.T) {
	tools := catalog(t)

	for i := 0; i < 50; i++ {
		n := call(t, tools["random_number"], map[string]any{"min": 1.0, "max": 10.0}).(int)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 10)
	}

	// Degenerate range yields the single possible value.
	assert.Equal(t, 7, call(t, tools["random_number"], map[string]any{"min": 7.0, "max": 7.0}))

	_, err := tools["random_number"].Handler(context.Background(), map[string]any{"min": 5.0, "max": 1.0})
	require.EqualError(t, err, "minimum value cannot be greater than maximum value")

	id := call(t, tools["generate_uuid"], nil).(string)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	assert.Equal(t,
		"5d41402abc4b2a76b9719d911017c592",
		call(t, tools["hash_md5"], map[string]any{"text": "hello"}))
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		call(t, tools["hash_sha256"], map[string]any{"text": "hello"}))
}

func TestValidateURL(t *testing.T) {
	tools := catalog(t)

	valid := []string{
		"http://example.com",
		"https://example.com/path?q=1",
		"http://localhost:8080",
		"https://10.0.0.1/health",
	}
	for _, u := range valid {
		assert.Equal(t, true, call(t, tools["validate_url"], map[string]any{"url": u}), u)
	}

	invalid := []string{
		"example.com",
		"ftp://example.com",
		"http://",
		"not a url",
	}
	for _, u := range invalid {
		assert.Equal(t, false, call(t, tools["validate_url"], map[string]any{"url": u}), u)
	}
}

func TestMakeRequest(t *testing.T) {
	var gotMethod, gotAccept string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	tools := catalog(t, WithHTTPClient(srv.Client()))

	result := call(t, tools["make_request"], map[string]any{
		"url":     srv.URL,
		"method":  "get",
		"headers": map[string]any{"Accept": "text/plain"},
	}).(map[string]any)

	assert.Equal(t, "GET", gotMethod)
	assert.Equal(t, "text/plain", gotAccept)
	assert.Equal(t, http.StatusTeapot, result["status_code"])
	assert.Equal(t, "short and stout", result["content"])
	assert.Equal(t, srv.URL, result["url"])
}

func TestMakeRequestConnectionFailure(t *testing.T) {
	tools := catalog(t)

	_, err := tools["make_request"].Handler(context.Background(), map[string]any{
		"url":     "http://127.0.0.1:1",
		"method":  "GET",
		"headers": map[string]any{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error making request")
}

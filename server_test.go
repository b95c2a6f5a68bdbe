package toolrelay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...ServerOption) (*Server, *httptest.Server) {
	t.Helper()

	opts = append([]ServerOption{WithLogger(NopLogger())}, opts...)

	srv, err := NewServer(opts...)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return srv, ts
}

func TestNewServerRegistersBuiltins(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, 21, srv.Registry().Len())

	tool, ok := srv.Registry().Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", tool.Name)
}

func TestNewServerRejectsDuplicateTools(t *testing.T) {
	_, err := NewServer(
		WithLogger(NopLogger()),
		WithTools(&Tool{
			Name:    "echo", // collides with a builtin
			Handler: func(_ context.Context, _ map[string]any) (any, error) { return nil, nil },
		}),
	)

	require.ErrorIs(t, err, ErrDuplicateTool)
}

func TestNewServerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArgPolicy = "lenient"

	_, err := NewServer(WithLogger(NopLogger()), WithConfig(cfg))
	require.Error(t, err)
}

func TestWithoutBuiltins(t *testing.T) {
	srv, err := NewServer(
		WithLogger(NopLogger()),
		WithoutBuiltins(),
		WithTools(&Tool{
			Name: "greet",
			Params: []Param{
				{Name: "name", Kind: String, Required: true},
			},
			Handler: func(_ context.Context, args map[string]any) (any, error) {
				return "hello, " + args["name"].(string), nil
			},
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.Registry().Len())

	result := srv.Invoker().Invoke(context.Background(), "greet", map[string]any{"name": "ada"})
	require.True(t, result.OK())
	assert.Equal(t, "hello, ada", result.Value)
}

func TestRESTEndToEnd(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/tools/call", "application/json",
		strings.NewReader(`{"name":"hash_sha256","arguments":{"text":"hello"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	assert.Equal(t, true, decoded["success"])
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		decoded["result"])
}

func TestWebsocketEndToEnd(t *testing.T) {
	srv, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/mcp"

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool {
		return srv.ActiveConnections() == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(
		`{"jsonrpc":"2.0","id":"rt","method":"tools/call",`+
			`"params":{"name":"reverse_string","arguments":{"text":"relay"}}}`)))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))

	var decoded map[string]any
	require.NoError(t, ws.ReadJSON(&decoded))

	assert.Equal(t, "rt", decoded["id"])
	content := decoded["result"].(map[string]any)["content"].([]any)
	assert.Equal(t, "yaler", content[0].(map[string]any)["text"])
}

func TestHealthReportsWebsocketConnections(t *testing.T) {
	_, ts := newTestServer(t)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/mcp"

	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool {
		resp, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		var decoded map[string]any
		if json.NewDecoder(resp.Body).Decode(&decoded) != nil {
			return false
		}

		return decoded["active_connections"] == 1.0
	}, time.Second, 20*time.Millisecond)
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0 // ephemeral

	srv, err := NewServer(WithLogger(NopLogger()), WithConfig(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	// Give the listener a moment, then cancel and expect a clean exit.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)

	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	relayerrors "github.com/toolrelay/toolrelay/internal/errors"
	"github.com/toolrelay/toolrelay/internal/invoke"
	"github.com/toolrelay/toolrelay/internal/rpc"
)

// API is the request/response transport adapter. It decodes one inbound
// payload into a tool invocation, calls the invoker, and encodes the result
// envelope. It keeps no per-request state.
type API struct {
	log     *slog.Logger
	inv     *invoke.Invoker
	info    rpc.ServerInfo
	maxBody int64

	// activeConnections reports live websocket channels for the health
	// endpoint. Wired by the composing server; defaults to zero.
	activeConnections func() int
}

// Option configures the API during construction.
type Option func(*API)

// WithMaxBody caps the accepted request body size in bytes.
func WithMaxBody(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBody = n
		}
	}
}

// WithActiveConnections wires the websocket connection counter reported by
// the health endpoint.
func WithActiveConnections(fn func() int) Option {
	return func(a *API) {
		a.activeConnections = fn
	}
}

// New creates the HTTP adapter over the given invoker.
func New(log *slog.Logger, inv *invoke.Invoker, info rpc.ServerInfo, opts ...Option) *API {
	a := &API{
		log:               log.With("component", "httpapi"),
		inv:               inv,
		info:              info,
		maxBody:           1 << 20,
		activeConnections: func() int { return 0 },
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Routes registers the REST endpoints on the router.
func (a *API) Routes(r *mux.Router) {
	r.HandleFunc("/", a.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/healthz", a.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/tools", a.handleListTools).Methods(http.MethodGet)
	r.HandleFunc("/tools/call", a.handleCallTool).Methods(http.MethodPost)
}

func (a *API) handleRoot(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{
		"message":      a.info.Name + " is running!",
		"version":      a.info.Version,
		"mcp_endpoint": "/mcp",
		"tools":        a.inv.Registry().Len(),
	})
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"active_connections": a.activeConnections(),
	})
}

func (a *API) handleListTools(w http.ResponseWriter, _ *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]any{
		"tools": a.inv.Registry().ListMCP(),
	})
}

// callRequest is the POST /tools/call body.
type callRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (a *API) handleCallTool(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, a.maxBody)

	var req callRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.writeFailure(w, http.StatusRequestEntityTooLarge, "request body too large")

			return
		}

		a.writeFailure(w, http.StatusBadRequest, "invalid request body: "+err.Error())

		return
	}

	result := a.inv.Invoke(r.Context(), req.Name, req.Arguments)
	if !result.OK() {
		a.writeFailure(w, statusFor(result.Err.Kind), result.Err.Message)

		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result.Value,
	})
}

// statusFor maps invocation failure kinds onto HTTP statuses. Handler
// failures always map to 500: the handler's failure taxonomy is opaque to
// the transport, so no attempt is made to attribute them to caller input.
func statusFor(kind relayerrors.Kind) int {
	switch kind {
	case relayerrors.KindUnknownTool:
		return http.StatusNotFound

	case relayerrors.KindInvalidArguments:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeFailure(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error("Failed to encode response", "error", err)
	}
}

package toolrelay

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/toolrelay/toolrelay/internal/config"
	"github.com/toolrelay/toolrelay/internal/httpapi"
	"github.com/toolrelay/toolrelay/internal/invoke"
	"github.com/toolrelay/toolrelay/internal/registry"
	"github.com/toolrelay/toolrelay/internal/rpc"
	"github.com/toolrelay/toolrelay/internal/tools"
	"github.com/toolrelay/toolrelay/internal/wsapi"
)

// Version is the server version reported on initialize and the root
// endpoint. Overridden via ldflags at build time.
var Version = "dev"

// Config is the full server configuration.
type Config = config.Config

// DefaultConfig returns the configuration used absent a file or overrides.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads and validates a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// DiscoverConfigPath resolves the config file location: the explicit path if
// given, else toolrelay.yaml in the working directory, else config.yaml
// under ~/.toolrelay. Found=false with a nil error means defaults apply.
func DiscoverConfigPath(explicitPath string) (path string, found bool, err error) {
	return config.DiscoverPath(explicitPath)
}

// Server binds the tool registry, invoker, and both transport adapters onto
// one HTTP listener: REST endpoints plus the websocket channel at /mcp.
type Server struct {
	log *slog.Logger
	cfg Config

	reg *registry.Registry
	inv *invoke.Invoker
	ws  *wsapi.Manager

	handler http.Handler
	httpSrv *http.Server
}

// serverOptions collects construction options before wiring.
type serverOptions struct {
	log      *slog.Logger
	cfg      *Config
	extra    []*Tool
	builtins bool
}

// ServerOption configures a Server during construction.
type ServerOption func(*serverOptions)

// WithLogger sets the logger. Defaults to a text handler on stderr at the
// configured level.
func WithLogger(log *slog.Logger) ServerOption {
	return func(o *serverOptions) {
		o.log = log
	}
}

// WithConfig sets the full server configuration.
func WithConfig(cfg Config) ServerOption {
	return func(o *serverOptions) {
		o.cfg = &cfg
	}
}

// WithTools registers additional tool descriptors alongside the builtins.
func WithTools(extra ...*Tool) ServerOption {
	return func(o *serverOptions) {
		o.extra = append(o.extra, extra...)
	}
}

// WithoutBuiltins skips the stock tool catalog, serving only the tools
// supplied via WithTools.
func WithoutBuiltins() ServerOption {
	return func(o *serverOptions) {
		o.builtins = false
	}
}

// NewServer constructs a fully wired server.
//
// The registry is populated here, once; a duplicate tool name fails
// construction. After NewServer returns the descriptor table is immutable.
func NewServer(opts ...ServerOption) (*Server, error) {
	options := &serverOptions{builtins: true}
	for _, opt := range opts {
		opt(options)
	}

	cfg := config.Default()
	if options.cfg != nil {
		cfg = *options.cfg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := options.log
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		}))
	}

	reg := registry.New()

	if options.builtins {
		for _, t := range tools.All() {
			if err := reg.Register(t); err != nil {
				return nil, err
			}
		}
	}

	for _, t := range options.extra {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}

	inv := invoke.New(log, reg,
		invoke.WithPolicy(cfg.Policy()),
		invoke.WithTimeout(cfg.CallTimeout),
	)

	info := rpc.ServerInfo{Name: "toolrelay", Version: Version}

	ws := wsapi.NewManager(log, rpc.NewDispatcher(log, inv, info))

	api := httpapi.New(log, inv, info,
		httpapi.WithMaxBody(cfg.MaxBodyBytes),
		httpapi.WithActiveConnections(ws.ActiveConnections),
	)

	router := mux.NewRouter()
	api.Routes(router)
	router.Handle("/mcp", ws)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)

	return &Server{
		log:     log.With("component", "server"),
		cfg:     cfg,
		reg:     reg,
		inv:     inv,
		ws:      ws,
		handler: handler,
		httpSrv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}, nil
}

// Handler returns the composed HTTP handler (REST routes, CORS, and the
// websocket endpoint). Useful for mounting in tests or a caller-owned
// http.Server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the read-only descriptor table.
func (s *Server) Registry() *Registry {
	return s.reg
}

// Invoker returns the shared invoker.
func (s *Server) Invoker() *Invoker {
	return s.inv
}

// ActiveConnections returns the number of live websocket channels.
func (s *Server) ActiveConnections() int {
	return s.ws.ActiveConnections()
}

// Run serves until ctx is cancelled, then shuts down gracefully: the
// listener stops, live websocket channels are closed, and in-flight HTTP
// requests get a bounded drain window.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return err
	}

	s.log.Info("Server listening",
		"addr", ln.Addr().String(),
		"tools", s.reg.Len(),
		"version", Version,
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		s.log.Info("Shutting down")
		s.ws.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	s.log.Info("Server stopped")

	return nil
}

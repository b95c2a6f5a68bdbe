// Package toolrelay implements a demonstration tool server: a catalog of
// small utility tools (arithmetic, string transforms, file I/O, hashing,
// UUID generation, HTTP fetch) exposed over a REST API and a websocket
// channel speaking a JSON-RPC 2.0 subset of the Model Context Protocol.
//
// The core is a generic dispatch pipeline: a tool registry built once at
// startup, an argument validator checking calls against each tool's declared
// parameter schema, and an invoker that turns every call into a uniform
// success/error envelope. Both transports share that pipeline and nothing
// else; the registry is the only cross-request state and it is read-only.
//
// # Running a server
//
//	srv, err := toolrelay.NewServer(
//	    toolrelay.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Custom tools
//
// Callers can extend the builtin catalog with their own descriptors:
//
//	srv, err := toolrelay.NewServer(
//	    toolrelay.WithTools(&toolrelay.Tool{
//	        Name:        "greet",
//	        Description: "Greet someone by name",
//	        Params: []toolrelay.Param{
//	            {Name: "name", Kind: toolrelay.String, Required: true},
//	        },
//	        Handler: func(ctx context.Context, args map[string]any) (any, error) {
//	            return "hello, " + args["name"].(string), nil
//	        },
//	    }),
//	)
//
// Registration conflicts (duplicate tool names) fail NewServer: they are
// programming errors in the descriptor table, not runtime conditions.
package toolrelay

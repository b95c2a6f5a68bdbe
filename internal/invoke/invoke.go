package invoke

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/toolrelay/toolrelay/internal/errors"
	"github.com/toolrelay/toolrelay/internal/registry"
	"github.com/toolrelay/toolrelay/internal/validate"
)

// Result is the uniform invocation envelope: either a value or a structured
// call error, never both. Err == nil means success.
type Result struct {
	Value any
	Err   *errors.CallError
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Ok wraps a successful handler return.
func Ok(value any) Result {
	return Result{Value: value}
}

// Fail wraps a structured call error.
func Fail(err *errors.CallError) Result {
	return Result{Err: err}
}

// Invoker is the single chokepoint between transports and tool handlers.
//
// It resolves the tool name, validates arguments, runs the handler in the
// calling goroutine, and converts every failure mode into a well-formed
// Result. Nothing raised by a handler (errors or panics) ever propagates
// past Invoke. The invoker holds no mutable state; a single instance is
// shared by every transport and connection.
type Invoker struct {
	log     *slog.Logger
	reg     *registry.Registry
	policy  validate.Policy
	timeout time.Duration
}

// Option configures an Invoker during construction.
type Option func(*Invoker)

// WithPolicy sets the unknown-argument policy. Default is RejectUnknown.
func WithPolicy(policy validate.Policy) Option {
	return func(inv *Invoker) {
		inv.policy = policy
	}
}

// WithTimeout bounds each handler call with a context deadline. Handlers may
// observe the deadline or not; the invoker does not force termination, it
// only reports the handler's outcome. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(inv *Invoker) {
		inv.timeout = timeout
	}
}

// New creates an Invoker over the given registry.
func New(log *slog.Logger, reg *registry.Registry, opts ...Option) *Invoker {
	inv := &Invoker{
		log:    log.With("component", "invoker"),
		reg:    reg,
		policy: validate.RejectUnknown,
	}

	for _, opt := range opts {
		opt(inv)
	}

	return inv
}

// Policy returns the invoker's unknown-argument policy.
func (inv *Invoker) Policy() validate.Policy {
	return inv.policy
}

// Registry returns the read-only descriptor table backing this invoker.
func (inv *Invoker) Registry() *registry.Registry {
	return inv.reg
}

// Invoke resolves name, validates raw arguments, and calls the handler.
//
// Lookup and validation failures are reported before the handler runs, so a
// bad call has no side effects. Handler failures are caught at this boundary
// and surface as KindHandlerFailure with a message only.
func (inv *Invoker) Invoke(ctx context.Context, name string, raw map[string]any) Result {
	tool, ok := inv.reg.Lookup(name)
	if !ok {
		inv.log.Debug("Unknown tool requested", "tool", name)

		return Fail(&errors.CallError{
			Kind:    errors.KindUnknownTool,
			Tool:    name,
			Message: fmt.Sprintf("tool %q is not registered", name),
			Err:     errors.ErrUnknownTool,
		})
	}

	args, err := validate.Arguments(tool, raw, inv.policy)
	if err != nil {
		inv.log.Debug("Argument validation failed", "tool", name, "error", err)

		return Fail(&errors.CallError{
			Kind:    errors.KindInvalidArguments,
			Tool:    name,
			Message: err.Error(),
			Err:     err,
		})
	}

	if inv.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.timeout)

		defer cancel()
	}

	value, err := inv.callHandler(ctx, tool, args)
	if err != nil {
		inv.log.Warn("Handler failed", "tool", name, "error", err)

		return Fail(&errors.CallError{
			Kind:    errors.KindHandlerFailure,
			Tool:    name,
			Message: err.Error(),
			Err:     err,
		})
	}

	inv.log.Debug("Tool call succeeded", "tool", name)

	return Ok(value)
}

// callHandler runs the handler and converts panics into ordinary errors so
// one misbehaving tool cannot take down a transport.
func (inv *Invoker) callHandler(
	ctx context.Context,
	tool *registry.Tool,
	args map[string]any,
) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			inv.log.Error("Handler panicked", "tool", tool.Name, "panic", r)

			value = nil
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return tool.Handler(ctx, args)
}

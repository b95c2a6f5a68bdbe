package toolrelay

import "github.com/toolrelay/toolrelay/internal/invoke"

// Result is the uniform invocation envelope: either a value or a structured
// call error, never both.
type Result = invoke.Result

// Invoker is the single chokepoint between transports and tool handlers.
type Invoker = invoke.Invoker

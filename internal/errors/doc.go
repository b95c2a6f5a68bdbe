// Package errors defines error types for toolrelay.
//
// This package provides the invocation failure taxonomy (unknown tool,
// invalid arguments, handler failure) plus sentinel errors for registry and
// server lifecycle conditions. All error types support error unwrapping and
// can be checked using errors.Is and errors.As.
package errors

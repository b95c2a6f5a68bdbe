// Package registry holds the tool descriptor table.
//
// A descriptor declares a tool's name, ordered parameter schema, and handler.
// The registry is populated once at process startup, rejects duplicate names,
// and is immutable for the rest of the process lifetime, so transports can
// read it concurrently without locking.
package registry

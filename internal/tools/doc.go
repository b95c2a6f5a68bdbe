// Package tools declares the builtin tool catalog: basic echo/time helpers,
// arithmetic, string transforms, file I/O, hashing and UUID utilities, and
// outbound HTTP. Each tool is a descriptor plus a small handler; handlers
// assume their arguments already passed schema validation.
package tools

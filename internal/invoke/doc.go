// Package invoke translates a named call with raw arguments into a
// validated, normalized result. It is the single boundary where tool lookup
// misses, argument validation failures, handler errors, and handler panics
// all collapse into one structured envelope, so transports never see an
// uncaught fault.
package invoke

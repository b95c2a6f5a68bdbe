// Package validate checks raw call arguments against a tool's declared
// parameter schema before any handler runs: required parameters must be
// present, optional ones take defaults, numeric strings coerce to numbers,
// and undeclared arguments are rejected or dropped per policy.
package validate

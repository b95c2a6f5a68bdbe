// Package httpapi is the synchronous request/response transport adapter:
// tool listing, health, and one-shot tool calls over REST. Unknown tools map
// to 404, invalid arguments to 400, and handler failures to 500.
package httpapi

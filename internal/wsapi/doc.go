// Package wsapi is the persistent-channel transport adapter: a websocket
// endpoint speaking JSON-RPC 2.0 where the request id is the correlation
// token. Messages on one channel are handled concurrently and answered in
// completion order; channels are fully isolated from each other.
package wsapi

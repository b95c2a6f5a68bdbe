// Package rpc implements the JSON-RPC 2.0 message layer spoken on the
// persistent channel: initialize, ping, tools/list, and tools/call, with the
// request id acting as the correlation token. The dispatcher is transport
// independent; the websocket adapter feeds it raw frames.
package rpc

// Package server implements an MCP (Model Context Protocol) server that
// exposes rectanglify as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and report its size, format and darkness
//   - image_analyze: Estimate how many rectangles an image would be split into
//   - image_rectanglify: Stylize an image, returned inline or written to a file
//   - settings_get: Report the server's default density and preprocessing
//   - settings_set: Change the default density for later calls
//
// Per-call arguments override the server defaults for that call only.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the server. Writing
// a stylized image to output_path evicts that path so a later load sees the
// new file.
//
// # Error Handling
//
// Malformed arguments are reported with code -32602. Tool failures, such as
// an unreadable image, are reported with code -32000 and the Go error string
// in data.
package server

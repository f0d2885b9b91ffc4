// Package server implements the MCP (Model Context Protocol) server for the
// gradient magnitude tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the gradient
// filter through the MCP protocol, so that MCP clients can ask where the
// intensity of an image changes and how strongly.
//
// # Protocol
//
// The server communicates over a line-delimited stream, normally stdio:
//   - Input: JSON-RPC requests (one per line)
//   - Output: JSON-RPC responses
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load an image and report its size, sample type and extent
//   - image_gradient_magnitude: Gradient magnitude rendered as a PNG
//   - image_gradient_stats: Gradient magnitude statistics only
//   - image_gradient_sample: Gradient magnitude at labeled pixel positions
//   - image_gradient_extents: Extent negotiation without reading pixels
//   - image_edge_map: Thresholded gradient magnitude as a binary PNG
//
// Arguments a request leaves out fall back to the server's config.Config.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime of
// the server.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    logger.Fatal(err)
//	}
package server

// Package server implements the MCP (Model Context Protocol) server for
// floor plan analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes the detection
// pipeline through the MCP protocol. It's designed to work with Claude and
// other MCP-compatible clients, letting AI systems turn floor plan images
// into structured room and wall data.
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
// Detection:
//   - floorplan_detect: Run the strategy chain over an image file and
//     store the result under a generated id
//   - floorplan_get_result: Retrieve a stored result by id
//   - floorplan_list_results: List stored result ids
//
// Derived outputs:
//   - floorplan_export_3d: Extrude a stored result into a 3D wall model,
//     optionally with wall edits applied
//   - floorplan_render_overlay: Write an annotated copy of the input image
//
// Calibration and references:
//   - floorplan_calibrate: Set the session's pixel-to-feet scale from a
//     known reference length
//   - floorplan_register_reference: Pin a curated layout to an exact image
//     so fallback synthesis serves it instead of the grid
//
// # Session State
//
// Protocol handling is stateless. The server carries three pieces of
// session state: the result store (injected at construction), the
// reference-layout table, and the active calibration. Detection itself
// runs on a fresh engine per call so per-request options never leak
// between requests.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Detection degradation is not an error: an image where every strategy
// comes up empty still produces a result, marked with method "fallback".
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(store.NewMemory())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

// Package server implements the MCP (Model Context Protocol) server for
// grouping OCR segmentations into character candidates.
//
// This package provides a JSON-RPC 2.0 server that exposes the grouper and
// the segmentation utilities through the MCP protocol, so that an MCP client
// can label a text line, enumerate candidate characters, look at them,
// classify them and read back the recognition lattice.
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
// Segmentation utilities work on label images stored as 24-bit RGB files:
//   - segmentation_label: Binarize a line image and label its components
//   - segmentation_recolor: Render a label image in distinct colours
//   - segmentation_evaluate: Count over- and under-segmentations
//   - segmentation_charseg: Build a character segmentation from boxes
//
// Grouper sessions hold one installed segmentation each:
//   - grouper_open, grouper_open_gt: Create a session, optionally with ground truth
//   - grouper_candidates: List candidate groups
//   - grouper_extract: Render a candidate mask or masked page crop
//   - grouper_classify: Classify every candidate with Tesseract
//   - grouper_set_class, grouper_set_space_cost: Record hypotheses
//   - grouper_clear_lattice, grouper_lattice: Reset or read the lattice
//   - grouper_close: Drop the session
//
// Session state is guarded by a single server mutex; a grouper itself is not
// safe for concurrent use.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. Files written by a
// tool replace the cached entry for their path.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg, logging.New("grouper-mcp", cfg.Level()))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

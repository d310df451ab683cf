// Package server provides the MCP server implementation for the Aristotle
// gateway service.
package server

// ProofToolServer defines the interface for the MCP server that handles
// proving-related tool calls from MCP clients.
type ProofToolServer interface {
	// Initialize initializes the server with dependencies and configurations.
	Initialize() error

	// Start starts the MCP server on the specified transport.
	Start() error

	// Stop gracefully shuts down the MCP server.
	Stop() error
}

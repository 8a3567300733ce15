// Package mcp provides an MCP (Model Context Protocol) server adapter for Nomad.
// It lets AI assistants query the travel agency's trip catalog and ask the
// retrieval-grounded bot questions.
package mcp

import "errors"

// ErrMissingBotService is returned when the bot service is not provided.
var ErrMissingBotService = errors.New("mcp: bot service is required")

// ErrMissingTripService is returned when the trip service is not provided.
var ErrMissingTripService = errors.New("mcp: trip service is required")

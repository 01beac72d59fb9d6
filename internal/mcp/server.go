// Package mcp exposes the tracker's operations as MCP tools over stdio for
// local agent use. Stdio mode is local-only, so authentication is bypassed
// and no remote sync is involved.
package mcp

import (
	"log/slog"

	"invotrack/internal/domain/tracker"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `Invotrack tracks per-client monthly invoice statuses.
Each client has an invoicing frequency (Monthly, Quarterly, Semi-Annually,
Annually) which determines the months an invoice applies to. Months are
zero-indexed: 0 is January, 11 is December. Statuses are NOT_DONE, COMPLETED
and RECURRING_DONE; NA is synthetic and only appears in grid output for
months a client's frequency does not cover.`

// Config contains server configuration.
type Config struct {
	Tracker *tracker.Service
	Logger  *slog.Logger
}

// NewServer creates and configures an MCP server with all tools registered.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "invotrack",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg.Tracker)

	return server
}

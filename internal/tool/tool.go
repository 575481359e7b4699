// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the chunking pipeline as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/logchunks/logchunks/internal/config"
)

// Tools holds the configuration shared by every tool handler.
type Tools struct {
	cfg    config.Config
	logger *zap.Logger
}

// New creates the tool set. A nil logger discards output.
func New(cfg config.Config, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{cfg: cfg, logger: logger}
}

// Register adds every tool to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, MetadataSplitReport, t.SplitReport)
	mcp.AddTool(server, MetadataReadChunks, t.ReadChunks)
	mcp.AddTool(server, MetadataExtractSections, ExtractSections)
}

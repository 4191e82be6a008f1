package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ftnpaper/curator/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"edition_show": {
		def:     showToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleShow },
	},
	"edition_move": {
		def:     moveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMove },
	},
	"edition_unuse": {
		def:     unuseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUnuse },
	},
	"edition_restore": {
		def:     restoreToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRestore },
	},
	"edition_swap_main": {
		def:     swapToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSwapMain },
	},
	"edition_rewrite": {
		def:     rewriteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRewrite },
	},
	"edition_promote": {
		def:     promoteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePromote },
	},
	"edition_demote": {
		def:     demoteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDemote },
	},
	"edition_combine": {
		def:     combineToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCombine },
	},
	"edition_rename_theme": {
		def:     themeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRenameTheme },
	},
	"edition_themes": {
		def:     themesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleThemes },
	},
	"edition_validate": {
		def:     validateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleValidate },
	},
	"edition_save": {
		def:     saveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSave },
	},
	"edition_regroup": {
		def:     regroupToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRegroup },
	},
	"edition_changes": {
		def:     changesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleChanges },
	},
	"edition_diff": {
		def:     diffToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDiff },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with the edition tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(session *Session, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"ftnpaper-curator",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(session, cfg)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(session *Session, cfg *config.Config, version string) error {
	s := NewServer(session, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

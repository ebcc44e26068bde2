package mcp

import (
	"context"
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lembra-app/lembra/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"deck_create": {
		def:     deckCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckCreate },
	},
	"deck_get": {
		def:     deckGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckGet },
	},
	"deck_list": {
		def:     deckListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckList },
	},
	"deck_update": {
		def:     deckUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckUpdate },
	},
	"deck_delete": {
		def:     deckDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckDelete },
	},
	"deck_due": {
		def:     deckDueToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckDue },
	},
	"deck_export": {
		def:     deckExportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckExport },
	},
	"deck_import": {
		def:     deckImportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDeckImport },
	},
	"card_add": {
		def:     cardAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCardAdd },
	},
	"card_update": {
		def:     cardUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCardUpdate },
	},
	"card_remove": {
		def:     cardRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCardRemove },
	},
	"study_start": {
		def:     studyStartToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStudyStart },
	},
	"study_reveal": {
		def:     studyRevealToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStudyReveal },
	},
	"study_answer": {
		def:     studyAnswerToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStudyAnswer },
	},
	"study_status": {
		def:     studyStatusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStudyStatus },
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

// NewServer creates a new MCP server with Lembra tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"lembra",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the journal to LLM consumers via stdio transport. All
// tools are read-only: the journal is written exclusively by the
// collection engine.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hollis/daybook/internal/dates"
	"github.com/hollis/daybook/internal/index"
	"github.com/hollis/daybook/internal/storage"
)

// Server wraps the MCP server with journal tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
	db    index.DayIndex
}

// New creates a new MCP server with all journal tools registered.
func New(store storage.Provider, db index.DayIndex) *Server {
	s := &Server{store: store, db: db}

	s.mcp = server.NewMCPServer(
		"Daybook",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_journal",
		mcp.WithDescription("Full-text search through journal day files."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchJournal)

	s.mcp.AddTool(mcp.NewTool("read_day",
		mcp.WithDescription("Read the full markdown content of one journal day. "+
			"The format of day files is described by the daybook://journal-format resource."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Day to read (YYYY-MM-DD)")),
	), s.readDay)

	s.mcp.AddTool(mcp.NewTool("list_days",
		mcp.WithDescription("List journal days, newest first, optionally bounded to a date range."),
		mcp.WithString("from", mcp.Description("Earliest day to include (YYYY-MM-DD)")),
		mcp.WithString("to", mcp.Description("Latest day to include (YYYY-MM-DD)")),
	), s.listDays)

	s.mcp.AddTool(mcp.NewTool("get_journal_contract",
		mcp.WithDescription("Returns the canonical journal file format. "+
			"Call this before interpreting day-file content."),
	), s.getJournalContract)

	// Resource: journal format contract.
	s.mcp.AddResource(
		mcp.NewResource("daybook://journal-format", "Journal Format Contract",
			mcp.WithResourceDescription("Canonical layout and section format of journal day files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readJournalFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	day, err := dates.Normalize(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %s", raw)), nil
	}
	row, err := s.db.GetByDate(day)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no journal entry for %s", day)), nil
	}
	data, err := s.store.Read(row.Path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", row.Path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var from, to string
	if v, err := req.RequireString("from"); err == nil {
		from = v
	}
	if v, err := req.RequireString("to"); err == nil {
		to = v
	}

	rows, _, err := s.db.ListDays(365, 0, from, to)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("no journal entries"), nil
	}

	var lines []string
	for _, r := range rows {
		line := r.Day
		if len(r.Sections) > 0 {
			line += ": " + strings.Join(r.Sections, ", ")
		}
		lines = append(lines, line)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getJournalContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(JournalFormatContract), nil
}

func (s *Server) readJournalFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "daybook://journal-format",
			MIMEType: "text/markdown",
			Text:     JournalFormatContract,
		},
	}, nil
}

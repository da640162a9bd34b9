// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the file catalog for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raidho/internal/catalog"
	"github.com/starford/raidho/internal/indexer"
)

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcp    *server.MCPServer
	engine *catalog.Engine
	runner *indexer.Runner
}

// New creates a new MCP server with all catalog tools registered.
func New(engine *catalog.Engine, runner *indexer.Runner) *Server {
	s := &Server{engine: engine, runner: runner}

	s.mcp = server.NewMCPServer(
		"Raidho",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_files",
		mcp.WithDescription("Substring search over the indexed file catalog, paginated."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to match against file paths")),
		mcp.WithString("drive", mcp.Description("Optional exact drive-name filter")),
		mcp.WithString("page", mcp.Description("Zero-based page index (default 0)")),
	), s.searchFiles)

	s.mcp.AddTool(mcp.NewTool("count_files",
		mcp.WithDescription("Count catalog files matching an optional drive filter and path substring."),
		mcp.WithString("query", mcp.Description("Substring to match against file paths")),
		mcp.WithString("drive", mcp.Description("Optional exact drive-name filter")),
	), s.countFiles)

	s.mcp.AddTool(mcp.NewTool("list_drives",
		mcp.WithDescription("List all distinct drive names in the catalog."),
	), s.listDrives)

	s.mcp.AddTool(mcp.NewTool("index_directory",
		mcp.WithDescription("Scan a directory tree and store it in the catalog under a category and drive name. "+
			"Set clean to \"true\" to delete previously stored files for the same pair first."),
		mcp.WithString("root", mcp.Required(), mcp.Description("Absolute path of the directory to scan")),
		mcp.WithString("category", mcp.Required(), mcp.Description("Grouping label for this run (e.g. Movies)")),
		mcp.WithString("drive", mcp.Required(), mcp.Description("Name of the storage location (e.g. Disk1)")),
		mcp.WithString("clean", mcp.Description("\"true\" to remove prior files for the pair before saving")),
	), s.indexDirectory)

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

func (s *Server) searchFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	criteria := catalog.Criteria{Query: query}
	if d, err := req.RequireString("drive"); err == nil {
		criteria.Drive = d
	}
	var page uint64
	if p, err := req.RequireString("page"); err == nil {
		page, _ = strconv.ParseUint(p, 10, 64)
	}

	result, err := s.engine.Search(criteria, page, catalog.DefaultPageSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) countFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var criteria catalog.Criteria
	if q, err := req.RequireString("query"); err == nil {
		criteria.Query = q
	}
	if d, err := req.RequireString("drive"); err == nil {
		criteria.Drive = d
	}
	count, err := s.engine.Count(criteria)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strconv.FormatUint(count, 10)), nil
}

func (s *Server) listDrives(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	drives, err := s.engine.DriveNames()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(drives, "\n")), nil
}

func (s *Server) indexDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	drive, err := req.RequireString("drive")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	clean := false
	if c, err := req.RequireString("clean"); err == nil {
		clean = c == "true"
	}

	res := s.runner.RunSync(indexer.Request{
		Root:     root,
		Category: category,
		Drive:    drive,
		Clean:    clean,
	})
	if res.Err != nil {
		return mcp.NewToolResultError(res.Err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("indexed %d files under %s/%s", res.Inserted, category, drive)), nil
}

package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/raidho/internal/catalog"
	"github.com/starford/raidho/internal/indexer"
	"github.com/starford/raidho/internal/models"
	"github.com/starford/raidho/internal/testutil"
)

func testServer(t *testing.T) (*Server, *catalog.DB) {
	t.Helper()

	db := testutil.TestDB(t)
	engine := catalog.NewEngine(db, 0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	space := func(string) (uint64, error) { return 1024, nil }
	runner := indexer.NewRunner(db, engine, space, logger, 1)

	return New(engine, runner), db
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we dispatch to the
	// handler functions ourselves.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_files":
		result, err = srv.searchFiles(ctx, req)
	case "count_files":
		result, err = srv.countFiles(ctx, req)
	case "list_drives":
		result, err = srv.listDrives(ctx, req)
	case "index_directory":
		result, err = srv.indexDirectory(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestIndexDirectoryAndSearch(t *testing.T) {
	srv, _ := testServer(t)
	root := testutil.TestTree(t, map[string]string{
		"movies/alpha.mkv": "abc",
		"movies/beta.mkv":  "de",
	})

	r := callTool(t, srv, "index_directory", map[string]interface{}{
		"root":     root,
		"category": "Movies",
		"drive":    "Disk1",
	})
	text := resultText(r)
	if text != "indexed 2 files under Movies/Disk1" {
		t.Errorf("index result = %q", text)
	}

	r = callTool(t, srv, "search_files", map[string]interface{}{
		"query": "alpha",
	})
	text = resultText(r)
	if !strings.Contains(text, "alpha.mkv") {
		t.Errorf("search result missing hit: %q", text)
	}
	if strings.Contains(text, "beta.mkv") {
		t.Errorf("search result has unexpected hit: %q", text)
	}
}

func TestSearchFilesRequiresQuery(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "search_files", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error for missing query")
	}
}

func TestCountFiles(t *testing.T) {
	srv, db := testServer(t)
	_, _ = db.Save("Music", "Disk1", 0, []models.FileEntry{
		{Path: "a.flac", SizeBytes: 1},
		{Path: "b.flac", SizeBytes: 1},
	})
	_, _ = db.Save("Music", "Disk2", 0, []models.FileEntry{
		{Path: "c.flac", SizeBytes: 1},
	})

	r := callTool(t, srv, "count_files", map[string]interface{}{})
	if text := resultText(r); text != "3" {
		t.Errorf("unfiltered count = %q, want 3", text)
	}

	r = callTool(t, srv, "count_files", map[string]interface{}{"drive": "Disk2"})
	if text := resultText(r); text != "1" {
		t.Errorf("filtered count = %q, want 1", text)
	}
}

func TestListDrives(t *testing.T) {
	srv, db := testServer(t)
	_, _ = db.Save("Music", "Zeta", 0, nil)
	_, _ = db.Save("Music", "Alpha", 0, nil)

	r := callTool(t, srv, "list_drives", map[string]interface{}{})
	if text := resultText(r); text != "Alpha\nZeta" {
		t.Errorf("drives = %q, want Alpha\\nZeta", text)
	}
}

func TestIndexDirectoryMissingRoot(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "index_directory", map[string]interface{}{
		"root":     "/does/not/exist",
		"category": "X",
		"drive":    "Y",
	})
	if !r.IsError {
		t.Error("expected error for missing root")
	}
}

func TestIndexDirectoryClean(t *testing.T) {
	srv, db := testServer(t)
	root := testutil.TestTree(t, map[string]string{"a.txt": "x"})

	args := map[string]interface{}{
		"root":     root,
		"category": "Docs",
		"drive":    "Disk1",
		"clean":    "true",
	}
	callTool(t, srv, "index_directory", args)
	callTool(t, srv, "index_directory", args)

	count, err := db.CountFiles(catalog.Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (clean re-run must not duplicate)", count)
	}
}

package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/project/search"
	"github.com/sjzsdu/codeide/project/tree"
	"github.com/sjzsdu/codeide/workspace"
)

const (
	defaultFilesLimit = 50
	defaultGrepLimit  = 200
)

const missingPath = "missing or invalid path parameter: required argument \"path\" not found"

type fileResult struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	Modified bool   `json:"modified"`
}

type tabResult struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Modified bool   `json:"modified"`
	Active   bool   `json:"active"`
}

type matchResult struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

func wsTree(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := tree.DefaultOptions()
	opts.MaxDepth = req.GetInt("maxDepth", 0)
	opts.ShowFiles = req.GetBool("showFiles", true)
	opts.ShowHidden = req.GetBool("showHidden", true)

	out, err := ws.Tree(opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.GetBool("stats", false) {
		stats, err := ws.Stats()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out += "\n" + stats.String()
	}
	return mcp.NewToolResultText(out), nil
}

func wsFiles(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	limit := req.GetInt("limit", defaultFilesLimit)

	paths, err := ws.Search(query, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if paths == nil {
		paths = []string{}
	}
	return mcp.NewToolResultText(helper.ToJSON(paths)), nil
}

func wsOpen(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(missingPath), nil
	}
	entry, err := ws.Open(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(helper.ToJSON(fileResult{
		Path:     entry.Path,
		Name:     entry.Name,
		Content:  entry.Content,
		Modified: entry.Modified,
	})), nil
}

func wsRead(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(missingPath), nil
	}
	content, err := ws.Read(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

func wsEdit(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(missingPath), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("missing or invalid content parameter"), nil
	}
	if err := ws.Edit(path, content); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, _ := ws.Entry(path)
	return mcp.NewToolResultText(fmt.Sprintf("edited %s (modified: %t)", entry.Path, entry.Modified)), nil
}

func wsSave(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		saved, err := ws.SaveAll()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if saved == nil {
			saved = []string{}
		}
		return mcp.NewToolResultText(helper.ToJSON(saved)), nil
	}

	entry, ok := ws.Entry(path)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("file is not open: %s", path)), nil
	}
	if err := ws.Save(path, entry.Content); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(helper.ToJSON([]string{entry.Path})), nil
}

func wsClose(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(missingPath), nil
	}
	ws.Close(path)
	return wsTabs(ctx, ws, req)
}

func wsTabs(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tabs := ws.Tabs()
	items := make([]tabResult, 0, len(tabs))
	for _, t := range tabs {
		items = append(items, tabResult{Path: t.Path, Name: t.Name, Modified: t.Modified, Active: t.Active})
	}
	return mcp.NewToolResultText(helper.ToJSON(items)), nil
}

func wsGrep(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil || query == "" {
		return mcp.NewToolResultError("missing or invalid query parameter"), nil
	}

	opts := search.DefaultSearchOptions()
	opts.Query = query
	opts.Regex = req.GetBool("regex", false)
	opts.CaseInsensitive = !req.GetBool("caseSensitive", false)
	opts.MaxResults = req.GetInt("limit", defaultGrepLimit)
	if ext := req.GetString("ext", ""); ext != "" {
		for _, e := range strings.Split(ext, ",") {
			if e = strings.TrimSpace(e); e != "" {
				opts.Extensions = append(opts.Extensions, e)
			}
		}
	}

	matches, err := ws.Grep(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	items := make([]matchResult, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchResult{Path: m.Path, Line: m.LineNumber, Column: m.ColumnStart, Text: m.LineContent})
	}
	return mcp.NewToolResultText(helper.ToJSON(items)), nil
}

func wsExport(ctx context.Context, ws *workspace.Workspace, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := ws.ExportFile(req.GetString("output", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("exported to %s", path)), nil
}

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sjzsdu/codeide/project"
	"github.com/sjzsdu/codeide/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newToolCallRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Method = string(mcp.MethodToolsCall)
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func getToolHandler(t *testing.T, name string) toolHandler {
	t.Helper()
	h, ok := toolHandlers[name]
	if !ok {
		t.Fatalf("handler for tool %s not found", name)
	}
	return h
}

func textFromResult(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return fmt.Sprintf("%v", r.Result)
}

func call(t *testing.T, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	res, err := getToolHandler(t, name)(context.Background(), newToolCallRequest(name, args))
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func newTestServer(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws := workspace.New()
	_, err := ws.Import([]project.Item{
		{Path: "proj/a.txt", Content: "hi"},
		{Path: "proj/sub/b.txt", Content: "yo\nhello world"},
	})
	require.NoError(t, err)
	require.NotNil(t, NewServer(ws))
	return ws
}

func TestToolsRegistered(t *testing.T) {
	newTestServer(t)
	for _, name := range []string{"ws_tree", "ws_files", "ws_open", "ws_read", "ws_edit", "ws_save", "ws_close", "ws_tabs", "ws_grep", "ws_export"} {
		_, ok := toolHandlers[name]
		assert.True(t, ok, name)
	}
}

func TestOpenEditSave(t *testing.T) {
	ws := newTestServer(t)

	res := call(t, "ws_open", map[string]interface{}{"path": "proj/a.txt"})
	assert.False(t, res.IsError)
	var opened fileResult
	require.NoError(t, json.Unmarshal([]byte(textFromResult(t, res)), &opened))
	assert.Equal(t, fileResult{Path: "proj/a.txt", Name: "a.txt", Content: "hi"}, opened)

	res = call(t, "ws_edit", map[string]interface{}{"path": "proj/a.txt", "content": "bye"})
	assert.False(t, res.IsError)
	assert.Equal(t, "edited proj/a.txt (modified: true)", textFromResult(t, res))

	// 未保存时读取到的是编辑中的内容，项目树不变
	res = call(t, "ws_read", map[string]interface{}{"path": "proj/a.txt"})
	assert.Equal(t, "bye", textFromResult(t, res))
	f, _ := ws.Project().LocateFile("proj/a.txt")
	assert.Equal(t, "hi", f.Content)

	res = call(t, "ws_save", map[string]interface{}{"path": "proj/a.txt"})
	assert.False(t, res.IsError)
	f, _ = ws.Project().LocateFile("proj/a.txt")
	assert.Equal(t, "bye", f.Content)
	assert.Empty(t, ws.Dirty())
}

func TestSaveAll(t *testing.T) {
	ws := newTestServer(t)
	call(t, "ws_open", map[string]interface{}{"path": "proj/a.txt"})
	call(t, "ws_open", map[string]interface{}{"path": "proj/sub/b.txt"})
	call(t, "ws_edit", map[string]interface{}{"path": "proj/a.txt", "content": "1"})
	call(t, "ws_edit", map[string]interface{}{"path": "proj/sub/b.txt", "content": "2"})

	res := call(t, "ws_save", map[string]interface{}{})
	var saved []string
	require.NoError(t, json.Unmarshal([]byte(textFromResult(t, res)), &saved))
	assert.Equal(t, []string{"proj/a.txt", "proj/sub/b.txt"}, saved)
	assert.Empty(t, ws.Dirty())
}

func TestToolErrors(t *testing.T) {
	newTestServer(t)

	res := call(t, "ws_open", map[string]interface{}{})
	assert.True(t, res.IsError)

	res = call(t, "ws_open", map[string]interface{}{"path": "proj/missing.txt"})
	assert.True(t, res.IsError)

	res = call(t, "ws_edit", map[string]interface{}{"path": "proj/a.txt", "content": "x"})
	assert.True(t, res.IsError)

	res = call(t, "ws_save", map[string]interface{}{"path": "proj/a.txt"})
	assert.True(t, res.IsError)

	res = call(t, "ws_grep", map[string]interface{}{"query": "("})
	assert.False(t, res.IsError)
	res = call(t, "ws_grep", map[string]interface{}{"query": "(", "regex": true})
	assert.True(t, res.IsError)
}

func TestTabsAndClose(t *testing.T) {
	newTestServer(t)
	call(t, "ws_open", map[string]interface{}{"path": "proj/a.txt"})
	call(t, "ws_open", map[string]interface{}{"path": "proj/sub/b.txt"})

	var tabs []tabResult
	res := call(t, "ws_tabs", nil)
	require.NoError(t, json.Unmarshal([]byte(textFromResult(t, res)), &tabs))
	require.Len(t, tabs, 2)
	assert.Equal(t, "proj/a.txt", tabs[0].Path)
	assert.False(t, tabs[0].Active)
	assert.True(t, tabs[1].Active)

	res = call(t, "ws_close", map[string]interface{}{"path": "proj/sub/b.txt"})
	tabs = nil
	require.NoError(t, json.Unmarshal([]byte(textFromResult(t, res)), &tabs))
	assert.Equal(t, []tabResult{{Path: "proj/a.txt", Name: "a.txt", Active: true}}, tabs)
}

func TestTreeFilesGrep(t *testing.T) {
	newTestServer(t)
	call(t, "ws_open", map[string]interface{}{"path": "proj/a.txt"})
	call(t, "ws_edit", map[string]interface{}{"path": "proj/a.txt", "content": "changed"})

	out := textFromResult(t, call(t, "ws_tree", map[string]interface{}{"stats": true}))
	assert.Contains(t, out, "proj/")
	assert.Contains(t, out, "a.txt *")
	assert.Contains(t, out, "b.txt")
	assert.Contains(t, out, "2 directories, 2 files")

	var paths []string
	res := call(t, "ws_files", map[string]interface{}{"query": "B.TXT"})
	require.NoError(t, json.Unmarshal([]byte(textFromResult(t, res)), &paths))
	assert.Equal(t, []string{"proj/sub/b.txt"}, paths)

	var matches []matchResult
	res = call(t, "ws_grep", map[string]interface{}{"query": "hello", "ext": "txt, md"})
	require.NoError(t, json.Unmarshal([]byte(textFromResult(t, res)), &matches))
	assert.Equal(t, []matchResult{{Path: "proj/sub/b.txt", Line: 2, Column: 1, Text: "hello world"}}, matches)
}

func TestExport(t *testing.T) {
	newTestServer(t)
	dir := t.TempDir()

	res := call(t, "ws_export", map[string]interface{}{"output": dir})
	assert.False(t, res.IsError)
	want := filepath.Join(dir, "proj.zip")
	assert.Equal(t, "exported to "+want, textFromResult(t, res))
	_, err := os.Stat(want)
	assert.NoError(t, err)

	res = call(t, "ws_export", map[string]interface{}{"output": filepath.Join(dir, "out.rar")})
	assert.True(t, res.IsError)
}

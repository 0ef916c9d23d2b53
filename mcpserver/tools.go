package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/codeide/workspace"
)

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

var toolHandlers map[string]toolHandler

// RegisterWorkspaceTools 将工作区相关工具注册到 MCP 服务器
func RegisterWorkspaceTools(s *server.MCPServer, ws *workspace.Workspace) {
	if s == nil || ws == nil {
		return
	}
	toolHandlers = make(map[string]toolHandler)
	add := func(tool mcp.Tool, fn func(context.Context, *workspace.Workspace, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
		h := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return fn(ctx, ws, req)
		}
		s.AddTool(tool, h)
		toolHandlers[tool.Name] = h
	}

	// ws_tree
	add(mcp.NewTool(
		"ws_tree",
		mcp.WithDescription("以 tree 格式列出项目结构，未保存的文件后带 *"),
		mcp.WithNumber("maxDepth", mcp.Description("最大深度（0 表示不限制）")),
		mcp.WithBoolean("showFiles", mcp.Description("是否显示文件，默认 true")),
		mcp.WithBoolean("showHidden", mcp.Description("是否显示隐藏文件，默认 true")),
		mcp.WithBoolean("stats", mcp.Description("是否附加统计信息，默认 false")),
	), wsTree)

	// ws_files
	add(mcp.NewTool(
		"ws_files",
		mcp.WithDescription("按路径子串快速查找文件，不区分大小写"),
		mcp.WithString("query", mcp.Description("查询词；为空时列出全部文件")),
		mcp.WithNumber("limit", mcp.Description("返回数量上限，默认 50")),
	), wsFiles)

	// ws_open
	add(mcp.NewTool(
		"ws_open",
		mcp.WithDescription("打开文件并设为当前标签页，返回当前内容"),
		mcp.WithString("path", mcp.Required(), mcp.Description("文件路径，包含根目录，如 proj/main.go")),
	), wsOpen)

	// ws_read
	add(mcp.NewTool(
		"ws_read",
		mcp.WithDescription("读取文件内容；已打开的文件返回编辑中的内容"),
		mcp.WithString("path", mcp.Required(), mcp.Description("文件路径")),
	), wsRead)

	// ws_edit
	add(mcp.NewTool(
		"ws_edit",
		mcp.WithDescription("修改已打开文件的内容，保存前不会写入项目"),
		mcp.WithString("path", mcp.Required(), mcp.Description("文件路径")),
		mcp.WithString("content", mcp.Required(), mcp.Description("新的完整文本内容")),
	), wsEdit)

	// ws_save
	add(mcp.NewTool(
		"ws_save",
		mcp.WithDescription("保存已打开的文件；不传 path 时保存所有未保存的文件"),
		mcp.WithString("path", mcp.Description("文件路径，可选")),
	), wsSave)

	// ws_close
	add(mcp.NewTool(
		"ws_close",
		mcp.WithDescription("关闭标签页，未保存的内容仍会保留"),
		mcp.WithString("path", mcp.Required(), mcp.Description("文件路径")),
	), wsClose)

	// ws_tabs
	add(mcp.NewTool(
		"ws_tabs",
		mcp.WithDescription("列出打开的标签页及其修改状态"),
	), wsTabs)

	// ws_grep
	add(mcp.NewTool(
		"ws_grep",
		mcp.WithDescription("在项目文件内容中搜索（不含未保存的修改）"),
		mcp.WithString("query", mcp.Required(), mcp.Description("搜索词或正则表达式")),
		mcp.WithBoolean("regex", mcp.Description("是否按正则表达式匹配，默认 false")),
		mcp.WithBoolean("caseSensitive", mcp.Description("是否区分大小写，默认 false")),
		mcp.WithString("ext", mcp.Description("扩展名过滤，逗号分隔，如 go,md")),
		mcp.WithNumber("limit", mcp.Description("结果数量上限，默认 200")),
	), wsGrep)

	// ws_export
	add(mcp.NewTool(
		"ws_export",
		mcp.WithDescription("导出项目；格式由扩展名决定（zip、md、xml、yaml、pdf）"),
		mcp.WithString("output", mcp.Description("输出文件或目录，默认当前目录下的 <root>.zip")),
	), wsExport)
}

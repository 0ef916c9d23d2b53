package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/codeide/share"
	"github.com/sjzsdu/codeide/workspace"
)

// NewServer 创建一个以工作区为后端的 MCP 服务器
func NewServer(ws *workspace.Workspace) *server.MCPServer {
	s := server.NewMCPServer(
		share.MCP_SERVER_NAME,
		share.VERSION,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	RegisterWorkspaceTools(s, ws)
	return s
}

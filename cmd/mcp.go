package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: lang.T("MCP Server"),
	Long: `mcp 命令导入项目后启动 MCP 服务器，以工具的形式提供打开、编辑、保存、搜索和导出。

启动示例：
  codeide mcp                        # 使用 STDIO 传输启动
  codeide mcp --transport http       # 使用 HTTP 传输启动
  codeide mcp --transport sse        # 使用 SSE 传输启动
  codeide mcp --port 9000            # 指定端口启动`,
	Args: cobra.NoArgs,
	Run:  runMCP,
}

var (
	mcpTransport string
	mcpPortFlag  string
)

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", lang.T("Transport (stdio, http, sse)"))
	mcpCmd.Flags().StringVar(&mcpPortFlag, "port", "8080", lang.T("HTTP/SSE server port"))
}

func runMCP(cmd *cobra.Command, args []string) {
	ws, err := loadWorkspace(cmd.Context())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	mcpSrv := mcpserver.NewServer(ws)

	// stdout 留给 STDIO 传输，提示信息只写 stderr
	fmt.Fprintf(os.Stderr, "%s: %s (workspace %s)\n", lang.T("Project"), ws.Project().Name(), ws.ID())
	switch mcpTransport {
	case "http":
		fmt.Fprintf(os.Stderr, "%s: http://localhost:%s\n", lang.T("Listening on"), mcpPortFlag)
		httpServer := server.NewStreamableHTTPServer(mcpSrv)
		if err := httpServer.Start(":" + mcpPortFlag); err != nil {
			log.Fatalf("HTTP 服务器启动失败: %v", err)
		}
	case "sse":
		fmt.Fprintf(os.Stderr, "%s: http://localhost:%s\n", lang.T("Listening on"), mcpPortFlag)
		sseServer := server.NewSSEServer(mcpSrv)
		if err := sseServer.Start(":" + mcpPortFlag); err != nil {
			log.Fatalf("SSE 服务器启动失败: %v", err)
		}
	default:
		if err := server.ServeStdio(mcpSrv); err != nil {
			log.Fatalf("STDIO 服务器启动失败: %v", err)
		}
	}
}

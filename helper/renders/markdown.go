package renders

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/sjzsdu/codeide/helper"
)

// MarkdownRenderer 把 Markdown 渲染成终端文本
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer 创建一个新的 Markdown 渲染器，width <= 0 时使用 120
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = 120
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("初始化 Markdown 渲染器失败: %v", err)
	}
	return &MarkdownRenderer{renderer: renderer}, nil
}

// Render 渲染 Markdown 文本
func (m *MarkdownRenderer) Render(markdown string) (string, error) {
	return m.renderer.Render(markdown)
}

// RenderFile 预览文件内容：Markdown 文件直接渲染，其他文件包成代码块后渲染
func (m *MarkdownRenderer) RenderFile(name, content string) (string, error) {
	return m.Render(FileMarkdown(name, content))
}

// FileMarkdown 返回文件预览使用的 Markdown 源
func FileMarkdown(name, content string) string {
	lang := helper.LanguageOf(name)
	if lang == "markdown" {
		return content
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s**\n\n", name))
	b.WriteString("```" + lang + "\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

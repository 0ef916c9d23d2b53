package pack

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/project"
)

// Formatter 定义打包格式的接口
type Formatter interface {
	Format(entry project.Entry) string
	Header(title string) string
	Footer() string
	FileExtension() string
}

// MarkdownFormatter Markdown格式的打包器
type MarkdownFormatter struct{}

// Format 格式化单个文件内容为Markdown格式
func (m *MarkdownFormatter) Format(entry project.Entry) string {
	var builder strings.Builder

	// 添加文件头部信息
	builder.WriteString(fmt.Sprintf("## 📄 %s\n\n", entry.Path))
	builder.WriteString(fmt.Sprintf("**路径:** `%s`  \n", entry.Path))
	builder.WriteString(fmt.Sprintf("**大小:** %d bytes  \n", len(entry.Content)))
	builder.WriteString("\n")

	// 内容里出现 ``` 时加长围栏
	fence := "```"
	for strings.Contains(entry.Content, fence) {
		fence += "`"
	}
	builder.WriteString(fence + helper.LanguageOf(entry.Path) + "\n")
	builder.WriteString(entry.Content)
	if !strings.HasSuffix(entry.Content, "\n") {
		builder.WriteString("\n")
	}
	builder.WriteString(fence + "\n\n")

	return builder.String()
}

// Header 生成文档头部
func (m *MarkdownFormatter) Header(title string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# 📦 项目打包: %s\n\n", title))
	builder.WriteString("> 此文档由 codeide 自动生成，包含项目中的所有文本文件内容\n\n")
	builder.WriteString("---\n\n")
	return builder.String()
}

// Footer 生成文档尾部
func (m *MarkdownFormatter) Footer() string {
	return "\n---\n*文档由 codeide 自动生成*\n"
}

// FileExtension 返回文件扩展名
func (m *MarkdownFormatter) FileExtension() string {
	return ".md"
}

// XMLFormatter 每个文件一个 <file> 元素，内容放在 CDATA 中
type XMLFormatter struct{}

func (x *XMLFormatter) Format(entry project.Entry) string {
	content := strings.ReplaceAll(entry.Content, "]]>", "]]]]><![CDATA[>")
	return fmt.Sprintf("  <file path=\"%s\" language=\"%s\"><![CDATA[%s]]></file>\n",
		escapeXML(entry.Path), helper.LanguageOf(entry.Path), content)
}

func (x *XMLFormatter) Header(title string) string {
	return fmt.Sprintf("%s<project name=\"%s\">\n", xml.Header, escapeXML(title))
}

func (x *XMLFormatter) Footer() string {
	return "</project>\n"
}

func (x *XMLFormatter) FileExtension() string {
	return ".xml"
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// GetFormatter 根据格式名称获取对应的格式化器
func GetFormatter(format string) Formatter {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "xml":
		return &XMLFormatter{}
	default:
		return &MarkdownFormatter{} // 默认使用Markdown格式
	}
}

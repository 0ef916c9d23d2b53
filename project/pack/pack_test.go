package pack

import (
	"strings"
	"testing"

	"github.com/sjzsdu/codeide/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject(t *testing.T) *project.Project {
	t.Helper()
	p, _, err := project.Import([]project.Item{
		{Path: "demo/main.go", Content: "package main\n"},
		{Path: "demo/docs/README.md", Content: "# Demo\n```sh\nmake\n```"},
		{Path: "demo/.env", Content: "TOKEN=1"},
	})
	require.NoError(t, err)
	return p
}

func TestMarkdownFormatter(t *testing.T) {
	formatter := &MarkdownFormatter{}

	header := formatter.Header("test-project")
	if !strings.Contains(header, "test-project") {
		t.Error("Header should contain project name")
	}
	if !strings.Contains(formatter.Footer(), "codeide") {
		t.Error("Footer should contain codeide reference")
	}
	if ext := formatter.FileExtension(); ext != ".md" {
		t.Errorf("Expected .md, got %s", ext)
	}

	out := formatter.Format(project.Entry{Path: "demo/main.go", Content: "package main"})
	assert.Contains(t, out, "## 📄 demo/main.go")
	assert.Contains(t, out, "```go\npackage main\n```\n")

	// 内容包含围栏时使用更长的围栏
	out = formatter.Format(project.Entry{Path: "demo/a.md", Content: "```sh\nls\n```\n"})
	assert.Contains(t, out, "````markdown\n```sh\nls\n```\n````\n")
}

func TestXMLFormatter(t *testing.T) {
	formatter := &XMLFormatter{}
	assert.Contains(t, formatter.Header("a&b"), `<project name="a&amp;b">`)
	assert.Equal(t, ".xml", formatter.FileExtension())

	out := formatter.Format(project.Entry{Path: "demo/x.go", Content: "a]]>b"})
	assert.Equal(t, "  <file path=\"demo/x.go\" language=\"go\"><![CDATA[a]]]]><![CDATA[>b]]></file>\n", out)
}

func TestGetFormatter(t *testing.T) {
	for _, name := range []string{"", "md", "markdown", ".md"} {
		if _, ok := GetFormatter(name).(*MarkdownFormatter); !ok {
			t.Errorf("%q format should return MarkdownFormatter", name)
		}
	}
	if _, ok := GetFormatter("XML").(*XMLFormatter); !ok {
		t.Error("xml format should return XMLFormatter")
	}
}

func TestPack(t *testing.T) {
	p := testProject(t)

	t.Run("默认选项", func(t *testing.T) {
		out, err := Pack(p, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "# 📦 项目打包: demo"))
		docs := strings.Index(out, "demo/docs/README.md")
		main := strings.Index(out, "demo/main.go")
		assert.True(t, docs >= 0 && main > docs, "文件按树的前序输出")
		assert.Contains(t, out, "demo/.env")
	})

	t.Run("过滤扩展名和隐藏文件", func(t *testing.T) {
		out, err := Pack(p, &PackOptions{IncludeExts: []string{".go", ".env"}})
		require.NoError(t, err)
		assert.Contains(t, out, "demo/main.go")
		assert.NotContains(t, out, "README.md")
		assert.NotContains(t, out, "demo/.env")

		out, err = Pack(p, &PackOptions{ExcludeExts: []string{"md"}, Formatter: &XMLFormatter{}})
		require.NoError(t, err)
		assert.NotContains(t, out, "README.md")
		assert.Contains(t, out, `<file path="demo/main.go"`)
	})

	t.Run("没有项目", func(t *testing.T) {
		_, err := Pack(nil, nil)
		assert.ErrorIs(t, err, project.ErrEmptyProject)
	})
}

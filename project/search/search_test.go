package search

import (
	"context"
	"testing"

	"github.com/sjzsdu/codeide/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject(t *testing.T) *project.Project {
	t.Helper()
	p, _, err := project.Import([]project.Item{
		{Path: "demo/main.go", Content: "package main\n\nfunc main() {\n\tRun()\n}\n"},
		{Path: "demo/internal/run.go", Content: "package internal\n\n// Run starts the run loop\nfunc Run() {}\n"},
		{Path: "demo/README.md", Content: "# Demo\nrun with `go run .`"},
		{Path: "demo/.env", Content: "RUN=1"},
	})
	require.NoError(t, err)
	return p
}

func TestFiles(t *testing.T) {
	root := testProject(t).Root()

	tests := []struct {
		name  string
		term  string
		limit int
		want  []string
	}{
		{"空关键字返回全部", "", 0, []string{"demo/internal/run.go", "demo/.env", "demo/README.md", "demo/main.go"}},
		{"不区分大小写", "READ", 0, []string{"demo/README.md"}},
		{"匹配目录名", "internal", 0, []string{"demo/internal/run.go"}},
		{"匹配扩展名", ".go", 0, []string{"demo/internal/run.go", "demo/main.go"}},
		{"数量限制", "", 2, []string{"demo/internal/run.go", "demo/.env"}},
		{"没有匹配", "nothing", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Files(root, tt.term, tt.limit))
		})
	}

	assert.Nil(t, Files(nil, "", 0))
}

func TestGrep(t *testing.T) {
	p := testProject(t)
	ctx := context.Background()

	t.Run("子串不区分大小写", func(t *testing.T) {
		matches, err := Grep(ctx, p, &SearchOptions{Query: "run", CaseInsensitive: true})
		require.NoError(t, err)
		require.Len(t, matches, 6)
		assert.Equal(t, Match{Path: "demo/internal/run.go", LineNumber: 3, ColumnStart: 4, ColumnEnd: 6, LineContent: "// Run starts the run loop"}, matches[0])
		assert.Equal(t, "demo/main.go", matches[len(matches)-1].Path)
	})

	t.Run("区分大小写并过滤扩展名", func(t *testing.T) {
		matches, err := Grep(ctx, p, &SearchOptions{Query: "Run", Extensions: []string{"go"}})
		require.NoError(t, err)
		require.Len(t, matches, 3)
		for _, m := range matches {
			assert.NotEqual(t, "demo/README.md", m.Path)
		}
	})

	t.Run("正则和数量限制", func(t *testing.T) {
		matches, err := Grep(ctx, p, &SearchOptions{Query: `^func \w+`, Regex: true, MaxResults: 1})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, 4, matches[0].LineNumber)

		_, err = Grep(ctx, p, &SearchOptions{Query: "(", Regex: true})
		assert.Error(t, err)
	})

	t.Run("隐藏文件", func(t *testing.T) {
		matches, err := Grep(ctx, p, &SearchOptions{Query: "RUN=", IncludeHidden: true})
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "demo/.env", matches[0].Path)
	})

	t.Run("没有项目", func(t *testing.T) {
		_, err := Grep(ctx, nil, nil)
		assert.ErrorIs(t, err, project.ErrEmptyProject)
	})

	t.Run("格式化", func(t *testing.T) {
		matches, err := Grep(ctx, p, &SearchOptions{Query: "func main"})
		require.NoError(t, err)
		assert.Equal(t, "找到 1 个结果:\n\n文件: demo/main.go\n  行 3, 列 1-9: func main() {\n", FormatSearchResults(matches))
	})
}

package project

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"main.go":               {Data: []byte("package main\n")},
		"README.md":             {Data: []byte("# demo\n")},
		"pkg/util.go":           {Data: []byte("package pkg\n")},
		"pkg/util_test.go":      {Data: []byte("package pkg\n")},
		"logs/run.log":          {Data: []byte("log line\n")},
		".env":                  {Data: []byte("SECRET=1\n")},
		".config/settings.json": {Data: []byte("{}")},
		"node_modules/lib/x.js": {Data: []byte("x")},
		"assets/logo.png":       {Data: []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}},
		"data/big.txt":          {Data: []byte("0123456789abcdef")},
	}
}

func itemPaths(items []Item) []string {
	paths := make([]string, 0, len(items))
	for _, it := range items {
		paths = append(paths, it.Path)
	}
	return paths
}

func TestReadDir(t *testing.T) {
	ctx := context.Background()

	t.Run("默认选项", func(t *testing.T) {
		opts := DefaultReadOptions()
		opts.MaxFileSize = 14
		opts.Workers = 2

		items, failures, err := ReadDir(ctx, testFS(), "demo", opts)
		require.NoError(t, err)
		assert.Empty(t, failures)
		assert.Equal(t, []string{
			"demo/README.md",
			"demo/logs/run.log",
			"demo/main.go",
			"demo/pkg/util.go",
			"demo/pkg/util_test.go",
		}, itemPaths(items))
		assert.Equal(t, "package main\n", items[2].Content)
	})

	t.Run("包含隐藏文件并排除模式", func(t *testing.T) {
		opts := DefaultReadOptions()
		opts.IncludeHidden = true
		opts.Excludes = []string{"*.log", "pkg/*_test.go", "data"}

		items, _, err := ReadDir(ctx, testFS(), "demo", opts)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"demo/.config/settings.json",
			"demo/.env",
			"demo/README.md",
			"demo/main.go",
			"demo/pkg/util.go",
		}, itemPaths(items))
	})

	t.Run("应用 .gitignore", func(t *testing.T) {
		fsys := testFS()
		fsys[".gitignore"] = &fstest.MapFile{Data: []byte("# comment\n*.log\n/README.md\n")}
		fsys["pkg/.gitignore"] = &fstest.MapFile{Data: []byte("*_test.go\n")}
		opts := DefaultReadOptions()
		opts.MaxFileSize = 14

		items, failures, err := ReadDir(ctx, fsys, "demo", opts)
		require.NoError(t, err)
		assert.Empty(t, failures)
		assert.Equal(t, []string{"demo/main.go", "demo/pkg/util.go"}, itemPaths(items))

		opts.NoGitignore = true
		items, _, err = ReadDir(ctx, fsys, "demo", opts)
		require.NoError(t, err)
		assert.Len(t, items, 5)
	})

	t.Run("按扩展名过滤", func(t *testing.T) {
		opts := DefaultReadOptions()
		opts.Extensions = []string{"go"}

		items, _, err := ReadDir(ctx, testFS(), "demo", opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"demo/main.go", "demo/pkg/util.go", "demo/pkg/util_test.go"}, itemPaths(items))
	})

	t.Run("进度回调", func(t *testing.T) {
		var calls atomic.Int32
		var lastTotal atomic.Int32
		opts := DefaultReadOptions()
		opts.OnProgress = func(done, total int) {
			calls.Add(1)
			lastTotal.Store(int32(total))
		}

		items, _, err := ReadDir(ctx, testFS(), "demo", opts)
		require.NoError(t, err)
		assert.Equal(t, int32(7), calls.Load())
		assert.Equal(t, int32(7), lastTotal.Load())
		assert.Len(t, items, 6)
	})

	t.Run("读取结果可以直接导入", func(t *testing.T) {
		items, _, err := ReadDir(ctx, testFS(), "demo", DefaultReadOptions())
		require.NoError(t, err)
		p, failures, err := Import(items)
		require.NoError(t, err)
		assert.Empty(t, failures)
		assert.Equal(t, "demo", p.Name())
		_, ok := p.LocateFile("demo/pkg/util.go")
		assert.True(t, ok)
	})

	t.Run("上下文取消", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := ReadDir(cctx, testFS(), "demo", DefaultReadOptions())
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("空目录", func(t *testing.T) {
		items, failures, err := ReadDir(ctx, fstest.MapFS{}, "empty", DefaultReadOptions())
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Empty(t, failures)
		_, _, err = Import(items)
		assert.ErrorIs(t, err, ErrEmptySelection)
	})
}

func TestGitignorePattern(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"", ""},
		{"# comment", ""},
		{"*.log", "**/*.log"},
		{"build/", "**/build"},
		{"/vendor", "vendor"},
		{"docs/*.md", "docs/*.md"},
		{"!keep.log", "!**/keep.log"},
		{"!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gitignorePattern(tt.line), tt.line)
	}
}

func TestReadDirBackslashName(t *testing.T) {
	fsys := fstest.MapFS{`a\b.txt`: {Data: []byte("x")}}

	items, _, err := ReadDir(context.Background(), fsys, "demo", DefaultReadOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{`demo/a\b.txt`}, itemPaths(items))

	p, failures, err := Import(items)
	require.NoError(t, err)
	assert.Empty(t, failures)
	f, ok := p.LocateFile(`demo/a\b.txt`)
	require.True(t, ok)
	assert.Equal(t, `a\b.txt`, f.Name)
	assert.Len(t, p.Root().Children, 1)
}

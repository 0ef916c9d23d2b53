package tree

import (
	"strings"
	"testing"

	"github.com/sjzsdu/codeide/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(t *testing.T) *project.DirNode {
	t.Helper()
	p, _, err := project.Import([]project.Item{
		{Path: "demo/README.md", Content: "# Test Project\nThis is a test project."},
		{Path: "demo/src/main.go", Content: "package main\n\nfunc main() {}\n"},
		{Path: "demo/src/utils/helper.go", Content: "package utils\n"},
		{Path: "demo/docs/api.md", Content: "# API"},
		{Path: "demo/.gitignore", Content: "*.log\n*.tmp"},
	})
	require.NoError(t, err)
	return p.Root()
}

func TestTree(t *testing.T) {
	root := testRoot(t)

	want := strings.Join([]string{
		"demo/",
		"├── docs/",
		"│   └── api.md",
		"├── src/",
		"│   ├── utils/",
		"│   │   └── helper.go",
		"│   └── main.go",
		"├── .gitignore",
		"└── README.md",
		"",
	}, "\n")
	assert.Equal(t, want, Tree(root))

	assert.Equal(t, "", Tree(nil))
	var none *project.DirNode
	assert.Equal(t, "", Tree(none))
}

func TestTreeWithOptions(t *testing.T) {
	root := testRoot(t)

	t.Run("只显示目录", func(t *testing.T) {
		out := TreeWithOptions(root, Options{ShowHidden: true})
		assert.Equal(t, "demo/\n├── docs/\n└── src/\n    └── utils/\n", out)
	})

	t.Run("隐藏文件和深度限制", func(t *testing.T) {
		out := TreeWithOptions(root, Options{ShowFiles: true, MaxDepth: 1})
		assert.Equal(t, "demo/\n├── docs/\n├── src/\n└── README.md\n", out)
	})

	t.Run("大小和标记", func(t *testing.T) {
		out := TreeWithOptions(root, Options{
			ShowFiles:  true,
			ShowHidden: true,
			ShowSize:   true,
			Mark: func(path string) string {
				if path == "demo/src/main.go" {
					return " *"
				}
				return ""
			},
		})
		assert.Contains(t, out, "demo/ [4 items]\n")
		assert.Contains(t, out, "│   └── main.go (29 B) *\n")
		assert.Contains(t, out, "└── README.md (38 B)\n")
	})
}

func TestStats(t *testing.T) {
	stats := Stats(testRoot(t))
	assert.Equal(t, 9, stats.TotalNodes)
	assert.Equal(t, 4, stats.DirectoryCount)
	assert.Equal(t, 5, stats.FileCount)
	assert.Equal(t, 3, stats.MaxDepth)
	assert.Equal(t, 2, stats.Languages["markdown"])
	assert.Equal(t, 2, stats.Languages["go"])
	assert.Equal(t, 2+3+1+1+2, stats.TotalLines)
	assert.True(t, strings.HasPrefix(stats.String(), "4 directories, 5 files, 9 lines"))

	empty := Stats(nil)
	assert.Equal(t, 0, empty.TotalNodes)
	assert.Equal(t, "0 directories, 0 files, 0 lines, 0 B total", empty.String())
}

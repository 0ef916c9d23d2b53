package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProject(t *testing.T) *Project {
	t.Helper()
	p, failures, err := Import([]Item{
		{Path: "proj/a.txt", Content: "hello"},
		{Path: "proj/sub/b.txt", Content: "bee"},
		{Path: "proj/sub/deep/c.txt", Content: "sea"},
	})
	require.NoError(t, err)
	require.Empty(t, failures)
	return p
}

func TestLocateFile(t *testing.T) {
	p := newTestProject(t)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"根目录下的文件", "proj/a.txt", true},
		{"嵌套文件", "proj/sub/deep/c.txt", true},
		{"开头斜杠", "/proj/sub/b.txt", true},
		{"缺少的段", "proj/missing/b.txt", false},
		{"目录不是文件", "proj/sub", false},
		{"根目录", "proj", false},
		{"文件下面的段", "proj/a.txt/x", false},
		{"其他根目录", "other/a.txt", false},
		{"只有文件名", "b.txt", false},
		{"空路径", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := p.LocateFile(tt.path)
			assert.Equal(t, tt.want, ok)
		})
	}

	t.Run("没有项目", func(t *testing.T) {
		var none *Project
		_, ok := none.LocateFile("proj/a.txt")
		assert.False(t, ok)
		assert.Nil(t, none.Root())
		assert.Equal(t, "", none.Name())
		assert.Empty(t, none.Files())
		assert.Equal(t, 0, none.FileCount())
	})
}

func TestLocate(t *testing.T) {
	p := newTestProject(t)

	n, ok := p.Locate("proj")
	require.True(t, ok)
	assert.Same(t, p.Root(), n)

	n, ok = p.Locate("proj/sub/deep")
	require.True(t, ok)
	assert.True(t, IsDir(n))
	assert.Equal(t, "deep", n.GetName())
}

func TestWriteFileContent(t *testing.T) {
	p := newTestProject(t)

	require.NoError(t, p.WriteFileContent("proj/sub/b.txt", "changed"))
	f, _ := p.LocateFile("proj/sub/b.txt")
	assert.Equal(t, "changed", f.Content)

	err := p.WriteFileContent("proj/b.txt", "x")
	assert.ErrorIs(t, err, ErrPathNotFound)
	var pe *PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "proj/b.txt", pe.Path)
	assert.Equal(t, "write", pe.Op)

	assert.ErrorIs(t, p.WriteFileContent("proj/sub", "x"), ErrPathNotFound)

	var none *Project
	assert.ErrorIs(t, none.WriteFileContent("proj/a.txt", "x"), ErrPathNotFound)
}

func TestFilesAndWalk(t *testing.T) {
	p := newTestProject(t)

	assert.Equal(t, []Entry{
		{Path: "proj/sub/deep/c.txt", Content: "sea"},
		{Path: "proj/sub/b.txt", Content: "bee"},
		{Path: "proj/a.txt", Content: "hello"},
	}, p.Files())
	assert.Equal(t, 3, p.FileCount())

	var visited []string
	var depths []int
	err := p.Walk(VisitorFunc(func(n Node, path string, depth int) error {
		visited = append(visited, path)
		depths = append(depths, depth)
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"proj", "proj/sub", "proj/sub/deep", "proj/sub/deep/c.txt", "proj/sub/b.txt", "proj/a.txt"}, visited)
	assert.Equal(t, []int{0, 1, 2, 3, 2, 1}, depths)
}

func TestFilteredVisitor(t *testing.T) {
	p := newTestProject(t)

	var files []string
	err := p.Walk(&FilteredVisitor{
		Visitor: VisitorFunc(func(n Node, path string, depth int) error {
			if !IsDir(n) {
				files = append(files, path)
			}
			return nil
		}),
		DirFilter: func(node *DirNode, path string) bool {
			return node.Name != "deep"
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"proj/sub/b.txt", "proj/a.txt"}, files)

	stop := errors.New("stop")
	err = p.Walk(VisitorFunc(func(n Node, path string, depth int) error {
		if path == "proj/sub/b.txt" {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
}

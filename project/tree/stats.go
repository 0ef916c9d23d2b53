package tree

import (
	"fmt"
	"strings"

	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/project"
)

// Statistics 树的统计信息
type Statistics struct {
	TotalNodes     int            // 总节点数
	DirectoryCount int            // 目录数量
	FileCount      int            // 文件数量
	TotalSize      int64          // 总大小（字节）
	TotalLines     int            // 总行数
	MaxDepth       int            // 最大深度
	Languages      map[string]int // 语言 -> 文件数
}

// Stats 返回树的统计信息
func Stats(root *project.DirNode) Statistics {
	stats := Statistics{Languages: make(map[string]int)}
	if root == nil {
		return stats
	}

	_ = project.Traverse(root, project.VisitorFunc(func(n project.Node, path string, depth int) error {
		stats.TotalNodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		switch v := n.(type) {
		case *project.DirNode:
			stats.DirectoryCount++
		case *project.FileNode:
			stats.FileCount++
			stats.TotalSize += int64(len(v.Content))
			stats.TotalLines += countLines(v.Content)
			stats.Languages[helper.LanguageOf(v.Name)]++
		}
		return nil
	}))
	return stats
}

// String 返回统计信息的字符串表示
func (s Statistics) String() string {
	return fmt.Sprintf("%d directories, %d files, %d lines, %s total",
		s.DirectoryCount, s.FileCount, s.TotalLines, formatSize(s.TotalSize))
}

// countLines 统计行数，末尾没有换行的最后一行也计入
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

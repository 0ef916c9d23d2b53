package tree

import (
	"fmt"
	"strings"

	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/project"
)

// Options 控制树的显示方式
type Options struct {
	ShowFiles  bool                     // 是否显示文件
	ShowHidden bool                     // 是否显示隐藏文件和目录
	ShowSize   bool                     // 是否显示文件大小和目录子项数量
	MaxDepth   int                      // 最大深度，<= 0 表示不限制，根目录深度为 0
	Mark       func(path string) string // 返回追加在文件名后的标记，例如未保存的 *
}

// DefaultOptions 返回默认的显示选项
func DefaultOptions() Options {
	return Options{ShowFiles: true, ShowHidden: true}
}

// Tree 生成树状结构的字符串表示，类似于 Unix tree 命令
func Tree(node project.Node) string {
	return TreeWithOptions(node, DefaultOptions())
}

// TreeWithOptions 生成带选项的树状结构
func TreeWithOptions(node project.Node, opts Options) string {
	if node == nil {
		return ""
	}
	if dir, ok := node.(*project.DirNode); ok && dir == nil {
		return ""
	}

	var result strings.Builder
	buildTree(node, node.GetName(), &result, "", true, true, 0, opts)
	return result.String()
}

// buildTree 递归构建树状结构
func buildTree(node project.Node, path string, result *strings.Builder, prefix string, isLast bool, isRoot bool, depth int, opts Options) {
	// 构建当前节点的显示
	if !isRoot {
		if isLast {
			result.WriteString(prefix + "└── ")
		} else {
			result.WriteString(prefix + "├── ")
		}
	}

	switch n := node.(type) {
	case *project.FileNode:
		result.WriteString(n.Name)
		if opts.ShowSize {
			result.WriteString(fmt.Sprintf(" (%s)", formatSize(int64(len(n.Content)))))
		}
		if opts.Mark != nil {
			result.WriteString(opts.Mark(path))
		}
		result.WriteString("\n")

	case *project.DirNode:
		result.WriteString(n.Name + "/")
		children := visibleChildren(n, opts)
		if opts.ShowSize && len(children) > 0 {
			result.WriteString(fmt.Sprintf(" [%d items]", len(children)))
		}
		result.WriteString("\n")

		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return
		}

		// 构建新的前缀
		var newPrefix string
		if isRoot {
			newPrefix = ""
		} else if isLast {
			newPrefix = prefix + "    "
		} else {
			newPrefix = prefix + "│   "
		}

		// 子节点已按目录优先、名称升序排列
		for i, child := range children {
			buildTree(child, path+"/"+child.GetName(), result, newPrefix, i == len(children)-1, false, depth+1, opts)
		}
	}
}

func visibleChildren(dir *project.DirNode, opts Options) []project.Node {
	children := make([]project.Node, 0, len(dir.Children))
	for _, child := range dir.Children {
		if !opts.ShowHidden && helper.IsHidden(child.GetName()) {
			continue
		}
		if !opts.ShowFiles && !project.IsDir(child) {
			continue
		}
		children = append(children, child)
	}
	return children
}

func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	case size < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/(1024*1024*1024))
	}
}

package search

import (
	"strings"

	"github.com/sjzsdu/codeide/project"
)

// Files 快速打开：返回路径中包含 term 的文件（不区分大小写），按树的前序排列
// term 为空时返回全部文件；limit <= 0 表示不限制数量
func Files(root *project.DirNode, term string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(term))
	var paths []string
	_ = project.Traverse(root, project.VisitorFunc(func(n project.Node, path string, depth int) error {
		if _, ok := n.(*project.FileNode); !ok {
			return nil
		}
		if needle != "" && !strings.Contains(strings.ToLower(path), needle) {
			return nil
		}
		paths = append(paths, path)
		if limit > 0 && len(paths) >= limit {
			return errLimit
		}
		return nil
	}))
	return paths
}

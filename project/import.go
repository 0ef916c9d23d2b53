package project

import (
	"strings"

	"github.com/sjzsdu/codeide/helper"
)

// Item 待导入的文件：相对路径（首段为根目录名）和完整文本内容
type Item struct {
	Path    string
	Content string
}

// Import 根据条目构建新的项目树
// 根目录名取第一个条目路径的首段；无法挂到树上的条目作为失败返回，其余条目照常导入。
// 同一路径出现多次时以最后一次为准。
func Import(items []Item) (*Project, []ReadFailure, error) {
	if len(items) == 0 {
		return nil, nil, ErrEmptySelection
	}

	b := &treeBuilder{index: make(map[string]Node)}
	var failures []ReadFailure
	for _, item := range items {
		parts := helper.SplitPath(item.Path)
		if b.root == nil && len(parts) > 0 {
			b.root = &DirNode{Name: parts[0]}
			b.index[parts[0]] = b.root
		}
		if err := b.insert(parts, item.Content); err != nil {
			failures = append(failures, ReadFailure{Path: item.Path, Err: err})
		}
	}
	if b.root == nil {
		return nil, failures, ErrEmptySelection
	}

	SortTree(b.root)
	return New(b.root), failures, nil
}

type treeBuilder struct {
	root  *DirNode
	index map[string]Node // 完整路径 -> 节点
}

func (b *treeBuilder) insert(parts []string, content string) error {
	if len(parts) < 2 {
		return ErrInvalidPath
	}
	if parts[0] != b.root.Name {
		return ErrForeignRoot
	}

	// 先校验整条路径，避免冲突时留下半截目录
	for i := 2; i < len(parts); i++ {
		if n, ok := b.index[strings.Join(parts[:i], "/")]; ok && !IsDir(n) {
			return ErrNodeConflict
		}
	}
	full := strings.Join(parts, "/")
	if n, ok := b.index[full]; ok {
		f, isFile := n.(*FileNode)
		if !isFile {
			return ErrNodeConflict
		}
		f.Content = content
		return nil
	}

	dir := b.root
	for i := 2; i < len(parts); i++ {
		key := strings.Join(parts[:i], "/")
		if n, ok := b.index[key]; ok {
			dir = n.(*DirNode)
			continue
		}
		sub := &DirNode{Name: parts[i-1]}
		dir.Children = append(dir.Children, sub)
		b.index[key] = sub
		dir = sub
	}
	file := &FileNode{Name: parts[len(parts)-1], Path: full, Content: content}
	dir.Children = append(dir.Children, file)
	b.index[full] = file
	return nil
}

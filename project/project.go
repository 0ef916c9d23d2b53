package project

import (
	"github.com/sjzsdu/codeide/helper"
)

// Entry 扁平化后的文件，Path 包含根目录名
type Entry struct {
	Path    string
	Content string
}

// Project 持有导入后的项目树，导入之后只能通过 WriteFileContent 修改文件内容
type Project struct {
	root *DirNode
}

// New 用已整理好的根目录创建项目
func New(root *DirNode) *Project {
	return &Project{root: root}
}

// Root 返回根目录，没有项目时为 nil
func (p *Project) Root() *DirNode {
	if p == nil {
		return nil
	}
	return p.root
}

// Name 返回根目录名
func (p *Project) Name() string {
	if p.Root() == nil {
		return ""
	}
	return p.root.Name
}

// Locate 按路径逐段查找节点，任一段不存在时返回 false
func (p *Project) Locate(path string) (Node, bool) {
	root := p.Root()
	parts := helper.SplitPath(path)
	if root == nil || len(parts) == 0 || parts[0] != root.Name {
		return nil, false
	}

	var current Node = root
	for _, seg := range parts[1:] {
		dir, ok := current.(*DirNode)
		if !ok {
			return nil, false
		}
		child, ok := dir.Child(seg)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// LocateFile 查找文件节点，路径指向目录时同样视为不存在
func (p *Project) LocateFile(path string) (*FileNode, bool) {
	n, ok := p.Locate(path)
	if !ok {
		return nil, false
	}
	f, ok := n.(*FileNode)
	return f, ok
}

// WriteFileContent 替换文件内容，路径必须精确解析到文件节点
func (p *Project) WriteFileContent(path string, content string) error {
	f, ok := p.LocateFile(path)
	if !ok {
		return &PathError{Op: "write", Path: path, Err: ErrPathNotFound}
	}
	f.Content = content
	return nil
}

// Walk 前序访问所有节点
func (p *Project) Walk(v NodeVisitor) error {
	return Traverse(p.Root(), v)
}

// Files 按前序返回所有文件
func (p *Project) Files() []Entry {
	var entries []Entry
	_ = p.Walk(VisitorFunc(func(n Node, path string, depth int) error {
		if f, ok := n.(*FileNode); ok {
			entries = append(entries, Entry{Path: path, Content: f.Content})
		}
		return nil
	}))
	return entries
}

// FileCount 返回文件数量
func (p *Project) FileCount() int {
	if p.Root() == nil {
		return 0
	}
	return CountFiles(p.root)
}

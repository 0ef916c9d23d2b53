package project

import (
	"sort"
)

// Node 项目树节点，只有 *DirNode 和 *FileNode 两种实现
type Node interface {
	GetName() string
	node()
}

// DirNode 目录节点，Children 保持目录在前、同类按名称字节序排列
type DirNode struct {
	Name     string
	Children []Node
}

// FileNode 文件节点，Path 为包含根目录名的完整路径
type FileNode struct {
	Name    string
	Path    string
	Content string
}

func (d *DirNode) GetName() string  { return d.Name }
func (f *FileNode) GetName() string { return f.Name }

func (*DirNode) node()  {}
func (*FileNode) node() {}

// Child 按名称查找直接子节点
func (d *DirNode) Child(name string) (Node, bool) {
	for _, c := range d.Children {
		if c.GetName() == name {
			return c, true
		}
	}
	return nil, false
}

// IsDir 判断节点是否为目录
func IsDir(n Node) bool {
	_, ok := n.(*DirNode)
	return ok
}

// Less 兄弟节点的排序规则：目录在前，同类按名称区分大小写升序
func Less(a, b Node) bool {
	ad, bd := IsDir(a), IsDir(b)
	if ad != bd {
		return ad
	}
	return a.GetName() < b.GetName()
}

// SortTree 后序递归整理目录的子节点顺序，重复调用结果不变
func SortTree(dir *DirNode) {
	if dir == nil {
		return
	}
	for _, c := range dir.Children {
		if sub, ok := c.(*DirNode); ok {
			SortTree(sub)
		}
	}
	sort.SliceStable(dir.Children, func(i, j int) bool {
		return Less(dir.Children[i], dir.Children[j])
	})
}

// CountFiles 统计目录下的文件数量
func CountFiles(dir *DirNode) int {
	n := 0
	for _, c := range dir.Children {
		switch v := c.(type) {
		case *DirNode:
			n += CountFiles(v)
		case *FileNode:
			n++
		}
	}
	return n
}

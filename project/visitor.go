package project

import (
	"errors"
	"strings"
)

// SkipDir 由 VisitDirectory 返回时跳过该目录的子节点
var SkipDir = errors.New("skip this directory")

// NodeVisitor 定义了节点访问器的接口
type NodeVisitor interface {
	// VisitDirectory 访问目录节点
	VisitDirectory(node *DirNode, path string, depth int) error
	// VisitFile 访问文件节点
	VisitFile(node *FileNode, path string, depth int) error
}

// VisitorFunc 用一个函数同时处理目录和文件
type VisitorFunc func(node Node, path string, depth int) error

func (f VisitorFunc) VisitDirectory(node *DirNode, path string, depth int) error {
	return f(node, path, depth)
}

func (f VisitorFunc) VisitFile(node *FileNode, path string, depth int) error {
	return f(node, path, depth)
}

type FilteredVisitor struct {
	Visitor    NodeVisitor                            // 实际的访问器
	FileFilter func(node *FileNode, path string) bool // 文件过滤函数
	DirFilter  func(node *DirNode, path string) bool  // 目录过滤函数
}

// VisitDirectory 实现 NodeVisitor 接口
func (fv *FilteredVisitor) VisitDirectory(node *DirNode, path string, depth int) error {
	if fv.DirFilter != nil && !fv.DirFilter(node, path) {
		return SkipDir
	}
	return fv.Visitor.VisitDirectory(node, path, depth)
}

// VisitFile 实现 NodeVisitor 接口
func (fv *FilteredVisitor) VisitFile(node *FileNode, path string, depth int) error {
	if fv.FileFilter != nil && !fv.FileFilter(node, path) {
		return nil
	}
	return fv.Visitor.VisitFile(node, path, depth)
}

// Traverse 前序遍历以 root 为根的树，根节点深度为 0，路径包含根目录名
func Traverse(root *DirNode, v NodeVisitor) error {
	if root == nil {
		return nil
	}
	err := traverse(root, root.Name, 0, v)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

func traverse(dir *DirNode, path string, depth int, v NodeVisitor) error {
	if err := v.VisitDirectory(dir, path, depth); err != nil {
		return err
	}
	for _, c := range dir.Children {
		childPath := strings.Join([]string{path, c.GetName()}, "/")
		switch n := c.(type) {
		case *DirNode:
			if err := traverse(n, childPath, depth+1, v); err != nil && !errors.Is(err, SkipDir) {
				return err
			}
		case *FileNode:
			if err := v.VisitFile(n, childPath, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

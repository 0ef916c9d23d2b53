package project

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySelection 导入时没有任何条目
	ErrEmptySelection = errors.New("empty selection")
	// ErrPathNotFound 路径无法解析为文件节点
	ErrPathNotFound = errors.New("path not found")
	// ErrEmptyProject 当前没有打开的项目
	ErrEmptyProject = errors.New("no project open")
	// ErrInvalidPath 路径缺少文件名或为空
	ErrInvalidPath = errors.New("invalid path")
	// ErrForeignRoot 条目的首段与项目根目录不一致
	ErrForeignRoot = errors.New("path outside project root")
	// ErrNodeConflict 同一名称既是文件又是目录
	ErrNodeConflict = errors.New("file and directory share a name")
)

// PathError 记录出错的操作和路径
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ReadFailure 单个条目读取或导入失败，不影响其余条目
type ReadFailure struct {
	Path string
	Err  error
}

func (f ReadFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f ReadFailure) Unwrap() error {
	return f.Err
}

// Package registry 记录已打开文件的内容、修改状态和标签页顺序
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sjzsdu/codeide/helper"
)

var (
	// ErrUnknownPath 路径从未被打开过
	ErrUnknownPath = errors.New("file is not open")
	// ErrStaleContent 内容在读取之后已被其他调用方修改
	ErrStaleContent = errors.New("content changed since it was read")
)

// OpenFile 已打开文件的快照，Modified 当且仅当 Content 与 Original 不同
type OpenFile struct {
	Path     string
	Name     string
	Content  string
	Original string
	Modified bool
}

// Tab 标签页的展示信息
type Tab struct {
	Path     string
	Name     string
	Modified bool
	Active   bool
}

// ContentWriter 保存时用于回写项目树
type ContentWriter interface {
	WriteFileContent(path string, content string) error
}

// Registry 按路径保存打开的文件，标签页顺序单独维护
// 条目只在 Reset 时清除，关闭标签页不会丢弃未保存的内容
type Registry struct {
	entries map[string]*OpenFile
	tabs    []string
	active  string
}

func New() *Registry {
	return &Registry{entries: make(map[string]*OpenFile)}
}

// Open 打开文件：首次打开时以 initial 为内容和原始快照，已存在的条目保持不变
// 标签页不存在时追加到末尾，并设为当前标签页
func (r *Registry) Open(path string, initial string) {
	path = helper.StandardizePath(path)
	if _, ok := r.entries[path]; !ok {
		r.entries[path] = &OpenFile{
			Path:     path,
			Name:     helper.BaseName(path),
			Content:  initial,
			Original: initial,
		}
	}
	if r.tabIndex(path) < 0 {
		r.tabs = append(r.tabs, path)
	}
	r.active = path
}

// Edit 更新当前内容并重新计算修改状态
func (r *Registry) Edit(path string, content string) error {
	entry, err := r.lookup(path)
	if err != nil {
		return err
	}
	entry.Content = content
	entry.Modified = entry.Content != entry.Original
	return nil
}

// Update 仅当当前内容仍为 expected 时才写入 content
func (r *Registry) Update(path string, expected string, content string) error {
	entry, err := r.lookup(path)
	if err != nil {
		return err
	}
	if entry.Content != expected {
		return fmt.Errorf("edit %s: %w", entry.Path, ErrStaleContent)
	}
	return r.Edit(path, content)
}

// Save 先写入项目树，成功后把原始快照重置为 content；写入失败时条目保持不变
func (r *Registry) Save(path string, content string, w ContentWriter) error {
	entry, err := r.lookup(path)
	if err != nil {
		return err
	}
	if err := w.WriteFileContent(entry.Path, content); err != nil {
		return fmt.Errorf("save %s: %w", entry.Path, err)
	}
	entry.Content = content
	entry.Original = content
	entry.Modified = false
	return nil
}

// Close 只移除标签页，条目保留
// 关闭的是当前标签页时，激活它前面的一个；没有前一个则激活新的第一个
func (r *Registry) Close(path string) {
	path = helper.StandardizePath(path)
	idx := r.tabIndex(path)
	if idx < 0 {
		return
	}
	r.tabs = append(r.tabs[:idx], r.tabs[idx+1:]...)
	if r.active != path {
		return
	}
	switch {
	case len(r.tabs) == 0:
		r.active = ""
	case idx > 0:
		r.active = r.tabs[idx-1]
	default:
		r.active = r.tabs[0]
	}
}

// Activate 切换到已有的标签页
func (r *Registry) Activate(path string) error {
	path = helper.StandardizePath(path)
	if r.tabIndex(path) < 0 {
		return fmt.Errorf("activate %s: %w", path, ErrUnknownPath)
	}
	r.active = path
	return nil
}

// Active 返回当前标签页对应的条目
func (r *Registry) Active() (OpenFile, bool) {
	if r.active == "" {
		return OpenFile{}, false
	}
	return *r.entries[r.active], true
}

// Entry 返回条目的副本
func (r *Registry) Entry(path string) (OpenFile, bool) {
	entry, ok := r.entries[helper.StandardizePath(path)]
	if !ok {
		return OpenFile{}, false
	}
	return *entry, true
}

// IsOpen 判断路径是否有标签页
func (r *Registry) IsOpen(path string) bool {
	return r.tabIndex(helper.StandardizePath(path)) >= 0
}

// Tabs 按打开顺序返回标签页
func (r *Registry) Tabs() []Tab {
	tabs := make([]Tab, 0, len(r.tabs))
	for _, path := range r.tabs {
		entry := r.entries[path]
		tabs = append(tabs, Tab{
			Path:     path,
			Name:     entry.Name,
			Modified: entry.Modified,
			Active:   path == r.active,
		})
	}
	return tabs
}

// Dirty 返回所有未保存条目的路径，包括已关闭标签页的条目
func (r *Registry) Dirty() []string {
	var paths []string
	for path, entry := range r.entries {
		if entry.Modified {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Reset 清空所有条目和标签页
func (r *Registry) Reset() {
	r.entries = make(map[string]*OpenFile)
	r.tabs = nil
	r.active = ""
}

func (r *Registry) lookup(path string) (*OpenFile, error) {
	path = helper.StandardizePath(path)
	entry, ok := r.entries[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownPath)
	}
	return entry, nil
}

func (r *Registry) tabIndex(path string) int {
	for i, p := range r.tabs {
		if p == path {
			return i
		}
	}
	return -1
}

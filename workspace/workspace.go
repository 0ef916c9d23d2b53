// Package workspace 持有当前项目树和已打开文件，是所有读写操作的唯一入口
package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sjzsdu/codeide/logging"
	"github.com/sjzsdu/codeide/project"
	"github.com/sjzsdu/codeide/project/editor"
	"github.com/sjzsdu/codeide/project/output"
	"github.com/sjzsdu/codeide/project/registry"
	"github.com/sjzsdu/codeide/project/search"
	"github.com/sjzsdu/codeide/project/tree"
)

// Workspace 对项目树和登记表加读写锁，可被 MCP 等调用方并发使用
type Workspace struct {
	mu       sync.RWMutex
	id       string
	project  *project.Project
	registry *registry.Registry
	log      *logrus.Entry
}

func New() *Workspace {
	id := uuid.NewString()
	return &Workspace{
		id:       id,
		registry: registry.New(),
		log:      logging.NewLogger("workspace").WithField("workspace_id", id),
	}
}

func (w *Workspace) ID() string {
	return w.id
}

// Import 用条目替换当前项目；失败时保留原项目和已打开的文件，成功时清空登记表
func (w *Workspace) Import(items []project.Item) ([]project.ReadFailure, error) {
	p, failures, err := project.Import(items)
	for _, f := range failures {
		w.log.WithError(f.Err).WithField("path", f.Path).Warn("item skipped")
	}
	if err != nil {
		w.log.WithError(err).Warn("import failed")
		return failures, err
	}

	w.mu.Lock()
	w.project = p
	w.registry.Reset()
	w.mu.Unlock()

	w.log.WithFields(logrus.Fields{"root": p.Name(), "files": p.FileCount()}).Info("project imported")
	return failures, nil
}

// ImportDir 读取本地目录，根目录名取目录的名称
func (w *Workspace) ImportDir(ctx context.Context, dir string, opts project.ReadOptions) ([]project.ReadFailure, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		w.log.WithError(err).WithField("path", abs).Warn("import failed")
		return nil, err
	}
	if !info.IsDir() {
		err := &project.PathError{Op: "import", Path: abs, Err: project.ErrInvalidPath}
		w.log.WithError(err).Warn("import failed")
		return nil, err
	}

	items, readFailures, err := project.ReadDir(ctx, os.DirFS(abs), filepath.Base(abs), opts)
	if err != nil {
		w.log.WithError(err).WithField("path", abs).Warn("read failed")
		return readFailures, err
	}
	failures, err := w.Import(items)
	return append(readFailures, failures...), err
}

// ImportGit 从远程仓库导入 HEAD 提交中的文件
func (w *Workspace) ImportGit(ctx context.Context, url string, opts project.GitOptions) ([]project.ReadFailure, error) {
	items, readFailures, err := project.ReadGit(ctx, url, opts)
	if err != nil {
		w.log.WithError(err).WithField("url", url).Warn("clone failed")
		return readFailures, err
	}
	failures, err := w.Import(items)
	return append(readFailures, failures...), err
}

// Project 返回当前项目，没有项目时为 nil；调用方只能读取
func (w *Workspace) Project() *project.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.project
}

// Tree 渲染项目树，未保存的文件后面带 *
func (w *Workspace) Tree(opts tree.Options) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.project.Root() == nil {
		return "", project.ErrEmptyProject
	}
	if opts.Mark == nil {
		opts.Mark = func(path string) string {
			if entry, ok := w.registry.Entry(path); ok && entry.Modified {
				return " *"
			}
			return ""
		}
	}
	return tree.TreeWithOptions(w.project.Root(), opts), nil
}

// Stats 返回项目树的统计信息
func (w *Workspace) Stats() (tree.Statistics, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.project.Root() == nil {
		return tree.Statistics{}, project.ErrEmptyProject
	}
	return tree.Stats(w.project.Root()), nil
}

// Open 打开文件并设为当前标签页；已打开过的文件保留登记表中的内容
func (w *Workspace) Open(path string) (registry.OpenFile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, ok := w.project.LocateFile(path)
	if !ok {
		err := &project.PathError{Op: "open", Path: path, Err: project.ErrPathNotFound}
		w.log.WithError(err).WithField("path", path).Warn("open failed")
		return registry.OpenFile{}, err
	}
	w.registry.Open(path, f.Content)
	entry, _ := w.registry.Entry(path)
	return entry, nil
}

// Read 返回文件的当前内容：已打开的文件取登记表中的内容，否则取项目树中的内容
func (w *Workspace) Read(path string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if entry, ok := w.registry.Entry(path); ok {
		return entry.Content, nil
	}
	f, ok := w.project.LocateFile(path)
	if !ok {
		return "", &project.PathError{Op: "read", Path: path, Err: project.ErrPathNotFound}
	}
	return f.Content, nil
}

// Edit 更新已打开文件的内容，不写入项目树
func (w *Workspace) Edit(path string, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.registry.Edit(path, content); err != nil {
		w.log.WithError(err).WithField("path", path).Warn("edit failed")
		return err
	}
	return nil
}

// Update 以比较后写入的方式更新已打开文件，供编辑会话使用
func (w *Workspace) Update(path string, expected string, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.registry.Update(path, expected, content); err != nil {
		w.log.WithError(err).WithField("path", path).Warn("edit failed")
		return err
	}
	return nil
}

// Save 把 content 写入项目树并重置修改状态
func (w *Workspace) Save(path string, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.registry.Save(path, content, w.project); err != nil {
		w.log.WithError(err).WithField("path", path).Warn("save failed")
		return err
	}
	w.log.WithField("path", path).Debug("file saved")
	return nil
}

// SaveAll 保存所有未保存的文件，返回成功保存的路径
func (w *Workspace) SaveAll() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var saved []string
	for _, path := range w.registry.Dirty() {
		entry, _ := w.registry.Entry(path)
		if err := w.registry.Save(path, entry.Content, w.project); err != nil {
			w.log.WithError(err).WithField("path", path).Warn("save failed")
			return saved, err
		}
		saved = append(saved, path)
	}
	return saved, nil
}

// Close 关闭标签页，未保存的内容仍保留在登记表中
func (w *Workspace) Close(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.registry.IsOpen(path) {
		w.log.WithField("path", path).Debug("close: no such tab")
		return
	}
	w.registry.Close(path)
}

func (w *Workspace) Activate(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.registry.Activate(path); err != nil {
		w.log.WithError(err).WithField("path", path).Warn("activate failed")
		return err
	}
	return nil
}

func (w *Workspace) Active() (registry.OpenFile, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.registry.Active()
}

func (w *Workspace) Entry(path string) (registry.OpenFile, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.registry.Entry(path)
}

func (w *Workspace) Tabs() []registry.Tab {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.registry.Tabs()
}

// Dirty 返回所有未保存的路径
func (w *Workspace) Dirty() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.registry.Dirty()
}

// Session 为已打开的文件创建编辑会话，path 为空时使用当前标签页
func (w *Workspace) Session(path string) (*editor.Session, error) {
	if path == "" {
		active, ok := w.Active()
		if !ok {
			return nil, fmt.Errorf("no active file: %w", registry.ErrUnknownPath)
		}
		path = active.Path
	}
	return editor.NewSession(w, path)
}

// Search 按路径快速查找文件
func (w *Workspace) Search(term string, limit int) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.project.Root() == nil {
		return nil, project.ErrEmptyProject
	}
	return search.Files(w.project.Root(), term, limit), nil
}

// Grep 在项目树的文件内容中搜索，未保存的修改不参与搜索
func (w *Workspace) Grep(ctx context.Context, opts *search.SearchOptions) ([]search.Match, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return search.Grep(ctx, w.project, opts)
}

// Export 以指定格式（zip、md、xml、yaml、pdf）导出项目树，未保存的修改不会导出
func (w *Workspace) Export(wr io.Writer, format string) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.project.Root() == nil {
		return project.ErrEmptyProject
	}
	exporter, err := output.GetExporter(w.project, output.DefaultFileName(w.project, format))
	if err != nil {
		return err
	}
	if err := exporter.Export(wr); err != nil {
		w.log.WithError(err).WithField("format", format).Warn("export failed")
		return err
	}
	return nil
}

// ExportPath 返回 ExportFile 实际写入的文件路径
// path 为空时为当前目录下的 <root>.zip，path 为已有目录时为该目录下的 <root>.zip
func (w *Workspace) ExportPath(path string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.exportPath(path)
}

func (w *Workspace) exportPath(path string) (string, error) {
	if w.project.Root() == nil {
		return "", project.ErrEmptyProject
	}
	if path == "" {
		return output.ArchiveName(w.project), nil
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, output.ArchiveName(w.project)), nil
	}
	return path, nil
}

// ExportFile 导出到文件，格式由扩展名决定，返回写入的路径
func (w *Workspace) ExportFile(path string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	path, err := w.exportPath(path)
	if err != nil {
		return "", err
	}
	if err := output.Output(w.project, path); err != nil {
		return "", err
	}
	return path, nil
}

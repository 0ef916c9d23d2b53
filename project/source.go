package project

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sync/atomic"

	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/helper/coroutine"
	"github.com/sjzsdu/codeide/share"
)

// 需要排除的系统和开发工具目录
var excludedDirs = map[string]bool{
	".git":         true,
	".vscode":      true,
	".idea":        true,
	"node_modules": true,
	".svn":         true,
	".hg":          true,
	".DS_Store":    true,
	"__pycache__":  true,
	"bin":          true,
	"obj":          true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"fonts":        true,
}

// errSkipped 文件被过滤，不算作失败
var errSkipped = errors.New("skipped")

// ReadOptions 控制从文件系统读取条目的方式
type ReadOptions struct {
	IncludeHidden bool                      // 是否包含隐藏文件和目录
	NoGitignore   bool                      // 不应用 .gitignore 规则
	Excludes      []string                  // 排除的 glob 模式，匹配名称或相对路径
	Extensions    []string                  // 包含的扩展名，空或 "*" 表示全部
	MaxFileSize   int64                     // 超过该大小的文件被跳过，<= 0 表示不限制
	Workers       int                       // 并发读取数，<= 0 时使用 CPU 核数
	OnProgress    func(done int, total int) // 每读完一个文件回调一次，可能被并发调用
}

// DefaultReadOptions 返回默认的读取选项
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		Extensions:  []string{"*"},
		MaxFileSize: share.MAX_FILE_SIZE,
		Workers:     coroutine.DefaultMaxWorkers(),
	}
}

func (o ReadOptions) excluded(name, rel string) bool {
	for _, pattern := range o.Excludes {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ReadDir 遍历 fsys 并并发读取文件内容，条目路径以 rootName 开头，顺序与遍历顺序一致
// 单个文件的读取错误作为失败返回；遍历根目录失败或 ctx 取消时返回错误
func ReadDir(ctx context.Context, fsys fs.FS, rootName string, opts ReadOptions) ([]Item, []ReadFailure, error) {
	var (
		paths    []string
		failures []ReadFailure
		ignore   = gitignore{}
	)
	loadIgnore := func(dir string) {
		if opts.NoGitignore {
			return
		}
		if err := ignore.load(fsys, dir); err != nil {
			failures = append(failures, ReadFailure{Path: helper.JoinPath(rootName, path.Join(dir, ".gitignore")), Err: err})
		}
	}

	err := fs.WalkDir(fsys, ".", func(rel string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if rel == "." {
				return err
			}
			failures = append(failures, ReadFailure{Path: helper.JoinPath(rootName, rel), Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if rel == "." {
			loadIgnore(rel)
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if excludedDirs[name] || (!opts.IncludeHidden && helper.IsHidden(name)) || opts.excluded(name, rel) || ignore.ignored(rel) {
				return fs.SkipDir
			}
			loadIgnore(rel)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if (!opts.IncludeHidden && helper.IsHidden(name)) || opts.excluded(name, rel) || ignore.ignored(rel) {
			return nil
		}
		if !helper.HasExtension(name, opts.Extensions) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var done atomic.Int64
	results := coroutine.Map(ctx, opts.Workers, paths, func(rel string) (string, error) {
		content, err := readFile(fsys, rel, opts.MaxFileSize)
		if opts.OnProgress != nil {
			opts.OnProgress(int(done.Add(1)), len(paths))
		}
		return content, err
	})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	items := make([]Item, 0, len(results))
	for i, r := range results {
		full := helper.JoinPath(rootName, paths[i])
		switch {
		case errors.Is(r.Err, errSkipped):
		case r.Err != nil:
			failures = append(failures, ReadFailure{Path: full, Err: r.Err})
		default:
			items = append(items, Item{Path: full, Content: r.Value})
		}
	}
	return items, failures, nil
}

func readFile(fsys fs.FS, rel string, maxSize int64) (string, error) {
	if maxSize > 0 {
		info, err := fs.Stat(fsys, rel)
		if err != nil {
			return "", err
		}
		if info.Size() > maxSize {
			return "", errSkipped
		}
	}
	data, err := fs.ReadFile(fsys, rel)
	if err != nil {
		return "", err
	}
	if helper.IsBinaryContent(data) {
		return "", errSkipped
	}
	return string(data), nil
}

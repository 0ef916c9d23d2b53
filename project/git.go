package project

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/sjzsdu/codeide/helper"
)

// GitOptions 控制从远程仓库导入的方式
type GitOptions struct {
	Branch string // 为空时使用远程默认分支
	Depth  int    // <= 0 时为 1
	Read   ReadOptions
}

// RepoName 由仓库地址推导根目录名，去掉末尾的 .git
func RepoName(url string) string {
	url = strings.TrimRight(url, "/")
	name := path.Base(strings.ReplaceAll(url, ":", "/"))
	return strings.TrimSuffix(name, ".git")
}

// ReadGit 把仓库克隆到内存中，读取 HEAD 提交的文件
func ReadGit(ctx context.Context, url string, opts GitOptions) ([]Item, []ReadFailure, error) {
	depth := opts.Depth
	if depth <= 0 {
		depth = 1
	}
	cloneOpts := &git.CloneOptions{
		URL:          url,
		Depth:        depth,
		SingleBranch: true,
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
	}

	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, cloneOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("clone %s: %w", url, err)
	}
	return ReadRepository(ctx, repo, RepoName(url), opts.Read)
}

// ReadRepository 读取仓库 HEAD 提交中的文件，过滤规则与 ReadDir 相同
func ReadRepository(ctx context.Context, repo *git.Repository, rootName string, opts ReadOptions) ([]Item, []ReadFailure, error) {
	ref, err := repo.Head()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, nil, fmt.Errorf("load commit %s: %w", ref.Hash(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, nil, fmt.Errorf("load tree: %w", err)
	}

	var (
		items    []Item
		failures []ReadFailure
	)
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !opts.acceptsTreePath(f.Name) {
			return nil
		}
		if opts.MaxFileSize > 0 && f.Size > opts.MaxFileSize {
			return nil
		}
		full := helper.JoinPath(rootName, f.Name)
		binary, err := f.IsBinary()
		if err != nil {
			failures = append(failures, ReadFailure{Path: full, Err: err})
			return nil
		}
		if binary {
			return nil
		}
		content, err := f.Contents()
		if err != nil {
			failures = append(failures, ReadFailure{Path: full, Err: err})
			return nil
		}
		items = append(items, Item{Path: full, Content: content})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return items, failures, nil
}

// acceptsTreePath 对仓库内的相对路径逐段应用目录排除和隐藏规则
func (o ReadOptions) acceptsTreePath(rel string) bool {
	parts := helper.SplitPath(rel)
	if len(parts) == 0 {
		return false
	}
	for i, seg := range parts {
		if !o.IncludeHidden && helper.IsHidden(seg) {
			return false
		}
		sub := strings.Join(parts[:i+1], "/")
		if i < len(parts)-1 && excludedDirs[seg] {
			return false
		}
		if o.excluded(seg, sub) {
			return false
		}
	}
	return helper.HasExtension(parts[len(parts)-1], o.Extensions)
}

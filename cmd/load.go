package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sjzsdu/codeide/config"
	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/project"
	"github.com/sjzsdu/codeide/workspace"
)

// readOptions 由命令行参数和配置组合出导入选项
func readOptions() project.ReadOptions {
	opts := project.DefaultReadOptions()
	opts.IncludeHidden = includeHidden
	opts.NoGitignore = skipGitIgnore
	opts.Excludes = excludePatterns
	if len(extensions) > 0 {
		opts.Extensions = extensions
	}
	opts.MaxFileSize = int64(config.GetIntWithDefault(config.KeyMaxFileSize, int(opts.MaxFileSize)))
	opts.Workers = config.GetIntWithDefault(config.KeyWorkers, opts.Workers)
	return opts
}

// loadWorkspace 根据 -r 或 -d 导入项目，两者都没有时使用当前目录
func loadWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	ws := workspace.New()
	opts := readOptions()

	var (
		failures []project.ReadFailure
		err      error
	)
	if repoURL != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", lang.T("Cloning"), repoURL)
		progress := helper.NewProgress(lang.T("Reading files"), 0)
		opts.OnProgress = progress.Update
		failures, err = ws.ImportGit(ctx, repoURL, project.GitOptions{Branch: branch, Read: opts})
		progress.Finish()
	} else {
		dir := workDir
		if dir == "" {
			dir = "."
		}
		progress := helper.NewProgress(lang.T("Reading files"), 0)
		opts.OnProgress = progress.Update
		failures, err = ws.ImportDir(ctx, dir, opts)
		progress.Finish()
	}
	if err != nil {
		return nil, err
	}

	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "%s: %v\n", lang.T("Skipped"), f)
	}
	return ws, nil
}

package search

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/helper/coroutine"
	"github.com/sjzsdu/codeide/project"
)

var errLimit = errors.New("result limit reached")

// SearchOptions 定义内容搜索选项
type SearchOptions struct {
	// 子串匹配
	Query string
	// 是否把 Query 当作正则表达式
	Regex bool
	// 大小写不敏感匹配（对子串与正则均生效）
	CaseInsensitive bool
	// 扩展名过滤，如 []string{"go","md"}；为空或包含 "*" 表示不过滤
	Extensions []string
	// 是否包含隐藏文件（以 . 开头）
	IncludeHidden bool
	// 并发 worker 数，<=0 使用默认
	MaxWorkers int
	// 结果数量上限，<=0 表示不限制
	MaxResults int
}

// DefaultSearchOptions 返回默认搜索选项
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{
		CaseInsensitive: true,
		IncludeHidden:   false,
	}
}

// Match 单个匹配，行号和列号均从 1 开始
type Match struct {
	Path        string
	LineNumber  int
	ColumnStart int
	ColumnEnd   int
	LineContent string
}

// Grep 在项目的所有文件中并发搜索内容，结果按文件的前序和行号排列
func Grep(ctx context.Context, p *project.Project, opts *SearchOptions) ([]Match, error) {
	if p.Root() == nil {
		return nil, project.ErrEmptyProject
	}
	if opts == nil {
		opts = DefaultSearchOptions()
	}
	if opts.Query == "" {
		return nil, nil
	}

	pattern := opts.Query
	if !opts.Regex {
		pattern = regexp.QuoteMeta(pattern)
	}
	if opts.CaseInsensitive && !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", opts.Query, err)
	}

	var entries []project.Entry
	for _, entry := range p.Files() {
		name := helper.BaseName(entry.Path)
		if !opts.IncludeHidden && helper.IsHidden(name) {
			continue
		}
		if !helper.HasExtension(name, opts.Extensions) {
			continue
		}
		entries = append(entries, entry)
	}

	results := coroutine.Map(ctx, opts.MaxWorkers, entries, func(entry project.Entry) ([]Match, error) {
		return searchInFile(entry, re), nil
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []Match
	for _, r := range results {
		for _, m := range r.Value {
			matches = append(matches, m)
			if opts.MaxResults > 0 && len(matches) >= opts.MaxResults {
				return matches, nil
			}
		}
	}
	return matches, nil
}

func searchInFile(entry project.Entry, re *regexp.Regexp) []Match {
	var matches []Match
	for i, line := range strings.Split(entry.Content, "\n") {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			matches = append(matches, Match{
				Path:        entry.Path,
				LineNumber:  i + 1,
				ColumnStart: loc[0] + 1,
				ColumnEnd:   loc[1],
				LineContent: line,
			})
		}
	}
	return matches
}

// FormatSearchResults 格式化搜索结果，按文件分组
func FormatSearchResults(results []Match) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("找到 %d 个结果:\n", len(results)))

	current := ""
	for _, result := range results {
		if result.Path != current {
			current = result.Path
			sb.WriteString(fmt.Sprintf("\n文件: %s\n", current))
		}
		sb.WriteString(fmt.Sprintf("  行 %d, 列 %d-%d: %s\n",
			result.LineNumber,
			result.ColumnStart,
			result.ColumnEnd,
			strings.TrimSpace(result.LineContent)))
	}
	return sb.String()
}

package project

import (
	"bufio"
	"io/fs"
	"path"
	"strings"

	"github.com/moby/patternmatcher"
)

// gitignore 按目录收集的 .gitignore 规则，键为目录的相对路径，根目录为 "."
// 子目录的规则只能追加忽略，不能取消上层目录已忽略的路径
type gitignore map[string]*patternmatcher.PatternMatcher

// load 读取 dir 下的 .gitignore，文件不存在时忽略
func (g gitignore) load(fsys fs.FS, dir string) error {
	data, err := fs.ReadFile(fsys, path.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}

	var patterns []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		if p := gitignorePattern(scanner.Text()); p != "" {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return err
	}
	g[dir] = pm
	return nil
}

// ignored 判断相对路径是否被所在目录或任一上层目录的规则忽略
func (g gitignore) ignored(rel string) bool {
	for dir := path.Dir(rel); ; dir = path.Dir(dir) {
		if pm, ok := g[dir]; ok {
			sub := rel
			if dir != "." {
				sub = strings.TrimPrefix(rel, dir+"/")
			}
			if matched, err := pm.MatchesOrParentMatches(sub); err == nil && matched {
				return true
			}
		}
		if dir == "." {
			return false
		}
	}
}

// gitignorePattern 把一行 .gitignore 规则转换成 patternmatcher 的模式
// 不含 / 的模式匹配任意层级；以 / 开头的模式只匹配当前目录；结尾的 / 被去掉
func gitignorePattern(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ""
	}

	negate := strings.HasPrefix(line, "!")
	line = strings.TrimPrefix(line, "!")
	line = strings.TrimSuffix(line, "/")
	if line == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(line, "/"):
		line = strings.TrimPrefix(line, "/")
	case !strings.Contains(line, "/"):
		line = "**/" + line
	}
	if negate {
		line = "!" + line
	}
	return line
}

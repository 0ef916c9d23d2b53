package helper

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sjzsdu/codeide/share"
)

// SplitPath 把项目路径拆成段，去掉首尾和重复的 /
// 项目路径只以 / 分隔，\ 是文件名中的普通字符；本地路径需先经 filepath.ToSlash 转换
func SplitPath(path string) []string {
	raw := strings.Split(path, "/")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

// StandardizePath 标准化项目路径，形如 root/dir/file
func StandardizePath(path string) string {
	return strings.Join(SplitPath(path), "/")
}

// JoinPath 用 / 连接路径段
func JoinPath(parts ...string) string {
	return StandardizePath(strings.Join(parts, "/"))
}

// BaseName 返回路径的最后一段
func BaseName(path string) string {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// IsHidden 判断名称是否为隐藏文件或目录
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// GetPath 返回用户家目录下 share.PATH 中的路径，name 为空时返回目录本身
func GetPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	if name == "" {
		return filepath.Join(home, share.PATH)
	}
	return filepath.Join(home, share.PATH, name)
}

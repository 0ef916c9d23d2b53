package helper

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// GetLanguageFromExtension 根据文件扩展名返回对应的语言标识
func GetLanguageFromExtension(ext string) string {
	ext = strings.ToLower(ext)
	langMap := map[string]string{
		".go":         "go",
		".py":         "python",
		".js":         "javascript",
		".ts":         "typescript",
		".jsx":        "jsx",
		".tsx":        "tsx",
		".java":       "java",
		".cpp":        "cpp",
		".c":          "c",
		".h":          "c",
		".hpp":        "cpp",
		".cs":         "csharp",
		".php":        "php",
		".rb":         "ruby",
		".rs":         "rust",
		".swift":      "swift",
		".kt":         "kotlin",
		".scala":      "scala",
		".sh":         "bash",
		".yaml":       "yaml",
		".yml":        "yaml",
		".json":       "json",
		".xml":        "xml",
		".html":       "html",
		".css":        "css",
		".scss":       "scss",
		".less":       "less",
		".sql":        "sql",
		".md":         "markdown",
		".txt":        "text",
		".cfg":        "ini",
		".ini":        "ini",
		".toml":       "toml",
		".dockerfile": "dockerfile",
	}

	if lang, ok := langMap[ext]; ok {
		return lang
	}
	return ""
}

// LanguageOf 根据文件名返回语言标识，未知时返回 "text"
func LanguageOf(name string) string {
	if lang := GetLanguageFromExtension(filepath.Ext(name)); lang != "" {
		return lang
	}
	return "text"
}

// sniffLen 判断二进制内容时检查的前缀长度
const sniffLen = 8000

// IsBinaryContent 判断内容是否为二进制：前缀中含 NUL 字节或不是合法 UTF-8
func IsBinaryContent(data []byte) bool {
	truncated := len(data) > sniffLen
	if truncated {
		data = data[:sniffLen]
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	if utf8.Valid(data) {
		return false
	}
	// 截断可能切在多字节字符中间
	if truncated {
		for i := 1; i < utf8.UTFMax && i < len(data); i++ {
			if utf8.Valid(data[:len(data)-i]) {
				return false
			}
		}
	}
	return true
}

// HasExtension 判断文件名的扩展名是否在列表中，列表为空或含 "*" 时总是返回 true
func HasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	for _, e := range exts {
		e = strings.TrimPrefix(strings.ToLower(e), ".")
		if e == "*" || e == ext {
			return true
		}
	}
	return false
}

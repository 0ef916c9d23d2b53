package pack

import (
	"strings"

	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/project"
)

// Pack 把项目中的文件按树的前序拼接成一个文档
func Pack(p *project.Project, options *PackOptions) (string, error) {
	if p.Root() == nil {
		return "", project.ErrEmptyProject
	}
	return PackEntries(p.Name(), p.Files(), options), nil
}

// PackEntries 打包给定的文件列表
func PackEntries(title string, entries []project.Entry, options *PackOptions) string {
	if options == nil {
		options = DefaultOptions()
	}
	formatter := options.Formatter
	if formatter == nil {
		formatter = GetFormatter("")
	}

	var builder strings.Builder
	builder.WriteString(formatter.Header(title))
	for _, entry := range entries {
		if shouldInclude(entry.Path, options) {
			builder.WriteString(formatter.Format(entry))
		}
	}
	builder.WriteString(formatter.Footer())
	return builder.String()
}

// shouldInclude 判断文件是否应该被包含在打包中
func shouldInclude(path string, options *PackOptions) bool {
	name := helper.BaseName(path)
	if !options.IncludeHidden && helper.IsHidden(name) {
		return false
	}
	if len(options.ExcludeExts) > 0 && helper.HasExtension(name, options.ExcludeExts) {
		return false
	}
	if len(options.IncludeExts) > 0 {
		return helper.HasExtension(name, options.IncludeExts)
	}
	return true
}

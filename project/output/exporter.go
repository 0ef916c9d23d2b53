package output

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/sjzsdu/codeide/project"
	"github.com/sjzsdu/codeide/project/pack"
)

// ErrUnsupportedFormat 无法根据扩展名确定导出格式
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Exporter 把项目写入 w，失败时 w 中不会有任何内容
type Exporter interface {
	Export(w io.Writer) error
	FileExtension() string
}

// Entries 按前序返回所有文件，路径包含根目录名
func Entries(p *project.Project) ([]project.Entry, error) {
	if p.Root() == nil {
		return nil, project.ErrEmptyProject
	}
	return p.Files(), nil
}

// ArchiveName 返回默认的压缩包文件名
func ArchiveName(p *project.Project) string {
	return DefaultFileName(p, ".zip")
}

// DefaultFileName 以根目录名加扩展名作为输出文件名
func DefaultFileName(p *project.Project, ext string) string {
	if len(ext) > 0 && ext[0] != '.' {
		ext = "." + ext
	}
	return p.Name() + ext
}

// ZipExporter 每个文件一个 deflate 条目
type ZipExporter struct {
	project *project.Project
	ModTime time.Time // 零值时使用导出时刻
}

func NewZipExporter(p *project.Project) *ZipExporter {
	return &ZipExporter{project: p}
}

func (e *ZipExporter) FileExtension() string {
	return ".zip"
}

// Export 先在内存中生成完整的压缩包，再一次性写入 w
func (e *ZipExporter) Export(w io.Writer) error {
	entries, err := Entries(e.project)
	if err != nil {
		return err
	}
	modTime := e.ModTime
	if modTime.IsZero() {
		modTime = time.Now()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     entry.Path,
			Method:   zip.Deflate,
			Modified: modTime,
		})
		if err != nil {
			return err
		}
		if _, err := io.WriteString(fw, entry.Content); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}

	_, err = buf.WriteTo(w)
	return err
}

// MarkdownExporter 使用 pack 的格式化器生成单个文档
type MarkdownExporter struct {
	project *project.Project
	options *pack.PackOptions
}

func NewMarkdownExporter(p *project.Project) *MarkdownExporter {
	return &MarkdownExporter{project: p, options: pack.DefaultOptions()}
}

// NewXMLExporter 与 Markdown 导出共用打包流程，只替换格式化器
func NewXMLExporter(p *project.Project) *MarkdownExporter {
	options := pack.DefaultOptions()
	options.Formatter = &pack.XMLFormatter{}
	return &MarkdownExporter{project: p, options: options}
}

func (e *MarkdownExporter) FileExtension() string {
	return e.options.Formatter.FileExtension()
}

func (e *MarkdownExporter) Export(w io.Writer) error {
	doc, err := pack.Pack(e.project, e.options)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, doc)
	return err
}

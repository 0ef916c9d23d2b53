package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sjzsdu/codeide/logging"
	"github.com/sjzsdu/codeide/project"
)

// GetExporter 根据输出文件类型返回对应的导出器
func GetExporter(p *project.Project, outputFile string) (Exporter, error) {
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".zip":
		return NewZipExporter(p), nil
	case ".md":
		return NewMarkdownExporter(p), nil
	case ".pdf":
		return NewPDFExporter(p), nil
	case ".xml":
		return NewXMLExporter(p), nil
	case ".yaml", ".yml":
		return NewYAMLExporter(p), nil
	default:
		return nil, fmt.Errorf("%q: %w", filepath.Ext(outputFile), ErrUnsupportedFormat)
	}
}

// WriteFile 先写入同目录下的临时文件，成功后再重命名为 path
func WriteFile(e Exporter, path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".codeide-export-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = e.Export(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Output 将项目导出为指定格式的文件
func Output(p *project.Project, outputFile string) error {
	log := logging.NewLogger("output")

	exporter, err := GetExporter(p, outputFile)
	if err != nil {
		return err
	}
	if err := WriteFile(exporter, outputFile); err != nil {
		log.WithError(err).WithField("path", outputFile).Warn("export failed")
		return err
	}

	log.WithField("path", outputFile).Info("project exported")
	return nil
}

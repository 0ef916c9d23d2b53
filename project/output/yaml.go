package output

import (
	"bytes"
	"io"

	"github.com/sjzsdu/codeide/project"
	"gopkg.in/yaml.v3"
)

// Manifest YAML 导出的文档结构，多行内容以 | 块的形式写出
type Manifest struct {
	Name  string         `yaml:"name"`
	Files []ManifestFile `yaml:"files"`
}

type ManifestFile struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// YAMLExporter 把整个项目写成一个 YAML 清单
type YAMLExporter struct {
	project *project.Project
}

func NewYAMLExporter(p *project.Project) *YAMLExporter {
	return &YAMLExporter{project: p}
}

func (e *YAMLExporter) FileExtension() string {
	return ".yaml"
}

func (e *YAMLExporter) Export(w io.Writer) error {
	entries, err := Entries(e.project)
	if err != nil {
		return err
	}

	doc := Manifest{Name: e.project.Name(), Files: make([]ManifestFile, 0, len(entries))}
	for _, entry := range entries {
		doc.Files = append(doc.Files, ManifestFile{Path: entry.Path, Content: entry.Content})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

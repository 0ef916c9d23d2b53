package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjzsdu/codeide/project"
)

// PDFExporter 每个文件从新页开始，文件路径作为书签
// 内置字体只覆盖 cp1252，其他字符会被替换
type PDFExporter struct {
	project  *project.Project
	FontSize float64
}

func NewPDFExporter(p *project.Project) *PDFExporter {
	return &PDFExporter{project: p, FontSize: 8}
}

func (e *PDFExporter) FileExtension() string {
	return ".pdf"
}

func (e *PDFExporter) Export(w io.Writer) error {
	entries, err := Entries(e.project)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(e.project.Name(), true)
	pdf.SetCreator("codeide", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(e.project.Name()), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d files", len(entries)), "", 1, "L", false, 0, "")

	lineHeight := e.FontSize * 0.5
	for _, entry := range entries {
		pdf.AddPage()
		pdf.Bookmark(tr(entry.Path), 0, -1)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, tr(entry.Path), "B", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Courier", "", e.FontSize)
		content := strings.ReplaceAll(entry.Content, "\t", "    ")
		pdf.MultiCell(0, lineHeight, tr(content), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

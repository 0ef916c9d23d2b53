package editor

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	// ErrOutOfRange 编辑或读取位置超出文本边界
	ErrOutOfRange = errors.New("position out of range")
	// ErrNothingToUndo 撤销栈为空
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo 重做栈为空
	ErrNothingToRedo = errors.New("nothing to redo")
)

// TextEdit 表示对文本的单个编辑操作
type TextEdit struct {
	// 编辑开始的位置 (行号和列号，均从0开始，列按字节计)
	StartLine   int
	StartColumn int
	// 编辑结束的位置
	EndLine   int
	EndColumn int
	// 替换的新文本
	NewText string
	// 原始文本（用于撤销）
	OldText string
}

// Position 表示文本中的位置
type Position struct {
	Line   int // 从0开始
	Column int // 从0开始
}

// Range 表示文本中的范围
type Range struct {
	Start Position
	End   Position
}

// SearchOptions 搜索选项
type SearchOptions struct {
	CaseSensitive bool // 是否区分大小写
	WholeWord     bool // 是否匹配整个单词
}

// LineEndingType 表示行尾类型
type LineEndingType int

const (
	LineEndingLF   LineEndingType = iota // \n (Unix/Linux/macOS)
	LineEndingCRLF                       // \r\n (Windows)
	LineEndingCR                         // \r (旧版 macOS)
)

func (t LineEndingType) String() string {
	switch t {
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return "LF"
	}
}

// Span 返回编辑覆盖的范围
func (e TextEdit) Span() Range {
	return Range{
		Start: Position{Line: e.StartLine, Column: e.StartColumn},
		End:   Position{Line: e.EndLine, Column: e.EndColumn},
	}
}

func editFor(r Range, text string) TextEdit {
	return TextEdit{
		StartLine:   r.Start.Line,
		StartColumn: r.Start.Column,
		EndLine:     r.End.Line,
		EndColumn:   r.End.Column,
		NewText:     text,
	}
}

// EndOf 返回从 start 开始写入 text 之后的结束位置
func EndOf(start Position, text string) Position {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return Position{Line: start.Line, Column: start.Column + len(text)}
	}
	return Position{Line: start.Line + len(lines) - 1, Column: len(lines[len(lines)-1])}
}

// DocumentRange 返回覆盖整段文本的范围
func DocumentRange(text string) Range {
	return Range{End: EndOf(Position{}, text)}
}

func checkRange(lines []string, r Range) error {
	if r.Start.Line < 0 || r.Start.Line >= len(lines) ||
		r.End.Line < 0 || r.End.Line >= len(lines) ||
		comparePositions(r.Start, r.End) > 0 {
		return fmt.Errorf("[%d,%d] - [%d,%d]: %w",
			r.Start.Line, r.Start.Column, r.End.Line, r.End.Column, ErrOutOfRange)
	}
	if r.Start.Column < 0 || r.Start.Column > len(lines[r.Start.Line]) ||
		r.End.Column < 0 || r.End.Column > len(lines[r.End.Line]) {
		return fmt.Errorf("columns [%d,%d]: %w", r.Start.Column, r.End.Column, ErrOutOfRange)
	}
	return nil
}

// ApplyEdit 对文本应用单个编辑，返回新文本
func ApplyEdit(text string, edit TextEdit) (string, error) {
	lines := strings.Split(text, "\n")
	if err := checkRange(lines, edit.Span()); err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text) + len(edit.NewText))
	for i := 0; i < edit.StartLine; i++ {
		b.WriteString(lines[i])
		b.WriteByte('\n')
	}
	b.WriteString(lines[edit.StartLine][:edit.StartColumn])
	b.WriteString(edit.NewText)
	b.WriteString(lines[edit.EndLine][edit.EndColumn:])
	for i := edit.EndLine + 1; i < len(lines); i++ {
		b.WriteByte('\n')
		b.WriteString(lines[i])
	}
	return b.String(), nil
}

// ApplyEdits 应用多个编辑操作
// 注意：编辑操作按照从后向前的顺序应用，以避免位置变化影响后续编辑
func ApplyEdits(text string, edits []TextEdit) (string, error) {
	sorted := append([]TextEdit(nil), edits...)
	sortEdits(sorted)

	var err error
	for _, edit := range sorted {
		if text, err = ApplyEdit(text, edit); err != nil {
			return "", err
		}
	}
	return text, nil
}

// TextInRange 获取指定范围内的文本
func TextInRange(text string, r Range) (string, error) {
	lines := strings.Split(text, "\n")
	if err := checkRange(lines, r); err != nil {
		return "", err
	}
	if r.Start.Line == r.End.Line {
		return lines[r.Start.Line][r.Start.Column:r.End.Column], nil
	}

	var b strings.Builder
	b.WriteString(lines[r.Start.Line][r.Start.Column:])
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		b.WriteByte('\n')
		b.WriteString(lines[i])
	}
	b.WriteByte('\n')
	b.WriteString(lines[r.End.Line][:r.End.Column])
	return b.String(), nil
}

// LineCount 获取文本的行数，空文本为 1 行
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// Line 获取指定行的内容
func Line(text string, n int) (string, error) {
	lines := strings.Split(text, "\n")
	if n < 0 || n >= len(lines) {
		return "", fmt.Errorf("line %d: %w", n, ErrOutOfRange)
	}
	return lines[n], nil
}

// FindText 在文本中查找所有匹配位置
// 在原始行上匹配，不区分大小写时用 (?i) 折叠，列号始终是原始行的字节偏移
func FindText(text string, search string, options SearchOptions) []Range {
	if search == "" {
		return nil
	}
	expr := regexp.QuoteMeta(search)
	if !options.CaseSensitive {
		expr = "(?i)" + expr
	}
	re := regexp.MustCompile(expr)

	var results []Range
	for lineIdx, line := range strings.Split(text, "\n") {
		startIdx := 0
		for startIdx <= len(line) {
			loc := re.FindStringIndex(line[startIdx:])
			if loc == nil {
				break
			}
			columnIdx, end := startIdx+loc[0], startIdx+loc[1]

			// 如果需要匹配整词，检查边界
			if options.WholeWord && !isWholeWord(line, columnIdx, end) {
				_, size := utf8.DecodeRuneInString(line[columnIdx:])
				startIdx = columnIdx + max(size, 1)
				continue
			}

			results = append(results, Range{
				Start: Position{Line: lineIdx, Column: columnIdx},
				End:   Position{Line: lineIdx, Column: end},
			})
			startIdx = end
		}
	}
	return results
}

// isWholeWord 判断 line[start:end] 两侧是否都不是单词字符
func isWholeWord(line string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(line[:start]); isWordChar(r) {
			return false
		}
	}
	if end < len(line) {
		if r, _ := utf8.DecodeRuneInString(line[end:]); isWordChar(r) {
			return false
		}
	}
	return true
}

// ReplaceAll 替换所有匹配，返回新文本和替换次数
func ReplaceAll(text string, search, replace string, options SearchOptions) (string, int, error) {
	ranges := FindText(text, search, options)
	if len(ranges) == 0 {
		return text, 0, nil
	}
	edits := make([]TextEdit, len(ranges))
	for i, r := range ranges {
		edits[i] = editFor(r, replace)
	}
	out, err := ApplyEdits(text, edits)
	if err != nil {
		return "", 0, err
	}
	return out, len(ranges), nil
}

// DetectLineEnding 检测文本的行尾类型
func DetectLineEnding(text string) LineEndingType {
	if strings.Contains(text, "\r\n") {
		return LineEndingCRLF
	} else if strings.Contains(text, "\r") {
		return LineEndingCR
	}
	return LineEndingLF
}

// ConvertLineEndings 把文本的行尾统一转换为指定类型
func ConvertLineEndings(text string, endingType LineEndingType) string {
	// 先标准化为LF
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	switch endingType {
	case LineEndingCRLF:
		return strings.ReplaceAll(text, "\n", "\r\n")
	case LineEndingCR:
		return strings.ReplaceAll(text, "\n", "\r")
	default:
		return text
	}
}

// ChangedLines 返回 newText 相对 oldText 有变化的行范围
func ChangedLines(oldText, newText string) []Range {
	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	var changes []Range
	for i := 0; i < min(len(oldLines), len(newLines)); i++ {
		if oldLines[i] != newLines[i] {
			changes = append(changes, Range{
				Start: Position{Line: i},
				End:   Position{Line: i, Column: len(newLines[i])},
			})
		}
	}
	// 新文本有额外的行
	if len(oldLines) < len(newLines) {
		changes = append(changes, Range{
			Start: Position{Line: len(oldLines)},
			End:   Position{Line: len(newLines) - 1, Column: len(newLines[len(newLines)-1])},
		})
	}
	// 原文本有被删除的行
	if len(oldLines) > len(newLines) {
		changes = append(changes, Range{
			Start: Position{Line: len(newLines)},
			End:   Position{Line: len(newLines)},
		})
	}
	return changes
}

// sortEdits 对编辑操作进行排序，以便从后向前应用
func sortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		return comparePositions(edits[i].Span().Start, edits[j].Span().Start) > 0
	})
}

// comparePositions 比较两个位置，返回:
// 1: a在b之后
// 0: 位置相同
// -1: a在b之前
func comparePositions(a, b Position) int {
	if a.Line != b.Line {
		if a.Line > b.Line {
			return 1
		}
		return -1
	}
	if a.Column > b.Column {
		return 1
	}
	if a.Column < b.Column {
		return -1
	}
	return 0
}

// isWordChar 检查字符是否是单词字符
func isWordChar(char rune) bool {
	return (char >= 'a' && char <= 'z') ||
		(char >= 'A' && char <= 'Z') ||
		(char >= '0' && char <= '9') ||
		char == '_'
}

package editor

import (
	"fmt"
	"strings"

	"github.com/sjzsdu/codeide/project/registry"
)

// Backend 会话读写已打开文件所依赖的接口，由 workspace 实现
type Backend interface {
	Entry(path string) (registry.OpenFile, bool)
	// Update 仅当内容仍为 expected 时写入，否则返回 registry.ErrStaleContent
	Update(path string, expected string, content string) error
	Save(path string, content string) error
}

// Session 表示一个编辑会话，包含编辑历史和撤销/重做功能
// 会话不持有内容副本，每次编辑都经由 Backend.Update 写回，修改状态始终由登记表计算
// 写回时比较读取到的内容，其他调用方在此期间的修改不会被覆盖，编辑返回 ErrStaleContent 且不进入历史
type Session struct {
	backend   Backend
	path      string
	undoStack []TextEdit
	redoStack []TextEdit
}

// NewSession 为已打开的文件创建编辑会话
func NewSession(backend Backend, path string) (*Session, error) {
	entry, ok := backend.Entry(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, registry.ErrUnknownPath)
	}
	return &Session{backend: backend, path: entry.Path}, nil
}

func (s *Session) Path() string {
	return s.path
}

// Content 返回当前缓冲区内容
func (s *Session) Content() string {
	entry, _ := s.backend.Entry(s.path)
	return entry.Content
}

// Modified 当前内容是否与上次保存的内容不同
func (s *Session) Modified() bool {
	entry, _ := s.backend.Entry(s.path)
	return entry.Modified
}

// SetContent 用 text 替换整个缓冲区，作为一次可撤销的编辑
func (s *Session) SetContent(text string) error {
	current := s.Content()
	if current == text {
		return nil
	}
	return s.ApplyEdit(editFor(DocumentRange(current), text))
}

// ApplyEdit 应用编辑并记录历史
func (s *Session) ApplyEdit(edit TextEdit) error {
	current := s.Content()
	old, err := TextInRange(current, edit.Span())
	if err != nil {
		return err
	}
	next, err := ApplyEdit(current, edit)
	if err != nil {
		return err
	}
	if err := s.backend.Update(s.path, current, next); err != nil {
		return err
	}

	edit.OldText = old
	s.undoStack = append(s.undoStack, edit)
	s.redoStack = nil
	return nil
}

// InsertText 在指定位置插入文本
func (s *Session) InsertText(line, column int, text string) error {
	at := Position{Line: line, Column: column}
	return s.ApplyEdit(editFor(Range{Start: at, End: at}, text))
}

// ReplaceText 替换指定范围的文本
func (s *Session) ReplaceText(r Range, text string) error {
	return s.ApplyEdit(editFor(r, text))
}

// DeleteText 删除指定范围的文本
func (s *Session) DeleteText(r Range) error {
	return s.ApplyEdit(editFor(r, ""))
}

// Append 在末尾追加文本
func (s *Session) Append(text string) error {
	end := DocumentRange(s.Content()).End
	return s.ApplyEdit(editFor(Range{Start: end, End: end}, text))
}

// LineCount 获取行数
func (s *Session) LineCount() int {
	return LineCount(s.Content())
}

// Line 获取指定行的内容
func (s *Session) Line(n int) (string, error) {
	return Line(s.Content(), n)
}

// FindText 在缓冲区中查找文本
func (s *Session) FindText(search string, options SearchOptions) []Range {
	return FindText(s.Content(), search, options)
}

// ReplaceAll 替换所有匹配，整体作为一次编辑
func (s *Session) ReplaceAll(search, replace string, options SearchOptions) (int, error) {
	next, n, err := ReplaceAll(s.Content(), search, replace, options)
	if err != nil || n == 0 {
		return 0, err
	}
	return n, s.SetContent(next)
}

// BatchEdit 对指定范围的每一行应用变换函数，整体作为一次编辑
func (s *Session) BatchEdit(startLine, endLine int, transform func(string) string) error {
	lines := strings.Split(s.Content(), "\n")
	if startLine < 0 || endLine >= len(lines) || startLine > endLine {
		return fmt.Errorf("lines %d-%d: %w", startLine, endLine, ErrOutOfRange)
	}
	for i := startLine; i <= endLine; i++ {
		lines[i] = transform(lines[i])
	}
	return s.SetContent(strings.Join(lines, "\n"))
}

// SetLineEndings 统一行尾类型
func (s *Session) SetLineEndings(endingType LineEndingType) error {
	return s.SetContent(ConvertLineEndings(s.Content(), endingType))
}

// Changes 返回相对上次保存有变化的行
func (s *Session) Changes() []Range {
	entry, _ := s.backend.Entry(s.path)
	return ChangedLines(entry.Original, entry.Content)
}

func (s *Session) CanUndo() bool { return len(s.undoStack) > 0 }
func (s *Session) CanRedo() bool { return len(s.redoStack) > 0 }

// Undo 撤销最后一次编辑
func (s *Session) Undo() error {
	if len(s.undoStack) == 0 {
		return ErrNothingToUndo
	}
	last := s.undoStack[len(s.undoStack)-1]

	// 反向编辑覆盖写入的新文本，恢复原始文本
	start := last.Span().Start
	inverse := editFor(Range{Start: start, End: EndOf(start, last.NewText)}, last.OldText)
	current := s.Content()
	next, err := ApplyEdit(current, inverse)
	if err != nil {
		return err
	}
	if err := s.backend.Update(s.path, current, next); err != nil {
		return err
	}

	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = append(s.redoStack, last)
	return nil
}

// Redo 重做上次撤销的编辑
func (s *Session) Redo() error {
	if len(s.redoStack) == 0 {
		return ErrNothingToRedo
	}
	last := s.redoStack[len(s.redoStack)-1]

	current := s.Content()
	next, err := ApplyEdit(current, last)
	if err != nil {
		return err
	}
	if err := s.backend.Update(s.path, current, next); err != nil {
		return err
	}

	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = append(s.undoStack, last)
	return nil
}

// Save 把当前内容保存到项目树
func (s *Session) Save() error {
	return s.backend.Save(s.path, s.Content())
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/sjzsdu/codeide/helper"
	"github.com/sjzsdu/codeide/helper/renders"
	"github.com/sjzsdu/codeide/lang"
	"github.com/sjzsdu/codeide/project/editor"
	"github.com/sjzsdu/codeide/project/search"
	"github.com/sjzsdu/codeide/project/tree"
	"github.com/sjzsdu/codeide/workspace"
)

const shellSuggestLimit = 20

var errUsage = errors.New("invalid arguments")

type shellCommand struct {
	usage string
	desc  string
	run   func(s *shell, args string) error
}

// shell 会话命令解释器，只依赖输出流，终端交互由 go-prompt 负责
type shell struct {
	ctx      context.Context
	ws       *workspace.Workspace
	out      io.Writer
	sessions map[string]*editor.Session
	// 外部编辑器和 Markdown 预览，测试中可替换
	editFn   func(name, content string) (string, error)
	renderFn func(name, content string) (string, error)
	quit     bool
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"help":    {"help", "Show available commands", (*shell).cmdHelp},
		"open":    {"open <path>", "Open a file in a new tab", (*shell).cmdOpen},
		"close":   {"close [path]", "Close a tab", (*shell).cmdClose},
		"tabs":    {"tabs", "List open tabs", (*shell).cmdTabs},
		"switch":  {"switch <path>", "Switch to an open tab", (*shell).cmdSwitch},
		"cat":     {"cat [path]", "Print file content", (*shell).cmdCat},
		"preview": {"preview [path]", "Render file content in the terminal", (*shell).cmdPreview},
		"edit":    {"edit [path]", "Edit the file in an external editor", (*shell).cmdEdit},
		"append":  {"append <text>", "Append text to the active file", (*shell).cmdAppend},
		"insert":  {"insert <line> <col> <text>", "Insert text at a position", (*shell).cmdInsert},
		"delete":  {"delete <line>", "Delete a line", (*shell).cmdDelete},
		"replace": {"replace <old> <new>", "Replace all occurrences in the active file", (*shell).cmdReplace},
		"undo":    {"undo", "Undo the last edit", (*shell).cmdUndo},
		"redo":    {"redo", "Redo the last undone edit", (*shell).cmdRedo},
		"diff":    {"diff", "Show lines changed since the last save", (*shell).cmdDiff},
		"eol":     {"eol [lf|crlf|cr]", "Show or convert line endings of the active file", (*shell).cmdEOL},
		"save":    {"save [path|all]", "Save a file or all modified files", (*shell).cmdSave},
		"files":   {"files [term]", "Find files by path", (*shell).cmdFiles},
		"grep":    {"grep <query>", "Search file contents", (*shell).cmdGrep},
		"tree":    {"tree", "Show the project tree", (*shell).cmdTree},
		"export":  {"export [file]", "Export the project", (*shell).cmdExport},
		"quit":    {"quit", "Leave the session (quit! discards unsaved changes)", (*shell).cmdQuit},
	}
}

func newShell(ctx context.Context, ws *workspace.Workspace, out io.Writer) *shell {
	return &shell{
		ctx:      ctx,
		ws:       ws,
		out:      out,
		sessions: make(map[string]*editor.Session),
		editFn:   helper.EditInEditor,
		renderFn: func(name, content string) (string, error) {
			r, err := renders.NewMarkdownRenderer(0)
			if err != nil {
				return "", err
			}
			return r.RenderFile(name, content)
		},
	}
}

// execute 执行一行输入，错误直接输出
func (s *shell) execute(line string) {
	if err := s.run(line); err != nil {
		fmt.Fprintf(s.out, "%s: %v\n", lang.T("Error"), err)
	}
}

func (s *shell) run(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	name, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	switch name {
	case "exit":
		name = "quit"
	case "quit!", "exit!":
		s.quit = true
		return nil
	}
	c, ok := shellCommands[name]
	if !ok {
		return fmt.Errorf("%s: %s", lang.T("Unknown command"), name)
	}
	err := c.run(s, args)
	if errors.Is(err, errUsage) {
		return fmt.Errorf("%s: %s", lang.T("Usage"), c.usage)
	}
	return err
}

// session 返回文件的编辑会话，path 为空时使用当前标签页
func (s *shell) session(path string) (*editor.Session, error) {
	if path == "" {
		active, ok := s.ws.Active()
		if !ok {
			return nil, errors.New(lang.T("No active file"))
		}
		path = active.Path
	}
	path = projectPath(path)
	if sess, ok := s.sessions[path]; ok {
		return sess, nil
	}
	sess, err := s.ws.Session(path)
	if err != nil {
		return nil, err
	}
	s.sessions[path] = sess
	return sess, nil
}

func (s *shell) completer(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	word := d.GetWordBeforeCursor()
	if !strings.Contains(before, " ") {
		suggests := make([]prompt.Suggest, 0, len(shellCommands))
		for name, c := range shellCommands {
			suggests = append(suggests, prompt.Suggest{Text: name, Description: lang.T(c.desc)})
		}
		sort.Slice(suggests, func(i, j int) bool { return suggests[i].Text < suggests[j].Text })
		return prompt.FilterHasPrefix(suggests, word, true)
	}

	paths, err := s.ws.Search(word, shellSuggestLimit)
	if err != nil {
		return nil
	}
	suggests := make([]prompt.Suggest, 0, len(paths))
	for _, p := range paths {
		suggests = append(suggests, prompt.Suggest{Text: p})
	}
	return suggests
}

func (s *shell) cmdHelp(string) error {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := shellCommands[name]
		fmt.Fprintf(s.out, "  %-28s %s\n", c.usage, lang.T(c.desc))
	}
	return nil
}

func (s *shell) cmdOpen(args string) error {
	if args == "" {
		return errUsage
	}
	entry, err := s.ws.Open(projectPath(args))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s (%d %s)\n", lang.T("Opened"), entry.Path, editor.LineCount(entry.Content), lang.T("lines"))
	return nil
}

func (s *shell) cmdClose(args string) error {
	path := projectPath(args)
	if path == "" {
		active, ok := s.ws.Active()
		if !ok {
			return errors.New(lang.T("No active file"))
		}
		path = active.Path
	}
	s.ws.Close(path)
	return s.cmdTabs("")
}

func (s *shell) cmdTabs(string) error {
	tabs := s.ws.Tabs()
	if len(tabs) == 0 {
		fmt.Fprintln(s.out, lang.T("No open files"))
		return nil
	}
	for _, t := range tabs {
		marker := "  "
		if t.Active {
			marker = "> "
		}
		suffix := ""
		if t.Modified {
			suffix = " [+]"
		}
		fmt.Fprintf(s.out, "%s%s%s\n", marker, t.Path, suffix)
	}
	return nil
}

func (s *shell) cmdSwitch(args string) error {
	if args == "" {
		return errUsage
	}
	if err := s.ws.Activate(projectPath(args)); err != nil {
		return err
	}
	return s.cmdTabs("")
}

func (s *shell) read(path string) (string, string, error) {
	if path == "" {
		active, ok := s.ws.Active()
		if !ok {
			return "", "", errors.New(lang.T("No active file"))
		}
		return active.Path, active.Content, nil
	}
	path = projectPath(path)
	content, err := s.ws.Read(path)
	return path, content, err
}

func (s *shell) cmdCat(args string) error {
	_, content, err := s.read(args)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(s.out)
	}
	return nil
}

func (s *shell) cmdPreview(args string) error {
	path, content, err := s.read(args)
	if err != nil {
		return err
	}
	rendered, err := s.renderFn(helper.BaseName(path), content)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, rendered)
	return nil
}

func (s *shell) cmdEdit(args string) error {
	if args != "" {
		if _, err := s.ws.Open(projectPath(args)); err != nil {
			return err
		}
	}
	sess, err := s.session(args)
	if err != nil {
		return err
	}
	content, err := s.editFn(helper.BaseName(sess.Path()), sess.Content())
	if err != nil {
		return err
	}
	return sess.SetContent(content)
}

func (s *shell) cmdAppend(args string) error {
	if args == "" {
		return errUsage
	}
	sess, err := s.session("")
	if err != nil {
		return err
	}
	return sess.Append(unescape(args))
}

// cmdInsert 行号和列号从 1 开始
func (s *shell) cmdInsert(args string) error {
	parts := strings.SplitN(args, " ", 3)
	if len(parts) < 3 {
		return errUsage
	}
	line, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || line < 1 || col < 1 {
		return errUsage
	}
	sess, err := s.session("")
	if err != nil {
		return err
	}
	return sess.InsertText(line-1, col-1, unescape(parts[2]))
}

func (s *shell) cmdDelete(args string) error {
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		return errUsage
	}
	sess, err := s.session("")
	if err != nil {
		return err
	}
	total := sess.LineCount()
	if n > total {
		return fmt.Errorf("line %d: %w", n, editor.ErrOutOfRange)
	}

	// 删除行及其换行符；最后一行连同前一个换行符一起删除
	r := editor.Range{Start: editor.Position{Line: n - 1}, End: editor.Position{Line: n}}
	if n == total {
		last, _ := sess.Line(n - 1)
		r.End = editor.Position{Line: n - 1, Column: len(last)}
		if n > 1 {
			prev, _ := sess.Line(n - 2)
			r.Start = editor.Position{Line: n - 2, Column: len(prev)}
		}
	}
	return sess.DeleteText(r)
}

func (s *shell) cmdReplace(args string) error {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return errUsage
	}
	sess, err := s.session("")
	if err != nil {
		return err
	}
	n, err := sess.ReplaceAll(unescape(parts[0]), unescape(parts[1]), editor.SearchOptions{CaseSensitive: true})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: %d\n", lang.T("Replaced"), n)
	return nil
}

func (s *shell) cmdUndo(string) error {
	sess, err := s.session("")
	if err != nil {
		return err
	}
	return sess.Undo()
}

func (s *shell) cmdRedo(string) error {
	sess, err := s.session("")
	if err != nil {
		return err
	}
	return sess.Redo()
}

func (s *shell) cmdDiff(string) error {
	sess, err := s.session("")
	if err != nil {
		return err
	}
	changes := sess.Changes()
	if len(changes) == 0 {
		fmt.Fprintln(s.out, lang.T("No changes"))
		return nil
	}
	for _, r := range changes {
		if r.Start.Line == r.End.Line {
			fmt.Fprintf(s.out, "%s %d\n", lang.T("line"), r.Start.Line+1)
		} else {
			fmt.Fprintf(s.out, "%s %d-%d\n", lang.T("lines"), r.Start.Line+1, r.End.Line+1)
		}
	}
	return nil
}

var lineEndings = map[string]editor.LineEndingType{
	"lf":   editor.LineEndingLF,
	"crlf": editor.LineEndingCRLF,
	"cr":   editor.LineEndingCR,
}

// cmdEOL 不带参数时显示当前行尾类型，否则转换为指定类型
func (s *shell) cmdEOL(args string) error {
	sess, err := s.session("")
	if err != nil {
		return err
	}
	if args == "" {
		fmt.Fprintln(s.out, editor.DetectLineEnding(sess.Content()))
		return nil
	}
	ending, ok := lineEndings[strings.ToLower(args)]
	if !ok {
		return errUsage
	}
	return sess.SetLineEndings(ending)
}

func (s *shell) cmdSave(args string) error {
	if args == "all" {
		saved, err := s.ws.SaveAll()
		for _, p := range saved {
			fmt.Fprintf(s.out, "%s %s\n", lang.T("Saved"), p)
		}
		return err
	}
	sess, err := s.session(args)
	if err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s\n", lang.T("Saved"), sess.Path())
	return nil
}

func (s *shell) cmdFiles(args string) error {
	paths, err := s.ws.Search(args, shellSuggestLimit)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(s.out, p)
	}
	return nil
}

func (s *shell) cmdGrep(args string) error {
	if args == "" {
		return errUsage
	}
	opts := search.DefaultSearchOptions()
	opts.Query = args
	matches, err := s.ws.Grep(s.ctx, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, search.FormatSearchResults(matches))
	return nil
}

func (s *shell) cmdTree(string) error {
	out, err := s.ws.Tree(tree.DefaultOptions())
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, out)
	return nil
}

func (s *shell) cmdExport(args string) error {
	path, err := s.ws.ExportFile(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: %s\n", lang.T("Exported to"), path)
	return nil
}

func (s *shell) cmdQuit(string) error {
	if dirty := s.ws.Dirty(); len(dirty) > 0 {
		return fmt.Errorf("%s: %s (%s)", lang.T("Unsaved files"), strings.Join(dirty, ", "), lang.T("use quit! to discard"))
	}
	s.quit = true
	return nil
}

// projectPath 把输入的路径转换为项目路径，本地路径分隔符统一为 /
func projectPath(arg string) string {
	return helper.StandardizePath(filepath.ToSlash(arg))
}

var escapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`)

// unescape 支持在单行输入中写 \n 和 \t
func unescape(text string) string {
	return escapes.Replace(text)
}

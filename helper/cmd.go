package helper

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandExists checks if a command exists in the system PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// EditorCommand 返回外部编辑器命令，优先使用 $VISUAL / $EDITOR，默认 vim
func EditorCommand() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return "vim"
}

// EditInEditor 把 initial 写入临时文件，用外部编辑器打开，返回编辑后的内容
// name 只用于临时文件的扩展名，便于编辑器识别语法
func EditInEditor(name, initial string) (string, error) {
	f, err := os.CreateTemp("", "codeide-*"+filepath.Ext(name))
	if err != nil {
		return "", fmt.Errorf("创建临时文件失败: %w", err)
	}
	tempFile := f.Name()
	defer os.Remove(tempFile)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	fields := strings.Fields(EditorCommand())
	if !CommandExists(fields[0]) {
		return "", fmt.Errorf("editor %s not found, set $EDITOR", fields[0])
	}
	cmd := exec.Command(fields[0], append(fields[1:], tempFile)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running %s: %w", fields[0], err)
	}

	content, err := os.ReadFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return string(content), nil
}

// PromptYesNo 询问是/否，空输入返回默认值
func PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	return promptYesNo(os.Stdin, os.Stdout, prompt, defaultYes)
}

func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	fmt.Fprint(out, prompt)
	scanner := bufio.NewScanner(in)
	// Support \n, \r\n and lone \r
	scanner.Split(scanAnyLine)
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return defaultYes, err
			}
			return defaultYes, io.EOF
		}
		ans := strings.TrimSpace(scanner.Text())
		if ans == "" {
			return defaultYes, nil
		}
		switch normalizeYN(ans) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprint(out, "Please enter y or n: ")
		}
	}
}

// scanAnyLine is like bufio.ScanLines but also treats a lone '\r' as a line ending.
func scanAnyLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		if i > 0 && data[i-1] == '\r' {
			return i + 1, data[:i-1], nil
		}
		return i + 1, data[:i], nil
	}
	if i := bytes.IndexByte(data, '\r'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// normalizeYN normalizes full-width and common Chinese yes/no inputs.
func normalizeYN(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	rs := []rune(s)
	for i, r := range rs {
		if r >= 0xFF01 && r <= 0xFF5E {
			rs[i] = r - 0xFEE0
		}
	}
	s = string(rs)
	switch s {
	case "是", "好", "确定":
		return "yes"
	case "否", "不":
		return "no"
	}
	return s
}

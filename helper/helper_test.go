package helper

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"proj/a.txt", []string{"proj", "a.txt"}},
		{"/proj//sub/b.txt/", []string{"proj", "sub", "b.txt"}},
		{`proj\sub\b.txt`, []string{`proj\sub\b.txt`}},
		{`proj/a\b.txt`, []string{"proj", `a\b.txt`}},
		{"", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitPath(tt.in), tt.in)
	}
	assert.Equal(t, "proj/sub/b.txt", StandardizePath("//proj/sub//b.txt"))
	assert.Equal(t, "proj/sub", JoinPath("proj/", "/sub"))
	assert.Equal(t, "b.txt", BaseName("proj/sub/b.txt"))
	assert.Equal(t, "", BaseName("/"))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden(".git"))
	assert.False(t, IsHidden("src"))
	assert.False(t, IsHidden(".."))
}

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, IsBinaryContent([]byte("hello 世界\n")))
	assert.True(t, IsBinaryContent([]byte{'a', 0, 'b'}))
	assert.True(t, IsBinaryContent([]byte{0xff, 0xfe, 0xfd, 'a'}))

	// 截断点落在多字节字符中间时不应误判
	long := strings.Repeat("a", sniffLen-1) + "世界"
	assert.False(t, IsBinaryContent([]byte(long)))
}

func TestLanguageOf(t *testing.T) {
	assert.Equal(t, "go", LanguageOf("main.go"))
	assert.Equal(t, "markdown", LanguageOf("README.MD"))
	assert.Equal(t, "text", LanguageOf("LICENSE"))
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("a.go", nil))
	assert.True(t, HasExtension("a.go", []string{"*"}))
	assert.True(t, HasExtension("a.GO", []string{".go"}))
	assert.False(t, HasExtension("a.md", []string{"go", "js"}))
}

func TestPromptYesNo(t *testing.T) {
	var out bytes.Buffer
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"no\n", true, false},
		{"\n", true, true},
		{"是\r", false, true},
		{"maybe\nn\n", true, false},
	}
	for _, tt := range tests {
		got, err := promptYesNo(strings.NewReader(tt.input), &out, "? ", tt.def)
		assert.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("import", 4, WithOutput(&out), WithWidth(4))
	p.Update(2, 4)
	assert.Contains(t, out.String(), "50.0% (2/4)")
	p.Finish()
	assert.Contains(t, out.String(), "(4/4)")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestEditInEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "codeide-no-such-editor")
	_, err := EditInEditor("a.go", "x")
	assert.ErrorContains(t, err, "codeide-no-such-editor")

	if !CommandExists("true") {
		t.Skip("true not available")
	}
	t.Setenv("EDITOR", "true")
	out, err := EditInEditor("a.go", "package a\n")
	assert.NoError(t, err)
	assert.Equal(t, "package a\n", out)
}

package markdown

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTheme = Theme{
	Text:    "#cdd6f4",
	Faint:   "#7f849c",
	Heading: "#f5c2e7",
	Border:  "#45475a",
	Link:    "#89b4fa",
	Accent:  "#cba6f7",
	CodeBg:  "#313244",
	Syntax:  "dracula",
}

func plain(src string, width int) string {
	return ansi.Strip(Render(src, Options{Width: width, Theme: testTheme, Profile: termenv.Ascii}))
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render("", Options{}))
}

func TestRender_Blocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "heading", src: "# Title\n\nBody text.", want: []string{"Title", "Body text."}},
		{name: "soft breaks reflow", src: "one\ntwo\nthree", want: []string{"one two three"}},
		{name: "bullets", src: "- alpha\n- beta", want: []string{"• alpha", "• beta"}},
		{name: "ordered", src: "3. first\n4. second", want: []string{"3. first", "4. second"}},
		{name: "blockquote", src: "> quoted", want: []string{"│ quoted"}},
		{name: "link", src: "[site](https://example.com)", want: []string{"site (https://example.com)"}},
		{name: "image", src: "![diagram](d.png)", want: []string{"[diagram] (d.png)"}},
		{name: "code span", src: "run `go test` now", want: []string{"run go test now"}},
		{name: "task list", src: "- [x] done\n- [ ] todo", want: []string{"[x] done", "[ ] todo"}},
		{name: "table", src: "| a | b |\n|---|--:|\n| 1 | 22 |", want: []string{"a   b", "1  22"}},
		{name: "html stripped", src: "<div>inner</div>", want: []string{"inner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := plain(tt.src, 80)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRender_WrapsToWidth(t *testing.T) {
	src := strings.Repeat("lorem ipsum dolor sit amet ", 10)
	out := plain(src, 24)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), 24, line)
	}
}

func TestRender_FencedCodeHeader(t *testing.T) {
	src := "Intro\n\n```\nplain block\n```\n\n```go\nfunc main() {}\n```\n"
	out := plain(src, 80)

	assert.Contains(t, out, "╭─ text [1]")
	assert.Contains(t, out, "│ plain block")
	assert.Contains(t, out, "╭─ go [2]")
	assert.Contains(t, out, "│ func main() {}")
	assert.Contains(t, out, "╰─")
}

func TestRender_HighlightsWithColorProfile(t *testing.T) {
	src := "```go\npackage main\n```"
	out := Render(src, Options{Width: 80, Theme: testTheme, Profile: termenv.TrueColor})

	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, ansi.Strip(out), "package main")
}

func TestRender_UnknownLanguageIsPlain(t *testing.T) {
	src := "```nosuchlang\nx := 1\n```"
	out := plain(src, 80)

	assert.Contains(t, out, "╭─ nosuchlang [1]")
	assert.Contains(t, out, "│ x := 1")
}

func TestCodeBlocks(t *testing.T) {
	src := "# Post\n\n```sh\necho hi\n```\n\ntext\n\n```\nline one\nline two\n```\n\n    indented is not fenced\n"

	blocks := CodeBlocks(src)
	require.Len(t, blocks, 2)
	assert.Equal(t, CodeBlock{Language: "sh", Code: "echo hi"}, blocks[0])
	assert.Equal(t, CodeBlock{Language: DefaultLanguage, Code: "line one\nline two"}, blocks[1])
}

func TestCodeBlocks_None(t *testing.T) {
	assert.Empty(t, CodeBlocks("just prose"))
}

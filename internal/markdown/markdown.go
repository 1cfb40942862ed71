// Package markdown renders article Markdown as styled terminal text.
//
// The renderer walks goldmark's AST directly instead of implementing a
// goldmark renderer: paragraph content is accumulated and word-wrapped as a
// unit when the block closes, which streaming node renderers do not allow.
// Soft line breaks become spaces so hard-wrapped source reflows at any
// width.
package markdown

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultLanguage labels fenced blocks that declare no language.
const DefaultLanguage = "text"

const wrapBreakpoints = " ,.;-+|"

// Theme is the set of colors the renderer needs.
type Theme struct {
	Text    lipgloss.Color
	Faint   lipgloss.Color
	Heading lipgloss.Color
	Border  lipgloss.Color
	Link    lipgloss.Color
	Accent  lipgloss.Color
	CodeBg  lipgloss.Color
	// Syntax is the chroma style name for fenced code.
	Syntax string
}

// Options control a single Render call.
type Options struct {
	Width   int
	Theme   Theme
	Profile termenv.Profile
}

var (
	parser     goldmark.Markdown
	parserOnce sync.Once
)

func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parser = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
			),
		)
	})
	return parser
}

func parse(source []byte) ast.Node {
	return getParser().Parser().Parse(text.NewReader(source))
}

// Render parses src and renders it for a terminal. Width defaults to 80.
func Render(src string, opts Options) string {
	if src == "" {
		return ""
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	source := []byte(src)

	// The profile is forced so output does not depend on whether the
	// process happens to have a TTY.
	lip := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(opts.Profile))
	lip.SetColorProfile(opts.Profile)

	r := &renderer{
		source:  source,
		theme:   opts.Theme,
		width:   opts.Width,
		profile: opts.Profile,
		lip:     lip,
	}
	ast.Walk(parse(source), r.walk)

	return strings.TrimRight(r.out.String(), "\n")
}

// CodeBlock is a fenced code block from an article.
type CodeBlock struct {
	Language string
	Code     string
}

// CodeBlocks returns the fenced code blocks of src in document order with
// their trailing newline trimmed. Language is DefaultLanguage when the
// fence has none.
func CodeBlocks(src string) []CodeBlock {
	source := []byte(src)
	var blocks []CodeBlock
	_ = ast.Walk(parse(source), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		blocks = append(blocks, CodeBlock{
			Language: language(fenced, source),
			Code:     strings.TrimSuffix(linesOf(fenced, source), "\n"),
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func language(n *ast.FencedCodeBlock, source []byte) string {
	if lang := strings.TrimSpace(string(n.Language(source))); lang != "" {
		return lang
	}
	return DefaultLanguage
}

func linesOf(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

type renderer struct {
	source  []byte
	theme   Theme
	width   int
	profile termenv.Profile
	lip     *lipgloss.Renderer

	out    strings.Builder
	inline strings.Builder

	prefixes    []prefix
	linePrefix  string
	prefixWidth int
	// pendingBullet replaces linePrefix for the next emitted line only.
	pendingBullet string

	bold, italic, strike int

	lists []listState

	trailingNewlines int
	codeBlocks       int
}

type prefix struct {
	text  string
	width int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (r *renderer) style() lipgloss.Style {
	return r.lip.NewStyle()
}

func (r *renderer) contentWidth() int {
	if w := r.width - r.prefixWidth; w >= 10 {
		return w
	}
	return 10
}

func (r *renderer) pushPrefix(s string, width int) {
	r.prefixes = append(r.prefixes, prefix{text: s, width: width})
	r.linePrefix += s
	r.prefixWidth += width
}

func (r *renderer) popPrefix() {
	if len(r.prefixes) == 0 {
		return
	}
	top := r.prefixes[len(r.prefixes)-1]
	r.prefixes = r.prefixes[:len(r.prefixes)-1]
	r.linePrefix = r.linePrefix[:len(r.linePrefix)-len(top.text)]
	r.prefixWidth -= top.width
}

func (r *renderer) inTightList() bool {
	return len(r.lists) > 0 && r.lists[len(r.lists)-1].tight
}

func (r *renderer) write(s string) {
	if s == "" {
		return
	}
	r.out.WriteString(s)

	trailing := len(s) - len(strings.TrimRight(s, "\n"))
	if trailing == len(s) {
		r.trailingNewlines += trailing
	} else {
		r.trailingNewlines = trailing
	}
}

func (r *renderer) newline() {
	if r.trailingNewlines < 1 {
		r.write("\n")
	}
}

func (r *renderer) blankLine() {
	if r.out.Len() == 0 {
		return
	}
	for r.trailingNewlines < 2 {
		r.write("\n")
	}
}

func (r *renderer) nextPrefix() string {
	if r.pendingBullet != "" {
		b := r.pendingBullet
		r.pendingBullet = ""
		return b
	}
	return r.linePrefix
}

func (r *renderer) prefixLines(content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(r.nextPrefix())
		} else {
			b.WriteString(r.linePrefix)
		}
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (r *renderer) flushInline() string {
	content := r.inline.String()
	r.inline.Reset()
	if content == "" {
		return ""
	}
	return r.prefixLines(ansi.Wrap(content, r.contentWidth(), wrapBreakpoints))
}

func (r *renderer) styled(s string) string {
	st := r.style().Foreground(r.theme.Text)
	if r.bold > 0 {
		st = st.Bold(true)
	}
	if r.italic > 0 {
		st = st.Italic(true)
	}
	if r.strike > 0 {
		st = st.Strikethrough(true)
	}
	return st.Render(s)
}

func (r *renderer) faint(s string) string {
	return r.style().Foreground(r.theme.Faint).Render(s)
}

// inlineOf renders node's children into a string without disturbing the
// paragraph being accumulated.
func (r *renderer) inlineOf(node ast.Node) string {
	saved := r.inline.String()
	bold, italic, strike := r.bold, r.italic, r.strike

	r.inline.Reset()
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		_ = ast.Walk(c, r.walk)
	}
	result := r.inline.String()

	r.inline.Reset()
	r.inline.WriteString(saved)
	r.bold, r.italic, r.strike = bold, italic, strike
	return result
}

func (r *renderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindDocument:

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			r.inline.Reset()
			break
		}
		if flushed := r.flushInline(); flushed != "" {
			r.write(flushed)
			r.newline()
			if !r.inTightList() {
				r.blankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			r.inline.Reset()
		} else {
			r.heading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			r.fencedCode(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			r.indentedCode(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			r.pushPrefix(r.style().Foreground(r.theme.Border).Render("│ "), 2)
		} else {
			r.popPrefix()
			r.blankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			start := 0
			if list.IsOrdered() {
				start = list.Start
			}
			r.lists = append(r.lists, listState{ordered: list.IsOrdered(), counter: start, tight: list.IsTight})
		} else {
			r.lists = r.lists[:len(r.lists)-1]
			if !r.inTightList() {
				r.blankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			r.enterListItem()
		} else {
			r.popPrefix()
			if r.inTightList() {
				r.newline()
			} else {
				r.blankLine()
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := r.style().Foreground(r.theme.Border).Render(strings.Repeat("─", r.contentWidth()))
			r.blankLine()
			r.write(r.prefixLines(rule))
			r.newline()
			r.blankLine()
		}

	case ast.KindHTMLBlock:
		if entering {
			if s := strings.TrimSpace(stripTags(linesOf(node, r.source))); s != "" {
				r.write(r.prefixLines(r.faint(s)))
				r.newline()
				r.blankLine()
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindText:
		if entering {
			t := node.(*ast.Text)
			r.inline.WriteString(r.styled(string(t.Segment.Value(r.source))))
			if t.SoftLineBreak() {
				r.inline.WriteString(" ")
			}
			if t.HardLineBreak() {
				r.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			r.inline.WriteString(r.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		delta := -1
		if entering {
			delta = 1
		}
		if node.(*ast.Emphasis).Level >= 2 {
			r.bold += delta
		} else {
			r.italic += delta
		}

	case ast.KindCodeSpan:
		if entering {
			r.codeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			r.inline.WriteString(r.inlineOf(link))
			if dest := string(link.Destination); dest != "" {
				r.inline.WriteString(" " + r.style().Foreground(r.theme.Link).Render("("+dest+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(r.source))
			r.inline.WriteString(r.style().Foreground(r.theme.Link).Underline(true).Render(url))
		}

	case ast.KindImage:
		if entering {
			img := node.(*ast.Image)
			r.inline.WriteString(r.faint("[" + ansi.Strip(r.inlineOf(img)) + "]"))
			if dest := string(img.Destination); dest != "" {
				r.inline.WriteString(" " + r.faint("("+dest+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			raw := node.(*ast.RawHTML)
			var b strings.Builder
			for i := 0; i < raw.Segments.Len(); i++ {
				seg := raw.Segments.At(i)
				b.Write(seg.Value(r.source))
			}
			if s := stripTags(b.String()); s != "" {
				r.inline.WriteString(r.faint(s))
			}
		}

	case extast.KindStrikethrough:
		if entering {
			r.strike++
		} else {
			r.strike--
		}

	case extast.KindTable:
		if entering {
			r.table(node.(*extast.Table))
			return ast.WalkSkipChildren, nil
		}

	case extast.KindTaskCheckBox:
		if entering {
			if node.(*extast.TaskCheckBox).IsChecked {
				r.inline.WriteString(r.style().Foreground(r.theme.Accent).Render("[x]") + " ")
			} else {
				r.inline.WriteString(r.styled("[ ] "))
			}
		}

	case extast.KindDefinitionList:

	case extast.KindDefinitionTerm:
		if entering {
			r.inline.Reset()
			break
		}
		content := ansi.Strip(r.inline.String())
		r.inline.Reset()
		if content != "" {
			r.write(r.prefixLines(r.style().Foreground(r.theme.Text).Bold(true).Render(content)))
			r.newline()
		}

	case extast.KindDefinitionDescription:
		if entering {
			r.pushPrefix("  ", 2)
		} else {
			r.popPrefix()
		}
	}

	return ast.WalkContinue, nil
}

func (r *renderer) heading(h *ast.Heading) {
	// The heading style replaces the inline text style.
	content := ansi.Strip(r.inline.String())
	r.inline.Reset()
	if content == "" {
		return
	}

	st := r.style().Bold(true).Foreground(r.theme.Text)
	if h.Level <= 2 {
		st = st.Foreground(r.theme.Heading)
	}
	if h.Level == 1 {
		st = st.Underline(true)
	}

	r.blankLine()
	r.write(r.prefixLines(ansi.Wrap(st.Render(content), r.contentWidth(), wrapBreakpoints)))
	r.newline()
	r.blankLine()
}

// fencedCode renders a labelled block: a header carrying the language,
// then the highlighted lines behind a gutter.
func (r *renderer) fencedCode(n *ast.FencedCodeBlock) {
	r.codeBlocks++
	lang := language(n, r.source)
	code := strings.TrimSuffix(linesOf(n, r.source), "\n")

	border := r.style().Foreground(r.theme.Border)
	label := r.style().Foreground(r.theme.Accent).Bold(true).Render(lang)
	index := r.faint(fmt.Sprintf("[%d]", r.codeBlocks))
	gutter := border.Render("│ ")

	r.blankLine()
	r.write(r.nextPrefix() + border.Render("╭─ ") + label + " " + index)
	r.newline()
	for _, line := range strings.Split(r.highlight(code, lang), "\n") {
		r.write(r.linePrefix + gutter + line)
		r.newline()
	}
	r.write(r.linePrefix + border.Render("╰─"))
	r.newline()
	r.blankLine()
}

func (r *renderer) indentedCode(n ast.Node) {
	code := strings.TrimRight(linesOf(n, r.source), "\n")
	r.blankLine()
	for _, line := range strings.Split(code, "\n") {
		r.write(r.nextPrefix() + "    " + r.faint(line))
		r.newline()
	}
	r.blankLine()
}

func (r *renderer) enterListItem() {
	if len(r.lists) == 0 {
		return
	}
	top := &r.lists[len(r.lists)-1]

	bullet := "• "
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	}
	width := ansi.StringWidth(bullet)

	r.pendingBullet = r.linePrefix + r.style().Foreground(r.theme.Accent).Render(bullet)
	r.pushPrefix(strings.Repeat(" ", width), width)
}

func (r *renderer) codeSpan(node ast.Node) {
	var code strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			code.Write(t.Segment.Value(r.source))
		case *ast.String:
			code.Write(t.Value)
		}
	}
	st := r.style().Foreground(r.theme.Accent)
	if r.profile != termenv.Ascii {
		st = st.Background(r.theme.CodeBg)
	}
	r.inline.WriteString(st.Render(code.String()))
}

func (r *renderer) table(t *extast.Table) {
	var header []string
	var rows [][]string
	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case extast.KindTableHeader:
			header = r.tableRow(c)
		case extast.KindTableRow:
			rows = append(rows, r.tableRow(c))
		}
	}

	cols := len(header)
	if cols == 0 && len(rows) > 0 {
		cols = len(rows[0])
	}
	if cols == 0 {
		return
	}

	widths := make([]int, cols)
	measure := func(cells []string) {
		for i, cell := range cells {
			if i < cols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	const sep = "  "
	total := len(sep) * (cols - 1)
	for _, w := range widths {
		total += w
	}
	if avail := r.contentWidth(); total > avail {
		usable := max(avail-len(sep)*(cols-1), cols*3)
		for i := range widths {
			widths[i] = max(widths[i]*usable/total, 3)
		}
	}

	r.blankLine()
	if len(header) > 0 {
		bold := r.style().Bold(true).Foreground(r.theme.Text)
		r.write(r.nextPrefix() + formatRow(header, widths, t.Alignments, bold, sep))
		r.newline()

		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w)
		}
		r.write(r.linePrefix + r.style().Foreground(r.theme.Border).Render(strings.Join(parts, sep)))
		r.newline()
	}
	for _, row := range rows {
		r.write(r.linePrefix + formatRow(row, widths, t.Alignments, r.style(), sep))
		r.newline()
	}
	r.blankLine()
}

func (r *renderer) tableRow(row ast.Node) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == extast.KindTableCell {
			cells = append(cells, r.inlineOf(c))
		}
	}
	return cells
}

func formatRow(cells []string, widths []int, align []extast.Alignment, base lipgloss.Style, sep string) string {
	parts := make([]string, 0, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if lipgloss.Width(cell) > w {
			cell = ansi.Truncate(cell, w, "…")
		}
		pad := max(w-lipgloss.Width(cell), 0)

		var a extast.Alignment
		if i < len(align) {
			a = align[i]
		}
		switch a {
		case extast.AlignRight:
			cell = strings.Repeat(" ", pad) + cell
		case extast.AlignCenter:
			left := pad / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
		default:
			cell += strings.Repeat(" ", pad)
		}
		parts = append(parts, cell)
	}
	return base.Render(strings.Join(parts, sep))
}

func stripTags(html string) string {
	var b strings.Builder
	inTag := false
	for _, c := range html {
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case !inTag:
			b.WriteRune(c)
		}
	}
	return b.String()
}

package ui

import (
	"bytes"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gYonder/folio-shell/internal/markdown"
	"github.com/muesli/termenv"
)

// Highlight returns syntax-highlighted content based on filename extension.
// If highlighting fails or no lexer is found, returns the original content.
func Highlight(content, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Get(filepath.Ext(filename))
	}
	if lexer == nil {
		return content
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(SyntaxTheme())
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	buf := new(bytes.Buffer)
	if err := formatter.Format(buf, style, iterator); err != nil {
		return content
	}

	return buf.String()
}

// MarkdownTheme maps the active palette onto the article renderer.
func MarkdownTheme() markdown.Theme {
	s := S()
	p := s.Palette
	return markdown.Theme{
		Text:    p.Text,
		Faint:   p.Overlay,
		Heading: p.Magenta,
		Border:  p.Surface,
		Link:    p.Blue,
		Accent:  p.Mauve,
		CodeBg:  p.Code,
		Syntax:  SyntaxThemeFor(s.Theme),
	}
}

// RenderMarkdown renders src with the active theme at width.
func RenderMarkdown(src string, width int, profile termenv.Profile) string {
	return markdown.Render(src, markdown.Options{
		Width:   width,
		Theme:   MarkdownTheme(),
		Profile: profile,
	})
}

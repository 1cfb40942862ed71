package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// formatterFor maps a color profile to a chroma terminal formatter. Ascii
// has none: code is emitted unstyled.
func formatterFor(p termenv.Profile) chroma.Formatter {
	switch p {
	case termenv.TrueColor:
		return formatters.Get("terminal16m")
	case termenv.ANSI256:
		return formatters.Get("terminal256")
	case termenv.ANSI:
		return formatters.Get("terminal16")
	}
	return nil
}

// highlight returns code highlighted for lang, falling back to faint
// plain text when the language is unknown or chroma fails.
func (r *renderer) highlight(code, lang string) string {
	if r.profile == termenv.Ascii {
		return code
	}
	plain := func() string {
		lines := strings.Split(code, "\n")
		for i, line := range lines {
			lines[i] = r.faint(line)
		}
		return strings.Join(lines, "\n")
	}

	lexer := lexers.Get(lang)
	if lexer == nil || lang == DefaultLanguage {
		return plain()
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(r.theme.Syntax)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatterFor(r.profile)
	if formatter == nil {
		return plain()
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain()
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return plain()
	}
	return strings.TrimSuffix(b.String(), "\n")
}

package shell

import (
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gYonder/folio-shell/internal/commands"
	"github.com/gYonder/folio-shell/internal/content"
	"github.com/gYonder/folio-shell/internal/session"
)

// FolioCompleter provides tab completion for the shell
type FolioCompleter struct {
	Session *session.Session
}

// Do implements readline.AutoCompleter
func (c *FolioCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := currentCommand(string(line[:pos]))

	words := strings.Fields(lineStr)
	trailingSpace := strings.HasSuffix(lineStr, " ")

	// If empty or first word (command completion)
	if len(words) == 0 || (len(words) == 1 && !trailingSpace) {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return c.completeCommand(prefix)
	}

	partial := ""
	if !trailingSpace {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	return complete(c.candidates(words), partial)
}

// currentCommand returns the part of line after the last chain operator.
func currentCommand(line string) string {
	cut := 0
	for _, op := range []string{"&&", "||", ";"} {
		if i := strings.LastIndex(line, op); i >= 0 && i+len(op) > cut {
			cut = i + len(op)
		}
	}
	return strings.TrimLeft(line[cut:], " ")
}

// candidates returns what may follow words, the already complete words of
// the current command.
func (c *FolioCompleter) candidates(words []string) []string {
	cmd := words[0]
	last := words[len(words)-1]
	positional := 0
	for _, w := range words[1:] {
		if !strings.HasPrefix(w, "-") {
			positional++
		}
	}

	switch cmd {
	case "help":
		if len(words) == 1 {
			return commands.Names()
		}
	case "article":
		if positional == 0 && c.Session.Catalog != nil {
			return append(c.Session.Catalog.ArticleIDs(), "--pager", "--copy", "--source")
		}
		return []string{"--pager", "--copy", "--source"}
	case "articles":
		if last == "--tag" || last == "-t" {
			if c.Session.Catalog != nil {
				return c.Session.Catalog.Tags()
			}
			return nil
		}
		return []string{"--tag"}
	case "media":
		if last == "--category" || last == "-c" {
			items, err := c.Session.Media()
			if err != nil {
				return nil
			}
			return content.MediaCategories(items)
		}
		if last == "show" {
			return nil
		}
		return []string{"--category", "show"}
	case "theme":
		if len(words) == 1 {
			return []string{"toggle", "os"}
		}
		if len(words) == 2 && words[1] == "os" {
			return []string{"dark", "light"}
		}
	case "resume":
		return []string{"--export"}
	case "contact":
		return []string{"--name", "--email", "--message", "--copy-address"}
	case "unalias":
		if len(words) == 1 {
			names := make([]string, 0, len(c.Session.Aliases))
			for name := range c.Session.Aliases {
				names = append(names, name)
			}
			sort.Strings(names)
			return names
		}
	}
	return nil
}

// completeCommand returns matching command and alias names
func (c *FolioCompleter) completeCommand(prefix string) ([][]rune, int) {
	names := commands.Names()
	for name := range c.Session.Aliases {
		if _, isCmd := commands.Get(name); !isCmd {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return complete(names, prefix)
}

// complete returns the suffixes of options that extend prefix. Matching
// ignores case; the suffix is taken from the option as written.
func complete(options []string, prefix string) ([][]rune, int) {
	var result [][]rune
	lower := strings.ToLower(prefix)
	for _, opt := range options {
		if len(opt) >= len(prefix) && strings.HasPrefix(strings.ToLower(opt), lower) {
			// Return only the suffix that needs to be added
			result = append(result, []rune(opt[len(prefix):]+" "))
		}
	}
	return result, len([]rune(prefix))
}

// NewCompleter creates a new FolioCompleter
func NewCompleter(s *session.Session) readline.AutoCompleter {
	return &FolioCompleter{Session: s}
}

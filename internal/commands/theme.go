package commands

import (
	"context"
	"fmt"

	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/theme"
	"github.com/gYonder/folio-shell/internal/ui"
)

func init() {
	Register(&Command{
		Name:        "theme",
		Description: "Show or switch the light/dark theme",
		Usage:       "theme [toggle | os <dark|light>]\n\nWithout arguments, shows the current theme and where it comes from.\n\nSubcommands:\n  toggle          Switch theme and remember the choice\n  os dark|light   Simulate an OS color-scheme change (only without a desktop signal)\n\nOnce toggled, the saved choice wins over the OS setting.",
		Run:         themeCmd,
	})
}

func themeCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if s.Theme == nil {
		return fmt.Errorf("theme: not available")
	}

	if len(args) == 0 {
		return showTheme(s, env)
	}

	switch args[0] {
	case "toggle":
		next := s.Theme.Toggle()
		st := ui.S()
		fmt.Fprintf(env.Stdout, "%s Theme is now %s %s\n", st.Success.Render("✓"), st.Accent.Render(next.String()), next.Glyph())
		return nil
	case "os":
		if len(args) != 2 {
			return fmt.Errorf("usage: theme os <dark|light>")
		}
		want, ok := theme.ParseState(args[1])
		if !ok {
			return fmt.Errorf("theme: os: %q is not dark or light", args[1])
		}
		if s.Manual == nil {
			return fmt.Errorf("theme: os: the %s signal cannot be driven from the shell", s.Theme.Source())
		}
		s.Manual.Set(want.IsDark())
		return showTheme(s, env)
	default:
		return fmt.Errorf("theme: unknown subcommand %q", args[0])
	}
}

func showTheme(s *session.Session, env *ExecutionEnv) error {
	st := ui.S()
	cur := s.Theme.Current()

	origin := "following the OS (" + s.Theme.Source() + ")"
	if s.Theme.Pinned() {
		origin = "saved preference"
	}

	fmt.Fprintf(env.Stdout, "%s %s  %s\n", st.Accent.Render(cur.String()), cur.Glyph(), st.Muted.Render(origin))
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/ui"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// ErrExit is returned by the exit command; the REPL stops on it.
var ErrExit = errors.New("exit")

type ExecutionEnv struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type Command struct {
	Run         func(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error
	Name        string
	Description string
	Usage       string // Detailed usage info shown by "help <command>"
}

var Registry = make(map[string]*Command)

// ReorderArgsForFlags reorders arguments so flags come before positional args.
// This allows Unix-style interspersed flags like "article go-tools --pager"
// to work the same as "article --pager go-tools".
func ReorderArgsForFlags(fs *pflag.FlagSet, args []string) []string {
	var flags []string
	var positional []string

	i := 0
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			// Everything after -- is positional
			positional = append(positional, args[i+1:]...)
			break
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			flags = append(flags, arg)
			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") {
				i++
				continue
			}
			var f *pflag.Flag
			if strings.HasPrefix(arg, "--") {
				f = fs.Lookup(name)
			} else if len(name) == 1 {
				f = fs.ShorthandLookup(name)
			}
			if f != nil && f.Value.Type() != "bool" {
				// Non-bool flag, consume next arg as value
				if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
		i++
	}

	return append(flags, positional...)
}

// newFlagSet returns a quiet flag set; parse errors are reported once by
// the caller.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags reorders and parses args, wrapping errors with the command name.
func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(ReorderArgsForFlags(fs, args)); err != nil {
		return fmt.Errorf("%s: %w", fs.Name(), err)
	}
	return nil
}

func init() {
	Register(&Command{
		Name:        "help",
		Description: "Show available commands or help for a specific command",
		Usage:       "help [command]\n\nExamples:\n  help           List all commands\n  help article   Show detailed help for article",
		Run:         help,
	})
	Register(&Command{
		Name:        "clear",
		Description: "Clear the screen",
		Usage:       "clear\n\nClears the terminal screen and scrollback buffer.",
		Run:         clear,
	})
	Register(&Command{
		Name:        "history",
		Description: "Show command history",
		Usage:       "history\n\nDisplays numbered list of previously executed commands.\nUse !! to repeat the last command and !n to repeat entry n.",
		Run:         history,
	})
	Register(&Command{
		Name:        "exit",
		Description: "Leave the shell",
		Usage:       "exit",
		Run: func(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
			return ErrExit
		},
	})
}

func Register(cmd *Command) {
	Registry[cmd.Name] = cmd
}

func Get(name string) (*Command, bool) {
	cmd, ok := Registry[name]
	return cmd, ok
}

// Names returns the registered command names, sorted.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasHelpFlag checks if args contain -h or --help
func HasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		// Stop checking after first non-flag argument
		if len(arg) > 0 && arg[0] != '-' {
			break
		}
	}
	return false
}

// PrintUsage prints usage information for a command to the given writer
func PrintUsage(cmd *Command, w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n", ui.S().Command.Render(cmd.Name), cmd.Description)
	if cmd.Usage != "" {
		// Replace escaped newlines with actual newlines for display
		usage := strings.ReplaceAll(cmd.Usage, "\\n", "\n")
		fmt.Fprintf(w, "\nUsage: %s\n", usage)
	}
}

// Execute runs a single command with its arguments, handling -h/--help.
func Execute(ctx context.Context, s *session.Session, env *ExecutionEnv, name string, args []string) error {
	cmd, ok := Get(name)
	if !ok {
		return fmt.Errorf("command not found: %s", name)
	}
	if HasHelpFlag(args) {
		PrintUsage(cmd, env.Stdout)
		return nil
	}
	s.Log.Debug("run command", zap.String("name", name), zap.Strings("args", args))
	return cmd.Run(ctx, s, env, args)
}

func help(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	// If a command name is provided, show detailed help for that command
	if len(args) > 0 {
		cmdName := args[0]
		cmd, ok := Registry[cmdName]
		if !ok {
			return fmt.Errorf("help: unknown command '%s'", cmdName)
		}

		PrintUsage(cmd, env.Stdout)
		return nil
	}

	st := ui.S()
	fmt.Fprintln(env.Stdout, st.Header.Render("Available commands:"))
	fmt.Fprintln(env.Stdout)
	for _, name := range Names() {
		cmd := Registry[name]
		fmt.Fprintf(env.Stdout, "  %s %s\n", st.Command.Render(fmt.Sprintf("%-12s", cmd.Name)), st.Muted.Render(cmd.Description))
	}
	fmt.Fprintln(env.Stdout)
	return nil
}

func clear(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	// ANSI escape sequence: move to top-left, clear entire screen, clear scrollback
	fmt.Fprint(env.Stdout, "\033[H\033[2J\033[3J")
	return nil
}

func history(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if s.HistoryGetter == nil {
		return fmt.Errorf("history: not available")
	}

	hist := s.HistoryGetter()
	if len(hist) == 0 {
		fmt.Fprintln(env.Stdout, "No history.")
		return nil
	}

	muted := ui.S().Muted
	for i, cmd := range hist {
		fmt.Fprintf(env.Stdout, "  %s  %s\n", muted.Render(fmt.Sprintf("%4d", i+1)), cmd)
	}
	return nil
}

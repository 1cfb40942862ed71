package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/gYonder/folio-shell/internal/commands"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/theme"
	"github.com/gYonder/folio-shell/internal/ui"
	"go.uber.org/zap"
)

// Shell is the interactive REPL.
type Shell struct {
	Session        *session.Session
	RL             *readline.Instance
	historyPath    string
	sessionHistory []string // Commands from current session (for !!, !-n)
	stopObserve    func()
}

// New creates a Shell reading from the terminal. historyPath may be empty
// to keep history in memory only.
func New(s *session.Session, historyPath string) (*Shell, error) {
	limit := 1000
	if s.Config != nil && s.Config.HistorySize > 0 {
		limit = s.Config.HistorySize
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "folio> ",
		HistoryFile:       historyPath,
		HistoryLimit:      limit,
		HistorySearchFold: true,
		AutoComplete:      NewCompleter(s),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, err
	}

	sh := NewWithInstance(s, rl, historyPath)
	if s.Theme != nil {
		// Repaint the waiting prompt when the OS flips the theme.
		sh.stopObserve = s.Theme.Observe(func(theme.State) {
			rl.SetPrompt(sh.buildPrompt())
			rl.Refresh()
		})
	}
	return sh, nil
}

// NewWithInstance wraps an existing readline instance; rl may be nil when
// the shell only runs single lines.
func NewWithInstance(s *session.Session, rl *readline.Instance, historyPath string) *Shell {
	sh := &Shell{
		Session:     s,
		RL:          rl,
		historyPath: historyPath,
	}

	// Set history getter on session so commands can access it
	s.HistoryGetter = sh.GetHistory
	return sh
}

func (sh *Shell) buildPrompt() string {
	return ui.RenderPrompt(sh.Session.Owner, sh.Session.Page)
}

// Run starts the REPL loop. It returns when the user exits or sends EOF.
func (sh *Shell) Run(ctx context.Context) {
	defer sh.Close()

	env := &commands.ExecutionEnv{Stdin: os.Stdin, Stdout: sh.RL.Stdout(), Stderr: sh.RL.Stderr()}

	for {
		sh.RL.SetPrompt(sh.buildPrompt())

		line, err := sh.RL.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil { // io.EOF or Ctrl+D
			break
		}

		if err := sh.RunLine(ctx, line, env); err != nil {
			if errors.Is(err, commands.ErrExit) {
				break
			}
			fmt.Fprintf(env.Stderr, "folio: %v\n", err)
		}
	}
}

// RunLine expands history references and aliases in line and executes it.
func (sh *Shell) RunLine(ctx context.Context, line string, env *commands.ExecutionEnv) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	// Handle history expansion (!n)
	if strings.HasPrefix(line, "!") && len(line) > 1 {
		expanded, err := sh.expandHistory(line)
		if err != nil {
			return err
		}
		line = expanded
		fmt.Fprintln(env.Stdout, line) // Show the expanded command
	}

	sh.sessionHistory = append(sh.sessionHistory, line)

	chain, err := ParseCommandChain(line, sh.Session.Aliases)
	if err != nil {
		return err
	}

	err = chain.Execute(ctx, sh.Session, env)
	if err != nil && !errors.Is(err, commands.ErrExit) {
		sh.Session.Log.Debug("command failed", zap.String("line", line), zap.Error(err))
	}
	return err
}

// Close releases the readline instance and the theme observer.
func (sh *Shell) Close() {
	if sh.stopObserve != nil {
		sh.stopObserve()
		sh.stopObserve = nil
	}
	if sh.RL != nil {
		sh.RL.Close()
	}
}

// expandHistory handles !n and !! syntax for history expansion
func (sh *Shell) expandHistory(line string) (string, error) {
	// For !! and !-n, use session history (current session only)
	// For !n and !prefix, use full history (file + session)

	if line == "!!" {
		if len(sh.sessionHistory) == 0 {
			return "", fmt.Errorf("!!: event not found")
		}
		return sh.sessionHistory[len(sh.sessionHistory)-1], nil
	}

	if strings.HasPrefix(line, "!-") {
		nStr := line[2:]
		n, err := strconv.Atoi(nStr)
		if err != nil || n < 1 {
			return "", fmt.Errorf("!-%s: event not found", nStr)
		}
		idx := len(sh.sessionHistory) - n
		if idx < 0 {
			return "", fmt.Errorf("!-%s: event not found", nStr)
		}
		return sh.sessionHistory[idx], nil
	}

	history := sh.GetHistory()
	if len(history) == 0 {
		return "", fmt.Errorf("no history available")
	}

	nStr := line[1:]
	n, err := strconv.Atoi(nStr)
	if err != nil {
		// !string - search for command starting with string
		for i := len(history) - 1; i >= 0; i-- {
			if strings.HasPrefix(history[i], nStr) {
				return history[i], nil
			}
		}
		return "", fmt.Errorf("!%s: event not found", nStr)
	}
	if n < 1 || n > len(history) {
		return "", fmt.Errorf("!%d: event not found", n)
	}
	return history[n-1], nil
}

// GetHistory returns the full history from the file (readline keeps it
// up-to-date), or this session's commands when there is no file.
func (sh *Shell) GetHistory() []string {
	if sh.historyPath == "" {
		return sh.sessionHistory
	}

	f, err := os.Open(sh.historyPath)
	if err != nil {
		return sh.sessionHistory
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return sh.sessionHistory
	}

	var history []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			history = append(history, line)
		}
	}
	return history
}

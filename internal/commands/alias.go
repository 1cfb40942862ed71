package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gYonder/folio-shell/internal/config"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/ui"
)

func init() {
	Register(&Command{
		Name:        "alias",
		Description: "Create or list command aliases",
		Usage:       "alias [name=value]\n\nWithout arguments, lists all defined aliases.\nWith an argument, creates a new alias.\n\nExamples:\n  alias                   # List all aliases\n  alias posts='articles'  # Create alias 'posts'\n  alias go=articles --tag go",
		Run:         aliasCmd,
	})
	Register(&Command{
		Name:        "unalias",
		Description: "Remove a command alias",
		Usage:       "unalias <name>\n\nRemoves the specified alias.\n\nExamples:\n  unalias posts",
		Run:         unaliasCmd,
	})
}

func aliasCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if len(args) == 0 {
		return listAliases(s, env)
	}

	// Join args in case of alias go=articles --tag go (space after =)
	def := strings.Join(args, " ")

	name, value, ok := parseAliasDefinition(def)
	if !ok {
		return fmt.Errorf("alias: invalid format. Use: alias name='value' or alias name=value")
	}

	if _, exists := Registry[name]; exists {
		fmt.Fprintf(env.Stderr, "Warning: '%s' shadows a built-in command\n", name)
	}

	if s.Aliases == nil {
		s.Aliases = make(map[string]string)
	}
	s.Aliases[name] = value

	if err := saveAliasesToConfig(s); err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to save alias to config: %v\n", err)
	}

	fmt.Fprintf(env.Stdout, "alias %s='%s'\n", name, value)
	return nil
}

func unaliasCmd(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: unalias <name>")
	}

	name := args[0]
	if _, exists := s.Aliases[name]; !exists {
		return fmt.Errorf("unalias: %s: not found", name)
	}

	delete(s.Aliases, name)

	if err := saveAliasesToConfig(s); err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to save config: %v\n", err)
	}

	return nil
}

func listAliases(s *session.Session, env *ExecutionEnv) error {
	st := ui.S()
	if len(s.Aliases) == 0 {
		fmt.Fprintln(env.Stdout, "No aliases defined.")
		fmt.Fprintln(env.Stdout, "")
		fmt.Fprintln(env.Stdout, st.Muted.Render("Use 'alias name=value' to create an alias."))
		return nil
	}

	names := make([]string, 0, len(s.Aliases))
	for name := range s.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(env.Stdout, "alias %s='%s'\n", st.Command.Render(name), s.Aliases[name])
	}
	return nil
}

func saveAliasesToConfig(s *session.Session) error {
	if s.ConfigPath == "" {
		return nil
	}
	cfg, err := config.LoadFrom(s.ConfigPath)
	if err != nil {
		return err
	}
	cfg.Aliases = s.Aliases
	s.Config.Aliases = s.Aliases
	return config.SaveTo(s.ConfigPath, cfg)
}

// parseAliasDefinition parses "name=value" or "name='value'" format
// Returns the alias name, value, and whether parsing succeeded.
func parseAliasDefinition(def string) (name, value string, ok bool) {
	idx := strings.Index(def, "=")
	if idx <= 0 {
		return "", "", false
	}

	name = def[:idx]
	value = strings.TrimSpace(def[idx+1:])

	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') ||
			(value[0] == '"' && value[len(value)-1] == '"') {
			value = value[1 : len(value)-1]
		}
	}
	if value == "" {
		return "", "", false
	}

	// Validate name (alphanumeric, underscore, dash only)
	for _, r := range name {
		isLower := r >= 'a' && r <= 'z'
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if !(isLower || isUpper || isDigit || r == '_' || r == '-') {
			return "", "", false
		}
	}

	return name, value, true
}

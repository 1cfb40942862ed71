package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/ui"
)

func init() {
	Register(&Command{
		Name:        "resume",
		Description: "Show or export the resume",
		Usage:       "resume [--export FILE]\n\nOptions:\n  -e, --export FILE   Write the resume as Markdown to FILE\n\nExamples:\n  resume\n  resume --export resume.md",
		Run:         resume,
	})
}

func resume(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	fs := newFlagSet("resume")
	export := fs.StringP("export", "e", "", "write markdown to file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if s.Catalog == nil {
		return fmt.Errorf("resume: no content loaded")
	}
	s.Page = "resume"

	doc := s.Catalog.ResumeMarkdown()

	if *export != "" {
		path := filepath.Clean(*export)
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			return fmt.Errorf("resume: export: %w", err)
		}
		fmt.Fprintf(env.Stdout, "%s Resume written to %s\n", ui.S().Success.Render("✓"), path)
		return nil
	}

	fmt.Fprintln(env.Stdout, ui.RenderMarkdown(doc, s.TermWidth(), s.Profile))
	return nil
}

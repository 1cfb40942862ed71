package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/ui"
)

func init() {
	Register(&Command{
		Name:        "home",
		Description: "Introduction and links",
		Usage:       "home",
		Run:         home,
	})
	Register(&Command{
		Name:        "experience",
		Description: "Work history",
		Usage:       "experience",
		Run:         experience,
	})
	Register(&Command{
		Name:        "skills",
		Description: "Skills by category",
		Usage:       "skills",
		Run:         skills,
	})
	Register(&Command{
		Name:        "projects",
		Description: "Selected projects",
		Usage:       "projects",
		Run:         projects,
	})
	Register(&Command{
		Name:        "education",
		Description: "Degrees and schools",
		Usage:       "education",
		Run:         education,
	})
}

// wrap reflows text to the session width, indenting every line.
func wrap(s *session.Session, text string, indent int) string {
	lines := strings.Split(lipgloss.NewStyle().Width(s.TermWidth()-indent).Render(text), "\n")
	pad := strings.Repeat(" ", indent)
	for i, line := range lines {
		lines[i] = pad + strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func bullet(w io.Writer, s *session.Session, text string) {
	st := ui.S()
	lines := strings.Split(wrap(s, text, 4), "\n")
	for i, line := range lines {
		if i == 0 {
			line = "  " + st.Accent.Render("•") + " " + strings.TrimPrefix(line, "    ")
		}
		fmt.Fprintln(w, line)
	}
}

func home(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if s.Catalog == nil {
		return fmt.Errorf("home: no content loaded")
	}
	p := s.Catalog.Profile
	st := ui.S()
	s.Page = "home"

	fmt.Fprintln(env.Stdout, st.Header.Render(p.Name))
	fmt.Fprintf(env.Stdout, "%s  %s\n\n", st.Title.Render(p.Role), st.Muted.Render(p.Location))
	fmt.Fprintln(env.Stdout, wrap(s, p.Summary, 0))
	fmt.Fprintln(env.Stdout)

	if len(p.Highlights) > 0 {
		fmt.Fprintln(env.Stdout, ui.Section("Highlights"))
		for _, h := range p.Highlights {
			bullet(env.Stdout, s, h)
		}
		fmt.Fprintln(env.Stdout)
	}

	for _, l := range p.Links {
		fmt.Fprintf(env.Stdout, "  %s %s\n", st.Muted.Render(fmt.Sprintf("%-10s", l.Label)), ui.RenderLink(l.URL))
	}
	fmt.Fprintf(env.Stdout, "  %s %s\n\n", st.Muted.Render(fmt.Sprintf("%-10s", "Email")), st.Accent.Render(s.Email()))
	fmt.Fprintln(env.Stdout, st.Muted.Render("Type 'help' to see all pages."))
	return nil
}

func experience(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if s.Catalog == nil {
		return fmt.Errorf("experience: no content loaded")
	}
	st := ui.S()
	s.Page = "experience"

	fmt.Fprintln(env.Stdout, ui.Section("Experience"))
	for _, e := range s.Catalog.Experience {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintf(env.Stdout, "%s %s %s\n", st.Title.Render(e.Role), st.Muted.Render("@"), st.Accent.Render(e.Company))
		fmt.Fprintf(env.Stdout, "%s  %s\n", st.Date.Render(e.Period), st.Muted.Render(e.Location))
		for _, a := range e.Achievements {
			bullet(env.Stdout, s, a)
		}
	}
	return nil
}

func skills(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if s.Catalog == nil {
		return fmt.Errorf("skills: no content loaded")
	}
	st := ui.S()
	s.Page = "skills"

	fmt.Fprintln(env.Stdout, ui.Section("Skills"))
	for _, c := range s.Catalog.Skills {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, st.Title.Render(c.Title))
		chips := make([]string, len(c.Skills))
		for i, skill := range c.Skills {
			chips[i] = st.Tag.Render(skill)
		}
		fmt.Fprintln(env.Stdout, wrap(s, strings.Join(chips, st.Muted.Render(" · ")), 2))
	}
	return nil
}

func projects(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if s.Catalog == nil {
		return fmt.Errorf("projects: no content loaded")
	}
	st := ui.S()
	s.Page = "projects"

	fmt.Fprintln(env.Stdout, ui.Section("Projects"))
	for _, p := range s.Catalog.Projects {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, st.Title.Render(p.Title))
		fmt.Fprintln(env.Stdout, wrap(s, p.Description, 2))
		if len(p.Tech) > 0 {
			fmt.Fprintf(env.Stdout, "  %s\n", st.Tag.Render(strings.Join(p.Tech, ", ")))
		}
		if p.Link != "" {
			fmt.Fprintf(env.Stdout, "  %s\n", ui.RenderLink(p.Link))
		}
	}
	return nil
}

func education(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	if s.Catalog == nil {
		return fmt.Errorf("education: no content loaded")
	}
	st := ui.S()
	s.Page = "education"

	fmt.Fprintln(env.Stdout, ui.Section("Education"))
	for _, e := range s.Catalog.Education {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, st.Title.Render(e.Degree))
		fmt.Fprintf(env.Stdout, "%s  %s  %s\n", st.Accent.Render(e.Institution), st.Date.Render(e.Period), st.Muted.Render(e.Location))
		if e.GPA != "" {
			fmt.Fprintf(env.Stdout, "  %s\n", st.Text.Render(e.GPA))
		}
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gYonder/folio-shell/internal/content"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/ui"
)

func init() {
	Register(&Command{
		Name:        "media",
		Description: "Browse the photo and video gallery",
		Usage:       "media [--category CATEGORY] [show N]\n\nOptions:\n  -c, --category CATEGORY   Only items in CATEGORY (default All)\n\nSubcommands:\n  show N   Show details of item N and open it\n\nExamples:\n  media\n  media --category travel\n  media --category travel show 2",
		Run:         media,
	})
}

func media(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	fs := newFlagSet("media")
	category := fs.StringP("category", "c", content.AllCategories, "filter by category")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s.Page = "media"

	items, err := ui.WithSpinner(env.Stderr, "Scanning gallery...", false, s.Media)
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}

	st := ui.S()
	if len(items) == 0 {
		fmt.Fprintln(env.Stdout, ui.Section("Media"))
		fmt.Fprintf(env.Stdout, "\n%s\n", st.Muted.Render("The gallery is empty. Set media_dir in the config or FOLIO_MEDIA_DIR."))
		return nil
	}

	filtered := content.FilterMedia(items, *category)

	if fs.NArg() > 0 {
		if fs.Arg(0) != "show" || fs.NArg() != 2 {
			return fmt.Errorf("usage: media [--category CATEGORY] [show N]")
		}
		n, err := strconv.Atoi(fs.Arg(1))
		if err != nil || n < 1 || n > len(filtered) {
			return fmt.Errorf("media: item %s out of range (1-%d)", fs.Arg(1), len(filtered))
		}
		return showMedia(s, env, filtered[n-1])
	}

	fmt.Fprintln(env.Stdout, ui.Section("Media"))
	fmt.Fprintln(env.Stdout, renderCategories(content.MediaCategories(items), *category))
	fmt.Fprintln(env.Stdout)

	if len(filtered) == 0 {
		fmt.Fprintln(env.Stdout, st.Muted.Render(fmt.Sprintf("Nothing in %q.", *category)))
		return nil
	}

	table := ui.NewTable(env.Stdout)
	table.SetHeaders("#", "TITLE", "TYPE", "CATEGORY", "SIZE")
	table.SetMaxWidth(1, 40)
	for i, it := range filtered {
		table.AddRow(
			st.Muted.Render(strconv.Itoa(i+1)),
			it.Title,
			ui.StyleForMedia(string(it.Type)).Render(string(it.Type)),
			st.Tag.Render(it.Category),
			ui.FormatSize(it.Size),
		)
	}
	table.Render()
	return nil
}

func renderCategories(cats []string, active string) string {
	st := ui.S()
	parts := make([]string, len(cats))
	for i, c := range cats {
		if strings.EqualFold(c, active) {
			parts[i] = st.Accent.Render("[" + c + "]")
		} else {
			parts[i] = st.Muted.Render(c)
		}
	}
	return strings.Join(parts, " ")
}

func showMedia(s *session.Session, env *ExecutionEnv, it content.MediaItem) error {
	st := ui.S()
	fmt.Fprintln(env.Stdout, st.Title.Render(it.Title))
	fmt.Fprintf(env.Stdout, "  %s %s\n", st.Muted.Render("Type:    "), ui.StyleForMedia(string(it.Type)).Render(string(it.Type)))
	fmt.Fprintf(env.Stdout, "  %s %s\n", st.Muted.Render("Category:"), st.Tag.Render(it.Category))
	fmt.Fprintf(env.Stdout, "  %s %s\n", st.Muted.Render("Format:  "), it.MIME)
	fmt.Fprintf(env.Stdout, "  %s %s\n", st.Muted.Render("Size:    "), ui.FormatSize(it.Size))
	fmt.Fprintf(env.Stdout, "  %s %s\n", st.Muted.Render("File:    "), it.Path)

	if s.Opener != nil && s.Interactive {
		if err := s.Opener.Open(it.Path); err != nil {
			fmt.Fprintf(env.Stderr, "%s could not open viewer: %v\n", st.Warning.Render("!"), err)
		}
	}
	return nil
}

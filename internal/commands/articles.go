package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gYonder/folio-shell/internal/content"
	"github.com/gYonder/folio-shell/internal/markdown"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/ui"
)

// Swapped in tests.
var runPager = ui.RunPager

func init() {
	Register(&Command{
		Name:        "articles",
		Description: "List articles, newest first",
		Usage:       "articles [--tag TAG]\n\nOptions:\n  -t, --tag TAG   Only articles carrying TAG\n\nExamples:\n  articles\n  articles --tag go",
		Run:         articles,
	})
	Register(&Command{
		Name:        "article",
		Description: "Read an article",
		Usage:       "article <id> [--pager] [--copy N] [--source]\n\nOptions:\n  -p, --pager     Open in a scrollable pager\n  -c, --copy N    Copy code block N to the clipboard\n  -s, --source    Show the raw Markdown, highlighted\n\nExamples:\n  article small-go-tools\n  article small-go-tools --copy 1",
		Run:         article,
	})
}

func articles(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	fs := newFlagSet("articles")
	tag := fs.StringP("tag", "t", "", "filter by tag")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if s.Catalog == nil {
		return fmt.Errorf("articles: no content loaded")
	}
	s.Page = "articles"

	list := s.Catalog.Articles()
	if *tag != "" {
		list = s.Catalog.ArticlesByTag(*tag)
	}

	st := ui.S()
	fmt.Fprintln(env.Stdout, ui.Section("Articles"))
	if len(list) == 0 {
		fmt.Fprintf(env.Stdout, "\n%s\n", st.Muted.Render(fmt.Sprintf("No articles tagged %q.", *tag)))
		return nil
	}

	for _, a := range list {
		fmt.Fprintln(env.Stdout)
		fmt.Fprintf(env.Stdout, "%s  %s\n", st.Title.Render(a.Title), st.Muted.Render("("+a.ID+")"))
		fmt.Fprintf(env.Stdout, "%s  %s  %s\n",
			st.Date.Render(a.PublishDate.Format("Jan 2, 2006")),
			st.Muted.Render(fmt.Sprintf("%d min read", a.ReadTime)),
			ui.RenderTags(a.Tags))
		if a.Description != "" {
			fmt.Fprintln(env.Stdout, wrap(s, a.Description, 2))
		}
	}
	fmt.Fprintf(env.Stdout, "\n%s\n", st.Muted.Render("Read one with 'article <id>'."))
	return nil
}

func article(ctx context.Context, s *session.Session, env *ExecutionEnv, args []string) error {
	fs := newFlagSet("article")
	pager := fs.BoolP("pager", "p", false, "open in pager")
	copyN := fs.IntP("copy", "c", 0, "copy code block N")
	source := fs.BoolP("source", "s", false, "show raw markdown")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: article <id> [--pager] [--copy N] [--source]")
	}
	if s.Catalog == nil {
		return fmt.Errorf("article: no content loaded")
	}

	a, err := s.Catalog.Article(fs.Arg(0))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return fmt.Errorf("article: %s: %w (try 'articles')", fs.Arg(0), content.ErrNotFound)
		}
		return fmt.Errorf("article: %w", err)
	}
	s.Page = "articles"

	if *copyN != 0 {
		return copyCodeBlock(s, env, a, *copyN)
	}

	if *source {
		fmt.Fprintln(env.Stdout, ui.Highlight(a.Content, a.ID+".md"))
		return nil
	}

	body := renderArticle(s, a)
	if *pager && s.Interactive {
		return runPager(a.Title, body)
	}
	fmt.Fprintln(env.Stdout, body)
	return nil
}

func renderArticle(s *session.Session, a content.Article) string {
	st := ui.S()
	header := st.Header.Render(a.Title) + "\n" +
		st.Date.Render(a.PublishDate.Format("Jan 2, 2006")) + "  " +
		st.Muted.Render(strconv.Itoa(a.ReadTime)+" min read") + "  " +
		ui.RenderTags(a.Tags)
	return header + "\n\n" + ui.RenderMarkdown(a.Content, s.TermWidth(), s.Profile)
}

func copyCodeBlock(s *session.Session, env *ExecutionEnv, a content.Article, n int) error {
	blocks := markdown.CodeBlocks(a.Content)
	if len(blocks) == 0 {
		return fmt.Errorf("article: %s has no code blocks", a.ID)
	}
	if n < 1 || n > len(blocks) {
		return fmt.Errorf("article: code block %d out of range (1-%d)", n, len(blocks))
	}
	if s.Clipboard == nil {
		return fmt.Errorf("article: clipboard not available")
	}
	block := blocks[n-1]
	if err := s.Clipboard.WriteAll(block.Code); err != nil {
		return fmt.Errorf("article: copy block %d: %w", n, err)
	}
	fmt.Fprintf(env.Stdout, "%s Copied %s block %d to clipboard.\n", ui.S().Success.Render("✓"), block.Language, n)
	return nil
}

package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gYonder/folio-shell/internal/config"
	"github.com/gYonder/folio-shell/internal/contact"
	"github.com/gYonder/folio-shell/internal/content"
	"github.com/gYonder/folio-shell/internal/prefs"
	"github.com/gYonder/folio-shell/internal/session"
	"github.com/gYonder/folio-shell/internal/theme"
	"github.com/gYonder/folio-shell/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) Open(url string) error {
	f.urls = append(f.urls, url)
	return f.err
}

type fixture struct {
	s      *session.Session
	kv     *prefs.MemoryStore
	sig    *theme.ManualSignal
	clip   *fakeClipboard
	opener *fakeOpener
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalog, err := content.Load()
	require.NoError(t, err)

	kv := prefs.NewMemoryStore()
	sig := theme.NewManualSignal(false)
	store := theme.New(kv, sig)
	t.Cleanup(store.Close)

	s := session.NewSession(config.Default(), store, catalog)
	s.Manual = sig
	clip := &fakeClipboard{}
	opener := &fakeOpener{err: errors.New("no mail client")}
	s.Clipboard = clip
	s.Opener = opener

	return &fixture{s: s, kv: kv, sig: sig, clip: clip, opener: opener}
}

func (f *fixture) run(t *testing.T, name string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := &ExecutionEnv{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}
	err := Execute(context.Background(), f.s, env, name, args)
	return ui.StripANSI(stdout.String()), err
}

func TestReorderArgsForFlags(t *testing.T) {
	fs := newFlagSet("test")
	fs.StringP("tag", "t", "", "")
	fs.BoolP("pager", "p", false, "")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "flags first untouched", args: []string{"--pager", "id"}, want: []string{"--pager", "id"}},
		{name: "trailing bool flag", args: []string{"id", "--pager"}, want: []string{"--pager", "id"}},
		{name: "value flag keeps its value", args: []string{"id", "--tag", "go"}, want: []string{"--tag", "go", "id"}},
		{name: "shorthand value flag", args: []string{"id", "-t", "go"}, want: []string{"-t", "go", "id"}},
		{name: "equals form", args: []string{"id", "--tag=go"}, want: []string{"--tag=go", "id"}},
		{name: "double dash", args: []string{"--pager", "--", "-x"}, want: []string{"--pager", "-x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReorderArgsForFlags(fs, tt.args))
		})
	}
}

func TestExecute_UnknownAndHelpFlag(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "nope")
	assert.EqualError(t, err, "command not found: nope")

	out, err := f.run(t, "article", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "article - Read an article")
	assert.Contains(t, out, "--copy N")
}

func TestHelp_ListsCommands(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "help")
	require.NoError(t, err)
	for _, name := range []string{"home", "articles", "media", "contact", "theme", "resume"} {
		assert.Contains(t, out, name)
	}

	_, err = f.run(t, "help", "bogus")
	assert.Error(t, err)
}

func TestExit(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "exit")
	assert.ErrorIs(t, err, ErrExit)
}

func TestHistory(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "history")
	assert.Error(t, err)

	f.s.HistoryGetter = func() []string { return []string{"home", "articles"} }
	out, err := f.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "   1  home")
	assert.Contains(t, out, "   2  articles")
}

func TestPages_SetCurrentPage(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{cmd: "home", want: "Alex Rivera"},
		{cmd: "experience", want: "Northwind Data"},
		{cmd: "skills", want: "Kubernetes"},
		{cmd: "projects", want: "tailpipe"},
		{cmd: "education", want: "University of Porto"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			f := newFixture(t)
			out, err := f.run(t, tt.cmd)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.Equal(t, tt.cmd, f.s.Page)
		})
	}
}

func TestArticles_ListAndFilter(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "articles")
	require.NoError(t, err)
	first := strings.Index(out, "small-go-tools")
	last := strings.Index(out, "on-call-handbook")
	require.True(t, first >= 0 && last >= 0)
	assert.Less(t, first, last, "newest first")

	out, err = f.run(t, "articles", "--tag", "KAFKA")
	require.NoError(t, err)
	assert.Contains(t, out, "exactly-once-ingestion")
	assert.NotContains(t, out, "small-go-tools")

	out, err = f.run(t, "articles", "-t", "rust")
	require.NoError(t, err)
	assert.Contains(t, out, `No articles tagged "rust".`)
}

func TestArticle_Read(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "article", "small-go-tools")
	require.NoError(t, err)
	assert.Contains(t, out, "Writing Small Go Tools People Keep Using")
	assert.Contains(t, out, "╭─ go")
	assert.Contains(t, out, "6 min read")

	_, err = f.run(t, "article", "missing")
	assert.ErrorIs(t, err, content.ErrNotFound)

	_, err = f.run(t, "article")
	assert.Error(t, err)
}

func TestArticle_PagerOnlyWhenInteractive(t *testing.T) {
	f := newFixture(t)
	var paged string
	orig := runPager
	runPager = func(title, body string) error {
		paged = title
		return nil
	}
	t.Cleanup(func() { runPager = orig })

	out, err := f.run(t, "article", "small-go-tools", "--pager")
	require.NoError(t, err)
	assert.Empty(t, paged)
	assert.Contains(t, out, "Writing Small Go Tools")

	f.s.Interactive = true
	out, err = f.run(t, "article", "--pager", "small-go-tools")
	require.NoError(t, err)
	assert.Equal(t, "Writing Small Go Tools People Keep Using", paged)
	assert.Empty(t, out)
}

func TestArticle_CopyCodeBlock(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "article", "small-go-tools", "--copy", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied go block 1")
	assert.True(t, strings.HasPrefix(f.clip.text, "const ("))
	assert.True(t, strings.HasSuffix(f.clip.text, ")"))

	out, err = f.run(t, "article", "small-go-tools", "-c", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied text block 2")
	assert.Equal(t, "$ tailpipe --json deploy/api | jq .level", f.clip.text)

	_, err = f.run(t, "article", "small-go-tools", "--copy", "9")
	assert.ErrorContains(t, err, "out of range (1-2)")
}

func TestArticle_Source(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "article", "small-go-tools", "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "```go")
}

func TestResume_Export(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "resume.md")

	out, err := f.run(t, "resume", "--export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Resume written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, "# Alex Rivera\n"))
	assert.Contains(t, doc, "## Experience")
	assert.Contains(t, doc, "## Education")
	assert.Contains(t, doc, "## Skills")

	out, err = f.run(t, "resume")
	require.NoError(t, err)
	assert.Contains(t, out, "Experience")
	assert.NotContains(t, out, "## Experience")
}

func TestMedia(t *testing.T) {
	f := newFixture(t)
	f.s.SetMedia([]content.MediaItem{
		{ID: "talks/gophercon.mp4", Title: "Gophercon", Category: "Talks", Type: content.MediaVideo, MIME: "video/mp4", Size: 2048, Path: "/m/talks/gophercon.mp4"},
		{ID: "travel/lisbon.png", Title: "Lisbon", Category: "Travel", Type: content.MediaImage, MIME: "image/png", Size: 512, Path: "/m/travel/lisbon.png"},
	})

	out, err := f.run(t, "media")
	require.NoError(t, err)
	assert.Contains(t, out, "[All] Talks Travel")
	assert.Contains(t, out, "Gophercon")
	assert.Contains(t, out, "2.0 KB")

	out, err = f.run(t, "media", "--category", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "Lisbon")
	assert.NotContains(t, out, "Gophercon")

	out, err = f.run(t, "media", "-c", "Travel", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "image/png")
	assert.Contains(t, out, "/m/travel/lisbon.png")
	assert.Empty(t, f.opener.urls, "viewer only opens interactively")

	_, err = f.run(t, "media", "show", "3")
	assert.ErrorContains(t, err, "out of range")
}

func TestMedia_Empty(t *testing.T) {
	f := newFixture(t)
	f.s.SetMedia(nil)
	out, err := f.run(t, "media")
	require.NoError(t, err)
	assert.Contains(t, out, "The gallery is empty")
}

func TestTheme_ToggleAndShow(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "light")
	assert.Contains(t, out, "following the OS (manual)")

	out, err = f.run(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme is now dark")

	out, err = f.run(t, "theme")
	require.NoError(t, err)
	assert.Contains(t, out, "saved preference")

	v, ok, err := f.kv.Get(theme.PreferenceKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestTheme_OSSignal(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "theme", "os", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")
	assert.Equal(t, theme.Dark, f.s.Theme.Current())
	assert.Zero(t, f.kv.Writes)

	_, err = f.run(t, "theme", "toggle")
	require.NoError(t, err)
	_, err = f.run(t, "theme", "os", "dark")
	require.NoError(t, err)
	assert.Equal(t, theme.Light, f.s.Theme.Current(), "saved preference wins")

	_, err = f.run(t, "theme", "os", "sepia")
	assert.Error(t, err)

	f.s.Manual = nil
	_, err = f.run(t, "theme", "os", "light")
	assert.ErrorContains(t, err, "cannot be driven")
}

func TestContact_Flags(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "contact", "--name", "Sam", "--email", "sam@example.com", "--message", "Let's talk about Go tooling.")
	require.NoError(t, err)
	require.Len(t, f.opener.urls, 1)
	assert.True(t, strings.HasPrefix(f.opener.urls[0], "mailto:hello@folio.example?subject=Contact%20from%20Sam&body="))
	assert.Contains(t, out, "copied to your clipboard")
	assert.True(t, strings.HasPrefix(f.clip.text, "To: hello@folio.example\nSubject: Contact from Sam\n\n"))
}

func TestContact_ManualFallback(t *testing.T) {
	f := newFixture(t)
	f.clip.err = errors.New("no clipboard")

	out, err := f.run(t, "contact", "-n", "Sam", "-e", "sam@example.com", "-m", "Let's talk about Go tooling.")
	require.NoError(t, err)
	assert.Contains(t, out, "Copy the message below")
	assert.Contains(t, out, "Subject: Contact from Sam")
}

func TestContact_EmailOpened(t *testing.T) {
	f := newFixture(t)
	f.opener.err = nil

	out, err := f.run(t, "contact", "-n", "Sam", "-e", "sam@example.com", "-m", "Let's talk about Go tooling.")
	require.NoError(t, err)
	assert.Contains(t, out, "email app should now be open")
	assert.Empty(t, f.clip.text)
}

func TestContact_Invalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "contact", "-n", "Sam", "-e", "not-an-email", "-m", "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, contact.ErrInvalid)
	assert.Equal(t, "contact: Invalid email format; Message must be at least 10 characters", err.Error())
	assert.Empty(t, f.opener.urls)
}

func TestContact_InteractiveForm(t *testing.T) {
	f := newFixture(t)
	origForm, origTTY := runForm, isTTY
	t.Cleanup(func() { runForm, isTTY = origForm, origTTY })
	isTTY = func(io.Reader) bool { return true }

	var initial ui.FormValues
	runForm = func(v ui.FormValues, validate func(ui.FormValues) map[string]string) (ui.FormResult, error) {
		initial = v
		filled := ui.FormValues{Name: v.Name, Email: "sam@example.com", Message: "Hello from the form."}
		assert.Empty(t, validate(filled))
		assert.Contains(t, validate(ui.FormValues{}), ui.FieldName)
		return ui.FormResult{Values: filled, Submitted: true}, nil
	}

	out, err := f.run(t, "contact", "--name", "Sam")
	require.NoError(t, err)
	assert.Equal(t, "Sam", initial.Name)
	assert.Contains(t, out, "Message ready!")

	runForm = func(v ui.FormValues, _ func(ui.FormValues) map[string]string) (ui.FormResult, error) {
		return ui.FormResult{Values: v}, nil
	}
	out, err = f.run(t, "contact")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
}

func TestContact_CopyAddress(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "contact", "--copy-address")
	require.NoError(t, err)
	assert.Contains(t, out, "Email copied to clipboard.")
	assert.Equal(t, "hello@folio.example", f.clip.text)

	f.clip.err = errors.New("unsupported")
	out, err = f.run(t, "contact", "--copy-address")
	require.NoError(t, err)
	assert.Contains(t, out, "The address is hello@folio.example")
}

func TestAlias_SetListRemovePersist(t *testing.T) {
	f := newFixture(t)
	f.s.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	out, err := f.run(t, "alias", "go=articles", "--tag", "go")
	require.NoError(t, err)
	assert.Equal(t, "alias go='articles --tag go'\n", out)

	cfg, err := config.LoadFrom(f.s.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "articles --tag go", cfg.Aliases["go"])

	out, err = f.run(t, "alias")
	require.NoError(t, err)
	assert.Contains(t, out, "alias go='articles --tag go'")
	assert.Contains(t, out, "alias quit='exit'")

	_, err = f.run(t, "unalias", "go")
	require.NoError(t, err)
	cfg, err = config.LoadFrom(f.s.ConfigPath)
	require.NoError(t, err)
	assert.NotContains(t, cfg.Aliases, "go")

	_, err = f.run(t, "unalias", "go")
	assert.ErrorContains(t, err, "not found")
}

func TestParseAliasDefinition(t *testing.T) {
	tests := []struct {
		def       string
		wantName  string
		wantValue string
		wantOK    bool
	}{
		{def: "cv=resume", wantName: "cv", wantValue: "resume", wantOK: true},
		{def: "t='theme toggle'", wantName: "t", wantValue: "theme toggle", wantOK: true},
		{def: `t="theme toggle"`, wantName: "t", wantValue: "theme toggle", wantOK: true},
		{def: "=resume"},
		{def: "noequals"},
		{def: "bad name=resume"},
		{def: "empty="},
	}
	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			name, value, ok := parseAliasDefinition(tt.def)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestVersion(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "folio-shell version dev")
}

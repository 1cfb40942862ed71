package content_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gYonder/folio-shell/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := content.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Profile.Name)
	assert.NotEmpty(t, c.Profile.Email)
	assert.NotEmpty(t, c.Experience)
	assert.NotEmpty(t, c.Skills)
	assert.NotEmpty(t, c.Projects)
	assert.NotEmpty(t, c.Education)

	articles := c.Articles()
	require.NotEmpty(t, articles)
	for i := 1; i < len(articles); i++ {
		assert.False(t, articles[i].PublishDate.After(articles[i-1].PublishDate), "articles are newest first")
	}
	for _, a := range articles {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Title)
		assert.NotContains(t, a.Content, "publish_date:")
	}
}

func testFS(articles map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{
		"profile.yaml": {Data: []byte("name: Test Owner\nemail: owner@example.com\n")},
	}
	for name, body := range articles {
		fsys["articles/"+name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

const (
	older = "---\nid: older\ntitle: Older\npublish_date: 2023-01-01\ntags: [Go]\n---\nbody one\n"
	newer = "---\nid: newer\ntitle: Newer\npublish_date: 2024-06-01\nread_time: 3\ntags: [go, ops]\n---\n\n# Newer\n"
)

func TestCatalog_ArticlesAndLookup(t *testing.T) {
	c, err := content.LoadFS(testFS(map[string]string{"a.md": older, "b.md": newer}))
	require.NoError(t, err)

	assert.Equal(t, []string{"newer", "older"}, c.ArticleIDs())

	a, err := c.Article("newer")
	require.NoError(t, err)
	assert.Equal(t, "Newer", a.Title)
	assert.Equal(t, 3, a.ReadTime)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), a.PublishDate)
	assert.Equal(t, "# Newer\n", a.Content)

	_, err = c.Article("missing")
	assert.True(t, errors.Is(err, content.ErrNotFound))

	assert.Len(t, c.ArticlesByTag("GO"), 2)
	assert.Len(t, c.ArticlesByTag("ops"), 1)
	assert.Empty(t, c.ArticlesByTag("rust"))
	assert.Equal(t, []string{"Go", "go", "ops"}, c.Tags())
}

func TestCatalog_ArticlesReturnsCopy(t *testing.T) {
	c, err := content.LoadFS(testFS(map[string]string{"a.md": older}))
	require.NoError(t, err)

	list := c.Articles()
	list[0].Title = "changed"
	a, err := c.Article("older")
	require.NoError(t, err)
	assert.Equal(t, "Older", a.Title)
}

func TestLoadFS_DuplicateID(t *testing.T) {
	_, err := content.LoadFS(testFS(map[string]string{"a.md": older, "b.md": older}))
	assert.ErrorContains(t, err, "duplicate article id")
}

func TestParseArticle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
		wantID  string
		body    string
	}{
		{name: "basic", in: "---\nid: x\ntitle: X\n---\nhello\n", wantID: "x", body: "hello\n"},
		{name: "crlf", in: "---\r\nid: y\r\ntitle: Y\r\n---\r\nbody\r\n", wantID: "y", body: "body\n"},
		{name: "no body", in: "---\ntitle: Z\n---", body: ""},
		{name: "no front matter", in: "# just markdown", wantErr: true},
		{name: "unterminated", in: "---\ntitle: X\nbody", wantErr: true},
		{name: "missing title", in: "---\nid: x\n---\n", wantErr: true},
		{name: "bad date", in: "---\ntitle: X\npublish_date: yesterday\n---\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := content.ParseArticle([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, a.ID)
			assert.Equal(t, tt.body, a.Content)
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"my-trip_2024":     "My Trip 2024",
		"  spaced   out  ": "Spaced Out",
		"already Title":    "Already Title",
		"o'neil":           "O'Neil",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, content.TitleCase(in), in)
	}
}

// png and mp4 headers are enough for mimetype to recognize the files.
var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	mp4Header = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")
)

func writeMedia(t *testing.T, dir, rel string, data []byte) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, data, 0o644))
}

func TestScanMedia(t *testing.T) {
	dir := t.TempDir()
	writeMedia(t, dir, "travel/lisbon-tram.png", pngHeader)
	writeMedia(t, dir, "talks/go_meetup.mp4", mp4Header)
	writeMedia(t, dir, "travel/nested/deep_shot.jpg", []byte("not really a jpeg"))
	writeMedia(t, dir, "avatar.png", pngHeader)
	writeMedia(t, dir, "notes/readme.txt", []byte("ignored"))

	items, err := content.ScanMedia(dir)
	require.NoError(t, err)
	require.Len(t, items, 4)

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	assert.Equal(t, []string{"Avatar", "Deep Shot", "Go Meetup", "Lisbon Tram"}, titles)

	byTitle := map[string]content.MediaItem{}
	for _, it := range items {
		byTitle[it.Title] = it
	}
	assert.Equal(t, "Misc", byTitle["Avatar"].Category)
	assert.Equal(t, "Travel", byTitle["Deep Shot"].Category)
	assert.Equal(t, "Talks", byTitle["Go Meetup"].Category)
	assert.Equal(t, content.MediaVideo, byTitle["Go Meetup"].Type)
	assert.Equal(t, content.MediaImage, byTitle["Lisbon Tram"].Type)
	assert.Equal(t, "image/png", byTitle["Lisbon Tram"].MIME)
	assert.Equal(t, "travel/lisbon-tram.png", byTitle["Lisbon Tram"].ID)
	assert.Equal(t, int64(len(pngHeader)), byTitle["Lisbon Tram"].Size)

	assert.Equal(t, []string{"All", "Misc", "Travel", "Talks"}, content.MediaCategories(items))
	assert.Len(t, content.FilterMedia(items, "All"), 4)
	assert.Len(t, content.FilterMedia(items, ""), 4)
	assert.Len(t, content.FilterMedia(items, "travel"), 2)
	assert.Empty(t, content.FilterMedia(items, "Food"))
}

func TestScanMedia_MissingDir(t *testing.T) {
	items, err := content.ScanMedia(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, []string{"All"}, content.MediaCategories(items))
}

func TestResumeMarkdown(t *testing.T) {
	c := &content.Catalog{
		Profile: content.Profile{Name: "Sam Lee", Role: "Engineer", Location: "Porto", Email: "sam@site.example",
			Links: []content.Link{{Label: "GitHub", URL: "https://github.com/sam"}}},
		Experience: []content.Experience{{Company: "Acme", Role: "SRE", Period: "2020 – Present", Achievements: []string{"Kept it up."}}},
		Education:  []content.Education{{Institution: "Uni", Degree: "BSc", Period: "2016 – 2019"}},
		Skills:     []content.SkillCategory{{Title: "Languages", Skills: []string{"Go", "SQL"}}},
	}

	want := "# Sam Lee\n\n" +
		"**Engineer** · Porto · sam@site.example\n\n" +
		"[GitHub](https://github.com/sam)\n\n" +
		"## Experience\n\n" +
		"### SRE, Acme\n\n" +
		"*2020 – Present*\n\n" +
		"- Kept it up.\n\n" +
		"## Education\n\n" +
		"### BSc\n\n" +
		"Uni · *2016 – 2019*\n\n" +
		"## Skills\n\n" +
		"- **Languages:** Go, SQL\n"
	assert.Equal(t, want, c.ResumeMarkdown())
}

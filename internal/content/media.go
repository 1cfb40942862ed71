package content

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
)

// MediaPattern selects gallery files under the media directory.
const MediaPattern = "**/*.{jpg,jpeg,png,webp,svg,mp4}"

// AllCategories is the pseudo-category that disables filtering.
const AllCategories = "All"

const rootCategory = "Misc"

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type MediaItem struct {
	// ID is the slash-separated path relative to the media directory.
	ID       string
	Path     string
	Type     MediaType
	Title    string
	Category string
	MIME     string
	Size     int64
}

// ScanMedia lists gallery items under dir, sorted by title. A missing dir
// yields no items.
func ScanMedia(dir string) ([]MediaItem, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), MediaPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan media: %w", err)
	}

	items := make([]MediaItem, 0, len(matches))
	for _, rel := range matches {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		item := newMediaItem(rel)
		item.Path = full

		if info, err := os.Stat(full); err == nil {
			item.Size = info.Size()
		}
		if mt, err := mimetype.DetectFile(full); err == nil {
			item.MIME = mt.String()
			if strings.HasPrefix(mt.String(), "video/") {
				item.Type = MediaVideo
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Title != items[j].Title {
			return items[i].Title < items[j].Title
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// newMediaItem derives category, title and type from the relative path.
func newMediaItem(rel string) MediaItem {
	category := rootCategory
	if first, _, nested := strings.Cut(rel, "/"); nested {
		category = TitleCase(first)
	}

	base := path.Base(rel)
	ext := strings.ToLower(path.Ext(base))
	title := TitleCase(strings.TrimSuffix(base, path.Ext(base)))
	if title == "" {
		title = "Media Item"
	}

	kind := MediaImage
	if ext == ".mp4" {
		kind = MediaVideo
	}
	return MediaItem{ID: rel, Type: kind, Title: title, Category: category}
}

// MediaCategories returns "All" followed by the distinct categories in
// order of first appearance.
func MediaCategories(items []MediaItem) []string {
	cats := []string{AllCategories}
	seen := map[string]bool{}
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			cats = append(cats, it.Category)
		}
	}
	return cats
}

// FilterMedia returns the items in category. "All" and "" return every
// item. Matching ignores case.
func FilterMedia(items []MediaItem, category string) []MediaItem {
	if category == "" || strings.EqualFold(category, AllCategories) {
		return items
	}
	var out []MediaItem
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

// TitleCase turns "my-trip_2024" into "My Trip 2024": dashes and
// underscores become spaces, runs of whitespace collapse, and the first
// character of every word is upper-cased. Other characters are kept.
func TitleCase(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	b := []byte(s)
	for i := range b {
		if isWordByte(b[i]) && (i == 0 || !isWordByte(b[i-1])) && b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

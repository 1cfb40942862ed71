package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type Article struct {
	ID          string
	Title       string
	Description string
	PublishDate time.Time
	ReadTime    int
	Tags        []string
	// Content is the Markdown body without front matter.
	Content string
}

type frontMatter struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PublishDate string   `yaml:"publish_date"`
	ReadTime    int      `yaml:"read_time"`
	Tags        []string `yaml:"tags"`
}

var errNoFrontMatter = errors.New("missing front matter")

// ParseArticle splits a Markdown document into its YAML front matter,
// delimited by "---" lines, and body.
func ParseArticle(data []byte) (Article, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(text, "---\n") {
		return Article{}, errNoFrontMatter
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	var head, body string
	switch {
	case end >= 0:
		head, body = rest[:end], rest[end+len("\n---\n"):]
	case strings.HasSuffix(rest, "\n---"):
		head = strings.TrimSuffix(rest, "\n---")
	default:
		return Article{}, fmt.Errorf("%w: unterminated", errNoFrontMatter)
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return Article{}, fmt.Errorf("front matter: %w", err)
	}
	if fm.Title == "" {
		return Article{}, errors.New("front matter: title is required")
	}

	a := Article{
		ID:          fm.ID,
		Title:       fm.Title,
		Description: fm.Description,
		ReadTime:    fm.ReadTime,
		Tags:        fm.Tags,
		Content:     strings.TrimLeft(body, "\n"),
	}
	if fm.PublishDate != "" {
		t, err := time.Parse(dateLayout, fm.PublishDate)
		if err != nil {
			return Article{}, fmt.Errorf("front matter: publish_date: %w", err)
		}
		a.PublishDate = t
	}
	return a, nil
}

func (a Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

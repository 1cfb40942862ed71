// Package content holds the portfolio data: profile, experience, skills,
// projects, education and articles, embedded at build time, plus the media
// gallery scanned from disk.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data
var embedded embed.FS

// ErrNotFound is returned for unknown article ids.
var ErrNotFound = errors.New("not found")

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type Profile struct {
	Name       string   `yaml:"name"`
	Role       string   `yaml:"role"`
	Location   string   `yaml:"location"`
	Email      string   `yaml:"email"`
	Summary    string   `yaml:"summary"`
	Highlights []string `yaml:"highlights"`
	Links      []Link   `yaml:"links"`
}

type Experience struct {
	Company      string   `yaml:"company"`
	Role         string   `yaml:"role"`
	Period       string   `yaml:"period"`
	Location     string   `yaml:"location"`
	Achievements []string `yaml:"achievements"`
}

type SkillCategory struct {
	Title  string   `yaml:"title"`
	Skills []string `yaml:"skills"`
}

type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	Link        string   `yaml:"link,omitempty"`
}

type Education struct {
	Institution string `yaml:"institution"`
	Degree      string `yaml:"degree"`
	Period      string `yaml:"period"`
	Location    string `yaml:"location"`
	GPA         string `yaml:"gpa,omitempty"`
}

// Catalog is the loaded, read-only portfolio.
type Catalog struct {
	Profile    Profile
	Experience []Experience
	Skills     []SkillCategory
	Projects   []Project
	Education  []Education

	articles []Article
	byID     map[string]*Article
}

// Load reads the embedded portfolio.
func Load() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads a portfolio laid out as profile.yaml, experience.yaml,
// skills.yaml, projects.yaml, education.yaml and articles/*.md.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Article)}

	files := []struct {
		name string
		into any
	}{
		{"profile.yaml", &c.Profile},
		{"experience.yaml", &c.Experience},
		{"skills.yaml", &c.Skills},
		{"projects.yaml", &c.Projects},
		{"education.yaml", &c.Education},
	}
	for _, f := range files {
		if err := decodeYAML(fsys, f.name, f.into); err != nil {
			return nil, err
		}
	}

	names, err := fs.Glob(fsys, "articles/*.md")
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		a, err := ParseArticle(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if a.ID == "" {
			a.ID = strings.TrimSuffix(path.Base(name), ".md")
		}
		if _, dup := c.byID[a.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate article id %q", name, a.ID)
		}
		c.articles = append(c.articles, a)
		c.byID[a.ID] = nil
	}

	// Newest first; ties broken by id so the order is stable.
	sort.SliceStable(c.articles, func(i, j int) bool {
		ai, aj := c.articles[i], c.articles[j]
		if !ai.PublishDate.Equal(aj.PublishDate) {
			return ai.PublishDate.After(aj.PublishDate)
		}
		return ai.ID < aj.ID
	})
	for i := range c.articles {
		c.byID[c.articles[i].ID] = &c.articles[i]
	}
	return c, nil
}

func decodeYAML(fsys fs.FS, name string, into any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Articles returns all articles, newest first.
func (c *Catalog) Articles() []Article {
	out := make([]Article, len(c.articles))
	copy(out, c.articles)
	return out
}

// Article returns the article with id, or ErrNotFound.
func (c *Catalog) Article(id string) (Article, error) {
	if a, ok := c.byID[id]; ok && a != nil {
		return *a, nil
	}
	return Article{}, fmt.Errorf("article %q: %w", id, ErrNotFound)
}

// ArticlesByTag returns articles carrying tag (case-insensitive), newest
// first.
func (c *Catalog) ArticlesByTag(tag string) []Article {
	var out []Article
	for _, a := range c.articles {
		if a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out
}

// ArticleIDs returns ids in display order.
func (c *Catalog) ArticleIDs() []string {
	ids := make([]string, len(c.articles))
	for i, a := range c.articles {
		ids[i] = a.ID
	}
	return ids
}

// Tags returns the distinct article tags, sorted.
func (c *Catalog) Tags() []string {
	seen := map[string]bool{}
	var tags []string
	for _, a := range c.articles {
		for _, t := range a.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

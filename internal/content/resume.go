package content

import (
	"fmt"
	"strings"
)

// ResumeMarkdown renders the profile, experience, education and skills as
// a single Markdown document.
func (c *Catalog) ResumeMarkdown() string {
	var b strings.Builder
	p := c.Profile

	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "**%s**", p.Role)
	if p.Location != "" {
		fmt.Fprintf(&b, " · %s", p.Location)
	}
	if p.Email != "" {
		fmt.Fprintf(&b, " · %s", p.Email)
	}
	b.WriteString("\n\n")
	if p.Summary != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(p.Summary))
	}
	if len(p.Links) > 0 {
		links := make([]string, len(p.Links))
		for i, l := range p.Links {
			links[i] = fmt.Sprintf("[%s](%s)", l.Label, l.URL)
		}
		fmt.Fprintf(&b, "%s\n\n", strings.Join(links, " · "))
	}

	if len(c.Experience) > 0 {
		b.WriteString("## Experience\n\n")
		for _, e := range c.Experience {
			fmt.Fprintf(&b, "### %s, %s\n\n", e.Role, e.Company)
			fmt.Fprintf(&b, "*%s", e.Period)
			if e.Location != "" {
				fmt.Fprintf(&b, " · %s", e.Location)
			}
			b.WriteString("*\n\n")
			for _, a := range e.Achievements {
				fmt.Fprintf(&b, "- %s\n", a)
			}
			if len(e.Achievements) > 0 {
				b.WriteString("\n")
			}
		}
	}

	if len(c.Education) > 0 {
		b.WriteString("## Education\n\n")
		for _, e := range c.Education {
			fmt.Fprintf(&b, "### %s\n\n", e.Degree)
			fmt.Fprintf(&b, "%s · *%s*", e.Institution, e.Period)
			if e.GPA != "" {
				fmt.Fprintf(&b, " · %s", e.GPA)
			}
			b.WriteString("\n\n")
		}
	}

	if len(c.Skills) > 0 {
		b.WriteString("## Skills\n\n")
		for _, s := range c.Skills {
			fmt.Fprintf(&b, "- **%s:** %s\n", s.Title, strings.Join(s.Skills, ", "))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

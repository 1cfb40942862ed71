package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// FormatSize returns a human-readable size string
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDate renders a publish or employment date, "Present" for zero.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Present"
	}
	return t.Format("Jan 2006")
}

// RenderLink formats a URL with the link style, wrapped in an OSC 8
// hyperlink so terminals that support it make it clickable.
func RenderLink(url string) string {
	return ansi.SetHyperlink(url) + S().Link.Render(url) + ansi.ResetHyperlink()
}

// RenderTags renders tags as "#a #b".
func RenderTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = S().Tag.Render("#" + tag)
	}
	return strings.Join(parts, " ")
}

// Section renders a page heading with an underline of the same width.
func Section(title string) string {
	s := S()
	return s.Header.Render(title) + "\n" + s.Muted.Render(strings.Repeat("─", VisibleLen(title)))
}

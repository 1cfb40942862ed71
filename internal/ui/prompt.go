package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RenderPrompt renders a Powerline-style prompt: owner, current page and
// the theme glyph.
func RenderPrompt(owner, page string) string {
	s := S()
	p := s.Palette

	ownerStyle := lipgloss.NewStyle().Background(p.Mauve).Foreground(p.Base).Padding(0, 1).Bold(true)
	pageStyle := lipgloss.NewStyle().Background(p.Surface).Foreground(p.Text).Padding(0, 1)
	glyphStyle := lipgloss.NewStyle().Background(p.Blue).Foreground(p.Base).Padding(0, 1)

	seg1 := ownerStyle.Render(owner)
	sep1 := lipgloss.NewStyle().Foreground(p.Mauve).Background(p.Surface).Render("")
	seg2 := pageStyle.Render(page)
	sep2 := lipgloss.NewStyle().Foreground(p.Surface).Background(p.Blue).Render("")
	seg3 := glyphStyle.Render(s.Theme.Glyph())
	sep3 := lipgloss.NewStyle().Foreground(p.Blue).Render("")

	return fmt.Sprintf("%s%s%s%s%s%s ", seg1, sep1, seg2, sep2, seg3, sep3)
}

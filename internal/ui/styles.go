package ui

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/gYonder/folio-shell/internal/theme"
)

// Catppuccin Mocha (dark theme)
var mocha = flavor{
	Pink: "#f5c2e7", Mauve: "#cba6f7", Red: "#f38ba8", Peach: "#fab387",
	Yellow: "#f9e2af", Green: "#a6e3a1", Teal: "#94e2d5", Blue: "#89b4fa",
	Lavender: "#b4befe",
	Text: "#cdd6f4", Subtext1: "#bac2de", Overlay1: "#7f849c",
	Surface1: "#45475a", Surface0: "#313244", Base: "#1e1e2e",
}

// Catppuccin Latte (light theme)
var latte = flavor{
	Pink: "#ea76cb", Mauve: "#8839ef", Red: "#d20f39", Peach: "#fe640b",
	Yellow: "#df8e1d", Green: "#40a02b", Teal: "#179299", Blue: "#1e66f5",
	Lavender: "#7287fd",
	Text: "#4c4f69", Subtext1: "#5c5f77", Overlay1: "#8c8fa1",
	Surface1: "#bcc0cc", Surface0: "#ccd0da", Base: "#eff1f5",
}

type flavor struct {
	Pink, Mauve, Red, Peach, Yellow, Green, Teal, Blue, Lavender lipgloss.Color
	Text, Subtext1, Overlay1, Surface1, Surface0, Base           lipgloss.Color
}

// Palette holds the colors of one theme.
type Palette struct {
	Red, Green, Yellow, Blue, Magenta, Cyan, Peach, Mauve lipgloss.Color
	Text, Subtext, Overlay, Surface, Code, Base           lipgloss.Color
}

// Styles is the semantic style set derived from a Palette.
type Styles struct {
	Theme   theme.State
	Palette Palette

	Header  lipgloss.Style
	Title   lipgloss.Style
	Accent  lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Date    lipgloss.Style
	Tag     lipgloss.Style
	Command lipgloss.Style
	Link    lipgloss.Style
	Image   lipgloss.Style
	Video   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

var current atomic.Pointer[Styles]

func init() {
	ApplyTheme(theme.Light)
}

// ApplyTheme swaps the active styles. It is registered as a theme.Store
// observer and may be called from a signal goroutine.
func ApplyTheme(st theme.State) {
	current.Store(NewStyles(st))
}

// S returns the active styles.
func S() *Styles {
	return current.Load()
}

// ActiveTheme reports the theme the active styles were built for.
func ActiveTheme() theme.State {
	return S().Theme
}

func paletteFor(st theme.State) Palette {
	f := latte
	if st.IsDark() {
		f = mocha
	}
	return Palette{
		Red: f.Red, Green: f.Green, Yellow: f.Yellow, Blue: f.Blue,
		Magenta: f.Pink, Cyan: f.Teal, Peach: f.Peach, Mauve: f.Mauve,
		Text: f.Text, Subtext: f.Subtext1, Overlay: f.Overlay1,
		Surface: f.Surface1, Code: f.Surface0, Base: f.Base,
	}
}

// NewStyles builds the style set for st without activating it.
func NewStyles(st theme.State) *Styles {
	p := paletteFor(st)
	return &Styles{
		Theme:   st,
		Palette: p,

		// Section headers (magenta, bold)
		Header: lipgloss.NewStyle().Foreground(p.Magenta).Bold(true),
		// Item titles (blue, bold)
		Title:  lipgloss.NewStyle().Foreground(p.Blue).Bold(true),
		Accent: lipgloss.NewStyle().Foreground(p.Mauve),
		Text:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:  lipgloss.NewStyle().Foreground(p.Overlay),
		Date:   lipgloss.NewStyle().Foreground(p.Subtext),
		Tag:    lipgloss.NewStyle().Foreground(p.Cyan),
		// Command names (green, bold)
		Command: lipgloss.NewStyle().Foreground(p.Green).Bold(true),
		Link:    lipgloss.NewStyle().Foreground(p.Blue).Underline(true),
		Image:   lipgloss.NewStyle().Foreground(p.Magenta),
		Video:   lipgloss.NewStyle().Foreground(p.Magenta).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(p.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(p.Peach),
		Success: lipgloss.NewStyle().Foreground(p.Green),
	}
}

// StyleForMedia returns the style for a media item type.
func StyleForMedia(kind string) lipgloss.Style {
	s := S()
	switch kind {
	case "image":
		return s.Image
	case "video":
		return s.Video
	default:
		return s.Text
	}
}

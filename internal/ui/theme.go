package ui

import "github.com/gYonder/folio-shell/internal/theme"

// SyntaxTheme returns the chroma style name for the active theme.
func SyntaxTheme() string {
	return SyntaxThemeFor(ActiveTheme())
}

func SyntaxThemeFor(st theme.State) string {
	if st.IsDark() {
		return "dracula"
	}
	return "github"
}

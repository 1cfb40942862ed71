// Package theme resolves the effective light/dark mode for the shell.
//
// Three sources are consulted in priority order: an explicit toggle made in
// this session, the persisted preference record, and the operating system
// color-scheme signal. A persisted record pins the mode; without one the
// mode follows the OS signal live.
//
//	st := theme.New(prefs.NewFileStore(path), theme.DetectSignal(theme.SignalAuto, log), theme.WithLogger(log))
//	defer st.Close()
//	cancel := st.Observe(ui.ApplyTheme)
//	defer cancel()
//	st.Toggle()
package theme

import "strings"

// State is the effective display mode.
type State string

const (
	Light State = "light"
	Dark  State = "dark"
)

// PreferenceKey is the key the override record is stored under.
const PreferenceKey = "theme"

// FromDark maps an OS "prefers dark" flag to a State.
func FromDark(dark bool) State {
	if dark {
		return Dark
	}
	return Light
}

// IsDark reports whether s is Dark.
func (s State) IsDark() bool {
	return s == Dark
}

// Opposite returns the other state.
func (s State) Opposite() State {
	if s == Dark {
		return Light
	}
	return Dark
}

func (s State) String() string {
	return string(s)
}

// Glyph returns a single-character marker for prompts and status lines.
func (s State) Glyph() string {
	if s == Dark {
		return "☾"
	}
	return "☀"
}

// ParseRecord interprets a stored preference value. An empty value counts
// as no record. Any other value pins the mode, and only "dark" selects Dark.
func ParseRecord(raw string) (State, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return FromDark(strings.EqualFold(raw, string(Dark))), true
}

// ParseState parses a user-supplied "dark" or "light".
func ParseState(raw string) (State, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dark":
		return Dark, true
	case "light":
		return Light, true
	}
	return "", false
}

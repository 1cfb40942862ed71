package session

import (
	"sync"

	"github.com/gYonder/folio-shell/internal/config"
	"github.com/gYonder/folio-shell/internal/contact"
	"github.com/gYonder/folio-shell/internal/content"
	"github.com/gYonder/folio-shell/internal/theme"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// Session is the state shared by every command of one shell run.
type Session struct {
	Config        *config.Config
	ConfigPath    string // where aliases are persisted; empty disables saving
	Theme         *theme.Store
	Catalog       *content.Catalog
	HistoryGetter func() []string
	Aliases       map[string]string // User-defined command aliases
	Log           *zap.Logger

	// Manual is set when the OS signal is the in-process one, so that
	// "theme os" can drive it.
	Manual *theme.ManualSignal

	Clipboard contact.Clipboard
	Opener    contact.Opener

	// Page is the last page rendered, shown in the prompt.
	Page  string
	Owner string

	// Profile is the color profile of the output terminal.
	Profile termenv.Profile
	// Width returns the terminal width, 0 when unknown.
	Width func() int
	// Interactive is true when stdin is a terminal.
	Interactive bool

	mediaOnce sync.Once
	media     []content.MediaItem
	mediaErr  error
	scanMedia func(dir string) ([]content.MediaItem, error)
}

func NewSession(cfg *config.Config, store *theme.Store, catalog *content.Catalog) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		Config:    cfg,
		Theme:     store,
		Catalog:   catalog,
		Aliases:   make(map[string]string),
		Log:       zap.NewNop(),
		Page:      "home",
		Owner:     "guest",
		Profile:   termenv.Ascii,
		scanMedia: content.ScanMedia,
	}

	// Default aliases
	s.Aliases["quit"] = "exit"
	s.Aliases["about"] = "home"
	s.Aliases["blog"] = "articles"
	s.Aliases["cv"] = "resume"
	s.Aliases["gallery"] = "media"
	s.Aliases["dark"] = "theme toggle"

	for name, cmd := range cfg.Aliases {
		s.Aliases[name] = cmd
	}

	return s
}

// Media returns the gallery items, scanning the media directory on first use.
func (s *Session) Media() ([]content.MediaItem, error) {
	s.mediaOnce.Do(func() {
		s.media, s.mediaErr = s.scanMedia(s.Config.MediaDir)
	})
	return s.media, s.mediaErr
}

// SetMedia replaces the gallery with items, bypassing the directory scan.
func (s *Session) SetMedia(items []content.MediaItem) {
	s.mediaOnce.Do(func() {})
	s.media, s.mediaErr = items, nil
}

// TermWidth returns the render width, capped for readability.
func (s *Session) TermWidth() int {
	w := 0
	if s.Width != nil {
		w = s.Width()
	}
	if w <= 0 {
		return 80
	}
	if w > 100 {
		return 100
	}
	return w
}

// Email is the address contact messages are sent to.
func (s *Session) Email() string {
	if s.Config.OwnerEmail != "" {
		return s.Config.OwnerEmail
	}
	if s.Catalog != nil && s.Catalog.Profile.Email != "" {
		return s.Catalog.Profile.Email
	}
	return config.DefaultOwnerEmail
}

package theme

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const gtkDarkKey = "gtk-application-prefer-dark-theme"

// GTKSignal reads the legacy GTK settings.ini dark-theme flag and watches
// the containing directory for rewrites. Editors and settings daemons
// usually replace the file rather than writing it in place, so the
// directory is watched instead of the file.
type GTKSignal struct {
	path string
	log  *zap.Logger

	mu   sync.Mutex
	dark bool

	b broadcaster

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// DefaultGTKSettingsPath returns $XDG_CONFIG_HOME/gtk-3.0/settings.ini.
func DefaultGTKSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gtk-3.0", "settings.ini"), nil
}

// NewGTKSignal opens the settings file at path. It fails if the file cannot
// be read, which callers treat as "this source is unavailable".
func NewGTKSignal(path string, log *zap.Logger) (*GTKSignal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dark, err := readGTKDark(path)
	if err != nil {
		return nil, err
	}
	g := &GTKSignal{path: path, log: log, dark: dark}
	g.b.start = g.startWatch
	g.b.stop = g.stopWatch
	return g, nil
}

func (g *GTKSignal) Name() string { return "gtk" }

func (g *GTKSignal) PrefersDark() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dark
}

func (g *GTKSignal) Subscribe(fn func(bool)) func() {
	return g.b.subscribe(fn)
}

func (g *GTKSignal) startWatch() {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		g.log.Warn("gtk signal: watcher unavailable", zap.Error(err))
		return
	}
	if err := w.Add(filepath.Dir(g.path)); err != nil {
		g.log.Warn("gtk signal: watch failed", zap.String("path", g.path), zap.Error(err))
		w.Close()
		return
	}

	g.watcher = w
	g.done = make(chan struct{})
	g.wg.Add(1)
	go g.run(w, g.done)
	g.log.Debug("gtk signal: watching", zap.String("path", g.path))
}

func (g *GTKSignal) stopWatch() {
	if g.watcher == nil {
		return
	}
	close(g.done)
	if err := g.watcher.Close(); err != nil {
		g.log.Warn("gtk signal: close watcher", zap.Error(err))
	}
	g.wg.Wait()
	g.watcher = nil
	g.log.Debug("gtk signal: stopped")
}

func (g *GTKSignal) run(w *fsnotify.Watcher, done <-chan struct{}) {
	defer g.wg.Done()

	target := filepath.Clean(g.path)
	for {
		select {
		case <-done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			g.reload()
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			g.log.Warn("gtk signal: watcher error", zap.Error(err))
		}
	}
}

// reload re-reads the file and notifies on change. A transiently missing
// file (mid-replace) keeps the last reading.
func (g *GTKSignal) reload() {
	dark, err := readGTKDark(g.path)
	if err != nil {
		return
	}

	g.mu.Lock()
	changed := dark != g.dark
	g.dark = dark
	g.mu.Unlock()

	if changed {
		g.log.Debug("gtk signal: changed", zap.Bool("dark", dark))
		g.b.emit(dark)
	}
}

func readGTKDark(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return parseGTKSettings(data), nil
}

// parseGTKSettings looks for the dark-theme key in the [Settings] section.
// Keys outside any section are accepted too; GTK itself is lenient here.
func parseGTKSettings(data []byte) bool {
	section := ""
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		if section != "" && section != "Settings" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != gtkDarkKey {
			continue
		}
		value = strings.TrimSpace(value)
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		return value == "yes"
	}
	return false
}

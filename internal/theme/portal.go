package theme

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	portalSettings  = "org.freedesktop.portal.Settings"
	portalChanged   = "SettingChanged"
	appearanceNS    = "org.freedesktop.appearance"
	colorSchemeKey  = "color-scheme"
	colorSchemeDark = 1
)

// PortalSignal reads the desktop color scheme from the XDG desktop portal
// and listens for SettingChanged broadcasts on the session bus.
type PortalSignal struct {
	conn *dbus.Conn
	log  *zap.Logger

	mu   sync.Mutex
	dark bool

	b broadcaster

	signals chan *dbus.Signal
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewPortalSignal connects to the session bus and reads the current scheme.
// It fails when there is no session bus or no portal implementing Settings.
func NewPortalSignal(log *zap.Logger) (*PortalSignal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}

	p := &PortalSignal{conn: conn, log: log}
	dark, err := p.read()
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.dark = dark
	p.b.start = p.startListen
	p.b.stop = p.stopListen
	return p, nil
}

func (p *PortalSignal) Name() string { return "portal" }

func (p *PortalSignal) PrefersDark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

func (p *PortalSignal) Subscribe(fn func(bool)) func() {
	return p.b.subscribe(fn)
}

// Close drops the bus connection. Subscriptions should be released first.
func (p *PortalSignal) Close() error {
	return p.conn.Close()
}

// read asks for the setting with ReadOne, falling back to the deprecated
// Read method which wraps the value in an extra variant.
func (p *PortalSignal) read() (bool, error) {
	obj := p.conn.Object(portalDest, portalPath)

	var v dbus.Variant
	err := obj.Call(portalSettings+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&v)
	if err != nil {
		if err2 := obj.Call(portalSettings+".Read", 0, appearanceNS, colorSchemeKey).Store(&v); err2 != nil {
			return false, fmt.Errorf("read %s.%s: %w", appearanceNS, colorSchemeKey, err)
		}
	}
	scheme, ok := colorSchemeValue(v)
	if !ok {
		return false, fmt.Errorf("unexpected %s value %s", colorSchemeKey, v.String())
	}
	return scheme == colorSchemeDark, nil
}

func (p *PortalSignal) startListen() {
	if err := p.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalSettings),
		dbus.WithMatchMember(portalChanged),
	); err != nil {
		// Without the filter we still get broadcasts and filter them below.
		p.log.Debug("portal signal: match filter failed", zap.Error(err))
	}

	p.signals = make(chan *dbus.Signal, 16)
	p.done = make(chan struct{})
	p.conn.Signal(p.signals)

	p.wg.Add(1)
	go p.run(p.signals, p.done)
}

func (p *PortalSignal) stopListen() {
	if p.signals == nil {
		return
	}
	p.conn.RemoveSignal(p.signals)
	if err := p.conn.RemoveMatchSignal(
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalSettings),
		dbus.WithMatchMember(portalChanged),
	); err != nil {
		p.log.Debug("portal signal: remove match failed", zap.Error(err))
	}
	close(p.done)
	p.wg.Wait()
	p.signals = nil
}

func (p *PortalSignal) run(signals <-chan *dbus.Signal, done <-chan struct{}) {
	defer p.wg.Done()
	for {
		select {
		case <-done:
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			if sig.Path != portalPath || sig.Name != portalSettings+"."+portalChanged {
				continue
			}
			// Body: namespace, key, value.
			if len(sig.Body) != 3 {
				continue
			}
			ns, _ := sig.Body[0].(string)
			key, _ := sig.Body[1].(string)
			if ns != appearanceNS || key != colorSchemeKey {
				continue
			}
			v, ok := sig.Body[2].(dbus.Variant)
			if !ok {
				continue
			}
			scheme, ok := colorSchemeValue(v)
			if !ok {
				continue
			}
			p.update(scheme == colorSchemeDark)
		}
	}
}

func (p *PortalSignal) update(dark bool) {
	p.mu.Lock()
	changed := dark != p.dark
	p.dark = dark
	p.mu.Unlock()

	if changed {
		p.log.Debug("portal signal: changed", zap.Bool("dark", dark))
		p.b.emit(dark)
	}
}

// colorSchemeValue unwraps nested variants down to the uint32 scheme:
// 0 no preference, 1 prefer dark, 2 prefer light.
func colorSchemeValue(v dbus.Variant) (uint32, bool) {
	for i := 0; i < 3; i++ {
		switch val := v.Value().(type) {
		case dbus.Variant:
			v = val
		case uint32:
			return val, true
		default:
			return 0, false
		}
	}
	return 0, false
}

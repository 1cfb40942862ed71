package theme

import (
	"sync"
)

// Signal is the OS color-scheme capability: a current reading plus a push
// subscription. Unsubscribe functions are safe to call more than once.
type Signal interface {
	PrefersDark() bool
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// Named is implemented by signals that can report where they read from.
type Named interface {
	Name() string
}

// SignalName returns sig's Name, or "unknown".
func SignalName(sig Signal) string {
	if n, ok := sig.(Named); ok {
		return n.Name()
	}
	return "unknown"
}

// broadcaster fans one event source out to subscribers. start runs when the
// first subscriber arrives and stop when the last one leaves, so a source
// with no subscribers holds no goroutines or OS handles.
//
// runMu serializes start/stop against subscribe/unsubscribe. mu only guards
// the subscriber map, so emit can run from the source goroutine while stop
// is waiting for that goroutine to exit.
type broadcaster struct {
	runMu sync.Mutex

	mu   sync.Mutex
	subs map[int]func(bool)
	next int

	start func()
	stop  func()
}

func (b *broadcaster) subscribe(fn func(bool)) func() {
	b.runMu.Lock()
	defer b.runMu.Unlock()

	b.mu.Lock()
	if b.subs == nil {
		b.subs = make(map[int]func(bool))
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	first := len(b.subs) == 1
	b.mu.Unlock()

	if first && b.start != nil {
		b.start()
	}

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *broadcaster) unsubscribe(id int) {
	b.runMu.Lock()
	defer b.runMu.Unlock()

	b.mu.Lock()
	if _, ok := b.subs[id]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.subs, id)
	last := len(b.subs) == 0
	b.mu.Unlock()

	if last && b.stop != nil {
		b.stop()
	}
}

func (b *broadcaster) emit(dark bool) {
	b.mu.Lock()
	fns := make([]func(bool), 0, len(b.subs))
	for i := 0; i < b.next; i++ {
		if fn, ok := b.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// StaticSignal is used when no color-scheme source exists. It always
// reports light and never notifies.
type StaticSignal struct{}

func (StaticSignal) PrefersDark() bool           { return false }
func (StaticSignal) Subscribe(func(bool)) func() { return func() {} }
func (StaticSignal) Name() string                { return "none" }

// ManualSignal is an in-process signal driven by Set. The shell uses it for
// `theme os`, and tests use it to simulate OS changes.
type ManualSignal struct {
	mu   sync.Mutex
	dark bool
	b    broadcaster
}

func NewManualSignal(dark bool) *ManualSignal {
	return &ManualSignal{dark: dark}
}

func (m *ManualSignal) PrefersDark() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

func (m *ManualSignal) Subscribe(fn func(bool)) func() {
	return m.b.subscribe(fn)
}

// Set changes the reading and notifies subscribers if it differs.
func (m *ManualSignal) Set(dark bool) {
	m.mu.Lock()
	changed := m.dark != dark
	m.dark = dark
	m.mu.Unlock()

	if changed {
		m.b.emit(dark)
	}
}

// Subscribers returns the number of live subscriptions.
func (m *ManualSignal) Subscribers() int {
	return m.b.count()
}

func (m *ManualSignal) Name() string { return "manual" }

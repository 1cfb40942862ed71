package theme

import (
	"sync"

	"github.com/gYonder/folio-shell/internal/prefs"
	"go.uber.org/zap"
)

// Store owns the effective theme for one shell session.
//
// State changes are serialized by dispatchMu, which is held while observers
// run, so observers see changes in the order they happened. Observers must
// not call Toggle.
type Store struct {
	kv     prefs.KV
	signal Signal
	log    *zap.Logger

	dispatchMu sync.Mutex

	mu          sync.Mutex
	state       State
	closed      bool
	unsubscribe func()

	obsMu     sync.Mutex
	observers map[int]func(State)
	nextObs   int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed storage errors.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New resolves the initial state and subscribes to sig. A readable record
// wins; otherwise the OS reading decides. Storage errors count as "no
// record". nil sig behaves as StaticSignal.
func New(kv prefs.KV, sig Signal, opts ...Option) *Store {
	if sig == nil {
		sig = StaticSignal{}
	}
	s := &Store{
		kv:        kv,
		signal:    sig,
		log:       zap.NewNop(),
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if st, ok := s.record(); ok {
		s.state = st
		s.log.Debug("theme from preference", zap.String("theme", st.String()))
	} else {
		s.state = FromDark(sig.PrefersDark())
		s.log.Debug("theme from os", zap.String("theme", s.state.String()), zap.String("source", SignalName(sig)))
	}

	s.unsubscribe = sig.Subscribe(s.onSignal)
	return s
}

// Current returns the effective state.
func (s *Store) Current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pinned reports whether a preference record currently exists.
func (s *Store) Pinned() bool {
	_, ok := s.record()
	return ok
}

// Source returns the name of the OS signal in use.
func (s *Store) Source() string {
	return SignalName(s.signal)
}

// Toggle flips the state and persists the new value. A failed write is
// logged and otherwise ignored; the in-session state still flips.
func (s *Store) Toggle() State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = s.state.Opposite()
	next := s.state
	s.mu.Unlock()

	if s.kv != nil {
		if err := s.kv.Set(PreferenceKey, next.String()); err != nil {
			s.log.Warn("persist theme preference", zap.String("theme", next.String()), zap.Error(err))
		}
	}

	s.notify(next)
	return next
}

// Observe registers fn for state changes. fn is not called with the current
// state; callers that need it read Current first.
func (s *Store) Observe(fn func(State)) (cancel func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

// Close releases the OS subscription. It is safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	// Not under mu or dispatchMu: unsubscribing may wait for the signal
	// goroutine, which may itself be blocked in onSignal.
	if unsub != nil {
		unsub()
	}
}

// onSignal applies an OS change unless a record pins the state. The record
// is re-read per event, never cached.
func (s *Store) onSignal(dark bool) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if _, pinned := s.record(); pinned {
		s.log.Debug("os theme change ignored, preference pinned", zap.Bool("dark", dark))
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	next := FromDark(dark)
	changed := next != s.state
	s.state = next
	s.mu.Unlock()

	if changed {
		s.notify(next)
	}
}

func (s *Store) record() (State, bool) {
	if s.kv == nil {
		return "", false
	}
	raw, ok, err := s.kv.Get(PreferenceKey)
	if err != nil {
		s.log.Debug("read theme preference", zap.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}
	return ParseRecord(raw)
}

func (s *Store) notify(st State) {
	s.obsMu.Lock()
	fns := make([]func(State), 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

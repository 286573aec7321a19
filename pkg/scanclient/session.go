package scanclient

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounceWindow is how long an identical decoded value is suppressed
// after an accepted sync. The camera keeps emitting the same code several
// times per second while a badge is in frame.
const DefaultDebounceWindow = 1200 * time.Millisecond

// Syncer submits one scanned identifier downstream. *Client satisfies it.
type Syncer interface {
	Scan(ctx context.Context, id string) (ScanResult, error)
}

// Session owns the per-camera-session debounce state: the last accepted
// value, when it was accepted, and whether a sync is in flight. The guards
// only suppress redundant submissions; a lost race at worst repeats an
// idempotent upstream update.
type Session struct {
	syncer Syncer
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	lastValue string
	lastSeen  time.Time
	inFlight  bool
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession creates a debounce session around a syncer.
func NewSession(syncer Syncer, opts ...SessionOption) *Session {
	s := &Session{
		syncer: syncer,
		window: DefaultDebounceWindow,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Observe handles one decoded detection. The detection is normalized, then
// either submitted downstream or suppressed: duplicates of the last accepted
// value inside the window and any detection arriving while a sync is in
// flight are dropped. The second return reports whether a sync ran.
func (s *Session) Observe(ctx context.Context, det Detection) (ScanResult, bool, error) {
	norm := det.Normalize()
	if norm.Code == "" {
		return ScanResult{}, false, nil
	}

	s.mu.Lock()
	now := s.now()
	if s.inFlight || (norm.Code == s.lastValue && now.Sub(s.lastSeen) < s.window) {
		s.mu.Unlock()
		return ScanResult{}, false, nil
	}
	s.inFlight = true
	s.lastValue = norm.Code
	s.lastSeen = now
	s.mu.Unlock()

	res, err := s.syncer.Scan(ctx, norm.Code)

	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()

	return res, true, err
}

// Reset clears the debounce memo, e.g. when the camera session restarts.
func (s *Session) Reset() {
	s.mu.Lock()
	s.lastValue = ""
	s.lastSeen = time.Time{}
	s.inFlight = false
	s.mu.Unlock()
}

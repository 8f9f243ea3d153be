// ABOUTME: Camera session that drives the navigation history
// ABOUTME: Tracks the current viewpoint, serializes access, and auto-records settled views

package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/models"
	"github.com/rs/zerolog"
)

// DefaultSettleDelay is how long the camera must stay still before a view is recorded.
const DefaultSettleDelay = time.Second

var (
	// ErrNoBack is returned when there is nothing to go back to.
	ErrNoBack = errors.New("no previous viewpoint")

	// ErrNoForward is returned when there is nothing to go forward to.
	ErrNoForward = errors.New("no next viewpoint")

	// ErrNoCurrent is returned when the camera has not been placed yet.
	ErrNoCurrent = errors.New("no current viewpoint")

	// ErrAlreadyCurrent is returned when jumping to the entry already on screen.
	ErrAlreadyCurrent = errors.New("already at this viewpoint")

	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("session closed")
)

// State summarizes the navigation buttons a host would render.
type State struct {
	CanGoBack    bool `json:"can_go_back"`
	CanGoForward bool `json:"can_go_forward"`
	Count        int  `json:"count"`
}

// Session owns a Navigator and the camera's current viewpoint.
// All methods are safe for concurrent use.
type Session struct {
	mu  sync.Mutex
	nav *history.Navigator

	current    models.Viewpoint
	hasCurrent bool

	// anchor is the last viewpoint the camera settled on.
	anchor    models.Viewpoint
	hasAnchor bool

	settleDelay time.Duration
	timer       *time.Timer
	generation  uint64
	closed      bool

	log zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithSettleDelay sets the auto-record debounce. Zero disables auto-recording.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Session) {
		if d < 0 {
			d = 0
		}
		s.settleDelay = d
	}
}

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithStart places the camera at v without recording anything.
func WithStart(v models.Viewpoint) Option {
	return func(s *Session) {
		s.setCurrent(v)
	}
}

// New creates a session driving nav.
func New(nav *history.Navigator, opts ...Option) *Session {
	s := &Session{
		nav:         nav,
		settleDelay: DefaultSettleDelay,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnStateChanged registers a history listener. Listeners run while the session
// is locked and must not call back into the Session.
func (s *Session) OnStateChanged(fn history.StateListener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inner := s.nav.OnStateChanged(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		inner()
	}
}

// setCurrent moves the camera to v as a settled, programmatic move. Caller holds mu.
func (s *Session) setCurrent(v models.Viewpoint) {
	s.stopTimer()
	s.current = v
	s.hasCurrent = true
	s.anchor = v
	s.hasAnchor = true
}

func (s *Session) stopTimer() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Navigate flies to target, recording the current viewpoint first.
func (s *Session) Navigate(target models.Viewpoint) error {
	if err := target.Validate(); err != nil {
		return fmt.Errorf("invalid viewpoint: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if s.hasCurrent {
		s.nav.Push(s.current)
	}
	s.setCurrent(target)
	s.log.Debug().Str("name", target.Label()).Msg("navigate")
	return nil
}

// Back returns to the previous viewpoint and makes it current.
func (s *Session) Back() (models.Viewpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Viewpoint{}, ErrClosed
	}
	if !s.hasCurrent {
		return models.Viewpoint{}, ErrNoCurrent
	}

	prev, ok := s.nav.Back(s.current)
	if !ok {
		return models.Viewpoint{}, ErrNoBack
	}
	s.setCurrent(prev)
	return prev, nil
}

// Forward advances to the next viewpoint and makes it current.
func (s *Session) Forward() (models.Viewpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Viewpoint{}, ErrClosed
	}
	if !s.hasCurrent {
		return models.Viewpoint{}, ErrNoCurrent
	}

	next, ok := s.nav.Forward(s.current)
	if !ok {
		return models.Viewpoint{}, ErrNoForward
	}
	s.setCurrent(next)
	return next, nil
}

// JumpTo moves the camera to the History entry at index.
// It reports whether the target was already recorded in the history.
func (s *Session) JumpTo(index int) (models.Viewpoint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.Viewpoint{}, false, ErrClosed
	}
	if !s.hasCurrent {
		return models.Viewpoint{}, false, ErrNoCurrent
	}

	items := s.nav.AllHistory(s.current)
	if index < 0 || index >= len(items) {
		return models.Viewpoint{}, false, fmt.Errorf("history index %d out of range [0, %d)", index, len(items))
	}
	if items[index].IsCurrent {
		return models.Viewpoint{}, false, ErrAlreadyCurrent
	}

	target := items[index].Viewpoint
	recorded := s.nav.JumpTo(s.current, target)
	s.setCurrent(target)
	s.log.Debug().Int("index", index).Bool("recorded", recorded).Msg("jump")
	return target, recorded, nil
}

// Observe reports that the camera moved to v. Once the camera has been still for the
// settle delay, the previously settled viewpoint is recorded. Each call restarts the wait.
func (s *Session) Observe(v models.Viewpoint) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid viewpoint: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if !s.hasCurrent {
		s.setCurrent(v)
		return nil
	}

	s.stopTimer()
	s.current = v
	if s.settleDelay == 0 {
		return nil
	}

	gen := s.generation
	s.timer = time.AfterFunc(s.settleDelay, func() { s.settle(gen) })
	return nil
}

// settle records the viewpoint being left once the camera has stopped moving.
func (s *Session) settle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}
	s.timer = nil

	if s.hasAnchor && !history.ViewpointsEqual(s.anchor, s.current) {
		s.log.Debug().Str("name", s.anchor.Label()).Msg("auto-record settled viewpoint")
		s.nav.Push(s.anchor)
	}
	s.anchor = s.current
	s.hasAnchor = true
}

// Pending reports whether an auto-record is waiting for the camera to settle.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Clear empties the history. The current viewpoint is kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Clear()
}

// History lists recorded viewpoints around the current one.
// It returns nil before the camera has been placed.
func (s *Session) History() []history.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasCurrent {
		return nil
	}
	return s.nav.AllHistory(s.current)
}

// Current returns the viewpoint on screen.
func (s *Session) Current() (models.Viewpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.hasCurrent
}

// InHistory reports whether v is recorded in the back or forward stack.
func (s *Session) InHistory(v models.Viewpoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.InHistory(v)
}

// State returns the current navigation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		CanGoBack:    s.nav.CanGoBack(),
		CanGoForward: s.nav.CanGoForward(),
		Count:        s.nav.Count(),
	}
}

// Close stops any pending auto-record. Further mutations return ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
	s.closed = true
}

// ABOUTME: Back/forward navigation controller over camera viewpoints
// ABOUTME: Owns the bounded back/forward stacks and emits state-change notifications

package history

import (
	"github.com/harper/vantage/internal/models"
	"github.com/rs/zerolog"
)

// DefaultMaxSize is the per-stack bound used when no other size is configured.
const DefaultMaxSize = 50

// StateListener receives the navigation state after every effective mutation.
type StateListener func(canBack, canForward bool)

type listenerEntry struct {
	id int
	fn StateListener
}

// Navigator records viewpoints and moves back and forward through them.
//
// A Navigator is not safe for concurrent use. Hosts that call it from several
// goroutines must serialize the calls themselves.
type Navigator struct {
	back    *boundedStack[models.Viewpoint]
	forward *boundedStack[models.Viewpoint]
	maxSize int

	listeners []listenerEntry
	nextID    int

	log zerolog.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithMaxSize bounds each stack to n entries. Values below 1 select DefaultMaxSize.
func WithMaxSize(n int) Option {
	return func(nav *Navigator) {
		if n < 1 {
			n = DefaultMaxSize
		}
		nav.maxSize = n
	}
}

// WithLogger sets the logger used for debug tracing of dedup skips and evictions.
func WithLogger(l zerolog.Logger) Option {
	return func(nav *Navigator) {
		nav.log = l
	}
}

// New creates an empty navigator.
func New(opts ...Option) *Navigator {
	nav := &Navigator{
		maxSize: DefaultMaxSize,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(nav)
	}
	nav.back = newBoundedStack[models.Viewpoint](nav.maxSize)
	nav.forward = newBoundedStack[models.Viewpoint](nav.maxSize)
	return nav
}

// OnStateChanged registers fn to run synchronously after each effective mutation.
// Listeners run in registration order. The returned func unregisters fn.
func (n *Navigator) OnStateChanged(fn StateListener) (cancel func()) {
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range n.listeners {
			if l.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

func (n *Navigator) emitStateChanged() {
	canBack, canForward := n.CanGoBack(), n.CanGoForward()
	// Snapshot so listeners may register or cancel while being notified.
	listeners := append([]listenerEntry(nil), n.listeners...)
	for _, l := range listeners {
		l.fn(canBack, canForward)
	}
}

// Push records v as a new history point.
//
// Nothing happens, and no notification fires, when v equals or is similar to the most
// recent back entry. Otherwise v is pushed, the oldest back entry is evicted if the bound
// is exceeded, and the forward stack is discarded.
func (n *Navigator) Push(v models.Viewpoint) {
	if last, ok := n.back.top(); ok {
		if ViewpointsEqual(v, last) {
			n.log.Debug().Str("name", v.Label()).Msg("skip push: identical to last viewpoint")
			return
		}
		if IsSimilar(v, last) {
			n.log.Debug().Str("name", v.Label()).Msg("skip push: similar to last viewpoint")
			return
		}
	}

	if n.back.push(v) {
		n.log.Debug().Int("max", n.maxSize).Msg("evicted oldest back entry")
	}
	if !n.forward.empty() {
		n.log.Debug().Int("dropped", n.forward.count()).Msg("forward branch invalidated")
	}
	n.forward.clear()

	n.emitStateChanged()
}

// Back saves current onto the forward stack and returns the previous viewpoint.
// It reports false, without mutating anything, when there is nothing to go back to.
func (n *Navigator) Back(current models.Viewpoint) (models.Viewpoint, bool) {
	if n.back.empty() {
		return models.Viewpoint{}, false
	}

	if n.forward.push(current) {
		n.log.Debug().Int("max", n.maxSize).Msg("evicted oldest forward entry")
	}
	prev, _ := n.back.pop()

	n.emitStateChanged()
	return prev, true
}

// Forward saves current onto the back stack and returns the next viewpoint.
// It reports false, without mutating anything, when there is nothing to go forward to.
func (n *Navigator) Forward(current models.Viewpoint) (models.Viewpoint, bool) {
	if n.forward.empty() {
		return models.Viewpoint{}, false
	}

	if n.back.push(current) {
		n.log.Debug().Int("max", n.maxSize).Msg("evicted oldest back entry")
	}
	next, _ := n.forward.pop()

	n.emitStateChanged()
	return next, true
}

// Clear empties both stacks. It always notifies, even when already empty.
func (n *Navigator) Clear() {
	n.back.clear()
	n.forward.clear()
	n.emitStateChanged()
}

// CanGoBack reports whether the back stack holds any viewpoint.
func (n *Navigator) CanGoBack() bool {
	return !n.back.empty()
}

// CanGoForward reports whether the forward stack holds any viewpoint.
func (n *Navigator) CanGoForward() bool {
	return !n.forward.empty()
}

// Count returns the number of recorded viewpoints in both stacks.
func (n *Navigator) Count() int {
	return n.back.count() + n.forward.count()
}

// BackLen returns the number of viewpoints on the back stack.
func (n *Navigator) BackLen() int {
	return n.back.count()
}

// ForwardLen returns the number of viewpoints on the forward stack.
func (n *Navigator) ForwardLen() int {
	return n.forward.count()
}

// MaxSize returns the per-stack bound.
func (n *Navigator) MaxSize() int {
	return n.maxSize
}

// InHistory reports whether v exactly equals any recorded viewpoint.
// The caller's current viewpoint is not part of the history.
func (n *Navigator) InHistory(v models.Viewpoint) bool {
	match := func(x models.Viewpoint) bool { return ViewpointsEqual(v, x) }
	return n.back.contains(match) || n.forward.contains(match)
}

// JumpTo prepares a jump from current to target.
//
// When target is already recorded it returns true and changes nothing: target keeps its
// position in the stacks. Otherwise current is pushed (subject to deduplication) and it
// returns false, meaning the caller should treat target as a fresh destination.
func (n *Navigator) JumpTo(current, target models.Viewpoint) bool {
	if n.InHistory(target) {
		return true
	}
	n.Push(current)
	return false
}

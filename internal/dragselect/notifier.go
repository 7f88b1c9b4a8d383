package dragselect

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval approximates one frame on a 60Hz display.
const DefaultFrameInterval = time.Second / 60

// FrameClock schedules a callback to run at the next paint opportunity.
// The returned cancel func stops the callback if it has not run yet and is
// a safe no-op afterwards.
type FrameClock interface {
	OnNextFrame(fn func()) (cancel func())
}

// TickerClock is the production frame clock: it fires callbacks one frame
// interval after scheduling on a timer goroutine.
type TickerClock struct {
	// Interval overrides DefaultFrameInterval when positive.
	Interval time.Duration
}

func (c TickerClock) OnNextFrame(fn func()) (cancel func()) {
	d := c.Interval
	if d <= 0 {
		d = DefaultFrameInterval
	}
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// notifier throttles change notifications to the frame clock. It tracks at
// most one pending handle: scheduling replaces the tracked handle without
// stopping the previous request, and cancel aborts only the tracked one.
// Gesture-level suppression of older in-flight requests is the recognizer's
// job (generation gating).
type notifier struct {
	clock FrameClock

	mu      sync.Mutex
	pending *frameHandle
}

type frameHandle struct {
	stop func()
	done atomic.Bool
}

// schedule queues fn for the next frame and tracks its handle for
// cancellation. fn never runs after the handle is cancelled.
func (n *notifier) schedule(fn func()) {
	if fn == nil {
		return
	}
	clock := n.clock
	if clock == nil {
		clock = TickerClock{}
	}
	h := &frameHandle{}
	h.stop = clock.OnNextFrame(func() {
		if h.done.Swap(true) {
			return
		}
		fn()
	})
	n.mu.Lock()
	n.pending = h
	n.mu.Unlock()
}

// cancel aborts the tracked pending notification, if any. Idempotent.
func (n *notifier) cancel() {
	n.mu.Lock()
	h := n.pending
	n.pending = nil
	n.mu.Unlock()
	if h == nil {
		return
	}
	h.done.Store(true)
	if h.stop != nil {
		h.stop()
	}
}

package dragselect

import "github.com/vpckso/marquee/internal/geom"

// DefaultMinArea is the smallest box area (exclusive) that counts as a
// deliberate drag rather than pointer jitter during a click.
const DefaultMinArea = 10

// Options configures a Recognizer.
//
// Scope, Clock and Guard are resolved once by New; the remaining fields form
// the live configuration cell and may be replaced at any time with
// SetOptions — handlers read them at invocation time, so long-lived
// listeners never observe stale callbacks.
type Options struct {
	// Enabled gates press handling only; nil means enabled. Disabling
	// mid-gesture does not abort an active drag.
	Enabled *bool

	// Scope is where press/move/release listeners attach. Defaults to the
	// shared DocumentScope.
	Scope Scope

	// Clock throttles change notifications. Defaults to TickerClock.
	Clock FrameClock

	// Guard suppresses ambient text selection during a gesture. Defaults
	// to NopGuard.
	Guard AmbientGuard

	// ShouldStart, when set, is consulted at press time with the event
	// target; returning false ignores the press. Never consulted again
	// during the gesture.
	ShouldStart func(target any, ev *PointerEvent) bool

	// IsValidStart decides whether the local box is big enough to count as
	// a drag. Defaults to Area() > DefaultMinArea.
	IsValidStart func(box geom.Box) bool

	// OnStart fires once per gesture, with the move event that crossed the
	// validity threshold.
	OnStart func(ev *PointerEvent)

	// OnChange receives the page-space selection box, throttled to the
	// frame clock. When nil, scheduling is a no-op.
	OnChange func(box geom.Box)

	// OnEnd fires with the release event, only if the pointer moved at
	// least once since the press.
	OnEnd func(ev *PointerEvent)
}

func (o Options) enabled() bool {
	return o.Enabled == nil || *o.Enabled
}

func (o Options) validStart(box geom.Box) bool {
	if o.IsValidStart != nil {
		return o.IsValidStart(box)
	}
	return box.Area() > DefaultMinArea
}

// Bool returns a pointer to b, for use as Options.Enabled.
func Bool(b bool) *bool { return &b }

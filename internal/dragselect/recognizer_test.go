package dragselect

import (
	"sync"
	"testing"

	"github.com/vpckso/marquee/internal/geom"
)

// fakeClock queues frame callbacks until the test fires them.
type fakeClock struct {
	mu     sync.Mutex
	queued []*fakeFrame
}

type fakeFrame struct {
	fn        func()
	cancelled bool
}

func (c *fakeClock) OnNextFrame(fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := &fakeFrame{fn: fn}
	c.queued = append(c.queued, f)
	return func() {
		c.mu.Lock()
		f.cancelled = true
		c.mu.Unlock()
	}
}

// fire runs every queued frame that was not cancelled.
func (c *fakeClock) fire() {
	c.mu.Lock()
	frames := c.queued
	c.queued = nil
	c.mu.Unlock()
	for _, f := range frames {
		if !f.cancelled {
			f.fn()
		}
	}
}

func (c *fakeClock) queuedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queued)
}

// stubRenderer records draw/clear calls and reports fixed container bounds.
type stubRenderer struct {
	origin    geom.Point
	hasOrigin bool

	drawn  []geom.Box
	clears int
}

func (s *stubRenderer) DrawSelectionBox(box geom.Box) { s.drawn = append(s.drawn, box) }
func (s *stubRenderer) ClearSelectionBox()            { s.clears++ }
func (s *stubRenderer) ContainerBounds() (geom.Point, bool) {
	return s.origin, s.hasOrigin
}

// countGuard counts ambient suppress/restore calls.
type countGuard struct {
	suppressed int
	restored   int
}

func (g *countGuard) Suppress() { g.suppressed++ }
func (g *countGuard) Restore()  { g.restored++ }

func press(x, y int) *PointerEvent {
	return &PointerEvent{Kind: PointerPress, Device: DeviceMouse, Button: ButtonPrimary, X: x, Y: y}
}

func move(x, y int) *PointerEvent {
	return &PointerEvent{Kind: PointerMove, Device: DeviceMouse, X: x, Y: y}
}

func release(x, y int) *PointerEvent {
	return &PointerEvent{Kind: PointerRelease, Device: DeviceMouse, Button: ButtonPrimary, X: x, Y: y}
}

type fixture struct {
	scope    *ListenerScope
	clock    *fakeClock
	renderer *stubRenderer
	guard    *countGuard
	rec      *Recognizer

	events  []string
	starts  int
	changes []geom.Box
	ends    int
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		scope:    NewScope(),
		clock:    &fakeClock{},
		renderer: &stubRenderer{},
		guard:    &countGuard{},
	}
	opts.Scope = f.scope
	opts.Clock = f.clock
	opts.Guard = f.guard
	if opts.OnStart == nil {
		opts.OnStart = func(*PointerEvent) {
			f.starts++
			f.events = append(f.events, "start")
		}
	}
	if opts.OnChange == nil {
		opts.OnChange = func(box geom.Box) {
			f.changes = append(f.changes, box)
			f.events = append(f.events, "change")
		}
	}
	if opts.OnEnd == nil {
		opts.OnEnd = func(*PointerEvent) {
			f.ends++
			f.events = append(f.events, "end")
		}
	}
	f.rec = New(f.renderer, opts)
	f.rec.Attach()
	t.Cleanup(f.rec.Detach)
	return f
}

func TestPressReleaseWithoutMoveFiresNothing(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(5, 5))
	f.scope.Dispatch(release(5, 5))
	f.clock.fire()
	if f.starts != 0 || len(f.changes) != 0 || f.ends != 0 {
		t.Fatalf("starts=%d changes=%d ends=%d want all 0", f.starts, len(f.changes), f.ends)
	}
}

func TestDragFiresStartChangeEndInOrder(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.clock.fire()
	f.scope.Dispatch(release(20, 30))
	f.clock.fire()

	if f.starts != 1 {
		t.Fatalf("starts=%d want 1", f.starts)
	}
	if len(f.changes) == 0 {
		t.Fatalf("expected at least one change notification")
	}
	if f.ends != 1 {
		t.Fatalf("ends=%d want 1", f.ends)
	}
	if f.events[0] != "start" || f.events[len(f.events)-1] != "end" {
		t.Fatalf("event order %v want start..end", f.events)
	}
}

func TestCoordinateTranslation(t *testing.T) {
	f := newFixture(t, Options{})
	f.renderer.origin = geom.Point{X: 100, Y: 100}
	f.renderer.hasOrigin = true

	f.scope.Dispatch(press(150, 150))
	f.scope.Dispatch(move(170, 180))
	f.clock.fire()

	wantLocal := geom.Box{Top: 50, Left: 50, Width: 20, Height: 30}
	if len(f.renderer.drawn) != 1 || f.renderer.drawn[0] != wantLocal {
		t.Fatalf("drawn=%v want [%+v]", f.renderer.drawn, wantLocal)
	}
	wantPage := geom.Box{Top: 150, Left: 150, Width: 20, Height: 30}
	if len(f.changes) != 1 || f.changes[0] != wantPage {
		t.Fatalf("changes=%v want [%+v]", f.changes, wantPage)
	}
}

func TestTinyMoveIsClick(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(10, 10))
	f.scope.Dispatch(move(12, 12)) // area 4, under the threshold
	f.scope.Dispatch(release(12, 12))
	f.clock.fire()
	if f.starts != 0 || len(f.changes) != 0 || f.ends != 0 {
		t.Fatalf("starts=%d changes=%d ends=%d want all 0", f.starts, len(f.changes), f.ends)
	}
	if len(f.renderer.drawn) != 0 {
		t.Fatalf("drawn=%v want none", f.renderer.drawn)
	}
}

func TestCancelDuringDragSuppressesEnd(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	clearsBefore := f.renderer.clears

	f.rec.Cancel()
	if f.renderer.clears <= clearsBefore {
		t.Fatalf("expected Cancel to clear the drawn box")
	}
	f.clock.fire()
	if len(f.changes) != 0 {
		t.Fatalf("changes=%v want none after cancel", f.changes)
	}

	f.scope.Dispatch(release(20, 30))
	if f.ends != 0 {
		t.Fatalf("ends=%d want 0 after cancel", f.ends)
	}
}

func TestShrinkBelowThresholdStillNotifies(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.clock.fire()
	drawnBefore := len(f.renderer.drawn)

	f.scope.Dispatch(move(1, 1)) // area 1, back under the threshold
	f.clock.fire()

	if len(f.changes) != 2 {
		t.Fatalf("changes=%d want 2", len(f.changes))
	}
	if len(f.renderer.drawn) != drawnBefore {
		t.Fatalf("expected no redraw below threshold, drawn=%d want %d", len(f.renderer.drawn), drawnBefore)
	}
	if f.starts != 1 {
		t.Fatalf("starts=%d want 1", f.starts)
	}
}

func TestReleaseAfterShrinkStillFiresEnd(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.scope.Dispatch(move(1, 1)) // back under the threshold
	f.scope.Dispatch(release(1, 1))

	// The drag crossed the threshold once, so the release ends it even
	// though the final box was click-sized.
	if f.ends != 1 {
		t.Fatalf("ends=%d want 1", f.ends)
	}
	if f.rec.Selecting() {
		t.Fatalf("expected idle after release")
	}
}

func TestDisabledPressIgnoredButActiveDragSurvives(t *testing.T) {
	f := newFixture(t, Options{Enabled: Bool(false)})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.scope.Dispatch(release(20, 30))
	f.clock.fire()
	if f.starts != 0 || f.ends != 0 {
		t.Fatalf("disabled recognizer fired starts=%d ends=%d", f.starts, f.ends)
	}

	// Enable, start a drag, then disable mid-gesture: the drag keeps going.
	f.rec.SetOptions(Options{
		OnStart:  func(*PointerEvent) { f.starts++ },
		OnChange: func(box geom.Box) { f.changes = append(f.changes, box) },
		OnEnd:    func(*PointerEvent) { f.ends++ },
	})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.rec.SetOptions(Options{
		Enabled:  Bool(false),
		OnStart:  func(*PointerEvent) { f.starts++ },
		OnChange: func(box geom.Box) { f.changes = append(f.changes, box) },
		OnEnd:    func(*PointerEvent) { f.ends++ },
	})
	f.scope.Dispatch(move(25, 35))
	f.clock.fire()
	f.scope.Dispatch(release(25, 35))

	if f.starts != 1 {
		t.Fatalf("starts=%d want 1", f.starts)
	}
	if f.ends != 1 {
		t.Fatalf("ends=%d want 1 (disable mid-gesture must not abort)", f.ends)
	}
}

func TestDetachMidGestureStopsCallbacks(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.rec.Detach()
	f.clock.fire()
	changesAfterDetach := len(f.changes)

	f.scope.Dispatch(move(40, 50))
	f.scope.Dispatch(release(40, 50))
	f.scope.Dispatch(press(0, 0))
	f.clock.fire()

	if len(f.changes) != changesAfterDetach {
		t.Fatalf("changes grew after detach: %d -> %d", changesAfterDetach, len(f.changes))
	}
	if f.ends != 0 {
		t.Fatalf("ends=%d want 0 after detach", f.ends)
	}
}

func TestStrayMoveCancelsDefensively(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	f.rec.Cancel() // listeners stay attached, start point is gone

	f.scope.Dispatch(move(20, 30)) // stray: tears the gesture listeners down
	f.scope.Dispatch(move(40, 50))
	f.clock.fire()

	if f.starts != 0 || len(f.changes) != 0 {
		t.Fatalf("stray moves produced starts=%d changes=%d", f.starts, len(f.changes))
	}
	if f.rec.Selecting() {
		t.Fatalf("Selecting()=true after stray move cancellation")
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	f := newFixture(t, Options{})
	ev := press(0, 0)
	ev.Button = ButtonSecondary
	f.scope.Dispatch(ev)
	f.scope.Dispatch(move(20, 30))
	f.clock.fire()
	if f.starts != 0 {
		t.Fatalf("secondary button started a gesture")
	}
}

func TestSecondPressIgnoredWhileGestureLive(t *testing.T) {
	f := newFixture(t, Options{})
	f.renderer.origin = geom.Point{X: 0, Y: 0}
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(press(50, 50)) // second contact must not move the anchor
	f.scope.Dispatch(move(20, 30))
	f.clock.fire()
	want := geom.Box{Top: 0, Left: 0, Width: 20, Height: 30}
	if len(f.renderer.drawn) != 1 || f.renderer.drawn[0] != want {
		t.Fatalf("drawn=%v want [%+v]", f.renderer.drawn, want)
	}
}

func TestTouchPressPreventsDefault(t *testing.T) {
	f := newFixture(t, Options{})
	ev := &PointerEvent{Kind: PointerPress, Device: DeviceTouch, X: 0, Y: 0}
	f.scope.Dispatch(ev)
	if !ev.DefaultPrevented() {
		t.Fatalf("touch press should prevent default scrolling")
	}
	f.scope.Dispatch(&PointerEvent{Kind: PointerMove, Device: DeviceTouch, X: 20, Y: 30})
	f.scope.Dispatch(&PointerEvent{Kind: PointerRelease, Device: DeviceTouch, X: 20, Y: 30})
	if f.starts != 1 || f.ends != 1 {
		t.Fatalf("touch gesture starts=%d ends=%d want 1/1", f.starts, f.ends)
	}
}

func TestShouldStartGateRejectsPress(t *testing.T) {
	gateCalls := 0
	f := newFixture(t, Options{
		ShouldStart: func(target any, ev *PointerEvent) bool {
			gateCalls++
			return target != "reject"
		},
	})
	ev := press(0, 0)
	ev.Target = "reject"
	f.scope.Dispatch(ev)
	f.scope.Dispatch(move(20, 30))
	f.clock.fire()
	if gateCalls != 1 {
		t.Fatalf("gate calls=%d want 1", gateCalls)
	}
	if f.starts != 0 {
		t.Fatalf("gated press still started a gesture")
	}
}

func TestCustomValidityPredicate(t *testing.T) {
	f := newFixture(t, Options{
		IsValidStart: func(box geom.Box) bool { return box.Width >= 100 },
	})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(50, 50)) // area 2500 but width < 100
	f.clock.fire()
	if f.starts != 0 {
		t.Fatalf("custom predicate should have rejected the box")
	}
	f.scope.Dispatch(move(120, 5))
	f.clock.fire()
	if f.starts != 1 {
		t.Fatalf("starts=%d want 1 after predicate accepts", f.starts)
	}
}

func TestAmbientGuardSymmetry(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	if f.guard.suppressed != 1 {
		t.Fatalf("suppressed=%d want 1", f.guard.suppressed)
	}
	f.rec.Cancel()
	f.scope.Dispatch(release(0, 0)) // release after cancel must not double-restore
	if f.guard.restored != 1 {
		t.Fatalf("restored=%d want 1", f.guard.restored)
	}

	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(release(0, 0))
	if f.guard.suppressed != 2 || f.guard.restored != 2 {
		t.Fatalf("suppressed=%d restored=%d want 2/2", f.guard.suppressed, f.guard.restored)
	}
}

func TestChangeNotificationsThrottled(t *testing.T) {
	f := newFixture(t, Options{})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.scope.Dispatch(move(21, 31))
	f.scope.Dispatch(move(22, 32))
	if got := f.clock.queuedCount(); got != 3 {
		t.Fatalf("queued frames=%d want 3 (scheduler does not coalesce)", got)
	}
	f.clock.fire()
	if len(f.changes) != 3 {
		t.Fatalf("changes=%d want 3", len(f.changes))
	}
	last := f.changes[len(f.changes)-1]
	want := geom.Box{Top: 0, Left: 0, Width: 22, Height: 32}
	if last != want {
		t.Fatalf("last change=%+v want %+v", last, want)
	}
}

func TestNoChangeHandlerMeansNoScheduling(t *testing.T) {
	f := &fixture{
		scope:    NewScope(),
		clock:    &fakeClock{},
		renderer: &stubRenderer{},
		guard:    &countGuard{},
	}
	f.rec = New(f.renderer, Options{Scope: f.scope, Clock: f.clock, Guard: f.guard})
	f.rec.Attach()
	defer f.rec.Detach()

	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	if got := f.clock.queuedCount(); got != 0 {
		t.Fatalf("queued frames=%d want 0 without an OnChange handler", got)
	}
}

func TestCallbackPanicIsolated(t *testing.T) {
	f := newFixture(t, Options{
		OnStart: func(*PointerEvent) { panic("boom") },
	})
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))
	f.clock.fire()
	f.scope.Dispatch(release(20, 30))

	if len(f.renderer.drawn) == 0 {
		t.Fatalf("panicking OnStart aborted the draw")
	}
	if len(f.changes) == 0 {
		t.Fatalf("panicking OnStart suppressed change notifications")
	}
	if f.ends != 1 {
		t.Fatalf("ends=%d want 1 despite OnStart panic", f.ends)
	}
}

func TestSetOptionsSwapsCallbacksMidGesture(t *testing.T) {
	f := newFixture(t, Options{})
	var swapped []geom.Box
	f.scope.Dispatch(press(0, 0))
	f.scope.Dispatch(move(20, 30))

	// Swap OnChange before the frame fires: the scheduled notification must
	// reach the new handler, not the one captured at subscription time.
	f.rec.SetOptions(Options{
		OnChange: func(box geom.Box) { swapped = append(swapped, box) },
	})
	f.clock.fire()

	if len(f.changes) != 0 {
		t.Fatalf("old handler received %d notifications after swap", len(f.changes))
	}
	if len(swapped) != 1 {
		t.Fatalf("new handler notifications=%d want 1", len(swapped))
	}
}

func TestSelectingAccessor(t *testing.T) {
	f := newFixture(t, Options{})
	if f.rec.Selecting() {
		t.Fatalf("Selecting()=true before any gesture")
	}
	f.scope.Dispatch(press(0, 0))
	if f.rec.Selecting() {
		t.Fatalf("Selecting()=true while still armed")
	}
	f.scope.Dispatch(move(20, 30))
	if !f.rec.Selecting() {
		t.Fatalf("Selecting()=false during drag")
	}
	f.scope.Dispatch(release(20, 30))
	if f.rec.Selecting() {
		t.Fatalf("Selecting()=true after release")
	}
}

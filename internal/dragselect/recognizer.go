// Package dragselect implements drag-to-select gesture recognition over a
// pointing surface: from a press point it tracks movement, distinguishes a
// deliberate drag from an accidental click, and emits a rectangular
// selection box in both container-local and page-space coordinates until
// release or cancellation. Deciding which items fall inside the box is the
// consumer's job.
package dragselect

import (
	"log/slog"
	"sync"

	"github.com/vpckso/marquee/internal/geom"
)

// Recognizer is the gesture state machine. It owns the start point and
// drag state, drives the Renderer, and throttles change notifications to
// the frame clock. Handlers may run on the host loop and the clock's timer
// goroutine; state is guarded by an internal mutex and callbacks are always
// invoked outside it.
type Recognizer struct {
	renderer Renderer
	scope    Scope
	ambient  ambientState
	frames   notifier

	mu         sync.Mutex
	opts       Options
	startPoint *geom.Point
	selecting  bool
	gen        uint64

	attached      bool
	removePress   func()
	removeMove    func()
	removeRelease func()
}

// New builds a recognizer around the renderer. Scope, Clock and Guard are
// resolved here; the rest of opts becomes the live configuration cell.
func New(renderer Renderer, opts Options) *Recognizer {
	scope := opts.Scope
	if scope == nil {
		scope = DocumentScope()
	}
	guard := opts.Guard
	if guard == nil {
		guard = NopGuard{}
	}
	var clock FrameClock = TickerClock{}
	if opts.Clock != nil {
		clock = opts.Clock
	}
	r := &Recognizer{renderer: renderer, scope: scope, opts: opts}
	r.ambient.guard = guard
	r.frames.clock = clock
	return r
}

// SetOptions replaces the live configuration: enabled flag, gates and
// callbacks. Scope, Clock and Guard are fixed at New and ignored here.
// Handlers read the cell at invocation time, so an update takes effect for
// the very next event even mid-gesture.
func (r *Recognizer) SetOptions(opts Options) {
	r.mu.Lock()
	r.opts.Enabled = opts.Enabled
	r.opts.ShouldStart = opts.ShouldStart
	r.opts.IsValidStart = opts.IsValidStart
	r.opts.OnStart = opts.OnStart
	r.opts.OnChange = opts.OnChange
	r.opts.OnEnd = opts.OnEnd
	r.mu.Unlock()
}

// Attach subscribes the press listener on the scope. Safe to call once per
// recognizer; further calls are no-ops until Detach.
func (r *Recognizer) Attach() {
	r.mu.Lock()
	if r.attached {
		r.mu.Unlock()
		return
	}
	r.attached = true
	r.mu.Unlock()

	remove := r.scope.Subscribe(PointerPress, r.handlePress)
	r.mu.Lock()
	r.removePress = remove
	r.mu.Unlock()
}

// Detach tears the recognizer down: every listener is unsubscribed from the
// scope regardless of gesture state, pending notifications are cancelled and
// ambient state is restored. A move dispatched after Detach produces no
// callbacks.
func (r *Recognizer) Detach() {
	r.mu.Lock()
	removePress := r.removePress
	r.removePress = nil
	r.attached = false
	r.mu.Unlock()

	if removePress != nil {
		removePress()
	}
	r.cancelGesture(true)
}

// Cancel aborts an in-progress gesture: state resets to idle, the drawn box
// is cleared and any pending notification is dropped. Listeners stay
// attached; the eventual release still runs its cleanup but fires no end
// callback.
func (r *Recognizer) Cancel() {
	r.cancelGesture(false)
}

// Selecting reports whether a drag has crossed the validity threshold and is
// still in progress.
func (r *Recognizer) Selecting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selecting
}

func (r *Recognizer) handlePress(ev *PointerEvent) {
	if ev == nil || ev.Kind != PointerPress {
		return
	}
	// Only the primary button starts a gesture; touch accepts any contact.
	if ev.Device == DeviceMouse && ev.Button != ButtonPrimary {
		return
	}

	r.mu.Lock()
	opts := r.opts
	live := r.startPoint != nil
	r.mu.Unlock()

	// Ignore further contacts while a gesture is live.
	if live {
		return
	}
	if !opts.enabled() {
		return
	}
	if opts.ShouldStart != nil && !r.gate(opts, ev) {
		return
	}

	r.ambient.suppress()
	if ev.Device == DeviceTouch {
		// Keep the surface from scrolling under the gesture.
		ev.PreventDefault()
	}

	origin := r.containerOrigin()
	start := geom.Point{X: ev.X - origin.X, Y: ev.Y - origin.Y}

	r.mu.Lock()
	r.startPoint = &start
	r.selecting = false
	if r.removeMove == nil {
		r.removeMove = r.scope.Subscribe(PointerMove, r.handleMove)
	}
	if r.removeRelease == nil {
		r.removeRelease = r.scope.Subscribe(PointerRelease, r.handleRelease)
	}
	r.mu.Unlock()
}

func (r *Recognizer) handleMove(ev *PointerEvent) {
	if ev == nil || ev.Kind != PointerMove {
		return
	}

	r.mu.Lock()
	opts := r.opts
	startPoint := r.startPoint
	r.mu.Unlock()

	if startPoint == nil {
		// A move with no recorded press violates the listener lifecycle;
		// cancel outright and drop the gesture listeners.
		slog.Warn("drag select: move event without start point, cancelling")
		r.cancelGesture(true)
		return
	}

	// Bounds are queried fresh on every move: the container may be
	// scrolling or resizing mid-gesture.
	origin := r.containerOrigin()
	end := geom.Point{X: ev.X - origin.X, Y: ev.Y - origin.Y}
	box := geom.BoxFromPoints(*startPoint, end)
	pageBox := box.Translate(origin.X, origin.Y)
	valid := r.validStart(opts, box)

	r.mu.Lock()
	wasSelecting := r.selecting
	if valid {
		r.selecting = true
	}
	gen := r.gen
	r.mu.Unlock()

	switch {
	case valid && !wasSelecting:
		r.fireStart(opts, ev)
		r.renderer.DrawSelectionBox(box)
		r.scheduleChange(gen, pageBox)
	case valid && wasSelecting:
		r.renderer.DrawSelectionBox(box)
		r.scheduleChange(gen, pageBox)
	case !valid && wasSelecting:
		// The box shrank back under the threshold mid-drag; consumers
		// still rely on continuous updates, so notify without drawing.
		r.scheduleChange(gen, pageBox)
	default:
		// Below threshold and never dragged: still a potential click.
	}
}

func (r *Recognizer) handleRelease(ev *PointerEvent) {
	if ev == nil || ev.Kind != PointerRelease {
		return
	}
	if ev.Device == DeviceMouse && ev.Button != ButtonPrimary {
		return
	}

	r.mu.Lock()
	opts := r.opts
	dragged := r.selecting
	r.mu.Unlock()

	// A press released without a drag is a click; no end callback.
	if dragged {
		r.fireEnd(opts, ev)
	}
	r.cancelGesture(true)
}

// cancelGesture resets the gesture to idle: state cleared, pending
// notification dropped, drawn box cleared, ambient state restored. With
// detach set the move/release listeners come off the scope as well.
func (r *Recognizer) cancelGesture(detach bool) {
	r.mu.Lock()
	r.startPoint = nil
	r.selecting = false
	r.gen++
	var removeMove, removeRelease func()
	if detach {
		removeMove = r.removeMove
		removeRelease = r.removeRelease
		r.removeMove = nil
		r.removeRelease = nil
	}
	r.mu.Unlock()

	r.frames.cancel()
	r.renderer.ClearSelectionBox()
	r.ambient.restore()
	if removeMove != nil {
		removeMove()
	}
	if removeRelease != nil {
		removeRelease()
	}
}

// scheduleChange queues a throttled OnChange with the page-space box. The
// callback reads the configuration cell when the frame fires and is dropped
// if the gesture was reset in the meantime.
func (r *Recognizer) scheduleChange(gen uint64, pageBox geom.Box) {
	r.mu.Lock()
	hasHandler := r.opts.OnChange != nil
	r.mu.Unlock()
	if !hasHandler {
		return
	}
	r.frames.schedule(func() {
		r.mu.Lock()
		stale := gen != r.gen
		fn := r.opts.OnChange
		r.mu.Unlock()
		if stale || fn == nil {
			return
		}
		defer recoverCallback("onChange")
		fn(pageBox)
	})
}

func (r *Recognizer) containerOrigin() geom.Point {
	if origin, ok := r.renderer.ContainerBounds(); ok {
		return origin
	}
	// Missing bounds degrade to raw device coordinates.
	return geom.Point{}
}

func (r *Recognizer) gate(opts Options, ev *PointerEvent) (ok bool) {
	defer recoverCallback("shouldStart")
	return opts.ShouldStart(ev.Target, ev)
}

func (r *Recognizer) validStart(opts Options, box geom.Box) (ok bool) {
	defer recoverCallback("isValidStart")
	return opts.validStart(box)
}

func (r *Recognizer) fireStart(opts Options, ev *PointerEvent) {
	if opts.OnStart == nil {
		return
	}
	defer recoverCallback("onStart")
	opts.OnStart(ev)
}

func (r *Recognizer) fireEnd(opts Options, ev *PointerEvent) {
	if opts.OnEnd == nil {
		return
	}
	defer recoverCallback("onEnd")
	opts.OnEnd(ev)
}

// Consumer callbacks are isolated: a panic is logged and the gesture keeps
// its state rather than aborting.
func recoverCallback(name string) {
	if v := recover(); v != nil {
		slog.Error("drag select: callback panicked", "callback", name, "panic", v)
	}
}

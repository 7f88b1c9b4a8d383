package dragselect

// PointerKind classifies a pointer event within a gesture.
type PointerKind uint8

const (
	PointerPress PointerKind = iota
	PointerMove
	PointerRelease
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerMove:
		return "move"
	case PointerRelease:
		return "release"
	default:
		return "unknown"
	}
}

// PointerDevice identifies the input device that produced an event.
type PointerDevice uint8

const (
	DeviceMouse PointerDevice = iota
	DeviceTouch
)

// PointerButton identifies the button a mouse event carries. Touch events
// use ButtonNone.
type PointerButton uint8

const (
	ButtonNone PointerButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is one pointer interaction in device coordinates. For touch
// the coordinates are the first contact point; additional contacts are not
// reported.
type PointerEvent struct {
	Kind   PointerKind
	Device PointerDevice
	Button PointerButton
	X      int
	Y      int

	// Target is the hit target under the pointer, consulted by the
	// ShouldStart gate at press time. May be nil.
	Target any

	prevented bool
}

// PreventDefault asks the host surface to skip its default handling of this
// event (touch scrolling, native text selection).
func (e *PointerEvent) PreventDefault() {
	if e != nil {
		e.prevented = true
	}
}

// DefaultPrevented reports whether a handler claimed this event.
func (e *PointerEvent) DefaultPrevented() bool {
	return e != nil && e.prevented
}

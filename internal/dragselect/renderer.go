package dragselect

import "github.com/vpckso/marquee/internal/geom"

// Renderer draws the selection box on the host surface. The recognizer
// drives it; it never decides which items fall inside the box.
type Renderer interface {
	// DrawSelectionBox shows the box at container-local coordinates.
	DrawSelectionBox(box geom.Box)

	// ClearSelectionBox removes a previously drawn box. Clearing an
	// already-clear surface is a no-op.
	ClearSelectionBox()

	// ContainerBounds reports the container's current top-left in device
	// coordinates. ok is false when bounds are unavailable, in which case
	// the recognizer falls back to a zero offset.
	ContainerBounds() (origin geom.Point, ok bool)
}

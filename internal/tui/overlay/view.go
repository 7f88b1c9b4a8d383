package overlay

import "github.com/vpckso/marquee/internal/geom"

// View is the selection renderer for the demo scene. It records the drawn
// box and the container origin; the app composites the box onto its canvas
// each frame. All methods are called from the update loop goroutine.
type View struct {
	origin    geom.Point
	hasOrigin bool
	box       *geom.Box
}

func NewView() *View {
	return &View{}
}

// SetOrigin updates the container's top-left in device coordinates, queried
// back by the recognizer on every press and move.
func (v *View) SetOrigin(p geom.Point) {
	v.origin = p
	v.hasOrigin = true
}

func (v *View) DrawSelectionBox(box geom.Box) {
	b := box
	v.box = &b
}

func (v *View) ClearSelectionBox() {
	v.box = nil
}

func (v *View) ContainerBounds() (geom.Point, bool) {
	return v.origin, v.hasOrigin
}

// Box returns the currently drawn container-local box, if any.
func (v *View) Box() (geom.Box, bool) {
	if v.box == nil {
		return geom.Box{}, false
	}
	return *v.box, true
}

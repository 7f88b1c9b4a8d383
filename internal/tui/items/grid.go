// Package items lays out the demo's selectable item grid and hit-tests it
// against emitted selection boxes. The gesture core never sees items; this
// is the consumer side of the contract.
package items

import (
	"fmt"

	"github.com/vpckso/marquee/internal/geom"
)

const (
	cellWidth  = 12
	cellHeight = 3
	gapX       = 2
	gapY       = 1
)

// Item is one selectable cell with page-space bounds.
type Item struct {
	ID     string
	Label  string
	Bounds geom.Box
}

// Grid holds the laid-out items.
type Grid struct {
	origin geom.Point
	items  []Item
}

// Layout places as many items as fit into the given page-space region,
// starting at origin.
func Layout(origin geom.Point, width, height int) *Grid {
	g := &Grid{origin: origin}
	cols := (width + gapX) / (cellWidth + gapX)
	rows := (height + gapY) / (cellHeight + gapY)
	n := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			n++
			g.items = append(g.items, Item{
				ID:    fmt.Sprintf("item-%d", n),
				Label: fmt.Sprintf("Item %d", n),
				Bounds: geom.Box{
					Top:    origin.Y + row*(cellHeight+gapY),
					Left:   origin.X + col*(cellWidth+gapX),
					Width:  cellWidth,
					Height: cellHeight,
				},
			})
		}
	}
	return g
}

// Items returns the laid-out items in row-major order.
func (g *Grid) Items() []Item {
	return g.items
}

// Len returns the number of items.
func (g *Grid) Len() int {
	return len(g.items)
}

// HitTest returns the IDs of items whose bounds intersect the page-space
// selection box.
func (g *Grid) HitTest(box geom.Box) map[string]bool {
	hit := make(map[string]bool)
	for _, it := range g.items {
		if it.Bounds.Intersects(box) {
			hit[it.ID] = true
		}
	}
	return hit
}

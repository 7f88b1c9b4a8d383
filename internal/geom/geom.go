// Package geom provides the box arithmetic used by drag selection.
package geom

// Point is a position in whatever coordinate space the caller is working
// in (device cells or container-local cells).
type Point struct {
	X int
	Y int
}

// Box describes a normalized selection rectangle: Width and Height are
// never negative regardless of which corner the drag started from.
type Box struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// BoxFromPoints builds the normalized box spanned by two arbitrary corner
// points. The result is independent of argument order.
func BoxFromPoints(a, b Point) Box {
	left, width := span(a.X, b.X)
	top, height := span(a.Y, b.Y)
	return Box{Top: top, Left: left, Width: width, Height: height}
}

func span(p, q int) (start, length int) {
	if q < p {
		p, q = q, p
	}
	return p, q - p
}

// Area returns the box area in square units.
func (b Box) Area() int {
	return b.Width * b.Height
}

// Empty reports whether the box has zero extent on either axis.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy int) Box {
	b.Left += dx
	b.Top += dy
	return b
}

// Contains reports whether the point lies within the box.
func (b Box) Contains(x, y int) bool {
	if b.Empty() {
		return false
	}
	return x >= b.Left && y >= b.Top && x < b.Left+b.Width && y < b.Top+b.Height
}

// Intersects reports whether the two boxes overlap. Consumers use this to
// hit-test item bounds against an emitted selection box.
func (b Box) Intersects(o Box) bool {
	if b.Empty() || o.Empty() {
		return false
	}
	return b.Left < o.Left+o.Width && o.Left < b.Left+b.Width &&
		b.Top < o.Top+o.Height && o.Top < b.Top+b.Height
}

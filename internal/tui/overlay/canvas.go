// Package overlay renders the demo scene: a rune canvas the item grid is
// written into, with the selection box outline composited on top.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vpckso/marquee/internal/geom"
)

// Class tags a canvas cell for styling at render time.
type Class uint8

const (
	ClassBlank Class = iota
	ClassTitle
	ClassStatus
	ClassItem
	ClassSelected
	ClassBox
)

// Canvas is a width×height cell grid in device coordinates.
type Canvas struct {
	width   int
	height  int
	runes   [][]rune
	classes [][]Class
}

func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height}
	c.runes = make([][]rune, height)
	c.classes = make([][]Class, height)
	for y := 0; y < height; y++ {
		c.runes[y] = make([]rune, width)
		c.classes[y] = make([]Class, width)
		for x := 0; x < width; x++ {
			c.runes[y][x] = ' '
		}
	}
	return c
}

// SetString writes s at (x, y), clipped to the canvas. Wide runes occupy
// two cells; the continuation cell is blanked.
func (c *Canvas) SetString(x, y int, s string, class Class) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= c.width {
			return
		}
		if x >= 0 {
			c.runes[y][x] = r
			c.classes[y][x] = class
			if w == 2 && x+1 < c.width {
				c.runes[y][x+1] = 0
				c.classes[y][x+1] = class
			}
		}
		x += w
	}
}

// Reclass re-tags every cell of the box region that currently carries the
// from class. Used to flip items to their selected style.
func (c *Canvas) Reclass(box geom.Box, from, to Class) {
	for y := box.Top; y < box.Top+box.Height; y++ {
		if y < 0 || y >= c.height {
			continue
		}
		for x := box.Left; x < box.Left+box.Width; x++ {
			if x < 0 || x >= c.width {
				continue
			}
			if c.classes[y][x] == from {
				c.classes[y][x] = to
			}
		}
	}
}

// DrawBoxOutline draws the selection box perimeter. The box spans
// box.Width×box.Height cells; degenerate spans collapse to a line or a
// single marker cell.
func (c *Canvas) DrawBoxOutline(box geom.Box, class Class) {
	if box.Width <= 0 && box.Height <= 0 {
		c.set(box.Left, box.Top, '▪', class)
		return
	}
	right := box.Left + maxInt(box.Width-1, 0)
	bottom := box.Top + maxInt(box.Height-1, 0)

	for x := box.Left + 1; x < right; x++ {
		c.set(x, box.Top, '─', class)
		c.set(x, bottom, '─', class)
	}
	for y := box.Top + 1; y < bottom; y++ {
		c.set(box.Left, y, '│', class)
		c.set(right, y, '│', class)
	}
	if box.Left == right && box.Top == bottom {
		c.set(box.Left, box.Top, '▪', class)
		return
	}
	switch {
	case box.Left == right:
		c.set(box.Left, box.Top, '╷', class)
		c.set(box.Left, bottom, '╵', class)
	case box.Top == bottom:
		c.set(box.Left, box.Top, '╶', class)
		c.set(right, box.Top, '╴', class)
	default:
		c.set(box.Left, box.Top, '┌', class)
		c.set(right, box.Top, '┐', class)
		c.set(box.Left, bottom, '└', class)
		c.set(right, bottom, '┘', class)
	}
}

func (c *Canvas) set(x, y int, r rune, class Class) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.runes[y][x] = r
	c.classes[y][x] = class
}

// RuneAt returns the rune and class at (x, y), for tests.
func (c *Canvas) RuneAt(x, y int) (rune, Class) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, ClassBlank
	}
	return c.runes[y][x], c.classes[y][x]
}

// Render flattens the canvas into a styled string, applying styles by class
// over runs of consecutive cells.
func (c *Canvas) Render(styles map[Class]lipgloss.Style) string {
	var out strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		x := 0
		for x < c.width {
			class := c.classes[y][x]
			var run strings.Builder
			for x < c.width && c.classes[y][x] == class {
				if r := c.runes[y][x]; r != 0 {
					run.WriteRune(r)
				}
				x++
			}
			style, ok := styles[class]
			if !ok || class == ClassBlank {
				out.WriteString(run.String())
				continue
			}
			out.WriteString(style.Render(run.String()))
		}
	}
	return out.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package arcade

import "image/color"

// Renderer fills rectangles. It is the only drawing primitive the games use.
type Renderer interface {
	DrawRect(x, y, w, h int, c color.RGBA)
}

// Key names the abstract buttons the games read.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyFire
)

// Input is the per-frame input state supplied by the host.
type Input interface {
	CursorY() int
	Pressed(k Key) bool
}

// FilledRect is one recorded DrawRect call.
type FilledRect struct {
	X, Y, W, H int
	Color      color.RGBA
}

// Canvas records DrawRect calls between Clear calls so a host can replay them
// onto a real surface.
type Canvas struct {
	width, height int
	rects         []FilledRect
}

// NewCanvas returns an empty canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// Size returns the canvas width and height.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Clear drops every recorded rectangle.
func (c *Canvas) Clear() {
	c.rects = c.rects[:0]
}

// DrawRect records a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, clr color.RGBA) {
	c.rects = append(c.rects, FilledRect{X: x, Y: y, W: w, H: h, Color: clr})
}

// Rects returns the rectangles drawn since the last Clear.
func (c *Canvas) Rects() []FilledRect {
	return c.rects
}

// StaticInput is an Input with fixed state, handy for tests and headless runs.
type StaticInput struct {
	Y    int
	Keys map[Key]bool
}

// CursorY returns the fixed cursor row.
func (s *StaticInput) CursorY() int {
	return s.Y
}

// Pressed reports whether k is in the held set.
func (s *StaticInput) Pressed(k Key) bool {
	return s.Keys[k]
}

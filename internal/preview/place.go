// Package preview positions the hover preview next to its trigger and
// prepares the excerpt it shows.
package preview

// Default spacing, in the caller's units.
const (
	DefaultGap    = 8
	DefaultMargin = 16
)

// Rect is the bounding box of the element that triggered the preview.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect builds a Rect from its top-left corner and size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Top:    top,
		Bottom: top + height,
		Left:   left,
		Right:  left + width,
		Width:  width,
		Height: height,
	}
}

// Size is a width and height.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is the top-left corner of the placed preview.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type options struct {
	gap    float64
	margin float64
}

// Option adjusts Place.
type Option func(*options)

// WithGap sets the distance between trigger and preview.
func WithGap(g float64) Option {
	return func(o *options) { o.gap = g }
}

// WithMargin sets the minimum distance from the viewport edges.
func WithMargin(m float64) Option {
	return func(o *options) { o.margin = m }
}

// Place returns where to draw a preview of size next to trigger so that it
// stays inside viewport. Below is preferred when it fits or has at least as
// much room as above. The result is clamped into the margins; when the
// preview is larger than the viewport the margin bound wins.
func Place(trigger Rect, size, viewport Size, opts ...Option) Point {
	o := options{gap: DefaultGap, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&o)
	}

	spaceBelow := viewport.Height - o.margin - (trigger.Bottom + o.gap)
	spaceAbove := trigger.Top - o.gap - o.margin

	var y float64
	if spaceBelow >= size.Height || spaceBelow >= spaceAbove {
		y = trigger.Bottom + o.gap
	} else {
		y = trigger.Top - size.Height - o.gap
	}

	x := trigger.Left
	if x+size.Width > viewport.Width-o.margin {
		x = trigger.Right - size.Width
	}

	return Point{
		X: clamp(x, o.margin, viewport.Width-size.Width-o.margin),
		Y: clamp(y, o.margin, viewport.Height-size.Height-o.margin),
	}
}

// clamp limits v to [lo, hi], returning lo when the range is inverted.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

package geom

import "math"

// Bounds accumulates the extent of a set of rectangles and points.
// The zero value is an empty accumulator.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
	set        bool
}

// Empty reports whether nothing has been added.
func (b *Bounds) Empty() bool { return !b.set }

// AddPoint extends the bounds to include p.
func (b *Bounds) AddPoint(p Point) {
	if !b.set {
		b.MinX, b.MaxX = p.X, p.X
		b.MinY, b.MaxY = p.Y, p.Y
		b.set = true
		return
	}
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// AddRect extends the bounds to include r. Empty rectangles are ignored.
func (b *Bounds) AddRect(r Rect) {
	if r.Empty() {
		return
	}
	b.AddPoint(Point{X: r.X, Y: r.Y})
	b.AddPoint(Point{X: r.MaxX(), Y: r.MaxY()})
}

// AddPoints extends the bounds to include every point in pts.
func (b *Bounds) AddPoints(pts []Point) {
	for _, p := range pts {
		b.AddPoint(p)
	}
}

// Rect returns the accumulated bounds as a rectangle.
func (b *Bounds) Rect() Rect {
	if !b.set {
		return Rect{}
	}
	return Rect{X: b.MinX, Y: b.MinY, Width: b.MaxX - b.MinX, Height: b.MaxY - b.MinY}
}

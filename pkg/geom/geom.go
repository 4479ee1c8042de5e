package geom

import "math"

// Point is a position in layout units (pixels in the drawing backend).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
// Y grows downward, matching SVG and most raster backends.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// R is shorthand for Rect{X: x, Y: y, Width: w, Height: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Center returns the center point.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// TopMid returns the midpoint of the top edge.
func (r Rect) TopMid() Point { return Point{X: r.CenterX(), Y: r.Y} }

// BottomMid returns the midpoint of the bottom edge.
func (r Rect) BottomMid() Point { return Point{X: r.CenterX(), Y: r.MaxY()} }

// LeftMid returns the midpoint of the left edge.
func (r Rect) LeftMid() Point { return Point{X: r.X, Y: r.CenterY()} }

// RightMid returns the midpoint of the right edge.
func (r Rect) RightMid() Point { return Point{X: r.MaxX(), Y: r.CenterY()} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Union returns the smallest rectangle containing both r and o.
// An empty receiver is treated as the identity.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX, minY := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	maxX, maxY := math.Max(r.MaxX(), o.MaxX()), math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ContainsRect reports whether o lies fully inside r (edges inclusive).
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// ContainsPoint reports whether p lies inside r (edges inclusive).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// SegmentIntersectsRect reports whether the segment a→b touches r.
//
// It is a Liang–Barsky clip: the segment is parameterised as a + t(b-a) for
// t in [0,1], and each of the four rectangle edges narrows the admissible
// interval. The segment hits r iff the interval is non-empty.
func SegmentIntersectsRect(a, b Point, r Rect) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{a.X - r.X, r.MaxX() - a.X, a.Y - r.Y, r.MaxY() - a.Y}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	return t0 <= t1
}

// PolylineIntersectsRect reports whether any segment of pts touches r.
func PolylineIntersectsRect(pts []Point, r Rect) bool {
	for i := 1; i < len(pts); i++ {
		if SegmentIntersectsRect(pts[i-1], pts[i], r) {
			return true
		}
	}
	return false
}

// Midpoint returns the point halfway along the middle segment of pts.
// For an odd number of segments this is the middle of the central segment,
// which keeps labels on the visible detour leg of routed edges.
func Midpoint(pts []Point) Point {
	switch len(pts) {
	case 0:
		return Point{}
	case 1:
		return pts[0]
	}
	i := (len(pts) - 1) / 2
	a, b := pts[i], pts[i+1]
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

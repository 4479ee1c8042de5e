package layout

import (
	"math"

	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// Router produces obstacle-avoiding polylines between two anchors.
//
// A path whose straight segment clears every obstacle is returned as two
// points. Otherwise the router detours around the cluster of obstacles the
// segment hits with a single perpendicular leg:
//
//	vertical layouts:   [from, (bend, from.Y), (bend, to.Y), to]
//	horizontal layouts: [from, (from.X, bend), (to.X, bend), to]
//
// The bend coordinate sits RouteClearance beyond the side of the cluster
// nearer to from; ties go to the lower coordinate. Routing never fails.
type Router struct {
	// Horizontal is true for layouts whose layers advance along x. Such
	// layouts detour along y.
	Horizontal bool
	// Margin expands every obstacle before testing.
	Margin float64
	// Clearance separates the detour leg from the expanded obstacles.
	Clearance float64
}

func newRouter(cfg Config, horizontal bool) Router {
	return Router{Horizontal: horizontal, Margin: cfg.RouteMargin, Clearance: cfg.RouteClearance}
}

// Route returns the polyline from → to. The caller excludes the rectangles of
// the edge's own endpoints from obstacles.
//
// A segment that is exactly parallel to the legs of the default detour
// (horizontal in a vertical layout, vertical in a horizontal one) detours
// along the other axis, since the default legs would overlap the segment.
//
// When the middle leg crosses further obstacles, they join the cluster and the
// bend is recomputed, so the middle leg clears every expanded obstacle. The
// first and last legs run along the rows of the anchors and are not checked.
func (r Router) Route(from, to geom.Point, obstacles []geom.Rect) []geom.Point {
	expanded := make([]geom.Rect, len(obstacles))
	for i, o := range obstacles {
		expanded[i] = o.Expand(r.Margin)
	}

	inCluster := make([]bool, len(expanded))
	hit := false
	for i, o := range expanded {
		if geom.SegmentIntersectsRect(from, to, o) {
			inCluster[i] = true
			hit = true
		}
	}
	if !hit {
		return []geom.Point{from, to}
	}

	alongX := !r.Horizontal
	switch {
	case from.X == to.X:
		alongX = true
	case from.Y == to.Y:
		alongX = false
	}

	var path []geom.Point
	for range len(expanded) + 1 {
		path = r.detour(from, to, expanded, inCluster, alongX)
		grown := false
		for i, o := range expanded {
			if !inCluster[i] && geom.SegmentIntersectsRect(path[1], path[2], o) {
				inCluster[i] = true
				grown = true
			}
		}
		if !grown {
			break
		}
	}
	return path
}

func (r Router) detour(from, to geom.Point, obstacles []geom.Rect, inCluster []bool, alongX bool) []geom.Point {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, o := range obstacles {
		if !inCluster[i] {
			continue
		}
		if alongX {
			lo, hi = math.Min(lo, o.X), math.Max(hi, o.MaxX())
		} else {
			lo, hi = math.Min(lo, o.Y), math.Max(hi, o.MaxY())
		}
	}

	ref := from.Y
	if alongX {
		ref = from.X
	}
	bend := hi + r.Clearance
	if math.Abs(ref-lo) <= math.Abs(hi-ref) {
		bend = lo - r.Clearance
	}

	if alongX {
		return []geom.Point{from, geom.Pt(bend, from.Y), geom.Pt(bend, to.Y), to}
	}
	return []geom.Point{from, geom.Pt(from.X, bend), geom.Pt(to.X, bend), to}
}

// layerAnchors picks connection points for an edge between two cells of a
// layered grid. Cells in different layers connect through their facing
// primary-axis sides; cells in the same layer connect through their facing
// secondary-axis sides.
func layerAnchors(a, b geom.Rect, horizontal bool) (geom.Point, geom.Point) {
	if horizontal {
		switch {
		case b.X >= a.MaxX():
			return a.RightMid(), b.LeftMid()
		case b.MaxX() <= a.X:
			return a.LeftMid(), b.RightMid()
		case b.CenterY() >= a.CenterY():
			return a.BottomMid(), b.TopMid()
		default:
			return a.TopMid(), b.BottomMid()
		}
	}
	switch {
	case b.Y >= a.MaxY():
		return a.BottomMid(), b.TopMid()
	case b.MaxY() <= a.Y:
		return a.TopMid(), b.BottomMid()
	case b.CenterX() >= a.CenterX():
		return a.RightMid(), b.LeftMid()
	default:
		return a.LeftMid(), b.RightMid()
	}
}

// boxAnchors picks connection points between two freely placed boxes by the
// dominant axis of their center offset: horizontal when |dx| > |dy|, vertical
// otherwise. It reports whether the horizontal axis was chosen.
func boxAnchors(a, b geom.Rect) (geom.Point, geom.Point, bool) {
	dx := b.CenterX() - a.CenterX()
	dy := b.CenterY() - a.CenterY()
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return a.RightMid(), b.LeftMid(), true
		}
		return a.LeftMid(), b.RightMid(), true
	}
	if dy >= 0 {
		return a.BottomMid(), b.TopMid(), false
	}
	return a.TopMid(), b.BottomMid(), false
}

// selfLoop returns a four-point loop that leaves and re-enters r. Loops sit on
// the right side of r, or below it when below is true.
func selfLoop(r geom.Rect, reach float64, below bool) []geom.Point {
	if below {
		x0, x1 := r.X+r.Width/4, r.MaxX()-r.Width/4
		y := r.MaxY() + reach
		return []geom.Point{geom.Pt(x0, r.MaxY()), geom.Pt(x0, y), geom.Pt(x1, y), geom.Pt(x1, r.MaxY())}
	}
	y0, y1 := r.Y+r.Height/4, r.MaxY()-r.Height/4
	x := r.MaxX() + reach
	return []geom.Point{geom.Pt(r.MaxX(), y0), geom.Pt(x, y0), geom.Pt(x, y1), geom.Pt(r.MaxX(), y1)}
}

// obstaclesExcept returns the rectangles of every id except the two given,
// in ids order.
func obstaclesExcept(ids []string, rects map[string]geom.Rect, from, to string) []geom.Rect {
	out := make([]geom.Rect, 0, len(ids))
	for _, id := range ids {
		if id == from || id == to {
			continue
		}
		if r, ok := rects[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

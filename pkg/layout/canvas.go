package layout

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// charWidthRatio approximates the advance of one terminal cell of text as a
// fraction of the font size.
const charWidthRatio = 0.6

// textWidth estimates the rendered width of s. East Asian wide characters and
// emoji count as two cells.
func textWidth(s string, fontSize float64) float64 {
	return float64(runewidth.StringWidth(s)) * fontSize * charWidthRatio
}

// truncateText shortens s with an ellipsis so it fits width.
func truncateText(s string, width, fontSize float64) string {
	if textWidth(s, fontSize) <= width {
		return s
	}
	cells := int(math.Floor(width / (fontSize * charWidthRatio)))
	if cells <= 0 {
		return ""
	}
	return runewidth.Truncate(s, cells, "…")
}

// geometry is implemented by every layout so the canvas sizer can measure and
// shift it without knowing its kind.
type geometry interface {
	extent(b *geom.Bounds)
	translate(dx, dy float64)
}

// origin is where strategies start placing content: inside the padding and
// below the title band when there is a title.
func origin(cfg Config, title string) geom.Point {
	return geom.Pt(cfg.Padding, cfg.Padding+titleBand(cfg, title))
}

func titleBand(cfg Config, title string) float64 {
	if title == "" {
		return 0
	}
	return cfg.TitleHeight
}

// fitCanvas sizes the canvas around g and returns the title anchor, if any.
//
// If any geometry lies above or left of the content origin (pie labels, loop
// detours, subgraph label bands), the whole layout is translated so the
// minimum sits exactly on it. The canvas is then the maximum extent plus
// Padding on each axis. An empty layout yields a 2*Padding square, plus the
// title band when a title is present.
func fitCanvas(g geometry, cfg Config, title string) (geom.Size, *geom.Point) {
	band := titleBand(cfg, title)
	var b geom.Bounds
	g.extent(&b)

	var dx, dy float64
	if !b.Empty() {
		if b.MinX < cfg.Padding {
			dx = cfg.Padding - b.MinX
		}
		if b.MinY < cfg.Padding+band {
			dy = cfg.Padding + band - b.MinY
		}
		if dx != 0 || dy != 0 {
			g.translate(dx, dy)
		}
	}

	size := geom.Size{Width: 2 * cfg.Padding, Height: 2*cfg.Padding + band}
	if !b.Empty() {
		size.Width = b.MaxX + dx + cfg.Padding
		size.Height = b.MaxY + dy + cfg.Padding
	}
	if title == "" {
		return size, nil
	}

	size.Width = math.Max(size.Width, textWidth(title, cfg.TitleFontSize)+2*cfg.Padding)
	at := geom.Pt(size.Width/2, cfg.Padding+band/2)
	return size, &at
}

func translatePoints(pts []geom.Point, dx, dy float64) {
	for i := range pts {
		pts[i] = pts[i].Add(dx, dy)
	}
}

func translatePoint(p *geom.Point, dx, dy float64) {
	if p != nil {
		*p = p.Add(dx, dy)
	}
}

func addPoint(b *geom.Bounds, p *geom.Point) {
	if p != nil {
		b.AddPoint(*p)
	}
}

package layout

import (
	"math"
	"strconv"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// SliceArc is a positioned pie slice. Angles are in radians, measured
// clockwise from the positive x axis in screen coordinates, so -π/2 is
// twelve o'clock.
type SliceArc struct {
	Label      string     `json:"label"`
	Value      float64    `json:"value"`
	Percentage float64    `json:"percentage"`
	StartAngle float64    `json:"start_angle"`
	EndAngle   float64    `json:"end_angle"`
	Color      string     `json:"color"`
	TextColor  string     `json:"text_color"`
	LabelAt    geom.Point `json:"label_at"`
}

// LegendEntry is one row of the pie legend.
type LegendEntry struct {
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Swatch geom.Rect `json:"swatch"`
	Text   geom.Rect `json:"text"`
}

// PieLayout is the positioned form of a [diagram.Pie].
type PieLayout struct {
	Title      string        `json:"title,omitempty"`
	TitleAt    *geom.Point   `json:"title_at,omitempty"`
	Background string        `json:"background"`
	ShowData   bool          `json:"show_data,omitempty"`
	Center     geom.Point    `json:"center"`
	Radius     float64       `json:"radius"`
	Slices     []SliceArc    `json:"slices"`
	Legend     []LegendEntry `json:"legend"`
	Size       geom.Size     `json:"size"`
}

// legendRowGap separates legend rows.
const legendRowGap = 6

// PieChart lays out a pie chart.
//
// Slices keep their input order, starting at twelve o'clock. Each spans
// 2π·value/total; the last slice ends exactly one full turn after the first
// starts, so spans always sum to 2π. Negative and non-finite values count as
// zero. When the total is zero, or there are no slices, the layout has no
// slices and a minimal canvas.
func PieChart(p diagram.Pie, cfg Config) PieLayout {
	out := PieLayout{
		Title:      p.Title,
		Background: normalizeColor(cfg.BackgroundColor),
		ShowData:   p.ShowData,
		Slices:     []SliceArc{},
		Legend:     []LegendEntry{},
	}

	// Values are scaled by the largest one so the total stays finite even
	// for values near the float64 limit.
	var peak float64
	for _, sl := range p.Slices {
		peak = math.Max(peak, sliceValue(sl.Value))
	}
	var total float64
	if peak > 0 {
		for _, sl := range p.Slices {
			total += sliceValue(sl.Value) / peak
		}
	}
	if total <= 0 {
		out.Size, out.TitleAt = fitCanvas(&out, cfg, p.Title)
		return out
	}

	org := origin(cfg, p.Title)
	reach := cfg.PieRadius + cfg.PieLabelOffset
	out.Center = geom.Pt(org.X+reach, org.Y+reach)
	out.Radius = cfg.PieRadius

	const start = -math.Pi / 2
	angle := start
	for i, s := range p.Slices {
		value := sliceValue(s.Value)
		frac := value / peak / total
		end := angle + 2*math.Pi*frac
		if i == len(p.Slices)-1 {
			end = start + 2*math.Pi
		}
		mid := (angle + end) / 2
		color := paletteColor(cfg.PieColorPalette, i, cfg.NodeColor)
		out.Slices = append(out.Slices, SliceArc{
			Label:      s.Label,
			Value:      value,
			Percentage: 100 * frac,
			StartAngle: angle,
			EndAngle:   end,
			Color:      color,
			TextColor:  contrastText(color),
			LabelAt:    geom.Pt(out.Center.X+reach*math.Cos(mid), out.Center.Y+reach*math.Sin(mid)),
		})
		angle = end
	}

	swatch := cfg.LegendSwatchSize
	x := out.Center.X + reach + cfg.Padding
	y := out.Center.Y - float64(len(out.Slices))*(swatch+legendRowGap)/2
	for i, s := range out.Slices {
		label := s.Label
		if p.ShowData {
			label += " [" + strconv.FormatFloat(s.Value, 'f', -1, 64) + "]"
		}
		row := y + float64(i)*(swatch+legendRowGap)
		sw := geom.R(x, row, swatch, swatch)
		out.Legend = append(out.Legend, LegendEntry{
			Label:  label,
			Color:  s.Color,
			Swatch: sw,
			Text:   geom.R(sw.MaxX()+legendRowGap, row, textWidth(label, cfg.FontSize), swatch),
		})
	}

	out.Size, out.TitleAt = fitCanvas(&out, cfg, p.Title)
	return out
}

// sliceValue clamps negative and non-finite values to zero.
func sliceValue(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func paletteColor(palette []string, i int, fallback string) string {
	if len(palette) == 0 {
		return normalizeColor(fallback)
	}
	return normalizeColor(palette[i%len(palette)])
}

func (l *PieLayout) extent(b *geom.Bounds) {
	if len(l.Slices) == 0 {
		return
	}
	b.AddRect(geom.R(l.Center.X-l.Radius, l.Center.Y-l.Radius, 2*l.Radius, 2*l.Radius))
	for _, s := range l.Slices {
		b.AddPoint(s.LabelAt)
	}
	for _, e := range l.Legend {
		b.AddRect(e.Swatch)
		b.AddRect(e.Text)
	}
}

func (l *PieLayout) translate(dx, dy float64) {
	l.Center = l.Center.Add(dx, dy)
	for i := range l.Slices {
		l.Slices[i].LabelAt = l.Slices[i].LabelAt.Add(dx, dy)
	}
	for i := range l.Legend {
		l.Legend[i].Swatch = l.Legend[i].Swatch.Translate(dx, dy)
		l.Legend[i].Text = l.Legend[i].Text.Translate(dx, dy)
	}
}

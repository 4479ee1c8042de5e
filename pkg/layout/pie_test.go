package layout

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

const epsilon = 1e-9

func TestPieChart(t *testing.T) {
	p := diagram.Pie{Slices: []diagram.Slice{{Label: "a", Value: 30}, {Label: "b", Value: 70}}}
	l := PieChart(p, DefaultConfig())

	if len(l.Slices) != 2 {
		t.Fatalf("Slices = %+v", l.Slices)
	}
	a, b := l.Slices[0], l.Slices[1]
	if math.Abs(a.Percentage-30) > epsilon || math.Abs(b.Percentage-70) > epsilon {
		t.Errorf("percentages = %v, %v", a.Percentage, b.Percentage)
	}
	if a.StartAngle != -math.Pi/2 {
		t.Errorf("first slice starts at %v, want -π/2", a.StartAngle)
	}
	if a.EndAngle != b.StartAngle {
		t.Error("slices must be contiguous")
	}
	if got := (a.EndAngle - a.StartAngle) + (b.EndAngle - b.StartAngle); math.Abs(got-2*math.Pi) > epsilon {
		t.Errorf("spans sum to %v, want 2π", got)
	}
	if math.Abs(a.EndAngle-a.StartAngle-0.6*math.Pi) > epsilon {
		t.Errorf("a spans %v, want 0.6π", a.EndAngle-a.StartAngle)
	}

	if l.Center != geom.Pt(200, 200) || l.Radius != 150 {
		t.Errorf("center %v radius %v", l.Center, l.Radius)
	}
	if a.Color != "#4e79a7" || b.Color != "#f28e2b" {
		t.Errorf("colors = %q, %q", a.Color, b.Color)
	}
	if a.TextColor == "" {
		t.Error("TextColor should be set")
	}

	if len(l.Legend) != 2 || l.Legend[0].Label != "a" || l.Legend[0].Color != a.Color {
		t.Errorf("Legend = %+v", l.Legend)
	}
	if l.Legend[0].Swatch.X != 400 {
		t.Errorf("legend x = %v, want right of the labels", l.Legend[0].Swatch.X)
	}
	for _, e := range l.Legend {
		assertRectInCanvas(t, e.Label, e.Swatch, l.Size)
		assertRectInCanvas(t, e.Label, e.Text, l.Size)
	}
	for _, s := range l.Slices {
		assertPointInCanvas(t, s.Label, s.LabelAt, l.Size)
	}
	assertRectInCanvas(t, "pie", geom.R(l.Center.X-l.Radius, l.Center.Y-l.Radius, 2*l.Radius, 2*l.Radius), l.Size)
}

func TestPieChartSpansSumToFullTurn(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"single", []float64{5}},
		{"thirds", []float64{1, 1, 1}},
		{"sevenths", []float64{1, 1, 1, 1, 1, 1, 1}},
		{"uneven", []float64{0.1, 1e6, 3.3, 42}},
		{"with zero", []float64{0, 2, 0, 5}},
		{"near float64 limit", []float64{1e308, 1e308}},
		{"max and tiny", []float64{math.MaxFloat64, math.MaxFloat64, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p diagram.Pie
			for _, v := range tt.values {
				p.Slices = append(p.Slices, diagram.Slice{Label: "s", Value: v})
			}
			l := PieChart(p, DefaultConfig())

			var span, pct float64
			for _, s := range l.Slices {
				span += s.EndAngle - s.StartAngle
				pct += s.Percentage
			}
			if math.Abs(span-2*math.Pi) > 1e-6 {
				t.Errorf("spans sum to %v", span)
			}
			if math.Abs(pct-100) > 1e-6 {
				t.Errorf("percentages sum to %v", pct)
			}
			last := l.Slices[len(l.Slices)-1]
			if last.EndAngle != -math.Pi/2+2*math.Pi {
				t.Errorf("last slice ends at %v", last.EndAngle)
			}
		})
	}
}

func TestPieChartDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		slices []diagram.Slice
	}{
		{"no slices", nil},
		{"all zero", []diagram.Slice{{Label: "a"}, {Label: "b"}}},
		{"all negative", []diagram.Slice{{Label: "a", Value: -3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := PieChart(diagram.Pie{Slices: tt.slices}, DefaultConfig())
			if len(l.Slices) != 0 || len(l.Legend) != 0 {
				t.Errorf("got %d slices, %d legend rows", len(l.Slices), len(l.Legend))
			}
			if l.Slices == nil || l.Legend == nil {
				t.Error("slices should be empty, not nil")
			}
			if l.Size != (geom.Size{Width: 40, Height: 40}) {
				t.Errorf("Size = %+v", l.Size)
			}
		})
	}
}

func TestPieChartHugeValues(t *testing.T) {
	doc := []byte(`{"kind": "pie", "pie": {"slices": [{"label": "a", "value": 1e308}, {"label": "b", "value": 1e308}]}}`)
	var envelope diagram.Document
	if err := json.Unmarshal(doc, &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	d, err := envelope.Diagram()
	if err != nil {
		t.Fatal(err)
	}

	l := PieChart(d.(diagram.Pie), DefaultConfig())
	for _, s := range l.Slices {
		if math.Abs(s.Percentage-50) > epsilon {
			t.Errorf("%s percentage = %v, want 50", s.Label, s.Percentage)
		}
		if math.IsNaN(s.EndAngle) || math.IsNaN(s.LabelAt.X) {
			t.Errorf("%s has NaN geometry: %+v", s.Label, s)
		}
	}
	if _, err := Marshal(l); err != nil {
		t.Errorf("Marshal: %v", err)
	}
}

func TestPieChartNonFiniteCountsAsZero(t *testing.T) {
	p := diagram.Pie{Slices: []diagram.Slice{
		{Label: "nan", Value: math.NaN()},
		{Label: "inf", Value: math.Inf(1)},
		{Label: "ok", Value: 4},
	}}
	l := PieChart(p, DefaultConfig())
	if l.Slices[0].Percentage != 0 || l.Slices[1].Percentage != 0 || l.Slices[2].Percentage != 100 {
		t.Errorf("slices = %+v", l.Slices)
	}
	if _, err := Marshal(l); err != nil {
		t.Errorf("Marshal: %v", err)
	}
}

func TestPieChartNegativeCountsAsZero(t *testing.T) {
	p := diagram.Pie{Slices: []diagram.Slice{{Label: "neg", Value: -5}, {Label: "pos", Value: 10}}}
	l := PieChart(p, DefaultConfig())
	if l.Slices[0].Value != 0 || l.Slices[0].Percentage != 0 {
		t.Errorf("negative slice = %+v", l.Slices[0])
	}
	if l.Slices[0].StartAngle != l.Slices[0].EndAngle {
		t.Error("negative slice should have zero span")
	}
	if l.Slices[1].Percentage != 100 {
		t.Errorf("positive slice percentage = %v", l.Slices[1].Percentage)
	}
}

func TestPieChartShowData(t *testing.T) {
	p := diagram.Pie{ShowData: true, Slices: []diagram.Slice{{Label: "Dogs", Value: 386}, {Label: "Cats", Value: 85.5}}}
	l := PieChart(p, DefaultConfig())
	if l.Legend[0].Label != "Dogs [386]" || l.Legend[1].Label != "Cats [85.5]" {
		t.Errorf("legend labels = %q, %q", l.Legend[0].Label, l.Legend[1].Label)
	}
	if l.Slices[0].Label != "Dogs" {
		t.Errorf("slice label = %q", l.Slices[0].Label)
	}
}

func TestPieChartPaletteWraps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PieColorPalette = []string{"#111", "#222"}
	p := diagram.Pie{Slices: []diagram.Slice{{Value: 1}, {Value: 1}, {Value: 1}}}
	l := PieChart(p, cfg)
	if l.Slices[2].Color != "#111111" {
		t.Errorf("third color = %q, want palette to wrap", l.Slices[2].Color)
	}
}

package layout

import (
	"strings"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// MarkerKind distinguishes start and end pseudo-states.
type MarkerKind string

// Marker kinds. Regular states have no marker.
const (
	MarkerStart MarkerKind = "start"
	MarkerEnd   MarkerKind = "end"
)

// StateBox is a positioned state. Marker states are drawn as filled circles
// inscribed in Rect.
type StateBox struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Layer  int        `json:"layer"`
	Rect   geom.Rect  `json:"rect"`
	Marker MarkerKind `json:"marker,omitempty"`
	Style  Style      `json:"style"`
}

// StateLayout is the positioned form of a [diagram.State].
type StateLayout struct {
	Title       string            `json:"title,omitempty"`
	TitleAt     *geom.Point       `json:"title_at,omitempty"`
	Background  string            `json:"background"`
	Direction   diagram.Direction `json:"direction"`
	States      []StateBox        `json:"states"`
	Transitions []EdgePath        `json:"transitions"`
	Layers      [][]string        `json:"layers"`
	Size        geom.Size         `json:"size"`
}

// IsMarker reports whether id names a start/end pseudo-state.
func IsMarker(id string) bool {
	return strings.HasPrefix(id, diagram.StartEndMarker)
}

// StateMachine lays out a state diagram exactly like a flow graph, except
// that start/end markers shrink to a circle of StartEndMarkerRadius centred
// in their cell. A marker with only outgoing transitions is a start marker,
// one with only incoming transitions is an end marker; anything else counts
// as a start.
func StateMachine(s diagram.State, cfg Config) StateLayout {
	dir := s.Direction.Normalize()

	states := make(map[string]diagram.StateNode, len(s.States))
	ids := make([]string, 0, len(s.States))
	for _, st := range s.States {
		ids = append(ids, st.ID)
		if _, dup := states[st.ID]; !dup {
			states[st.ID] = st
		}
	}
	edges := make([][2]string, len(s.Transitions))
	for i, t := range s.Transitions {
		edges[i] = [2]string{t.From, t.To}
	}

	lay := buildLayered(ids, edges)
	gap := geom.Size{Width: cfg.StateSpacing, Height: cfg.StateSpacing}
	rects := grid{
		Origin:    origin(cfg, s.Title),
		Cell:      geom.Size{Width: cfg.StateWidth, Height: cfg.StateHeight},
		Gap:       gap,
		Direction: dir,
	}.place(lay.Layering.Layers)

	in := make(map[string]bool)
	out := make(map[string]bool)
	for _, l := range lay.Links {
		if l.From == l.To {
			continue
		}
		out[l.From] = true
		in[l.To] = true
	}

	d := 2 * cfg.StartEndMarkerRadius
	for _, id := range lay.IDs {
		if IsMarker(id) {
			c := rects[id].Center()
			rects[id] = geom.R(c.X-cfg.StartEndMarkerRadius, c.Y-cfg.StartEndMarkerRadius, d, d)
		}
	}

	res := StateLayout{
		Title:       s.Title,
		Background:  normalizeColor(cfg.BackgroundColor),
		Direction:   dir,
		States:      make([]StateBox, 0, len(lay.IDs)),
		Transitions: make([]EdgePath, 0, len(lay.Links)),
		Layers:      lay.Layering.Layers,
	}

	styles := styleResolver{classDefs: s.ClassDefs, classes: s.StateClasses}
	base := stateStyle(cfg)
	markerStyle := Style{
		Fill:        normalizeColor(cfg.TextColor),
		Stroke:      normalizeColor(cfg.TextColor),
		StrokeWidth: cfg.LineWidth,
	}
	for _, id := range lay.IDs {
		box := StateBox{
			ID:    id,
			Label: states[id].DisplayLabel(),
			Layer: lay.Layering.Rank[id],
			Rect:  rects[id],
		}
		if IsMarker(id) {
			box.Label = ""
			box.Marker = MarkerStart
			if in[id] && !out[id] {
				box.Marker = MarkerEnd
			}
			box.Style = markerStyle
		} else {
			box.Style = styles.resolve(base, id)
		}
		res.States = append(res.States, box)
	}

	paths := routeLinks(lay, rects, dir, cfg, gap)
	for i, l := range lay.Links {
		t := s.Transitions[l.Index]
		path := EdgePath{
			Index:  l.Index,
			From:   l.From,
			To:     l.To,
			Label:  t.Label,
			Line:   diagram.LineSolid,
			Arrow:  diagram.ArrowNormal,
			Points: paths[i],
			Self:   l.From == l.To,
			Style:  edgeStyle(cfg, diagram.LineSolid),
		}
		if t.Label != "" {
			at := geom.Midpoint(path.Points)
			path.LabelAt = &at
		}
		res.Transitions = append(res.Transitions, path)
	}

	res.Size, res.TitleAt = fitCanvas(&res, cfg, s.Title)
	return res
}

func (l *StateLayout) extent(b *geom.Bounds) {
	for _, s := range l.States {
		b.AddRect(s.Rect)
	}
	for _, t := range l.Transitions {
		b.AddPoints(t.Points)
		addPoint(b, t.LabelAt)
	}
}

func (l *StateLayout) translate(dx, dy float64) {
	for i := range l.States {
		l.States[i].Rect = l.States[i].Rect.Translate(dx, dy)
	}
	for i := range l.Transitions {
		translatePoints(l.Transitions[i].Points, dx, dy)
		translatePoint(l.Transitions[i].LabelAt, dx, dy)
	}
}

package layout

import (
	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// NodeBox is a positioned flow-graph node.
type NodeBox struct {
	ID    string        `json:"id"`
	Label string        `json:"label"`
	Shape diagram.Shape `json:"shape"`
	Layer int           `json:"layer"`
	Rect  geom.Rect     `json:"rect"`
	Style Style         `json:"style"`
}

// EdgePath is a routed edge or transition.
type EdgePath struct {
	// Index is the position of the edge in the input list.
	Index   int               `json:"index"`
	From    string            `json:"from"`
	To      string            `json:"to"`
	Label   string            `json:"label,omitempty"`
	Line    diagram.LineStyle `json:"line"`
	Arrow   diagram.ArrowHead `json:"arrow"`
	Points  []geom.Point      `json:"points"`
	LabelAt *geom.Point       `json:"label_at,omitempty"`
	Self    bool              `json:"self,omitempty"`
	Style   Style             `json:"style"`
}

// SubgraphBox is the frame drawn around a subgraph's members.
type SubgraphBox struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Parent  string     `json:"parent,omitempty"`
	Nodes   []string   `json:"nodes"`
	Rect    geom.Rect  `json:"rect"`
	LabelAt geom.Point `json:"label_at"`
	Style   Style      `json:"style"`
}

// FlowLayout is the positioned form of a [diagram.FlowGraph].
type FlowLayout struct {
	Title      string            `json:"title,omitempty"`
	TitleAt    *geom.Point       `json:"title_at,omitempty"`
	Background string            `json:"background"`
	Direction  diagram.Direction `json:"direction"`
	Nodes      []NodeBox         `json:"nodes"`
	Edges      []EdgePath        `json:"edges"`
	Subgraphs  []SubgraphBox     `json:"subgraphs,omitempty"`
	Layers     [][]string        `json:"layers"`
	Size       geom.Size         `json:"size"`
}

// Flow lays out a flow graph.
//
// Nodes are layered by longest path from a source and placed on a grid along
// the graph's direction. Edges connect facing sides of their endpoints and
// detour around intervening nodes. Edges referencing unknown nodes are
// dropped; for duplicate node ids the first definition wins.
func Flow(g diagram.FlowGraph, cfg Config) FlowLayout {
	dir := g.Direction.Normalize()

	nodes := make(map[string]diagram.Node, len(g.Nodes))
	ids := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		ids = append(ids, n.ID)
		if _, dup := nodes[n.ID]; !dup {
			nodes[n.ID] = n
		}
	}
	edges := make([][2]string, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = [2]string{e.From, e.To}
	}

	lay := buildLayered(ids, edges)
	gap := geom.Size{Width: cfg.HorizontalSpacing, Height: cfg.VerticalSpacing}
	rects := grid{
		Origin:    origin(cfg, g.Title),
		Cell:      geom.Size{Width: cfg.NodeWidth, Height: cfg.NodeHeight},
		Gap:       gap,
		Direction: dir,
	}.place(lay.Layering.Layers)

	out := FlowLayout{
		Title:      g.Title,
		Background: normalizeColor(cfg.BackgroundColor),
		Direction:  dir,
		Nodes:      make([]NodeBox, 0, len(lay.IDs)),
		Edges:      make([]EdgePath, 0, len(lay.Links)),
		Layers:     lay.Layering.Layers,
	}

	styles := styleResolver{classDefs: g.ClassDefs, classes: g.NodeClasses, overrides: g.NodeStyles}
	base := nodeStyle(cfg)
	for _, id := range lay.IDs {
		n := nodes[id]
		shape := n.Shape
		if shape == "" {
			shape = diagram.ShapeRect
		}
		out.Nodes = append(out.Nodes, NodeBox{
			ID:    id,
			Label: n.DisplayLabel(),
			Shape: shape,
			Layer: lay.Layering.Rank[id],
			Rect:  rects[id],
			Style: styles.resolve(base, id),
		})
	}

	paths := routeLinks(lay, rects, dir, cfg, gap)
	for i, l := range lay.Links {
		e := g.Edges[l.Index]
		line, arrow := e.Line, e.Arrow
		if line == "" {
			line = diagram.LineSolid
		}
		if arrow == "" {
			arrow = diagram.ArrowNormal
		}
		path := EdgePath{
			Index:  l.Index,
			From:   l.From,
			To:     l.To,
			Label:  e.Label,
			Line:   line,
			Arrow:  arrow,
			Points: paths[i],
			Self:   l.From == l.To,
			Style:  edgeStyle(cfg, line).Apply(g.LinkStyles[l.Index]),
		}
		if e.Label != "" {
			at := geom.Midpoint(path.Points)
			path.LabelAt = &at
		}
		out.Edges = append(out.Edges, path)
	}

	out.Subgraphs = boundSubgraphs(g.Subgraphs, rects, cfg, styles)
	out.Size, out.TitleAt = fitCanvas(&out, cfg, g.Title)
	return out
}

// routeLinks routes every kept link of a layered diagram. Self loops sit in
// the gap beside their node, away from the layer axis.
func routeLinks(lay layered, rects map[string]geom.Rect, dir diagram.Direction, cfg Config, gap geom.Size) [][]geom.Point {
	horizontal := dir.Horizontal()
	router := newRouter(cfg, horizontal)
	reach := gap.Width / 2
	if horizontal {
		reach = gap.Height / 2
	}

	paths := make([][]geom.Point, len(lay.Links))
	for i, l := range lay.Links {
		a := rects[l.From]
		if l.From == l.To {
			paths[i] = selfLoop(a, reach, horizontal)
			continue
		}
		from, to := layerAnchors(a, rects[l.To], horizontal)
		paths[i] = router.Route(from, to, obstaclesExcept(lay.IDs, rects, l.From, l.To))
	}
	return paths
}

// boundSubgraphs frames each subgraph around its members. Members naming
// another subgraph nest it; nested frames are bounded first and included in
// the parent. Node ids take precedence over subgraph ids. Subgraphs without
// any placed member are omitted, and duplicate subgraph ids keep the first.
func boundSubgraphs(subs []diagram.Subgraph, rects map[string]geom.Rect, cfg Config, styles styleResolver) []SubgraphBox {
	if len(subs) == 0 {
		return nil
	}

	byID := make(map[string]diagram.Subgraph, len(subs))
	var order []string
	for _, s := range subs {
		if _, dup := byID[s.ID]; dup {
			continue
		}
		byID[s.ID] = s
		order = append(order, s.ID)
	}

	isChild := func(member string) bool {
		_, sub := byID[member]
		_, node := rects[member]
		return sub && !node
	}

	parents := make(map[string]string)
	for _, id := range order {
		for _, m := range byID[id].Nodes {
			if m != id && isChild(m) {
				if _, ok := parents[m]; !ok {
					parents[m] = id
				}
			}
		}
	}

	bounds := make(map[string]geom.Rect, len(order))
	visiting := make(map[string]bool)
	var bound func(id string) geom.Rect
	bound = func(id string) geom.Rect {
		if r, ok := bounds[id]; ok {
			return r
		}
		if visiting[id] {
			return geom.Rect{}
		}
		visiting[id] = true

		var u geom.Rect
		for _, m := range byID[id].Nodes {
			switch {
			case isChild(m) && m != id:
				u = u.Union(bound(m))
			default:
				if r, ok := rects[m]; ok {
					u = u.Union(r)
				}
			}
		}
		if !u.Empty() {
			p, label := cfg.SubgraphPadding, cfg.SubgraphLabelHeight
			u = geom.R(u.X-p, u.Y-p-label, u.Width+2*p, u.Height+2*p+label)
		}
		bounds[id] = u
		return u
	}

	base := Style{
		Fill:        normalizeColor(cfg.SubgraphFillColor),
		Stroke:      normalizeColor(cfg.SubgraphBorderColor),
		StrokeWidth: cfg.LineWidth,
		TextColor:   normalizeColor(cfg.TextColor),
	}

	var out []SubgraphBox
	for _, id := range order {
		r := bound(id)
		if r.Empty() {
			continue
		}
		s := byID[id]
		var members []string
		for _, m := range s.Nodes {
			if _, ok := rects[m]; ok {
				members = append(members, m)
			}
		}
		title := s.Title
		if title == "" {
			title = s.ID
		}
		out = append(out, SubgraphBox{
			ID:      id,
			Title:   title,
			Parent:  parents[id],
			Nodes:   members,
			Rect:    r,
			LabelAt: geom.Pt(r.CenterX(), r.Y+cfg.SubgraphLabelHeight/2),
			Style:   styles.resolve(base, id),
		})
	}
	return out
}

func (l *FlowLayout) extent(b *geom.Bounds) {
	for _, n := range l.Nodes {
		b.AddRect(n.Rect)
	}
	for _, e := range l.Edges {
		b.AddPoints(e.Points)
		addPoint(b, e.LabelAt)
	}
	for _, s := range l.Subgraphs {
		b.AddRect(s.Rect)
	}
}

func (l *FlowLayout) translate(dx, dy float64) {
	for i := range l.Nodes {
		l.Nodes[i].Rect = l.Nodes[i].Rect.Translate(dx, dy)
	}
	for i := range l.Edges {
		translatePoints(l.Edges[i].Points, dx, dy)
		translatePoint(l.Edges[i].LabelAt, dx, dy)
	}
	for i := range l.Subgraphs {
		l.Subgraphs[i].Rect = l.Subgraphs[i].Rect.Translate(dx, dy)
		l.Subgraphs[i].LabelAt = l.Subgraphs[i].LabelAt.Add(dx, dy)
	}
}

package layout

import (
	"math"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// BoxRow is one text row inside a class or entity box.
type BoxRow struct {
	Text string    `json:"text"`
	Rect geom.Rect `json:"rect"`
}

// Connector is a routed line between two boxes.
type Connector struct {
	// Index is the position of the relationship in the input list.
	Index       int          `json:"index"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Label       string       `json:"label,omitempty"`
	Points      []geom.Point `json:"points"`
	LabelAt     *geom.Point  `json:"label_at,omitempty"`
	FromLabelAt *geom.Point  `json:"from_label_at,omitempty"`
	ToLabelAt   *geom.Point  `json:"to_label_at,omitempty"`
	Self        bool         `json:"self,omitempty"`
	Style       Style        `json:"style"`
}

// ClassBox is a positioned class with its header and member sections.
type ClassBox struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	Annotation string    `json:"annotation,omitempty"`
	Rect       geom.Rect `json:"rect"`
	Header     geom.Rect `json:"header"`
	Attributes geom.Rect `json:"attributes"`
	Methods    geom.Rect `json:"methods"`
	Rows       []BoxRow  `json:"rows"`
	Style      Style     `json:"style"`
}

// ClassRelation is a positioned class relationship.
type ClassRelation struct {
	Connector
	Kind            diagram.RelationKind `json:"kind"`
	FromCardinality string               `json:"from_cardinality,omitempty"`
	ToCardinality   string               `json:"to_cardinality,omitempty"`
}

// ClassLayout is the positioned form of a [diagram.Class].
type ClassLayout struct {
	Title      string          `json:"title,omitempty"`
	TitleAt    *geom.Point     `json:"title_at,omitempty"`
	Background string          `json:"background"`
	Classes    []ClassBox      `json:"classes"`
	Relations  []ClassRelation `json:"relations"`
	Size       geom.Size       `json:"size"`
}

// ClassDiagram lays out a class diagram.
//
// Boxes sit on a grid of ceil(sqrt(n)) columns. A box is a header (one
// member row taller when annotated) followed by an attribute and a method
// section of at least one row each. Box width grows past ClassBoxWidth to fit
// the longest text. Relations attach at facing edge midpoints along the
// dominant axis between box centers and detour around other boxes.
func ClassDiagram(c diagram.Class, cfg Config) ClassLayout {
	org := origin(cfg, c.Title)

	var classes []diagram.ClassDef
	seen := make(map[string]bool, len(c.Classes))
	for _, def := range c.Classes {
		if def.ID == "" || seen[def.ID] {
			continue
		}
		seen[def.ID] = true
		classes = append(classes, def)
	}

	rowH := cfg.ClassMemberRowHeight
	inset := cfg.FontSize
	sizes := make([]geom.Size, len(classes))
	for i, def := range classes {
		width := textWidth(def.DisplayLabel(), cfg.FontSize)
		if def.Annotation != "" {
			width = math.Max(width, textWidth(annotationText(def.Annotation), cfg.FontSize))
		}
		for _, m := range def.Attributes {
			width = math.Max(width, textWidth(m.DisplayText(), cfg.FontSize))
		}
		for _, m := range def.Methods {
			width = math.Max(width, textWidth(m.DisplayText(), cfg.FontSize))
		}
		sizes[i] = geom.Size{
			Width:  math.Max(cfg.ClassBoxWidth, width+2*inset),
			Height: classHeaderHeight(def, cfg) + float64(max(1, len(def.Attributes))+max(1, len(def.Methods)))*rowH,
		}
	}
	boxes := boxGrid(org, sizes, cfg.ClassSpacing)

	out := ClassLayout{
		Title:      c.Title,
		Background: normalizeColor(cfg.BackgroundColor),
		Classes:    make([]ClassBox, 0, len(classes)),
		Relations:  []ClassRelation{},
	}
	rects := make(map[string]geom.Rect, len(classes))
	ids := make([]string, 0, len(classes))
	style := nodeStyle(cfg)
	for i, def := range classes {
		r := boxes[i]
		rects[def.ID] = r
		ids = append(ids, def.ID)

		header := geom.R(r.X, r.Y, r.Width, classHeaderHeight(def, cfg))
		attrs := geom.R(r.X, header.MaxY(), r.Width, float64(max(1, len(def.Attributes)))*rowH)
		methods := geom.R(r.X, attrs.MaxY(), r.Width, float64(max(1, len(def.Methods)))*rowH)

		var rows []BoxRow
		for j, m := range def.Attributes {
			rows = append(rows, BoxRow{Text: m.DisplayText(), Rect: geom.R(r.X+inset, attrs.Y+float64(j)*rowH, r.Width-2*inset, rowH)})
		}
		for j, m := range def.Methods {
			rows = append(rows, BoxRow{Text: m.DisplayText(), Rect: geom.R(r.X+inset, methods.Y+float64(j)*rowH, r.Width-2*inset, rowH)})
		}

		out.Classes = append(out.Classes, ClassBox{
			ID:         def.ID,
			Label:      def.DisplayLabel(),
			Annotation: def.Annotation,
			Rect:       r,
			Header:     header,
			Attributes: attrs,
			Methods:    methods,
			Rows:       rows,
			Style:      style,
		})
	}

	for i, rel := range c.Relations {
		conn, ok := connect(i, rel.From, rel.To, rel.Label, ids, rects, cfg)
		if !ok {
			continue
		}
		kind := rel.Kind
		if kind == "" {
			kind = diagram.RelAssociation
		}
		if kind == diagram.RelDependency || kind == diagram.RelRealization {
			conn.Style.Dash = "3 3"
		}
		if rel.FromCardinality == "" {
			conn.FromLabelAt = nil
		}
		if rel.ToCardinality == "" {
			conn.ToLabelAt = nil
		}
		out.Relations = append(out.Relations, ClassRelation{
			Connector:       conn,
			Kind:            kind,
			FromCardinality: rel.FromCardinality,
			ToCardinality:   rel.ToCardinality,
		})
	}

	out.Size, out.TitleAt = fitCanvas(&out, cfg, c.Title)
	return out
}

func classHeaderHeight(def diagram.ClassDef, cfg Config) float64 {
	if def.Annotation != "" {
		return cfg.ClassHeaderHeight + cfg.ClassMemberRowHeight
	}
	return cfg.ClassHeaderHeight
}

func annotationText(a string) string { return "«" + a + "»" }

// connect routes a relationship between two placed boxes. It reports false
// when either endpoint is unknown. End-label anchors are always filled in;
// callers clear the ones they do not need.
func connect(index int, from, to, label string, ids []string, rects map[string]geom.Rect, cfg Config) (Connector, bool) {
	a, okFrom := rects[from]
	b, okTo := rects[to]
	if !okFrom || !okTo {
		return Connector{}, false
	}

	conn := Connector{
		Index: index,
		From:  from,
		To:    to,
		Label: label,
		Self:  from == to,
		Style: edgeStyle(cfg, diagram.LineSolid),
	}
	if conn.Self {
		conn.Points = selfLoop(a, cfg.RouteClearance*2, false)
	} else {
		p, q, horizontal := boxAnchors(a, b)
		conn.Points = newRouter(cfg, horizontal).Route(p, q, obstaclesExcept(ids, rects, from, to))
	}

	n := len(conn.Points)
	fromAt := endLabelAt(conn.Points[0], conn.Points[1], cfg.FontSize)
	toAt := endLabelAt(conn.Points[n-1], conn.Points[n-2], cfg.FontSize)
	conn.FromLabelAt, conn.ToLabelAt = &fromAt, &toAt
	if label != "" {
		at := geom.Midpoint(conn.Points)
		conn.LabelAt = &at
	}
	return conn, true
}

// endLabelAt places a cardinality label near end, a little way along the
// segment toward next and offset to its side.
func endLabelAt(end, next geom.Point, fontSize float64) geom.Point {
	dx, dy := next.X-end.X, next.Y-end.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return end.Add(fontSize, -fontSize)
	}
	ux, uy := dx/length, dy/length
	along := math.Min(1.5*fontSize, length/3)
	side := 0.8 * fontSize
	return geom.Pt(end.X+ux*along-uy*side, end.Y+uy*along+ux*side)
}

func (l *ClassLayout) extent(b *geom.Bounds) {
	for _, c := range l.Classes {
		b.AddRect(c.Rect)
	}
	for _, r := range l.Relations {
		r.Connector.extent(b)
	}
}

func (l *ClassLayout) translate(dx, dy float64) {
	for i := range l.Classes {
		c := &l.Classes[i]
		c.Rect = c.Rect.Translate(dx, dy)
		c.Header = c.Header.Translate(dx, dy)
		c.Attributes = c.Attributes.Translate(dx, dy)
		c.Methods = c.Methods.Translate(dx, dy)
		for j := range c.Rows {
			c.Rows[j].Rect = c.Rows[j].Rect.Translate(dx, dy)
		}
	}
	for i := range l.Relations {
		l.Relations[i].Connector.translate(dx, dy)
	}
}

func (c *Connector) extent(b *geom.Bounds) {
	b.AddPoints(c.Points)
	addPoint(b, c.LabelAt)
	addPoint(b, c.FromLabelAt)
	addPoint(b, c.ToLabelAt)
}

func (c *Connector) translate(dx, dy float64) {
	translatePoints(c.Points, dx, dy)
	translatePoint(c.LabelAt, dx, dy)
	translatePoint(c.FromLabelAt, dx, dy)
	translatePoint(c.ToLabelAt, dx, dy)
}

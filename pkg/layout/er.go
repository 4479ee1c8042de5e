package layout

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// AttributeRow is one positioned entity attribute.
type AttributeRow struct {
	Type    string    `json:"type"`
	Name    string    `json:"name"`
	Keys    []string  `json:"keys,omitempty"`
	Comment string    `json:"comment,omitempty"`
	Rect    geom.Rect `json:"rect"`
}

// EntityBox is a positioned entity.
type EntityBox struct {
	Name   string         `json:"name"`
	Rect   geom.Rect      `json:"rect"`
	Header geom.Rect      `json:"header"`
	Body   geom.Rect      `json:"body"`
	Rows   []AttributeRow `json:"rows"`
	Style  Style          `json:"style"`
}

// ERRelation is a positioned entity relationship. Non-identifying
// relationships are drawn dashed.
type ERRelation struct {
	Connector
	FromCardinality diagram.Cardinality `json:"from_cardinality,omitempty"`
	ToCardinality   diagram.Cardinality `json:"to_cardinality,omitempty"`
	Identifying     bool                `json:"identifying,omitempty"`
}

// ERLayout is the positioned form of a [diagram.ER].
type ERLayout struct {
	Title      string       `json:"title,omitempty"`
	TitleAt    *geom.Point  `json:"title_at,omitempty"`
	Background string       `json:"background"`
	Entities   []EntityBox  `json:"entities"`
	Relations  []ERRelation `json:"relations"`
	Size       geom.Size    `json:"size"`
}

// ERDiagram lays out an entity-relationship diagram on the same grid as
// class diagrams. Each entity is a header over one attribute section of at
// least one row. Cardinality anchors are set for the ends that declare a
// cardinality.
func ERDiagram(e diagram.ER, cfg Config) ERLayout {
	org := origin(cfg, e.Title)

	var entities []diagram.Entity
	seen := make(map[string]bool, len(e.Entities))
	for _, ent := range e.Entities {
		if ent.Name == "" || seen[ent.Name] {
			continue
		}
		seen[ent.Name] = true
		entities = append(entities, ent)
	}

	rowH := cfg.ERAttributeRowHeight
	inset := cfg.FontSize
	sizes := make([]geom.Size, len(entities))
	for i, ent := range entities {
		width := textWidth(ent.Name, cfg.FontSize)
		for _, a := range ent.Attributes {
			width = math.Max(width, textWidth(attributeText(a), cfg.FontSize))
		}
		sizes[i] = geom.Size{
			Width:  math.Max(cfg.EREntityWidth, width+2*inset),
			Height: cfg.ERHeaderHeight + float64(max(1, len(ent.Attributes)))*rowH,
		}
	}
	boxes := boxGrid(org, sizes, cfg.ERSpacing)

	out := ERLayout{
		Title:      e.Title,
		Background: normalizeColor(cfg.BackgroundColor),
		Entities:   make([]EntityBox, 0, len(entities)),
		Relations:  []ERRelation{},
	}
	rects := make(map[string]geom.Rect, len(entities))
	ids := make([]string, 0, len(entities))
	style := nodeStyle(cfg)
	for i, ent := range entities {
		r := boxes[i]
		rects[ent.Name] = r
		ids = append(ids, ent.Name)

		header := geom.R(r.X, r.Y, r.Width, cfg.ERHeaderHeight)
		body := geom.R(r.X, header.MaxY(), r.Width, r.Height-cfg.ERHeaderHeight)
		rows := make([]AttributeRow, 0, len(ent.Attributes))
		for j, a := range ent.Attributes {
			rows = append(rows, AttributeRow{
				Type:    a.Type,
				Name:    a.Name,
				Keys:    slices.Clone(a.Keys),
				Comment: a.Comment,
				Rect:    geom.R(r.X+inset, body.Y+float64(j)*rowH, r.Width-2*inset, rowH),
			})
		}
		out.Entities = append(out.Entities, EntityBox{
			Name:   ent.Name,
			Rect:   r,
			Header: header,
			Body:   body,
			Rows:   rows,
			Style:  style,
		})
	}

	for i, rel := range e.Relations {
		conn, ok := connect(i, rel.From, rel.To, rel.Label, ids, rects, cfg)
		if !ok {
			continue
		}
		if !rel.Identifying {
			conn.Style.Dash = "3 3"
		}
		if rel.FromCardinality == "" {
			conn.FromLabelAt = nil
		}
		if rel.ToCardinality == "" {
			conn.ToLabelAt = nil
		}
		out.Relations = append(out.Relations, ERRelation{
			Connector:       conn,
			FromCardinality: rel.FromCardinality,
			ToCardinality:   rel.ToCardinality,
			Identifying:     rel.Identifying,
		})
	}

	out.Size, out.TitleAt = fitCanvas(&out, cfg, e.Title)
	return out
}

// attributeText is the text measured for an attribute row:
// "type name PK,FK comment".
func attributeText(a diagram.Attribute) string {
	parts := []string{a.Type, a.Name}
	if len(a.Keys) > 0 {
		parts = append(parts, strings.Join(a.Keys, ","))
	}
	if a.Comment != "" {
		parts = append(parts, `"`+a.Comment+`"`)
	}
	return strings.Join(parts, " ")
}

func (l *ERLayout) extent(b *geom.Bounds) {
	for _, e := range l.Entities {
		b.AddRect(e.Rect)
	}
	for _, r := range l.Relations {
		r.Connector.extent(b)
	}
}

func (l *ERLayout) translate(dx, dy float64) {
	for i := range l.Entities {
		e := &l.Entities[i]
		e.Rect = e.Rect.Translate(dx, dy)
		e.Header = e.Header.Translate(dx, dy)
		e.Body = e.Body.Translate(dx, dy)
		for j := range e.Rows {
			e.Rows[j].Rect = e.Rows[j].Rect.Translate(dx, dy)
		}
	}
	for i := range l.Relations {
		l.Relations[i].Connector.translate(dx, dy)
	}
}

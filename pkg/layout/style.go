package layout

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
)

// Style is a fully resolved set of visual attributes. Colors are normalized
// to lowercase "#rrggbb" when they parse; anything else passes through
// unchanged so renderers can still interpret it.
type Style struct {
	Fill         string  `json:"fill,omitempty"`
	Stroke       string  `json:"stroke,omitempty"`
	StrokeWidth  float64 `json:"stroke_width,omitempty"`
	TextColor    string  `json:"text_color,omitempty"`
	Dash         string  `json:"dash,omitempty"`
	FontWeight   string  `json:"font_weight,omitempty"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
}

// defaultClass is the class definition applied to every node before its own
// classes, matching the "classDef default" convention.
const defaultClass = "default"

// Apply overlays declared properties onto s. Unknown properties are ignored.
// Keys are applied in sorted order so aliases resolve deterministically.
func (s Style) Apply(props diagram.Properties) Style {
	for _, key := range slices.Sorted(maps.Keys(props)) {
		value := strings.TrimSpace(props[key])
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "fill", "background", "background-color":
			s.Fill = normalizeColor(value)
		case "stroke", "border-color":
			s.Stroke = normalizeColor(value)
		case "stroke-width":
			if w, ok := parseLength(value); ok {
				s.StrokeWidth = w
			}
		case "color":
			s.TextColor = normalizeColor(value)
		case "stroke-dasharray":
			s.Dash = value
		case "font-weight":
			s.FontWeight = value
		case "rx", "border-radius":
			if r, ok := parseLength(value); ok {
				s.CornerRadius = r
			}
		}
	}
	return s
}

// styleResolver merges defaults, class definitions and per-item overrides
// in that order.
type styleResolver struct {
	classDefs map[string]diagram.Properties
	classes   map[string][]string
	overrides map[string]diagram.Properties
}

func (r styleResolver) resolve(base Style, id string) Style {
	s := base
	if def, ok := r.classDefs[defaultClass]; ok {
		s = s.Apply(def)
	}
	for _, class := range r.classes[id] {
		s = s.Apply(r.classDefs[class])
	}
	return s.Apply(r.overrides[id])
}

// normalizeColor canonicalizes CSS hex and rgb() colors. Unparseable values
// are returned unchanged.
func normalizeColor(value string) string {
	c, ok := parseColor(value)
	if !ok {
		return value
	}
	return c.Hex()
}

func parseColor(value string) (colorful.Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.HasPrefix(v, "#") && len(v) == 4 {
		v = "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2)
	}
	if strings.HasPrefix(v, "#") {
		c, err := colorful.Hex(v)
		return c, err == nil
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		parts := strings.Split(v[4:len(v)-1], ",")
		if len(parts) != 3 {
			return colorful.Color{}, false
		}
		var rgb [3]float64
		for i, p := range parts {
			n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || n < 0 || n > 255 {
				return colorful.Color{}, false
			}
			rgb[i] = n / 255
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, true
	}
	if hex, ok := namedColors[v]; ok {
		c, err := colorful.Hex(hex)
		return c, err == nil
	}
	return colorful.Color{}, false
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"gray":   "#808080",
	"grey":   "#808080",
}

// contrastText picks dark or light text for a fill by CIE L* lightness.
func contrastText(fill string) string {
	c, ok := parseColor(fill)
	if !ok {
		return "#333333"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#333333"
	}
	return "#ffffff"
}

// parseLength parses "2", "2.5" or "2px".
func parseLength(value string) (float64, bool) {
	v := strings.TrimSuffix(strings.TrimSpace(value), "px")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func nodeStyle(cfg Config) Style {
	return Style{
		Fill:         normalizeColor(cfg.NodeColor),
		Stroke:       normalizeColor(cfg.NodeBorderColor),
		StrokeWidth:  cfg.LineWidth,
		TextColor:    normalizeColor(cfg.TextColor),
		CornerRadius: cfg.NodeCornerRadius,
	}
}

func stateStyle(cfg Config) Style {
	s := nodeStyle(cfg)
	s.CornerRadius = cfg.StateCornerRadius
	return s
}

func edgeStyle(cfg Config, line diagram.LineStyle) Style {
	s := Style{
		Stroke:      normalizeColor(cfg.EdgeColor),
		StrokeWidth: cfg.LineWidth,
		TextColor:   normalizeColor(cfg.TextColor),
	}
	switch line {
	case diagram.LineDotted:
		s.Dash = "3 3"
	case diagram.LineThick:
		s.StrokeWidth = cfg.LineWidth * 2
	}
	return s
}

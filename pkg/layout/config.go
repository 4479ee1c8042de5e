package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/diagramlayout/pkg/errors"
)

// TimeAxis selects how Gantt tasks are placed horizontally.
type TimeAxis string

// Gantt time axes.
const (
	// TimeAxisCalendar schedules tasks from their parsed start dates, "after"
	// dependencies and durations.
	TimeAxisCalendar TimeAxis = "calendar"
	// TimeAxisOrdinal offsets each task by its position in the chart, one day
	// per task, ignoring dates.
	TimeAxisOrdinal TimeAxis = "ordinal"
)

// Theme names.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
)

// Config holds every dimension and color the strategies read.
//
// Config is a plain value. Build one with [DefaultConfig] or [DarkConfig] and
// override fields as needed; concurrent layouts with different configs never
// interfere.
type Config struct {
	Theme string `json:"theme" toml:"theme" yaml:"theme"`

	// General
	Padding          float64 `json:"padding" toml:"padding" yaml:"padding"`
	FontSize         float64 `json:"font_size" toml:"font_size" yaml:"font_size"`
	TitleFontSize    float64 `json:"title_font_size" toml:"title_font_size" yaml:"title_font_size"`
	TitleHeight      float64 `json:"title_height" toml:"title_height" yaml:"title_height"`
	LineWidth        float64 `json:"line_width" toml:"line_width" yaml:"line_width"`
	RouteMargin      float64 `json:"route_margin" toml:"route_margin" yaml:"route_margin"`
	RouteClearance   float64 `json:"route_clearance" toml:"route_clearance" yaml:"route_clearance"`
	LegendSwatchSize float64 `json:"legend_swatch_size" toml:"legend_swatch_size" yaml:"legend_swatch_size"`

	// Flow graph
	NodeWidth           float64 `json:"node_width" toml:"node_width" yaml:"node_width"`
	NodeHeight          float64 `json:"node_height" toml:"node_height" yaml:"node_height"`
	NodeCornerRadius    float64 `json:"node_corner_radius" toml:"node_corner_radius" yaml:"node_corner_radius"`
	HorizontalSpacing   float64 `json:"horizontal_spacing" toml:"horizontal_spacing" yaml:"horizontal_spacing"`
	VerticalSpacing     float64 `json:"vertical_spacing" toml:"vertical_spacing" yaml:"vertical_spacing"`
	SubgraphPadding     float64 `json:"subgraph_padding" toml:"subgraph_padding" yaml:"subgraph_padding"`
	SubgraphLabelHeight float64 `json:"subgraph_label_height" toml:"subgraph_label_height" yaml:"subgraph_label_height"`

	// Sequence
	ParticipantWidth   float64 `json:"participant_width" toml:"participant_width" yaml:"participant_width"`
	ParticipantHeight  float64 `json:"participant_height" toml:"participant_height" yaml:"participant_height"`
	ParticipantSpacing float64 `json:"participant_spacing" toml:"participant_spacing" yaml:"participant_spacing"`
	MessageSpacing     float64 `json:"message_spacing" toml:"message_spacing" yaml:"message_spacing"`

	// Pie
	PieRadius       float64  `json:"pie_radius" toml:"pie_radius" yaml:"pie_radius"`
	PieLabelOffset  float64  `json:"pie_label_offset" toml:"pie_label_offset" yaml:"pie_label_offset"`
	PieColorPalette []string `json:"pie_color_palette" toml:"pie_color_palette" yaml:"pie_color_palette"`

	// Class
	ClassBoxWidth        float64 `json:"class_box_width" toml:"class_box_width" yaml:"class_box_width"`
	ClassHeaderHeight    float64 `json:"class_header_height" toml:"class_header_height" yaml:"class_header_height"`
	ClassMemberRowHeight float64 `json:"class_member_row_height" toml:"class_member_row_height" yaml:"class_member_row_height"`
	ClassSpacing         float64 `json:"class_spacing" toml:"class_spacing" yaml:"class_spacing"`

	// State
	StateWidth           float64 `json:"state_width" toml:"state_width" yaml:"state_width"`
	StateHeight          float64 `json:"state_height" toml:"state_height" yaml:"state_height"`
	StateCornerRadius    float64 `json:"state_corner_radius" toml:"state_corner_radius" yaml:"state_corner_radius"`
	StateSpacing         float64 `json:"state_spacing" toml:"state_spacing" yaml:"state_spacing"`
	StartEndMarkerRadius float64 `json:"start_end_marker_radius" toml:"start_end_marker_radius" yaml:"start_end_marker_radius"`

	// Gantt
	GanttTimeAxis        TimeAxis `json:"gantt_time_axis" toml:"gantt_time_axis" yaml:"gantt_time_axis"`
	GanttBarHeight       float64  `json:"gantt_bar_height" toml:"gantt_bar_height" yaml:"gantt_bar_height"`
	GanttBarSpacing      float64  `json:"gantt_bar_spacing" toml:"gantt_bar_spacing" yaml:"gantt_bar_spacing"`
	GanttSectionSpacing  float64  `json:"gantt_section_spacing" toml:"gantt_section_spacing" yaml:"gantt_section_spacing"`
	GanttLabelWidth      float64  `json:"gantt_label_width" toml:"gantt_label_width" yaml:"gantt_label_width"`
	GanttDayWidth        float64  `json:"gantt_day_width" toml:"gantt_day_width" yaml:"gantt_day_width"`
	GanttColorPalette    []string `json:"gantt_color_palette" toml:"gantt_color_palette" yaml:"gantt_color_palette"`
	GanttDoneColor       string   `json:"gantt_done_color" toml:"gantt_done_color" yaml:"gantt_done_color"`
	GanttActiveColor     string   `json:"gantt_active_color" toml:"gantt_active_color" yaml:"gantt_active_color"`
	GanttCritColor       string   `json:"gantt_crit_color" toml:"gantt_crit_color" yaml:"gantt_crit_color"`
	GanttCritDoneColor   string   `json:"gantt_crit_done_color" toml:"gantt_crit_done_color" yaml:"gantt_crit_done_color"`
	GanttCritActiveColor string   `json:"gantt_crit_active_color" toml:"gantt_crit_active_color" yaml:"gantt_crit_active_color"`
	GanttMilestoneColor  string   `json:"gantt_milestone_color" toml:"gantt_milestone_color" yaml:"gantt_milestone_color"`

	// ER
	EREntityWidth        float64 `json:"er_entity_width" toml:"er_entity_width" yaml:"er_entity_width"`
	ERHeaderHeight       float64 `json:"er_header_height" toml:"er_header_height" yaml:"er_header_height"`
	ERAttributeRowHeight float64 `json:"er_attribute_row_height" toml:"er_attribute_row_height" yaml:"er_attribute_row_height"`
	ERSpacing            float64 `json:"er_spacing" toml:"er_spacing" yaml:"er_spacing"`

	// Colors
	BackgroundColor     string `json:"background_color" toml:"background_color" yaml:"background_color"`
	NodeColor           string `json:"node_color" toml:"node_color" yaml:"node_color"`
	NodeBorderColor     string `json:"node_border_color" toml:"node_border_color" yaml:"node_border_color"`
	EdgeColor           string `json:"edge_color" toml:"edge_color" yaml:"edge_color"`
	TextColor           string `json:"text_color" toml:"text_color" yaml:"text_color"`
	ArrowColor          string `json:"arrow_color" toml:"arrow_color" yaml:"arrow_color"`
	LifelineColor       string `json:"lifeline_color" toml:"lifeline_color" yaml:"lifeline_color"`
	SubgraphBorderColor string `json:"subgraph_border_color" toml:"subgraph_border_color" yaml:"subgraph_border_color"`
	SubgraphFillColor   string `json:"subgraph_fill_color" toml:"subgraph_fill_color" yaml:"subgraph_fill_color"`
}

// DefaultConfig returns the light preset.
func DefaultConfig() Config {
	return Config{
		Theme: ThemeDefault,

		Padding:          20,
		FontSize:         14,
		TitleFontSize:    18,
		TitleHeight:      40,
		LineWidth:        1.5,
		RouteMargin:      4,
		RouteClearance:   15,
		LegendSwatchSize: 16,

		NodeWidth:           120,
		NodeHeight:          40,
		NodeCornerRadius:    5,
		HorizontalSpacing:   50,
		VerticalSpacing:     60,
		SubgraphPadding:     15,
		SubgraphLabelHeight: 24,

		ParticipantWidth:   120,
		ParticipantHeight:  40,
		ParticipantSpacing: 50,
		MessageSpacing:     50,

		PieRadius:      150,
		PieLabelOffset: 30,
		PieColorPalette: []string{
			"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
			"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
		},

		ClassBoxWidth:        180,
		ClassHeaderHeight:    36,
		ClassMemberRowHeight: 22,
		ClassSpacing:         60,

		StateWidth:           120,
		StateHeight:          40,
		StateCornerRadius:    10,
		StateSpacing:         50,
		StartEndMarkerRadius: 8,

		GanttTimeAxis:        TimeAxisCalendar,
		GanttBarHeight:       24,
		GanttBarSpacing:      8,
		GanttSectionSpacing:  16,
		GanttLabelWidth:      160,
		GanttDayWidth:        30,
		GanttColorPalette:    []string{"#8a90dd", "#a0c4ff", "#b5e48c", "#ffd6a5"},
		GanttDoneColor:       "#d3d3d3",
		GanttActiveColor:     "#bfc7ff",
		GanttCritColor:       "#ff8888",
		GanttCritDoneColor:   "#c97c7c",
		GanttCritActiveColor: "#ff5c5c",
		GanttMilestoneColor:  "#e0a030",

		EREntityWidth:        180,
		ERHeaderHeight:       36,
		ERAttributeRowHeight: 22,
		ERSpacing:            80,

		BackgroundColor:     "#ffffff",
		NodeColor:           "#ececff",
		NodeBorderColor:     "#9370db",
		EdgeColor:           "#333333",
		TextColor:           "#333333",
		ArrowColor:          "#333333",
		LifelineColor:       "#999999",
		SubgraphBorderColor: "#aaaa33",
		SubgraphFillColor:   "#ffffde",
	}
}

// DarkConfig returns the dark preset: the default dimensions with dark
// colors.
func DarkConfig() Config {
	c := DefaultConfig()
	c.Theme = ThemeDark

	c.BackgroundColor = "#1e1e2e"
	c.NodeColor = "#2b2d42"
	c.NodeBorderColor = "#81b1db"
	c.EdgeColor = "#cccccc"
	c.TextColor = "#e0e0e0"
	c.ArrowColor = "#cccccc"
	c.LifelineColor = "#777777"
	c.SubgraphBorderColor = "#cccccc"
	c.SubgraphFillColor = "#2a2a3a"

	c.PieColorPalette = []string{
		"#5b8ff9", "#f6bd16", "#e8684a", "#6dc8ec", "#5ad8a6",
		"#9270ca", "#ff9d4d", "#269a99", "#ff99c3", "#5d7092",
	}
	c.GanttColorPalette = []string{"#4a5bb5", "#3a6ea5", "#4f7a3a", "#a0703a"}
	c.GanttDoneColor = "#555555"
	c.GanttActiveColor = "#3d4a8f"
	c.GanttCritColor = "#b33c3c"
	c.GanttCritDoneColor = "#7a3b3b"
	c.GanttCritActiveColor = "#d93636"
	c.GanttMilestoneColor = "#c08a20"
	return c
}

// Preset returns the preset named by theme ("default", "light" or "dark").
func Preset(theme string) (Config, error) {
	if err := errors.ValidatePreset(theme); err != nil {
		return Config{}, err
	}
	if strings.EqualFold(theme, ThemeDark) {
		return DarkConfig(), nil
	}
	return DefaultConfig(), nil
}

// Validate rejects configs that would produce degenerate geometry.
func (c Config) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"font_size", c.FontSize},
		{"node_width", c.NodeWidth},
		{"node_height", c.NodeHeight},
		{"participant_width", c.ParticipantWidth},
		{"participant_height", c.ParticipantHeight},
		{"message_spacing", c.MessageSpacing},
		{"pie_radius", c.PieRadius},
		{"class_box_width", c.ClassBoxWidth},
		{"class_header_height", c.ClassHeaderHeight},
		{"class_member_row_height", c.ClassMemberRowHeight},
		{"state_width", c.StateWidth},
		{"state_height", c.StateHeight},
		{"start_end_marker_radius", c.StartEndMarkerRadius},
		{"gantt_bar_height", c.GanttBarHeight},
		{"gantt_day_width", c.GanttDayWidth},
		{"er_entity_width", c.EREntityWidth},
		{"er_header_height", c.ERHeaderHeight},
		{"er_attribute_row_height", c.ERAttributeRowHeight},
	}
	for _, d := range dims {
		if d.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %v", d.name, d.value)
		}
	}

	spacings := []struct {
		name  string
		value float64
	}{
		{"padding", c.Padding},
		{"title_height", c.TitleHeight},
		{"horizontal_spacing", c.HorizontalSpacing},
		{"vertical_spacing", c.VerticalSpacing},
		{"participant_spacing", c.ParticipantSpacing},
		{"class_spacing", c.ClassSpacing},
		{"state_spacing", c.StateSpacing},
		{"er_spacing", c.ERSpacing},
		{"route_margin", c.RouteMargin},
		{"route_clearance", c.RouteClearance},
		{"subgraph_padding", c.SubgraphPadding},
		{"node_corner_radius", c.NodeCornerRadius},
		{"state_corner_radius", c.StateCornerRadius},
	}
	for _, s := range spacings {
		if s.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", s.name, s.value)
		}
	}

	if len(c.PieColorPalette) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pie_color_palette must not be empty")
	}
	if len(c.GanttColorPalette) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gantt_color_palette must not be empty")
	}
	switch c.GanttTimeAxis {
	case "", TimeAxisCalendar, TimeAxisOrdinal:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "gantt_time_axis must be %q or %q, got %q",
			TimeAxisCalendar, TimeAxisOrdinal, c.GanttTimeAxis)
	}
	return nil
}

// String returns a short description used in log lines.
func (c Config) String() string {
	return fmt.Sprintf("theme=%s padding=%v font=%v", c.Theme, c.Padding, c.FontSize)
}

package diagram

import "slices"

// =============================================================================
// Flow graph
// =============================================================================

// Shape is the outline drawn for a flow-graph node.
type Shape string

// Node shapes.
const (
	ShapeRect          Shape = "rect"
	ShapeRound         Shape = "round"
	ShapeStadium       Shape = "stadium"
	ShapeSubroutine    Shape = "subroutine"
	ShapeCylinder      Shape = "cylinder"
	ShapeCircle        Shape = "circle"
	ShapeDiamond       Shape = "diamond"
	ShapeHexagon       Shape = "hexagon"
	ShapeParallelogram Shape = "parallelogram"
)

// LineStyle is the stroke pattern of an edge or message.
type LineStyle string

// Line styles.
const (
	LineSolid  LineStyle = "solid"
	LineDotted LineStyle = "dotted"
	LineThick  LineStyle = "thick"
)

// ArrowHead is the marker drawn at the target end of an edge or message.
type ArrowHead string

// Arrow heads.
const (
	ArrowNormal ArrowHead = "arrow"
	ArrowNone   ArrowHead = "none"
	ArrowOpen   ArrowHead = "open"
	ArrowCircle ArrowHead = "circle"
	ArrowCross  ArrowHead = "cross"
	ArrowAsync  ArrowHead = "async"
)

// FlowGraph is a directed node/edge diagram with optional subgraphs.
type FlowGraph struct {
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Direction Direction  `json:"direction,omitempty" yaml:"direction,omitempty"`
	Nodes     []Node     `json:"nodes" yaml:"nodes"`
	Edges     []Edge     `json:"edges,omitempty" yaml:"edges,omitempty"`
	Subgraphs []Subgraph `json:"subgraphs,omitempty" yaml:"subgraphs,omitempty"`

	// ClassDefs maps a style class name to its declarations.
	ClassDefs map[string]Properties `json:"class_defs,omitempty" yaml:"class_defs,omitempty"`
	// NodeClasses assigns style classes to nodes, applied in order.
	NodeClasses map[string][]string `json:"node_classes,omitempty" yaml:"node_classes,omitempty"`
	// NodeStyles are per-node declarations applied after classes.
	NodeStyles map[string]Properties `json:"node_styles,omitempty" yaml:"node_styles,omitempty"`
	// LinkStyles are per-edge declarations keyed by edge index in Edges.
	LinkStyles map[int]Properties `json:"link_styles,omitempty" yaml:"link_styles,omitempty"`
}

// Node is a flow-graph vertex.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Shape Shape  `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed flow-graph connection.
type Edge struct {
	From  string    `json:"from" yaml:"from"`
	To    string    `json:"to" yaml:"to"`
	Label string    `json:"label,omitempty" yaml:"label,omitempty"`
	Line  LineStyle `json:"line,omitempty" yaml:"line,omitempty"`
	Arrow ArrowHead `json:"arrow,omitempty" yaml:"arrow,omitempty"`
}

// Subgraph groups nodes under a titled frame. Nodes may name other subgraph
// IDs to nest them.
type Subgraph struct {
	ID    string   `json:"id" yaml:"id"`
	Title string   `json:"title,omitempty" yaml:"title,omitempty"`
	Nodes []string `json:"nodes" yaml:"nodes"`
}

// =============================================================================
// Sequence
// =============================================================================

// Sequence is a participant/message chart.
type Sequence struct {
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Participants []Participant `json:"participants" yaml:"participants"`
	Messages     []Message     `json:"messages,omitempty" yaml:"messages,omitempty"`
	Autonumber   bool          `json:"autonumber,omitempty" yaml:"autonumber,omitempty"`
}

// Participant is a sequence-chart lifeline owner.
type Participant struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Actor bool   `json:"actor,omitempty" yaml:"actor,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (p Participant) DisplayLabel() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// Message is a sequence-chart arrow between two lifelines.
type Message struct {
	From  string    `json:"from" yaml:"from"`
	To    string    `json:"to" yaml:"to"`
	Text  string    `json:"text,omitempty" yaml:"text,omitempty"`
	Line  LineStyle `json:"line,omitempty" yaml:"line,omitempty"`
	Arrow ArrowHead `json:"arrow,omitempty" yaml:"arrow,omitempty"`
}

// =============================================================================
// Pie
// =============================================================================

// Pie is a proportional slice chart.
type Pie struct {
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	ShowData bool    `json:"show_data,omitempty" yaml:"show_data,omitempty"`
	Slices   []Slice `json:"slices" yaml:"slices"`
}

// Slice is one pie wedge.
type Slice struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// =============================================================================
// Class
// =============================================================================

// RelationKind is the UML relationship drawn between two classes.
type RelationKind string

// Class relationship kinds.
const (
	RelInheritance RelationKind = "inheritance"
	RelComposition RelationKind = "composition"
	RelAggregation RelationKind = "aggregation"
	RelAssociation RelationKind = "association"
	RelDependency  RelationKind = "dependency"
	RelRealization RelationKind = "realization"
	RelLink        RelationKind = "link"
)

// Class is a UML class diagram.
type Class struct {
	Title     string     `json:"title,omitempty" yaml:"title,omitempty"`
	Classes   []ClassDef `json:"classes" yaml:"classes"`
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// ClassDef is one class box.
type ClassDef struct {
	ID         string   `json:"id" yaml:"id"`
	Label      string   `json:"label,omitempty" yaml:"label,omitempty"`
	Annotation string   `json:"annotation,omitempty" yaml:"annotation,omitempty"`
	Attributes []Member `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Methods    []Member `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (c ClassDef) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Member is a class attribute or method.
type Member struct {
	Text       string `json:"text" yaml:"text"`
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty"` // one of + - # ~
}

// DisplayText returns the visibility marker followed by the member text.
func (m Member) DisplayText() string { return m.Visibility + m.Text }

// Relation connects two classes.
type Relation struct {
	From            string       `json:"from" yaml:"from"`
	To              string       `json:"to" yaml:"to"`
	Kind            RelationKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label           string       `json:"label,omitempty" yaml:"label,omitempty"`
	FromCardinality string       `json:"from_cardinality,omitempty" yaml:"from_cardinality,omitempty"`
	ToCardinality   string       `json:"to_cardinality,omitempty" yaml:"to_cardinality,omitempty"`
}

// =============================================================================
// State
// =============================================================================

// StartEndMarker is the identifier of the pseudo-state drawn as a filled
// circle. Identifiers with this prefix ("[*]start", "[*]end_2") are markers
// too, which lets a parser keep start and end markers distinct.
const StartEndMarker = "[*]"

// State is a state machine diagram.
type State struct {
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Direction   Direction    `json:"direction,omitempty" yaml:"direction,omitempty"`
	States      []StateNode  `json:"states" yaml:"states"`
	Transitions []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`

	ClassDefs    map[string]Properties `json:"class_defs,omitempty" yaml:"class_defs,omitempty"`
	StateClasses map[string][]string   `json:"state_classes,omitempty" yaml:"state_classes,omitempty"`
}

// StateNode is one state.
type StateNode struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (s StateNode) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}

// Transition is a directed state change.
type Transition struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// =============================================================================
// Gantt
// =============================================================================

// TaskStatus is a Gantt task flag. Flags combine.
type TaskStatus string

// Task status flags.
const (
	StatusDone      TaskStatus = "done"
	StatusActive    TaskStatus = "active"
	StatusCrit      TaskStatus = "crit"
	StatusMilestone TaskStatus = "milestone"
)

// Gantt is a sectioned task schedule.
type Gantt struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// DateFormat uses YYYY/MM/DD/HH/mm tokens, e.g. "YYYY-MM-DD".
	DateFormat string    `json:"date_format,omitempty" yaml:"date_format,omitempty"`
	Sections   []Section `json:"sections" yaml:"sections"`
}

// Section is a named group of tasks.
type Section struct {
	Name  string `json:"name" yaml:"name"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Task is one bar.
//
// Start is either a date in the chart's DateFormat or "after <id> [<id>...]".
// Duration is "<n>d", "<n>w" or "<n>h". End, when set, is a date and takes
// precedence over Duration.
type Task struct {
	ID       string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name     string       `json:"name" yaml:"name"`
	Status   []TaskStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Start    string       `json:"start,omitempty" yaml:"start,omitempty"`
	Duration string       `json:"duration,omitempty" yaml:"duration,omitempty"`
	End      string       `json:"end,omitempty" yaml:"end,omitempty"`
}

// Has reports whether the task carries the status flag.
func (t Task) Has(s TaskStatus) bool { return slices.Contains(t.Status, s) }

// =============================================================================
// Entity relationship
// =============================================================================

// Cardinality is a crow's-foot end marker.
type Cardinality string

// Crow's-foot cardinalities.
const (
	ExactlyOne Cardinality = "exactly-one"
	ZeroOrOne  Cardinality = "zero-or-one"
	ZeroOrMore Cardinality = "zero-or-more"
	OneOrMore  Cardinality = "one-or-more"
)

// ER is an entity-relationship diagram.
type ER struct {
	Title     string       `json:"title,omitempty" yaml:"title,omitempty"`
	Entities  []Entity     `json:"entities" yaml:"entities"`
	Relations []ERRelation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// Entity is one table-like box.
type Entity struct {
	Name       string      `json:"name" yaml:"name"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Attribute is one entity row.
type Attribute struct {
	Type    string   `json:"type" yaml:"type"`
	Name    string   `json:"name" yaml:"name"`
	Keys    []string `json:"keys,omitempty" yaml:"keys,omitempty"` // PK, FK, UK
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// ERRelation connects two entities.
type ERRelation struct {
	From            string      `json:"from" yaml:"from"`
	To              string      `json:"to" yaml:"to"`
	FromCardinality Cardinality `json:"from_cardinality,omitempty" yaml:"from_cardinality,omitempty"`
	ToCardinality   Cardinality `json:"to_cardinality,omitempty" yaml:"to_cardinality,omitempty"`
	Identifying     bool        `json:"identifying,omitempty" yaml:"identifying,omitempty"`
	Label           string      `json:"label,omitempty" yaml:"label,omitempty"`
}

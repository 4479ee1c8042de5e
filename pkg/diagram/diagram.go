package diagram

import "strings"

// Kind names one of the closed set of diagram variants.
type Kind string

// Diagram kinds.
const (
	KindFlow     Kind = "flow"
	KindSequence Kind = "sequence"
	KindPie      Kind = "pie"
	KindClass    Kind = "class"
	KindState    Kind = "state"
	KindGantt    Kind = "gantt"
	KindER       Kind = "er"
)

// Kinds lists every diagram kind in a stable order.
var Kinds = []Kind{KindFlow, KindSequence, KindPie, KindClass, KindState, KindGantt, KindER}

var kindAliases = map[string]Kind{
	"flow":            KindFlow,
	"flowchart":       KindFlow,
	"graph":           KindFlow,
	"sequence":        KindSequence,
	"sequencediagram": KindSequence,
	"pie":             KindPie,
	"class":           KindClass,
	"classdiagram":    KindClass,
	"state":           KindState,
	"statediagram":    KindState,
	"statediagram-v2": KindState,
	"gantt":           KindGantt,
	"er":              KindER,
	"erdiagram":       KindER,
}

// ParseKind resolves a kind name, accepting the usual diagram keywords
// ("flowchart", "sequenceDiagram", "erDiagram", ...) case-insensitively.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// Diagram is the closed sum type over the seven diagram variants.
//
// The unexported method seals the interface: only the types in this package
// implement it, so a type switch over the variants is exhaustive by
// construction.
type Diagram interface {
	Kind() Kind
	sealed()
}

func (FlowGraph) Kind() Kind { return KindFlow }
func (Sequence) Kind() Kind  { return KindSequence }
func (Pie) Kind() Kind       { return KindPie }
func (Class) Kind() Kind     { return KindClass }
func (State) Kind() Kind     { return KindState }
func (Gantt) Kind() Kind     { return KindGantt }
func (ER) Kind() Kind        { return KindER }

func (FlowGraph) sealed() {}
func (Sequence) sealed()  {}
func (Pie) sealed()       {}
func (Class) sealed()     {}
func (State) sealed()     {}
func (Gantt) sealed()     {}
func (ER) sealed()        {}

// Direction is the primary flow direction of a layered diagram.
type Direction string

// Layout directions. TD is an alias of TB.
const (
	TopToBottom Direction = "TB"
	TopDown     Direction = "TD"
	BottomToTop Direction = "BT"
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
)

// Normalize maps aliases and unknown values onto one of TB, BT, LR, RL.
func (d Direction) Normalize() Direction {
	switch Direction(strings.ToUpper(string(d))) {
	case BottomToTop:
		return BottomToTop
	case LeftToRight:
		return LeftToRight
	case RightToLeft:
		return RightToLeft
	default:
		return TopToBottom
	}
}

// Horizontal reports whether layers advance along the x axis.
func (d Direction) Horizontal() bool {
	n := d.Normalize()
	return n == LeftToRight || n == RightToLeft
}

// Reversed reports whether layers advance toward decreasing coordinates.
func (d Direction) Reversed() bool {
	n := d.Normalize()
	return n == BottomToTop || n == RightToLeft
}

// Properties are CSS-like style declarations such as "fill" or "stroke-width".
type Properties map[string]string

// Merge returns a copy of p overlaid with o.
func (p Properties) Merge(o Properties) Properties {
	out := make(Properties, len(p)+len(o))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range o {
		out[k] = v
	}
	return out
}

package diagram

import (
	"github.com/matzehuels/diagramlayout/pkg/errors"
)

// Document is the serialized envelope for a [Diagram].
//
// Kind selects the variant; exactly the matching field is populated. The
// envelope is the format read from files and accepted over HTTP:
//
//	{"kind": "pie", "pie": {"slices": [{"label": "a", "value": 30}]}}
type Document struct {
	Kind     Kind       `json:"kind" yaml:"kind"`
	Flow     *FlowGraph `json:"flow,omitempty" yaml:"flow,omitempty"`
	Sequence *Sequence  `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	Pie      *Pie       `json:"pie,omitempty" yaml:"pie,omitempty"`
	Class    *Class     `json:"class,omitempty" yaml:"class,omitempty"`
	State    *State     `json:"state,omitempty" yaml:"state,omitempty"`
	Gantt    *Gantt     `json:"gantt,omitempty" yaml:"gantt,omitempty"`
	ER       *ER        `json:"er,omitempty" yaml:"er,omitempty"`
}

// Diagram returns the variant selected by Kind.
//
// Kind names are resolved with [ParseKind], so "flowchart" and "erDiagram"
// are accepted. A missing payload is treated as an empty diagram of that kind
// rather than an error; an unknown kind returns an INVALID_KIND error.
func (d Document) Diagram() (Diagram, error) {
	kind, ok := ParseKind(string(d.Kind))
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidKind, "unknown diagram kind: %q", d.Kind)
	}

	switch kind {
	case KindFlow:
		return deref(d.Flow), nil
	case KindSequence:
		return deref(d.Sequence), nil
	case KindPie:
		return deref(d.Pie), nil
	case KindClass:
		return deref(d.Class), nil
	case KindState:
		return deref(d.State), nil
	case KindGantt:
		return deref(d.Gantt), nil
	case KindER:
		return deref(d.ER), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidKind, "unknown diagram kind: %q", d.Kind)
}

// Wrap builds the envelope for d.
func Wrap(d Diagram) Document {
	doc := Document{Kind: d.Kind()}
	switch v := d.(type) {
	case FlowGraph:
		doc.Flow = &v
	case Sequence:
		doc.Sequence = &v
	case Pie:
		doc.Pie = &v
	case Class:
		doc.Class = &v
	case State:
		doc.State = &v
	case Gantt:
		doc.Gantt = &v
	case ER:
		doc.ER = &v
	}
	return doc
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

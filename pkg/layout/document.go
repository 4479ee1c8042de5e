package layout

import (
	"encoding/json"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/errors"
)

// Document is the serialized envelope for a [Positioned] layout. Kind
// selects which field is populated:
//
//	{"kind": "pie", "pie": {"center": {...}, "slices": [...], "size": {...}}}
type Document struct {
	Kind     diagram.Kind    `json:"kind"`
	Flow     *FlowLayout     `json:"flow,omitempty"`
	Sequence *SequenceLayout `json:"sequence,omitempty"`
	Pie      *PieLayout      `json:"pie,omitempty"`
	Class    *ClassLayout    `json:"class,omitempty"`
	State    *StateLayout    `json:"state,omitempty"`
	Gantt    *GanttLayout    `json:"gantt,omitempty"`
	ER       *ERLayout       `json:"er,omitempty"`
}

// Wrap builds the envelope for p.
func Wrap(p Positioned) Document {
	doc := Document{}
	switch v := p.(type) {
	case FlowLayout:
		doc.Flow = &v
	case SequenceLayout:
		doc.Sequence = &v
	case PieLayout:
		doc.Pie = &v
	case ClassLayout:
		doc.Class = &v
	case StateLayout:
		doc.State = &v
	case GanttLayout:
		doc.Gantt = &v
	case ERLayout:
		doc.ER = &v
	default:
		return doc
	}
	doc.Kind = p.Kind()
	return doc
}

// Positioned returns the layout selected by Kind, or an INVALID_KIND error
// when Kind is unknown or its payload is missing.
func (d Document) Positioned() (Positioned, error) {
	var p Positioned
	switch d.Kind {
	case diagram.KindFlow:
		if d.Flow != nil {
			p = *d.Flow
		}
	case diagram.KindSequence:
		if d.Sequence != nil {
			p = *d.Sequence
		}
	case diagram.KindPie:
		if d.Pie != nil {
			p = *d.Pie
		}
	case diagram.KindClass:
		if d.Class != nil {
			p = *d.Class
		}
	case diagram.KindState:
		if d.State != nil {
			p = *d.State
		}
	case diagram.KindGantt:
		if d.Gantt != nil {
			p = *d.Gantt
		}
	case diagram.KindER:
		if d.ER != nil {
			p = *d.ER
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidKind, "unknown layout kind: %q", d.Kind)
	}
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidKind, "layout document of kind %q has no payload", d.Kind)
	}
	return p, nil
}

// Marshal encodes p as an envelope.
func Marshal(p Positioned) ([]byte, error) {
	if p == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil layout")
	}
	data, err := json.Marshal(Wrap(p))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s layout", p.Kind())
	}
	return data, nil
}

// Unmarshal decodes an envelope produced by [Marshal].
func Unmarshal(data []byte) (Positioned, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout document")
	}
	return doc.Positioned()
}

package layout

import (
	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// Positioned is the closed sum type over the seven positioned layouts. Every
// coordinate is absolute and every style resolved, so a renderer never needs
// to repeat a layout decision.
type Positioned interface {
	Kind() diagram.Kind
	Canvas() geom.Size
	sealed()
}

func (l FlowLayout) Kind() diagram.Kind     { return diagram.KindFlow }
func (l SequenceLayout) Kind() diagram.Kind { return diagram.KindSequence }
func (l PieLayout) Kind() diagram.Kind      { return diagram.KindPie }
func (l ClassLayout) Kind() diagram.Kind    { return diagram.KindClass }
func (l StateLayout) Kind() diagram.Kind    { return diagram.KindState }
func (l GanttLayout) Kind() diagram.Kind    { return diagram.KindGantt }
func (l ERLayout) Kind() diagram.Kind       { return diagram.KindER }

func (l FlowLayout) Canvas() geom.Size     { return l.Size }
func (l SequenceLayout) Canvas() geom.Size { return l.Size }
func (l PieLayout) Canvas() geom.Size      { return l.Size }
func (l ClassLayout) Canvas() geom.Size    { return l.Size }
func (l StateLayout) Canvas() geom.Size    { return l.Size }
func (l GanttLayout) Canvas() geom.Size    { return l.Size }
func (l ERLayout) Canvas() geom.Size       { return l.Size }

func (FlowLayout) sealed()     {}
func (SequenceLayout) sealed() {}
func (PieLayout) sealed()      {}
func (ClassLayout) sealed()    {}
func (StateLayout) sealed()    {}
func (GanttLayout) sealed()    {}
func (ERLayout) sealed()       {}

// Layout dispatches d to the strategy for its kind.
//
// Layout never fails for a well-typed diagram. A nil diagram yields nil.
func Layout(d diagram.Diagram, cfg Config) Positioned {
	switch v := d.(type) {
	case diagram.FlowGraph:
		return Flow(v, cfg)
	case diagram.Sequence:
		return Sequence(v, cfg)
	case diagram.Pie:
		return PieChart(v, cfg)
	case diagram.Class:
		return ClassDiagram(v, cfg)
	case diagram.State:
		return StateMachine(v, cfg)
	case diagram.Gantt:
		return GanttChart(v, cfg)
	case diagram.ER:
		return ERDiagram(v, cfg)
	}
	return nil
}

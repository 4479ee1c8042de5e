// Package layout turns typed diagram descriptions into positioned layouts.
//
// Each diagram kind has a strategy: [Flow], [Sequence], [PieChart],
// [ClassDiagram], [StateMachine], [GanttChart] and [ERDiagram]. [Layout]
// dispatches over the sealed [diagram.Diagram] sum type:
//
//	cfg := layout.DefaultConfig()
//	pos := layout.Layout(diagram.FlowGraph{
//	    Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
//	    Edges: []diagram.Edge{{From: "a", To: "b"}},
//	}, cfg)
//	fmt.Println(pos.Canvas())
//
// # Pipeline
//
// Layered kinds (flow graphs and state machines) go through the same steps:
//
//  1. Layer assignment: longest path from a source, see
//     [transform.AssignLayers]
//  2. Grid placement: layer index on the primary axis, position within the
//     layer on the secondary axis
//  3. Edge routing: a straight line when it clears every other node,
//     otherwise a four-point detour around the obstacles it hits
//  4. Canvas sizing: everything is shifted inside the padding and the
//     canvas is the maximum extent plus padding
//
// Class and ER diagrams place boxes on a square-ish grid and connect them
// along the dominant axis. Sequence, pie and Gantt charts use their own
// placement but share routing, styling and canvas sizing.
//
// # Totality
//
// Strategies never fail. References to unknown identifiers are dropped,
// duplicate identifiers keep their first definition, empty inputs produce a
// minimal canvas, cycles fall back to a deterministic order and self
// references become small loops. Output is deterministic: the same input and
// config always give identical layouts.
//
// # Configuration
//
// [Config] is a plain value. [DefaultConfig] and [DarkConfig] are the two
// presets; callers copy and adjust them freely.
//
// [transform.AssignLayers]: github.com/matzehuels/diagramlayout/pkg/dag/transform.AssignLayers
// [diagram.Diagram]: github.com/matzehuels/diagramlayout/pkg/diagram.Diagram
package layout

// Package diagram defines the typed diagram descriptions consumed by the
// layout engine.
//
// A [Diagram] is one of seven variants: [FlowGraph], [Sequence], [Pie],
// [Class], [State], [Gantt] and [ER]. The interface is sealed, so code that
// switches over the variants (see the layout package) covers every case.
//
// Descriptions are plain values produced by a parser or decoded from a
// [Document] envelope. Relationships reference identifiers by value and may
// name identifiers that do not exist; consumers drop such references.
//
// # Serialization
//
// Every type carries json and yaml tags. The [Document] envelope selects the
// variant with a "kind" field:
//
//	kind: flow
//	flow:
//	  direction: LR
//	  nodes:
//	    - {id: a, label: Start}
//	    - {id: b, shape: diamond}
//	  edges:
//	    - {from: a, to: b}
package diagram

// Package dag provides the directed graph container used by the layered
// layout strategies (flow graphs and state machines).
//
// # Overview
//
// A [DAG] holds nodes keyed by string identifier, directed edges between them,
// and a row index that the layer assigner in [transform] fills in. Nodes keep
// their insertion order so that every traversal the layout engine performs is
// deterministic.
//
// # Tolerant Construction
//
// Diagram descriptions are not guaranteed to be well formed. The container
// reports, rather than repairs, the two structural problems the layout engine
// cares about:
//
//   - [DAG.AddNode] returns [ErrDuplicateNodeID] for a repeated identifier and
//     keeps the first declaration.
//   - [DAG.AddEdge] returns [ErrUnknownSourceNode] / [ErrUnknownTargetNode]
//     for references to undeclared nodes and does not add the edge.
//
// Callers that want lenient behaviour simply ignore those errors.
//
// # Cycles
//
// Cycles and self loops are representable. [DAG.Validate] detects them;
// [transform.AssignLayers] still produces a total, deterministic layering.
//
// [transform]: github.com/matzehuels/diagramlayout/pkg/dag/transform
// [transform.AssignLayers]: github.com/matzehuels/diagramlayout/pkg/dag/transform.AssignLayers
package dag

// Package transform provides graph transformations that prepare a [dag.DAG]
// for layered placement.
//
// # Layer Assignment
//
// [AssignLayers] computes the layer of every node as its longest-path distance
// from a source. Ties are broken lexicographically everywhere so the result is
// identical across runs, and cyclic input degrades to a deterministic
// fallback instead of failing:
//
//	g := dag.New(nil)
//	_ = g.AddNode(dag.Node{ID: "a"})
//	_ = g.AddNode(dag.Node{ID: "b"})
//	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
//	l := transform.AssignLayers(g) // l.Layers == [[a] [b]]
//
// [dag.DAG]: github.com/matzehuels/diagramlayout/pkg/dag.DAG
package transform

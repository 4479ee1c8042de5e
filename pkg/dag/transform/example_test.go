package transform_test

import (
	"fmt"

	"github.com/matzehuels/diagramlayout/pkg/dag"
	"github.com/matzehuels/diagramlayout/pkg/dag/transform"
)

func ExampleAssignLayers() {
	// Diamond: a fans out to b and c, which join again at d
	g := dag.New(nil)
	for _, id := range []string{"d", "c", "b", "a"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "c"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "d"})
	_ = g.AddEdge(dag.Edge{From: "c", To: "d"})

	l := transform.AssignLayers(g)
	fmt.Println("Layers:", l.Layers)
	fmt.Println("Order:", l.Order)
	fmt.Println("Cyclic:", l.Cyclic())
	// Output:
	// Layers: [[a] [b c] [d]]
	// Order: [a b c d]
	// Cyclic: false
}

func ExampleAssignLayers_cycle() {
	// c feeds a two-node cycle a ⇄ b
	g := dag.New(nil)
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})
	_ = g.AddEdge(dag.Edge{From: "c", To: "a"})

	l := transform.AssignLayers(g)
	fmt.Println("Layers:", l.Layers)
	fmt.Println("Fallback:", l.Fallback)
	// Output:
	// Layers: [[c] [a] [b]]
	// Fallback: [a b]
}

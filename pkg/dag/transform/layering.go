package transform

import (
	"slices"

	"github.com/matzehuels/diagramlayout/pkg/dag"
)

// Layering is the result of [AssignLayers].
type Layering struct {
	// Order is the total node order used to compute layers: a topological
	// order for the acyclic part of the graph followed by the cycle fallback.
	Order []string
	// Layers groups node IDs by layer; layer 0 holds the sources. IDs within a
	// layer are sorted lexicographically.
	Layers [][]string
	// Rank maps each node ID to its layer index.
	Rank map[string]int
	// Fallback lists, in the order they were appended, the nodes that never
	// reached in-degree zero because they sit on or behind a cycle.
	Fallback []string
}

// Cyclic reports whether the cycle fallback was needed.
func (l Layering) Cyclic() bool { return len(l.Fallback) > 0 }

// AssignLayers assigns every node of g to a layer by the longest path from a
// source and writes the result back with [dag.DAG.SetRows].
//
// # Algorithm
//
// AssignLayers is Kahn's algorithm with deterministic tie-breaking:
//  1. Seed the queue with all in-degree-0 nodes, sorted lexicographically
//  2. Dequeue a node, append it to the order, decrement its successors
//  3. Successors that reach in-degree 0 are enqueued, each batch sorted
//  4. Repeat until the queue is empty
//
// A node's layer is 1 + the maximum layer of its predecessors that precede it
// in the order, or 0 if there are none. For acyclic graphs every predecessor
// precedes its successor, so layer(from) < layer(to) holds for every edge.
//
// # Cycles
//
// Nodes on a cycle never reach in-degree 0. They are appended to the order in
// lexicographic order after the queue drains. Only predecessors already placed
// contribute to their layer, so every node gets a finite layer and the result
// is total and deterministic, at the cost of not modelling the cycle itself.
//
// # Performance
//
// O(V log V + E) time, O(V) space.
func AssignLayers(g *dag.DAG) Layering {
	ids := g.NodeIDs()
	inDegree := make(map[string]int, len(ids))
	queue := make([]string, 0, len(ids))

	for _, id := range ids {
		degree := g.InDegree(id)
		inDegree[id] = degree
		if degree == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(ids))
	visited := make(map[string]bool, len(ids))

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)
		visited[curr] = true

		var released []string
		for _, child := range g.Children(curr) {
			inDegree[child]--
			if inDegree[child] == 0 {
				released = append(released, child)
			}
		}
		slices.Sort(released)
		queue = append(queue, released...)
	}

	var fallback []string
	for _, id := range ids {
		if !visited[id] {
			fallback = append(fallback, id)
			order = append(order, id)
		}
	}

	rank := make(map[string]int, len(order))
	placed := make(map[string]bool, len(order))
	maxRank := -1
	for _, id := range order {
		row := 0
		for _, parent := range g.Parents(id) {
			if placed[parent] && rank[parent]+1 > row {
				row = rank[parent] + 1
			}
		}
		rank[id] = row
		placed[id] = true
		maxRank = max(maxRank, row)
	}

	layers := make([][]string, maxRank+1)
	for _, id := range ids {
		layers[rank[id]] = append(layers[rank[id]], id)
	}

	g.SetRows(rank)

	return Layering{
		Order:    order,
		Layers:   layers,
		Rank:     rank,
		Fallback: fallback,
	}
}

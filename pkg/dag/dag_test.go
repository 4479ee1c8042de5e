package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr error
		count   int
	}{
		{
			name:  "single",
			nodes: []Node{{ID: "a"}},
			count: 1,
		},
		{
			name:    "empty id",
			nodes:   []Node{{ID: ""}},
			wantErr: ErrInvalidNodeID,
			count:   0,
		},
		{
			name:    "duplicate keeps first",
			nodes:   []Node{{ID: "a", Row: 1}, {ID: "a", Row: 7}},
			wantErr: ErrDuplicateNodeID,
			count:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil)
			var err error
			for _, n := range tt.nodes {
				if e := g.AddNode(n); e != nil {
					err = e
				}
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
			if g.NodeCount() != tt.count {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.count)
			}
		})
	}
}

func TestDuplicateNodeFirstWins(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a", Meta: Metadata{"label": "first"}})
	_ = g.AddNode(Node{ID: "a", Meta: Metadata{"label": "second"}})

	n, ok := g.Node("a")
	if !ok {
		t.Fatal("node a missing")
	}
	if n.Meta["label"] != "first" {
		t.Errorf("label = %v, want first", n.Meta["label"])
	}
}

func TestAddEdgeUnknownEndpoints(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})

	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("unknown source: got %v", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("unknown target: got %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"c", "a", "b"} {
		_ = g.AddNode(Node{ID: id})
	}

	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.ID)
	}
	if !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("Nodes() order = %v", got)
	}
	if ids := g.NodeIDs(); !slices.Equal(ids, []string{"a", "b", "c"}) {
		t.Errorf("NodeIDs() = %v", ids)
	}
}

func TestSetRows(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "c"})

	g.SetRows(map[string]int{"b": 1, "c": 2})

	if g.MaxRow() != 2 {
		t.Errorf("MaxRow() = %d, want 2", g.MaxRow())
	}
	if !slices.Equal(g.RowIDs(), []int{0, 1, 2}) {
		t.Errorf("RowIDs() = %v", g.RowIDs())
	}
	if rows := g.NodesInRow(1); len(rows) != 1 || rows[0].ID != "b" {
		t.Errorf("NodesInRow(1) = %v", rows)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		edges   [][2]string
		wantErr error
	}{
		{"empty", nil, nil},
		{"chain", [][2]string{{"a", "b"}, {"b", "c"}}, nil},
		{"diamond", [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, nil},
		{"cycle", [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, ErrGraphHasCycle},
		{"self loop", [][2]string{{"a", "a"}}, ErrGraphHasCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil)
			for _, id := range []string{"a", "b", "c", "d"} {
				_ = g.AddNode(Node{ID: id})
			}
			for _, e := range tt.edges {
				_ = g.AddEdge(Edge{From: e[0], To: e[1]})
			}
			if err := g.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSources(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "c"})

	var got []string
	for _, n := range g.Sources() {
		got = append(got, n.ID)
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Sources() = %v", got)
	}
}

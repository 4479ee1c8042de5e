package layout

import (
	"math"

	"github.com/matzehuels/diagramlayout/pkg/dag"
	"github.com/matzehuels/diagramlayout/pkg/dag/transform"
	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// grid places layered nodes into fixed-size cells.
//
// The primary axis carries the layer index and the secondary axis the index
// within the layer:
//
//	primary   = origin + layer * (extent + spacing)
//	secondary = origin + index * (extent + spacing)
//
// TB lays layers along y, LR along x. BT and RL mirror the primary axis so
// layer 0 ends up at the far side.
type grid struct {
	Origin    geom.Point
	Cell      geom.Size
	Gap       geom.Size // Width separates columns, Height separates rows
	Direction diagram.Direction
}

// place returns the cell rectangle of every node in layers.
func (g grid) place(layers [][]string) map[string]geom.Rect {
	rects := make(map[string]geom.Rect)
	maxLayer := len(layers) - 1
	horizontal := g.Direction.Horizontal()
	reversed := g.Direction.Reversed()

	for layer, ids := range layers {
		primary := layer
		if reversed {
			primary = maxLayer - layer
		}
		for index, id := range ids {
			var x, y float64
			if horizontal {
				x = g.Origin.X + float64(primary)*(g.Cell.Width+g.Gap.Width)
				y = g.Origin.Y + float64(index)*(g.Cell.Height+g.Gap.Height)
			} else {
				x = g.Origin.X + float64(index)*(g.Cell.Width+g.Gap.Width)
				y = g.Origin.Y + float64(primary)*(g.Cell.Height+g.Gap.Height)
			}
			rects[id] = geom.R(x, y, g.Cell.Width, g.Cell.Height)
		}
	}
	return rects
}

// link is an edge that survived reference checking, with its index in the
// input list.
type link struct {
	Index    int
	From, To string
}

// layered is the common front half of the flow and state strategies: build a
// graph from the surviving nodes and edges, then assign layers.
type layered struct {
	IDs      []string // kept node ids in input order
	Links    []link   // kept edges, self loops included
	Layering transform.Layering
}

// buildLayered adds ids first-wins, drops links to unknown ids and runs the
// layer assigner. Self loops are kept in Links but not added to the graph, so
// they never affect layering.
func buildLayered(ids []string, edges [][2]string) layered {
	g := dag.New(nil)
	var out layered
	for _, id := range ids {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			continue
		}
		out.IDs = append(out.IDs, id)
	}

	for i, e := range edges {
		_, okFrom := g.Node(e[0])
		_, okTo := g.Node(e[1])
		if !okFrom || !okTo {
			continue
		}
		out.Links = append(out.Links, link{Index: i, From: e[0], To: e[1]})
		if e[0] == e[1] {
			continue
		}
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}

	out.Layering = transform.AssignLayers(g)
	return out
}

// boxGrid places boxes of varying size on a square-ish grid with
// ceil(sqrt(n)) columns. Every column is as wide as the widest box and boxes
// are centered horizontally in their column; each row is as tall as its
// tallest box.
func boxGrid(origin geom.Point, sizes []geom.Size, spacing float64) []geom.Rect {
	n := len(sizes)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))

	var colWidth float64
	for _, s := range sizes {
		colWidth = math.Max(colWidth, s.Width)
	}

	rects := make([]geom.Rect, n)
	y := origin.Y
	for start := 0; start < n; start += cols {
		end := min(start+cols, n)
		var rowHeight float64
		for i := start; i < end; i++ {
			rowHeight = math.Max(rowHeight, sizes[i].Height)
		}
		for i := start; i < end; i++ {
			col := i - start
			x := origin.X + float64(col)*(colWidth+spacing) + (colWidth-sizes[i].Width)/2
			rects[i] = geom.R(x, y, sizes[i].Width, sizes[i].Height)
		}
		y += rowHeight + spacing
	}
	return rects
}

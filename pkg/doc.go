// Package pkg provides the core libraries for diagramlayout.
//
// # Overview
//
// diagramlayout turns a diagram description (flowchart, sequence, pie, class,
// state, Gantt, entity-relationship) into a fully positioned layout: every
// box, line and label has absolute coordinates, so a renderer only has to
// draw. The pkg directory is organized into three areas:
//
//  1. Model - [diagram] inputs, [geom] primitives, [errors] codes
//  2. Engine - [dag] graphs, [dag/transform] layering, [layout] per-kind strategies
//  3. Infrastructure - [cache], [pipeline], [io], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	diagram document (JSON/YAML)
//	         ↓
//	    [io] package (decode, validate kind)
//	         ↓
//	    [pipeline] package (cache lookup keyed by diagram + config)
//	         ↓
//	    [layout] package (per-kind strategy, routing, canvas fit)
//	         ↓
//	    layout document (JSON)
//
// # Quick Start
//
// Lay out a diagram directly:
//
//	import (
//	    "github.com/matzehuels/diagramlayout/pkg/diagram"
//	    "github.com/matzehuels/diagramlayout/pkg/layout"
//	)
//
//	d := diagram.FlowGraph{
//	    Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
//	    Edges: []diagram.Edge{{From: "a", To: "b"}},
//	}
//	p := layout.Layout(d, layout.DefaultConfig())
//	data, _ := layout.Marshal(p)
//
// Or through the cached pipeline used by the CLI and the HTTP server:
//
//	c, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, _ := runner.Layout(ctx, d, layout.DarkConfig())
//
// # Main Packages
//
// [diagram] - Input model: one value type per diagram kind behind the sealed
// [diagram.Diagram] interface, plus the serialized document envelope.
//
// [geom] - Points, rectangles, bounds and segment/rectangle intersection.
//
// [dag] - Directed graph with first-wins node insertion.
//
// [dag/transform] - Longest-path layer assignment with a deterministic
// fallback for cyclic input.
//
// [layout] - The layout engine. [layout.Layout] dispatches on diagram kind;
// every result carries its canvas size and serializes through
// [layout.Document].
//
// [cache] - Layout cache backends: null, file (CLI) and Redis (server).
//
// [pipeline] - Cached layout runner shared by the CLI and the server.
//
// [io] - Diagram and config file readers, layout and config writers.
//
// [errors] - Coded errors with HTTP status mapping and input validation.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example        # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/diagram
// [diagram.Diagram]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/diagram#Diagram
// [geom]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/geom
// [errors]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/errors
// [dag]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/dag/transform
// [layout]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/layout
// [layout.Layout]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/layout#Layout
// [layout.Document]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/layout#Document
// [cache]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/diagramlayout/pkg/buildinfo
package pkg

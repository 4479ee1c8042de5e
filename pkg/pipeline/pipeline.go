// Package pipeline runs diagram layouts behind a cache.
//
// The CLI and the API server both go through a [Runner] so they share one
// cache key scheme and the same logging and instrumentation. A Runner holds
// no per-request state; multiple goroutines can use the same Runner with
// different diagrams and configs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Layout(ctx, graph, layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Layout.Canvas(), res.Hit)
//
// Cache keys hash the diagram envelope and the full config, so changing any
// setting (including colors) produces a new key. Cache failures are logged
// and reported through [observability.Cache]; they never fail a layout.
package pipeline

import (
	"time"

	"github.com/matzehuels/diagramlayout/pkg/layout"
)

// Result is the outcome of one layout run.
type Result struct {
	// Layout is the positioned diagram.
	Layout layout.Positioned
	// Document is Layout wrapped in its serialized envelope.
	Document layout.Document
	// Hit reports whether the layout came from the cache.
	Hit bool
	// Duration is the wall time of the run, including cache access.
	Duration time.Duration
	// Key is the cache key for the inputs.
	Key string
}

// Package geom provides the geometric primitives shared by every layout
// strategy: points, sizes, axis-aligned rectangles, a bounds accumulator and a
// Liang–Barsky segment/rectangle intersection test.
//
// All types are plain values. Y grows downward.
package geom

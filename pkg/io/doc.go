// Package io reads diagram descriptions and configuration files and writes
// computed layouts.
//
// # Diagram files
//
// A diagram file holds a [diagram.Document] envelope in JSON or YAML:
//
//	kind: flowchart
//	flow:
//	  direction: LR
//	  nodes:
//	    - {id: a, label: Start}
//	    - {id: b, shape: diamond}
//	  edges:
//	    - {from: a, to: b, label: go}
//
// Use [ImportDiagram] to read a file by path, or [ReadDiagram] to decode from
// any io.Reader. The kind accepts the usual keywords ("flowchart", "graph",
// "sequenceDiagram", "erDiagram", ...).
//
// # Configuration files
//
// [ImportConfig] and [ReadConfig] overlay a TOML, YAML or JSON file onto a
// preset. Keys that are absent keep the preset's value; a top-level theme key
// selects the base preset:
//
//	theme = "dark"
//	node_width = 160
//	pie_color_palette = ["#264653", "#2a9d8f", "#e9c46a"]
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
// The result is validated with [layout.Config.Validate].
//
// # Output
//
// [WriteLayout] and [ExportLayout] encode a [layout.Positioned] as an
// indented [layout.Document]. [WriteConfig] prints a configuration in any of
// the supported formats, which is how the CLI's config command shows the
// effective settings.
//
// # Errors
//
// Every error carries a [errors.Code]: FILE_NOT_FOUND for missing files,
// INVALID_PATH for unusable paths, INVALID_FORMAT for undecodable content or
// unsupported extensions, INVALID_KIND for unknown diagram kinds and
// INVALID_CONFIG for rejected configuration.
package io

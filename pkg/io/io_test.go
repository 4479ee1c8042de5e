package io

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/errors"
	"github.com/matzehuels/diagramlayout/pkg/layout"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.json", FormatJSON, true},
		{"dir/a.yaml", FormatYAML, true},
		{"a.YML", FormatYAML, true},
		{"config.toml", FormatTOML, true},
		{"a.txt", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.ok {
				if err != nil || got != tt.want {
					t.Fatalf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Fatalf("FormatFromPath(%q) error = %v, want INVALID_FORMAT", tt.path, err)
			}
		})
	}
}

func TestImportDiagram(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "flow.json",
			content: `{"kind": "flowchart", "flow": {"direction": "LR",
				"nodes": [{"id": "a"}, {"id": "b", "label": "B"}],
				"edges": [{"from": "a", "to": "b"}]}}`,
		},
		{
			name: "yaml",
			file: "flow.yml",
			content: `kind: graph
flow:
  direction: LR
  nodes:
    - id: a
    - {id: b, label: B}
  edges:
    - {from: a, to: b}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ImportDiagram(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("ImportDiagram: %v", err)
			}
			g, ok := d.(diagram.FlowGraph)
			if !ok {
				t.Fatalf("got %T, want diagram.FlowGraph", d)
			}
			if g.Direction != diagram.LeftToRight {
				t.Errorf("direction = %q, want LR", g.Direction)
			}
			if len(g.Nodes) != 2 || g.Nodes[1].Label != "B" {
				t.Errorf("nodes = %+v", g.Nodes)
			}
			if len(g.Edges) != 1 || g.Edges[0].From != "a" || g.Edges[0].To != "b" {
				t.Errorf("edges = %+v", g.Edges)
			}
		})
	}
}

func TestImportDiagramErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, errors.ErrCodeFileNotFound},
		{"empty path", func(*testing.T) string { return "" }, errors.ErrCodeInvalidFormat},
		{"unknown extension", func(t *testing.T) string { return writeFile(t, "a.txt", "{}") }, errors.ErrCodeInvalidFormat},
		{"toml diagram", func(t *testing.T) string { return writeFile(t, "a.toml", `kind = "pie"`) }, errors.ErrCodeInvalidFormat},
		{"malformed json", func(t *testing.T) string { return writeFile(t, "a.json", "{") }, errors.ErrCodeInvalidFormat},
		{"malformed yaml", func(t *testing.T) string { return writeFile(t, "a.yaml", "kind: [") }, errors.ErrCodeInvalidFormat},
		{"unknown kind", func(t *testing.T) string { return writeFile(t, "a.json", `{"kind": "venn"}`) }, errors.ErrCodeInvalidKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportDiagram(tt.path(t))
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadDiagramMissingPayload(t *testing.T) {
	d, err := ReadDiagram(strings.NewReader(`{"kind": "pie"}`), FormatJSON)
	if err != nil {
		t.Fatalf("ReadDiagram: %v", err)
	}
	if _, ok := d.(diagram.Pie); !ok {
		t.Fatalf("got %T, want diagram.Pie", d)
	}
}

func TestReadConfigOverlay(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
	}{
		{"toml", FormatTOML, "node_width = 200\nedge_color = \"#ff0000\"\n"},
		{"yaml", FormatYAML, "node_width: 200\nedge_color: \"#ff0000\"\n"},
		{"json", FormatJSON, `{"node_width": 200, "edge_color": "#ff0000"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ReadConfig(strings.NewReader(tt.content), tt.format)
			if err != nil {
				t.Fatalf("ReadConfig: %v", err)
			}
			want := layout.DefaultConfig()
			want.NodeWidth = 200
			want.EdgeColor = "#ff0000"
			if !reflect.DeepEqual(cfg, want) {
				t.Errorf("ReadConfig = %+v\nwant %+v", cfg, want)
			}
		})
	}
}

func TestReadConfigTheme(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
	}{
		{"toml", FormatTOML, "theme = \"dark\"\npie_radius = 100\n"},
		{"yaml", FormatYAML, "theme: dark\npie_radius: 100\n"},
		{"json", FormatJSON, `{"theme": "dark", "pie_radius": 100}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ReadConfig(strings.NewReader(tt.content), tt.format)
			if err != nil {
				t.Fatalf("ReadConfig: %v", err)
			}
			want := layout.DarkConfig()
			want.PieRadius = 100
			if !reflect.DeepEqual(cfg, want) {
				t.Errorf("ReadConfig = %+v\nwant %+v", cfg, want)
			}
		})
	}
}

func TestReadConfigEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			cfg, err := ReadConfig(strings.NewReader(""), format)
			if err != nil {
				t.Fatalf("ReadConfig: %v", err)
			}
			if !reflect.DeepEqual(cfg, layout.DefaultConfig()) {
				t.Errorf("empty config differs from the default preset")
			}
		})
	}
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
		want    string
	}{
		{"unknown toml key", FormatTOML, "node_widht = 10\n", "node_widht"},
		{"unknown yaml key", FormatYAML, "node_widht: 10\n", "node_widht"},
		{"unknown json key", FormatJSON, `{"node_widht": 10}`, "node_widht"},
		{"non-positive dimension", FormatTOML, "node_width = 0\n", "node_width"},
		{"unknown theme", FormatTOML, "theme = \"solarized\"\n", "solarized"},
		{"malformed", FormatTOML, "node_width = \n", ""},
		{"wrong type", FormatJSON, `{"node_width": "wide"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadConfig(strings.NewReader(tt.content), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestImportConfig(t *testing.T) {
	path := writeFile(t, "diagram.toml", "theme = \"dark\"\nfont_size = 12\n")
	cfg, err := ImportConfig(path)
	if err != nil {
		t.Fatalf("ImportConfig: %v", err)
	}
	if cfg.Theme != layout.ThemeDark || cfg.FontSize != 12 {
		t.Errorf("theme = %q, font size = %v", cfg.Theme, cfg.FontSize)
	}

	_, err = ImportConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	cfg := layout.DarkConfig()
	cfg.LineWidth = 2.25
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteConfig(&buf, cfg, format); err != nil {
				t.Fatalf("WriteConfig: %v", err)
			}
			got, err := ReadConfig(&buf, format)
			if err != nil {
				t.Fatalf("ReadConfig: %v", err)
			}
			if !reflect.DeepEqual(got, cfg) {
				t.Errorf("round trip = %+v\nwant %+v", got, cfg)
			}
		})
	}
}

func TestWriteConfigUnsupported(t *testing.T) {
	err := WriteConfig(&bytes.Buffer{}, layout.DefaultConfig(), "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestExportLayout(t *testing.T) {
	g := diagram.FlowGraph{
		Nodes: []diagram.Node{{ID: "a"}, {ID: "b"}},
		Edges: []diagram.Edge{{From: "a", To: "b"}},
	}
	want := layout.Layout(g, layout.DefaultConfig())

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportLayout(want, path); err != nil {
		t.Fatalf("ExportLayout: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte("\n  \"kind\": \"flow\"")) {
		t.Errorf("output is not indented JSON:\n%s", data)
	}
	got, err := layout.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("exported layout differs:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestWriteLayoutNil(t *testing.T) {
	if err := WriteLayout(&bytes.Buffer{}, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/errors"
	"github.com/matzehuels/diagramlayout/pkg/layout"
)

const flowYAML = `kind: flowchart
flow:
  nodes:
    - {id: a, label: Start}
    - {id: b, label: End}
  edges:
    - {from: a, to: b}
`

// runCLI executes the root command with args and returns what the command
// wrote to its output stream.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readLayout(t *testing.T, path string) layout.Positioned {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	p, err := layout.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return p
}

func expectedFlow(cfg layout.Config) layout.Positioned {
	return layout.Layout(diagram.FlowGraph{
		Nodes: []diagram.Node{{ID: "a", Label: "Start"}, {ID: "b", Label: "End"}},
		Edges: []diagram.Edge{{From: "a", To: "b"}},
	}, cfg)
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	input := writeTemp(t, "flow.yaml", flowYAML)
	if _, err := runCLI(t, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}
	got := readLayout(t, strings.TrimSuffix(input, ".yaml")+".layout.json")
	if !reflect.DeepEqual(got, expectedFlow(layout.DefaultConfig())) {
		t.Error("written layout differs from direct layout")
	}
}

func TestLayoutCommandOptions(t *testing.T) {
	input := writeTemp(t, "flow.yaml", flowYAML)
	configPath := writeTemp(t, "wide.toml", "node_width = 200\n")

	wide := layout.DefaultConfig()
	wide.NodeWidth = 200
	darkWide := withDarkColors(wide)

	tests := []struct {
		name string
		args []string
		want layout.Config
	}{
		{"dark", []string{"--dark"}, layout.DarkConfig()},
		{"config file", []string{"--config", configPath}, wide},
		{"config file and dark", []string{"--config", configPath, "--dark"}, darkWide},
		{"no cache", []string{"--no-cache"}, layout.DefaultConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.json")
			args := append([]string{"layout", input, "-o", out}, tt.args...)
			if _, err := runCLI(t, args...); err != nil {
				t.Fatalf("layout: %v", err)
			}
			if got := readLayout(t, out); !reflect.DeepEqual(got, expectedFlow(tt.want)) {
				t.Error("layout differs from direct layout")
			}
		})
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	input := writeTemp(t, "flow.json", `{"kind": "flowchart", "flow": {
		"nodes": [{"id": "a", "label": "Start"}, {"id": "b", "label": "End"}],
		"edges": [{"from": "a", "to": "b"}]}}`)
	out, err := runCLI(t, "layout", input, "-o", "-")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	p, err := layout.Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a layout document: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(p, expectedFlow(layout.DefaultConfig())) {
		t.Error("stdout layout differs from direct layout")
	}
}

func TestLayoutCommandMultipleInputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.json")
	if err := os.WriteFile(a, []byte(flowYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`{"kind": "pie", "pie": {"slices": [{"label": "x", "value": 1}]}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, "layout", a, b); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if got := readLayout(t, filepath.Join(dir, "a.layout.json")).Kind(); got != diagram.KindFlow {
		t.Errorf("a kind = %s", got)
	}
	if got := readLayout(t, filepath.Join(dir, "b.layout.json")).Kind(); got != diagram.KindPie {
		t.Errorf("b kind = %s", got)
	}

	_, err := runCLI(t, "layout", a, b, "-o", filepath.Join(dir, "x.json"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("--output with two inputs: error = %v, want INVALID_INPUT", err)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	badKind := writeTemp(t, "venn.json", `{"kind": "venn"}`)
	badConfig := writeTemp(t, "bad.toml", "node_width = -1\n")
	input := writeTemp(t, "flow.yaml", flowYAML)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing input", []string{"layout", missing}, errors.ErrCodeFileNotFound},
		{"unknown kind", []string{"layout", badKind}, errors.ErrCodeInvalidKind},
		{"invalid config", []string{"layout", input, "--config", badConfig}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := runCLI(t, "layout"); err == nil {
		t.Error("layout without inputs should fail")
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := runCLI(t, "config", "--dark", "--format", "json")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var got layout.Config
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !reflect.DeepEqual(got, layout.DarkConfig()) {
		t.Errorf("config = %+v", got)
	}

	out, err = runCLI(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, `theme = "default"`) || !strings.Contains(out, "node_width = 120.0") {
		t.Errorf("default TOML output unexpected:\n%s", out)
	}

	if _, err := runCLI(t, "config", "--format", "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.Join(xdg, appName) {
		t.Errorf("cache path = %q", got)
	}
}

func TestCacheClearCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	input := writeTemp(t, "flow.yaml", flowYAML)

	run := func(args ...string) {
		t.Helper()
		root := New(io.Discard, log.InfoLevel).RootCommand()
		root.SetOut(io.Discard)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	run("layout", input)
	entries, _ := os.ReadDir(filepath.Join(xdg, appName))
	if len(entries) == 0 {
		t.Fatal("layout did not populate the cache")
	}

	run("cache", "clear")
	entries, _ = os.ReadDir(filepath.Join(xdg, appName))
	if len(entries) != 0 {
		t.Errorf("cache still has %d entries after clear", len(entries))
	}
}

func TestLayoutPath(t *testing.T) {
	tests := []struct {
		input, output, want string
	}{
		{"flow.yaml", "", "flow.layout.json"},
		{"dir/seq.json", "", "dir/seq.layout.json"},
		{"noext", "", "noext.layout.json"},
		{"flow.yaml", "custom.json", "custom.json"},
	}
	for _, tt := range tests {
		if got := layoutPath(tt.input, tt.output); got != tt.want {
			t.Errorf("layoutPath(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine("flow", 160, 180, true)
	for _, want := range []string{"flow", "160×180", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("stats line %q lacks %q", line, want)
		}
	}
	if !strings.Contains(statsLine("pie", 40, 40, false), iconFresh) {
		t.Error("uncached stats line should say fresh")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := []string{"cache", "completion", "config", "layout", "serve"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		found := false
		for _, g := range got {
			if g == name {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q in %v", name, got)
		}
	}
}

package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	pkgio "github.com/matzehuels/dressform/pkg/io"
	"github.com/matzehuels/dressform/pkg/pipeline"
)

// runCLI executes the root command with args against an isolated config and
// cache.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))
	t.Setenv("DRESSFORM_CACHE", "memory")

	c := New(io.Discard, log.WarnLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{" svg , pages ,", []string{"svg", "pages"}},
	}

	for _, tt := range tests {
		got := parseList(tt.input)
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseList(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.Config.Render.Paper = "a3"
	c.Config.Render.Formats = []string{"svg", "pdf"}

	opts := pipeline.Options{Style: "print"}
	c.applyConfigDefaults(&opts)

	if opts.Style != "print" {
		t.Errorf("Style = %q, flag value should win", opts.Style)
	}
	if opts.Paper != "a3" {
		t.Errorf("Paper = %q, want a3", opts.Paper)
	}
	if !slices.Equal(opts.Formats, []string{"svg", "pdf"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Split != "standard" {
		t.Errorf("Split = %q, want standard", opts.Split)
	}

	// The config slice must not be shared.
	opts.Formats[0] = "png"
	if c.Config.Render.Formats[0] != "svg" {
		t.Error("applyConfigDefaults aliased the config formats")
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	want := []string{"draft", "inspect", "form", "diagram", "batch", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestDraftCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	err := runCLI(t, "draft", "-o", out, "-f", "svg,json,dxf", "-p", "sleeve",
		"--set", "bust=96", "--figure", "bust=full")
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	for _, name := range []string{"sleeve.svg", "sleeve.json", "sleeve.dxf"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "bodice.svg")); err == nil {
		t.Error("bodice.svg written although only the sleeve was requested")
	}
}

func TestDraftCommandProfile(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "anna.toml")
	p := pkgio.DefaultProfile()
	p.Name = "anna"
	p.Render = &pkgio.RenderSettings{Formats: []string{"json"}}
	if err := pkgio.ExportProfile(p, profile); err != nil {
		t.Fatal(err)
	}

	if err := runCLI(t, "draft", profile); err != nil {
		t.Fatalf("draft: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "anna-pattern", "bodice.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("bodice.json is not JSON: %v", err)
	}
	if doc["units"] != "cm" {
		t.Errorf("units = %v, want cm", doc["units"])
	}
}

func TestDraftCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"draft", "-f", "gif"}},
		{"unknown measurement", []string{"draft", "--set", "wingspan=100"}},
		{"out of range", []string{"draft", "--set", "bust=200"}},
		{"unknown figure axis", []string{"draft", "--figure", "neck=long"}},
		{"unknown split", []string{"draft", "--split", "radial"}},
		{"missing profile", []string{"draft", "nope.toml"}},
		{"bad profile extension", []string{"draft", "profile.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-o", t.TempDir())
			if err := runCLI(t, args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	var profiles []string
	for i, bust := range []float64{92, 110} {
		p := pkgio.DefaultProfile()
		p.Measurements.Bust = bust
		path := filepath.Join(dir, []string{"a.toml", "b.json"}[i])
		if err := pkgio.ExportProfile(p, path); err != nil {
			t.Fatal(err)
		}
		profiles = append(profiles, path)
	}

	out := filepath.Join(dir, "patterns")
	args := append([]string{"batch", "-o", out, "-f", "json"}, profiles...)
	if err := runCLI(t, args...); err != nil {
		t.Fatalf("batch: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "batch.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m batchManifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(m.Jobs))
	}
	if m.Jobs[0].DraftHash == m.Jobs[1].DraftHash {
		t.Error("different profiles produced the same draft hash")
	}
	for _, job := range m.Jobs {
		if _, err := os.Stat(filepath.Join(job.Dir, "bodice.json")); err != nil {
			t.Errorf("%s: %v", job.Profile, err)
		}
	}
}

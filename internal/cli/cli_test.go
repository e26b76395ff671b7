package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/weekgrid/pkg/errors"
)

const week = `
Start: 8:00 AM
End: 9:00 AM
Colors:
  Math: lightgreen
Invariants:
  - Block: Recess
    Time: 8:30 AM - 8:45 AM
Monday:
  - Block: Math
    Time: 8:00 AM - 8:30 AM
Thursday:
  - Block: Art
    Time: 8:45 AM - 9:00 AM
`

type testEnv struct {
	dir      string
	cacheDir string
	config   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:      dir,
		cacheDir: filepath.Join(dir, "cache"),
		config:   filepath.Join(dir, "config.toml"),
	}
	cfg := fmt.Sprintf("[cache]\ndir = %q\n", env.cacheDir)
	if err := os.WriteFile(env.config, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return env
}

func (e testEnv) write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the CLI and returns everything written to stdout.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	prev := statusOut
	statusOut = &out
	defer func() { statusOut = prev }()

	c := New(io.Discard, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", e.config}, args...))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompileCommand(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write(t, "week.yaml", week)

	out, err := env.run(t, "compile", "--compact", doc)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if rows, _ := body["rows"].([]any); len(rows) != 4 {
		t.Errorf("rows = %d, want 4", len(rows))
	}

	target := filepath.Join(env.dir, "grid.json")
	out, err = env.run(t, "compile", "-o", target, doc)
	if err != nil {
		t.Fatalf("compile -o error: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second compile should report a cache hit:\n%s", out)
	}
}

func TestCompileCommandErrors(t *testing.T) {
	env := newTestEnv(t)

	bad := env.write(t, "bad.yaml", strings.Replace(week, "8:45 AM - 9:00 AM", "8:45 AM - 9:05 AM", 1))
	_, err := env.run(t, "compile", bad)
	if !errs.Is(err, errs.ErrCodeInvalidRange) {
		t.Errorf("error = %v, want INVALID_RANGE", err)
	}

	_, err = env.run(t, "compile", filepath.Join(env.dir, "missing.yaml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderCommand(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write(t, "week.yaml", week)
	base := filepath.Join(env.dir, "out", "week")

	out, err := env.run(t, "render", "-f", "html,txt,xlsx", "-o", base, "--title", "Grade 4", doc)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, ext := range []string{"html", "txt", "xlsx"} {
		path := base + "." + ext
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s missing: %v", path, err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("output should list %s", path)
		}
	}

	page, _ := os.ReadFile(base + ".html")
	if !strings.Contains(string(page), "Grade 4") {
		t.Error("title flag should reach the HTML page")
	}
}

func TestRenderCommandDefaultPath(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write(t, "week.yaml", week)

	if _, err := env.run(t, "render", doc); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "week.html")); err != nil {
		t.Errorf("default output should sit next to the input: %v", err)
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write(t, "week.yaml", week)

	_, err := env.run(t, "render", "-f", "gif", doc)
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestSummaryCommand(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write(t, "week.yaml", week)

	out, err := env.run(t, "summary", "--total", doc)
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	for _, want := range []string{"Art", "Math", "Recess", "Total: 60 minutes"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write(t, "week.yaml", week)

	out, err := env.run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != env.cacheDir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), env.cacheDir)
	}

	if _, err := env.run(t, "compile", doc); err != nil {
		t.Fatal(err)
	}
	if _, err := env.run(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(env.cacheDir)
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestNoCacheFlag(t *testing.T) {
	env := newTestEnv(t)
	doc := env.write(t, "week.yaml", week)

	if _, err := env.run(t, "--no-cache", "compile", doc); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(env.cacheDir); len(entries) != 0 {
		t.Errorf("--no-cache wrote %d cache entries", len(entries))
	}
}

func TestBadConfig(t *testing.T) {
	env := newTestEnv(t)
	if err := os.WriteFile(env.config, []byte("[cache]\nbackend = \"tape\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := env.run(t, "cache", "path"); err == nil {
		t.Error("invalid config should fail before the command runs")
	}
}

func TestCompletionCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "weekgrid") {
		t.Error("bash completion should mention the program name")
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	err := errs.New(errs.ErrCodeMalformedTime, "Invalid time format: %s", "25:99 XM").WithField("Monday[0].Time", "25:99 XM")
	ReportError(&buf, err)

	out := buf.String()
	if !strings.Contains(out, iconError+" Invalid time format: 25:99 XM") {
		t.Errorf("ReportError() = %q", out)
	}
	if !strings.Contains(out, `at Monday[0].Time: "25:99 XM"`) {
		t.Errorf("ReportError() should name the field: %q", out)
	}

	buf.Reset()
	ReportError(&buf, io.ErrUnexpectedEOF)
	if !strings.Contains(buf.String(), "unexpected EOF") {
		t.Errorf("plain error = %q", buf.String())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		format string
		count  int
		input  string
		output string
		want   string
	}{
		{"next to input", "html", 1, "dir/week.yaml", "", "dir/week.html"},
		{"single explicit", "html", 1, "week.yaml", "out/grade4.htm", "out/grade4.htm"},
		{"multiple base", "svg", 2, "week.yaml", "out/grade4", "out/grade4.svg"},
		{"multiple strips format ext", "xlsx", 2, "week.yaml", "out/grade4.html", "out/grade4.xlsx"},
		{"single without ext", "pdf", 1, "week.yaml", "out/grade4", "out/grade4.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.format, tt.count, tt.input, tt.output); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/toaster/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q", out)
	}
}

func TestRenderToStdout(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "toaster.yaml", "position: top-center\ncloseButton: true\n")
	sc := writeFile(t, dir, "s.yaml", `
steps:
  - show: {name: a, title: Saved}
  - snapshot: shown
`)

	out, err := run(t, "render", sc, "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!-- shown @", "Saved", `data-y-position="top"`, "data-close-button"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderToDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "toaster.json", `{}`)
	sc := writeFile(t, dir, "s.yaml", `
steps:
  - show: {title: One}
  - snapshot: first one
  - advance: 1s
  - snapshot: second
`)
	outDir := filepath.Join(dir, "out")

	if _, err := run(t, "render", sc, "-c", cfg, "-o", outDir, "--only", "first one"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "first_one.html")); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "second.html")); err == nil {
		t.Error("--only wrote other snapshots")
	}

	_, err := run(t, "render", sc, "-c", cfg, "--only", "missing")
	if te, ok := err.(*errors.ToastError); !ok || te.Code != "T042" {
		t.Errorf("err = %v, want T042", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "theme: dark\n")
	bad := writeFile(t, dir, "bad.yaml", "theme: sepia\n")
	sc := writeFile(t, dir, "s.yaml", "steps:\n  - show: {name: a, title: Hi}\n  - dismiss: a\n")
	broken := writeFile(t, dir, "broken.yaml", "steps:\n  - dismiss: nobody\n")

	if _, err := run(t, "check", "--config", good, sc); err != nil {
		t.Errorf("check good = %v", err)
	}

	tests := []struct {
		name  string
		args  []string
		codes []string
	}{
		{"bad config", []string{"--config", bad}, []string{"T004"}},
		{"bad scenario", []string{"--config", good, sc, broken}, []string{"T023"}},
		{"missing scenario", []string{"--config", good, filepath.Join(dir, "none.yaml")}, []string{"T020"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"check", "--format", "json"}, tt.args...)...)
			if te, ok := err.(*errors.ToastError); !ok || te.Code != "T044" {
				t.Fatalf("err = %v, want T044", err)
			}
			var problems []struct{ Code string }
			if err := json.Unmarshal([]byte(out), &problems); err != nil {
				t.Fatalf("%v: %s", err, out)
			}
			var codes []string
			for _, p := range problems {
				codes = append(codes, p.Code)
			}
			if strings.Join(codes, ",") != strings.Join(tt.codes, ",") {
				t.Errorf("codes = %v, want %v", codes, tt.codes)
			}
		})
	}
}

func TestCheckFormats(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "theme: sepia\n")

	out, _ := run(t, "check", "--config", bad, "--format", "compact")
	if !strings.HasPrefix(out, bad+":1:") || !strings.Contains(out, "T004: Invalid theme") {
		t.Errorf("compact output = %q", out)
	}

	out, _ = run(t, "check", "--config", bad, "--no-color")
	if !strings.Contains(out, "ERROR T004: Invalid theme") {
		t.Errorf("text output = %q", out)
	}

	_, err := run(t, "check", "--format", "xml")
	if te, ok := err.(*errors.ToastError); !ok || te.Code != "T042" {
		t.Errorf("unknown format err = %v, want T042", err)
	}
}

func TestInitThenCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	if _, err := run(t, "init", dir, "--template", "json", "--position", "top-left"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "check", "--config", filepath.Join(dir, "toaster.json")); err != nil {
		t.Errorf("check generated config: %v", err)
	}

	_, err := run(t, "init", dir, "--template", "json")
	if te, ok := err.(*errors.ToastError); !ok || te.Code != "T043" {
		t.Errorf("second init = %v, want T043", err)
	}

	_, err = run(t, "init", dir, "--position", "middle")
	if te, ok := err.(*errors.ToastError); !ok || te.Code != "T042" {
		t.Errorf("bad position = %v, want T042", err)
	}
}

package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/toaster"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func code(err error) string {
	var te *errors.ToastError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Position != string(toaster.DefaultPosition) {
		t.Errorf("Position = %q, want %q", cfg.Position, toaster.DefaultPosition)
	}
	if cfg.VisibleToasts != 3 {
		t.Errorf("VisibleToasts = %d, want 3", cfg.VisibleToasts)
	}
	if cfg.Duration != "4s" {
		t.Errorf("Duration = %q, want 4s", cfg.Duration)
	}
	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want %q", cfg.Serve.Host, DefaultHost)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(dir); code(err) != "T001" {
		t.Fatalf("Load(empty) code = %q, want T001", code(err))
	}

	writeFile(t, dir, "toaster.json", `{
  "position": "top-center",
  "visibleToasts": 5,
  "closeButton": true,
  "duration": "infinite",
  "serve": {"port": 8080}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Position != "top-center" {
		t.Errorf("Position = %q", cfg.Position)
	}
	if cfg.VisibleToasts != 5 {
		t.Errorf("VisibleToasts = %d", cfg.VisibleToasts)
	}
	if !cfg.CloseButton {
		t.Error("CloseButton should be true")
	}
	if cfg.Serve.Port != 8080 || cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve = %+v", cfg.Serve)
	}
	if cfg.Gap != toaster.DefaultGap {
		t.Errorf("Gap = %v, want default", cfg.Gap)
	}
	if cfg.BaseDir() != dir {
		t.Errorf("BaseDir() = %q, want %q", cfg.BaseDir(), dir)
	}

	tc, err := cfg.Toaster(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tc.Duration != toast.Infinite {
		t.Errorf("toaster Duration = %v, want Infinite", tc.Duration)
	}
	if tc.Position != toast.TopCenter {
		t.Errorf("toaster Position = %q", tc.Position)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "toaster.yaml", `
position: bottom-left
duration: 1500ms
theme: dark
classNames:
  toast: my-toast
  category:
    error: my-error
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.Theme)
	}

	tc, err := cfg.Toaster(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tc.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v", tc.Duration)
	}
	if tc.ClassNames.Toast != "my-toast" {
		t.Errorf("ClassNames.Toast = %q", tc.ClassNames.Toast)
	}
	if tc.ClassNames.Category[toast.CategoryError] != "my-error" {
		t.Errorf("ClassNames.Category = %v", tc.ClassNames.Category)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "toaster.yml", "position: top-left\n")
	writeFile(t, dir, "toaster.json", `{"position": "top-right"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Position != "top-right" {
		t.Errorf("Position = %q, want top-right", cfg.Position)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"bad json", "toaster.json", `{"position": `, "T002"},
		{"bad yaml", "toaster.yaml", "position: [top\n", "T002"},
		{"wrong type", "toaster.yaml", "visibleToasts: many\n", "T002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := LoadFile(path)
			if code(err) != tt.code {
				t.Errorf("code = %q, want %q (err %v)", code(err), tt.code, err)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); code(err) != "T001" {
		t.Errorf("missing file code = %q, want T001", code(err))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"position", func(c *Config) { c.Position = "middle" }, "T003"},
		{"theme", func(c *Config) { c.Theme = "sepia" }, "T004"},
		{"dir", func(c *Config) { c.Dir = "up" }, "T005"},
		{"hotkey", func(c *Config) { c.Hotkey = "alt+" }, "T006"},
		{"duration", func(c *Config) { c.Duration = "soon" }, "T009"},
		{"negative gap", func(c *Config) { c.Gap = -1 }, "T007"},
		{"port", func(c *Config) { c.Serve.Port = 70000 }, "T007"},
		{"category", func(c *Config) { c.ClassNames.Category = map[string]string{"fancy": "x"} }, "T002"},
		{"sanitizer", func(c *Config) { c.Sanitizer = "none" }, "T002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if got := code(cfg.Validate()); got != tt.code {
				t.Errorf("Validate() code = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestValidateLocatesYAMLKey(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "toaster.yaml", "gap: 10\ntheme: sepia\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var te *errors.ToastError
	if !stderrors.As(cfg.Validate(), &te) {
		t.Fatal("expected ToastError")
	}
	if te.Location == nil {
		t.Fatal("expected location")
	}
	if te.Location.Line != 2 || te.Location.Column != 8 {
		t.Errorf("Location = %d:%d, want 2:8", te.Location.Line, te.Location.Column)
	}
}

func TestToasterIcons(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "icons.json", `{"success": "<svg id=\"ok\"></svg>"}`)
	path := writeFile(t, dir, "toaster.yaml", "icons: icons.json\nsanitizer: strict\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tc, err := cfg.Toaster(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tc.Icons == nil {
		t.Fatal("Icons provider not set")
	}
	if tc.Icons.Icon(toast.CategorySuccess) == nil {
		t.Error("success icon missing")
	}
	if tc.Sanitizer == nil {
		t.Error("strict sanitizer not set")
	}

	cfg.Icons = "missing.json"
	if _, err := cfg.Toaster(nil); code(err) != "T008" {
		t.Errorf("missing manifest code = %q, want T008", code(err))
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"toaster.json", "toaster.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := New()
			cfg.Position = "top-left"
			cfg.Expand = true

			path := filepath.Join(dir, name)
			if err := cfg.SaveTo(path); err != nil {
				t.Fatal(err)
			}
			if cfg.Path() != path {
				t.Errorf("Path() = %q", cfg.Path())
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if loaded.Position != "top-left" || !loaded.Expand {
				t.Errorf("loaded = %+v", loaded)
			}
		})
	}

	if err := New().Save(); err == nil {
		t.Error("Save without path should fail")
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindRoot(nested); err == nil {
		t.Error("expected error without config")
	}

	writeFile(t, root, "toaster.yml", "expand: true\n")

	found, err := FindRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs(root)
	if found != abs {
		t.Errorf("FindRoot = %q, want %q", found, abs)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists mismatch")
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	cfg.Serve.Host = "0.0.0.0"
	cfg.Serve.Port = 9000
	if got := cfg.Address(); !strings.HasSuffix(got, ":9000") {
		t.Errorf("Address() = %q", got)
	}
}

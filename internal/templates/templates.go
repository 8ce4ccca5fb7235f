package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/toaster/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName names the scenarios.
	ProjectName string

	// Position is the toaster's default position.
	Position string

	// Theme is light, dark or system.
	Theme string

	// RichColors enables colored success and error toasts.
	RichColors bool
}

// Top reports whether the toaster sits at the top of the screen.
func (c Config) Top() bool {
	return strings.HasPrefix(c.Position, "top")
}

func (c *Config) applyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = "toaster"
	}
	if c.Position == "" {
		c.Position = "bottom-right"
	}
	if c.Theme == "" {
		c.Theme = "light"
	}
}

// Template represents a scaffold.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

var templates = map[string]*Template{
	"basic":   basicTemplate(),
	"json":    jsonTemplate(),
	"promise": promiseTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("T042").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: basic, json, promise")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template into dir. Existing files are never
// overwritten.
func (t *Template) Create(dir string, cfg Config) error {
	cfg.applyDefaults()

	for relPath := range t.Files {
		if _, err := os.Stat(filepath.Join(dir, relPath)); err == nil {
			return errors.New("T043").
				WithDetail(filepath.Join(dir, relPath) + " already exists")
		}
	}

	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return errors.New("T040").Wrap(err)
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return errors.New("T040").Wrap(err)
		}
	}

	return nil
}

const welcomeScenario = `name: {{.ProjectName}}-welcome
description: A toast auto-closes, pauses on hover and is swiped away.
steps:
  - show: {name: saved, title: Saved, description: Your changes are live.}
  - show: {name: synced, title: Synced, category: success}
  - advance: 1s
  - snapshot: stacked
  - hover: true
  - advance: 10s
  - snapshot: expanded
  - leave
  - swipe: {toast: synced, distance: {{if .Top}}-30{{else}}30{{end}}, duration: 150ms}
  - advance: 200ms
  - snapshot: swiped
  - advance: 4s
  - snapshot: empty
`

func basicTemplate() *Template {
	return &Template{
		Name:        "basic",
		Description: "toaster.yaml and a welcome scenario",
		Files: map[string]string{
			"toaster.yaml": `# Toaster configuration for {{.ProjectName}}.
position: {{.Position}}
theme: {{.Theme}}
visibleToasts: 3
duration: 4s
closeButton: true
richColors: {{.RichColors}}
hotkey: alt+KeyT
`,
			"scenarios/welcome.yaml": welcomeScenario,
		},
	}
}

func jsonTemplate() *Template {
	return &Template{
		Name:        "json",
		Description: "toaster.json and a welcome scenario",
		Files: map[string]string{
			"toaster.json": `{
  "position": "{{.Position}}",
  "theme": "{{.Theme}}",
  "visibleToasts": 3,
  "duration": "4s",
  "richColors": {{.RichColors}},
  "serve": {"port": 3000}
}
`,
			"scenarios/welcome.yaml": welcomeScenario,
		},
	}
}

func promiseTemplate() *Template {
	return &Template{
		Name:        "promise",
		Description: "toaster.yaml and a scenario with promises and buttons",
		Files: map[string]string{
			"toaster.yaml": `# Toaster configuration for {{.ProjectName}}.
position: {{.Position}}
theme: {{.Theme}}
richColors: {{.RichColors}}
expand: false
`,
			"scenarios/upload.yaml": `name: {{.ProjectName}}-upload
description: An upload promise succeeds, a second one fails, and an undo action runs.
steps:
  - promise: {name: upload, loading: Uploading..., success: Uploaded, after: 2s}
  - promise: {name: sync, loading: Syncing..., error: Sync failed, fail: true, after: 1s}
  - advance: 500ms
  - snapshot: pending
  - advance: 2s
  - snapshot: settled
  - show: {name: deleted, title: File deleted, action: Undo, cancel: Dismiss}
  - advance: 100ms
  - action: deleted
  - advance: 200ms
  - snapshot: undone
`,
		},
	}
}

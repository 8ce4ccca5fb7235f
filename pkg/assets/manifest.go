// Package assets maps toast categories to the glyphs drawn next to them.
//
// The built-in set covers success, info, warning and error. Applications can
// replace any of them with a JSON manifest mapping category names to SVG
// markup:
//
//	{
//	  "success": "<svg viewBox=\"0 0 20 20\">...</svg>",
//	  "error": "<svg viewBox=\"0 0 20 20\">...</svg>"
//	}
//
// Manifest markup is trusted; it comes from the application, not from toast
// content.
package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/vango-dev/toaster/pkg/toast"
)

// Manifest holds the mapping from categories to icon markup.
// It is safe for concurrent use.
type Manifest struct {
	entries map[toast.Category]string
	mu      sync.RWMutex
}

// NewManifest creates an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{
		entries: make(map[toast.Category]string),
	}
}

// Load reads an icon manifest file. Keys must be category names.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	m := NewManifest()
	for name, markup := range raw {
		c := toast.ParseCategory(name)
		if string(c) != name {
			return nil, fmt.Errorf("assets: unknown category %q in %s", name, path)
		}
		m.entries[c] = markup
	}
	return m, nil
}

// Resolve returns the markup for c.
func (m *Manifest) Resolve(c toast.Category) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	markup, ok := m.entries[c]
	return markup, ok
}

// Set adds or replaces the markup for c.
func (m *Manifest) Set(c toast.Category, markup string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[c] = markup
}

// Len returns the number of entries in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

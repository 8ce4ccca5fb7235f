package assets

import (
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/vdom"
)

// Provider returns the glyph for a toast category, or nil for none.
type Provider interface {
	Icon(c toast.Category) *vdom.VNode
}

// builtin is the default icon set.
type builtin struct{}

// Builtin returns the default icon set.
func Builtin() Provider { return builtin{} }

func (builtin) Icon(c toast.Category) *vdom.VNode {
	switch c {
	case toast.CategorySuccess:
		return successIcon()
	case toast.CategoryInfo:
		return infoIcon()
	case toast.CategoryWarning:
		return warningIcon()
	case toast.CategoryError:
		return errorIcon()
	default:
		return nil
	}
}

// manifestProvider serves manifest entries, falling back to another
// provider for categories the manifest lacks.
type manifestProvider struct {
	manifest *Manifest
	fallback Provider
}

// NewProvider serves icons from m, falling back to the built-in set.
func NewProvider(m *Manifest) Provider {
	return &manifestProvider{manifest: m, fallback: builtin{}}
}

func (p *manifestProvider) Icon(c toast.Category) *vdom.VNode {
	if markup, ok := p.manifest.Resolve(c); ok {
		if markup == "" {
			return nil
		}
		return vdom.Raw(markup)
	}
	return p.fallback.Icon(c)
}

// Overrides is a Provider built from per-category nodes. Categories without
// an entry fall back to the built-in set.
type Overrides map[toast.Category]*vdom.VNode

func (o Overrides) Icon(c toast.Category) *vdom.VNode {
	if n, ok := o[c]; ok {
		return n
	}
	return builtin{}.Icon(c)
}

// Package sanitize cleans HTML markup before it is placed inside a toast.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Sanitizer turns untrusted markup into markup safe to inject.
type Sanitizer interface {
	Sanitize(html string) string
}

// Func adapts a function to Sanitizer.
type Func func(html string) string

// Sanitize calls f.
func (f Func) Sanitize(html string) string { return f(html) }

// Policy is a Sanitizer backed by a bluemonday policy.
type Policy struct {
	policy *bluemonday.Policy
}

// New wraps a bluemonday policy.
func New(p *bluemonday.Policy) *Policy {
	return &Policy{policy: p}
}

// UGC allows the formatting elements common in user-generated content and
// strips scripts, event handlers and unsafe URLs.
func UGC() *Policy {
	return New(bluemonday.UGCPolicy())
}

// Strict strips all markup, leaving text.
func Strict() *Policy {
	return New(bluemonday.StrictPolicy())
}

// Sanitize applies the policy.
func (p *Policy) Sanitize(html string) string {
	return p.policy.Sanitize(html)
}

// Default returns the sanitizer toasters use when none is configured.
func Default() Sanitizer {
	return UGC()
}

// Package render serializes vdom trees to HTML.
//
// It is used by the preview server and the scenario renderer to show a
// toaster's current state, and by tests to assert on the data-attribute
// contract a toaster exposes to stylesheets.
//
//	r := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := r.RenderToString(t.Render())
//
// Text nodes and attribute values are escaped. Raw nodes are written as-is;
// callers pass markup through a sanitizer before building them.
package render

// Package vdom provides the node tree toasters render into.
//
// A VNode is an element, text, fragment, or raw HTML node. Elements are
// created with variadic factory functions:
//
//	Li(Data("sonner-toast", ""), Class("toast"),
//	    Div(Data("title", ""), Text("Saved")),
//	)
//
// The tree carries no behavior. Hosts serialize it with pkg/render or map it
// onto their own widgets.
package vdom

package toast

import (
	"strings"
	"time"

	"github.com/vango-dev/toaster/pkg/vdom"
)

// ID identifies a toast within a Store.
type ID string

// Infinite is a Duration that never auto-closes.
const Infinite time.Duration = 1<<63 - 1

// Category drives the icon and styling of a toast.
type Category string

const (
	CategoryDefault Category = "default"
	CategorySuccess Category = "success"
	CategoryError   Category = "error"
	CategoryWarning Category = "warning"
	CategoryInfo    Category = "info"
	CategoryLoading Category = "loading"
	CategoryCustom  Category = "custom"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryDefault,
	CategorySuccess,
	CategoryError,
	CategoryWarning,
	CategoryInfo,
	CategoryLoading,
	CategoryCustom,
}

// ParseCategory maps s to a Category. Unknown values are CategoryDefault.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryDefault
}

// Position is the screen corner or edge a toast is anchored to.
type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

// Positions lists every valid position.
var Positions = []Position{TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight}

// Valid reports whether p is one of Positions.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePosition maps s to a Position, returning fallback for unknown values.
func ParsePosition(s string, fallback Position) Position {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p
	}
	return fallback
}

// Y returns the vertical half: "top" or "bottom".
func (p Position) Y() string {
	y, _, _ := strings.Cut(string(p), "-")
	return y
}

// X returns the horizontal part: "left", "center" or "right".
func (p Position) X() string {
	_, x, _ := strings.Cut(string(p), "-")
	return x
}

// ContentKind discriminates Content.
type ContentKind uint8

const (
	KindNone ContentKind = iota
	KindText
	KindMarkup
	KindNode
)

// Content is renderable toast content: plain text, an HTML markup string
// that is sanitized before display, or a prebuilt node that is trusted.
type Content struct {
	kind ContentKind
	text string
	node *vdom.VNode
}

// Text creates plain-text content.
func Text(s string) Content { return Content{kind: KindText, text: s} }

// Markup creates HTML content. It is sanitized when rendered.
func Markup(html string) Content { return Content{kind: KindMarkup, text: html} }

// Node creates content from a prebuilt node. It is rendered as-is.
func Node(n *vdom.VNode) Content {
	if n == nil {
		return Content{}
	}
	return Content{kind: KindNode, node: n}
}

// Kind returns the content variant.
func (c Content) Kind() ContentKind { return c.kind }

// IsZero reports whether c carries no content.
func (c Content) IsZero() bool { return c.kind == KindNone }

// String returns the text or markup source. Nodes return their text content.
func (c Content) String() string {
	if c.kind == KindNode {
		return c.node.TextContent()
	}
	return c.text
}

// VNode returns the prebuilt node for KindNode content.
func (c Content) VNode() *vdom.VNode { return c.node }

// Equal reports whether two contents are the same variant with the same
// value. Nodes compare by identity.
func (c Content) Equal(o Content) bool {
	return c.kind == o.kind && c.text == o.text && c.node == o.node
}

// ClickEvent is passed to action handlers.
type ClickEvent struct {
	prevented bool
}

// PreventDefault keeps the toast open after the action handler returns.
func (e *ClickEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *ClickEvent) DefaultPrevented() bool { return e.prevented }

// Button is an action or cancel button.
type Button struct {
	Label   string
	OnClick func(*ClickEvent)
}

// Record is one toast.
type Record struct {
	ID          ID
	Category    Category
	Title       Content
	Description Content

	// Duration is the auto-close delay. Zero uses the toaster default.
	Duration time.Duration

	Dismissible bool
	Position    Position

	// Promise is set while the toast tracks a pending task.
	Promise bool

	Action *Button
	Cancel *Button

	// DeleteRequested is set by Dismiss.
	DeleteRequested bool

	Icon        *vdom.VNode
	ClassName   string
	Style       map[string]string
	RichColors  *bool
	Invert      *bool
	CloseButton *bool

	OnDismiss   func(Record)
	OnAutoClose func(Record)
}

// NewRecord returns a record with the defaults Show uses: the default
// category and dismissible. opts are applied on top.
func NewRecord(opts ...Option) Record {
	rec := Record{Category: CategoryDefault, Dismissible: true}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// ResolvedPosition returns the record's position or fallback when unset.
func (r Record) ResolvedPosition(fallback Position) Position {
	if r.Position.Valid() {
		return r.Position
	}
	return fallback
}

// Loading reports whether the toast is in the loading category.
func (r Record) Loading() bool {
	return r.Category == CategoryLoading
}

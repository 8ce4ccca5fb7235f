package toast

import (
	"maps"
	"time"

	"github.com/vango-dev/toaster/pkg/vdom"
)

// Option sets a field of a Record. Options are applied in order on top of
// the current record, so updating with the same options twice is the same
// as updating once.
type Option func(*Record)

// WithID sets the toast id. Showing a toast with the id of an existing one
// updates it in place.
func WithID(id ID) Option {
	return func(r *Record) { r.ID = id }
}

// WithDescription sets the secondary content.
func WithDescription(c Content) Option {
	return func(r *Record) { r.Description = c }
}

// WithDuration sets the auto-close delay. Use Infinite to keep the toast
// until dismissed.
func WithDuration(d time.Duration) Option {
	return func(r *Record) {
		if d < 0 {
			d = 0
		}
		r.Duration = d
	}
}

// WithPosition anchors the toast to p instead of the toaster default.
// Invalid positions are ignored.
func WithPosition(p Position) Option {
	return func(r *Record) {
		if p.Valid() {
			r.Position = p
		}
	}
}

// WithDismissible controls whether gestures and buttons may remove the toast.
func WithDismissible(dismissible bool) Option {
	return func(r *Record) { r.Dismissible = dismissible }
}

// WithCategory sets the category.
func WithCategory(c Category) Option {
	return func(r *Record) { r.Category = ParseCategory(string(c)) }
}

// WithIcon replaces the category icon.
func WithIcon(icon *vdom.VNode) Option {
	return func(r *Record) { r.Icon = icon }
}

// WithOnDismiss registers a callback for user-driven dismissal.
func WithOnDismiss(fn func(Record)) Option {
	return func(r *Record) { r.OnDismiss = fn }
}

// WithOnAutoClose registers a callback for timer-driven dismissal.
func WithOnAutoClose(fn func(Record)) Option {
	return func(r *Record) { r.OnAutoClose = fn }
}

// WithAction adds the primary button. The toast closes after onClick
// returns unless the handler calls PreventDefault.
func WithAction(label string, onClick func(*ClickEvent)) Option {
	return func(r *Record) { r.Action = &Button{Label: label, OnClick: onClick} }
}

// WithCancel adds the secondary button. It closes dismissible toasts.
func WithCancel(label string, onClick func(*ClickEvent)) Option {
	return func(r *Record) { r.Cancel = &Button{Label: label, OnClick: onClick} }
}

// WithClassName adds a class to the toast element.
func WithClassName(class string) Option {
	return func(r *Record) { r.ClassName = class }
}

// WithStyle sets inline style properties on the toast element.
func WithStyle(style map[string]string) Option {
	return func(r *Record) { r.Style = maps.Clone(style) }
}

// WithRichColors overrides the toaster's rich colors setting.
func WithRichColors(on bool) Option {
	return func(r *Record) { r.RichColors = &on }
}

// WithInvert overrides the toaster's invert setting.
func WithInvert(on bool) Option {
	return func(r *Record) { r.Invert = &on }
}

// WithCloseButton overrides the toaster's close button setting.
func WithCloseButton(on bool) Option {
	return func(r *Record) { r.CloseButton = &on }
}

func withPromise(pending bool) Option {
	return func(r *Record) { r.Promise = pending }
}

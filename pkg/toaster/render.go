package toaster

import (
	"strconv"

	"github.com/vango-dev/toaster/pkg/assets"
	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/vdom"
)

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Render returns the toaster region. Each position with toasts renders one
// list; the default position comes first.
func (t *Toaster) Render() *vdom.VNode {
	section := vdom.Section(
		vdom.AriaLabel(t.cfg.ContainerLabel+" "+t.hotkey.Label()),
		vdom.TabIndex(-1),
		vdom.AriaLive("polite"),
		vdom.A("aria-relevant", "additions text"),
		vdom.AriaAtomic(false),
	)
	if len(t.items) == 0 {
		return section
	}
	for _, pos := range t.positions() {
		section.Children = append(section.Children, t.renderList(pos))
	}
	return section
}

// positions lists the default position and then every other position in
// use, in order of first appearance.
func (t *Toaster) positions() []toast.Position {
	out := []toast.Position{t.cfg.Position}
	seen := map[toast.Position]bool{t.cfg.Position: true}
	for _, it := range t.items {
		if !seen[it.pos] {
			seen[it.pos] = true
			out = append(out, it.pos)
		}
	}
	return out
}

func (t *Toaster) stack(pos toast.Position) []*item {
	var out []*item
	for _, it := range t.items {
		if it.pos == pos {
			out = append(out, it)
		}
	}
	return out
}

func (t *Toaster) renderList(pos toast.Position) *vdom.VNode {
	stack := t.stack(pos)
	expanded := t.Expanded()
	return vdom.Ol(
		vdom.Key(string(pos)),
		vdom.Dir(t.dir),
		vdom.TabIndex(-1),
		vdom.Data("sonner-toaster", true),
		vdom.Data("theme", t.theme),
		vdom.Data("y-position", pos.Y()),
		vdom.Data("x-position", pos.X()),
		vdom.Data("lifted", expanded && len(t.items) > 1 && !t.cfg.Expand),
		vdom.Style(map[string]string{
			"--front-toast-height": px(t.heights.FrontHeight(pos)),
			"--width":              px(t.cfg.Width),
			"--gap":                px(t.cfg.Gap),
			"--offset":             t.cfg.Offset,
		}),
		vdom.Range(stack, func(it *item, i int) *vdom.VNode {
			return t.renderToast(it, i, len(stack), expanded)
		}),
	)
}

func boolOr(p *bool, fallback bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}

func (t *Toaster) renderToast(it *item, index, total int, expanded bool) *vdom.VNode {
	rec := it.rec
	cn := t.cfg.ClassNames
	custom := rec.Category == toast.CategoryCustom
	mounted := it.state != StateMounting
	removed := it.removed()

	initialHeight := px(it.initialHeight)
	if t.cfg.Expand {
		initialHeight = "auto"
	}
	style := map[string]string{
		"--index":          strconv.Itoa(index),
		"--toasts-before":  strconv.Itoa(index),
		"--z-index":        strconv.Itoa(total - index),
		"--offset":         px(it.currentOffset()),
		"--initial-height": initialHeight,
		"--swipe-amount":   px(it.swipe.Amount()),
	}
	for k, v := range rec.Style {
		style[k] = v
	}

	var swipeDirection any
	if it.swipeDirection != "" {
		swipeDirection = it.swipeDirection
	}

	li := vdom.Li(
		vdom.Key(string(rec.ID)),
		vdom.TabIndex(0),
		vdom.Role("status"),
		vdom.AriaLive("polite"),
		vdom.AriaAtomic(true),
		vdom.Class(cn.Toast, rec.ClassName, cn.Category[rec.Category]),
		vdom.Data("sonner-toast", ""),
		vdom.Data("toast-id", string(rec.ID)),
		vdom.Data("rich-colors", boolOr(rec.RichColors, t.cfg.RichColors)),
		vdom.Data("styled", !custom),
		vdom.Data("mounted", mounted),
		vdom.Data("promise", rec.Promise),
		vdom.Data("swiped", it.swipe.Swiped()),
		vdom.Data("removed", removed),
		vdom.Data("visible", index+1 <= t.cfg.VisibleToasts),
		vdom.Data("y-position", it.pos.Y()),
		vdom.Data("x-position", it.pos.X()),
		vdom.Data("index", index),
		vdom.Data("front", index == 0),
		vdom.Data("swiping", it.swipe.State() == gesture.StateSwiping),
		vdom.Data("dismissible", rec.Dismissible),
		vdom.Data("type", string(rec.Category)),
		vdom.Data("invert", boolOr(rec.Invert, t.cfg.Invert)),
		vdom.Data("swipe-out", it.swipeOut),
		vdom.Data("swipe-direction", swipeDirection),
		vdom.Data("expanded", expanded || (t.cfg.Expand && mounted)),
		vdom.Style(style),
	)

	if custom {
		li.Children = append(li.Children, t.content(rec.Title))
		return li
	}

	if boolOr(rec.CloseButton, t.cfg.CloseButton) && !rec.Loading() {
		li.Children = append(li.Children, vdom.Button(
			vdom.AriaLabel("Close toast"),
			vdom.Data("disabled", !rec.Dismissible),
			vdom.Data("close-button", true),
			vdom.Class(cn.CloseButton),
			assets.CloseIcon(),
		))
	}

	if icon := t.icon(rec); icon != nil {
		li.Children = append(li.Children, icon)
	}

	body := vdom.Div(
		vdom.Data("content", ""),
		vdom.Class(cn.Content),
		vdom.Div(vdom.Data("title", ""), vdom.Class(cn.Title), t.content(rec.Title)),
	)
	if !rec.Description.IsZero() {
		body.Children = append(body.Children,
			vdom.Div(vdom.Data("description", ""), vdom.Class(cn.Description), t.content(rec.Description)))
	}
	li.Children = append(li.Children, body)

	if rec.Cancel != nil {
		li.Children = append(li.Children, vdom.Button(
			vdom.Data("button", true),
			vdom.Data("cancel", true),
			vdom.Class(cn.CancelButton),
			rec.Cancel.Label,
		))
	}
	if rec.Action != nil {
		li.Children = append(li.Children, vdom.Button(
			vdom.Data("button", true),
			vdom.Data("action", true),
			vdom.Class(cn.ActionButton),
			rec.Action.Label,
		))
	}
	return li
}

// icon renders the icon slot. Loading and promise toasts show the loader;
// others show the record's icon or the category glyph.
func (t *Toaster) icon(rec toast.Record) *vdom.VNode {
	var glyph *vdom.VNode
	if rec.Loading() || rec.Promise {
		switch {
		case rec.Icon != nil:
			glyph = rec.Icon
		case t.cfg.LoadingIcon != nil:
			glyph = vdom.Div(vdom.Class("sonner-loader", t.cfg.ClassNames.Loader), vdom.Data("visible", rec.Loading()), t.cfg.LoadingIcon)
		default:
			glyph = assets.Loader(rec.Loading(), t.cfg.ClassNames.Loader)
		}
	}
	if !rec.Loading() {
		if rec.Icon != nil {
			glyph = rec.Icon
		} else if g := t.cfg.Icons.Icon(rec.Category); g != nil {
			glyph = g
		}
	}
	if glyph == nil {
		return nil
	}
	return vdom.Div(vdom.Data("icon", ""), vdom.Class(t.cfg.ClassNames.Icon), glyph)
}

// content renders toast content. Text is escaped by the renderer, markup is
// sanitized, nodes are used as given.
func (t *Toaster) content(c toast.Content) *vdom.VNode {
	switch c.Kind() {
	case toast.KindText:
		return vdom.Text(c.String())
	case toast.KindMarkup:
		return vdom.Raw(t.cfg.Sanitizer.Sanitize(c.String()))
	case toast.KindNode:
		return c.VNode()
	default:
		return nil
	}
}

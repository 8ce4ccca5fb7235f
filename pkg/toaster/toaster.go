// Package toaster is the toast container: it mounts the toasts of a Store,
// runs their auto-close timers and swipe gestures, stacks them by position,
// and renders them to a vdom tree.
//
// A Toaster is single-threaded. Every method and every timer it schedules
// must run on one goroutine; applications use a host.Loop for that and tests
// a host.FakeClock. While mounted, a Toaster routes the promise settlements
// of its store through its clock unless the store has its own dispatcher.
package toaster

import (
	"log/slog"
	"time"

	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/host"
	"github.com/vango-dev/toaster/pkg/toast"
)

// Host is what a Toaster needs from its environment.
type Host struct {
	Clock      host.Clock
	Surface    host.Surface
	Visibility host.Visibility
	Document   host.Document
}

// Toaster renders the toasts of a Store.
type Toaster struct {
	store    *toast.Store
	host     Host
	cfg      Config
	clock    host.Clock
	logger   *slog.Logger
	observer Observer
	hotkey   Hotkey

	// items is newest first.
	items   []*item
	heights Heights

	mounted     bool
	hovered     bool
	interacting bool
	keyExpanded bool
	focused     bool
	hidden      bool

	dir   string
	theme string

	unsubscribe      func()
	cancelVisibility func()
	releaseDispatch  func()
}

// New creates a Toaster for store. h.Clock is required: it decides the
// goroutine the toaster runs on. Other missing host capabilities get inert
// defaults; invalid config values fall back to defaults.
func New(store *toast.Store, h Host, cfg Config) *Toaster {
	if h.Clock == nil {
		panic("toaster: Host.Clock is required; use host.Loop.Clock or host.FakeClock")
	}
	cfg.applyDefaults()
	if h.Surface == nil {
		h.Surface = host.NewMemorySurface(0)
	}
	if h.Visibility == nil {
		h.Visibility = host.NewVisibility(false)
	}
	if h.Document == nil {
		h.Document = host.StaticDocument{Dir: DirLTR}
	}

	t := &Toaster{
		store:    store,
		host:     h,
		cfg:      cfg,
		clock:    h.Clock,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
	if t.observer == nil {
		t.observer = nopObserver{}
	}
	t.hotkey, _ = ParseHotkey(cfg.Hotkey)
	return t
}

// Config returns the effective configuration.
func (t *Toaster) Config() Config {
	return t.cfg
}

// Store returns the store the toaster renders.
func (t *Toaster) Store() *toast.Store {
	return t.store
}

// Mount attaches the toaster: it subscribes to the store, adopts the toasts
// already in it and starts observing document visibility.
func (t *Toaster) Mount() {
	if t.mounted {
		return
	}
	t.mounted = true
	t.dir = t.resolveDir()
	t.theme = t.resolveTheme()
	t.hidden = t.host.Visibility.Hidden()

	t.unsubscribe = t.store.Subscribe(t.handle)
	t.releaseDispatch = func() {}
	if d, ok := t.clock.(toast.Dispatcher); ok {
		t.releaseDispatch = t.store.AdoptDispatcher(d)
	}
	t.cancelVisibility = t.host.Visibility.OnChange(t.visibilityChanged)

	for _, rec := range t.store.Toasts() {
		if rec.DeleteRequested {
			continue
		}
		t.add(rec)
	}
	t.logger.Debug("toaster mounted", "toasts", len(t.items), "dir", t.dir, "theme", t.theme)
}

// Unmount detaches the toaster and cancels every pending timer. Records
// stay in the store.
func (t *Toaster) Unmount() {
	if !t.mounted {
		return
	}
	t.mounted = false
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if t.cancelVisibility != nil {
		t.cancelVisibility()
		t.cancelVisibility = nil
	}
	if t.releaseDispatch != nil {
		t.releaseDispatch()
		t.releaseDispatch = nil
	}
	for _, it := range t.items {
		it.unmount()
	}
	t.items = nil
	t.heights.reset()
	t.hovered, t.interacting, t.keyExpanded, t.focused = false, false, false, false
	t.logger.Debug("toaster unmounted")
}

// Mounted reports whether the toaster is attached.
func (t *Toaster) Mounted() bool {
	return t.mounted
}

func (t *Toaster) resolveDir() string {
	if t.cfg.Dir == DirLTR || t.cfg.Dir == DirRTL {
		return t.cfg.Dir
	}
	if d := t.host.Document.Direction(); d == DirRTL || d == DirLTR {
		return d
	}
	return DirLTR
}

func (t *Toaster) resolveTheme() string {
	if t.cfg.Theme != ThemeSystem {
		return t.cfg.Theme
	}
	if t.host.Document.PrefersDark() {
		return ThemeDark
	}
	return ThemeLight
}

func (t *Toaster) handle(e toast.Event) {
	switch e.Kind {
	case toast.EventAdded, toast.EventUpdated:
		if it := t.find(e.Toast.ID); it != nil {
			it.update(e.Toast)
			return
		}
		if !e.Toast.DeleteRequested {
			t.add(e.Toast)
		}
	case toast.EventDismissed:
		if it := t.find(e.Toast.ID); it != nil {
			it.rec = e.Toast
			it.dismiss(ReasonAPI)
		}
	case toast.EventRemoved:
		if it := t.find(e.Toast.ID); it != nil {
			it.unmount()
			t.detach(it)
		}
	}
}

func (t *Toaster) add(rec toast.Record) {
	it := newItem(t, rec)
	t.items = append([]*item{it}, t.items...)
	it.mount()
}

// drop is called when a removed toast's exit is over.
func (t *Toaster) drop(it *item) {
	if !t.detach(it) {
		return
	}
	it.state = StateUnmounted
	t.logger.Debug("toast removed", "id", it.id())

	if rec, ok := t.store.Get(it.rec.ID); ok && !rec.DeleteRequested {
		t.store.Dismiss(it.rec.ID)
	}
	t.store.Remove(it.rec.ID)
}

func (t *Toaster) detach(it *item) bool {
	for i, other := range t.items {
		if other == it {
			t.items = append(t.items[:i], t.items[i+1:]...)
			t.itemsChanged()
			return true
		}
	}
	return false
}

func (t *Toaster) itemsChanged() {
	if len(t.items) <= 1 && t.Expanded() {
		t.hovered = false
		t.keyExpanded = false
		t.syncTimers()
	}
}

func (t *Toaster) find(id toast.ID) *item {
	for _, it := range t.items {
		if it.rec.ID == id {
			return it
		}
	}
	return nil
}

// Expanded reports whether the stacks are expanded by hover, interaction
// or the hotkey.
func (t *Toaster) Expanded() bool {
	return t.hovered || t.interacting || t.keyExpanded
}

func (t *Toaster) paused() bool {
	return t.Expanded() || (t.cfg.PauseWhenPageIsHidden && t.hidden)
}

func (t *Toaster) syncTimers() {
	for _, it := range t.items {
		it.syncTimer()
	}
}

func (t *Toaster) visibilityChanged(hidden bool) {
	t.hidden = hidden
	if t.cfg.PauseWhenPageIsHidden {
		t.syncTimers()
	}
}

// SetHovered reports the pointer entering or leaving a toast list.
// Leaving does not collapse while the user is interacting.
func (t *Toaster) SetHovered(hovered bool) {
	if !hovered && t.interacting {
		return
	}
	if hovered && len(t.items) == 0 {
		return
	}
	t.hovered = hovered
	t.syncTimers()
}

func (t *Toaster) setInteracting(v bool) {
	if t.interacting == v {
		return
	}
	t.interacting = v
	t.syncTimers()
}

// PointerDown starts a press on toast id.
func (t *Toaster) PointerDown(id toast.ID, e gesture.Event) {
	it := t.find(id)
	if it == nil {
		return
	}
	if it.rec.Dismissible {
		t.setInteracting(true)
	}
	it.pointerDown(e)
}

// PointerMove continues a drag on toast id.
func (t *Toaster) PointerMove(id toast.ID, e gesture.Event) {
	if it := t.find(id); it != nil {
		it.pointerMove(e)
	}
}

// PointerUp ends a press on toast id, dismissing it if the drag was a
// swipe.
func (t *Toaster) PointerUp(id toast.ID, e gesture.Event) {
	if it := t.find(id); it != nil {
		it.pointerUp(e)
	}
	t.setInteracting(false)
}

// PointerCancel abandons a press on toast id.
func (t *Toaster) PointerCancel(id toast.ID, e gesture.Event) {
	if it := t.find(id); it != nil {
		it.pointerCancel()
	}
	t.setInteracting(false)
}

// Close is the close button of toast id.
func (t *Toaster) Close(id toast.ID) {
	it := t.find(id)
	if it == nil || !it.rec.Dismissible || it.rec.Loading() {
		return
	}
	it.dismiss(ReasonClose)
}

// ClickAction is the action button of toast id. The handler always runs;
// the toast is then removed unless it is not dismissible or the handler
// prevents it.
func (t *Toaster) ClickAction(id toast.ID) {
	it := t.find(id)
	if it == nil || it.removed() || it.rec.Action == nil {
		return
	}
	ev := &toast.ClickEvent{}
	if it.rec.Action.OnClick != nil {
		it.rec.Action.OnClick(ev)
	}
	if ev.DefaultPrevented() || !it.rec.Dismissible {
		return
	}
	it.remove(ReasonAction)
}

// ClickCancel is the cancel button of toast id.
func (t *Toaster) ClickCancel(id toast.ID) {
	it := t.find(id)
	if it == nil || it.removed() || it.rec.Cancel == nil || !it.rec.Dismissible {
		return
	}
	it.remove(ReasonCancel)
	if it.rec.Cancel.OnClick != nil {
		it.rec.Cancel.OnClick(&toast.ClickEvent{})
	}
}

// KeyDown handles document key presses: the hotkey expands the toaster,
// Escape collapses it while it has focus.
func (t *Toaster) KeyDown(e KeyEvent) {
	if t.hotkey.Matches(e) {
		if len(t.items) == 0 {
			return
		}
		t.keyExpanded = true
		t.focused = true
		t.syncTimers()
		return
	}
	if e.Code == "Escape" && (e.InToaster || t.focused) {
		t.focused = false
		if t.keyExpanded || t.hovered {
			t.keyExpanded = false
			t.hovered = false
			t.syncTimers()
		}
	}
}

// ItemState is a snapshot of one mounted toast.
type ItemState struct {
	ID       toast.ID
	Category toast.Category
	Position toast.Position
	State    State

	// Index is the position in the toast's stack, 0 at the front.
	Index   int
	Front   bool
	Visible bool

	Offset float64
	Height float64

	// Remaining is the unelapsed auto-close time; Running is whether the
	// timer is counting.
	Remaining time.Duration
	Running   bool

	SwipeAmount    float64
	SwipeOut       bool
	SwipeDirection string
}

// Items returns the mounted toasts, newest first.
func (t *Toaster) Items() []ItemState {
	index := make(map[toast.Position]int)
	out := make([]ItemState, 0, len(t.items))
	for _, it := range t.items {
		i := index[it.pos]
		index[it.pos]++

		remaining := it.remaining
		if it.timer != nil {
			remaining -= t.clock.Now().Sub(it.started)
		}
		out = append(out, ItemState{
			ID:             it.rec.ID,
			Category:       it.rec.Category,
			Position:       it.pos,
			State:          it.state,
			Index:          i,
			Front:          i == 0,
			Visible:        i+1 <= t.cfg.VisibleToasts,
			Offset:         it.currentOffset(),
			Height:         it.initialHeight,
			Remaining:      remaining,
			Running:        it.timer != nil,
			SwipeAmount:    it.swipe.Amount(),
			SwipeOut:       it.swipeOut,
			SwipeDirection: it.swipeDirection,
		})
	}
	return out
}

// Heights returns the toaster's height registry.
func (t *Toaster) Heights() *Heights {
	return &t.heights
}

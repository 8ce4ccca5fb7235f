package toaster

import (
	"time"

	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/host"
	"github.com/vango-dev/toaster/pkg/toast"
)

// State is the lifecycle state of a toast inside a toaster.
type State uint8

const (
	StateMounting State = iota
	StateMounted
	StateSwiping
	StateRemoving
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateMounting:
		return "mounting"
	case StateMounted:
		return "mounted"
	case StateSwiping:
		return "swiping"
	case StateRemoving:
		return "removing"
	case StateUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// item is the lifecycle controller of one toast.
type item struct {
	t     *Toaster
	rec   toast.Record
	pos   toast.Position
	state State
	added time.Time

	initialHeight      float64
	offset             float64
	offsetBeforeRemove float64

	// auto-close
	timer     host.Timer
	duration  time.Duration
	remaining time.Duration
	started   time.Time

	frame host.Timer
	grace host.Timer

	swipe          gesture.Swipe
	captured       bool
	capturedID     int
	swipeOut       bool
	swipeDirection string

	autoClosed bool
	dismissed  bool
}

func newItem(t *Toaster, rec toast.Record) *item {
	it := &item{
		t:     t,
		rec:   rec,
		pos:   rec.ResolvedPosition(t.cfg.Position),
		added: t.clock.Now(),
	}
	it.duration = it.effectiveDuration()
	it.remaining = it.duration
	it.swipe.Edge = edgeOf(it.pos)
	return it
}

func edgeOf(pos toast.Position) gesture.Edge {
	if pos.Y() == "top" {
		return gesture.Top
	}
	return gesture.Bottom
}

func (it *item) id() string { return string(it.rec.ID) }

func (it *item) effectiveDuration() time.Duration {
	if it.rec.Duration > 0 {
		return it.rec.Duration
	}
	return it.t.cfg.Duration
}

func (it *item) removed() bool {
	return it.state == StateRemoving || it.state == StateUnmounted
}

// mount measures the toast and schedules the mounted transition for the
// next frame.
func (it *item) mount() {
	it.initialHeight = it.t.host.Surface.Measure(it.id())
	it.t.heights.Set(it.rec.ID, it.initialHeight, it.pos)
	it.frame = it.t.clock.AfterFunc(0, func() {
		it.frame = nil
		if it.state != StateMounting {
			return
		}
		it.state = StateMounted
		it.t.logger.Debug("toast mounted", "id", it.id(), "position", string(it.pos))
		it.t.observer.ToastMounted(it.rec)
		it.syncTimer()
	})
}

// update applies a new version of the record.
func (it *item) update(rec toast.Record) {
	it.rec = rec
	if it.removed() {
		return
	}

	if pos := rec.ResolvedPosition(it.t.cfg.Position); pos != it.pos {
		it.pointerCancel()
		it.pos = pos
		it.swipe.Edge = edgeOf(pos)
	}

	if d := it.effectiveDuration(); d != it.duration {
		it.stopTimer()
		it.duration = d
		it.remaining = d
	}

	it.initialHeight = it.t.host.Surface.Measure(it.id())
	it.t.heights.Set(it.rec.ID, it.initialHeight, it.pos)

	if rec.DeleteRequested {
		it.dismiss(ReasonAPI)
		return
	}
	it.syncTimer()
}

// timed reports whether the toast auto-closes.
func (it *item) timed() bool {
	return it.duration != toast.Infinite && !it.rec.Loading() && !it.rec.Promise
}

// syncTimer starts or pauses the auto-close timer to match the toaster
// state.
func (it *item) syncTimer() {
	if it.state != StateMounted && it.state != StateSwiping {
		return
	}
	if !it.timed() || it.t.paused() {
		it.pauseTimer()
		return
	}
	it.startTimer()
}

func (it *item) startTimer() {
	if it.timer != nil {
		return
	}
	if it.remaining < 0 {
		it.remaining = 0
	}
	it.started = it.t.clock.Now()
	it.timer = it.t.clock.AfterFunc(it.remaining, it.fire)
}

// pauseTimer stops the timer, keeping the unelapsed time for the next
// start.
func (it *item) pauseTimer() {
	if it.timer == nil {
		return
	}
	it.timer.Stop()
	it.timer = nil
	it.remaining -= it.t.clock.Now().Sub(it.started)
}

func (it *item) stopTimer() {
	if it.timer != nil {
		it.timer.Stop()
		it.timer = nil
	}
}

func (it *item) fire() {
	it.timer = nil
	it.remaining = 0
	if it.removed() {
		return
	}
	if !it.autoClosed {
		it.autoClosed = true
		if it.rec.OnAutoClose != nil {
			it.rec.OnAutoClose(it.rec)
		}
	}
	it.remove(ReasonTimeout)
}

// dismiss removes the toast and fires OnDismiss.
func (it *item) dismiss(reason RemovalReason) {
	if it.removed() {
		return
	}
	it.remove(reason)
	if !it.dismissed {
		it.dismissed = true
		if it.rec.OnDismiss != nil {
			it.rec.OnDismiss(it.rec)
		}
	}
}

// remove starts the exit: the toast keeps its current offset, leaves the
// height registry and is dropped after RemoveDelay.
func (it *item) remove(reason RemovalReason) {
	if it.removed() {
		return
	}
	it.offsetBeforeRemove = it.currentOffset()
	it.state = StateRemoving
	it.stopTimer()
	it.stopFrame()
	it.releasePointer()
	it.t.heights.Remove(it.rec.ID)

	it.t.logger.Debug("toast removing", "id", it.id(), "reason", reason.String())
	it.t.observer.ToastRemoved(it.rec, reason, it.t.clock.Now().Sub(it.added))

	it.grace = it.t.clock.AfterFunc(RemoveDelay, func() {
		it.grace = nil
		it.t.drop(it)
	})
}

// unmount stops everything the item scheduled or holds.
func (it *item) unmount() {
	it.state = StateUnmounted
	it.stopTimer()
	it.stopFrame()
	if it.grace != nil {
		it.grace.Stop()
		it.grace = nil
	}
	it.releasePointer()
	it.swipe.Reset()
	it.t.heights.Remove(it.rec.ID)
}

func (it *item) stopFrame() {
	if it.frame != nil {
		it.frame.Stop()
		it.frame = nil
	}
}

// currentOffset is the stack offset from the height registry. Toasts
// without an entry keep their last offset.
func (it *item) currentOffset() float64 {
	if it.state == StateRemoving || it.state == StateUnmounted {
		return it.offsetBeforeRemove
	}
	if off, ok := it.t.heights.Offset(it.rec.ID, it.pos, it.t.cfg.Gap); ok {
		it.offset = off
	}
	return it.offset
}

func (it *item) swipeable() bool {
	return (it.state == StateMounted || it.state == StateSwiping) &&
		it.rec.Dismissible && !it.rec.Loading()
}

func (it *item) pointerDown(e gesture.Event) {
	if !it.swipeable() {
		return
	}
	it.offsetBeforeRemove = it.currentOffset()
	it.t.host.Surface.CapturePointer(it.id(), e.PointerID)
	it.captured = true
	it.capturedID = e.PointerID
	if it.swipe.Press(e) {
		it.state = StateSwiping
	}
}

func (it *item) pointerMove(e gesture.Event) {
	if it.removed() || !it.swipe.Active() {
		return
	}
	amount, changed := it.swipe.Move(e, it.t.host.Surface.HasSelection())
	if changed {
		it.t.host.Surface.SetSwipeOffset(it.id(), amount)
	}
}

func (it *item) pointerUp(e gesture.Event) {
	if it.captured && it.capturedID == e.PointerID {
		it.releasePointer()
	}
	if it.swipeOut || !it.rec.Dismissible || it.removed() {
		return
	}
	r, ok := it.swipe.Up(e)
	if !ok {
		return
	}
	it.t.observer.SwipeReleased(it.rec, r)
	if r.Dismiss {
		it.swipeDirection = r.Direction()
		it.swipeOut = true
		it.dismiss(ReasonSwipe)
		return
	}
	it.t.host.Surface.SetSwipeOffset(it.id(), 0)
	it.state = StateMounted
}

func (it *item) pointerCancel() {
	it.releasePointer()
	if it.removed() || !it.swipe.Active() {
		return
	}
	it.swipe.Reset()
	it.t.host.Surface.SetSwipeOffset(it.id(), 0)
	it.state = StateMounted
}

func (it *item) releasePointer() {
	if !it.captured {
		return
	}
	it.captured = false
	it.t.host.Surface.ReleasePointer(it.id(), it.capturedID)
}

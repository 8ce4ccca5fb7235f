// Package gesture implements the swipe-to-dismiss recognizer used by toasts.
//
// A Swipe consumes pointer events for one toast. It tracks a vertical drag
// clamped toward the edge the toast is anchored to and, on release, decides
// whether the drag was far or fast enough to dismiss.
package gesture

import (
	"math"
	"time"
)

const (
	// DismissDistance is the swipe distance in pixels beyond which a release
	// dismisses.
	DismissDistance = 20

	// DismissVelocity is the swipe velocity in pixels per millisecond beyond
	// which a release dismisses.
	DismissVelocity = 0.11

	// MouseSlop and TouchSlop are the movement in pixels a drag must exceed
	// before it moves the toast.
	MouseSlop = 2
	TouchSlop = 10

	// minElapsed floors the drag duration used for velocity.
	minElapsed = time.Millisecond
)

// Source is the input device of a pointer event.
type Source uint8

const (
	Mouse Source = iota
	Touch
	Pen
)

func (s Source) String() string {
	switch s {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	case Pen:
		return "pen"
	default:
		return "unknown"
	}
}

// ParseSource maps a DOM pointerType to a Source. Unknown values are Mouse.
func ParseSource(s string) Source {
	switch s {
	case "touch":
		return Touch
	case "pen":
		return Pen
	default:
		return Mouse
	}
}

// Slop returns the movement threshold for the source.
func (s Source) Slop() float64 {
	if s == Touch {
		return TouchSlop
	}
	return MouseSlop
}

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Event is a pointer event delivered to a toast.
type Event struct {
	PointerID int
	Source    Source
	Position  Point
	Time      time.Time

	// OnButton is set when the event target is a button inside the toast.
	// Presses on buttons capture the pointer but do not start a swipe.
	OnButton bool
}

// Edge is the screen edge a toast stack is anchored to.
type Edge uint8

const (
	Bottom Edge = iota
	Top
)

// State is the recognizer state.
type State uint8

const (
	StateIdle State = iota
	StateSwiping
)

func (s State) String() string {
	if s == StateSwiping {
		return "swiping"
	}
	return "idle"
}

// Release is the outcome of a completed drag.
type Release struct {
	// Amount is the applied offset at release.
	Amount float64

	// Velocity is |Amount| divided by the drag duration, in px/ms.
	Velocity float64

	// Elapsed is the drag duration.
	Elapsed time.Duration

	// Dismiss is true when the drag crossed the distance or velocity
	// threshold.
	Dismiss bool
}

// Direction returns "up" or "down" for a non-zero amount.
func (r Release) Direction() string {
	switch {
	case r.Amount < 0:
		return "up"
	case r.Amount > 0:
		return "down"
	default:
		return ""
	}
}

// Swipe recognizes vertical swipes for a toast anchored to Edge.
type Swipe struct {
	Edge Edge

	state  State
	start  *Point
	began  time.Time
	pid    int
	source Source
	amount float64
	moved  bool

	// tracking is set once the drag exceeded the source's slop.
	tracking bool
}

// State reports the recognizer state.
func (s *Swipe) State() State {
	return s.state
}

// Amount is the currently applied offset.
func (s *Swipe) Amount() float64 {
	return s.amount
}

// Swiped reports whether the current drag has moved the toast at all.
func (s *Swipe) Swiped() bool {
	return s.moved
}

// Press starts tracking a drag. It returns false for presses on buttons,
// which are not swipes.
func (s *Swipe) Press(e Event) bool {
	if e.OnButton {
		return false
	}
	p := e.Position
	s.start = &p
	s.began = e.Time
	s.pid = e.PointerID
	s.source = e.Source
	s.amount = 0
	s.moved = false
	s.tracking = false
	s.state = StateSwiping
	return true
}

// Move updates the drag. It returns the offset to apply and whether it
// changed. selecting suppresses the visual update while text is selected.
func (s *Swipe) Move(e Event, selecting bool) (float64, bool) {
	if s.start == nil || e.PointerID != s.pid {
		return s.amount, false
	}

	dy := e.Position.Y - s.start.Y
	var amount float64
	if s.Edge == Top {
		amount = math.Min(0, dy)
	} else {
		amount = math.Max(0, dy)
	}

	if !s.tracking {
		if math.Abs(dy) <= s.source.Slop() {
			return s.amount, false
		}
		s.tracking = true
	}
	if amount != 0 {
		s.moved = true
	}
	if selecting || amount == s.amount {
		return s.amount, false
	}
	s.amount = amount
	return amount, true
}

// Up finishes the drag. ok is false when no drag was in progress.
func (s *Swipe) Up(e Event) (r Release, ok bool) {
	if s.start == nil || e.PointerID != s.pid {
		return Release{}, false
	}

	elapsed := e.Time.Sub(s.began)
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	abs := math.Abs(s.amount)

	r = Release{
		Amount:   s.amount,
		Velocity: abs / ms,
		Elapsed:  elapsed,
	}
	r.Dismiss = abs > DismissDistance || r.Velocity > DismissVelocity

	if r.Dismiss {
		s.start = nil
		s.tracking = false
		s.state = StateIdle
	} else {
		s.Reset()
	}
	return r, true
}

// Reset abandons any drag and returns the offset to zero.
func (s *Swipe) Reset() {
	s.start = nil
	s.amount = 0
	s.moved = false
	s.tracking = false
	s.state = StateIdle
}

// PointerID returns the pointer being tracked.
func (s *Swipe) PointerID() int {
	return s.pid
}

// Active reports whether a press is being tracked.
func (s *Swipe) Active() bool {
	return s.start != nil
}

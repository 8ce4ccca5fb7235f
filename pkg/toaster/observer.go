package toaster

import (
	"time"

	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/toast"
)

// RemovalReason says why a toast left the toaster.
type RemovalReason uint8

const (
	// ReasonTimeout: the auto-close timer fired.
	ReasonTimeout RemovalReason = iota
	// ReasonSwipe: the user swiped the toast away.
	ReasonSwipe
	// ReasonClose: the close button was clicked.
	ReasonClose
	// ReasonAction: the action button was clicked.
	ReasonAction
	// ReasonCancel: the cancel button was clicked.
	ReasonCancel
	// ReasonAPI: the toast was dismissed through the store.
	ReasonAPI
)

func (r RemovalReason) String() string {
	switch r {
	case ReasonTimeout:
		return "timeout"
	case ReasonSwipe:
		return "swipe"
	case ReasonClose:
		return "close"
	case ReasonAction:
		return "action"
	case ReasonCancel:
		return "cancel"
	case ReasonAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Observer is notified of lifecycle transitions. Calls happen on the
// toaster's loop and must not block.
type Observer interface {
	// ToastMounted is called when a toast finishes mounting.
	ToastMounted(rec toast.Record)

	// ToastRemoved is called when a toast starts its exit. shown is the time
	// since it was added to the toaster.
	ToastRemoved(rec toast.Record, reason RemovalReason, shown time.Duration)

	// SwipeReleased is called for every completed drag.
	SwipeReleased(rec toast.Record, r gesture.Release)
}

type nopObserver struct{}

func (nopObserver) ToastMounted(toast.Record)                              {}
func (nopObserver) ToastRemoved(toast.Record, RemovalReason, time.Duration) {}
func (nopObserver) SwipeReleased(toast.Record, gesture.Release)            {}

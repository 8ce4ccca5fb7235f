package host

import "sync"

// Visibility observes whether the host document is hidden.
type Visibility interface {
	Hidden() bool

	// OnChange registers fn for visibility changes and returns a function
	// that unregisters it.
	OnChange(fn func(hidden bool)) (cancel func())
}

// VisibilityState is a Visibility updated by the host through Set.
type VisibilityState struct {
	mu        sync.Mutex
	hidden    bool
	nextID    int
	listeners map[int]func(bool)
	order     []int
}

// NewVisibility creates a VisibilityState.
func NewVisibility(hidden bool) *VisibilityState {
	return &VisibilityState{
		hidden:    hidden,
		listeners: make(map[int]func(bool)),
	}
}

func (v *VisibilityState) Hidden() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hidden
}

func (v *VisibilityState) OnChange(fn func(hidden bool)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.order = append(v.order, id)
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.listeners, id)
	}
}

// Set records a visibility change and notifies listeners if the value
// changed.
func (v *VisibilityState) Set(hidden bool) {
	v.mu.Lock()
	if v.hidden == hidden {
		v.mu.Unlock()
		return
	}
	v.hidden = hidden
	fns := make([]func(bool), 0, len(v.listeners))
	live := v.order[:0]
	for _, id := range v.order {
		if fn, ok := v.listeners[id]; ok {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	v.order = live
	v.mu.Unlock()

	for _, fn := range fns {
		fn(hidden)
	}
}

// Listeners returns the number of registered listeners.
func (v *VisibilityState) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

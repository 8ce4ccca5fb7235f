package host

import "sync"

// Surface is the rendering surface toasts are laid out on. Ids are toast
// ids.
type Surface interface {
	// Measure returns the natural rendered height of a toast in pixels.
	Measure(id string) float64

	// SetSwipeOffset applies a visual vertical offset during a swipe.
	SetSwipeOffset(id string, px float64)

	// CapturePointer routes further events for pointerID to the toast.
	CapturePointer(id string, pointerID int)

	// ReleasePointer undoes CapturePointer.
	ReleasePointer(id string, pointerID int)

	// HasSelection reports whether the user has selected text, in which
	// case a drag is a selection rather than a swipe.
	HasSelection() bool
}

// Document exposes document-level preferences.
type Document interface {
	// Direction returns "ltr" or "rtl".
	Direction() string

	// PrefersDark reports the color-scheme preference.
	PrefersDark() bool
}

// StaticDocument is a Document with fixed values.
type StaticDocument struct {
	Dir  string
	Dark bool
}

func (d StaticDocument) Direction() string { return d.Dir }
func (d StaticDocument) PrefersDark() bool { return d.Dark }

// MemorySurface is a Surface that records what a toaster asked of it.
// Heights come from Heights, falling back to DefaultHeight.
type MemorySurface struct {
	mu            sync.Mutex
	DefaultHeight float64
	Heights       map[string]float64
	Selection     bool

	offsets  map[string]float64
	captured map[string]int
}

// NewMemorySurface creates a MemorySurface with the given default height.
func NewMemorySurface(defaultHeight float64) *MemorySurface {
	return &MemorySurface{
		DefaultHeight: defaultHeight,
		Heights:       make(map[string]float64),
		offsets:       make(map[string]float64),
		captured:      make(map[string]int),
	}
}

// SetHeight sets the height reported for id.
func (s *MemorySurface) SetHeight(id string, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Heights[id] = h
}

func (s *MemorySurface) Measure(id string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.Heights[id]; ok {
		return h
	}
	return s.DefaultHeight
}

func (s *MemorySurface) SetSwipeOffset(id string, px float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[id] = px
}

func (s *MemorySurface) CapturePointer(id string, pointerID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captured[id] = pointerID
}

func (s *MemorySurface) ReleasePointer(id string, pointerID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.captured[id]; ok && p == pointerID {
		delete(s.captured, id)
	}
}

func (s *MemorySurface) HasSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Selection
}

// SwipeOffset returns the last offset applied to id.
func (s *MemorySurface) SwipeOffset(id string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offsets[id]
}

// Captured reports whether id currently holds a pointer capture.
func (s *MemorySurface) Captured(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.captured[id]
	return ok
}

package toaster

import "github.com/vango-dev/toaster/pkg/toast"

// HeightEntry is the measured height of one mounted toast.
type HeightEntry struct {
	ToastID  toast.ID
	Height   float64
	Position toast.Position
}

// Heights is the per-container height registry. Entries are kept newest
// first, at most one per toast.
//
// Heights is not safe for concurrent use; it belongs to the toaster's
// loop.
type Heights struct {
	entries []HeightEntry
}

// Set records the height of id. An existing entry is updated in place;
// a new one is prepended. It reports whether anything changed.
func (h *Heights) Set(id toast.ID, height float64, pos toast.Position) bool {
	for i := range h.entries {
		if h.entries[i].ToastID == id {
			if h.entries[i].Height == height && h.entries[i].Position == pos {
				return false
			}
			h.entries[i].Height = height
			h.entries[i].Position = pos
			return true
		}
	}
	h.entries = append([]HeightEntry{{ToastID: id, Height: height, Position: pos}}, h.entries...)
	return true
}

// Remove deletes the entry for id and reports whether it existed.
func (h *Heights) Remove(id toast.ID) bool {
	for i := range h.entries {
		if h.entries[i].ToastID == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entry for id.
func (h *Heights) Get(id toast.ID) (HeightEntry, bool) {
	for _, e := range h.entries {
		if e.ToastID == id {
			return e, true
		}
	}
	return HeightEntry{}, false
}

// ByPosition returns the entries of one stack, newest first.
func (h *Heights) ByPosition(pos toast.Position) []HeightEntry {
	var out []HeightEntry
	for _, e := range h.entries {
		if e.Position == pos {
			out = append(out, e)
		}
	}
	return out
}

// Offset returns the distance of id from the front of its stack: one gap
// per toast in front of it plus their heights. ok is false when id has no
// entry in pos.
func (h *Heights) Offset(id toast.ID, pos toast.Position, gap float64) (offset float64, ok bool) {
	var before float64
	index := 0
	for _, e := range h.entries {
		if e.Position != pos {
			continue
		}
		if e.ToastID == id {
			return float64(index)*gap + before, true
		}
		before += e.Height
		index++
	}
	return 0, false
}

// FrontHeight is the height of the newest toast in pos, or zero.
func (h *Heights) FrontHeight(pos toast.Position) float64 {
	for _, e := range h.entries {
		if e.Position == pos {
			return e.Height
		}
	}
	return 0
}

// Len returns the number of entries.
func (h *Heights) Len() int {
	return len(h.entries)
}

func (h *Heights) reset() {
	h.entries = nil
}

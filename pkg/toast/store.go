package toast

import (
	"errors"
	"log/slog"
	"strconv"
	"sync"
)

// ErrNotFound is returned when updating a toast that is not in the store.
var ErrNotFound = errors.New("toast: not found")

// EventKind describes a store mutation.
type EventKind uint8

const (
	EventAdded EventKind = iota
	EventUpdated
	EventDismissed
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventDismissed:
		return "dismissed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every mutation.
type Event struct {
	Kind  EventKind
	Toast Record
}

// Listener receives store events.
type Listener func(Event)

// Dispatcher runs promise settlements. The host event loop and its clocks
// implement it.
type Dispatcher interface {
	Post(fn func()) bool
}

// directDispatcher runs settlements on the task goroutine. It is only safe
// while no toaster is mounted on the store.

type directDispatcher struct{}

func (directDispatcher) Post(fn func()) bool {
	fn()
	return true
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger. Mutations are logged at debug level.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDispatcher sets where promise settlements run. A store configured
// this way keeps d even when toasters are mounted on it.
func WithDispatcher(d Dispatcher) StoreOption {
	return func(s *Store) {
		if d != nil {
			s.dispatch = d
			s.pinned = true
		}
	}
}

// Store is an ordered collection of toast records.
//
// Methods are safe for concurrent use. Listeners run synchronously on the
// goroutine that made the change, outside the store lock, so they may call
// back into the store.
type Store struct {
	mu      sync.Mutex
	records []Record
	counter int
	subs    []*subscription

	logger   *slog.Logger
	dispatch Dispatcher
	pinned   bool
}

type subscription struct {
	fn     Listener
	active bool
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		logger:   slog.Default(),
		dispatch: directDispatcher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every subsequent mutation. The returned
// function unregisters it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscription{fn: fn, active: true}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		sub.active = false
		for i, other := range s.subs {
			if other == sub {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered listeners.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// SetDispatcher replaces where promise settlements run. A nil d restores
// direct calls on the task goroutine.
func (s *Store) SetDispatcher(d Dispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d == nil {
		s.dispatch, s.pinned = directDispatcher{}, false
		return
	}
	s.dispatch, s.pinned = d, true
}

// AdoptDispatcher installs d unless a dispatcher was set explicitly or
// adopted by someone else. The returned function undoes the adoption if d is
// still in place.
func (s *Store) AdoptDispatcher(d Dispatcher) (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d == nil || s.pinned {
		return func() {}
	}
	s.dispatch, s.pinned = d, true
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dispatch == d {
			s.dispatch, s.pinned = directDispatcher{}, false
		}
	}
}

func (s *Store) dispatcher() Dispatcher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch
}

// Add inserts rec as given, assigning an id if it has none. If a record with
// the same id exists it is replaced in place and subscribers see an update.
//
// Unlike Show, Add applies no option defaults: a zero Record is not
// dismissible. Use NewRecord for a record with the Show defaults.
func (s *Store) Add(rec Record) ID {
	s.mu.Lock()
	if rec.ID == "" {
		rec.ID = s.nextIDLocked()
	}
	if rec.Category == "" {
		rec.Category = CategoryDefault
	}
	kind := EventAdded
	if i := s.indexLocked(rec.ID); i >= 0 {
		s.records[i] = rec
		kind = EventUpdated
	} else {
		s.records = append(s.records, rec)
	}
	s.mu.Unlock()

	s.notify(Event{Kind: kind, Toast: rec})
	return rec.ID
}

// Update applies opts to the record with the given id. A non-zero title
// replaces the current one.
func (s *Store) Update(id ID, title Content, opts ...Option) (ID, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return id, ErrNotFound
	}
	rec := s.records[i]
	for _, opt := range opts {
		opt(&rec)
	}
	rec.ID = id
	if !title.IsZero() {
		rec.Title = title
	}
	s.records[i] = rec
	s.mu.Unlock()

	s.notify(Event{Kind: EventUpdated, Toast: rec})
	return id, nil
}

// create shows a new toast or updates the one whose id is set by opts.
// An empty category keeps the existing one.
func (s *Store) create(title Content, category Category, opts []Option) ID {
	var given Record
	for _, opt := range opts {
		opt(&given)
	}

	s.mu.Lock()
	var rec Record
	kind := EventAdded
	i := -1
	if given.ID != "" {
		i = s.indexLocked(given.ID)
	}
	if i >= 0 {
		rec = s.records[i]
		kind = EventUpdated
	} else {
		rec = NewRecord()
	}
	for _, opt := range opts {
		opt(&rec)
	}
	if !title.IsZero() {
		rec.Title = title
	}
	if category != "" {
		rec.Category = category
	}
	rec.DeleteRequested = false

	if i >= 0 {
		s.records[i] = rec
	} else {
		if rec.ID == "" {
			rec.ID = s.nextIDLocked()
		}
		s.records = append(s.records, rec)
	}
	s.mu.Unlock()

	s.notify(Event{Kind: kind, Toast: rec})
	return rec.ID
}

// Dismiss marks the toast for removal. Unknown ids are ignored.
func (s *Store) Dismiss(id ID) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.records[i].DeleteRequested = true
	rec := s.records[i]
	s.mu.Unlock()

	s.notify(Event{Kind: EventDismissed, Toast: rec})
}

// dismissSettled clears the promise flag and dismisses in one mutation.
func (s *Store) dismissSettled(id ID) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.records[i].Promise = false
	s.records[i].DeleteRequested = true
	rec := s.records[i]
	s.mu.Unlock()

	s.notify(Event{Kind: EventDismissed, Toast: rec})
}

// DismissAll marks every toast for removal. Subscribers see one Dismissed
// event per toast, in insertion order.
func (s *Store) DismissAll() {
	s.mu.Lock()
	marked := make([]Record, len(s.records))
	for i := range s.records {
		s.records[i].DeleteRequested = true
		marked[i] = s.records[i]
	}
	s.mu.Unlock()

	for _, rec := range marked {
		s.notify(Event{Kind: EventDismissed, Toast: rec})
	}
}

// Remove forgets the toast. Toasters call it once the exit animation is
// over.
func (s *Store) Remove(id ID) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	rec := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.mu.Unlock()

	s.notify(Event{Kind: EventRemoved, Toast: rec})
}

// Get returns the record with the given id.
func (s *Store) Get(id ID) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.records[i], true
	}
	return Record{}, false
}

// Toasts returns the records in insertion order.
func (s *Store) Toasts() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) notify(e Event) {
	s.logger.Debug("toast "+e.Kind.String(),
		"id", string(e.Toast.ID),
		"category", string(e.Toast.Category),
	)

	s.mu.Lock()
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		s.mu.Lock()
		active := sub.active
		s.mu.Unlock()
		if active {
			sub.fn(e)
		}
	}
}

func (s *Store) indexLocked(id ID) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextIDLocked() ID {
	for {
		s.counter++
		id := ID(strconv.Itoa(s.counter))
		if s.indexLocked(id) < 0 {
			return id
		}
	}
}

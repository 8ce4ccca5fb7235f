package toaster

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/host"
	"github.com/vango-dev/toaster/pkg/toast"
)

type fixture struct {
	store   *toast.Store
	toaster *Toaster
	clock   *host.FakeClock
	surface *host.MemorySurface
	vis     *host.VisibilityState
	obs     *recordingObserver
}

type removal struct {
	id     toast.ID
	reason RemovalReason
}

type recordingObserver struct {
	mounted  []toast.ID
	removed  []removal
	releases []gesture.Release
}

func (o *recordingObserver) ToastMounted(rec toast.Record) {
	o.mounted = append(o.mounted, rec.ID)
}

func (o *recordingObserver) ToastRemoved(rec toast.Record, reason RemovalReason, _ time.Duration) {
	o.removed = append(o.removed, removal{rec.ID, reason})
}

func (o *recordingObserver) SwipeReleased(_ toast.Record, r gesture.Release) {
	o.releases = append(o.releases, r)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type queue chan func()

func (q queue) Post(fn func()) bool {
	q <- fn
	return true
}

func newFixture(t *testing.T, cfg Config, opts ...toast.StoreOption) *fixture {
	t.Helper()
	opts = append([]toast.StoreOption{toast.WithLogger(quietLogger())}, opts...)
	f := &fixture{
		store:   toast.NewStore(opts...),
		clock:   host.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		surface: host.NewMemorySurface(50),
		vis:     host.NewVisibility(false),
		obs:     &recordingObserver{},
	}
	cfg.Logger = quietLogger()
	cfg.Observer = f.obs
	f.toaster = New(f.store, Host{
		Clock:      f.clock,
		Surface:    f.surface,
		Visibility: f.vis,
		Document:   host.StaticDocument{Dir: "ltr"},
	}, cfg)
	f.toaster.Mount()
	t.Cleanup(f.toaster.Unmount)
	return f
}

func (f *fixture) item(t *testing.T, id toast.ID) ItemState {
	t.Helper()
	for _, s := range f.toaster.Items() {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("toast %s is not mounted", id)
	return ItemState{}
}

func (f *fixture) has(id toast.ID) bool {
	for _, s := range f.toaster.Items() {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (f *fixture) event(pid int, y float64, after time.Duration) gesture.Event {
	return gesture.Event{
		PointerID: pid,
		Source:    gesture.Mouse,
		Position:  gesture.Point{Y: y},
		Time:      f.clock.Now().Add(after),
	}
}

func TestDefaultScenario(t *testing.T) {
	f := newFixture(t, Config{})

	autoClosed := 0
	id := f.store.Show(toast.Text("Saved"), toast.WithOnAutoClose(func(toast.Record) { autoClosed++ }))

	if got := f.item(t, id).State; got != StateMounting {
		t.Fatalf("State = %v, want mounting", got)
	}
	f.clock.Flush()
	s := f.item(t, id)
	if s.State != StateMounted || s.Category != toast.CategoryDefault {
		t.Fatalf("after frame: %+v", s)
	}
	if s.Remaining != 4*time.Second || !s.Running {
		t.Errorf("timer = %v running=%v, want 4s running", s.Remaining, s.Running)
	}

	f.clock.Advance(3999 * time.Millisecond)
	if got := f.item(t, id).State; got != StateMounted {
		t.Fatalf("State at 3999ms = %v", got)
	}

	f.clock.Advance(time.Millisecond)
	if got := f.item(t, id).State; got != StateRemoving {
		t.Fatalf("State at 4000ms = %v, want removing", got)
	}
	if autoClosed != 1 {
		t.Errorf("OnAutoClose called %d times, want 1", autoClosed)
	}
	if _, ok := f.store.Get(id); !ok {
		t.Error("record should stay in the store during the exit")
	}

	f.clock.Advance(RemoveDelay - time.Millisecond)
	if _, ok := f.store.Get(id); !ok {
		t.Error("record removed before the exit delay")
	}
	f.clock.Advance(time.Millisecond)
	if _, ok := f.store.Get(id); ok {
		t.Error("record still in the store after the exit delay")
	}
	if f.has(id) {
		t.Error("toast still mounted")
	}

	f.clock.Advance(time.Minute)
	if autoClosed != 1 {
		t.Errorf("OnAutoClose called %d times, want 1", autoClosed)
	}
	if len(f.obs.removed) != 1 || f.obs.removed[0].reason != ReasonTimeout {
		t.Errorf("removals = %+v, want one timeout", f.obs.removed)
	}
}

func TestPauseResume(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		pause  func(f *fixture)
		resume func(f *fixture)
	}{
		{
			name:   "hover",
			pause:  func(f *fixture) { f.toaster.SetHovered(true) },
			resume: func(f *fixture) { f.toaster.SetHovered(false) },
		},
		{
			name:   "interaction",
			pause:  func(f *fixture) { f.toaster.PointerDown("1", f.event(1, 0, 0)) },
			resume: func(f *fixture) { f.toaster.PointerUp("1", f.event(1, 0, 0)) },
		},
		{
			name:   "hotkey",
			pause:  func(f *fixture) { f.toaster.KeyDown(KeyEvent{Code: "KeyT", Alt: true}) },
			resume: func(f *fixture) { f.toaster.KeyDown(KeyEvent{Code: "Escape"}) },
		},
		{
			name:   "hidden page",
			cfg:    Config{PauseWhenPageIsHidden: true},
			pause:  func(f *fixture) { f.vis.Set(true) },
			resume: func(f *fixture) { f.vis.Set(false) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.cfg)
			id := f.store.Show(toast.Text("Saved"))
			f.clock.Flush()

			f.clock.Advance(1500 * time.Millisecond)
			tt.pause(f)
			s := f.item(t, id)
			if s.Running || s.Remaining != 2500*time.Millisecond {
				t.Fatalf("paused timer = %v running=%v, want 2.5s stopped", s.Remaining, s.Running)
			}

			f.clock.Advance(10 * time.Second)
			if got := f.item(t, id).State; got == StateRemoving {
				t.Fatal("toast closed while paused")
			}

			tt.resume(f)
			f.clock.Advance(2499 * time.Millisecond)
			if got := f.item(t, id).State; got != StateMounted {
				t.Fatalf("State before remainder elapsed = %v", got)
			}
			f.clock.Advance(time.Millisecond)
			if got := f.item(t, id).State; got != StateRemoving {
				t.Fatalf("State after remainder = %v, want removing", got)
			}
		})
	}
}

func TestHiddenPageIgnoredByDefault(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Show(toast.Text("Saved"))
	f.clock.Flush()

	f.vis.Set(true)
	if !f.item(t, id).Running {
		t.Error("timer paused on hidden page without PauseWhenPageIsHidden")
	}
}

func TestSwipeThresholds(t *testing.T) {
	tests := []struct {
		name     string
		pos      toast.Position
		to       float64
		after    time.Duration
		dismiss  bool
		wantDir  string
		wantLeft float64
	}{
		{"slow 19px", toast.BottomRight, 19, time.Second, false, "", 0},
		{"slow 21px", toast.BottomRight, 21, time.Second, true, "down", 21},
		{"fast 15px", toast.BottomRight, 15, 100 * time.Millisecond, true, "down", 15},
		{"upward on bottom stack", toast.BottomRight, -40, time.Second, false, "", 0},
		{"upward on top stack", toast.TopCenter, -30, time.Second, true, "up", -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Config{})
			dismissed := 0
			id := f.store.Show(toast.Text("Saved"),
				toast.WithPosition(tt.pos),
				toast.WithOnDismiss(func(toast.Record) { dismissed++ }))
			f.clock.Flush()

			f.toaster.PointerDown(id, f.event(1, 100, 0))
			if !f.surface.Captured(string(id)) {
				t.Error("pointer not captured")
			}
			f.toaster.PointerMove(id, f.event(1, 100+tt.to, tt.after/2))
			if got := f.surface.SwipeOffset(string(id)); got != tt.wantLeft {
				t.Errorf("swipe offset = %v, want %v", got, tt.wantLeft)
			}
			f.toaster.PointerUp(id, f.event(1, 100+tt.to, tt.after))

			if f.surface.Captured(string(id)) {
				t.Error("pointer still captured after release")
			}
			s := f.item(t, id)
			if tt.dismiss {
				if s.State != StateRemoving || !s.SwipeOut || s.SwipeDirection != tt.wantDir {
					t.Errorf("state = %+v, want swiped out %s", s, tt.wantDir)
				}
				if dismissed != 1 {
					t.Errorf("OnDismiss called %d times, want 1", dismissed)
				}
			} else {
				if s.State != StateMounted || s.SwipeAmount != 0 {
					t.Errorf("state = %+v, want mounted with no offset", s)
				}
				if f.surface.SwipeOffset(string(id)) != 0 {
					t.Error("offset not reset")
				}
				if dismissed != 0 {
					t.Errorf("OnDismiss called %d times", dismissed)
				}
			}
			if len(f.obs.releases) != 1 {
				t.Errorf("releases = %d, want 1", len(f.obs.releases))
			}
		})
	}
}

func TestSwipeWithoutPressIsIgnored(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Show(toast.Text("Saved"))
	f.clock.Flush()

	f.toaster.PointerMove(id, f.event(1, 80, 0))
	f.toaster.PointerUp(id, f.event(1, 80, time.Millisecond))
	if s := f.item(t, id); s.State != StateMounted {
		t.Errorf("State = %v, want mounted", s.State)
	}
	f.toaster.PointerUp("missing", f.event(1, 80, 0))
}

func TestPointerCancelResets(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Show(toast.Text("Saved"))
	f.clock.Flush()

	f.toaster.PointerDown(id, f.event(1, 0, 0))
	f.toaster.PointerMove(id, f.event(1, 50, 10*time.Millisecond))
	f.toaster.PointerCancel(id, f.event(1, 50, 10*time.Millisecond))

	s := f.item(t, id)
	if s.State != StateMounted || s.SwipeAmount != 0 || f.surface.Captured(string(id)) {
		t.Errorf("after cancel: %+v captured=%v", s, f.surface.Captured(string(id)))
	}
	if !s.Running {
		t.Error("timer should resume after cancel")
	}
}

func TestNonDismissible(t *testing.T) {
	f := newFixture(t, Config{CloseButton: true})
	dismissed := 0
	id := f.store.Show(toast.Text("Pinned"),
		toast.WithDismissible(false),
		toast.WithCancel("Cancel", nil),
		toast.WithOnDismiss(func(toast.Record) { dismissed++ }))
	f.clock.Flush()

	f.toaster.Close(id)
	f.toaster.ClickCancel(id)
	f.toaster.PointerDown(id, f.event(1, 0, 0))
	f.toaster.PointerMove(id, f.event(1, 80, time.Millisecond))
	f.toaster.PointerUp(id, f.event(1, 80, 2*time.Millisecond))

	if s := f.item(t, id); s.State != StateMounted {
		t.Fatalf("State = %v, want mounted", s.State)
	}
	if f.surface.Captured(string(id)) {
		t.Error("pointer captured on non-dismissible toast")
	}
	if dismissed != 0 {
		t.Errorf("OnDismiss called %d times", dismissed)
	}

	f.clock.Advance(DefaultDuration)
	if s := f.item(t, id); s.State != StateRemoving {
		t.Errorf("State after timeout = %v, want removing", s.State)
	}
}

func TestDismissThroughStore(t *testing.T) {
	f := newFixture(t, Config{})
	dismissed := 0
	id := f.store.Show(toast.Text("Saved"), toast.WithOnDismiss(func(toast.Record) { dismissed++ }))
	f.clock.Flush()

	f.store.Dismiss(id)
	if s := f.item(t, id); s.State != StateRemoving || s.Running {
		t.Fatalf("after dismiss: %+v", s)
	}
	f.store.Dismiss(id)
	if dismissed != 1 {
		t.Errorf("OnDismiss called %d times, want 1", dismissed)
	}
	if f.toaster.Heights().Len() != 0 {
		t.Error("height entry kept after dismiss")
	}

	f.clock.Advance(RemoveDelay)
	if f.store.Len() != 0 || f.has(id) {
		t.Error("toast not removed after the exit delay")
	}
}

func TestRemovalKeepsOffset(t *testing.T) {
	f := newFixture(t, Config{})
	f.surface.SetHeight("1", 40)
	f.surface.SetHeight("2", 60)
	f.store.Show(toast.Text("first"))
	f.store.Show(toast.Text("second"))
	f.clock.Flush()

	if got := f.item(t, "1").Offset; got != DefaultGap+60 {
		t.Fatalf("Offset(1) = %v, want %v", got, DefaultGap+60)
	}
	f.store.Dismiss("1")
	if got := f.item(t, "1").Offset; got != DefaultGap+60 {
		t.Errorf("removing toast Offset = %v, want the offset it had", got)
	}

	f.store.Dismiss("2")
	if got := f.item(t, "2").Offset; got != 0 {
		t.Errorf("Offset(2) = %v, want 0", got)
	}
}

func TestStackingAndVisibleCap(t *testing.T) {
	f := newFixture(t, Config{})
	heights := []float64{50, 60, 70, 80, 90}
	for i, h := range heights {
		f.surface.SetHeight(string(rune('1'+i)), h)
		f.store.Show(toast.Text("t"))
	}
	f.clock.Flush()

	items := f.toaster.Items()
	if len(items) != 5 {
		t.Fatalf("mounted %d toasts, want 5", len(items))
	}
	want := []struct {
		id      toast.ID
		offset  float64
		visible bool
	}{
		{"5", 0, true},
		{"4", 14 + 90, true},
		{"3", 28 + 90 + 80, true},
		{"2", 42 + 90 + 80 + 70, false},
		{"1", 56 + 90 + 80 + 70 + 60, false},
	}
	for i, w := range want {
		s := items[i]
		if s.ID != w.id || s.Offset != w.offset || s.Visible != w.visible || s.Index != i {
			t.Errorf("items[%d] = {%s offset=%v visible=%v index=%d}, want {%s %v %v %d}",
				i, s.ID, s.Offset, s.Visible, s.Index, w.id, w.offset, w.visible, i)
		}
	}
	if !items[0].Front || items[1].Front {
		t.Error("only the newest toast is in front")
	}
	if got := f.toaster.Heights().FrontHeight(toast.BottomRight); got != 90 {
		t.Errorf("FrontHeight = %v, want 90", got)
	}
}

func TestPositionsStackSeparately(t *testing.T) {
	f := newFixture(t, Config{})
	f.store.Show(toast.Text("a"))
	f.store.Show(toast.Text("b"), toast.WithPosition(toast.TopLeft))
	f.store.Show(toast.Text("c"))
	f.clock.Flush()

	if s := f.item(t, "2"); s.Index != 0 || s.Position != toast.TopLeft || s.Offset != 0 {
		t.Errorf("top-left toast = %+v", s)
	}
	if s := f.item(t, "1"); s.Index != 1 {
		t.Errorf("Index(1) = %d, want 1", s.Index)
	}
}

func TestContentUpdateRemeasures(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Show(toast.Text("short"))
	f.clock.Flush()

	f.surface.SetHeight(string(id), 120)
	if _, err := f.store.Update(id, toast.Text("a much longer message")); err != nil {
		t.Fatal(err)
	}
	e, ok := f.toaster.Heights().Get(id)
	if !ok || e.Height != 120 {
		t.Errorf("height entry = %+v, %v; want 120", e, ok)
	}
	if f.toaster.Heights().Len() != 1 {
		t.Errorf("registry has %d entries, want 1", f.toaster.Heights().Len())
	}
	if s := f.item(t, id); s.State != StateMounted {
		t.Errorf("State = %v, want mounted", s.State)
	}
}

func TestDurationUpdateRestartsTimer(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Show(toast.Text("x"), toast.WithDuration(5*time.Second))
	f.clock.Flush()
	f.clock.Advance(3 * time.Second)

	f.store.Update(id, toast.Content{}, toast.WithDuration(10*time.Second))
	f.clock.Advance(10*time.Second - time.Millisecond)
	if s := f.item(t, id); s.State != StateMounted {
		t.Fatalf("State = %v, want mounted", s.State)
	}
	f.clock.Advance(time.Millisecond)
	if s := f.item(t, id); s.State != StateRemoving {
		t.Errorf("State = %v, want removing", s.State)
	}
}

func TestInfiniteAndLoadingNeverClose(t *testing.T) {
	f := newFixture(t, Config{})
	forever := f.store.Show(toast.Text("sticky"), toast.WithDuration(toast.Infinite))
	loading := f.store.Loading(toast.Text("Saving"))
	f.clock.Flush()

	f.clock.Advance(time.Hour)
	for _, id := range []toast.ID{forever, loading} {
		if s := f.item(t, id); s.State != StateMounted || s.Running {
			t.Errorf("%s: %+v", id, s)
		}
	}

	f.store.Success(toast.Text("Saved"), toast.WithID(loading))
	if !f.item(t, loading).Running {
		t.Fatal("timer not started after loading finished")
	}
	f.clock.Advance(DefaultDuration)
	if s := f.item(t, loading); s.State != StateRemoving {
		t.Errorf("State = %v, want removing", s.State)
	}
}

func TestPromiseToast(t *testing.T) {
	settled := make(queue, 1)
	f := newFixture(t, Config{}, toast.WithDispatcher(settled))
	id := f.store.Promise(context.Background(), func(ctx context.Context) (any, error) {
		return "ok", nil
	}, toast.PromiseOptions{
		Loading: toast.Text("Saving"),
		Success: func(any) toast.Content { return toast.Text("Saved") },
	})
	f.clock.Flush()

	if s := f.item(t, id); s.Category != toast.CategoryLoading || s.Running {
		t.Fatalf("pending promise toast = %+v", s)
	}
	f.toaster.PointerDown(id, f.event(1, 0, 0))
	if f.surface.Captured(string(id)) {
		t.Error("loading toast captured the pointer")
	}
	f.toaster.PointerUp(id, f.event(1, 0, 0))

	(<-settled)()
	s := f.item(t, id)
	if s.Category != toast.CategorySuccess || !s.Running {
		t.Errorf("settled promise toast = %+v", s)
	}
	f.clock.Advance(DefaultDuration)
	if s := f.item(t, id); s.State != StateRemoving {
		t.Errorf("State = %v, want removing", s.State)
	}
}

func TestButtons(t *testing.T) {
	t.Run("close", func(t *testing.T) {
		f := newFixture(t, Config{CloseButton: true})
		dismissed := 0
		id := f.store.Show(toast.Text("x"), toast.WithOnDismiss(func(toast.Record) { dismissed++ }))
		f.clock.Flush()
		f.toaster.Close(id)
		if f.item(t, id).State != StateRemoving || dismissed != 1 {
			t.Errorf("close: state=%v dismissed=%d", f.item(t, id).State, dismissed)
		}
	})

	t.Run("action", func(t *testing.T) {
		f := newFixture(t, Config{})
		clicks := 0
		id := f.store.Show(toast.Text("x"), toast.WithAction("Undo", func(*toast.ClickEvent) { clicks++ }))
		f.clock.Flush()
		f.toaster.ClickAction(id)
		if clicks != 1 || f.item(t, id).State != StateRemoving {
			t.Errorf("action: clicks=%d state=%v", clicks, f.item(t, id).State)
		}
		if f.obs.removed[0].reason != ReasonAction {
			t.Errorf("reason = %v", f.obs.removed[0].reason)
		}
	})

	t.Run("action prevented", func(t *testing.T) {
		f := newFixture(t, Config{})
		id := f.store.Show(toast.Text("x"), toast.WithAction("Keep", func(e *toast.ClickEvent) { e.PreventDefault() }))
		f.clock.Flush()
		f.toaster.ClickAction(id)
		if f.item(t, id).State != StateMounted {
			t.Errorf("prevented action removed the toast")
		}
	})

	t.Run("not dismissible", func(t *testing.T) {
		f := newFixture(t, Config{CloseButton: true})
		actions, cancels := 0, 0
		id := f.store.Show(toast.Text("x"),
			toast.WithDismissible(false),
			toast.WithAction("Undo", func(*toast.ClickEvent) { actions++ }),
			toast.WithCancel("Cancel", func(*toast.ClickEvent) { cancels++ }),
		)
		f.clock.Flush()

		f.toaster.ClickAction(id)
		f.toaster.ClickCancel(id)
		f.toaster.Close(id)
		if s := f.item(t, id).State; s != StateMounted {
			t.Errorf("state after button clicks = %v, want mounted", s)
		}
		if actions != 1 || cancels != 0 {
			t.Errorf("actions=%d cancels=%d, want 1 and 0", actions, cancels)
		}
		if len(f.obs.removed) != 0 {
			t.Errorf("removals = %+v", f.obs.removed)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		f := newFixture(t, Config{})
		clicks := 0
		id := f.store.Show(toast.Text("x"), toast.WithCancel("Cancel", func(*toast.ClickEvent) { clicks++ }))
		f.clock.Flush()
		f.toaster.ClickCancel(id)
		if clicks != 1 || f.item(t, id).State != StateRemoving {
			t.Errorf("cancel: clicks=%d state=%v", clicks, f.item(t, id).State)
		}
	})
}

func TestMultipleToasters(t *testing.T) {
	f := newFixture(t, Config{})
	second := New(f.store, Host{Clock: f.clock, Surface: host.NewMemorySurface(30)}, Config{Logger: quietLogger()})
	second.Mount()
	defer second.Unmount()

	id := f.store.Show(toast.Text("both"))
	f.clock.Flush()
	if len(second.Items()) != 1 {
		t.Fatalf("second toaster has %d toasts", len(second.Items()))
	}

	f.toaster.Close(id)
	if s := second.Items()[0]; s.State != StateMounted {
		t.Errorf("second toaster state = %v before the record is dismissed", s.State)
	}

	f.clock.Advance(RemoveDelay)
	if f.store.Len() != 0 || len(second.Items()) != 0 || len(f.toaster.Items()) != 0 {
		t.Errorf("store=%d first=%d second=%d", f.store.Len(), len(f.toaster.Items()), len(second.Items()))
	}
}

func TestMountAdoptsExisting(t *testing.T) {
	store := toast.NewStore(toast.WithLogger(quietLogger()))
	store.Show(toast.Text("a"))
	store.Show(toast.Text("b"))
	gone := store.Show(toast.Text("c"))
	store.Dismiss(gone)

	clock := host.NewFakeClock(time.Unix(0, 0))
	tr := New(store, Host{Clock: clock}, Config{Logger: quietLogger()})
	tr.Mount()
	defer tr.Unmount()

	items := tr.Items()
	if len(items) != 2 || items[0].ID != "2" || items[1].ID != "1" {
		t.Errorf("items = %+v, want [2 1]", items)
	}
}

func TestUnmountCleansUp(t *testing.T) {
	f := newFixture(t, Config{PauseWhenPageIsHidden: true})
	f.store.Show(toast.Text("a"))
	id := f.store.Show(toast.Text("b"))
	f.clock.Flush()
	f.store.Dismiss("1")
	f.toaster.PointerDown(id, f.event(1, 0, 0))

	if f.clock.Pending() == 0 {
		t.Fatal("expected pending timers")
	}
	f.toaster.Unmount()

	if n := f.clock.Pending(); n != 0 {
		t.Errorf("pending timers after unmount = %d", n)
	}
	if n := f.store.Subscribers(); n != 0 {
		t.Errorf("subscribers after unmount = %d", n)
	}
	if n := f.vis.Listeners(); n != 0 {
		t.Errorf("visibility listeners after unmount = %d", n)
	}
	if f.surface.Captured(string(id)) {
		t.Error("pointer capture kept after unmount")
	}
	if len(f.toaster.Items()) != 0 || f.toaster.Heights().Len() != 0 {
		t.Error("state kept after unmount")
	}
	if f.store.Len() != 2 {
		t.Errorf("store has %d toasts, want 2", f.store.Len())
	}
}

func TestRemovedElsewhereUnmounts(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Show(toast.Text("x"))
	f.clock.Flush()

	f.store.Remove(id)
	if f.has(id) {
		t.Error("toast still mounted after store removal")
	}
	if f.clock.Pending() != 0 {
		t.Errorf("pending timers = %d", f.clock.Pending())
	}
}

func TestHotkeyAndCollapse(t *testing.T) {
	f := newFixture(t, Config{})

	f.toaster.KeyDown(KeyEvent{Code: "KeyT", Alt: true})
	if f.toaster.Expanded() {
		t.Error("expanded with no toasts")
	}

	f.store.Show(toast.Text("a"))
	f.store.Show(toast.Text("b"))
	f.clock.Flush()

	f.toaster.KeyDown(KeyEvent{Code: "KeyT"})
	if f.toaster.Expanded() {
		t.Error("expanded without the modifier")
	}
	f.toaster.KeyDown(KeyEvent{Code: "KeyT", Alt: true})
	if !f.toaster.Expanded() {
		t.Fatal("hotkey did not expand")
	}
	f.toaster.KeyDown(KeyEvent{Code: "Escape"})
	if f.toaster.Expanded() {
		t.Error("Escape did not collapse")
	}

	f.toaster.SetHovered(true)
	f.store.Dismiss("1")
	f.clock.Advance(RemoveDelay)
	if f.toaster.Expanded() {
		t.Error("toaster stays expanded with a single toast")
	}
}

func TestHoverLeaveWhileInteracting(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Show(toast.Text("a"))
	f.store.Show(toast.Text("b"))
	f.clock.Flush()

	f.toaster.SetHovered(true)
	f.toaster.PointerDown(id, f.event(1, 0, 0))
	f.toaster.SetHovered(false)
	if !f.toaster.Expanded() {
		t.Error("leaving during an interaction collapsed the toaster")
	}
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		in    string
		want  Hotkey
		label string
		err   bool
	}{
		{"alt+KeyT", Hotkey{Code: "KeyT", Alt: true}, "alt+T", false},
		{"ctrl+shift+Digit1", Hotkey{Code: "Digit1", Ctrl: true, Shift: true}, "ctrl+shift+1", false},
		{"altKey+KeyN", Hotkey{Code: "KeyN", Alt: true}, "alt+N", false},
		{"alt", Hotkey{}, "", true},
		{"KeyA+KeyB", Hotkey{}, "", true},
		{"alt++KeyT", Hotkey{}, "", true},
	}
	for _, tt := range tests {
		got, err := ParseHotkey(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseHotkey(%q) error = %v", tt.in, err)
			continue
		}
		if tt.err {
			continue
		}
		if got != tt.want || got.Label() != tt.label {
			t.Errorf("ParseHotkey(%q) = %+v (%s), want %+v (%s)", tt.in, got, got.Label(), tt.want, tt.label)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{
		Position:      "middle",
		VisibleToasts: -1,
		Gap:           -5,
		Theme:         "neon",
		Dir:           "sideways",
		Hotkey:        "+",
		Logger:        quietLogger(),
	}
	c.applyDefaults()

	if c.Position != DefaultPosition || c.VisibleToasts != DefaultVisibleToasts || c.Gap != DefaultGap {
		t.Errorf("numeric defaults = %+v", c)
	}
	if c.Theme != ThemeLight || c.Dir != DirAuto || c.Hotkey != DefaultHotkey {
		t.Errorf("enum defaults: theme=%s dir=%s hotkey=%s", c.Theme, c.Dir, c.Hotkey)
	}
	if c.Duration != DefaultDuration || c.Width != DefaultWidth || c.Offset != DefaultOffset {
		t.Errorf("size defaults = %v %v %v", c.Duration, c.Width, c.Offset)
	}
	if c.Icons == nil || c.Sanitizer == nil {
		t.Error("providers not defaulted")
	}
}

func TestUpdateMovesPosition(t *testing.T) {
	f := newFixture(t, Config{})
	other := f.store.Show(toast.Text("stays"))
	id := f.store.Show(toast.Text("moves"))
	f.clock.Flush()

	if _, err := f.store.Update(id, toast.Content{}, toast.WithPosition(toast.TopLeft)); err != nil {
		t.Fatal(err)
	}
	if s := f.item(t, id); s.Position != toast.TopLeft {
		t.Errorf("item position = %v, want top-left", s.Position)
	}
	if e, ok := f.toaster.heights.Get(id); !ok || e.Position != toast.TopLeft {
		t.Errorf("height entry = %+v, %v", e, ok)
	}
	if n := len(f.toaster.heights.ByPosition(DefaultPosition)); n != 1 {
		t.Errorf("entries left in %v = %d, want 1", DefaultPosition, n)
	}
	if s := f.item(t, other); s.Offset != 0 {
		t.Errorf("remaining toast offset = %v, want 0", s.Offset)
	}

	// Top stacks swipe upwards.
	f.toaster.PointerDown(id, f.event(1, 100, 0))
	f.toaster.PointerMove(id, f.event(1, 70, 50*time.Millisecond))
	f.toaster.PointerUp(id, f.event(1, 70, 50*time.Millisecond))
	if s := f.item(t, id); s.State != StateRemoving {
		t.Errorf("State after upward swipe = %v, want removing", s.State)
	}
}

func TestPromiseSettlesOnToasterClock(t *testing.T) {
	f := newFixture(t, Config{})
	id := f.store.Promise(context.Background(), func(context.Context) (any, error) {
		return "ok", nil
	}, toast.PromiseOptions{
		Loading: toast.Text("Saving"),
		Success: func(any) toast.Content { return toast.Text("Saved") },
	})
	f.clock.Flush()

	before := f.clock.Pending()
	deadline := time.Now().Add(2 * time.Second)
	for f.clock.Pending() == before {
		if time.Now().After(deadline) {
			t.Fatal("settlement was not posted to the clock")
		}
		f.toaster.SetHovered(true)
		f.toaster.SetHovered(false)
		if s := f.item(t, id); s.Category != toast.CategoryLoading {
			t.Fatalf("toast settled off the clock: %+v", s)
		}
		time.Sleep(time.Millisecond)
	}

	f.clock.Flush()
	if s := f.item(t, id); s.Category != toast.CategorySuccess || !s.Running {
		t.Errorf("settled toast = %+v", s)
	}
}

func TestUnmountReleasesDispatcher(t *testing.T) {
	f := newFixture(t, Config{})
	f.toaster.Unmount()

	done := make(chan struct{})
	f.store.Promise(context.Background(), func(context.Context) (any, error) {
		return nil, nil
	}, toast.PromiseOptions{Finally: func() { close(done) }})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("settlement still routed to an unmounted toaster's clock")
	}
}

func TestNewRequiresClock(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New without a clock did not panic")
		}
	}()
	New(toast.NewStore(), Host{}, Config{})
}

package scenario

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/host"
	"github.com/vango-dev/toaster/pkg/render"
	"github.com/vango-dev/toaster/pkg/telemetry"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/toaster"
	"github.com/vango-dev/toaster/pkg/vdom"
)

// Options configures a run.
type Options struct {
	// Config is the toaster configuration.
	Config toaster.Config

	// Logger receives the store and toaster logs.
	Logger *slog.Logger

	// Start is the fake clock's start time.
	Start time.Time

	// Pretty indents snapshot HTML.
	Pretty bool
}

// Snapshot is the toaster state at a snapshot step.
type Snapshot struct {
	Name  string
	At    time.Duration
	Items []toaster.ItemState
	HTML  string
}

// Entry is a callback observed during the run.
type Entry struct {
	At    time.Duration
	Toast string
	Event string
}

func (e Entry) String() string {
	return fmt.Sprintf("%v %s %s", e.At, e.Toast, e.Event)
}

// Result is the outcome of a run.
type Result struct {
	Snapshots []Snapshot
	Log       []Entry

	// Elapsed is the fake time the scenario took.
	Elapsed time.Duration
}

// Last returns the final snapshot.
func (r *Result) Last() Snapshot {
	return r.Snapshots[len(r.Snapshots)-1]
}

type runner struct {
	scenario *Scenario
	opts     Options

	store      *toast.Store
	toaster    *toaster.Toaster
	clock      *host.FakeClock
	surface    *host.MemorySurface
	visibility *host.VisibilityState
	renderer   *render.Renderer
	settle     chan func()
	ctx        context.Context

	names   map[string]toast.ID
	pointer int
	result  Result
}

// dispatcher hands promise settlements to the runner. Settlements posted
// after the run ended are dropped.
type dispatcher struct {
	ch   chan func()
	done <-chan struct{}
}

func (d dispatcher) Post(fn func()) bool {
	select {
	case d.ch <- fn:
		return true
	case <-d.done:
		return false
	}
}

// Run executes s and returns its snapshots. When s has no snapshot step, one
// named "final" is taken at the end.
func Run(s *Scenario, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Start.IsZero() {
		opts.Start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	r := &runner{
		scenario:   s,
		opts:       opts,
		clock:      host.NewFakeClock(opts.Start),
		surface:    host.NewMemorySurface(s.Height),
		visibility: host.NewVisibility(s.Hidden),
		renderer:   render.NewRenderer(render.RendererConfig{Pretty: opts.Pretty}),
		settle:     make(chan func()),
		names:      make(map[string]toast.ID),
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.ctx = ctx
	r.store = toast.NewStore(
		toast.WithLogger(opts.Logger),
		toast.WithDispatcher(dispatcher{ch: r.settle, done: ctx.Done()}),
	)

	cfg := opts.Config
	if cfg.Logger == nil {
		cfg.Logger = opts.Logger
	}
	r.toaster = toaster.New(r.store, toaster.Host{
		Clock:      r.clock,
		Surface:    r.surface,
		Visibility: r.visibility,
		Document:   host.StaticDocument{Dir: "ltr"},
	}, cfg)
	r.toaster.Mount()
	defer r.toaster.Unmount()

	snapshots := false
	for _, step := range s.Steps {
		if err := r.apply(step); err != nil {
			te := errors.FromError(err, "T024")
			if te.Location == nil {
				te.WithLocation(s.path, step.Line, 0)
			}
			return nil, te
		}
		if step.Kind == KindSnapshot {
			snapshots = true
		}
	}
	if !snapshots {
		if err := r.snapshot("final"); err != nil {
			return nil, errors.New("T024").Wrap(err)
		}
	}

	r.result.Elapsed = r.clock.Now().Sub(opts.Start)
	return &r.result, nil
}

func (r *runner) elapsed() time.Duration {
	return r.clock.Now().Sub(r.opts.Start)
}

func (r *runner) record(name, event string) {
	r.result.Log = append(r.result.Log, Entry{At: r.elapsed(), Toast: name, Event: event})
}

func (r *runner) lookup(name string) (toast.ID, error) {
	id, ok := r.names[name]
	if !ok {
		return "", errors.New("T023").
			WithDetail(fmt.Sprintf("No toast named %q was shown", name))
	}
	return id, nil
}

func (r *runner) apply(step Step) error {
	switch step.Kind {
	case KindShow:
		return r.show(step.Show)
	case KindUpdate:
		return r.update(step.Update)
	case KindPromise:
		return r.promise(step.Promise)
	case KindDismiss:
		if step.Target == "all" {
			r.store.DismissAll()
			return nil
		}
		id, err := r.lookup(step.Target)
		if err != nil {
			return err
		}
		r.store.Dismiss(id)
	case KindAdvance:
		r.clock.Advance(step.Duration)
	case KindHover:
		r.toaster.SetHovered(step.Flag)
	case KindLeave:
		r.toaster.SetHovered(false)
	case KindHidden:
		r.visibility.Set(step.Flag)
	case KindSwipe:
		return r.swipe(step.Swipe)
	case KindClose, KindAction, KindCancel:
		id, err := r.lookup(step.Target)
		if err != nil {
			return err
		}
		switch step.Kind {
		case KindClose:
			r.toaster.Close(id)
		case KindAction:
			r.toaster.ClickAction(id)
		default:
			r.toaster.ClickCancel(id)
		}
	case KindKey:
		k := step.Key
		r.toaster.KeyDown(toaster.KeyEvent{
			Code:      k.Code,
			Alt:       k.Alt,
			Ctrl:      k.Ctrl,
			Meta:      k.Meta,
			Shift:     k.Shift,
			InToaster: k.InToaster,
		})
	case KindSnapshot:
		name := step.Target
		if name == "" {
			name = fmt.Sprintf("snapshot-%d", len(r.result.Snapshots)+1)
		}
		return r.snapshot(name)
	}
	return nil
}

func (r *runner) content(s string, markup bool) toast.Content {
	switch {
	case s == "":
		return toast.Content{}
	case markup:
		return toast.Markup(s)
	default:
		return toast.Text(s)
	}
}

func (r *runner) show(s *ShowStep) error {
	d, err := parseDuration(s.Duration)
	if err != nil {
		return errors.New("T021").Wrap(err)
	}

	name := s.Name
	opts := []toast.Option{
		toast.WithDescription(r.content(s.Description, s.Markup)),
		toast.WithOnDismiss(func(toast.Record) { r.record(name, "dismiss") }),
		toast.WithOnAutoClose(func(toast.Record) { r.record(name, "autoclose") }),
	}
	if name != "" {
		if _, ok := r.names[name]; ok {
			return errors.New("T021").
				WithDetail(fmt.Sprintf("Toast name %q is already used", name))
		}
		opts = append(opts, toast.WithID(toast.ID(name)))
		if s.Height > 0 {
			r.surface.SetHeight(name, s.Height)
		}
	}
	if d != 0 {
		opts = append(opts, toast.WithDuration(d))
	}
	if s.Position != "" {
		opts = append(opts, toast.WithPosition(toast.Position(s.Position)))
	}
	if s.Dismissible != nil {
		opts = append(opts, toast.WithDismissible(*s.Dismissible))
	}
	if s.CloseButton != nil {
		opts = append(opts, toast.WithCloseButton(*s.CloseButton))
	}
	if s.RichColors != nil {
		opts = append(opts, toast.WithRichColors(*s.RichColors))
	}
	if s.Invert != nil {
		opts = append(opts, toast.WithInvert(*s.Invert))
	}
	if s.ClassName != "" {
		opts = append(opts, toast.WithClassName(s.ClassName))
	}
	if s.Action != "" {
		keep := s.KeepOpen
		opts = append(opts, toast.WithAction(s.Action, func(e *toast.ClickEvent) {
			r.record(name, "action")
			if keep {
				e.PreventDefault()
			}
		}))
	}
	if s.Cancel != "" {
		opts = append(opts, toast.WithCancel(s.Cancel, func(*toast.ClickEvent) {
			r.record(name, "cancel")
		}))
	}

	var id toast.ID
	if category := toast.ParseCategory(s.Category); category == toast.CategoryCustom {
		id = r.store.Custom(vdom.Div(vdom.Text(s.Title)), opts...)
	} else {
		id = r.store.Show(r.content(s.Title, s.Markup), append(opts, toast.WithCategory(category))...)
	}
	if name != "" {
		r.names[name] = id
	}
	return nil
}

func (r *runner) update(u *UpdateStep) error {
	id, err := r.lookup(u.Toast)
	if err != nil {
		return err
	}
	d, err := parseDuration(u.Duration)
	if err != nil {
		return errors.New("T021").Wrap(err)
	}

	var opts []toast.Option
	if u.Description != "" {
		opts = append(opts, toast.WithDescription(r.content(u.Description, u.Markup)))
	}
	if u.Category != "" {
		opts = append(opts, toast.WithCategory(toast.ParseCategory(u.Category)))
	}
	if d != 0 {
		opts = append(opts, toast.WithDuration(d))
	}
	if u.Height > 0 {
		r.surface.SetHeight(string(id), u.Height)
	}

	if _, err := r.store.Update(id, r.content(u.Title, u.Markup), opts...); err != nil {
		if stderrors.Is(err, toast.ErrNotFound) {
			return errors.New("T024").
				WithDetail(fmt.Sprintf("Toast %q was already removed", u.Toast)).
				Wrap(err)
		}
		return err
	}
	return nil
}

// promise binds a toast to a task that settles when the scenario clock
// reaches After. The settlement is applied inside the clock callback so it
// lands at that exact fake time.
func (r *runner) promise(p *PromiseStep) error {
	after, err := parseDuration(p.After)
	if err != nil {
		return errors.New("T021").Wrap(err)
	}

	release := make(chan struct{})
	task := func(ctx context.Context) (any, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if p.Fail {
			return nil, stderrors.New(p.Error)
		}
		return p.Success, nil
	}

	name := p.Name
	if name == "" {
		name = "promise"
	}
	po := toast.PromiseOptions{
		Loading: toast.Text(p.Loading),
		Finally: func() { r.record(name, "settled") },
	}
	if p.Success != "" {
		po.Success = func(result any) toast.Content { return toast.Text(fmt.Sprint(result)) }
	}
	if p.Error != "" {
		po.Error = func(err error) toast.Content { return toast.Text(err.Error()) }
	}

	var opts []toast.Option
	if p.Name != "" {
		if _, ok := r.names[p.Name]; ok {
			return errors.New("T021").
				WithDetail(fmt.Sprintf("Toast name %q is already used", p.Name))
		}
		opts = append(opts, toast.WithID(toast.ID(p.Name)))
	}

	id := r.store.Promise(r.ctx, telemetry.Traced(name, task), po, opts...)
	if p.Name != "" {
		r.names[p.Name] = id
	}

	r.clock.AfterFunc(after, func() {
		close(release)
		(<-r.settle)()
	})
	return nil
}

func (r *runner) swipe(s *SwipeStep) error {
	id, err := r.lookup(s.Toast)
	if err != nil {
		return err
	}
	d, err := parseDuration(s.Duration)
	if err != nil {
		return errors.New("T021").Wrap(err)
	}

	r.pointer++
	source := gesture.ParseSource(s.Source)
	event := func(y float64) gesture.Event {
		return gesture.Event{
			PointerID: r.pointer,
			Source:    source,
			Position:  gesture.Point{Y: y},
			Time:      r.clock.Now(),
		}
	}

	r.toaster.PointerDown(id, event(0))
	r.clock.Advance(d)
	r.toaster.PointerMove(id, event(s.Distance))
	r.toaster.PointerUp(id, event(s.Distance))
	return nil
}

func (r *runner) snapshot(name string) error {
	r.clock.Flush()
	html, err := r.renderer.RenderToString(r.toaster.Render())
	if err != nil {
		return err
	}
	r.result.Snapshots = append(r.result.Snapshots, Snapshot{
		Name:  name,
		At:    r.elapsed(),
		Items: r.toaster.Items(),
		HTML:  html,
	})
	return nil
}

// Package preview serves a live toaster over HTTP.
//
// The server owns a Store and a Toaster running on a host.Loop. Toasts are
// created through a small JSON API, browsers render the container from "/"
// and receive every change over a WebSocket at "/ws", and report hovers,
// clicks, key presses and pointer drags back over the same socket.
//
//	srv := preview.New(preview.Options{Config: cfg})
//	go srv.Run(ctx)
//	http.ListenAndServe(":3000", srv.Handler())
package preview

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/toaster/pkg/gesture"
	"github.com/vango-dev/toaster/pkg/host"
	"github.com/vango-dev/toaster/pkg/middleware"
	"github.com/vango-dev/toaster/pkg/render"
	"github.com/vango-dev/toaster/pkg/telemetry"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/toaster"
)

// Options configures a preview server.
type Options struct {
	// Config is the toaster configuration. Its Observer, if any, is kept
	// alongside the server's own.
	Config toaster.Config

	Logger *slog.Logger

	// Registry receives the toaster metrics and backs /metrics. A new
	// registry is created when nil.
	Registry *prometheus.Registry

	// Title is the page title.
	Title string

	// Height is the measured height of every toast.
	Height float64
}

// Server is the preview server.
type Server struct {
	loop       *host.Loop
	store      *toast.Store
	toaster    *toaster.Toaster
	visibility *host.VisibilityState
	hub        *Hub
	metrics    *telemetry.Metrics
	registry   *prometheus.Registry
	renderer   *render.Renderer
	router     chi.Router
	logger     *slog.Logger
	title      string

	stopWatch func()
}

// New creates a preview server. Call Run to start its loop.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Title == "" {
		opts.Title = "Toaster preview"
	}
	if opts.Height <= 0 {
		opts.Height = 56
	}

	s := &Server{
		loop:       host.NewLoop(256),
		visibility: host.NewVisibility(false),
		registry:   opts.Registry,
		renderer:   render.NewRenderer(render.RendererConfig{}),
		logger:     opts.Logger,
		title:      opts.Title,
	}
	s.hub = NewHub(opts.Logger, s.interact)
	s.metrics = telemetry.NewMetrics(telemetry.WithRegistry(opts.Registry))
	s.store = toast.NewStore(
		toast.WithLogger(opts.Logger),
		toast.WithDispatcher(s.loop),
	)

	cfg := opts.Config
	if cfg.Logger == nil {
		cfg.Logger = opts.Logger
	}
	observers := fanout{s.metrics, hubObserver{s}}
	if cfg.Observer != nil {
		observers = append(observers, cfg.Observer)
	}
	cfg.Observer = observers

	s.toaster = toaster.New(s.store, toaster.Host{
		Clock:      s.loop.Clock(),
		Surface:    host.NewMemorySurface(opts.Height),
		Visibility: s.visibility,
		Document:   host.StaticDocument{Dir: "ltr"},
	}, cfg)

	s.router = s.routes()
	return s
}

// Store returns the server's toast store. Mutations must go through Do.
func (s *Server) Store() *toast.Store { return s.store }

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Do runs fn on the toaster's loop and waits for it.
func (s *Server) Do(ctx context.Context, fn func()) error {
	return s.loop.Do(ctx, fn)
}

// Run mounts the toaster and runs the loop until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.loop.Post(func() {
		s.toaster.Mount()
		s.stopWatch = s.metrics.WatchStore(s.store)
		s.store.Subscribe(s.storeChanged)
	})
	err := s.loop.Run(ctx)

	// The loop has stopped; nothing else touches the toaster now.
	if s.stopWatch != nil {
		s.stopWatch()
	}
	s.toaster.Unmount()
	s.hub.Close()
	if err == context.Canceled {
		return nil
	}
	return err
}

// ListenAndServe runs the loop and serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() { loopErr <- s.Run(ctx) }()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()
	s.logger.Info("preview server listening", "addr", addr)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		cancel()
		<-loopErr
		return err
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-loopErr
}

// storeChanged runs on the loop for every store event.
func (s *Server) storeChanged(e toast.Event) {
	s.broadcast(Message{
		Type:     e.Kind.String(),
		ID:       string(e.Toast.ID),
		Category: string(e.Toast.Category),
	})
}

// broadcast renders the toaster into msg and sends it. It runs on the loop.
func (s *Server) broadcast(msg Message) {
	if s.hub.ClientCount() == 0 {
		return
	}
	html, err := s.renderer.RenderToString(s.toaster.Render())
	if err != nil {
		s.logger.Error("render toaster", "error", err)
		return
	}
	msg.HTML = html
	s.hub.Broadcast(msg)
}

// interact applies a client message on the loop.
func (s *Server) interact(m ClientMessage) {
	s.loop.Post(func() {
		id := toast.ID(m.ID)
		switch m.Type {
		case "hover":
			s.toaster.SetHovered(m.Value)
		case "visibility":
			s.visibility.Set(m.Value)
		case "close":
			s.toaster.Close(id)
		case "action":
			s.toaster.ClickAction(id)
		case "cancel":
			s.toaster.ClickCancel(id)
		case "key":
			s.toaster.KeyDown(toaster.KeyEvent{
				Code:      m.Code,
				Alt:       m.Alt,
				Ctrl:      m.Ctrl,
				Meta:      m.Meta,
				Shift:     m.Shift,
				InToaster: m.InToaster,
			})
		case "pointer":
			e := gesture.Event{
				PointerID: m.PointerID,
				Source:    gesture.ParseSource(m.Source),
				Position:  gesture.Point{Y: m.Y},
				Time:      time.Now(),
				OnButton:  m.OnButton,
			}
			switch m.Phase {
			case "down":
				s.toaster.PointerDown(id, e)
			case "move":
				s.toaster.PointerMove(id, e)
			case "up":
				s.toaster.PointerUp(id, e)
			case "cancel":
				s.toaster.PointerCancel(id, e)
			}
		default:
			s.logger.Debug("unknown preview message", "type", m.Type)
			return
		}
		s.broadcast(Message{Type: m.Type, ID: m.ID})
	})
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Prometheus(middleware.WithRegistry(s.registry)))
	r.Use(middleware.OpenTelemetry(middleware.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/metrics" && r.URL.Path != "/healthz"
	})))

	r.Get("/", s.handlePage)
	r.Get("/toaster", s.handleFragment)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Route("/toasts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Delete("/", s.handleDismissAll)
		r.Patch("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDismiss)
	})
	r.Handle("/ws", s.hub)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// fanout forwards toaster events to several observers.
type fanout []toaster.Observer

func (f fanout) ToastMounted(rec toast.Record) {
	for _, o := range f {
		o.ToastMounted(rec)
	}
}

func (f fanout) ToastRemoved(rec toast.Record, reason toaster.RemovalReason, shown time.Duration) {
	for _, o := range f {
		o.ToastRemoved(rec, reason, shown)
	}
}

func (f fanout) SwipeReleased(rec toast.Record, r gesture.Release) {
	for _, o := range f {
		o.SwipeReleased(rec, r)
	}
}

// hubObserver pushes lifecycle changes that do not touch the store.
type hubObserver struct {
	s *Server
}

func (h hubObserver) ToastMounted(rec toast.Record) {
	h.s.broadcast(Message{Type: "mounted", ID: string(rec.ID), Category: string(rec.Category)})
}

func (h hubObserver) ToastRemoved(rec toast.Record, reason toaster.RemovalReason, _ time.Duration) {
	h.s.broadcast(Message{Type: "closed", ID: string(rec.ID), Reason: reason.String()})
}

func (hubObserver) SwipeReleased(toast.Record, gesture.Release) {}

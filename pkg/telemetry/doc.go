// Package telemetry instruments toasters and promise tasks.
//
// Metrics implements toaster.Observer and records Prometheus metrics for
// every toast lifecycle transition:
//
//	m := telemetry.NewMetrics(telemetry.WithNamespace("myapp"))
//	t := toaster.New(store, host, toaster.Config{Observer: m})
//	stop := m.WatchStore(store)
//	defer stop()
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Traced wraps a promise task in an OpenTelemetry span:
//
//	store.Promise(ctx, telemetry.Traced("save-profile", save), opts)
package telemetry

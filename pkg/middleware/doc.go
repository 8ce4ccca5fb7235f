// Package middleware provides HTTP middleware for the preview server.
//
// # Prometheus Metrics
//
// Prometheus counts requests and observes their duration by chi route
// pattern:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// Metrics collected:
//   - toaster_http_requests_total{route, method, status}
//   - toaster_http_request_duration_seconds{route, method}
//   - toaster_http_requests_in_flight
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request using the global tracer
// provider unless WithTracerProvider is given:
//
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("toaster-preview")))
//
// Handlers can reach the span with trace.SpanFromContext(r.Context()).
package middleware

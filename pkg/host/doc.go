// Package host defines the capabilities a toaster needs from its
// environment: a clock with cancellable timers, a rendering surface that can
// measure and move toasts, a document visibility observer, and document
// preferences such as text direction.
//
// The toast engine is single-threaded. Applications run it on a Loop, whose
// Clock delivers timer callbacks on the loop goroutine:
//
//	loop := host.NewLoop(64)
//	go loop.Run(ctx)
//	loop.Post(func() { t.Mount() })
//
// Tests use FakeClock, which fires due timers synchronously from Advance.
package host

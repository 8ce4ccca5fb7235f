package toast

import (
	"context"
	"fmt"
	"net/http"
)

// Task is an asynchronous operation a toast can track.
type Task func(ctx context.Context) (any, error)

// PromiseOptions describes the content of a promise-bound toast in each
// phase.
type PromiseOptions struct {
	// Loading is shown while the task runs.
	Loading Content

	// Success builds the content shown when the task succeeds. When nil the
	// toast is dismissed on success.
	Success func(result any) Content

	// Error builds the content shown when the task fails. When nil the toast
	// is dismissed on failure.
	Error func(err error) Content

	// Finally runs after either outcome.
	Finally func()
}

// HTTPError is the error a Promise reports for an *http.Response with an
// error status.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Promise shows a loading toast and runs task on its own goroutine. When the
// task returns, the same toast becomes a success or error toast. The
// settlement runs through the store's Dispatcher.
//
// A settlement for a toast that was removed in the meantime only runs
// Finally.
func (s *Store) Promise(ctx context.Context, task Task, p PromiseOptions, opts ...Option) ID {
	opts = append(opts[:len(opts):len(opts)], withPromise(true))
	id := s.create(p.Loading, CategoryLoading, opts)

	go func() {
		result, err := task(ctx)
		if err == nil {
			if resp, ok := result.(*http.Response); ok && resp.StatusCode >= 400 {
				err = &HTTPError{StatusCode: resp.StatusCode}
			}
		}
		s.dispatcher().Post(func() { s.settle(id, result, err, p) })
	}()

	return id
}

func (s *Store) settle(id ID, result any, err error, p PromiseOptions) {
	defer func() {
		if p.Finally != nil {
			p.Finally()
		}
	}()

	if rec, ok := s.Get(id); !ok || rec.DeleteRequested {
		s.logger.Debug("toast promise settled after removal", "id", string(id))
		return
	}

	var (
		content  Content
		category Category
		build    bool
	)
	if err != nil {
		if p.Error != nil {
			content, category, build = p.Error(err), CategoryError, true
		}
	} else if p.Success != nil {
		content, category, build = p.Success(result), CategorySuccess, true
	}

	if !build {
		s.dismissSettled(id)
		return
	}
	s.create(content, category, []Option{WithID(id), withPromise(false)})
}

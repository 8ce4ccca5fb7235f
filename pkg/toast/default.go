package toast

import (
	"context"

	"github.com/vango-dev/toaster/pkg/vdom"
)

// Default is the process-wide store used by the package-level helpers.
// Promise settlements run on the clock of the first toaster mounted on it,
// or wherever SetDispatcher says.
var Default = NewStore()

// Show displays a toast on the Default store.
//
//	toast.Show(toast.Text("Event has been created"))
func Show(title Content, opts ...Option) ID { return Default.Show(title, opts...) }

// Message is an alias of Show.
func Message(title Content, opts ...Option) ID { return Default.Message(title, opts...) }

// Success shows a success toast on the Default store.
//
//	toast.Success(toast.Text("Changes saved!"))
func Success(title Content, opts ...Option) ID { return Default.Success(title, opts...) }

// Error shows an error toast on the Default store.
//
//	toast.Error(toast.Text("Failed to delete item"))
func Error(title Content, opts ...Option) ID { return Default.Error(title, opts...) }

// Warning shows a warning toast on the Default store.
func Warning(title Content, opts ...Option) ID { return Default.Warning(title, opts...) }

// Info shows an info toast on the Default store.
func Info(title Content, opts ...Option) ID { return Default.Info(title, opts...) }

// Loading shows a loading toast on the Default store.
func Loading(title Content, opts ...Option) ID { return Default.Loading(title, opts...) }

// Custom shows a node toast on the Default store.
func Custom(node *vdom.VNode, opts ...Option) ID { return Default.Custom(node, opts...) }

// Update changes a toast on the Default store.
func Update(id ID, title Content, opts ...Option) (ID, error) {
	return Default.Update(id, title, opts...)
}

// Dismiss dismisses the given toasts on the Default store, or all of them
// when called without ids.
func Dismiss(ids ...ID) {
	if len(ids) == 0 {
		Default.DismissAll()
		return
	}
	for _, id := range ids {
		Default.Dismiss(id)
	}
}

// Promise tracks task with a toast on the Default store.
func Promise(ctx context.Context, task Task, p PromiseOptions, opts ...Option) ID {
	return Default.Promise(ctx, task, p, opts...)
}

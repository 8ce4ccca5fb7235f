// Package toast holds toast notifications and the Store that owns them.
//
// A Store is an ordered collection of Records. Callers add, update and
// dismiss toasts through it; toasters subscribe to it and render what it
// holds. Every mutation notifies subscribers synchronously, in subscription
// order.
//
// # Showing toasts
//
// Package-level helpers use the process-wide Default store:
//
//	id := toast.Success(toast.Text("Project deleted"),
//	    toast.WithDescription(toast.Text("It can be restored for 30 days.")),
//	    toast.WithAction("Undo", func(e *toast.ClickEvent) { restore() }),
//	)
//
// Tests and embedded toasters construct their own:
//
//	s := toast.NewStore(toast.WithLogger(logger))
//	s.Show(toast.Text("Saved"))
//
// # Promises
//
// Promise shows a loading toast for a task and turns it into a success or
// error toast when the task returns. The id stays the same:
//
//	s.Promise(ctx, save, toast.PromiseOptions{
//	    Loading: toast.Text("Saving..."),
//	    Success: func(any) toast.Content { return toast.Text("Saved") },
//	    Error:   func(err error) toast.Content { return toast.Text(err.Error()) },
//	})
//
// # Removal
//
// Dismiss only marks a record. The toaster showing it plays the exit
// animation and then calls Remove, after which the record is gone.
package toast

// Package errors provides structured, actionable error messages for the
// toaster CLI and its configuration and scenario files.
//
// Each error has a code (e.g. "T003") registered with a category, a short
// message and a longer explanation. Errors found in a file carry the line
// they were found on and are printed with the surrounding lines:
//
//	err := errors.New("T003").
//	    WithLocation("toaster.yaml", 2, 11).
//	    WithSuggestion("Use one of top-left, top-center, top-right, bottom-left, bottom-center, bottom-right")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR T003: Invalid position
//	//
//	//   toaster.yaml:2:11
//	//
//	//       1 │ duration: 4s
//	//   →   2 │ position: middle
//	//         │           ^
//	//       3 │ gap: 14
//	//
//	//   Hint: Use one of top-left, top-center, ...
package errors

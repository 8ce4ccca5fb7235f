// Package templates scaffolds toaster configurations and example scenarios.
//
//	tmpl, err := templates.Get("basic")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create("./notifications", templates.Config{
//	    ProjectName: "notifications",
//	    Position:    "top-center",
//	})
//
// Templates:
//   - basic: toaster.yaml and a scenario covering auto-close, hover and swipe
//   - json: toaster.json with the same scenario
//   - promise: toaster.yaml and a scenario with promise toasts and buttons
package templates

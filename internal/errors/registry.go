package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (T001-T019)
	// ============================================

	"T001": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No toaster.json, toaster.yaml or toaster.yml was found in the directory or its parents.",
	},
	"T002": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The config file could not be parsed. JSON files must be a single object; YAML files a single mapping.",
	},
	"T003": {
		Category: CategoryConfig,
		Message:  "Invalid position",
		Detail:   "Positions are top-left, top-center, top-right, bottom-left, bottom-center and bottom-right.",
	},
	"T004": {
		Category: CategoryConfig,
		Message:  "Invalid theme",
		Detail:   "Themes are light, dark and system.",
	},
	"T005": {
		Category: CategoryConfig,
		Message:  "Invalid direction",
		Detail:   "Directions are ltr, rtl and auto.",
	},
	"T006": {
		Category: CategoryConfig,
		Message:  "Invalid hotkey",
		Detail:   "A hotkey is a key code with optional modifiers joined by '+', e.g. alt+KeyT.",
	},
	"T007": {
		Category: CategoryConfig,
		Message:  "Invalid number",
		Detail:   "Counts, sizes and durations must not be negative.",
	},
	"T008": {
		Category: CategoryConfig,
		Message:  "Icon manifest failed to load",
		Detail:   "The icon manifest must be a JSON object mapping category names to SVG markup.",
	},
	"T009": {
		Category: CategoryConfig,
		Message:  "Invalid duration",
		Detail:   "Durations use Go syntax (\"4s\", \"1500ms\") or \"infinite\".",
	},

	// ============================================
	// Scenario Errors (T020-T039)
	// ============================================

	"T020": {
		Category: CategoryScenario,
		Message:  "Scenario file not found",
		Detail:   "The scenario file does not exist or is not readable.",
	},
	"T021": {
		Category: CategoryScenario,
		Message:  "Invalid scenario",
		Detail:   "A scenario is a YAML document with a list of steps.",
	},
	"T022": {
		Category: CategoryScenario,
		Message:  "Unknown step",
		Detail:   "Steps are show, update, dismiss, advance, hover, leave, swipe, close, action, cancel, key and snapshot.",
	},
	"T023": {
		Category: CategoryScenario,
		Message:  "Unknown toast reference",
		Detail:   "The step refers to a toast name that no earlier show step defined.",
	},
	"T024": {
		Category: CategoryScenario,
		Message:  "Step failed",
		Detail:   "The step could not be applied to the toaster.",
	},

	// ============================================
	// CLI Errors (T040-T059)
	// ============================================

	"T040": {
		Category: CategoryCLI,
		Message:  "Output failed",
		Detail:   "The rendered output could not be written.",
	},
	"T041": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The preview server could not start or stopped unexpectedly.",
	},
	"T042": {
		Category: CategoryCLI,
		Message:  "Invalid flag",
		Detail:   "A command-line flag has an invalid value.",
	},
	"T043": {
		Category: CategoryCLI,
		Message:  "File already exists",
		Detail:   "The scaffold would overwrite an existing file.",
	},
	"T044": {
		Category: CategoryCLI,
		Message:  "Check failed",
		Detail:   "The configuration or a scenario has problems.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

package toaster

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/toaster/pkg/assets"
	"github.com/vango-dev/toaster/pkg/sanitize"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/vdom"
)

// Defaults.
const (
	DefaultPosition      = toast.BottomRight
	DefaultVisibleToasts = 3
	DefaultGap           = 14
	DefaultDuration      = 4 * time.Second
	DefaultOffset        = "32px"
	DefaultWidth         = 356
	DefaultHotkey        = "alt+KeyT"

	// RemoveDelay is how long a removed toast stays mounted for its exit
	// animation.
	RemoveDelay = 200 * time.Millisecond
)

// Theme values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Direction values.
const (
	DirLTR  = "ltr"
	DirRTL  = "rtl"
	DirAuto = "auto"
)

// ClassNames adds classes to parts of every toast.
type ClassNames struct {
	Toast        string
	Title        string
	Description  string
	Content      string
	Icon         string
	Loader       string
	CloseButton  string
	CancelButton string
	ActionButton string

	// Category is added to toasts of the given category.
	Category map[toast.Category]string
}

// Config configures a Toaster.
type Config struct {
	// Position is the default stack for toasts without one.
	Position toast.Position

	// VisibleToasts is how many toasts per stack are visible when collapsed.
	VisibleToasts int

	// Gap is the space between expanded toasts in pixels.
	Gap float64

	// Duration is the auto-close delay of toasts without one.
	Duration time.Duration

	// Offset is the CSS distance of the stacks from the viewport edge.
	Offset string

	// Width of a toast in pixels.
	Width float64

	CloseButton bool
	RichColors  bool
	Invert      bool

	// Expand shows stacks expanded instead of collapsed.
	Expand bool

	// Theme is light, dark or system.
	Theme string

	// Dir is ltr, rtl or auto. Auto follows the document.
	Dir string

	// PauseWhenPageIsHidden pauses auto-close while the document is hidden.
	PauseWhenPageIsHidden bool

	// Hotkey expands the toaster, e.g. "alt+KeyT".
	Hotkey string

	// ContainerLabel is the accessible name of the toaster region.
	ContainerLabel string

	ClassNames ClassNames

	// Icons supplies category glyphs. Defaults to assets.Builtin().
	Icons assets.Provider

	// LoadingIcon replaces the spinner.
	LoadingIcon *vdom.VNode

	// Sanitizer cleans Markup content. Defaults to sanitize.Default().
	Sanitizer sanitize.Sanitizer

	Logger   *slog.Logger
	Observer Observer
}

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// applyDefaults replaces unset or invalid values. Invalid ones are logged
// and otherwise ignored.
func (c *Config) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	warn := func(field string, value any, fallback any) {
		c.Logger.Warn("toaster: invalid config value, using default",
			"field", field, "value", value, "default", fallback)
	}

	if c.Position == "" {
		c.Position = DefaultPosition
	} else if !c.Position.Valid() {
		warn("position", c.Position, DefaultPosition)
		c.Position = DefaultPosition
	}
	if c.VisibleToasts <= 0 {
		if c.VisibleToasts < 0 {
			warn("visibleToasts", c.VisibleToasts, DefaultVisibleToasts)
		}
		c.VisibleToasts = DefaultVisibleToasts
	}
	if c.Gap <= 0 {
		if c.Gap < 0 {
			warn("gap", c.Gap, DefaultGap)
		}
		c.Gap = DefaultGap
	}
	if c.Duration <= 0 {
		if c.Duration < 0 {
			warn("duration", c.Duration, DefaultDuration)
		}
		c.Duration = DefaultDuration
	}
	if c.Offset == "" {
		c.Offset = DefaultOffset
	}
	if c.Width <= 0 {
		if c.Width < 0 {
			warn("width", c.Width, DefaultWidth)
		}
		c.Width = DefaultWidth
	}
	switch c.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	case "":
		c.Theme = ThemeLight
	default:
		warn("theme", c.Theme, ThemeLight)
		c.Theme = ThemeLight
	}
	switch c.Dir {
	case DirLTR, DirRTL, DirAuto:
	case "":
		c.Dir = DirAuto
	default:
		warn("dir", c.Dir, DirAuto)
		c.Dir = DirAuto
	}
	if c.Hotkey == "" {
		c.Hotkey = DefaultHotkey
	} else if _, err := ParseHotkey(c.Hotkey); err != nil {
		warn("hotkey", c.Hotkey, DefaultHotkey)
		c.Hotkey = DefaultHotkey
	}
	if c.ContainerLabel == "" {
		c.ContainerLabel = "Notifications"
	}
	if c.Icons == nil {
		c.Icons = assets.Builtin()
	}
	if c.Sanitizer == nil {
		c.Sanitizer = sanitize.Default()
	}
}

// KeyEvent is a keyboard event delivered to the toaster.
type KeyEvent struct {
	// Code is the physical key, as in KeyboardEvent.code ("KeyT", "Escape").
	Code string

	Alt, Ctrl, Meta, Shift bool

	// InToaster is set when focus is inside the toaster region.
	InToaster bool
}

// Hotkey is a key combination.
type Hotkey struct {
	Code                   string
	Alt, Ctrl, Meta, Shift bool
}

// ParseHotkey parses "alt+KeyT" style combinations. Modifier names are
// case-insensitive; exactly one non-modifier key code is required.
func ParseHotkey(s string) (Hotkey, error) {
	var h Hotkey
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "alt", "altkey":
			h.Alt = true
		case "ctrl", "ctrlkey", "control":
			h.Ctrl = true
		case "meta", "metakey", "cmd":
			h.Meta = true
		case "shift", "shiftkey":
			h.Shift = true
		case "":
			return Hotkey{}, fmt.Errorf("toaster: empty key in hotkey %q", s)
		default:
			if h.Code != "" {
				return Hotkey{}, fmt.Errorf("toaster: hotkey %q has more than one key", s)
			}
			h.Code = part
		}
	}
	if h.Code == "" {
		return Hotkey{}, fmt.Errorf("toaster: hotkey %q has no key", s)
	}
	return h, nil
}

// Matches reports whether e presses every part of h.
func (h Hotkey) Matches(e KeyEvent) bool {
	return e.Code == h.Code &&
		(!h.Alt || e.Alt) &&
		(!h.Ctrl || e.Ctrl) &&
		(!h.Meta || e.Meta) &&
		(!h.Shift || e.Shift)
}

// Label is the human readable form used in the region's accessible name.
func (h Hotkey) Label() string {
	var parts []string
	if h.Alt {
		parts = append(parts, "alt")
	}
	if h.Ctrl {
		parts = append(parts, "ctrl")
	}
	if h.Meta {
		parts = append(parts, "meta")
	}
	if h.Shift {
		parts = append(parts, "shift")
	}
	code := strings.TrimPrefix(h.Code, "Key")
	code = strings.TrimPrefix(code, "Digit")
	return strings.Join(append(parts, code), "+")
}

// Package scenario runs scripted toast interactions against a toaster on a
// fake clock and captures HTML snapshots.
//
// A scenario is a YAML document:
//
//	name: undo
//	height: 56
//	steps:
//	  - show: {name: saved, title: Saved, action: Undo}
//	  - advance: 1s
//	  - hover: true
//	  - snapshot: expanded
//	  - swipe: {toast: saved, distance: 30, duration: 200ms}
//	  - advance: 200ms
//	  - snapshot
//
// Each step is a mapping with a single key naming the step, or a bare word
// for steps without arguments.
package scenario

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/toaster/internal/config"
	"github.com/vango-dev/toaster/internal/errors"
)

// Kind names a step.
type Kind string

const (
	KindShow     Kind = "show"
	KindUpdate   Kind = "update"
	KindPromise  Kind = "promise"
	KindDismiss  Kind = "dismiss"
	KindAdvance  Kind = "advance"
	KindHover    Kind = "hover"
	KindLeave    Kind = "leave"
	KindHidden   Kind = "hidden"
	KindSwipe    Kind = "swipe"
	KindClose    Kind = "close"
	KindAction   Kind = "action"
	KindCancel   Kind = "cancel"
	KindKey      Kind = "key"
	KindSnapshot Kind = "snapshot"
)

// DefaultHeight is the measured toast height when a scenario sets none.
const DefaultHeight = 56

// Scenario is a parsed scenario file.
type Scenario struct {
	Name        string
	Description string

	// Height is the measured height of toasts without their own.
	Height float64

	// Hidden starts the page hidden.
	Hidden bool

	Steps []Step

	path string
}

// Path returns the file the scenario was loaded from.
func (s *Scenario) Path() string { return s.path }

// Step is one scenario step. Only the fields of its Kind are set.
type Step struct {
	Kind Kind
	Line int

	Show    *ShowStep
	Update  *UpdateStep
	Promise *PromiseStep
	Swipe   *SwipeStep
	Key     *KeyStep

	// Target is the toast name of dismiss, close, action and cancel, or the
	// snapshot name. Dismiss accepts "all".
	Target string

	// Duration is the advance step's duration.
	Duration time.Duration

	// Flag is the value of hover and hidden.
	Flag bool
}

// ShowStep creates a toast.
type ShowStep struct {
	Name        string  `yaml:"name"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Markup      bool    `yaml:"markup"`
	Duration    string  `yaml:"duration"`
	Position    string  `yaml:"position"`
	Dismissible *bool   `yaml:"dismissible"`
	CloseButton *bool   `yaml:"closeButton"`
	RichColors  *bool   `yaml:"richColors"`
	Invert      *bool   `yaml:"invert"`
	ClassName   string  `yaml:"className"`
	Height      float64 `yaml:"height"`

	Action string `yaml:"action"`
	Cancel string `yaml:"cancel"`

	// KeepOpen makes the action button prevent the default dismissal.
	KeepOpen bool `yaml:"keepOpen"`
}

// UpdateStep changes an existing toast. Empty fields keep their value.
type UpdateStep struct {
	Toast       string  `yaml:"toast"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Markup      bool    `yaml:"markup"`
	Duration    string  `yaml:"duration"`
	Height      float64 `yaml:"height"`
}

// PromiseStep shows a loading toast bound to a task that settles after a
// delay on the scenario clock.
type PromiseStep struct {
	Name    string `yaml:"name"`
	Loading string `yaml:"loading"`
	Success string `yaml:"success"`
	Error   string `yaml:"error"`
	After   string `yaml:"after"`
	Fail    bool   `yaml:"fail"`
}

// SwipeStep drags a toast and releases it.
type SwipeStep struct {
	Toast    string  `yaml:"toast"`
	Distance float64 `yaml:"distance"`
	Duration string  `yaml:"duration"`
	Source   string  `yaml:"source"`
}

// KeyStep presses a key.
type KeyStep struct {
	Code      string `yaml:"code"`
	Alt       bool   `yaml:"alt"`
	Ctrl      bool   `yaml:"ctrl"`
	Meta      bool   `yaml:"meta"`
	Shift     bool   `yaml:"shift"`
	InToaster bool   `yaml:"inToaster"`
}

type file struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Height      float64     `yaml:"height"`
	Hidden      bool        `yaml:"hidden"`
	Steps       []yaml.Node `yaml:"steps"`
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("T020").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}
	return Parse(data, path)
}

// Parse parses a scenario document. path is used in error locations.
func Parse(data []byte, path string) (*Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.New("T021").
			WithLocationFromError(path, err).
			Wrap(err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("T021").
			WithDetail("The scenario has no steps").
			WithExample("steps:\n  - show: {title: Saved}\n  - advance: 4s")
	}

	s := &Scenario{
		Name:        f.Name,
		Description: f.Description,
		Height:      f.Height,
		Hidden:      f.Hidden,
		path:        path,
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}

	for i := range f.Steps {
		step, err := parseStep(&f.Steps[i])
		if err != nil {
			if te, ok := err.(*errors.ToastError); ok && te.Location == nil {
				te.WithLocation(path, f.Steps[i].Line, f.Steps[i].Column)
			}
			return nil, err
		}
		s.Steps = append(s.Steps, step)
	}
	return s, nil
}

func parseStep(n *yaml.Node) (Step, error) {
	step := Step{Line: n.Line}

	var value *yaml.Node
	switch n.Kind {
	case yaml.ScalarNode:
		step.Kind = Kind(n.Value)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return step, errors.New("T021").
				WithDetail("A step must have exactly one key")
		}
		step.Kind = Kind(n.Content[0].Value)
		value = n.Content[1]
	default:
		return step, errors.New("T021").
			WithDetail("A step must be a mapping or a step name")
	}

	decode := func(out any) error {
		if value == nil {
			return errors.New("T021").
				WithDetail("Step " + string(step.Kind) + " needs a value")
		}
		if err := value.Decode(out); err != nil {
			return errors.New("T021").
				WithDetail("Bad " + string(step.Kind) + " step").
				Wrap(err)
		}
		return nil
	}

	var err error
	switch step.Kind {
	case KindShow:
		step.Show = &ShowStep{}
		err = decode(step.Show)
	case KindUpdate:
		step.Update = &UpdateStep{}
		if err = decode(step.Update); err == nil && step.Update.Toast == "" {
			err = errors.New("T021").WithDetail("update needs a toast")
		}
	case KindPromise:
		step.Promise = &PromiseStep{}
		err = decode(step.Promise)
	case KindSwipe:
		step.Swipe = &SwipeStep{}
		if err = decode(step.Swipe); err == nil && step.Swipe.Toast == "" {
			err = errors.New("T021").WithDetail("swipe needs a toast")
		}
	case KindKey:
		step.Key = &KeyStep{}
		if err = decode(step.Key); err == nil && step.Key.Code == "" {
			err = errors.New("T021").WithDetail("key needs a code")
		}
	case KindDismiss, KindClose, KindAction, KindCancel:
		err = decode(&step.Target)
	case KindSnapshot:
		if value != nil {
			err = decode(&step.Target)
		}
	case KindAdvance:
		var raw string
		if err = decode(&raw); err == nil {
			step.Duration, err = time.ParseDuration(raw)
			if err != nil {
				err = errors.New("T021").
					WithDetail("Bad advance duration " + raw).
					WithExample("- advance: 1500ms")
			}
		}
	case KindHover, KindHidden:
		err = decode(&step.Flag)
	case KindLeave:
	default:
		err = errors.New("T022").
			WithDetail("Unknown step " + string(step.Kind))
	}
	return step, err
}

// parseDuration accepts Go durations and "infinite". Empty is zero.
func parseDuration(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return config.ParseDuration(s)
}

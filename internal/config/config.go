package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/toaster/internal/errors"
	"github.com/vango-dev/toaster/pkg/assets"
	"github.com/vango-dev/toaster/pkg/sanitize"
	"github.com/vango-dev/toaster/pkg/toast"
	"github.com/vango-dev/toaster/pkg/toaster"
)

// FileNames are the config file names, in lookup order.
var FileNames = []string{"toaster.json", "toaster.yaml", "toaster.yml"}

const (
	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// Infinite is the duration value for toasts that never auto-close.
	Infinite = "infinite"
)

// Config is the content of a toaster config file.
type Config struct {
	Position              string  `json:"position,omitempty" yaml:"position,omitempty"`
	VisibleToasts         int     `json:"visibleToasts,omitempty" yaml:"visibleToasts,omitempty"`
	Gap                   float64 `json:"gap,omitempty" yaml:"gap,omitempty"`
	Duration              string  `json:"duration,omitempty" yaml:"duration,omitempty"`
	Offset                string  `json:"offset,omitempty" yaml:"offset,omitempty"`
	Width                 float64 `json:"width,omitempty" yaml:"width,omitempty"`
	CloseButton           bool    `json:"closeButton,omitempty" yaml:"closeButton,omitempty"`
	RichColors            bool    `json:"richColors,omitempty" yaml:"richColors,omitempty"`
	Expand                bool    `json:"expand,omitempty" yaml:"expand,omitempty"`
	Invert                bool    `json:"invert,omitempty" yaml:"invert,omitempty"`
	Theme                 string  `json:"theme,omitempty" yaml:"theme,omitempty"`
	Dir                   string  `json:"dir,omitempty" yaml:"dir,omitempty"`
	PauseWhenPageIsHidden bool    `json:"pauseWhenPageIsHidden,omitempty" yaml:"pauseWhenPageIsHidden,omitempty"`
	Hotkey                string  `json:"hotkey,omitempty" yaml:"hotkey,omitempty"`
	ContainerLabel        string  `json:"containerLabel,omitempty" yaml:"containerLabel,omitempty"`

	ClassNames ClassNames `json:"classNames,omitempty" yaml:"classNames,omitempty"`

	// Icons is the path to a JSON icon manifest, relative to the config file.
	Icons string `json:"icons,omitempty" yaml:"icons,omitempty"`

	// Sanitizer is the markup policy: "ugc" (default) or "strict".
	Sanitizer string `json:"sanitizer,omitempty" yaml:"sanitizer,omitempty"`

	// Serve configures the preview server.
	Serve ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`

	configPath string

	// lines maps YAML keys ("serve.port") to their position, for errors.
	lines map[string]position
}

type position struct {
	line, column int
}

// ClassNames mirrors toaster.ClassNames.
type ClassNames struct {
	Toast        string            `json:"toast,omitempty" yaml:"toast,omitempty"`
	Title        string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Content      string            `json:"content,omitempty" yaml:"content,omitempty"`
	Icon         string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Loader       string            `json:"loader,omitempty" yaml:"loader,omitempty"`
	CloseButton  string            `json:"closeButton,omitempty" yaml:"closeButton,omitempty"`
	CancelButton string            `json:"cancelButton,omitempty" yaml:"cancelButton,omitempty"`
	ActionButton string            `json:"actionButton,omitempty" yaml:"actionButton,omitempty"`
	Category     map[string]string `json:"category,omitempty" yaml:"category,omitempty"`
}

// ServeConfig contains preview server settings.
type ServeConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the first config file found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("T001").
		WithDetail("No toaster.json or toaster.yaml found in " + dir).
		WithSuggestion("Create toaster.yaml or pass --config")
}

// LoadFile reads a config file. The format follows the extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("T001").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("T002").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, errors.New("T002").
				WithLocationFromError(path, err).
				Wrap(err)
		}
		if err := root.Decode(cfg); err != nil {
			return nil, errors.New("T002").
				WithLocationFromError(path, err).
				Wrap(err)
		}
		cfg.lines = make(map[string]position)
		indexKeys(&root, "", cfg.lines)
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("T002").
			Wrap(err).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// indexKeys records the position of every mapping value under prefix.
func indexKeys(n *yaml.Node, prefix string, out map[string]position) {
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			indexKeys(c, prefix, out)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			name := key.Value
			if prefix != "" {
				name = prefix + "." + name
			}
			out[name] = position{value.Line, value.Column}
			indexKeys(value, name, out)
		}
	}
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as YAML or JSON by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("T002").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("T040").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// BaseDir returns the directory containing the config file.
func (c *Config) BaseDir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields. Invalid values
// are left for Validate to report.
func (c *Config) applyDefaults() {
	if c.Position == "" {
		c.Position = string(toaster.DefaultPosition)
	}
	if c.VisibleToasts == 0 {
		c.VisibleToasts = toaster.DefaultVisibleToasts
	}
	if c.Gap == 0 {
		c.Gap = toaster.DefaultGap
	}
	if c.Duration == "" {
		c.Duration = toaster.DefaultDuration.String()
	}
	if c.Offset == "" {
		c.Offset = toaster.DefaultOffset
	}
	if c.Width == 0 {
		c.Width = toaster.DefaultWidth
	}
	if c.Theme == "" {
		c.Theme = toaster.ThemeLight
	}
	if c.Dir == "" {
		c.Dir = toaster.DirAuto
	}
	if c.Hotkey == "" {
		c.Hotkey = toaster.DefaultHotkey
	}
	if c.Sanitizer == "" {
		c.Sanitizer = "ugc"
	}
	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}
}

// locate attaches the position of key to err when the config came from
// YAML.
func (c *Config) locate(err *errors.ToastError, key string) *errors.ToastError {
	if p, ok := c.lines[key]; ok {
		err.WithLocation(c.configPath, p.line, p.column)
	}
	return err
}

// Validate checks the configuration and returns the first problem.
func (c *Config) Validate() error {
	if !toast.Position(c.Position).Valid() {
		return c.locate(errors.New("T003"), "position").
			WithSuggestion("Use one of " + joinPositions())
	}
	switch c.Theme {
	case toaster.ThemeLight, toaster.ThemeDark, toaster.ThemeSystem:
	default:
		return c.locate(errors.New("T004"), "theme").
			WithSuggestion("Use light, dark or system")
	}
	switch c.Dir {
	case toaster.DirLTR, toaster.DirRTL, toaster.DirAuto:
	default:
		return c.locate(errors.New("T005"), "dir").
			WithSuggestion("Use ltr, rtl or auto")
	}
	if _, err := toaster.ParseHotkey(c.Hotkey); err != nil {
		return c.locate(errors.New("T006"), "hotkey").Wrap(err).
			WithExample("hotkey: alt+KeyT")
	}
	if _, err := ParseDuration(c.Duration); err != nil {
		return c.locate(errors.New("T009"), "duration").Wrap(err).
			WithExample("duration: 4s")
	}
	for key, v := range map[string]float64{
		"visibleToasts": float64(c.VisibleToasts),
		"gap":           c.Gap,
		"width":         c.Width,
	} {
		if v < 0 {
			return c.locate(errors.New("T007"), key).
				WithDetail(key + " must not be negative, got " + strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return c.locate(errors.New("T007"), "serve.port").
			WithDetail("Port must be between 0 and 65535")
	}
	for name := range c.ClassNames.Category {
		if string(toast.ParseCategory(name)) != name {
			return c.locate(errors.New("T002"), "classNames.category."+name).
				WithDetail("Unknown category " + strconv.Quote(name))
		}
	}
	switch c.Sanitizer {
	case "ugc", "strict":
	default:
		return c.locate(errors.New("T002"), "sanitizer").
			WithDetail("Unknown sanitizer " + strconv.Quote(c.Sanitizer)).
			WithSuggestion("Use ugc or strict")
	}
	return nil
}

func joinPositions() string {
	names := make([]string, len(toast.Positions))
	for i, p := range toast.Positions {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// ParseDuration parses a Go duration or "infinite".
func ParseDuration(s string) (time.Duration, error) {
	if strings.EqualFold(s, Infinite) {
		return toast.Infinite, nil
	}
	return time.ParseDuration(s)
}

// IconsPath returns the absolute path of the icon manifest, or "".
func (c *Config) IconsPath() string {
	if c.Icons == "" || filepath.IsAbs(c.Icons) {
		return c.Icons
	}
	return filepath.Join(c.BaseDir(), c.Icons)
}

// Toaster converts the file config into a toaster.Config. Values that
// fail Validate are passed through and fall back at runtime.
func (c *Config) Toaster(logger *slog.Logger) (toaster.Config, error) {
	d, err := ParseDuration(c.Duration)
	if err != nil {
		d = 0
	}

	tc := toaster.Config{
		Position:              toast.Position(c.Position),
		VisibleToasts:         c.VisibleToasts,
		Gap:                   c.Gap,
		Duration:              d,
		Offset:                c.Offset,
		Width:                 c.Width,
		CloseButton:           c.CloseButton,
		RichColors:            c.RichColors,
		Expand:                c.Expand,
		Invert:                c.Invert,
		Theme:                 c.Theme,
		Dir:                   c.Dir,
		PauseWhenPageIsHidden: c.PauseWhenPageIsHidden,
		Hotkey:                c.Hotkey,
		ContainerLabel:        c.ContainerLabel,
		Logger:                logger,
		ClassNames: toaster.ClassNames{
			Toast:        c.ClassNames.Toast,
			Title:        c.ClassNames.Title,
			Description:  c.ClassNames.Description,
			Content:      c.ClassNames.Content,
			Icon:         c.ClassNames.Icon,
			Loader:       c.ClassNames.Loader,
			CloseButton:  c.ClassNames.CloseButton,
			CancelButton: c.ClassNames.CancelButton,
			ActionButton: c.ClassNames.ActionButton,
		},
	}
	if len(c.ClassNames.Category) > 0 {
		tc.ClassNames.Category = make(map[toast.Category]string, len(c.ClassNames.Category))
		for name, class := range c.ClassNames.Category {
			tc.ClassNames.Category[toast.ParseCategory(name)] = class
		}
	}

	if c.Sanitizer == "strict" {
		tc.Sanitizer = sanitize.Strict()
	}

	if path := c.IconsPath(); path != "" {
		m, err := assets.Load(path)
		if err != nil {
			return tc, c.locate(errors.New("T008"), "icons").Wrap(err)
		}
		tc.Icons = assets.NewProvider(m)
	}
	return tc, nil
}

// Address returns the preview server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Serve.Host, strconv.Itoa(c.Serve.Port))
}

// Exists reports whether dir contains a config file.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindRoot walks up from startDir to the first directory with a config
// file.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("T001").
				WithDetail("No toaster config found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest config above the working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}

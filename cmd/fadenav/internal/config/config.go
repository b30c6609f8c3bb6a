// Package config loads the demo configuration from fadenav.yaml or
// fadenav.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/fadenav/pkg/animation"
	"github.com/go-drift/fadenav/pkg/graphics"
	"github.com/go-drift/fadenav/pkg/navigation"
)

// FileNames are the config files looked up by LoadOptional, in order.
var FileNames = []string{"fadenav.yaml", "fadenav.yml", "fadenav.toml"}

// MaxLinks is the number of links a screen can bind to number keys.
const MaxLinks = 9

// Config is the on-disk demo configuration.
type Config struct {
	App        AppConfig        `yaml:"app" toml:"app"`
	Log        LogConfig        `yaml:"log" toml:"log"`
	Transition TransitionConfig `yaml:"transition" toml:"transition"`
	Background string           `yaml:"background,omitempty" toml:"background"`
	Screens    []Screen         `yaml:"screens" toml:"screens"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" toml:"level"`
	Format string `yaml:"format,omitempty" toml:"format"`
}

// TransitionConfig overrides the fade. Duration uses time.ParseDuration
// syntax; Curve is one of linear, ease, ease-in, ease-out, ease-in-out.
type TransitionConfig struct {
	Duration string `yaml:"duration,omitempty" toml:"duration"`
	Curve    string `yaml:"curve,omitempty" toml:"curve"`
}

// Screen is one declared route of the demo.
type Screen struct {
	Key     string   `yaml:"key" toml:"key"`
	Title   string   `yaml:"title,omitempty" toml:"title"`
	Body    string   `yaml:"body,omitempty" toml:"body"`
	Default bool     `yaml:"default,omitempty" toml:"default"`
	Links   []string `yaml:"links,omitempty" toml:"links"`
}

// Label returns the screen title, or its key when untitled.
func (s Screen) Label() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Key
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Path is the file the config came from; empty for the built-in demo.
	Path       string
	ModulePath string
	AppName    string
	LogLevel   string
	LogFormat  string
	Transition navigation.TransitionConfig
	CurveName  string
	Background graphics.Color
	Screens    []Screen
}

// DefaultRoute returns the key of the screen shown on mount.
func (r *Resolved) DefaultRoute() string {
	for _, s := range r.Screens {
		if s.Default {
			return s.Key
		}
	}
	return r.Screens[0].Key
}

// Screen returns the screen declared under key.
func (r *Resolved) Screen(key string) (Screen, bool) {
	for _, s := range r.Screens {
		if s.Key == key {
			return s, true
		}
	}
	return Screen{}, false
}

// Default returns the built-in demo used when no config file exists.
func Default() *Config {
	return &Config{
		Screens: []Screen{
			{Key: "home", Title: "Home", Body: "Welcome to fadenav.", Default: true, Links: []string{"settings", "about"}},
			{Key: "settings", Title: "Settings", Body: "Nothing to configure yet.", Links: []string{"home", "about"}},
			{Key: "about", Title: "About", Body: "A single-screen fade router.", Links: []string{"home"}},
		},
	}
}

// Load reads the config at path. The format follows the file extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse %s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return &cfg, nil
}

// LoadOptional reads the first of FileNames found in dir. It returns the
// built-in demo and an empty path when none exists.
func LoadOptional(dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", err
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

// Resolve loads the config at path, or from dir when path is empty, and
// resolves defaults.
func Resolve(dir, path string) (*Resolved, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, path, err = LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	resolved := &Resolved{
		Path:       path,
		ModulePath: modulePath(dir),
		LogLevel:   strings.TrimSpace(cfg.Log.Level),
		LogFormat:  strings.TrimSpace(cfg.Log.Format),
		Screens:    cfg.Screens,
	}

	resolved.AppName = strings.TrimSpace(cfg.App.Name)
	if resolved.AppName == "" {
		resolved.AppName = defaultAppName(resolved.ModulePath, dir)
	}

	resolved.Transition = navigation.DefaultTransitionConfig()
	resolved.CurveName = "ease"
	if d := strings.TrimSpace(cfg.Transition.Duration); d != "" {
		duration, err := time.ParseDuration(d)
		if err != nil || duration <= 0 {
			return nil, fmt.Errorf("invalid transition duration %q", d)
		}
		resolved.Transition.Duration = duration
	}
	if name := strings.TrimSpace(cfg.Transition.Curve); name != "" {
		curve, ok := animation.CurveByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown transition curve %q", name)
		}
		resolved.Transition.Curve = curve
		resolved.CurveName = strings.ToLower(name)
	}

	resolved.Background = graphics.ColorPaleCyan
	if bg := strings.TrimSpace(cfg.Background); bg != "" {
		color, err := graphics.ParseColor(bg)
		if err != nil {
			return nil, fmt.Errorf("invalid background: %w", err)
		}
		resolved.Background = color
	}

	return resolved, nil
}

// Validate checks that the screens form a usable route set.
func (c *Config) Validate() error {
	if len(c.Screens) == 0 {
		return fmt.Errorf("no screens declared")
	}
	seen := make(map[string]int, len(c.Screens))
	for i, s := range c.Screens {
		if strings.TrimSpace(s.Key) == "" {
			return fmt.Errorf("screen %d has no key", i)
		}
		if first, ok := seen[s.Key]; ok {
			return fmt.Errorf("screen %q declared more than once: screens %d and %d", s.Key, first, i)
		}
		seen[s.Key] = i
	}
	for _, s := range c.Screens {
		if len(s.Links) > MaxLinks {
			return fmt.Errorf("screen %q has %d links, at most %d are supported", s.Key, len(s.Links), MaxLinks)
		}
		for _, link := range s.Links {
			if _, ok := seen[link]; !ok {
				return fmt.Errorf("screen %q links to unknown screen %q", s.Key, link)
			}
		}
	}
	return nil
}

func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "fadenav"
	}
	return base
}

// Package config loads, validates and saves the hotkey and overlay settings.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"maven/dispatch"
	"maven/log"
	"maven/overlay"
)

const envConfig = "MAVEN_CONFIG"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Hotkeys         map[string]string `yaml:"hotkeys"`
	SequenceActions map[string]string `yaml:"sequence_actions"`
	Style           Style             `yaml:"style"`
}

type Style struct {
	FontColors      map[string]string `yaml:"font_colors"`
	BackgroundColor string            `yaml:"background_color"`
	FontSize        float32           `yaml:"font_size"`
	Separator       string            `yaml:"separator"`
	X               Position          `yaml:"x"`
	Y               int               `yaml:"y"`
}

// Position is the horizontal anchor: "center" or a pixel used as the
// overlay's centre.
type Position struct {
	Centered bool
	Pixel    int
}

var Center = Position{Centered: true}

func (p Position) String() string {
	if p.Centered {
		return "center"
	}
	return fmt.Sprint(p.Pixel)
}

func (p Position) MarshalYAML() (any, error) {
	if p.Centered {
		return "center", nil
	}
	return p.Pixel, nil
}

func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "center", "centre", "", "~", "null":
		*p = Center
		return nil
	}
	var px int
	if err := node.Decode(&px); err != nil {
		return fmt.Errorf("x must be \"center\" or an integer, got %q", node.Value)
	}
	*p = Position{Pixel: px}
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Hotkeys: map[string]string{
			"Sequence 1":     "f1",
			"Sequence 2":     "f2",
			"Sequence 3":     "f3",
			"Clear Sequence": "f4",
			"Toggle Overlay": "f5",
		},
		SequenceActions: map[string]string{
			"Sequence 1": "Left",
			"Sequence 2": "Top",
			"Sequence 3": "Right",
		},
		Style: Style{
			FontColors: map[string]string{
				"Sequence 1": "#ffffff",
				"Sequence 2": "#ffffff",
				"Sequence 3": "#ffffff",
			},
			BackgroundColor: "black",
			FontSize:        24,
			Separator:       " -> ",
			X:               Center,
			Y:               20,
		},
	}
}

// DefaultPath returns $MAVEN_CONFIG or <user config dir>/maven/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(envConfig); p != "" {
		return filepath.Abs(p)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "maven", "config.yaml"), nil
}

// partial mirrors the file: absent fields stay nil so they do not override
// defaults.
type partial struct {
	Hotkeys         map[string]string `yaml:"hotkeys"`
	SequenceActions map[string]string `yaml:"sequence_actions"`
	Style           *partialStyle     `yaml:"style"`
}

type partialStyle struct {
	FontColors      map[string]string `yaml:"font_colors"`
	BackgroundColor *string           `yaml:"background_color"`
	FontSize        *float32          `yaml:"font_size"`
	Separator       *string           `yaml:"separator"`
	X               *Position         `yaml:"x"`
	Y               *int              `yaml:"y"`
}

var knownKeys = map[string]bool{"hotkeys": true, "sequence_actions": true, "style": true}

// Load reads path and merges it one level deep over Default. A missing file
// yields the defaults; an unparseable file is logged and yields the
// defaults. The merged result is validated and a validation error returned.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	p, err := parse(raw)
	if err != nil {
		log.Warnf("config %s unreadable, using defaults: %v", path, err)
		return cfg, nil
	}
	merge(&cfg, p)
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parse(raw []byte) (partial, error) {
	var p partial
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &top); err != nil {
		return p, err
	}
	for k := range top {
		if !knownKeys[k] {
			log.Warnf("ignoring unknown config key %q", k)
		}
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, err
	}
	return p, nil
}

func merge(cfg *Config, p partial) {
	for k, v := range p.Hotkeys {
		cfg.Hotkeys[k] = v
	}
	for k, v := range p.SequenceActions {
		cfg.SequenceActions[k] = v
	}
	s := p.Style
	if s == nil {
		return
	}
	if s.FontColors != nil {
		cfg.Style.FontColors = s.FontColors
	}
	if s.BackgroundColor != nil {
		cfg.Style.BackgroundColor = *s.BackgroundColor
	}
	if s.FontSize != nil {
		cfg.Style.FontSize = *s.FontSize
	}
	if s.Separator != nil {
		cfg.Style.Separator = *s.Separator
	}
	if s.X != nil {
		cfg.Style.X = *s.X
	}
	if s.Y != nil {
		cfg.Style.Y = *s.Y
	}
}

// Validate checks that every hotkey parses without ambiguity, every colour
// parses and the font size is positive.
func Validate(cfg Config) error {
	if _, err := dispatch.Build(cfg.Hotkeys); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := overlay.ParseColor(cfg.Style.BackgroundColor); err != nil {
		return fmt.Errorf("%w: background_color: %w", ErrInvalid, err)
	}
	for action, c := range cfg.Style.FontColors {
		if _, err := overlay.ParseColor(c); err != nil {
			return fmt.Errorf("%w: font colour for %q: %w", ErrInvalid, action, err)
		}
	}
	if cfg.Style.FontSize <= 0 {
		return fmt.Errorf("%w: font_size must be positive", ErrInvalid)
	}
	return nil
}

// Save writes cfg to path atomically, creating the directory.
func Save(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: marshal: %w", err)
	}
	return atomicWrite(path, raw)
}

func atomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save config: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("save config: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("save config: write: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("save config: sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("save config: close: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("save config: rename: %w", err)
	}
	return nil
}

// OverlayStyle resolves the style for the renderer. Call after Validate;
// unparseable colours fall back to the renderer defaults.
func (c Config) OverlayStyle() overlay.Style {
	colors := make(map[string]color.Color, len(c.Style.FontColors))
	for action, s := range c.Style.FontColors {
		if col, err := overlay.ParseColor(s); err == nil {
			colors[action] = col
		}
	}
	bg, err := overlay.ParseColor(c.Style.BackgroundColor)
	if err != nil {
		bg = color.Black
	}
	anchor := overlay.Centered
	if !c.Style.X.Centered {
		anchor = overlay.Anchor{X: c.Style.X.Pixel}
	}
	return overlay.Style{
		FontColors: colors,
		Background: bg,
		FontSize:   c.Style.FontSize,
		Separator:  c.Style.Separator,
		Anchor:     anchor,
		Y:          c.Style.Y,
	}
}

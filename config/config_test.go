package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"maven/dispatch"
	"maven/overlay"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hotkeys["Toggle Overlay"] != "f5" || !cfg.Style.X.Centered {
		t.Fatalf("not defaults: %+v", cfg)
	}
}

func TestLoadUnparseableUsesDefaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), "hotkeys: [unterminated")
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hotkeys["Sequence 1"] != "f1" {
		t.Fatalf("got %+v", cfg.Hotkeys)
	}
}

func TestLoadMergesOneLevelDeep(t *testing.T) {
	p := writeFile(t, t.TempDir(), `
hotkeys:
  Sequence 1: ctrl+f1
  Sequence 4: f6
sequence_actions:
  Sequence 4: Bottom
style:
  font_colors:
    Sequence 4: red
  x: 640
unknown_key: 1
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hotkeys["Sequence 1"] != "ctrl+f1" || cfg.Hotkeys["Sequence 2"] != "f2" || cfg.Hotkeys["Sequence 4"] != "f6" {
		t.Errorf("hotkeys = %v", cfg.Hotkeys)
	}
	if cfg.SequenceActions["Sequence 1"] != "Left" || cfg.SequenceActions["Sequence 4"] != "Bottom" {
		t.Errorf("sequence_actions = %v", cfg.SequenceActions)
	}
	if len(cfg.Style.FontColors) != 1 || cfg.Style.FontColors["Sequence 4"] != "red" {
		t.Errorf("font_colors not replaced: %v", cfg.Style.FontColors)
	}
	if cfg.Style.X.Centered || cfg.Style.X.Pixel != 640 {
		t.Errorf("x = %v", cfg.Style.X)
	}
	if cfg.Style.Y != 20 || cfg.Style.FontSize != 24 || cfg.Style.Separator != " -> " {
		t.Errorf("style defaults lost: %+v", cfg.Style)
	}
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), `{"style": {"x": "center", "y": 55, "background_color": "#202020"}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Style.X.Centered || cfg.Style.Y != 55 || cfg.Style.BackgroundColor != "#202020" {
		t.Fatalf("style = %+v", cfg.Style)
	}
}

func TestLoadAmbiguous(t *testing.T) {
	p := writeFile(t, t.TempDir(), "hotkeys:\n  Sequence 2: f1\n")
	_, err := Load(p)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	var amb *dispatch.AmbiguousBindingError
	if !errors.As(err, &amb) {
		t.Fatalf("err = %v, want AmbiguousBindingError", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad hotkey", func(c *Config) { c.Hotkeys["Sequence 1"] = "ctrl+" }},
		{"meta", func(c *Config) { c.Hotkeys["Sequence 1"] = "win+f1" }},
		{"bad background", func(c *Config) { c.Style.BackgroundColor = "nope" }},
		{"bad font colour", func(c *Config) { c.Style.FontColors["Sequence 1"] = "#zz" }},
		{"font size", func(c *Config) { c.Style.FontSize = 0 }},
	}
	if err := Validate(Default()); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := Validate(cfg); !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Style.X = Position{Pixel: 300}
	cfg.Hotkeys["Sequence 3"] = "alt+f3"
	if err := Save(p, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Style.X != cfg.Style.X || got.Hotkeys["Sequence 3"] != "alt+f3" {
		t.Fatalf("got %+v", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(p))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Style.FontSize = -1
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(p, cfg); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatal("invalid config written")
	}
}

func TestDefaultPathEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envConfig, filepath.Join(dir, "c.yaml"))
	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join(dir, "c.yaml") {
		t.Fatalf("got %s", p)
	}
}

func TestOverlayStyle(t *testing.T) {
	cfg := Default()
	cfg.Style.X = Position{Pixel: 100}
	s := cfg.OverlayStyle()
	if s.Anchor.Centered || s.Anchor.X != 100 {
		t.Fatalf("anchor = %+v", s.Anchor)
	}
	if s.FontColors["Sequence 1"] != overlay.DefaultFontColor {
		t.Fatalf("colour = %v", s.FontColors["Sequence 1"])
	}
	if s.FontSize != 24 || s.Y != 20 {
		t.Fatalf("style = %+v", s)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	if err := Watch(ctx, p, func() { changed <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	if err := Save(p, Default()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
		t.Fatal("notified for an unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}

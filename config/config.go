// Package config loads the animation's runtime settings from an
// optional TOML file. Every field has a default, so running with no
// config file at all is supported.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Canvas holds the drawing surface settings
type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Layers int `toml:"layers"`
}

// Music holds the audio track and beat grid settings
type Music struct {
	File            string  `toml:"file"`
	BPM             float64 `toml:"bpm"`
	BeatsPerMeasure int     `toml:"beats_per_measure"`
	StartOffset     float64 `toml:"start_offset"` // Seconds into the track
	AnimationBPM    float64 `toml:"animation_bpm"`
	BeatOffset      int     `toml:"beat_offset"`
}

// Display holds the frame loop and terminal output settings
type Display struct {
	FPS       int    `toml:"fps"`
	ColorMode string `toml:"color_mode"` // "auto", "256" or "truecolor"
	Debug     bool   `toml:"debug"`
}

// Config is the full runtime configuration
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Music   Music   `toml:"music"`
	Display Display `toml:"display"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Canvas: Canvas{
			Width:  40,
			Height: 24,
			Layers: 5,
		},
		Music: Music{
			BPM:             120,
			BeatsPerMeasure: 4,
		},
		Display: Display{
			FPS:       30,
			ColorMode: "auto",
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the runtime cannot use
func (c *Config) Validate() error {
	if c.Canvas.Width < 1 || c.Canvas.Height < 1 {
		return fmt.Errorf("canvas size %dx%d is invalid", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Layers < 1 {
		return fmt.Errorf("layer count %d is invalid", c.Canvas.Layers)
	}
	if c.Music.BPM <= 0 {
		return fmt.Errorf("bpm %v is invalid", c.Music.BPM)
	}
	if c.Music.BeatsPerMeasure < 1 {
		return fmt.Errorf("beats_per_measure %d is invalid", c.Music.BeatsPerMeasure)
	}
	if c.Music.StartOffset < 0 {
		return fmt.Errorf("start_offset %v is invalid", c.Music.StartOffset)
	}
	if c.Display.FPS < 1 {
		return fmt.Errorf("fps %d is invalid", c.Display.FPS)
	}
	switch c.Display.ColorMode {
	case "auto", "256", "truecolor":
	default:
		return fmt.Errorf("color_mode %q is not one of auto, 256, truecolor", c.Display.ColorMode)
	}
	return nil
}

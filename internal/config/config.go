// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-xr/internal/engine/model"
	"github.com/Faultbox/midgard-xr/internal/logger"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Samples    int  `yaml:"samples"`

	// Sun placement in degrees.
	SunAzimuth   float32 `yaml:"sun_azimuth"`
	SunElevation float32 `yaml:"sun_elevation"`

	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// SceneConfig selects the scene and how the simulated hand behaves in it.
type SceneConfig struct {
	File      string   `yaml:"file"`
	HandSpeed float32  `yaml:"hand_speed"` // meters per second
	Layers    []string `yaml:"layers"`     // render layers shown by the viewer
	// PushDistance is how far a touched object is moved along +X.
	PushDistance float32 `yaml:"push_distance"`
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	SearchDirs []string `yaml:"search_dirs"`
	Preload    []string `yaml:"preload"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:        1280,
			Height:       720,
			VSync:        true,
			Samples:      4,
			SunAzimuth:   35,
			SunElevation: 55,

			ScreenshotFormat: "png",
		},
		Scene: SceneConfig{
			File:         "scene.yaml",
			HandSpeed:    1.5,
			Layers:       []string{"all"},
			PushDistance: 1,
		},
		Assets: AssetsConfig{
			SearchDirs: []string{"assets"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// VisibleLayers returns the render layer mask named by Scene.Layers.
func (c *Config) VisibleLayers() (model.Layer, error) {
	if len(c.Scene.Layers) == 0 {
		return model.LayerAll, nil
	}
	return model.ParseLayers(c.Scene.Layers)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Samples < 0 {
		errs = append(errs, fmt.Errorf("graphics: negative samples %d", c.Graphics.Samples))
	}
	switch c.Graphics.ScreenshotFormat {
	case "", "png", "bmp":
	default:
		errs = append(errs, fmt.Errorf("graphics: unknown screenshot format %q", c.Graphics.ScreenshotFormat))
	}
	if c.Scene.HandSpeed < 0 {
		errs = append(errs, fmt.Errorf("scene: negative hand speed %v", c.Scene.HandSpeed))
	}
	if _, err := c.VisibleLayers(); err != nil {
		errs = append(errs, fmt.Errorf("scene: %w", err))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}
	return errors.Join(errs...)
}

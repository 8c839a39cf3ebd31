// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/icosphere/pkg/icosphere"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Color is an RGB triple with components in [0, 1].
type Color [3]float32

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Sphere      SphereConfig     `yaml:"sphere"`
	Camera      CameraConfig     `yaml:"camera"`
	Logging     LoggingConfig    `yaml:"logging"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`

	// path is the file Load read from, reused by Save.
	path string
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	Fullscreen bool  `yaml:"fullscreen"`
	VSync      bool  `yaml:"vsync"`
	FPSLimit   int   `yaml:"fps_limit"`
	ClearColor Color `yaml:"clear_color"` // background behind the sphere
}

// SphereConfig holds mesh and shading settings.
type SphereConfig struct {
	Subdivisions   int     `yaml:"subdivisions"`
	ObjectColor    Color   `yaml:"object_color"`
	LightColor     Color   `yaml:"light_color"`
	LightDirection Color   `yaml:"light_direction"` // direction the light travels
	SpinSpeed      float32 `yaml:"spin_speed"`      // radians per second
	Wireframe      bool    `yaml:"wireframe"`
}

// CameraConfig holds the view setup.
type CameraConfig struct {
	Distance   float32 `yaml:"distance"`
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScreenshotConfig holds where captures and exports are written.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1000,
			Height:     700,
			VSync:      true,
			ClearColor: Color{0.2, 0.3, 0.3},
		},
		Sphere: SphereConfig{
			Subdivisions:   3,
			ObjectColor:    Color{0, 0, 1},
			LightColor:     Color{1, 1, 1},
			LightDirection: Color{1, 1, 0},
			SpinSpeed:      0.5,
		},
		Camera: CameraConfig{
			Distance:   7,
			FOVDegrees: 45,
			Near:       0.1,
			Far:        100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
	}
}

// Path returns the file this config was loaded from or last saved to, or
// an empty string.
func (c *Config) Path() string {
	return c.path
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if err := icosphere.CheckLevel(c.Sphere.Subdivisions); err != nil {
		return fmt.Errorf("%w: sphere.subdivisions: %w", ErrInvalidConfig, err)
	}
	for name, col := range map[string]Color{
		"object_color": c.Sphere.ObjectColor,
		"light_color":  c.Sphere.LightColor,
		"clear_color":  c.Graphics.ClearColor,
	} {
		for _, v := range col {
			if v < 0 || v > 1 {
				return fmt.Errorf("%w: %s component %v outside [0, 1]", ErrInvalidConfig, name, v)
			}
		}
	}
	if c.Sphere.LightDirection == (Color{}) {
		return fmt.Errorf("%w: sphere.light_direction is zero", ErrInvalidConfig)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip range %v..%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("%w: camera.fov_degrees %v", ErrInvalidConfig, c.Camera.FOVDegrees)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("%w: camera.distance %v", ErrInvalidConfig, c.Camera.Distance)
	}
	return nil
}

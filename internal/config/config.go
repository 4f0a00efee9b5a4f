// Package config handles viewer and terrain configuration loading.
package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/seamless-terrain/internal/engine/terrain"
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

// Config holds all application settings.
type Config struct {
	Terrain   terrain.Settings `yaml:"terrain"`
	Placement PlacementConfig  `yaml:"placement"`
	Graphics  GraphicsConfig   `yaml:"graphics"`
	Viewer    ViewerConfig     `yaml:"viewer"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// PlacementConfig puts the terrain's local space into the world.
type PlacementConfig struct {
	Origin math.Vec3 `yaml:"origin"`
	Yaw    float32   `yaml:"yaw"` // degrees about +Y
}

// Transform returns the local-to-world matrix: rotate, then move to Origin.
func (p PlacementConfig) Transform() math.Mat4 {
	return math.Translate(p.Origin.X, p.Origin.Y, p.Origin.Z).
		Mul(math.RotateY(p.Yaw * gomath.Pi / 180))
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Wireframe  bool `yaml:"wireframe"`
}

// ViewerConfig drives the demo camera orbiting the terrain.
type ViewerConfig struct {
	OrbitSpeed float32 `yaml:"orbit_speed"` // degrees per second
	Height     float32 `yaml:"height"`      // camera height above the terrain plane
	Radius     float32 `yaml:"radius"`      // fraction of the terrain half-size
	FOV        float32 `yaml:"fov"`         // vertical, degrees
	ShowStats  bool    `yaml:"show_stats"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

var (
	ErrInvalidWindowSize = errors.New("invalid window size")
	ErrInvalidFOV        = errors.New("field of view must be in (0, 180)")
	ErrInvalidLogLevel   = errors.New("unknown log level")
	ErrInvalidPlacement  = errors.New("placement must be finite")
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: terrain.DefaultSettings(),
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			OrbitSpeed: 10,
			Height:     40,
			Radius:     0.6,
			FOV:        60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the whole configuration, terrain settings included.
func (c *Config) Validate() error {
	if err := c.Terrain.Validate(); err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	for _, v := range [...]float32{c.Placement.Origin.X, c.Placement.Origin.Y, c.Placement.Origin.Z, c.Placement.Yaw} {
		if gomath.IsInf(float64(v), 0) || gomath.IsNaN(float64(v)) {
			return fmt.Errorf("placement: %w: origin %v, yaw %v", ErrInvalidPlacement, c.Placement.Origin, c.Placement.Yaw)
		}
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: %w: %dx%d", ErrInvalidWindowSize, c.Graphics.Width, c.Graphics.Height)
	}
	if !(c.Viewer.FOV > 0 && c.Viewer.FOV < 180) {
		return fmt.Errorf("viewer: %w: %v", ErrInvalidFOV, c.Viewer.FOV)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: %w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	return nil
}

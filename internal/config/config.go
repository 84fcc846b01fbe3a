// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Camera   CameraConfig   `yaml:"camera"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Remote   RemoteConfig   `yaml:"remote"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Background string  `yaml:"background"` // Hex clear color
	FOV        float32 `yaml:"fov"`        // Vertical field of view, degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// ViewerConfig holds model and interaction settings.
type ViewerConfig struct {
	ModelPath     string   `yaml:"model_path"`
	DefaultColor  string   `yaml:"default_color"`
	Swatches      []string `yaml:"swatches"`
	RotationSpeed float32  `yaml:"rotation_speed"` // Radians per frame
	AnimationStep float32  `yaml:"animation_step"` // Seconds per frame
}

// CameraConfig holds orbit control settings.
type CameraConfig struct {
	Start       [3]float32 `yaml:"start"`
	Target      [3]float32 `yaml:"target"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	Damping     float32    `yaml:"damping"`
}

// SnapshotConfig holds frame capture settings.
type SnapshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "webp" or "png"
}

// RemoteConfig holds the websocket control bridge settings.
type RemoteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the studio setup of the showroom page.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Background: "#f5f5f5",
			FOV:        45,
			Near:       0.1,
			Far:        1000,
		},
		Viewer: ViewerConfig{
			ModelPath:     "a110_gt4.glb",
			DefaultColor:  "#005eb8",
			Swatches:      []string{"#005eb8", "#ffffff", "#1a1a1a", "#c8102e", "#8a8d8f", "#f6be00"},
			RotationSpeed: 0.005,
			AnimationStep: 0.016,
		},
		Camera: CameraConfig{
			Start:       [3]float32{5, 2, 5},
			Target:      [3]float32{0, 0.5, 0},
			MinDistance: 3,
			MaxDistance: 15,
			Damping:     0.05,
		},
		Snapshot: SnapshotConfig{
			Dir:    "snapshots",
			Format: "webp",
		},
		Remote: RemoteConfig{
			Enabled: false,
			Listen:  "127.0.0.1:8765",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		errs = append(errs, fmt.Errorf("graphics: near %v / far %v out of order", c.Graphics.Near, c.Graphics.Far))
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		errs = append(errs, fmt.Errorf("camera: distance range [%v, %v] is invalid", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.Damping < 0 || c.Camera.Damping > 1 {
		errs = append(errs, fmt.Errorf("camera: damping %v outside [0, 1]", c.Camera.Damping))
	}
	if c.Viewer.AnimationStep < 0 {
		errs = append(errs, fmt.Errorf("viewer: negative animation step %v", c.Viewer.AnimationStep))
	}
	switch c.Snapshot.Format {
	case "webp", "png":
	default:
		errs = append(errs, fmt.Errorf("snapshot: unknown format %q", c.Snapshot.Format))
	}
	return errors.Join(errs...)
}

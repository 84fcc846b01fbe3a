package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.FOV != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Graphics.FOV)
	}

	if cfg.Viewer.DefaultColor != "#005eb8" {
		t.Errorf("expected default color #005eb8, got %s", cfg.Viewer.DefaultColor)
	}
	if cfg.Viewer.RotationSpeed != 0.005 {
		t.Errorf("expected rotation speed 0.005, got %v", cfg.Viewer.RotationSpeed)
	}
	if cfg.Viewer.AnimationStep != 0.016 {
		t.Errorf("expected animation step 0.016, got %v", cfg.Viewer.AnimationStep)
	}
	if len(cfg.Viewer.Swatches) == 0 || cfg.Viewer.Swatches[0] != cfg.Viewer.DefaultColor {
		t.Errorf("expected the default color as first swatch, got %v", cfg.Viewer.Swatches)
	}

	if cfg.Camera.Start != [3]float32{5, 2, 5} {
		t.Errorf("expected camera start (5,2,5), got %v", cfg.Camera.Start)
	}
	if cfg.Camera.Target != [3]float32{0, 0.5, 0} {
		t.Errorf("expected camera target (0,0.5,0), got %v", cfg.Camera.Target)
	}
	if cfg.Camera.MinDistance != 3 || cfg.Camera.MaxDistance != 15 {
		t.Errorf("expected distance range [3,15], got [%v,%v]", cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}

	if cfg.Remote.Enabled {
		t.Error("expected remote bridge to be disabled by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  background: "#202020"

viewer:
  model_path: "models/alpine.glb"
  default_color: "#c8102e"
  swatches: ["#c8102e", "#ffffff"]
  rotation_speed: 0.01

camera:
  start: [0, 2, 8]
  min_distance: 2
  max_distance: 20

snapshot:
  dir: "/tmp/shots"
  format: "png"

remote:
  enabled: true
  listen: ":9000"

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.Background != "#202020" {
		t.Errorf("expected background #202020, got %s", cfg.Graphics.Background)
	}
	// Untouched keys keep their defaults.
	if cfg.Graphics.FOV != 45 {
		t.Errorf("expected fov to stay 45, got %v", cfg.Graphics.FOV)
	}

	if cfg.Viewer.ModelPath != "models/alpine.glb" {
		t.Errorf("expected model path models/alpine.glb, got %s", cfg.Viewer.ModelPath)
	}
	if cfg.Viewer.DefaultColor != "#c8102e" {
		t.Errorf("expected default color #c8102e, got %s", cfg.Viewer.DefaultColor)
	}
	if len(cfg.Viewer.Swatches) != 2 {
		t.Errorf("expected 2 swatches, got %v", cfg.Viewer.Swatches)
	}
	if cfg.Viewer.AnimationStep != 0.016 {
		t.Errorf("expected animation step to stay 0.016, got %v", cfg.Viewer.AnimationStep)
	}

	if cfg.Camera.Start != [3]float32{0, 2, 8} {
		t.Errorf("expected camera start (0,2,8), got %v", cfg.Camera.Start)
	}
	if cfg.Camera.MaxDistance != 20 {
		t.Errorf("expected max distance 20, got %v", cfg.Camera.MaxDistance)
	}

	if cfg.Snapshot.Format != "png" {
		t.Errorf("expected snapshot format png, got %s", cfg.Snapshot.Format)
	}
	if !cfg.Remote.Enabled || cfg.Remote.Listen != ":9000" {
		t.Errorf("expected remote enabled on :9000, got %+v", cfg.Remote)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "graphics: size"},
		{"far before near", func(c *Config) { c.Graphics.Far = 0.01 }, "near"},
		{"inverted distances", func(c *Config) { c.Camera.MinDistance = 20 }, "distance range"},
		{"damping above one", func(c *Config) { c.Camera.Damping = 1.5 }, "damping"},
		{"negative step", func(c *Config) { c.Viewer.AnimationStep = -1 }, "animation step"},
		{"unknown snapshot format", func(c *Config) { c.Snapshot.Format = "gif" }, "snapshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Viewer.DefaultColor = "#ffffff"
	cfg.Camera.MaxDistance = 12
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Viewer.DefaultColor != "#ffffff" {
		t.Errorf("expected saved color #ffffff, got %s", loaded.Viewer.DefaultColor)
	}
	if loaded.Camera.MaxDistance != 12 {
		t.Errorf("expected saved max distance 12, got %v", loaded.Camera.MaxDistance)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model and color flags",
			setup: func() { *flagModel = "other.glb"; *flagColor = "#000000" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Viewer.ModelPath != "other.glb" {
					t.Errorf("expected model other.glb, got %s", cfg.Viewer.ModelPath)
				}
				if cfg.Viewer.DefaultColor != "#000000" {
					t.Errorf("expected color #000000, got %s", cfg.Viewer.DefaultColor)
				}
			},
			teardown: func() { *flagModel = ""; *flagColor = "" },
		},
		{
			name:  "remote flag",
			setup: func() { *flagRemote = ":7000" },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Remote.Enabled || cfg.Remote.Listen != ":7000" {
					t.Errorf("expected remote enabled on :7000, got %+v", cfg.Remote)
				}
			},
			teardown: func() { *flagRemote = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  damping: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject damping 3")
	}
}

func TestLoadFileRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("viewr:\n  default_color: \"#ffffff\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected unknown section to be rejected")
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if cfg.Viewer.DefaultColor != Default().Viewer.DefaultColor {
		t.Errorf("expected defaults, got color %s", cfg.Viewer.DefaultColor)
	}

	if cfg, err = LoadFile(""); err != nil || cfg.Graphics.FOV != 45 {
		t.Errorf("expected defaults for empty path, got %v %v", cfg, err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("graphics:\n  height: 640\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Height != 640 {
		t.Errorf("expected height 640 from %s, got %d", EnvConfig, cfg.Graphics.Height)
	}
}

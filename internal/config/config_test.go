package config

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Faultbox/seamless-terrain/internal/engine/terrain"
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if len(cfg.Terrain.Resolutions) != 3 || cfg.Terrain.Resolutions[2] != 18 {
		t.Errorf("expected resolutions [3 8 18], got %v", cfg.Terrain.Resolutions)
	}
	if cfg.Terrain.Precision != 1 {
		t.Errorf("expected precision 1, got %f", cfg.Terrain.Precision)
	}
	if cfg.Terrain.MaxInstancesPerMesh != terrain.DefaultMaxInstances {
		t.Errorf("expected instance cap %d, got %d", terrain.DefaultMaxInstances, cfg.Terrain.MaxInstancesPerMesh)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  resolutions: [2, 5, 9, 17]
  precision: 2.5
  size: {x: 2048, y: 1024}
  max_depth: 10
  stitching: true

graphics:
  width: 1920
  height: 1080
  wireframe: true

viewer:
  orbit_speed: 5
  fov: 75

logging:
  level: "debug"
  log_file: "terrain.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Terrain.Resolutions) != 4 || cfg.Terrain.Resolutions[3] != 17 {
		t.Errorf("expected resolutions [2 5 9 17], got %v", cfg.Terrain.Resolutions)
	}
	if cfg.Terrain.Precision != 2.5 {
		t.Errorf("expected precision 2.5, got %f", cfg.Terrain.Precision)
	}
	if cfg.Terrain.Size.X != 2048 || cfg.Terrain.Size.Y != 1024 {
		t.Errorf("expected size 2048x1024, got %vx%v", cfg.Terrain.Size.X, cfg.Terrain.Size.Y)
	}
	if cfg.Terrain.MaxDepth != 10 {
		t.Errorf("expected max depth 10, got %d", cfg.Terrain.MaxDepth)
	}
	if !cfg.Terrain.Stitching {
		t.Error("expected stitching to be true")
	}
	// Fields absent from the file keep their defaults.
	if cfg.Terrain.MaxInstancesPerMesh != terrain.DefaultMaxInstances {
		t.Errorf("expected default instance cap, got %d", cfg.Terrain.MaxInstancesPerMesh)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Wireframe {
		t.Error("expected wireframe to be true")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync default to survive")
	}

	if cfg.Viewer.OrbitSpeed != 5 || cfg.Viewer.FOV != 75 {
		t.Errorf("expected orbit speed 5 and fov 75, got %v and %v", cfg.Viewer.OrbitSpeed, cfg.Viewer.FOV)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("expected log file 'terrain.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  max_depth: not a number
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

func TestLoadFromRejectsInvalidTerrain(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  resolutions: [8, 3]\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFrom(configPath)
	if !errors.Is(err, terrain.ErrUnsortedResolutions) {
		t.Errorf("expected ErrUnsortedResolutions, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, ErrInvalidWindowSize},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }, ErrInvalidWindowSize},
		{"flat fov", func(c *Config) { c.Viewer.FOV = 0 }, ErrInvalidFOV},
		{"wide fov", func(c *Config) { c.Viewer.FOV = 180 }, ErrInvalidFOV},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"terrain depth", func(c *Config) { c.Terrain.MaxDepth = 99 }, terrain.ErrInvalidDepth},
		{"terrain infinite size", func(c *Config) { c.Terrain.Size.X = float32(gomath.Inf(1)) }, terrain.ErrInvalidSize},
		{"infinite origin", func(c *Config) { c.Placement.Origin.Z = float32(gomath.Inf(-1)) }, ErrInvalidPlacement},
		{"NaN yaw", func(c *Config) { c.Placement.Yaw = float32(gomath.NaN()) }, ErrInvalidPlacement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPlacementTransform(t *testing.T) {
	p := PlacementConfig{Origin: math.Vec3{X: 100, Y: 5, Z: -20}, Yaw: 90}
	got := p.Transform().TransformPoint(math.Vec3{X: 10})

	// +X turns onto -Z, then moves to the origin.
	want := math.Vec3{X: 100, Y: 5, Z: -30}
	if got.Distance(want) > 1e-3 {
		t.Errorf("expected %v, got %v", want, got)
	}

	if id := (PlacementConfig{}).Transform(); id != math.Identity() {
		t.Errorf("expected zero placement to be identity, got %v", id)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Terrain.Resolutions = []int{4, 16}
	cfg.Terrain.Precision = 3
	cfg.Placement.Yaw = 30
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if len(loaded.Terrain.Resolutions) != 2 || loaded.Terrain.Resolutions[1] != 16 {
		t.Errorf("expected resolutions [4 16], got %v", loaded.Terrain.Resolutions)
	}
	if loaded.Terrain.Precision != 3 {
		t.Errorf("expected precision 3, got %v", loaded.Terrain.Precision)
	}
	if loaded.Placement.Yaw != 30 {
		t.Errorf("expected yaw 30, got %v", loaded.Placement.Yaw)
	}
}

func TestSaveWritesConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Terrain.MaxDepth = 6
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(filepath.Join(ConfigDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Terrain.MaxDepth != 6 {
		t.Errorf("expected max depth 6, got %d", loaded.Terrain.MaxDepth)
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
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
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
				if !cfg.Viewer.ShowStats {
					t.Error("expected show_stats to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "terrain flags",
			setup: func() {
				*flagPrecision = 4
				*flagDepth = 12
				*flagStitching = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Precision != 4 {
					t.Errorf("expected precision 4, got %v", cfg.Terrain.Precision)
				}
				if cfg.Terrain.MaxDepth != 12 {
					t.Errorf("expected depth 12, got %d", cfg.Terrain.MaxDepth)
				}
				if !cfg.Terrain.Stitching {
					t.Error("expected stitching with stitching flag")
				}
			},
			teardown: func() {
				*flagPrecision = 0
				*flagDepth = 0
				*flagStitching = false
			},
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
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
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
terrain:
  precision: 2
  max_depth: 6
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagDepth = 9
	defer func() {
		*flagConfig = ""
		*flagDepth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Depth from flag, precision from file
	if cfg.Terrain.MaxDepth != 9 {
		t.Errorf("expected depth 9 from flag, got %d", cfg.Terrain.MaxDepth)
	}
	if cfg.Terrain.Precision != 2 {
		t.Errorf("expected precision 2 from file, got %v", cfg.Terrain.Precision)
	}
}

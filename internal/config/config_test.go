package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-rt/internal/engine/lighting"
	"github.com/Faultbox/midgard-rt/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Render defaults
	if cfg.Render.Width != 320 {
		t.Errorf("expected width 320, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 240 {
		t.Errorf("expected height 240, got %d", cfg.Render.Height)
	}
	if cfg.Render.MaxDepth != 5 {
		t.Errorf("expected max depth 5, got %d", cfg.Render.MaxDepth)
	}
	if cfg.Render.Accelerator != AcceleratorKDTree {
		t.Errorf("expected kdtree accelerator, got %s", cfg.Render.Accelerator)
	}

	// KD-tree defaults
	if cfg.KDTree.MaxDepth != 16 || cfg.KDTree.LeafSize != 5 || cfg.KDTree.EmptyRatio != 0.25 {
		t.Errorf("unexpected kdtree defaults: %+v", cfg.KDTree)
	}

	if !cfg.Scene.Normalize {
		t.Error("expected normalize to be true by default")
	}
	if len(cfg.Lights) != 2 {
		t.Errorf("expected 2 default lights, got %d", len(cfg.Lights))
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
scene:
  path: "models/teapot.obj"
  normalize: false

render:
  width: 640
  height: 480
  max_depth: 3
  accelerator: brute

camera:
  eye: [1, 2, 3]
  center: [0, 0.5, 0]
  up: [0, 1, 0]
  fov_deg: 45

lights:
  - kind: ambient
    value: [1, 0.9, 0.8, 0.5]

kdtree:
  max_depth: 12
  leaf_size: 8

output:
  path: "out.bmp"
  format: bmp

logging:
  level: "debug"
  log_file: "render.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Scene.Path != "models/teapot.obj" || cfg.Scene.Normalize {
		t.Errorf("unexpected scene config: %+v", cfg.Scene)
	}
	if cfg.Render.Width != 640 || cfg.Render.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.MaxDepth != 3 {
		t.Errorf("expected max depth 3, got %d", cfg.Render.MaxDepth)
	}
	if cfg.Render.Accelerator != AcceleratorBrute {
		t.Errorf("expected brute accelerator, got %s", cfg.Render.Accelerator)
	}
	if cfg.Camera.Eye != [3]float32{1, 2, 3} || cfg.Camera.FOVDeg != 45 {
		t.Errorf("unexpected camera config: %+v", cfg.Camera)
	}

	// The file's light list replaces the defaults.
	if len(cfg.Lights) != 1 || cfg.Lights[0].Value != [4]float32{1, 0.9, 0.8, 0.5} {
		t.Errorf("unexpected lights: %+v", cfg.Lights)
	}

	// Keys missing from the file keep their defaults.
	if cfg.KDTree.MaxDepth != 12 || cfg.KDTree.LeafSize != 8 || cfg.KDTree.EmptyRatio != 0.25 {
		t.Errorf("unexpected kdtree config: %+v", cfg.KDTree)
	}
	if cfg.Window.Scale != 2 {
		t.Errorf("expected default window scale 2, got %d", cfg.Window.Scale)
	}

	if cfg.Output.Path != "out.bmp" || cfg.Output.Format != FormatBMP {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "render.log" {
		t.Errorf("expected log file 'render.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
render:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render size"},
		{"negative depth", func(c *Config) { c.Render.MaxDepth = -1 }, "max_depth"},
		{"unknown accelerator", func(c *Config) { c.Render.Accelerator = "bvh" }, "accelerator"},
		{"unknown format", func(c *Config) { c.Output.Format = "gif" }, "output format"},
		{"flat fov", func(c *Config) { c.Camera.FOVDeg = 180 }, "fov_deg"},
		{"eye at center", func(c *Config) { c.Camera.Eye = c.Camera.Center }, "eye and center"},
		{"unknown light", func(c *Config) { c.Lights[0].Kind = "spot" }, "light 0"},
		{"zero scale", func(c *Config) { c.Window.Scale = 0 }, "window scale"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "trace" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	t.Run("depth zero is allowed", func(t *testing.T) {
		cfg := Default()
		cfg.Render.MaxDepth = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestNewCameraAndLights(t *testing.T) {
	cfg := Default()
	cfg.Render.Width = 100
	cfg.Render.Height = 50
	cfg.Camera.FOVDeg = 90

	cam := cfg.NewCamera()
	if cam.Width != 100 || cam.Height != 50 {
		t.Errorf("expected camera 100x50, got %dx%d", cam.Width, cam.Height)
	}
	if !cam.Dir.ApproxEqual(math.Vec3{Z: -1}, 1e-6) {
		t.Errorf("expected camera looking down -Z, got %v", cam.Dir)
	}

	cfg.Lights = append(cfg.Lights, LightConfig{Kind: "point", Value: [4]float32{0, 5, 0, 1}})
	lights := cfg.NewLights()
	if len(lights) != 3 {
		t.Fatalf("expected 3 lights, got %d", len(lights))
	}
	if lights[0].Kind != lighting.Ambient || lights[2].Kind != lighting.Positional {
		t.Errorf("unexpected light kinds: %v %v", lights[0].Kind, lights[2].Kind)
	}
	if p := lights[2].Position(); p != (math.Vec3{Y: 5}) {
		t.Errorf("expected light at (0,5,0), got %v", p)
	}

	opts := cfg.KDTreeOptions()
	if opts.MaxDepth != 16 || opts.LeafSize != 5 {
		t.Errorf("unexpected kdtree options: %+v", opts)
	}
}

func TestTracerOptions(t *testing.T) {
	cfg := Default()
	cfg.Render.MaxDepth = 2
	cfg.KDTree.LeafSize = 9

	opts := cfg.TracerOptions(nil)
	if opts.MaxDepth != 2 || opts.BruteForce {
		t.Errorf("unexpected tracer options: %+v", opts)
	}
	if opts.KDTree.LeafSize != 9 {
		t.Errorf("expected leaf size 9, got %d", opts.KDTree.LeafSize)
	}

	cfg.Render.Accelerator = AcceleratorBrute
	if !cfg.TracerOptions(nil).BruteForce {
		t.Error("expected brute accelerator to select brute force")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
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
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
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
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "scene flag",
			setup: func() {
				*flagScene = "cube.obj"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Path != "cube.obj" {
					t.Errorf("expected scene cube.obj, got %s", cfg.Scene.Path)
				}
			},
			teardown: func() {
				*flagScene = ""
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 800
				*flagHeight = 600
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Width != 800 {
					t.Errorf("expected width 800, got %d", cfg.Render.Width)
				}
				if cfg.Render.Height != 600 {
					t.Errorf("expected height 600, got %d", cfg.Render.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "depth flag allows zero",
			setup: func() {
				*flagDepth = 0
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.MaxDepth != 0 {
					t.Errorf("expected max depth 0, got %d", cfg.Render.MaxDepth)
				}
			},
			teardown: func() {
				*flagDepth = -1
			},
		},
		{
			name: "out flag picks format from extension",
			setup: func() {
				*flagOut = "frame.BMP"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Path != "frame.BMP" || cfg.Output.Format != FormatBMP {
					t.Errorf("unexpected output config: %+v", cfg.Output)
				}
			},
			teardown: func() {
				*flagOut = ""
			},
		},
		{
			name: "brute flag",
			setup: func() {
				*flagBrute = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Accelerator != AcceleratorBrute {
					t.Errorf("expected brute accelerator, got %s", cfg.Render.Accelerator)
				}
			},
			teardown: func() {
				*flagBrute = false
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
render:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
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

	// Width should be from flag (1920), not file (1600)
	if cfg.Render.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Render.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Render.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Render.Height)
	}
}

func TestLoadFromFileThenValidate(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  accelerator: octree\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error, got nil")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Path = "scene.obj"
	cfg.Lights = cfg.Lights[:1]
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config failed: %v", err)
	}
	if loaded.Scene.Path != "scene.obj" || len(loaded.Lights) != 1 {
		t.Errorf("round trip lost settings: %+v", loaded)
	}
}

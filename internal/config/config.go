// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rt/internal/engine/camera"
	"github.com/Faultbox/midgard-rt/internal/engine/kdtree"
	"github.com/Faultbox/midgard-rt/internal/engine/lighting"
	"github.com/Faultbox/midgard-rt/internal/engine/raytrace"
	"github.com/Faultbox/midgard-rt/internal/logger"
	"github.com/Faultbox/midgard-rt/pkg/math"
)

// Accelerator names.
const (
	AcceleratorKDTree = "kdtree"
	AcceleratorBrute  = "brute"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// Config holds all renderer settings.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Lights  []LightConfig `yaml:"lights"`
	KDTree  KDTreeConfig  `yaml:"kdtree"`
	Output  OutputConfig  `yaml:"output"`
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
}

// SceneConfig selects the model to render.
type SceneConfig struct {
	Path      string `yaml:"path"`      // Wavefront OBJ file
	Normalize bool   `yaml:"normalize"` // fit the model to the [-1,1] cube
}

// RenderConfig holds image and tracing settings.
type RenderConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	MaxDepth    int    `yaml:"max_depth"`
	Accelerator string `yaml:"accelerator"` // kdtree | brute
}

// CameraConfig places the camera.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye,flow"`
	Center [3]float32 `yaml:"center,flow"`
	Up     [3]float32 `yaml:"up,flow"`
	FOVDeg float32    `yaml:"fov_deg"`
}

// LightConfig is one entry of the light list.
type LightConfig struct {
	Kind  string     `yaml:"kind"` // ambient | positional
	Value [4]float32 `yaml:"value,flow"`
}

// KDTreeConfig holds KD-tree build limits.
type KDTreeConfig struct {
	MaxDepth   int     `yaml:"max_depth"`
	LeafSize   int     `yaml:"leaf_size"`
	EmptyRatio float32 `yaml:"empty_ratio"`
}

// OutputConfig controls where rendered images go.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // png | bmp
}

// WindowConfig holds preview window settings.
type WindowConfig struct {
	Title string `yaml:"title"`
	Scale int    `yaml:"scale"` // window pixels per rendered pixel
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	kd := kdtree.DefaultOptions()
	return &Config{
		Scene: SceneConfig{
			Normalize: true,
		},
		Render: RenderConfig{
			Width:       320,
			Height:      240,
			MaxDepth:    5,
			Accelerator: AcceleratorKDTree,
		},
		Camera: CameraConfig{
			Eye:    [3]float32{0, 0, 2},
			Center: [3]float32{0, 0, 0},
			Up:     [3]float32{0, 1, 0},
			FOVDeg: 60,
		},
		Lights: []LightConfig{
			{Kind: "ambient", Value: [4]float32{1, 1, 1, 0.2}},
			{Kind: "positional", Value: [4]float32{2, 2, 2, 1}},
		},
		KDTree: KDTreeConfig{
			MaxDepth:   kd.MaxDepth,
			LeafSize:   kd.LeafSize,
			EmptyRatio: kd.EmptyRatio,
		},
		Output: OutputConfig{
			Path:   "render.png",
			Format: FormatPNG,
		},
		Window: WindowConfig{
			Title: "midgard-rt preview",
			Scale: 2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("render max_depth must not be negative, got %d", c.Render.MaxDepth))
	}
	switch c.Render.Accelerator {
	case AcceleratorKDTree, AcceleratorBrute:
	default:
		errs = append(errs, fmt.Errorf("unknown accelerator %q", c.Render.Accelerator))
	}
	switch c.Output.Format {
	case FormatPNG, FormatBMP:
	default:
		errs = append(errs, fmt.Errorf("unknown output format %q", c.Output.Format))
	}
	if c.Camera.FOVDeg <= 0 || c.Camera.FOVDeg >= 180 {
		errs = append(errs, fmt.Errorf("camera fov_deg must be in (0,180), got %v", c.Camera.FOVDeg))
	}
	if c.Camera.Eye == c.Camera.Center {
		errs = append(errs, errors.New("camera eye and center must differ"))
	}
	for i, l := range c.Lights {
		if _, err := lighting.ParseKind(l.Kind); err != nil {
			errs = append(errs, fmt.Errorf("light %d: %w", i, err))
		}
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Scale < 1 {
		errs = append(errs, fmt.Errorf("window scale must be at least 1, got %d", c.Window.Scale))
	}
	return errors.Join(errs...)
}

// NewCamera builds the configured camera.
func (c *Config) NewCamera() *camera.Camera {
	return camera.New(
		vec3(c.Camera.Eye),
		vec3(c.Camera.Center),
		vec3(c.Camera.Up),
		c.Render.Width,
		c.Render.Height,
		camera.Radians(c.Camera.FOVDeg),
	)
}

// NewLights builds the configured light list. Call Validate first; entries
// with an unknown kind are skipped.
func (c *Config) NewLights() lighting.Lights {
	lights := make(lighting.Lights, 0, len(c.Lights))
	for _, l := range c.Lights {
		kind, err := lighting.ParseKind(l.Kind)
		if err != nil {
			continue
		}
		lights = append(lights, lighting.Light{Kind: kind, Value: math.Vec4(l.Value)})
	}
	return lights
}

// KDTreeOptions returns the configured build limits.
func (c *Config) KDTreeOptions() kdtree.Options {
	return kdtree.Options{
		MaxDepth:   c.KDTree.MaxDepth,
		LeafSize:   c.KDTree.LeafSize,
		EmptyRatio: c.KDTree.EmptyRatio,
	}
}

// TracerOptions returns tracer settings. A max_depth of 0 is mapped to the
// tracer default here, so callers apply it with SetMaxDepth.
func (c *Config) TracerOptions(log *zap.Logger) raytrace.Options {
	return raytrace.Options{
		MaxDepth:   c.Render.MaxDepth,
		BruteForce: c.Render.Accelerator == AcceleratorBrute,
		KDTree:     c.KDTreeOptions(),
		Logger:     log,
	}
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

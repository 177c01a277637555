// Package raytrace renders a model with recursive Phong shading.
//
// A Tracer is the render context: it holds the model, its intersector, the
// camera and the light list. Nothing here is process-wide, so a program may
// run several tracers side by side. A single Tracer is not safe for
// concurrent use because it counts rays as it goes.
package raytrace

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rt/internal/engine/camera"
	"github.com/Faultbox/midgard-rt/internal/engine/kdtree"
	"github.com/Faultbox/midgard-rt/internal/engine/lighting"
	"github.com/Faultbox/midgard-rt/internal/engine/model"
	"github.com/Faultbox/midgard-rt/internal/engine/picking"
)

// DefaultMaxDepth is the recursion budget used when none is configured.
const DefaultMaxDepth = 5

// Options configures a Tracer.
type Options struct {
	MaxDepth   int  // recursion budget per primary ray; 0 selects DefaultMaxDepth
	BruteForce bool // scan every triangle instead of building a KD-tree
	KDTree     kdtree.Options
	Logger     *zap.Logger
}

// Stats counts the work done since the last Render or ResetStats.
type Stats struct {
	PrimaryRays   int
	SecondaryRays int // reflection and refraction rays
	ShadowRays    int
	Occluded      int // shadow rays blocked before reaching their light
	Hits          int
	Elapsed       time.Duration
}

// Tracer renders a model as seen from a camera under a list of lights.
type Tracer struct {
	opts Options
	log  *zap.Logger

	model  *model.Model
	index  Intersector
	camera *camera.Camera
	lights lighting.Lights

	// Split once per SetLights so shading does not filter per hit.
	ambient    lighting.Lights
	positional lighting.Lights

	stats Stats
}

// New creates a tracer with no scene attached.
func New(opts Options) *Tracer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.KDTree.Logger == nil {
		opts.KDTree.Logger = log
	}
	return &Tracer{opts: opts, log: log}
}

// SetModel attaches m and builds its intersector. m must be prepared and
// must not change while the tracer uses it.
func (t *Tracer) SetModel(m *model.Model) {
	t.model = m
	if t.opts.BruteForce {
		t.index = &BruteForce{Model: m}
		return
	}
	start := time.Now()
	t.index = kdtree.Build(m, t.opts.KDTree)
	t.log.Info("acceleration structure ready",
		zap.Int("triangles", len(m.Triangles)),
		zap.Duration("build", time.Since(start)),
	)
}

// SetIntersector attaches m with a prebuilt intersector over it.
func (t *Tracer) SetIntersector(m *model.Model, index Intersector) {
	t.model = m
	t.index = index
}

// SetCamera sets the camera used by Render. The camera is read on every
// render, so updates made through its setters take effect on the next frame.
func (t *Tracer) SetCamera(c *camera.Camera) {
	t.camera = c
}

// SetLights replaces the light list.
func (t *Tracer) SetLights(lights lighting.Lights) {
	t.lights = append(lighting.Lights(nil), lights...)
	t.ambient = t.lights.Ambient()
	t.positional = t.lights.Positional()
}

// SetMaxDepth changes the recursion budget used by Render.
func (t *Tracer) SetMaxDepth(depth int) {
	t.opts.MaxDepth = depth
}

// MaxDepth returns the recursion budget used by Render.
func (t *Tracer) MaxDepth() int {
	return t.opts.MaxDepth
}

// Model returns the attached model.
func (t *Tracer) Model() *model.Model {
	return t.model
}

// Intersector returns the attached intersector.
func (t *Tracer) Intersector() Intersector {
	return t.index
}

// Camera returns the attached camera.
func (t *Tracer) Camera() *camera.Camera {
	return t.camera
}

// Stats returns the counters of the last render.
func (t *Tracer) Stats() Stats {
	return t.stats
}

// ResetStats clears the ray counters.
func (t *Tracer) ResetStats() {
	t.stats = Stats{}
}

// Render traces one primary ray per pixel and writes packed colors into
// buf, row by row from the bottom of the image. buf must hold at least
// width*height pixels.
func (t *Tracer) Render(buf []uint32) {
	if t.camera == nil || t.index == nil {
		panic("raytrace: Render called before SetModel and SetCamera")
	}
	c := t.camera
	if n := c.Width * c.Height; len(buf) < n {
		panic(fmt.Sprintf("raytrace: pixel buffer holds %d pixels, need %d (%dx%d)", len(buf), n, c.Width, c.Height))
	}

	t.ResetStats()
	start := time.Now()

	idx := 0
	for h := 0; h < c.Height; h++ {
		for w := 0; w < c.Width; w++ {
			t.stats.PrimaryRays++
			color := t.Trace(picking.CameraRay(c, w, h), t.opts.MaxDepth)
			buf[idx] = PackColor(color)
			idx++
		}
	}

	t.stats.Elapsed = time.Since(start)
	t.log.Debug("frame rendered",
		zap.Int("width", c.Width),
		zap.Int("height", c.Height),
		zap.Int("max_depth", t.opts.MaxDepth),
		zap.Int("primary_rays", t.stats.PrimaryRays),
		zap.Int("secondary_rays", t.stats.SecondaryRays),
		zap.Int("shadow_rays", t.stats.ShadowRays),
		zap.Duration("elapsed", t.stats.Elapsed),
	)
}

package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rt/internal/config"
	"github.com/Faultbox/midgard-rt/internal/engine/camera"
	"github.com/Faultbox/midgard-rt/internal/engine/debug"
	"github.com/Faultbox/midgard-rt/internal/engine/input"
	"github.com/Faultbox/midgard-rt/internal/engine/kdtree"
	"github.com/Faultbox/midgard-rt/internal/engine/model"
	"github.com/Faultbox/midgard-rt/internal/engine/raytrace"
	"github.com/Faultbox/midgard-rt/internal/engine/window"
	"github.com/Faultbox/midgard-rt/internal/logger"
)

const frameDelay = 16 * time.Millisecond

// App owns the preview window and the render context.
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	win    *window.Window
	input  *input.Input
	tracer *raytrace.Tracer
	model  *model.Model
	cam    *camera.Camera
	orbit  *camera.OrbitCamera
	shots  *debug.ScreenshotCapture

	frame []uint32
	dirty bool
}

func newApp(cfg *config.Config) (*App, error) {
	m, err := model.Load(cfg.Scene.Path, cfg.Scene.Normalize, logger.Named("model"))
	if err != nil {
		return nil, err
	}

	tracer := raytrace.New(cfg.TracerOptions(logger.Named("tracer")))
	tracer.SetMaxDepth(cfg.Render.MaxDepth)
	tracer.SetModel(m)

	cam := cfg.NewCamera()
	tracer.SetCamera(cam)
	tracer.SetLights(cfg.NewLights())

	orbit := camera.NewOrbitCamera()
	if cfg.Scene.Normalize {
		orbit.FromCamera(cam)
	} else {
		// The configured eye is sized for the unit cube.
		orbit.FitToBounds(m.Bounds())
		orbit.Apply(cam)
	}

	win, err := window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Scale:  cfg.Window.Scale,
	}, logger.Named("window"))
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:    cfg,
		log:    logger.Named("preview"),
		win:    win,
		input:  input.New(),
		tracer: tracer,
		model:  m,
		cam:    cam,
		orbit:  orbit,
		shots:  debug.NewScreenshotCapture("screenshots", "preview", cfg.Output.Format),
		frame:  make([]uint32, cfg.Render.Width*cfg.Render.Height),
		dirty:  true,
	}, nil
}

// Run polls input until the window is closed, re-rendering after every
// camera change.
func (a *App) Run() error {
	for {
		if a.input.Update() {
			return nil
		}
		for _, act := range a.input.Actions() {
			a.handle(act)
		}

		switch {
		case a.dirty:
			a.render()
			if err := a.win.Present(a.frame); err != nil {
				return err
			}
		case a.input.Exposed():
			if err := a.win.Present(a.frame); err != nil {
				return err
			}
		default:
			time.Sleep(frameDelay)
		}
	}
}

func (a *App) handle(act input.Action) {
	switch act {
	case input.ActionOrbitLeft:
		a.orbit.Rotate(-1, 0)
	case input.ActionOrbitRight:
		a.orbit.Rotate(1, 0)
	case input.ActionOrbitUp:
		a.orbit.Rotate(0, 1)
	case input.ActionOrbitDown:
		a.orbit.Rotate(0, -1)
	case input.ActionZoomIn:
		a.orbit.HandleZoom(1)
	case input.ActionZoomOut:
		a.orbit.HandleZoom(-1)
	case input.ActionRender:
		a.dirty = true
		return
	case input.ActionScreenshot:
		a.screenshot()
		return
	case input.ActionToggleAccelerator:
		a.toggleAccelerator()
		a.dirty = true
		return
	default:
		return
	}
	a.orbit.Apply(a.cam)
	a.dirty = true
}

func (a *App) render() {
	a.tracer.Render(a.frame)
	a.dirty = false

	s := a.tracer.Stats()
	a.win.SetTitle(fmt.Sprintf("%s - %s - %v", a.cfg.Window.Title, a.acceleratorName(), s.Elapsed.Round(time.Millisecond)))
	a.log.Debug("frame presented",
		zap.Int("rays", s.PrimaryRays+s.SecondaryRays+s.ShadowRays),
		zap.Duration("elapsed", s.Elapsed),
	)
}

func (a *App) screenshot() {
	width, height := a.win.GetSize()
	name, err := a.shots.Capture(a.frame, width, height)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", name))
}

// toggleAccelerator swaps between the KD-tree and the brute-force scan.
func (a *App) toggleAccelerator() {
	if _, ok := a.tracer.Intersector().(*kdtree.Tree); ok {
		a.tracer.SetIntersector(a.model, &raytrace.BruteForce{Model: a.model})
	} else {
		opts := a.cfg.KDTreeOptions()
		opts.Logger = logger.Named("kdtree")
		a.tracer.SetIntersector(a.model, kdtree.Build(a.model, opts))
	}
	a.log.Info("intersector switched", zap.String("accelerator", a.acceleratorName()))
}

func (a *App) acceleratorName() string {
	if _, ok := a.tracer.Intersector().(*kdtree.Tree); ok {
		return config.AcceleratorKDTree
	}
	return config.AcceleratorBrute
}

// Close releases the window.
func (a *App) Close() {
	a.win.Close()
}

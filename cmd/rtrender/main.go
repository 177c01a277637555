// Package main is the entry point for the headless renderer.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rt/internal/config"
	"github.com/Faultbox/midgard-rt/internal/engine/debug"
	"github.com/Faultbox/midgard-rt/internal/engine/kdtree"
	"github.com/Faultbox/midgard-rt/internal/engine/model"
	"github.com/Faultbox/midgard-rt/internal/engine/raytrace"
	"github.com/Faultbox/midgard-rt/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.Scene.Path == "" {
		return errors.New("no scene given; pass an OBJ file or set scene.path")
	}

	logger.Sugar.Debugf("Config: %+v", cfg)

	m, err := model.Load(cfg.Scene.Path, cfg.Scene.Normalize, logger.Named("model"))
	if err != nil {
		return err
	}

	tracer := raytrace.New(cfg.TracerOptions(logger.Named("tracer")))
	tracer.SetMaxDepth(cfg.Render.MaxDepth)
	tracer.SetModel(m)
	tracer.SetCamera(cfg.NewCamera())
	tracer.SetLights(cfg.NewLights())

	buf := make([]uint32, cfg.Render.Width*cfg.Render.Height)
	tracer.Render(buf)

	if err := debug.Save(cfg.Output.Path, cfg.Output.Format, buf, cfg.Render.Width, cfg.Render.Height); err != nil {
		return fmt.Errorf("saving %s: %w", cfg.Output.Path, err)
	}
	logger.Info("image written", zap.String("path", cfg.Output.Path))

	tree, _ := tracer.Intersector().(*kdtree.Tree)
	writeReport(os.Stdout, cfg, m, tree, tracer.Stats())
	return nil
}

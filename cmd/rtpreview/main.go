// Package main is the interactive preview: it renders a model into an SDL
// window and re-renders when the camera moves.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-rt/internal/config"
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

	if cfg.Scene.Path == "" {
		path, err := pickScene()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			os.Exit(1)
		}
		cfg.Scene.Path = path
	}

	code := run(cfg)
	logger.Sync()
	os.Exit(code)
}

// run owns the preview for its whole life so the window is closed on every
// path before main exits.
func run(cfg *config.Config) int {
	app, err := newApp(cfg)
	if err != nil {
		logger.Error("failed to start preview", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("preview error", zap.Error(err))
		return 1
	}

	logger.Info("preview closed normally")
	return 0
}

// pickScene asks for a model with the native file dialog.
func pickScene() (string, error) {
	return dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Open Model").
		Load()
}

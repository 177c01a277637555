package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagScene  = flag.String("scene", "", "Wavefront OBJ file to render")
	flagWidth  = flag.Int("width", 0, "Image width in pixels")
	flagHeight = flag.Int("height", 0, "Image height in pixels")
	flagDepth  = flag.Int("depth", -1, "Maximum ray recursion depth")
	flagOut    = flag.String("out", "", "Output image path (.png or .bmp)")
	flagBrute  = flag.Bool("brute", false, "Test every triangle instead of building a KD-tree")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	} else if arg := flag.Arg(0); arg != "" {
		cfg.Scene.Path = arg
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagDepth >= 0 {
		cfg.Render.MaxDepth = *flagDepth
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
		if f := formatFromPath(*flagOut); f != "" {
			cfg.Output.Format = f
		}
	}
	if *flagBrute {
		cfg.Render.Accelerator = AcceleratorBrute
	}
}

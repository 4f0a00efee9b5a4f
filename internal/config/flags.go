package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagPrecision  = flag.Float64("precision", 0, "Terrain error precision")
	flagDepth      = flag.Int("depth", 0, "Maximum subdivision depth")
	flagStitching  = flag.Bool("stitching", false, "Queue corner stitch strips")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
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
		cfg.Viewer.ShowStats = true
	}
	if *flagPrecision > 0 {
		cfg.Terrain.Precision = float32(*flagPrecision)
	}
	if *flagDepth > 0 {
		cfg.Terrain.MaxDepth = *flagDepth
	}
	if *flagStitching {
		cfg.Terrain.Stitching = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}

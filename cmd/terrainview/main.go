// terrainview flies a camera over an adaptively tessellated terrain.
package main

import (
	"fmt"
	gomath "math"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/seamless-terrain/internal/config"
	"github.com/Faultbox/seamless-terrain/internal/engine/camera"
	"github.com/Faultbox/seamless-terrain/internal/engine/input"
	"github.com/Faultbox/seamless-terrain/internal/engine/scene"
	"github.com/Faultbox/seamless-terrain/internal/engine/terrain"
	"github.com/Faultbox/seamless-terrain/internal/engine/window"
	"github.com/Faultbox/seamless-terrain/internal/logger"
	"github.com/Faultbox/seamless-terrain/pkg/math"
)

const (
	windowTitle   = "Seamless Terrain"
	precisionStep = 1.25
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
		logger.Error("terrainview failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL init: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	driver, err := terrain.NewDriver(cfg.Terrain, logger.Named("terrain"))
	if err != nil {
		return err
	}
	placement := cfg.Placement.Transform()
	driver.SetTransform(placement)

	renderer, err := scene.NewTerrainRenderer(logger.Named("scene"))
	if err != nil {
		return err
	}
	defer renderer.Destroy()
	renderer.Load(driver.Library(), cfg.Terrain.MaxInstancesPerMesh)

	material := scene.DefaultHeightMaterial()
	material.Wireframe = cfg.Graphics.Wireframe
	material.FogFar = 1.5 * max(cfg.Terrain.Size.X, cfg.Terrain.Size.Y)
	driver.SetMaterial(&material)

	cam := camera.NewOrbitCamera()
	cam.FitToTerrain(cfg.Terrain.Size, cfg.Viewer.Radius, cfg.Viewer.Height)
	cam.Center = placement.TransformPoint(cam.Center)
	cam.SetSpeedDegrees(cfg.Viewer.OrbitSpeed)

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(material.FogColor[0], material.FogColor[1], material.FogColor[2], 1)

	v := &viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		driver:   driver,
		renderer: renderer,
		material: &material,
		cam:      cam,
	}
	v.loop(win)
	return nil
}

// viewer holds the state the input actions act on.
type viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	driver   *terrain.Driver
	renderer *scene.TerrainRenderer
	material *scene.HeightMaterial
	cam      *camera.OrbitCamera
	paused   bool
}

func (v *viewer) apply(a input.Action) {
	switch a {
	case input.ActionPrecisionUp:
		v.driver.SetPrecision(v.driver.Settings().Precision * precisionStep)
	case input.ActionPrecisionDown:
		v.driver.SetPrecision(v.driver.Settings().Precision / precisionStep)
	case input.ActionDepthUp:
		s := v.driver.Settings()
		s.MaxDepth++
		v.reconfigure(s)
	case input.ActionDepthDown:
		s := v.driver.Settings()
		s.MaxDepth--
		v.reconfigure(s)
	case input.ActionToggleStitching:
		s := v.driver.Settings()
		s.Stitching = !s.Stitching
		v.reconfigure(s)
	case input.ActionToggleWireframe:
		v.material.Wireframe = !v.material.Wireframe
	case input.ActionTogglePause:
		v.paused = !v.paused
	default:
		return
	}
	v.log.Info("action", zap.Stringer("action", a), zap.Float32("precision", v.driver.Settings().Precision))
}

func (v *viewer) reconfigure(s terrain.Settings) {
	prev := v.driver.Settings()
	if err := v.driver.Reconfigure(s); err != nil {
		v.log.Warn("settings rejected", zap.Error(err))
		return
	}
	next := v.driver.Settings()
	if next.SharesMeshes(prev) {
		return
	}
	v.log.Info("reloading terrain meshes", zap.Ints("tiers", next.Resolutions))
	v.renderer.Load(v.driver.Library(), next.MaxInstancesPerMesh)
}

func (v *viewer) loop(win *window.Window) {
	in := input.New()
	fov := v.cfg.Viewer.FOV * gomath.Pi / 180

	start := time.Now()
	last := start
	lastReport := start
	frames := 0

	for !in.Update() {
		for _, a := range in.Actions() {
			v.apply(a)
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if !v.paused {
			v.cam.Advance(dt)
		}

		width, height := win.DrawableSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		aspect := float32(width) / float32(max(height, 1))
		proj := math.Perspective(fov, aspect, 0.5, 10000)
		viewProj := proj.Mul(v.cam.ViewMatrix())

		eye := v.cam.Position()
		v.renderer.BeginFrame(viewProj, eye, float32(now.Sub(start).Seconds()))
		stats := v.driver.Frame(eye, v.renderer)

		win.SwapBuffers()
		frames++

		if elapsed := now.Sub(lastReport); elapsed >= time.Second {
			fps := float64(frames) / elapsed.Seconds()
			draws, instances := v.renderer.DrawStats()
			if v.cfg.Viewer.ShowStats {
				win.SetTitle(fmt.Sprintf("%s | %.0f fps | %d patches | depth %d | %d draws",
					windowTitle, fps, stats.Patches, stats.MaxDepthReached, draws))
			}
			v.log.Debug("frame stats",
				zap.Float64("fps", fps),
				zap.Int("patches", stats.Patches),
				zap.Int("instances", instances),
				zap.Int("dropped", stats.Dropped),
				zap.Int("max_depth", stats.MaxDepthReached),
				zap.Int("draws", draws),
			)
			frames = 0
			lastReport = now
		}
	}
}

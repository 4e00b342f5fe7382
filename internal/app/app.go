// Package app runs the sandbox: window, GL state, scene and frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/animbox/internal/config"
	"github.com/Faultbox/animbox/internal/engine/camera"
	"github.com/Faultbox/animbox/internal/engine/debug"
	"github.com/Faultbox/animbox/internal/engine/input"
	"github.com/Faultbox/animbox/internal/engine/renderer"
	"github.com/Faultbox/animbox/internal/engine/scene"
	"github.com/Faultbox/animbox/internal/engine/shader"
	"github.com/Faultbox/animbox/internal/engine/window"
	"github.com/Faultbox/animbox/internal/logger"
)

const title = "animbox"

// App is the running sandbox.
type App struct {
	config      *config.Config
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	scene       *scene.Scene
	driver      *Driver
	screenshots *debug.ScreenshotCapture

	// Captured after the next draw, before the swap
	screenshotPending bool

	log *zap.Logger
}

// New opens the window, sets up GL state and builds the scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}

	a.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	sceneCfg, err := SceneConfig(cfg)
	if err != nil {
		return nil, err
	}
	format, err := debug.ParseFormat(cfg.Screenshots.Format)
	if err != nil {
		return nil, err
	}

	// Window first: it creates the GL context
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ww, wh := a.window.GetSize()
	if wh > 0 {
		sceneCfg.Camera.Aspect = float32(ww) / float32(wh)
	}
	a.scene, err = scene.New(a.renderer.Device(), sceneCfg)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	a.input = input.New()
	a.screenshots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix, format)

	a.driver = NewDriver(a.scene)
	a.driver.OnResize = func(int, int) {
		a.renderer.Resize(a.window.DrawableSize())
	}
	a.driver.OnScreenshot = func() {
		a.screenshotPending = true
	}

	a.log.Info("initialized successfully", zap.Int("objects", len(a.scene.Objects())))
	return a, nil
}

// SceneConfig converts the file/flag configuration into scene settings.
func SceneConfig(cfg *config.Config) (scene.Config, error) {
	typ, err := shader.ParseProgramType(cfg.Shaders.Type)
	if err != nil {
		return scene.Config{}, err
	}

	c := cfg.Camera
	sc := scene.DefaultConfig()
	sc.Camera = camera.Params{
		FOV:      c.FOV,
		Aspect:   float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height),
		Near:     c.Near,
		Far:      c.Far,
		Distance: c.Distance,
		Azimuth:  c.Azimuth,
		Incline:  c.Incline,
	}
	sc.Controller = camera.ControllerConfig{
		OrbitRate:     c.OrbitRate,
		DollyRate:     c.DollyRate,
		WheelRate:     c.WheelRate,
		MinDistance:   c.MinDistance,
		MaxDistance:   c.MaxDistance,
		MaxMouseDelta: c.MaxMouseDelta,
	}
	sc.ShaderBase = cfg.Shaders.Base
	sc.ShaderType = typ
	sc.ShaderOptions = shader.Options{FailFast: cfg.Shaders.FailFast}
	sc.BoxMin = mgl32.Vec3(cfg.Scene.BoxMin)
	sc.BoxMax = mgl32.Vec3(cfg.Scene.BoxMax)

	// An empty cube list keeps the default cube
	if len(cfg.Scene.Cubes) == 0 {
		return sc, nil
	}
	sc.Cubes = nil
	for _, cube := range cfg.Scene.Cubes {
		sc.Cubes = append(sc.Cubes, scene.CubeSpec{
			Position: mgl32.Vec3(cube.Position),
			Axis:     mgl32.Vec3(cube.Axis),
			SpinRate: cube.SpinRate,
		})
	}
	return sc, nil
}

// Run drives frames until a quit is requested.
func (a *App) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.driver.Running() {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Input
		if a.input.Update() {
			a.driver.Stop()
		}
		for _, event := range a.input.Events() {
			a.driver.HandleEvent(event)
		}
		if !a.driver.Running() {
			break
		}

		// 2. Update and draw
		a.renderer.Begin()
		a.driver.Frame(dt)
		if a.screenshotPending {
			a.screenshot()
			a.screenshotPending = false
		}

		// 3. Present
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) screenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, then the renderer and window.
func (a *App) Close() {
	a.log.Info("closing")

	if a.scene != nil {
		a.scene.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// Package app implements the plain SDL viewer loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/icosphere/internal/config"
	"github.com/Faultbox/icosphere/internal/engine/camera"
	"github.com/Faultbox/icosphere/internal/engine/debug"
	"github.com/Faultbox/icosphere/internal/engine/input"
	"github.com/Faultbox/icosphere/internal/engine/renderer"
	"github.com/Faultbox/icosphere/internal/engine/window"
	"github.com/Faultbox/icosphere/internal/logger"
	"github.com/Faultbox/icosphere/internal/viewer"
)

// Title is the window title prefix.
const Title = "Icosphere"

// App is the SDL viewer instance.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	state    *viewer.State
	mesh     *renderer.SphereMesh
	shots    *debug.ScreenshotCapture
}

// New creates the window, GL resources and the initial mesh.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("subdivisions", cfg.Sphere.Subdivisions),
	)

	var err error
	a.state, err = viewer.New(cfg, logger.Named("viewer"))
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	width, height := a.window.GetSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.mesh, err = renderer.NewSphereMesh(a.state.Mesh())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}
	a.state.TakeDirty()

	a.camera = camera.NewOrbitCamera()
	a.camera.FOVDegrees = cfg.Camera.FOVDegrees
	a.camera.Near = cfg.Camera.Near
	a.camera.Far = cfg.Camera.Far
	a.camera.Reset(cfg.Camera.Distance)

	a.input = input.New()
	a.shots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, "icosphere")
	a.updateTitle()

	a.log.Info("viewer initialized")
	return a, nil
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var frameBudget time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		if err := a.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		a.render()

		a.handleCaptureKeys()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				sdl.Delay(uint32((frameBudget - spent).Milliseconds()))
			}
		}
	}

	return nil
}

// Close releases GL and SDL resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.mesh != nil {
		a.mesh.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := a.window.GetSize()
			a.renderer.Resize(width, height)
		case input.EventKeyDown:
			if event.Repeat && event.Key != sdl.SCANCODE_EQUALS && event.Key != sdl.SCANCODE_MINUS {
				continue
			}
			a.handleKey(event.Key)
		}
	}

	if dx, dy := a.input.DragDelta(); dx != 0 || dy != 0 {
		a.camera.HandleDrag(float32(dx), float32(dy))
	}
	if wheel := a.input.WheelDelta(); wheel != 0 {
		a.camera.HandleZoom(wheel)
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	var err error
	switch Command(key) {
	case CmdQuit:
		a.running = false
	case CmdSubdivideMore:
		err = a.state.Increase()
	case CmdSubdivideLess:
		err = a.state.Decrease()
	case CmdWireframe:
		a.state.Wireframe = !a.state.Wireframe
	case CmdSpin:
		a.state.Spinning = !a.state.Spinning
	case CmdResetView:
		a.state.ResetSpin()
		a.camera.Reset(a.cfg.Camera.Distance)
	case CmdFitView:
		min, max := a.state.Bounds()
		a.camera.FitToBounds(min, max)
	}
	if err != nil {
		a.log.Warn("command failed", zap.Int("key", int(key)), zap.Error(err))
	}
}

// handleCaptureKeys runs after drawing so captures see the finished frame.
func (a *App) handleCaptureKeys() {
	if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
		pixels, w, h := a.renderer.ReadPixels()
		path, err := a.shots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
		} else {
			a.log.Info("screenshot saved", zap.String("path", path))
		}
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_E) {
		path := a.shots.Filename("obj")
		if err := a.state.ExportOBJ(path); err != nil {
			a.log.Error("export failed", zap.Error(err))
		}
	}
}

func (a *App) update(dt float64) error {
	a.state.Update(dt)
	if a.renderer.Wireframe() != a.state.Wireframe {
		a.renderer.SetWireframe(a.state.Wireframe)
		a.log.Debug("wireframe toggled", zap.Bool("on", a.state.Wireframe))
	}
	a.renderer.SetClearColor(a.state.Background)

	if a.state.TakeDirty() {
		if err := a.mesh.Update(a.state.Mesh()); err != nil {
			return err
		}
		a.updateTitle()
	}
	return nil
}

func (a *App) render() {
	a.renderer.Begin()
	a.renderer.Draw(a.mesh, renderer.Scene{
		Model:       a.state.ModelMatrix(),
		View:        a.camera.ViewMatrix(),
		Projection:  a.camera.ProjectionMatrix(a.renderer.Aspect()),
		Light:       a.state.Light,
		ObjectColor: a.state.ObjectColor,
	})
	a.renderer.End()
}

func (a *App) updateTitle() {
	if a.window == nil {
		return
	}
	a.window.SetTitle(fmt.Sprintf("%s - %s", Title, a.state.Stats()))
}

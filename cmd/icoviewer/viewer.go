package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/icosphere/internal/config"
	"github.com/Faultbox/icosphere/internal/engine/camera"
	"github.com/Faultbox/icosphere/internal/engine/debug"
	"github.com/Faultbox/icosphere/internal/engine/framebuffer"
	"github.com/Faultbox/icosphere/internal/engine/renderer"
	"github.com/Faultbox/icosphere/internal/engine/ui"
	"github.com/Faultbox/icosphere/internal/logger"
	"github.com/Faultbox/icosphere/internal/viewer"
)

const (
	controlsPanelWidth = 300
	statusBarHeight    = 28
	notifyDuration     = 2 * time.Second
)

// Viewer is the ImGui application: a controls panel on the left and the
// sphere rendered to a texture on the right.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	backend *ui.Backend
	panel   ui.Panel

	state    *viewer.State
	renderer *renderer.Renderer
	mesh     *renderer.SphereMesh
	fb       *framebuffer.Framebuffer
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture

	lastFrame    time.Time
	lastMousePos imgui.Vec2

	// Written by the dialog goroutine, consumed on the main thread.
	pendingExport chan string

	notifyMsg  string
	notifyTime time.Time
}

// NewViewer creates the window, GL state and initial mesh.
func NewViewer(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:           cfg,
		log:           logger.Named("icoviewer"),
		pendingExport: make(chan string, 1),
		lastFrame:     time.Now(),
	}

	var err error
	v.state, err = viewer.New(cfg, logger.Named("viewer"))
	if err != nil {
		return nil, err
	}

	v.backend, err = ui.NewBackend(ui.BackendConfig{
		Title:    "Icosphere Viewer",
		Width:    cfg.Graphics.Width,
		Height:   cfg.Graphics.Height,
		FPSLimit: cfg.Graphics.FPSLimit,
		BgColor:  [3]float32{0.1, 0.1, 0.12},
	})
	if err != nil {
		return nil, fmt.Errorf("create ui backend: %w", err)
	}

	v.renderer, err = renderer.New(renderer.Config{
		ClearColor: cfg.Graphics.ClearColor,
		SkipGLInit: true,
	})
	if err != nil {
		return nil, err
	}

	v.mesh, err = renderer.NewSphereMesh(v.state.Mesh())
	if err != nil {
		return nil, err
	}
	v.state.TakeDirty()

	v.fb, err = framebuffer.New(int32(cfg.Graphics.Width-controlsPanelWidth), int32(cfg.Graphics.Height))
	if err != nil {
		return nil, err
	}

	v.camera = camera.NewOrbitCamera()
	v.camera.FOVDegrees = cfg.Camera.FOVDegrees
	v.camera.Near = cfg.Camera.Near
	v.camera.Far = cfg.Camera.Far
	v.camera.Reset(cfg.Camera.Distance)

	v.shots = debug.NewScreenshotCapture(cfg.Screenshots.Dir, "icoviewer")
	return v, nil
}

// Run starts the ImGui loop.
func (v *Viewer) Run() {
	v.backend.Run(v.render)
}

// Close releases GL resources.
func (v *Viewer) Close() {
	if v.fb != nil {
		v.fb.Destroy()
	}
	if v.mesh != nil {
		v.mesh.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
}

func (v *Viewer) render() {
	now := time.Now()
	dt := now.Sub(v.lastFrame).Seconds()
	v.lastFrame = now

	select {
	case path := <-v.pendingExport:
		v.export(path)
	default:
	}

	v.state.Update(dt)
	if v.state.TakeDirty() {
		if err := v.mesh.Update(v.state.Mesh()); err != nil {
			v.log.Error("mesh upload failed", zap.Error(err))
		}
		v.backend.SetWindowTitle(fmt.Sprintf("Icosphere Viewer - %s", v.state.Stats()))
	}

	screenshot := ui.IsKeyPressed(imgui.KeyF12)

	posX, posY, width, height := v.backend.GetViewport()
	contentHeight := height - statusBarHeight
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(controlsPanelWidth, contentHeight))
	var act ui.Actions
	if imgui.BeginV("Controls", nil, flags) {
		act = v.panel.Draw(v.state)
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX+controlsPanelWidth, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(width-controlsPanelWidth, contentHeight))
	if imgui.BeginV("Sphere", nil, flags|imgui.WindowFlagsNoScrollbar) {
		v.renderSphere()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(width, statusBarHeight))
	if imgui.BeginV("##StatusBar", nil, flags|imgui.WindowFlagsNoTitleBar|imgui.WindowFlagsNoScrollbar) {
		imgui.Text(v.state.Stats().String())
	}
	imgui.End()

	v.renderNotification(posX+controlsPanelWidth+10, posY+10)

	if act.ResetView {
		v.camera.Reset(v.cfg.Camera.Distance)
	}
	if act.FitView {
		min, max := v.state.Bounds()
		v.camera.FitToBounds(min, max)
	}
	if act.Export {
		v.openExportDialog()
	}
	if act.SaveSettings {
		v.saveSettings()
	}
	if act.Screenshot || screenshot {
		v.captureScreenshot()
	}
}

// renderSphere draws into the offscreen target and shows it as an image.
func (v *Viewer) renderSphere() {
	avail := imgui.ContentRegionAvail()
	v.fb.Resize(int32(avail.X), int32(avail.Y))

	if v.renderer.Wireframe() != v.state.Wireframe {
		v.renderer.SetWireframe(v.state.Wireframe)
	}
	v.renderer.SetClearColor(v.state.Background)
	v.fb.Render(func() {
		fbW, fbH := v.fb.Size()
		v.renderer.Resize(int(fbW), int(fbH))
		v.renderer.Begin()
		v.renderer.Draw(v.mesh, renderer.Scene{
			Model:       v.state.ModelMatrix(),
			View:        v.camera.ViewMatrix(),
			Projection:  v.camera.ProjectionMatrix(v.fb.Aspect()),
			Light:       v.state.Light,
			ObjectColor: v.state.ObjectColor,
		})
		v.renderer.End()
	})

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(v.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1), // GL textures are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			v.camera.HandleDrag(mousePos.X-v.lastMousePos.X, mousePos.Y-v.lastMousePos.Y)
		}
		v.lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			v.camera.HandleZoom(wheel)
		}
	}
}

// openExportDialog shows a native save dialog off the main thread; the
// chosen path is picked up by the next frame.
func (v *Viewer) openExportDialog() {
	startDir, _ := filepath.Abs(v.cfg.Screenshots.Dir)
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Title("Export Icosphere").
			SetStartDir(startDir).
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				v.log.Warn("file dialog error", zap.Error(err))
			}
			return
		}
		if filepath.Ext(filename) == "" {
			filename += ".obj"
		}
		select {
		case v.pendingExport <- filename:
		default:
		}
	}()
}

func (v *Viewer) export(path string) {
	if err := v.state.ExportOBJ(path); err != nil {
		v.log.Error("export failed", zap.Error(err))
		v.notify(fmt.Sprintf("Export failed: %v", err))
		return
	}
	v.notify("Exported: " + filepath.Base(path))
}

func (v *Viewer) saveSettings() {
	v.state.ApplyTo(v.cfg)
	path, err := v.cfg.Save()
	if err != nil {
		v.log.Error("saving settings failed", zap.Error(err))
		v.notify(fmt.Sprintf("Save failed: %v", err))
		return
	}
	v.notify("Settings saved to " + path)
}

func (v *Viewer) captureScreenshot() {
	pixels := v.fb.ReadPixels()
	w, h := v.fb.Size()
	path, err := v.shots.CaptureFromPixels(pixels, int(w), int(h))
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		v.notify(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
	v.notify("Saved: " + filepath.Base(path))
}

func (v *Viewer) notify(msg string) {
	v.notifyMsg = msg
	v.notifyTime = time.Now()
}

func (v *Viewer) renderNotification(x, y float32) {
	if v.notifyMsg == "" {
		return
	}
	if time.Since(v.notifyTime) >= notifyDuration {
		v.notifyMsg = ""
		return
	}
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, flags) {
		imgui.Text(v.notifyMsg)
	}
	imgui.End()
}

// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/icosphere/internal/engine/lighting"
	"github.com/Faultbox/icosphere/internal/engine/renderer/shaders"
	"github.com/Faultbox/icosphere/internal/engine/shader"
	"github.com/Faultbox/icosphere/internal/logger"
	"github.com/Faultbox/icosphere/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	// SkipGLInit is set when another component (the ImGui backend) has
	// already loaded the GL function pointers.
	SkipGLInit bool
}

// Scene is everything a frame needs besides the mesh.
type Scene struct {
	Model       math.Mat4
	View        math.Mat4
	Projection  math.Mat4
	Light       lighting.DirectionalLight
	ObjectColor [3]float32
}

// Renderer draws a lit icosphere.
type Renderer struct {
	config    Config
	log       *zap.Logger
	program   *shader.Program
	wireframe bool
}

var sphereUniforms = []string{
	"uMVP",
	"uModel",
	"uNormalMatrix",
	"uLightDir",
	"uLightColor",
	"uObjectColor",
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if !cfg.SkipGLInit {
		if err := gl.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
		}
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	var err error
	r.program, err = shader.NewProgram(shaders.SphereVertexShader, shaders.SphereFragmentShader, sphereUniforms...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sphere shader: %w", err)
	}
	r.log.Debug("shader program created", zap.Uint32("program", r.program.ID()))

	if cfg.Width > 0 && cfg.Height > 0 {
		gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	}
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width == r.config.Width && height == r.config.Height {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the current viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetWireframe toggles line rasterisation.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
}

// Wireframe reports whether triangles are drawn as lines.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// SetClearColor changes the background used by Begin.
func (r *Renderer) SetClearColor(c [3]float32) {
	r.config.ClearColor = c
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders mesh with the scene's transforms and light.
func (r *Renderer) Draw(mesh *SphereMesh, scene Scene) {
	if mesh == nil || mesh.IndexCount() == 0 {
		return
	}

	u := computeUniforms(scene)

	r.program.Use()
	r.program.SetMat4("uMVP", u.mvp)
	r.program.SetMat4("uModel", scene.Model)
	r.program.SetMat3("uNormalMatrix", u.normal)
	r.program.SetVec3("uLightDir", u.lightDir)
	r.program.SetVec3("uLightColor", scene.Light.Color)
	r.program.SetVec3("uObjectColor", scene.ObjectColor)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.Disable(gl.CULL_FACE)
	}
	mesh.draw()
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		gl.Enable(gl.CULL_FACE)
	}
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}

// ReadPixels returns the RGBA contents of the bound framebuffer,
// bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

type frameUniforms struct {
	mvp      math.Mat4
	normal   math.Mat3
	lightDir [3]float32
}

func computeUniforms(s Scene) frameUniforms {
	return frameUniforms{
		mvp:      s.Projection.Mul(s.View).Mul(s.Model),
		normal:   s.Model.NormalMatrix(),
		lightDir: s.Light.Direction.Normalize().Array(),
	}
}

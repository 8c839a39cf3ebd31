// Package viewer holds the interactive state shared by the SDL client and
// the ImGui viewer: the current subdivision level, its mesh, shading
// settings and the spin animation. It has no GL dependency.
package viewer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/icosphere/internal/config"
	"github.com/Faultbox/icosphere/internal/engine/lighting"
	"github.com/Faultbox/icosphere/pkg/formats"
	"github.com/Faultbox/icosphere/pkg/icosphere"
	"github.com/Faultbox/icosphere/pkg/math"
)

// Settings are the user-editable shading options.
type Settings struct {
	ObjectColor [3]float32
	Background  [3]float32
	Light       lighting.DirectionalLight
	SpinSpeed   float32 // radians per second
	Spinning    bool
	Wireframe   bool
}

// Stats summarises the current mesh.
type Stats struct {
	Level     int
	Vertices  int
	Triangles int
	Floats    int
}

// State is the viewer model.
type State struct {
	Settings

	log     *zap.Logger
	builder *icosphere.Builder
	level   int
	mesh    *icosphere.Mesh
	angle   float32
	dirty   bool
}

// New builds the mesh at the configured level.
func New(cfg *config.Config, log *zap.Logger) (*State, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{
		Settings: Settings{
			ObjectColor: cfg.Sphere.ObjectColor,
			Background:  cfg.Graphics.ClearColor,
			Light: lighting.NewDirectional(
				math.Vec3{X: cfg.Sphere.LightDirection[0], Y: cfg.Sphere.LightDirection[1], Z: cfg.Sphere.LightDirection[2]},
				cfg.Sphere.LightColor,
			),
			SpinSpeed: cfg.Sphere.SpinSpeed,
			Spinning:  cfg.Sphere.SpinSpeed != 0,
			Wireframe: cfg.Sphere.Wireframe,
		},
		log:     log,
		builder: icosphere.NewBuilder(log.Named("builder")),
		level:   -1,
	}
	if err := s.SetLevel(cfg.Sphere.Subdivisions); err != nil {
		return nil, err
	}
	return s, nil
}

// Level returns the current subdivision level.
func (s *State) Level() int {
	return s.level
}

// Mesh returns the current mesh. Callers must not modify it.
func (s *State) Mesh() *icosphere.Mesh {
	return s.mesh
}

// SetLevel switches to level. On error the previous mesh is kept.
func (s *State) SetLevel(level int) error {
	if level == s.level {
		return nil
	}
	mesh, err := s.builder.Build(level)
	if err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	s.level = level
	s.mesh = mesh
	s.dirty = true
	s.log.Info("subdivision changed",
		zap.Int("level", level),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return nil
}

// Increase moves one level up, stopping at icosphere.MaxLevel.
func (s *State) Increase() error {
	if s.level >= icosphere.MaxLevel {
		return nil
	}
	return s.SetLevel(s.level + 1)
}

// Decrease moves one level down, stopping at zero.
func (s *State) Decrease() error {
	if s.level <= 0 {
		return nil
	}
	return s.SetLevel(s.level - 1)
}

// TakeDirty reports whether the mesh changed since the last call.
func (s *State) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// Update advances the spin animation by dt seconds.
func (s *State) Update(dt float64) {
	if !s.Spinning || s.SpinSpeed == 0 {
		return
	}
	s.angle = math32.Mod(s.angle+s.SpinSpeed*float32(dt), 2*math32.Pi)
}

// Angle returns the current spin angle in radians.
func (s *State) Angle() float32 {
	return s.angle
}

// ResetSpin returns the sphere to its initial orientation.
func (s *State) ResetSpin() {
	s.angle = 0
}

// Bounds returns the corners of the current mesh's bounding box.
func (s *State) Bounds() (min, max math.Vec3) {
	b := s.mesh.Bounds()
	return b.Min, b.Max
}

// ModelMatrix rotates the sphere about Y by the spin angle.
func (s *State) ModelMatrix() math.Mat4 {
	return math.RotateY(s.angle)
}

// SetLightAngles points the light from the given azimuth and elevation,
// in degrees, keeping its color.
func (s *State) SetLightAngles(azimuth, elevation float32) {
	s.Light = lighting.FromAngles(azimuth, elevation, s.Light.Color)
}

// Stats returns counts for the current mesh.
func (s *State) Stats() Stats {
	return Stats{
		Level:     s.level,
		Vertices:  s.mesh.VertexCount(),
		Triangles: s.mesh.TriangleCount(),
		Floats:    s.mesh.VertexCount() * icosphere.FloatsPerVertex,
	}
}

// String formats stats for a status line or window title.
func (st Stats) String() string {
	return fmt.Sprintf("level %d: %d vertices, %d triangles", st.Level, st.Vertices, st.Triangles)
}

// objectName is the OBJ "o" name for the current level.
func (s *State) objectName() string {
	return fmt.Sprintf("icosphere_%d", s.level)
}

// WriteOBJ writes the current mesh as Wavefront OBJ.
func (s *State) WriteOBJ(w io.Writer) error {
	return formats.FromMesh(s.objectName(), s.mesh).Write(w)
}

// ExportOBJ writes the current mesh to path, creating parent directories.
func (s *State) ExportOBJ(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := s.WriteOBJ(&buf); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	s.log.Info("mesh exported", zap.String("path", path), zap.Int("level", s.level))
	return nil
}

// ApplyTo copies the current settings into cfg for saving.
func (s *State) ApplyTo(cfg *config.Config) {
	cfg.Sphere.Subdivisions = s.level
	cfg.Sphere.ObjectColor = s.ObjectColor
	cfg.Graphics.ClearColor = s.Background
	cfg.Sphere.LightColor = s.Light.Color
	cfg.Sphere.LightDirection = s.Light.Direction.Array()
	cfg.Sphere.SpinSpeed = s.SpinSpeed
	if !s.Spinning {
		cfg.Sphere.SpinSpeed = 0
	}
	cfg.Sphere.Wireframe = s.Wireframe
}

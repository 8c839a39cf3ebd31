package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/icosphere/internal/engine/lighting"
	"github.com/Faultbox/icosphere/pkg/icosphere"
	"github.com/Faultbox/icosphere/pkg/math"
)

func TestUploadData(t *testing.T) {
	mesh, err := icosphere.Subdivide(icosphere.Icosahedron(), 1)
	require.NoError(t, err)

	vertices, indices, err := uploadData(mesh)
	require.NoError(t, err)
	assert.Len(t, vertices, 42*icosphere.FloatsPerVertex)
	assert.Len(t, indices, 80*3)
	assert.Equal(t, mesh.Indices, indices)
}

func TestUploadDataRejects(t *testing.T) {
	_, _, err := uploadData(nil)
	assert.ErrorIs(t, err, ErrEmptyMesh)

	_, _, err = uploadData(&icosphere.Mesh{})
	assert.ErrorIs(t, err, ErrEmptyMesh)

	bad := icosphere.Icosahedron()
	bad.Indices = append(bad.Indices, 99, 0, 1)
	_, _, err = uploadData(bad)
	assert.True(t, errors.Is(err, icosphere.ErrInvalidMesh), "got %v", err)
}

func TestComputeUniforms(t *testing.T) {
	scene := Scene{
		Model:      math.Translate(1, 2, 3),
		View:       math.Identity(),
		Projection: math.Identity(),
		Light:      lighting.DefaultDirectional(),
	}

	u := computeUniforms(scene)
	assert.Equal(t, scene.Model, u.mvp)
	assert.Equal(t, math.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}, u.normal)
	assert.InDelta(t, 0.70710678, u.lightDir[0], 1e-6)
	assert.InDelta(t, 0.70710678, u.lightDir[1], 1e-6)
	assert.Zero(t, u.lightDir[2])
}

func TestComputeUniformsOrder(t *testing.T) {
	// Projection * View * Model: the model translation is applied first.
	scene := Scene{
		Model:      math.Translate(0, 0, -5),
		View:       math.Scale(2, 2, 2),
		Projection: math.Identity(),
		Light:      lighting.DefaultDirectional(),
	}
	p := computeUniforms(scene).mvp.TransformVec3(math.Vec3{})
	assert.Equal(t, math.Vec3{Z: -10}, p)
}

func TestRendererStateWithoutGL(t *testing.T) {
	r := &Renderer{config: Config{Width: 800, Height: 400, ClearColor: [3]float32{0.2, 0.3, 0.3}}}

	assert.False(t, r.Wireframe())
	r.SetWireframe(true)
	assert.True(t, r.Wireframe())

	r.SetClearColor([3]float32{1, 1, 1})
	assert.Equal(t, [3]float32{1, 1, 1}, r.config.ClearColor)
	assert.InDelta(t, 2, r.Aspect(), 1e-6)
}

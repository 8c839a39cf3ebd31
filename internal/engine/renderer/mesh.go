package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/icosphere/pkg/icosphere"
)

// ErrEmptyMesh is returned when a mesh has nothing to draw.
var ErrEmptyMesh = errors.New("empty mesh")

const floatSize = 4

// SphereMesh is an icosphere uploaded to the GPU: one interleaved VBO of
// position+normal and one uint32 EBO.
type SphereMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	vertCount  int
}

// NewSphereMesh uploads m. Requires a current GL context.
func NewSphereMesh(m *icosphere.Mesh) (*SphereMesh, error) {
	sm := &SphereMesh{}
	gl.GenVertexArrays(1, &sm.vao)
	gl.GenBuffers(1, &sm.vbo)
	gl.GenBuffers(1, &sm.ebo)

	gl.BindVertexArray(sm.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sm.vbo)
	stride := int32(icosphere.FloatsPerVertex * floatSize)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*floatSize)
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, sm.ebo)
	gl.BindVertexArray(0)

	if err := sm.Update(m); err != nil {
		sm.Delete()
		return nil, err
	}
	return sm, nil
}

// Update replaces the buffer contents with m.
func (sm *SphereMesh) Update(m *icosphere.Mesh) error {
	vertices, indices, err := uploadData(m)
	if err != nil {
		return err
	}

	gl.BindVertexArray(sm.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, sm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	sm.indexCount = int32(len(indices))
	sm.vertCount = m.VertexCount()
	return nil
}

// uploadData returns the interleaved vertex buffer and index list for m.
func uploadData(m *icosphere.Mesh) ([]float32, []uint32, error) {
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, nil, ErrEmptyMesh
	}
	if err := m.Validate(); err != nil {
		return nil, nil, fmt.Errorf("upload: %w", err)
	}
	return icosphere.Flatten(m), m.Indices, nil
}

// IndexCount returns the number of indices drawn.
func (sm *SphereMesh) IndexCount() int32 {
	return sm.indexCount
}

// VertexCount returns the number of uploaded vertices.
func (sm *SphereMesh) VertexCount() int {
	return sm.vertCount
}

func (sm *SphereMesh) draw() {
	gl.BindVertexArray(sm.vao)
	gl.DrawElements(gl.TRIANGLES, sm.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (sm *SphereMesh) Delete() {
	if sm.ebo != 0 {
		gl.DeleteBuffers(1, &sm.ebo)
		sm.ebo = 0
	}
	if sm.vbo != 0 {
		gl.DeleteBuffers(1, &sm.vbo)
		sm.vbo = 0
	}
	if sm.vao != 0 {
		gl.DeleteVertexArrays(1, &sm.vao)
		sm.vao = 0
	}
}

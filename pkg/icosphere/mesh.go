// Package icosphere generates unit-radius sphere meshes by recursively
// subdividing a regular icosahedron.
//
// Every vertex produced by this package lies on the unit sphere centered at
// the origin, so a vertex normal is always equal to its position. Meshes are
// returned with counter-clockwise winding seen from outside the sphere.
package icosphere

import (
	"fmt"

	"github.com/Faultbox/icosphere/pkg/math"
)

// FloatsPerVertex is the stride of the interleaved buffer produced by Flatten.
const FloatsPerVertex = 6

// Vertex is a point on the unit sphere with its outward normal.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Mesh holds vertices and triangle indices ready for GPU upload.
// A vertex's index in Vertices is its identity; Indices holds three entries
// per triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// Bounds returns the bounding box of all vertex positions.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	return b
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Indices, m.Indices)
	return c
}

// Validate checks that the index list describes whole triangles referencing
// existing vertices.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at position %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// Flatten interleaves position and normal for each vertex, in vertex order:
// x, y, z, nx, ny, nz. The result pairs with Mesh.Indices for an indexed draw.
func Flatten(m *Mesh) []float32 {
	data := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
		)
	}
	return data
}

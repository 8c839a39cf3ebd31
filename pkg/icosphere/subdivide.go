package icosphere

import (
	"errors"
	"fmt"
)

// MaxLevel is the deepest subdivision accepted. Level 7 already yields
// 327,680 triangles; each further level multiplies that by four.
const MaxLevel = 7

// MaxTriangles caps the size of any subdivision result: an icosahedron at
// MaxLevel.
const MaxTriangles = 20 << (2 * MaxLevel)

// degenerateLength is the midpoint length below which an edge cannot be
// projected back onto the sphere.
const degenerateLength = 1e-6

// Subdivision errors.
var (
	ErrInvalidLevel   = errors.New("invalid subdivision level")
	ErrInvalidMesh    = errors.New("invalid mesh")
	ErrDegenerateEdge = errors.New("degenerate edge: endpoints are antipodal")
)

// edgeKey identifies an undirected edge by its vertex indices, smaller first.
type edgeKey struct {
	a, b uint32
}

func newEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// CheckLevel returns ErrInvalidLevel unless 0 <= level <= MaxLevel.
func CheckLevel(level int) error {
	if level < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidLevel, level)
	}
	if level > MaxLevel {
		return fmt.Errorf("%w: %d exceeds maximum of %d", ErrInvalidLevel, level, MaxLevel)
	}
	return nil
}

// ExpectedCounts returns the vertex and triangle counts of an icosphere at
// the given level: F = 20·4^L and V = F/2 + 2.
func ExpectedCounts(level int) (vertices, triangles int) {
	triangles = 20 << (2 * level)
	vertices = 12 + 10*((1<<(2*level))-1)
	return vertices, triangles
}

// Subdivide splits every triangle of m into four, levels times, projecting
// each new edge midpoint onto the unit sphere. Edges shared by two triangles
// produce a single midpoint vertex. Existing vertices keep their indices.
//
// m is not modified. Invalid levels, malformed meshes and results larger
// than MaxTriangles are rejected before any allocation.
func Subdivide(m *Mesh, levels int) (*Mesh, error) {
	if err := CheckLevel(levels); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: nil mesh", ErrInvalidMesh)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	vertCap := len(m.Vertices)
	triCount := m.TriangleCount()
	for range levels {
		vertCap += triCount * 3 / 2
		triCount *= 4
		if triCount > MaxTriangles {
			return nil, fmt.Errorf("%w: %d levels on %d triangles exceeds %d triangles",
				ErrInvalidLevel, levels, m.TriangleCount(), MaxTriangles)
		}
	}

	vertices := make([]Vertex, len(m.Vertices), vertCap)
	copy(vertices, m.Vertices)
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)

	for level := range levels {
		var err error
		vertices, indices, err = subdivideOnce(vertices, indices)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", level+1, err)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices}, nil
}

// subdivideOnce performs a single pass. The midpoint cache lives only for the
// duration of the pass.
func subdivideOnce(vertices []Vertex, indices []uint32) ([]Vertex, []uint32, error) {
	cache := make(map[edgeKey]uint32, len(indices)/2)
	out := make([]uint32, 0, len(indices)*4)

	midpoint := func(a, b uint32) (uint32, error) {
		key := newEdgeKey(a, b)
		if idx, ok := cache[key]; ok {
			return idx, nil
		}

		mid := vertices[a].Position.Midpoint(vertices[b].Position)
		if mid.Length() < degenerateLength {
			return 0, fmt.Errorf("%w: vertices %d and %d", ErrDegenerateEdge, key.a, key.b)
		}
		p := mid.Normalize()

		idx := uint32(len(vertices))
		vertices = append(vertices, Vertex{Position: p, Normal: p})
		cache[key] = idx
		return idx, nil
	}

	for i := 0; i < len(indices); i += 3 {
		v1, v2, v3 := indices[i], indices[i+1], indices[i+2]

		a, err := midpoint(v1, v2)
		if err != nil {
			return nil, nil, err
		}
		b, err := midpoint(v2, v3)
		if err != nil {
			return nil, nil, err
		}
		c, err := midpoint(v3, v1)
		if err != nil {
			return nil, nil, err
		}

		out = append(out,
			v1, a, c,
			v2, b, a,
			v3, c, b,
			a, b, c,
		)
	}

	return vertices, out, nil
}

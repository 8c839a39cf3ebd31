package icosphere

import "github.com/Faultbox/icosphere/pkg/math"

// Icosahedron vertex coordinates. Poles sit on ±Z; the two rings of five lie
// at z = ±1/√5 with radius 2/√5, the lower ring rotated by 36°.
var seedPositions = [12]math.Vec3{
	{X: 0, Y: 0, Z: 1},
	{X: 0.894427191, Y: 0, Z: 0.447213595},
	{X: 0.276393202, Y: 0.850650808, Z: 0.447213595},
	{X: -0.723606798, Y: 0.525731112, Z: 0.447213595},
	{X: -0.723606798, Y: -0.525731112, Z: 0.447213595},
	{X: 0.276393202, Y: -0.850650808, Z: 0.447213595},
	{X: 0.723606798, Y: 0.525731112, Z: -0.447213595},
	{X: -0.276393202, Y: 0.850650808, Z: -0.447213595},
	{X: -0.894427191, Y: 0, Z: -0.447213595},
	{X: -0.276393202, Y: -0.850650808, Z: -0.447213595},
	{X: 0.723606798, Y: -0.525731112, Z: -0.447213595},
	{X: 0, Y: 0, Z: -1},
}

// Icosahedron faces, counter-clockwise from outside.
var seedFaces = [20][3]uint32{
	{0, 1, 2},
	{0, 2, 3},
	{0, 3, 4},
	{0, 4, 5},
	{0, 5, 1},
	{1, 6, 2},
	{2, 7, 3},
	{3, 8, 4},
	{4, 9, 5},
	{5, 10, 1},
	{1, 10, 6},
	{2, 6, 7},
	{3, 7, 8},
	{4, 8, 9},
	{5, 9, 10},
	{6, 11, 7},
	{7, 11, 8},
	{8, 11, 9},
	{9, 11, 10},
	{10, 11, 6},
}

// Icosahedron returns a new copy of the 12-vertex, 20-face seed mesh.
func Icosahedron() *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, len(seedPositions)),
		Indices:  make([]uint32, 0, len(seedFaces)*3),
	}
	for i, p := range seedPositions {
		m.Vertices[i] = Vertex{Position: p, Normal: p}
	}
	for _, f := range seedFaces {
		m.Indices = append(m.Indices, f[0], f[1], f[2])
	}
	return m
}

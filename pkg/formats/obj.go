// Package formats reads and writes mesh interchange formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/icosphere/pkg/icosphere"
	"github.com/Faultbox/icosphere/pkg/math"
)

// OBJ format errors.
var (
	ErrInvalidOBJ    = errors.New("invalid OBJ data")
	ErrOBJIndexRange = errors.New("OBJ face index out of range")
)

// OBJ is a triangle mesh in Wavefront OBJ form. Face indices are zero-based;
// the one-based OBJ numbering is applied on write and removed on parse.
type OBJ struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Faces     [][3]uint32

	// FaceNormals holds the normal index of each face corner, parallel to
	// Faces. It is set by ParseOBJ only when every corner names a normal.
	FaceNormals [][3]uint32
}

// FromMesh converts an icosphere mesh. Normals are written with the same
// index as their vertex.
func FromMesh(name string, m *icosphere.Mesh) *OBJ {
	o := &OBJ{
		Name:      name,
		Positions: make([][3]float32, len(m.Vertices)),
		Normals:   make([][3]float32, len(m.Vertices)),
		Faces:     make([][3]uint32, m.TriangleCount()),
	}
	for i, v := range m.Vertices {
		o.Positions[i] = v.Position.Array()
		o.Normals[i] = v.Normal.Array()
	}
	for i := range o.Faces {
		o.Faces[i] = m.Triangle(i)
	}
	return o
}

// ToMesh converts the OBJ back into a mesh. Vertex normals come from the
// face corners' normal indices when present, else from Normals paired by
// position index when the counts match, else from the normalized positions.
// A position referenced with different normals gets their normalized sum.
func (o *OBJ) ToMesh() (*icosphere.Mesh, error) {
	m := &icosphere.Mesh{
		Vertices: make([]icosphere.Vertex, len(o.Positions)),
		Indices:  make([]uint32, 0, len(o.Faces)*3),
	}
	pairNormals := len(o.Normals) == len(o.Positions)
	for i, p := range o.Positions {
		pos := math.Vec3{X: p[0], Y: p[1], Z: p[2]}
		n := pos.Normalize()
		if pairNormals {
			n = vec3(o.Normals[i])
		}
		m.Vertices[i] = icosphere.Vertex{Position: pos, Normal: n}
	}
	for _, f := range o.Faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2])
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if len(o.FaceNormals) == len(o.Faces) && len(o.FaceNormals) > 0 {
		if err := o.applyFaceNormals(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (o *OBJ) applyFaceNormals(m *icosphere.Mesh) error {
	const unset = -1
	first := make([]int, len(m.Vertices))
	for i := range first {
		first[i] = unset
	}
	sums := make(map[uint32]math.Vec3)

	for fi, f := range o.Faces {
		for c, vi := range f {
			ni := o.FaceNormals[fi][c]
			if int(ni) >= len(o.Normals) {
				return fmt.Errorf("%w: normal %d (have %d normals)", ErrOBJIndexRange, ni+1, len(o.Normals))
			}
			switch {
			case first[vi] == unset:
				first[vi] = int(ni)
			case first[vi] != int(ni):
				if _, ok := sums[vi]; !ok {
					sums[vi] = vec3(o.Normals[first[vi]])
				}
				sums[vi] = sums[vi].Add(vec3(o.Normals[ni]))
			}
		}
	}

	for vi, ni := range first {
		if ni != unset {
			m.Vertices[vi].Normal = vec3(o.Normals[ni])
		}
	}
	for vi, sum := range sums {
		m.Vertices[vi].Normal = sum.Normalize()
	}
	return nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// Write encodes the OBJ as text.
func (o *OBJ) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d vertices, %d faces\n", len(o.Positions), len(o.Faces))
	if o.Name != "" {
		fmt.Fprintf(bw, "o %s\n", o.Name)
	}

	var buf []byte
	writeVec := func(prefix string, v [3]float32) {
		buf = append(buf[:0], prefix...)
		for _, c := range v {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, float64(c), 'g', -1, 32)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	for _, p := range o.Positions {
		writeVec("v", p)
	}
	for _, n := range o.Normals {
		writeVec("vn", n)
	}

	withNormals := len(o.Normals) == len(o.Positions)
	for _, f := range o.Faces {
		if withNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", f[0]+1, f[0]+1, f[1]+1, f[1]+1, f[2]+1, f[2]+1)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
		}
	}

	return bw.Flush()
}

// Bytes returns the encoded OBJ.
func (o *OBJ) Bytes() []byte {
	var buf bytes.Buffer
	_ = o.Write(&buf)
	return buf.Bytes()
}

// ParseOBJ parses OBJ text. Supported statements are o, v, vn and f; faces
// with more than three corners are fan-triangulated. Normal indices in
// corners such as "3//2" are kept in FaceNormals. Texture coordinates,
// groups and materials are skipped.
func ParseOBJ(data []byte) (*OBJ, error) {
	o := &OBJ{}
	cornerNormals := true
	scanner := bufio.NewScanner(bytes.NewReader(data))

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "o":
			if len(fields) > 1 {
				o.Name = strings.Join(fields[1:], " ")
			}
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: vertex: %v", ErrInvalidOBJ, lineNo, err)
			}
			o.Positions = append(o.Positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: normal: %v", ErrInvalidOBJ, lineNo, err)
			}
			o.Normals = append(o.Normals, n)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 corners", ErrInvalidOBJ, lineNo)
			}
			corners := make([]uint32, 0, len(fields)-1)
			normals := make([]uint32, 0, len(fields)-1)
			for _, f := range fields[1:] {
				idx, nidx, hasNormal, err := parseFaceCorner(f, len(o.Positions), len(o.Normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, idx)
				normals = append(normals, nidx)
				cornerNormals = cornerNormals && hasNormal
			}
			for i := 1; i+1 < len(corners); i++ {
				o.Faces = append(o.Faces, [3]uint32{corners[0], corners[i], corners[i+1]})
				o.FaceNormals = append(o.FaceNormals, [3]uint32{normals[0], normals[i], normals[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}
	if !cornerNormals {
		o.FaceNormals = nil
	}

	return o, nil
}

func parseVec3(fields []string) ([3]float32, error) {
	var v [3]float32
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseFaceCorner reads a face corner such as "3", "3/1", "3//2" or
// "3/1/2" and returns the zero-based position index and, when present,
// the zero-based normal index.
func parseFaceCorner(corner string, vertexCount, normalCount int) (pos, normal uint32, hasNormal bool, err error) {
	parts := strings.Split(corner, "/")
	pos, err = resolveIndex(parts[0], vertexCount, "vertices")
	if err != nil {
		return 0, 0, false, fmt.Errorf("face corner %q: %w", corner, err)
	}
	if len(parts) < 3 || parts[2] == "" {
		return pos, 0, false, nil
	}
	normal, err = resolveIndex(parts[2], normalCount, "normals")
	if err != nil {
		return 0, 0, false, fmt.Errorf("face corner %q: %w", corner, err)
	}
	return pos, normal, true, nil
}

// resolveIndex converts a one-based OBJ reference to zero-based, resolving
// negative references relative to count.
func resolveIndex(ref string, count int, what string) (uint32, error) {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("%w: bad index %q", ErrInvalidOBJ, ref)
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: %d (have %d %s)", ErrOBJIndexRange, n, count, what)
	}
	return uint32(n - 1), nil
}

package icosphere

import (
	"time"

	"go.uber.org/zap"
)

// Builder produces icospheres and keeps every level it has built, so that
// switching back and forth between levels does not regenerate geometry.
// Returned meshes are shared and must be treated as read-only.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	log   *zap.Logger
	cache map[int]*Mesh
}

// NewBuilder creates a builder. A nil logger disables logging.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		log:   log,
		cache: make(map[int]*Mesh),
	}
}

// Build returns the icosphere at the given subdivision level.
func (b *Builder) Build(level int) (*Mesh, error) {
	if err := CheckLevel(level); err != nil {
		return nil, err
	}
	if m, ok := b.cache[level]; ok {
		return m, nil
	}

	// Start from the deepest cached level below the request.
	base, baseLevel := Icosahedron(), 0
	for l := level - 1; l > 0; l-- {
		if m, ok := b.cache[l]; ok {
			base, baseLevel = m, l
			break
		}
	}

	start := time.Now()
	m, err := Subdivide(base, level-baseLevel)
	if err != nil {
		return nil, err
	}

	b.log.Debug("icosphere built",
		zap.Int("level", level),
		zap.Int("from_level", baseLevel),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	b.cache[level] = m
	return m, nil
}

// Cached reports whether the given level has already been built.
func (b *Builder) Cached(level int) bool {
	_, ok := b.cache[level]
	return ok
}

// Reset drops all cached meshes.
func (b *Builder) Reset() {
	clear(b.cache)
}

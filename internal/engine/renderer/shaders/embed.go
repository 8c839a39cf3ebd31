// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SphereVertexShader transforms positions and normals to clip and world space.
//
//go:embed sphere.vert
var SphereVertexShader string

// SphereFragmentShader applies single directional Lambert lighting.
//
//go:embed sphere.frag
var SphereFragmentShader string

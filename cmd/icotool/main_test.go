package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/icosphere/pkg/formats"
	"github.com/Faultbox/icosphere/pkg/icosphere"
)

func runTool(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runTool(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, stderr = runTool(t, "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Unknown command: bogus")

	code, stdout, _ := runTool(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "icotool generate")
}

func TestInfo(t *testing.T) {
	code, stdout, _ := runTool(t, "info", "2")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"0", "12", "20", "288"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "162", "320", "3888"}, strings.Fields(lines[3]))
}

func TestInfoRejectsLevel(t *testing.T) {
	code, _, stderr := runTool(t, "info", "-1")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestGenerateStdout(t *testing.T) {
	code, stdout, _ := runTool(t, "generate", "1")
	require.Equal(t, 0, code)

	obj, err := formats.ParseOBJ([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "icosphere_1", obj.Name)
	assert.Len(t, obj.Positions, 42)
	assert.Len(t, obj.Faces, 80)
}

func TestGenerateThenCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.obj")

	code, stdout, stderr := runTool(t, "generate", "-o", path, "-name", "ball", "2")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "162 vertices, 320 triangles")

	code, stdout, stderr = runTool(t, "check", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Object:    ball")
	assert.Contains(t, stdout, "Euler:     2")
	assert.Contains(t, stdout, "OK")
}

func TestCheckDetectsOpenMesh(t *testing.T) {
	mesh := icosphere.Icosahedron()
	mesh.Indices = mesh.Indices[3:]

	path := filepath.Join(t.TempDir(), "open.obj")
	require.NoError(t, os.WriteFile(path, formats.FromMesh("open", mesh).Bytes(), 0644))

	code, stdout, stderr := runTool(t, "check", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "not shared by exactly two triangles")
	assert.Contains(t, stderr, "check(s) failed")
}

func TestCheckSphereFlagsInwardWinding(t *testing.T) {
	mesh := icosphere.Icosahedron()
	mesh.Indices[1], mesh.Indices[2] = mesh.Indices[2], mesh.Indices[1]

	r := checkSphere(mesh)
	assert.Contains(t, r.problems, "1 triangle(s) wound inward")
}

func TestDump(t *testing.T) {
	code, stdout, _ := runTool(t, "dump", "-n", "2", "0")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	fields := strings.Fields(lines[0])
	assert.Equal(t, []string{"0", "0.000000", "0.000000", "1.000000", "0.000000", "0.000000", "1.000000"}, fields)
	assert.Equal(t, "... (10 more)", lines[2])
}

func TestDumpUsage(t *testing.T) {
	code, _, stderr := runTool(t, "dump")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "icotool dump")
}

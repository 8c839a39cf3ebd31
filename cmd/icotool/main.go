// icotool is a headless utility for generating and inspecting icospheres.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chewxy/math32"

	"github.com/Faultbox/icosphere/pkg/formats"
	"github.com/Faultbox/icosphere/pkg/icosphere"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]
	var err error
	switch command {
	case "info":
		err = cmdInfo(rest, stdout)
	case "generate", "gen":
		err = cmdGenerate(rest, stdout)
	case "check":
		err = cmdCheck(rest, stdout)
	case "dump":
		err = cmdDump(rest, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `icotool - icosphere generator

Usage:
  icotool <command> [options]

Commands:
  info [max-level]                 Show vertex and triangle counts per level
  generate [-o file.obj] <level>   Write a subdivided sphere as Wavefront OBJ
  check <file.obj>                 Verify an OBJ is a closed unit sphere
  dump [-n count] <level>          Print the interleaved position+normal buffer

Examples:
  icotool info
  icotool generate -o sphere.obj 3
  icotool check sphere.obj
  icotool dump -n 4 0`)
}

func parseLevel(s string) (int, error) {
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid level %q: %w", s, err)
	}
	if err := icosphere.CheckLevel(level); err != nil {
		return 0, err
	}
	return level, nil
}

func cmdInfo(args []string, out io.Writer) error {
	maxLevel := icosphere.MaxLevel
	if len(args) > 0 {
		var err error
		if maxLevel, err = parseLevel(args[0]); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "%-6s %10s %10s %12s\n", "level", "vertices", "triangles", "buffer")
	for level := 0; level <= maxLevel; level++ {
		v, t := icosphere.ExpectedCounts(level)
		fmt.Fprintf(out, "%-6d %10d %10d %12d\n", level, v, t, v*icosphere.FloatsPerVertex*4)
	}
	return nil
}

func cmdGenerate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	output := fs.String("o", "", "Output file (default stdout)")
	name := fs.String("name", "", "Object name (default icosphere_<level>)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: icotool generate [-o file.obj] <level>", errUsage)
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: icotool generate [-o file.obj] <level>", errUsage)
	}

	level, err := parseLevel(fs.Arg(0))
	if err != nil {
		return err
	}
	mesh, err := icosphere.Subdivide(icosphere.Icosahedron(), level)
	if err != nil {
		return err
	}

	objName := *name
	if objName == "" {
		objName = fmt.Sprintf("icosphere_%d", level)
	}
	obj := formats.FromMesh(objName, mesh)

	if *output == "" {
		return obj.Write(out)
	}
	if err := os.WriteFile(*output, obj.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s: %d vertices, %d triangles\n", *output, mesh.VertexCount(), mesh.TriangleCount())
	return nil
}

func cmdCheck(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: icotool check <file.obj>", errUsage)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return err
	}
	mesh, err := obj.ToMesh()
	if err != nil {
		return err
	}

	report := checkSphere(mesh)
	fmt.Fprintf(out, "Object:    %s\n", obj.Name)
	fmt.Fprintf(out, "Vertices:  %d\n", mesh.VertexCount())
	fmt.Fprintf(out, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(out, "Max |r-1|: %.3g\n", report.maxRadiusError)
	fmt.Fprintf(out, "Euler:     %d\n", report.euler)

	if len(report.problems) > 0 {
		for _, p := range report.problems {
			fmt.Fprintf(out, "FAIL: %s\n", p)
		}
		return fmt.Errorf("%d check(s) failed", len(report.problems))
	}
	fmt.Fprintln(out, "OK")
	return nil
}

type sphereReport struct {
	maxRadiusError float32
	euler          int
	problems       []string
}

// checkSphere verifies unit radius, closed 2-manifold topology and
// outward winding.
func checkSphere(m *icosphere.Mesh) sphereReport {
	var r sphereReport

	for _, v := range m.Vertices {
		r.maxRadiusError = math32.Max(r.maxRadiusError, math32.Abs(v.Position.Length()-1))
	}
	if r.maxRadiusError > 1e-5 {
		r.problems = append(r.problems, fmt.Sprintf("vertex off unit sphere by %.3g", r.maxRadiusError))
	}

	type edge struct{ a, b uint32 }
	directed := make(map[edge]int, len(m.Indices))
	inward := 0
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		for k := 0; k < 3; k++ {
			directed[edge{t[k], t[(k+1)%3]}]++
		}
		p0, p1, p2 := m.Vertices[t[0]].Position, m.Vertices[t[1]].Position, m.Vertices[t[2]].Position
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		centroid := p0.Add(p1).Add(p2).Scale(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			inward++
		}
	}
	if inward > 0 {
		r.problems = append(r.problems, fmt.Sprintf("%d triangle(s) wound inward", inward))
	}

	open := 0
	for e, n := range directed {
		if n != 1 || directed[edge{e.b, e.a}] != 1 {
			open++
		}
	}
	if open > 0 {
		r.problems = append(r.problems, fmt.Sprintf("%d edge(s) not shared by exactly two triangles", open))
	}

	edges := len(directed) / 2
	r.euler = m.VertexCount() - edges + m.TriangleCount()
	if r.euler != 2 {
		r.problems = append(r.problems, fmt.Sprintf("Euler characteristic %d, want 2", r.euler))
	}
	return r
}

func cmdDump(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("n", 0, "Limit output to N vertices (0 = all)")
	if err := fs.Parse(args); err != nil || fs.NArg() < 1 {
		return fmt.Errorf("%w: icotool dump [-n count] <level>", errUsage)
	}

	level, err := parseLevel(fs.Arg(0))
	if err != nil {
		return err
	}
	mesh, err := icosphere.Subdivide(icosphere.Icosahedron(), level)
	if err != nil {
		return err
	}

	buf := icosphere.Flatten(mesh)
	count := mesh.VertexCount()
	if *limit > 0 && *limit < count {
		count = *limit
	}
	for i := 0; i < count; i++ {
		f := buf[i*icosphere.FloatsPerVertex : (i+1)*icosphere.FloatsPerVertex]
		fmt.Fprintf(out, "%5d  % .6f % .6f % .6f  % .6f % .6f % .6f\n", i, f[0], f[1], f[2], f[3], f[4], f[5])
	}
	if count < mesh.VertexCount() {
		fmt.Fprintf(out, "... (%d more)\n", mesh.VertexCount()-count)
	}
	return nil
}


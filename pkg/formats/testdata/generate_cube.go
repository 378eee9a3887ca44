//go:build ignore

// This program generates the unit cube fixtures used by the decoder tests.
// Run with: go run generate_cube.go
package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

var vertices = [8][3]float32{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// Counter-clockwise seen from outside.
var faces = [12][3]int{
	{0, 2, 1}, {0, 3, 2}, // bottom
	{4, 5, 6}, {4, 6, 7}, // top
	{0, 1, 5}, {0, 5, 4}, // front
	{3, 7, 6}, {3, 6, 2}, // back
	{0, 4, 7}, {0, 7, 3}, // left
	{1, 2, 6}, {1, 6, 5}, // right
}

func main() {
	must(os.WriteFile("cube_binary.stl", binarySTL(), 0644))
	must(os.WriteFile("cube_ascii.stl", []byte(asciiSTL()), 0644))
	must(os.WriteFile("cube.ply", []byte(asciiPLY()), 0644))

	println("Generated cube_binary.stl, cube_ascii.stl, cube.ply")
	println("  - 8 vertices, 12 triangles, outward normals")
}

func binarySTL() []byte {
	var buf bytes.Buffer

	header := make([]byte, 80)
	copy(header, "unit cube, meshproc testdata")
	buf.Write(header)
	binary.Write(&buf, binary.LittleEndian, uint32(len(faces)))

	for _, f := range faces {
		binary.Write(&buf, binary.LittleEndian, normal(f))
		for _, i := range f {
			binary.Write(&buf, binary.LittleEndian, vertices[i])
		}
		binary.Write(&buf, binary.LittleEndian, uint16(0)) // attribute
	}
	return buf.Bytes()
}

func asciiSTL() string {
	var b strings.Builder
	b.WriteString("solid unit_cube\n")
	for _, f := range faces {
		n := normal(f)
		fmt.Fprintf(&b, "  facet normal %g %g %g\n", n[0], n[1], n[2])
		b.WriteString("    outer loop\n")
		for _, i := range f {
			v := vertices[i]
			fmt.Fprintf(&b, "      vertex %g %g %g\n", v[0], v[1], v[2])
		}
		b.WriteString("    endloop\n")
		b.WriteString("  endfacet\n")
	}
	b.WriteString("endsolid unit_cube\n")
	return b.String()
}

func asciiPLY() string {
	var b strings.Builder
	b.WriteString("ply\nformat ascii 1.0\ncomment unit cube, meshproc testdata\n")
	fmt.Fprintf(&b, "element vertex %d\n", len(vertices))
	b.WriteString("property float x\nproperty float y\nproperty float z\n")
	fmt.Fprintf(&b, "element face %d\n", len(faces))
	b.WriteString("property list uchar int vertex_indices\nend_header\n")
	for _, v := range vertices {
		fmt.Fprintf(&b, "%g %g %g\n", v[0], v[1], v[2])
	}
	for _, f := range faces {
		fmt.Fprintf(&b, "3 %d %d %d\n", f[0], f[1], f[2])
	}
	return b.String()
}

// normal is the axis-aligned (v1-v0) x (v2-v0); cube faces need no normalizing.
func normal(f [3]int) [3]float32 {
	a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
	u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	w := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	return [3]float32{
		u[1]*w[2] - u[2]*w[1],
		u[2]*w[0] - u[0]*w[2],
		u[0]*w[1] - u[1]*w[0],
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

package formats

import (
	"github.com/Faultbox/meshproc/pkg/math"
)

// Triangle is a single facet with its normal and vertices.
// Vertex order defines the winding.
type Triangle struct {
	Normal   math.Vec3
	Vertices [3]math.Vec3
}

// FacetNormal returns the unit normal derived from the vertex winding
// by the right-hand rule. Degenerate triangles yield a zero vector.
func (t Triangle) FacetNormal() math.Vec3 {
	n := t.Vertices[1].Sub(t.Vertices[0]).Cross(t.Vertices[2].Sub(t.Vertices[0]))
	if n.IsZero() {
		return math.Vec3{}
	}
	return n.Normalize()
}

// Mesh is the decoded triangle list of a mesh file.
type Mesh struct {
	Format    Format
	Encoding  string // "binary" or "ascii"
	Name      string // STL solid/header name, if any
	Empty     bool   // Source was a zero-byte file
	Triangles []Triangle
}

// Len returns the number of triangles.
func (m *Mesh) Len() int {
	return len(m.Triangles)
}

// Bounds returns the axis-aligned bounding box of all vertices.
// ok is false when the mesh has no triangles.
func (m *Mesh) Bounds() (lo, hi math.Vec3, ok bool) {
	if len(m.Triangles) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}

	lo = m.Triangles[0].Vertices[0]
	hi = lo
	for _, t := range m.Triangles {
		for _, v := range t.Vertices {
			lo = lo.Min(v)
			hi = hi.Max(v)
		}
	}
	return lo, hi, true
}

// RepairNormals replaces stored normals that are zero or not finite with
// the normal derived from the vertex winding. Returns how many were replaced.
func (m *Mesh) RepairNormals() int {
	repaired := 0
	for i := range m.Triangles {
		n := m.Triangles[i].Normal
		if n.IsFinite() && !n.IsZero() {
			continue
		}
		m.Triangles[i].Normal = m.Triangles[i].FacetNormal()
		repaired++
	}
	return repaired
}

package formats

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/meshproc/pkg/math"
)

// Element and property names the projector relies on.
const (
	PLYVertexElement = "vertex"
	PLYFaceElement   = "face"
)

// plyIndexProperties lists the face index property names, in lookup order.
var plyIndexProperties = []string{"vertex_indices", "vertex_index"}

// Mesh projects the parsed records into triangles.
func (p *PLY) Mesh() (*Mesh, error) {
	triangles, err := p.AppendTriangles(nil)
	if err != nil {
		return nil, err
	}
	return &Mesh{
		Format:    FormatPLY,
		Encoding:  p.Header.Format,
		Triangles: triangles,
	}, nil
}

// Vertices returns the x/y/z position of every vertex record, in file order.
func (p *PLY) Vertices() ([]math.Vec3, error) {
	records, ok := p.Elements[PLYVertexElement]
	if !ok {
		return nil, fmt.Errorf("%w: no %q element", ErrLookup, PLYVertexElement)
	}

	vertices := make([]math.Vec3, 0, len(records))
	for i, rec := range records {
		var c [3]float32
		for j, name := range [3]string{"x", "y", "z"} {
			values := rec[name]
			if len(values) == 0 {
				return nil, fmt.Errorf("%w: vertex %d has no %q property", ErrLookup, i, name)
			}
			c[j] = float32(values[0])
		}
		vertices = append(vertices, vec3(c))
	}
	return vertices, nil
}

// AppendTriangles appends one triangle per face record to dst. Normals are
// derived from the winding since PLY faces carry none; degenerate faces get
// a zero normal.
func (p *PLY) AppendTriangles(dst []Triangle) ([]Triangle, error) {
	vertices, err := p.Vertices()
	if err != nil {
		return nil, err
	}

	faces, ok := p.Elements[PLYFaceElement]
	if !ok {
		return nil, fmt.Errorf("%w: no %q element", ErrLookup, PLYFaceElement)
	}

	for i, rec := range faces {
		indices, err := faceIndices(rec)
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i, err)
		}

		var tri Triangle
		for j, v := range indices {
			idx := stdmath.Trunc(v)
			if !(idx >= 0 && idx < float64(len(vertices))) {
				return nil, fmt.Errorf("%w: face %d references vertex %v of %d", ErrBounds, i, v, len(vertices))
			}
			tri.Vertices[j] = vertices[int(idx)]
		}
		tri.Normal = tri.FacetNormal()
		dst = append(dst, tri)
	}

	return dst, nil
}

// faceIndices finds the index list of a face record and checks it is a triangle.
func faceIndices(rec PLYRecord) (PLYProperty, error) {
	for _, name := range plyIndexProperties {
		indices, ok := rec[name]
		if !ok {
			continue
		}
		if len(indices) != 3 {
			return nil, fmt.Errorf("%w: expected face to have 3 vertices, but found %d", ErrSchema, len(indices))
		}
		return indices, nil
	}
	return nil, fmt.Errorf("%w: face has neither %q nor %q", ErrLookup, plyIndexProperties[0], plyIndexProperties[1])
}

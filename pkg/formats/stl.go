package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Faultbox/meshproc/pkg/encoding"
	"github.com/Faultbox/meshproc/pkg/math"
)

const (
	stlHeaderSize = 80
	stlCountSize  = 4
	stlRecordSize = 50 // 12 float32s + uint16 attribute byte count
)

// Triangle encodings reported in Mesh.Encoding.
const (
	EncodingBinary = "binary"
	EncodingASCII  = "ascii"
)

// stlHeader is the fixed prefix of a binary STL file.
type stlHeader struct {
	Text  [stlHeaderSize]byte
	Count uint32
}

// stlRecord is one packed binary STL triangle.
type stlRecord struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16 // Attribute byte count (ignored)
}

// BinarySTLSize returns the exact byte size of a binary STL file holding
// count triangles.
func BinarySTLSize(count uint32) int64 {
	return stlHeaderSize + stlCountSize + int64(count)*stlRecordSize
}

// ParseSTL parses an STL file from raw bytes.
func ParseSTL(data []byte) (*Mesh, error) {
	return DecodeSTL(bytes.NewReader(data), int64(len(data)))
}

// DecodeSTL decodes an STL stream of the given total size, starting at offset 0.
//
// STL has no reliable magic number: the stream is binary only when its size
// exactly matches the triangle count declared at byte 80. Anything else is
// rewound and read as ASCII. A zero-size stream yields an empty mesh.
func DecodeSTL(r io.ReadSeeker, size int64) (*Mesh, error) {
	if size == 0 {
		return &Mesh{Format: FormatSTL, Empty: true}, nil
	}

	if size >= stlHeaderSize+stlCountSize {
		var header stlHeader
		if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
			return nil, fmt.Errorf("reading STL header: %w", err)
		}
		if size == BinarySTLSize(header.Count) {
			return decodeBinarySTL(r, &header)
		}
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding STL stream: %w", err)
	}
	return decodeASCIISTL(r)
}

// decodeBinarySTL reads header.Count records from r, positioned right after
// the triangle count.
func decodeBinarySTL(r io.Reader, header *stlHeader) (*Mesh, error) {
	mesh := &Mesh{
		Format:    FormatSTL,
		Encoding:  EncodingBinary,
		Name:      encoding.HeaderText(header.Text[:]),
		Triangles: make([]Triangle, 0, header.Count),
	}

	br := bufio.NewReader(r)
	var rec stlRecord
	for i := uint32(0); i < header.Count; i++ {
		if err := binary.Read(br, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("reading STL triangle %d: %w", i, err)
		}
		mesh.Triangles = append(mesh.Triangles, Triangle{
			Normal: vec3(rec.Normal),
			Vertices: [3]math.Vec3{
				vec3(rec.Vertices[0]),
				vec3(rec.Vertices[1]),
				vec3(rec.Vertices[2]),
			},
		})
	}

	return mesh, nil
}

func vec3(f [3]float32) math.Vec3 {
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}
}

// stlState is the position inside an ASCII facet block.
type stlState int

const (
	stlAwaitFacet stlState = iota
	stlAwaitNormalKeyword
	stlAwaitNormal
	stlAwaitOuter
	stlAwaitLoop
	stlAwaitVertexKeyword
	stlAwaitVertex
	stlAwaitEndloop
	stlAwaitEndfacet
)

// decodeASCIISTL runs the facet state machine over whitespace tokens.
// Tokens outside a facet block (solid, endsolid, names) are skipped.
func decodeASCIISTL(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(stlHeaderSize)

	mesh := &Mesh{
		Format:   FormatSTL,
		Encoding: EncodingASCII,
		Name:     encoding.SolidName(head),
	}

	tr := newTokenReader(br)
	state := stlAwaitFacet
	var tri Triangle
	vertex := 0

	for {
		var err error

		switch state {
		case stlAwaitFacet:
			var tok string
			tok, err = tr.Next()
			if err == io.EOF {
				return mesh, nil
			}
			if err != nil {
				return nil, fmt.Errorf("reading ASCII STL: %w", err)
			}
			if tok == "facet" {
				tri = Triangle{}
				vertex = 0
				state = stlAwaitNormalKeyword
			}
		case stlAwaitNormalKeyword:
			err = tr.Expect("normal")
			state = stlAwaitNormal
		case stlAwaitNormal:
			tri.Normal, err = readVec3(tr)
			state = stlAwaitOuter
		case stlAwaitOuter:
			err = tr.Expect("outer")
			state = stlAwaitLoop
		case stlAwaitLoop:
			err = tr.Expect("loop")
			state = stlAwaitVertexKeyword
		case stlAwaitVertexKeyword:
			err = tr.Expect("vertex")
			state = stlAwaitVertex
		case stlAwaitVertex:
			tri.Vertices[vertex], err = readVec3(tr)
			vertex++
			if vertex < 3 {
				state = stlAwaitVertexKeyword
			} else {
				state = stlAwaitEndloop
			}
		case stlAwaitEndloop:
			err = tr.Expect("endloop")
			state = stlAwaitEndfacet
		case stlAwaitEndfacet:
			err = tr.Expect("endfacet")
			mesh.Triangles = append(mesh.Triangles, tri)
			state = stlAwaitFacet
		}

		if err != nil {
			return nil, fmt.Errorf("ASCII STL facet %d: %w", len(mesh.Triangles), err)
		}
	}
}

// readVec3 reads three float32 tokens.
func readVec3(tr *tokenReader) (math.Vec3, error) {
	var c [3]float32
	for i := range c {
		f, err := tr.Float(32)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return vec3(c), nil
}

package formats

import (
	"bufio"
	"errors"
	"strings"
	"testing"
)

const plyTriangle = `ply
format ascii 1.0
comment made by hand
comment   second comment
obj_info scanner 7
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
3 0 1 2
`

func TestReadPLYHeader(t *testing.T) {
	h, err := ReadPLYHeader(bufio.NewReader(strings.NewReader(plyTriangle)))
	if err != nil {
		t.Fatalf("ReadPLYHeader failed: %v", err)
	}

	if h.Format != PLYFormatASCII {
		t.Errorf("expected format ascii, got %q", h.Format)
	}
	if h.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", h.Version)
	}
	if len(h.Comments) != 2 || h.Comments[0] != "made by hand" || h.Comments[1] != "second comment" {
		t.Errorf("unexpected comments: %q", h.Comments)
	}
	if len(h.ObjInfo) != 1 || h.ObjInfo[0] != "scanner 7" {
		t.Errorf("unexpected obj_info: %q", h.ObjInfo)
	}

	if len(h.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(h.Elements))
	}

	vertex := h.Elements[0]
	if vertex.Name != "vertex" || vertex.Count != 3 {
		t.Errorf("expected vertex element with count 3, got %q count %d", vertex.Name, vertex.Count)
	}
	for i, name := range []string{"x", "y", "z"} {
		p := vertex.Properties[i]
		if p.Name != name || p.Kind != PLYScalar || p.Type != "float" {
			t.Errorf("vertex property %d: expected scalar float %q, got %+v", i, name, p)
		}
	}

	face := h.Element("face")
	if face == nil {
		t.Fatal("expected face element")
	}
	if face.Count != 1 || len(face.Properties) != 1 {
		t.Fatalf("expected face with 1 record and 1 property, got %+v", face)
	}
	list := face.Properties[0]
	if list.Kind != PLYList || list.Name != "vertex_indices" || list.CountType != "uchar" || list.Type != "int" {
		t.Errorf("unexpected list property: %+v", list)
	}

	if h.Element("edge") != nil {
		t.Error("expected nil for undeclared element")
	}
}

func TestReadPLYHeader_PropertyBeforeElement(t *testing.T) {
	src := "ply\nformat ascii 1.0\nproperty float x\nelement vertex 1\nend_header\nnot-a-number\n"

	_, err := ReadPLYHeader(bufio.NewReader(strings.NewReader(src)))
	if !errors.Is(err, ErrSchema) {
		t.Errorf("expected ErrSchema, got %v", err)
	}

	// The whole decode stops at the header; the bad data is never reached.
	_, err = ParsePLY([]byte(src))
	if !errors.Is(err, ErrSchema) {
		t.Errorf("expected ErrSchema from ParsePLY, got %v", err)
	}
}

func TestReadPLYHeader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{"missing magic", "format ascii 1.0\nend_header\n", ErrSchema},
		{"missing format line", "ply\nelement vertex 1\nend_header\n", ErrSchema},
		{"missing end_header", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\n", ErrSchema},
		{"unknown keyword", "ply\nformat ascii 1.0\nvertices 3\nend_header\n", ErrSchema},
		{"duplicate property", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty double x\nend_header\n", ErrSchema},
		{"truncated list property", "ply\nformat ascii 1.0\nelement face 1\nproperty list uchar", ErrSchema},
		{"bad element count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n", ErrToken},
		{"negative element count", "ply\nformat ascii 1.0\nelement vertex -1\nend_header\n", ErrToken},
		{"empty", "", ErrSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPLYHeader(bufio.NewReader(strings.NewReader(tt.src)))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReadPLYHeader_SameNameAcrossElements(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement a 0\nproperty float v\nelement b 0\nproperty float v\nend_header\n"

	h, err := ReadPLYHeader(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("ReadPLYHeader failed: %v", err)
	}
	if len(h.Elements) != 2 {
		t.Errorf("expected 2 elements, got %d", len(h.Elements))
	}
}

func TestParsePLY_Data(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 2
property double x
property list uchar float weights
property float y
element face 2
property list uchar int vertex_index
property uchar flags
end_header
1.5 2 0.25 0.75 -3
2.5 0 4e2
3 0 1 1 7
4 1 2 3 0 9
`

	ply, err := ParsePLY([]byte(src))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}

	vertices := ply.Elements["vertex"]
	if len(vertices) != 2 {
		t.Fatalf("expected 2 vertex records, got %d", len(vertices))
	}

	first := vertices[0]
	if len(first["x"]) != 1 || first["x"][0] != 1.5 {
		t.Errorf("expected x = [1.5], got %v", first["x"])
	}
	if len(first["weights"]) != 2 || first["weights"][0] != 0.25 || first["weights"][1] != 0.75 {
		t.Errorf("expected weights = [0.25 0.75], got %v", first["weights"])
	}
	if len(first["y"]) != 1 || first["y"][0] != -3 {
		t.Errorf("expected y = [-3], got %v", first["y"])
	}

	second := vertices[1]
	if len(second["weights"]) != 0 {
		t.Errorf("expected empty weights list, got %v", second["weights"])
	}
	if second["y"][0] != 400 {
		t.Errorf("expected y = 400, got %v", second["y"][0])
	}

	faces := ply.Elements["face"]
	if len(faces) != 2 {
		t.Fatalf("expected 2 face records, got %d", len(faces))
	}
	if got := faces[1]["vertex_index"]; len(got) != 4 {
		t.Errorf("expected 4 indices in second face, got %v", got)
	}
	if got := faces[1]["flags"]; len(got) != 1 || got[0] != 9 {
		t.Errorf("expected flags = [9], got %v", got)
	}
}

func TestParsePLY_PositionalFields(t *testing.T) {
	// Record boundaries do not have to follow line breaks.
	src := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0 1\n0 0\n0 1 0"

	ply, err := ParsePLY([]byte(src))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}
	vertices := ply.Elements["vertex"]
	if len(vertices) != 3 {
		t.Fatalf("expected 3 records, got %d", len(vertices))
	}
	if vertices[1]["x"][0] != 1 || vertices[2]["y"][0] != 1 {
		t.Errorf("fields bound to the wrong records: %v", vertices)
	}
}

func TestParsePLY_RepeatedElementNameAppends(t *testing.T) {
	src := "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement vertex 2\nproperty float x\nend_header\n1\n2\n3\n"

	ply, err := ParsePLY([]byte(src))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}
	vertices := ply.Elements["vertex"]
	if len(vertices) != 3 {
		t.Fatalf("expected 3 vertex records, got %d", len(vertices))
	}
	for i, rec := range vertices {
		if rec["x"][0] != float64(i+1) {
			t.Errorf("record %d: expected x = %d, got %v", i, i+1, rec["x"][0])
		}
	}
}

func TestParsePLY_DataErrors(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty list uchar int idx\nend_header\n"

	tests := []struct {
		name string
		data string
	}{
		{"malformed scalar", "1 0\nabc 0\n"},
		{"malformed list item", "1 2 0 x\n2 0\n"},
		{"fractional list length", "1 2.5 0 1\n2 0\n"},
		{"negative list length", "1 -1\n2 0\n"},
		{"truncated records", "1 0\n"},
		{"truncated list", "1 3 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePLY([]byte(header + tt.data))
			if !errors.Is(err, ErrToken) {
				t.Errorf("expected ErrToken, got %v", err)
			}
		})
	}
}

func TestParsePLY_BinaryUnsupported(t *testing.T) {
	src := "ply\nformat binary_little_endian 1.0\nelement vertex 0\nproperty float x\nend_header\n"

	_, err := ParsePLY([]byte(src))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPLYPropertyKind_String(t *testing.T) {
	tests := []struct {
		kind     PLYPropertyKind
		expected string
	}{
		{PLYScalar, "Scalar"},
		{PLYList, "List"},
		{PLYPropertyKind(7), "Unknown(7)"},
	}

	for _, tc := range tests {
		if tc.kind.String() != tc.expected {
			t.Errorf("%d.String() = %q, expected %q", tc.kind, tc.kind.String(), tc.expected)
		}
	}
}

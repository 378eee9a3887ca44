package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// PLY data encodings named on the header's format line.
const (
	PLYFormatASCII           = "ascii"
	PLYFormatBinaryLittleEnd = "binary_little_endian"
	PLYFormatBinaryBigEnd    = "binary_big_endian"
)

// plyPreallocLimit caps slice preallocation driven by header counts,
// which come straight from the file and may be bogus.
const plyPreallocLimit = 1 << 16

// PLYPropertyKind tells scalar properties from length-prefixed lists.
type PLYPropertyKind int

const (
	PLYScalar PLYPropertyKind = iota // One value per record
	PLYList                          // Length token followed by that many values
)

// String returns a human-readable kind name.
func (k PLYPropertyKind) String() string {
	switch k {
	case PLYScalar:
		return "Scalar"
	case PLYList:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// PLYPropertyDef is one property declaration from the header.
// Values are always decoded as float64; the declared type names are
// kept for display only.
type PLYPropertyDef struct {
	Name      string
	Kind      PLYPropertyKind
	Type      string // Scalar type, or list item type
	CountType string // List length type (lists only)
}

// PLYElementDef is one element declaration with its properties in file order.
type PLYElementDef struct {
	Name       string
	Count      int
	Properties []PLYPropertyDef
}

// HasProperty reports whether the element declares a property called name.
func (e *PLYElementDef) HasProperty(name string) bool {
	for _, p := range e.Properties {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PLYHeader is the parsed PLY schema.
type PLYHeader struct {
	Format   string
	Version  string
	Comments []string
	ObjInfo  []string
	Elements []PLYElementDef
}

// Element returns the first element definition called name, or nil.
func (h *PLYHeader) Element(name string) *PLYElementDef {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i]
		}
	}
	return nil
}

// PLYProperty holds the values of one property in one record:
// a single value for scalars, the list items for lists.
type PLYProperty []float64

// PLYRecord maps property names to their values for one element record.
type PLYRecord map[string]PLYProperty

// PLY is a parsed PLY file: the schema plus every element's records in
// file order.
type PLY struct {
	Header   PLYHeader
	Elements map[string][]PLYRecord
}

// ParsePLY parses a PLY file from raw bytes.
func ParsePLY(data []byte) (*PLY, error) {
	return DecodePLY(bytes.NewReader(data))
}

// DecodePLY reads a PLY header and its ASCII data section from r.
func DecodePLY(r io.Reader) (*PLY, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	header, err := ReadPLYHeader(br)
	if err != nil {
		return nil, err
	}

	elements, err := ReadPLYData(br, header)
	if err != nil {
		return nil, err
	}

	return &PLY{Header: *header, Elements: elements}, nil
}

// ReadPLYHeader reads the header up to and including end_header, leaving r
// positioned at the start of the data section.
func ReadPLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	tr := newTokenReader(r)

	next := func(what string) (string, error) {
		tok, err := tr.Next()
		if err == io.EOF {
			return "", fmt.Errorf("%w: PLY header ends before %s", ErrSchema, what)
		}
		if err != nil {
			return "", fmt.Errorf("reading PLY header: %w", err)
		}
		return tok, nil
	}

	magic, err := next("magic")
	if err != nil {
		return nil, err
	}
	if magic != "ply" {
		return nil, fmt.Errorf("%w: expected 'ply' magic, got %q", ErrSchema, magic)
	}

	keyword, err := next("format line")
	if err != nil {
		return nil, err
	}
	if keyword != "format" {
		return nil, fmt.Errorf("%w: expected format line, got %q", ErrSchema, keyword)
	}

	h := &PLYHeader{}
	if h.Format, err = next("format name"); err != nil {
		return nil, err
	}
	if h.Version, err = next("format version"); err != nil {
		return nil, err
	}

	for {
		keyword, err := next("end_header")
		if err != nil {
			return nil, err
		}

		switch keyword {
		case "end_header":
			return h, nil

		case "comment", "obj_info":
			line, err := tr.RestOfLine()
			if err != nil {
				return nil, fmt.Errorf("reading PLY header: %w", err)
			}
			if keyword == "comment" {
				h.Comments = append(h.Comments, line)
			} else {
				h.ObjInfo = append(h.ObjInfo, line)
			}

		case "element":
			name, err := next("element name")
			if err != nil {
				return nil, err
			}
			countTok, err := next("element count")
			if err != nil {
				return nil, err
			}
			count, err := strconv.Atoi(countTok)
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: element %q count %q", ErrToken, name, countTok)
			}
			h.Elements = append(h.Elements, PLYElementDef{Name: name, Count: count})

		case "property":
			prop, err := readPLYPropertyDef(next)
			if err != nil {
				return nil, err
			}
			if len(h.Elements) == 0 {
				return nil, fmt.Errorf("%w: property %q declared before any element", ErrSchema, prop.Name)
			}
			current := &h.Elements[len(h.Elements)-1]
			if current.HasProperty(prop.Name) {
				return nil, fmt.Errorf("%w: element %q declares property %q twice", ErrSchema, current.Name, prop.Name)
			}
			current.Properties = append(current.Properties, prop)

		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrSchema, keyword)
		}
	}
}

// readPLYPropertyDef parses the tokens after "property".
func readPLYPropertyDef(next func(string) (string, error)) (PLYPropertyDef, error) {
	typ, err := next("property type")
	if err != nil {
		return PLYPropertyDef{}, err
	}

	prop := PLYPropertyDef{Kind: PLYScalar, Type: typ}
	if typ == "list" {
		prop.Kind = PLYList
		if prop.CountType, err = next("list count type"); err != nil {
			return PLYPropertyDef{}, err
		}
		if prop.Type, err = next("list item type"); err != nil {
			return PLYPropertyDef{}, err
		}
	}

	if prop.Name, err = next("property name"); err != nil {
		return PLYPropertyDef{}, err
	}
	return prop, nil
}

// ReadPLYData reads the data section described by h. Only the ASCII
// encoding is supported.
func ReadPLYData(r *bufio.Reader, h *PLYHeader) (map[string][]PLYRecord, error) {
	if h.Format != PLYFormatASCII {
		return nil, fmt.Errorf("%w: PLY %s data", ErrUnsupportedFormat, h.Format)
	}

	tr := newTokenReader(r)
	elements := make(map[string][]PLYRecord, len(h.Elements))

	for _, def := range h.Elements {
		// Repeated element names append to the same record list.
		records := slices.Grow(elements[def.Name], min(def.Count, plyPreallocLimit))

		for i := 0; i < def.Count; i++ {
			rec := make(PLYRecord, len(def.Properties))
			for _, prop := range def.Properties {
				values, err := readPLYProperty(tr, prop)
				if err != nil {
					return nil, fmt.Errorf("PLY %s %d, property %q: %w", def.Name, i, prop.Name, err)
				}
				rec[prop.Name] = values
			}
			records = append(records, rec)
		}

		elements[def.Name] = records
	}

	return elements, nil
}

// readPLYProperty reads one scalar value or one length-prefixed list.
func readPLYProperty(tr *tokenReader, prop PLYPropertyDef) (PLYProperty, error) {
	if prop.Kind == PLYScalar {
		v, err := tr.Float(64)
		if err != nil {
			return nil, err
		}
		return PLYProperty{v}, nil
	}

	n, err := tr.Float(64)
	if err != nil {
		return nil, err
	}
	k := int(n)
	if n < 0 || float64(k) != n {
		return nil, fmt.Errorf("%w: invalid list length %v", ErrToken, n)
	}

	values := make(PLYProperty, 0, min(k, plyPreallocLimit))
	for j := 0; j < k; j++ {
		v, err := tr.Float(64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

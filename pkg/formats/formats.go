// Package formats decodes STL and PLY mesh files into triangle lists.
package formats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a mesh file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatSTL
	FormatPLY
)

// String returns the conventional format name.
func (f Format) String() string {
	switch f {
	case FormatSTL:
		return "STL"
	case FormatPLY:
		return "PLY"
	default:
		return "Unknown"
	}
}

// DetectFormat picks the format from the path's extension, ignoring case.
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".stl"):
		return FormatSTL, nil
	case strings.HasSuffix(lower, ".ply"):
		return FormatPLY, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// DecodeMesh decodes a stream of the given size in the given format.
// A zero-size stream yields an empty mesh for either format.
func DecodeMesh(r io.ReadSeeker, size int64, format Format) (*Mesh, error) {
	switch format {
	case FormatSTL:
		return DecodeSTL(r, size)
	case FormatPLY:
		if size == 0 {
			return &Mesh{Format: FormatPLY, Empty: true}, nil
		}
		ply, err := DecodePLY(r)
		if err != nil {
			return nil, err
		}
		return ply.Mesh()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseMeshFile opens a mesh file and decodes it according to its extension.
// Nothing is read from files with an unsupported extension.
func ParseMeshFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w %s: is a directory", ErrOpen, path)
	}

	return DecodeMesh(f, info.Size(), format)
}

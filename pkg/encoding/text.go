// Package encoding provides text encoding utilities for mesh file headers.
package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Windows1252ToUTF8 converts Windows-1252 encoded bytes to a UTF-8 string.
// Returns the original bytes as a string if conversion fails.
func Windows1252ToUTF8(data []byte) string {
	decoder := charmap.Windows1252.NewDecoder()
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// TrimNullBytes removes everything from the first null byte onwards.
func TrimNullBytes(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

// HeaderText converts a fixed-size file header into a printable UTF-8 string.
// Binary STL exporters fill the 80-byte header with whatever their platform
// uses, so bytes that are not valid UTF-8 are read as Windows-1252.
func HeaderText(data []byte) string {
	data = TrimNullBytes(data)
	var s string
	if utf8.Valid(data) {
		s = string(data)
	} else {
		s = Windows1252ToUTF8(data)
	}
	return strings.TrimSpace(s)
}

// SolidName extracts the name following the "solid" keyword on the first
// line of an ASCII STL file. Returns "" if the text does not start with it.
func SolidName(head []byte) string {
	line := head
	if i := bytes.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	line = bytes.TrimLeft(line, " \t")
	rest, ok := bytes.CutPrefix(line, []byte("solid"))
	if !ok {
		return ""
	}
	if len(rest) > 0 && rest[0] != ' ' && rest[0] != '\t' {
		return ""
	}
	return HeaderText(rest)
}

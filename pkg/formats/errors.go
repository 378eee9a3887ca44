package formats

import "errors"

// Mesh decoding errors. Returned errors wrap one of these; match with errors.Is.
var (
	ErrOpen              = errors.New("cannot open mesh file")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrSchema            = errors.New("invalid schema")
	ErrLookup            = errors.New("missing element or property")
	ErrBounds            = errors.New("index out of range")
	ErrToken             = errors.New("malformed token")
)

package marshal

import "errors"

var (
	// ErrTooLarge indicates a length16-framed record exceeded 65535 bytes.
	ErrTooLarge = errors.New("marshal: record exceeds 16-bit length frame")

	// ErrNotPointer indicates Decode was handed something other than a
	// non-nil pointer to a struct.
	ErrNotPointer = errors.New("marshal: decode target must be a non-nil struct pointer")

	// ErrUnsupportedType indicates the codec has no encoding for a field's type.
	ErrUnsupportedType = errors.New("marshal: unsupported field type")
)

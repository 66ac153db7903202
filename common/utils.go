package common

import (
	"bytes"
	"encoding/binary"
)

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// LittleEndianBytes serializes a fixed-size value or slice of fixed-size values into the
// little-endian byte layout expected by GPU buffers.
//
// Parameters:
//   - v: value accepted by encoding/binary (fixed-size struct, array or slice thereof)
//
// Returns:
//   - []byte: serialized bytes
//   - error: if v contains a type encoding/binary cannot size
func LittleEndianBytes(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

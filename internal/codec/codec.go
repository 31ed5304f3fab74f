// Package codec defines the serialisation contract used between the myFT client and the
// wire, so that the JSON implementation can be swapped in tests.
package codec

import "io"

type Encoder interface {
	Encode(v any) error
}

type Decoder interface {
	Decode(v any) error
}

type Marshaler interface {
	Marshal(v any) ([]byte, error)
	NewEncoder(w io.Writer) Encoder
}

type Unmarshaler interface {
	Unmarshal(data []byte, dst any) error
	NewDecoder(r io.Reader) Decoder
}

// Codec is both a Marshaler and an Unmarshaler.
type Codec interface {
	Marshaler
	Unmarshaler
	// Valid reports whether data is a well-formed document in this codec's format.
	Valid(data []byte) bool
}

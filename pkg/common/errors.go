package common

import (
	"errors"
	"fmt"
)

// ErrInvalidFilter is returned when an ADPCM sound unit selects a
// prediction filter outside 0..3.
var ErrInvalidFilter = errors.New("ADPCM filter index out of range")

// MalformedSectorError is returned when a sector record is shorter than
// the fixed raw sector length or its subheader cannot be read.
type MalformedSectorError struct {
	Index  int
	Length int
	Reason string
}

func (e *MalformedSectorError) Error() string {
	return fmt.Sprintf("malformed sector %d (%d bytes): %s", e.Index, e.Length, e.Reason)
}

// UnsupportedCodingTypeError is returned when a decoder is asked to handle
// a reserved or unimplemented coding type (MPEG included).
type UnsupportedCodingTypeError struct {
	Coding string
	Value  uint8
}

func (e *UnsupportedCodingTypeError) Error() string {
	return fmt.Sprintf("unsupported coding type %s (%d)", e.Coding, e.Value)
}

// TruncatedPayloadError is returned when a decode loop reaches the end of
// its input in the middle of a unit that cannot be partially reconstructed.
type TruncatedPayloadError struct {
	What   string
	Offset int
	Need   int
	Have   int
}

func (e *TruncatedPayloadError) Error() string {
	return fmt.Sprintf("truncated %s at offset %d: need %d bytes, have %d", e.What, e.Offset, e.Need, e.Have)
}

// PaletteIndexError is returned when a color index cannot be resolved at all.
// Indexes past the end of a non-empty table wrap around instead.
type PaletteIndexError struct {
	Index int
	Size  int
}

func (e *PaletteIndexError) Error() string {
	return fmt.Sprintf("palette index %d cannot be resolved in a table of %d colors", e.Index, e.Size)
}

// Package cdi provides CD-i specific sector structures and functionality.
// This file contains the subheader submode bitfield.
package cdi

// SubmodeBit is a single flag of the subheader submode byte
type SubmodeBit uint8

// Submode flags, LSB first
const (
	SubmodeEOR      SubmodeBit = 1 << 0 // End of record
	SubmodeVideo    SubmodeBit = 1 << 1 // Video sector
	SubmodeAudio    SubmodeBit = 1 << 2 // Audio sector
	SubmodeData     SubmodeBit = 1 << 3 // Data sector
	SubmodeTrigger  SubmodeBit = 1 << 4 // Application trigger
	SubmodeForm2    SubmodeBit = 1 << 5 // Form 2 (2324 user bytes)
	SubmodeRealTime SubmodeBit = 1 << 6 // Real-time sector
	SubmodeEOF      SubmodeBit = 1 << 7 // End of file

	// submodeContentMask covers the bits that must be clear for an empty sector
	submodeContentMask = SubmodeEOR | SubmodeVideo | SubmodeAudio | SubmodeData
)

// Submode is the decoded submode byte. The channel number and coding-info
// byte travel with it so emptiness can be judged without the sector.
type Submode struct {
	Byte       uint8
	Channel    uint8
	CodingInfo uint8
}

// NewSubmode builds a Submode from the three subheader bytes
func NewSubmode(b, channel, codingInfo uint8) Submode {
	return Submode{Byte: b, Channel: channel, CodingInfo: codingInfo}
}

// Has reports whether bit is set
func (s Submode) Has(bit SubmodeBit) bool {
	return s.Byte&uint8(bit) != 0
}

// IsEmptySector reports whether the sector carries no content at all
func (s Submode) IsEmptySector() bool {
	return s.Byte&uint8(submodeContentMask) == 0 && s.Channel == 0 && s.CodingInfo == 0
}

func (s Submode) IsEOF() bool      { return s.Has(SubmodeEOF) }
func (s Submode) IsRealTime() bool { return s.Has(SubmodeRealTime) }
func (s Submode) IsForm2() bool    { return s.Has(SubmodeForm2) }
func (s Submode) IsTrigger() bool  { return s.Has(SubmodeTrigger) }
func (s Submode) IsData() bool     { return s.Has(SubmodeData) }
func (s Submode) IsAudio() bool    { return s.Has(SubmodeAudio) }
func (s Submode) IsVideo() bool    { return s.Has(SubmodeVideo) }
func (s Submode) IsEOR() bool      { return s.Has(SubmodeEOR) }

// Type resolves the sector category. Audio wins over Video, Video over Data.
func (s Submode) Type() SectorType {
	switch {
	case s.IsAudio():
		return SectorAudio
	case s.IsVideo():
		return SectorVideo
	case s.IsData():
		return SectorData
	default:
		return SectorEmpty
	}
}

// String renders the flags as a fixed-width mask, e.g. "-R2-D--E"
func (s Submode) String() string {
	const letters = "FR2TDAVE"
	out := []byte("--------")
	for i := 0; i < 8; i++ {
		if s.Byte&(0x80>>uint(i)) != 0 {
			out[i] = letters[i]
		}
	}
	return string(out)
}

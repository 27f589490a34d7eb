package cdi

import "fmt"

// CodingInfo is the subheader coding-info byte interpreted according to the
// sector category. It is one of AudioCoding, VideoCoding or RawCoding.
type CodingInfo interface {
	Byte() uint8
	String() string
	codingInfo()
}

// NewCodingInfo interprets b for a sector of type t
func NewCodingInfo(t SectorType, b uint8) CodingInfo {
	switch t {
	case SectorAudio:
		return AudioCoding(b)
	case SectorVideo:
		return VideoCoding(b)
	default:
		return RawCoding(b)
	}
}

// RawCoding is the coding-info byte of data and empty sectors, which has no
// defined fields.
type RawCoding uint8

func (c RawCoding) Byte() uint8    { return uint8(c) }
func (c RawCoding) String() string { return fmt.Sprintf("0x%02X", uint8(c)) }
func (RawCoding) codingInfo()      {}

// AudioCoding is the coding-info byte of an audio sector.
//
//	bit 6     emphasis
//	bits 5-4  bits per sample (0 = 4-bit, 1 = 8-bit)
//	bits 3-2  sample rate (0 = 37.8 kHz, 1 = 18.9 kHz)
//	bits 1-0  channels (0 = mono, 1 = stereo)
type AudioCoding uint8

func (c AudioCoding) Byte() uint8 { return uint8(c) }
func (AudioCoding) codingInfo()   {}

// Emphasis reports whether the emphasis flag is set
func (c AudioCoding) Emphasis() bool {
	return uint8(c)>>6&0x01 == 1
}

// BitsPerSample returns the raw 2-bit field
func (c AudioCoding) BitsPerSample() uint8 {
	return uint8(c) >> 4 & 0x03
}

// BitsPerSampleString returns a label for the sample width
func (c AudioCoding) BitsPerSampleString() string {
	switch c.BitsPerSample() {
	case 0:
		return "4-bit"
	case 1:
		return "8-bit"
	default:
		return "Reserved"
	}
}

// BitsPerSampleValue returns 4 or 8, or 0 for reserved values
func (c AudioCoding) BitsPerSampleValue() int {
	switch c.BitsPerSample() {
	case 0:
		return 4
	case 1:
		return 8
	default:
		return 0
	}
}

// SampleRate returns the raw 2-bit field
func (c AudioCoding) SampleRate() uint8 {
	return uint8(c) >> 2 & 0x03
}

// SampleRateString returns a label for the sample rate
func (c AudioCoding) SampleRateString() string {
	switch c.SampleRate() {
	case 0:
		return "37.8 kHz"
	case 1:
		return "18.9 kHz"
	default:
		return "Reserved"
	}
}

// SampleRateValue returns the rate in Hz, or 0 for reserved values
func (c AudioCoding) SampleRateValue() int {
	switch c.SampleRate() {
	case 0:
		return 37800
	case 1:
		return 18900
	default:
		return 0
	}
}

func (c AudioCoding) IsMono() bool   { return uint8(c)&0x03 == 0 }
func (c AudioCoding) IsStereo() bool { return uint8(c)&0x03 == 1 }

// ChannelsString returns "Mono", "Stereo" or "Reserved"
func (c AudioCoding) ChannelsString() string {
	switch {
	case c.IsMono():
		return "Mono"
	case c.IsStereo():
		return "Stereo"
	default:
		return "Reserved"
	}
}

func (c AudioCoding) String() string {
	s := fmt.Sprintf("%s %s %s", c.BitsPerSampleString(), c.SampleRateString(), c.ChannelsString())
	if c.Emphasis() {
		s += " emphasis"
	}
	return s
}

// Resolution is the 2-bit video resolution field
type Resolution uint8

const (
	ResolutionNormal   Resolution = 0
	ResolutionDouble   Resolution = 1
	ResolutionReserved Resolution = 2
	ResolutionHigh     Resolution = 3
)

func (r Resolution) String() string {
	switch r {
	case ResolutionNormal:
		return "Normal"
	case ResolutionDouble:
		return "Double"
	case ResolutionHigh:
		return "High"
	default:
		return "Reserved"
	}
}

// CodingType is the 4-bit video coding field. Values are wire values.
type CodingType uint8

const (
	CodingCLUT4   CodingType = 0
	CodingCLUT7   CodingType = 1
	CodingCLUT8   CodingType = 2
	CodingRL3     CodingType = 3
	CodingRL7     CodingType = 4
	CodingDYUV    CodingType = 5
	CodingRGB555L CodingType = 6
	CodingRGB555H CodingType = 7
	CodingQHY     CodingType = 8
	CodingMPEG    CodingType = 15
)

var codingTypeNames = map[CodingType]string{
	CodingCLUT4:   "CLUT4",
	CodingCLUT7:   "CLUT7",
	CodingCLUT8:   "CLUT8",
	CodingRL3:     "RL3",
	CodingRL7:     "RL7",
	CodingDYUV:    "DYUV",
	CodingRGB555L: "RGB555L",
	CodingRGB555H: "RGB555H",
	CodingQHY:     "QHY",
	CodingMPEG:    "MPEG",
}

func (c CodingType) String() string {
	if name, ok := codingTypeNames[c]; ok {
		return name
	}
	return "Reserved"
}

// IsReserved reports whether c has no defined meaning
func (c CodingType) IsReserved() bool {
	_, ok := codingTypeNames[c]
	return !ok
}

// ParseCodingType maps a label such as "RL7" back to its wire value
func ParseCodingType(name string) (CodingType, error) {
	for c, n := range codingTypeNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown coding type %q", name)
}

// VideoCoding is the coding-info byte of a video sector.
//
//	bit 7     ASCF
//	bit 6     odd lines
//	bits 5-4  resolution
//	bits 3-0  coding type
type VideoCoding uint8

func (c VideoCoding) Byte() uint8 { return uint8(c) }
func (VideoCoding) codingInfo()   {}

func (c VideoCoding) IsASCF() bool     { return uint8(c)>>7&0x01 == 1 }
func (c VideoCoding) IsOddLines() bool { return uint8(c)>>6&0x01 == 1 }

// Resolution returns the resolution field
func (c VideoCoding) Resolution() Resolution {
	return Resolution(uint8(c) >> 4 & 0x03)
}

// Coding returns the coding type field
func (c VideoCoding) Coding() CodingType {
	return CodingType(uint8(c) & 0x0F)
}

func (c VideoCoding) String() string {
	return fmt.Sprintf("%s %s", c.Coding(), c.Resolution())
}

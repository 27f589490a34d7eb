// Package cdi provides CD-i specific sector structures and functionality.
// This file contains the raw sector record and its payload windows.
package cdi

import (
	"fmt"
	"strings"

	"github.com/hansbonini/cditools/pkg/common"
)

// Sector size constants for CD-i disc images
const (
	SectorSize        = 2352 // Full raw sector size
	HeaderSize        = 16   // Sync pattern (12) + address/mode header (4)
	SubheaderSize     = 8    // Subheader, stored twice (4 bytes each)
	PayloadOffset     = HeaderSize + SubheaderSize
	DataPayloadSize   = 2048 // Form 1 user data
	VideoPayloadSize  = 2324 // Form 2 user data
	AudioPayloadSize  = 2304 // 18 ADPCM sound groups of 128 bytes
	subheaderFileNo   = HeaderSize + 0
	subheaderChannel  = HeaderSize + 1
	subheaderSubmode  = HeaderSize + 2
	subheaderCoding   = HeaderSize + 3
	subheaderCopySize = SubheaderSize / 2
)

// SectorType is the resolved category of a sector
type SectorType int

const (
	SectorEmpty SectorType = iota
	SectorData
	SectorAudio
	SectorVideo
)

func (t SectorType) String() string {
	switch t {
	case SectorData:
		return "Data"
	case SectorAudio:
		return "Audio"
	case SectorVideo:
		return "Video"
	default:
		return "Empty"
	}
}

// ParseSectorType maps a category name such as "data" to its SectorType.
// Matching ignores case.
func ParseSectorType(name string) (SectorType, error) {
	for _, t := range []SectorType{SectorEmpty, SectorData, SectorAudio, SectorVideo} {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown sector type %q (want empty, data, audio or video)", name)
}

// PayloadSize returns the number of user bytes extracted for a sector of type t
func (t SectorType) PayloadSize() int {
	switch t {
	case SectorVideo:
		return VideoPayloadSize
	case SectorAudio:
		return AudioPayloadSize
	default:
		return DataPayloadSize
	}
}

// Sector is one raw 2352-byte sector. It is never modified after NewSector.
type Sector struct {
	index   int
	raw     []byte
	submode Submode
	coding  CodingInfo
	kind    SectorType
}

// NewSector builds a sector from exactly SectorSize raw bytes. The slice is
// retained, not copied.
func NewSector(index int, raw []byte) (*Sector, error) {
	if len(raw) != SectorSize {
		return nil, &common.MalformedSectorError{
			Index:  index,
			Length: len(raw),
			Reason: "sector length must be 2352 bytes",
		}
	}

	submode := NewSubmode(raw[subheaderSubmode], raw[subheaderChannel], raw[subheaderCoding])
	kind := submode.Type()

	return &Sector{
		index:   index,
		raw:     raw,
		submode: submode,
		coding:  NewCodingInfo(kind, raw[subheaderCoding]),
		kind:    kind,
	}, nil
}

// Index returns the position of the sector inside its disc image
func (s *Sector) Index() int {
	return s.index
}

// MSF returns the timecode of the sector relative to the start of the image
func (s *Sector) MSF() string {
	return common.LBAToMSF(uint32(s.index))
}

// Raw returns the full raw sector. Callers must not modify it.
func (s *Sector) Raw() []byte {
	return s.raw
}

// Subheader returns a copy of the first subheader copy (file, channel, submode, coding)
func (s *Sector) Subheader() [4]byte {
	var sh [4]byte
	copy(sh[:], s.raw[HeaderSize:HeaderSize+subheaderCopySize])
	return sh
}

func (s *Sector) FileNumber() uint8    { return s.raw[subheaderFileNo] }
func (s *Sector) ChannelNumber() uint8 { return s.raw[subheaderChannel] }
func (s *Sector) Submode() Submode     { return s.submode }
func (s *Sector) CodingInfo() CodingInfo {
	return s.coding
}

// Type returns the resolved category (Audio > Video > Data > Empty)
func (s *Sector) Type() SectorType {
	return s.kind
}

// AudioCoding returns the audio interpretation of the coding byte;
// ok is false for non-audio sectors.
func (s *Sector) AudioCoding() (coding AudioCoding, ok bool) {
	coding, ok = s.coding.(AudioCoding)
	return coding, ok
}

// VideoCoding returns the video interpretation of the coding byte;
// ok is false for non-video sectors.
func (s *Sector) VideoCoding() (coding VideoCoding, ok bool) {
	coding, ok = s.coding.(VideoCoding)
	return coding, ok
}

// Payload returns a copy of the user data window for the sector category
func (s *Sector) Payload() []byte {
	size := s.kind.PayloadSize()
	out := make([]byte, size)
	copy(out, s.raw[PayloadOffset:PayloadOffset+size])
	return out
}

package pkg

import (
	"image"

	"github.com/hansbonini/cditools/pkg/cdi"
)

// DiscReport is the YAML document written by `disc report`
type DiscReport struct {
	Name          string             `yaml:"name"`
	Size          int                `yaml:"size"`
	SectorCount   int                `yaml:"sector_count"`
	TrailingBytes int                `yaml:"trailing_bytes"`
	Totals        cdi.ChannelStats   `yaml:"totals"`
	Channels      []cdi.ChannelStats `yaml:"channels"`
	Sectors       []SectorEntry      `yaml:"sectors,omitempty"`
}

// SectorEntry describes one sector in a DiscReport
type SectorEntry struct {
	Index   int    `yaml:"index"`
	MSF     string `yaml:"msf"`
	File    uint8  `yaml:"file"`
	Channel uint8  `yaml:"channel"`
	Type    string `yaml:"type"`
	Submode string `yaml:"submode"`
	Coding  string `yaml:"coding"`
}

// SectorSelection narrows a disc down to the sectors of one logical stream.
// A nil File matches every file number.
type SectorSelection struct {
	Channel uint8
	File    *uint8
	Type    cdi.SectorType
}

// ImageJob describes a batch of frames to decode from one disc image
type ImageJob struct {
	Disc      string       `yaml:"disc,omitempty"`
	Output    string       `yaml:"output,omitempty"`
	Animation string       `yaml:"animation,omitempty"`
	Delay     int          `yaml:"delay,omitempty"` // GIF frame delay, 1/100 s
	Frames    []FrameSpec  `yaml:"frames"`
	Defaults  FrameDefault `yaml:"defaults,omitempty"`
}

// FrameDefault holds values shared by every frame of a job
type FrameDefault struct {
	Coding  string       `yaml:"coding,omitempty"`
	Type    string       `yaml:"type,omitempty"`
	Channel uint8        `yaml:"channel,omitempty"`
	Width   int          `yaml:"width,omitempty"`
	Height  int          `yaml:"height,omitempty"`
	Palette *PaletteSpec `yaml:"palette,omitempty"`
}

// FrameSpec selects the sectors of one picture and how to decode them.
//
// Type names the sector category to read (video when empty). With Count
// set the frame is Count sectors of Channel starting at disc index Start.
// Otherwise the channel's sectors are split into records at Trigger
// sectors and Record picks one.
type FrameSpec struct {
	Name         string            `yaml:"name"`
	Coding       string            `yaml:"coding,omitempty"`
	Type         string            `yaml:"type,omitempty"`
	Channel      uint8             `yaml:"channel"`
	File         *uint8            `yaml:"file,omitempty"`
	Record       int               `yaml:"record,omitempty"`
	Start        int               `yaml:"start,omitempty"`
	Count        int               `yaml:"count,omitempty"`
	Width        int               `yaml:"width"`
	Height       int               `yaml:"height"`
	InitialY     *uint8            `yaml:"initial_y,omitempty"`
	InitialU     *uint8            `yaml:"initial_u,omitempty"`
	InitialV     *uint8            `yaml:"initial_v,omitempty"`
	Palette      *PaletteSpec      `yaml:"palette,omitempty"`
	Transparency *TransparencySpec `yaml:"transparency,omitempty"`
}

// Palette source formats
const (
	PaletteFormatBanks     = "banks"
	PaletteFormatIndexed   = "indexed"
	PaletteFormatUnindexed = "rgb"
)

// PaletteSpec locates a color table inside a sector payload
type PaletteSpec struct {
	Sector int    `yaml:"sector"`
	Offset int    `yaml:"offset,omitempty"`
	Length int    `yaml:"length,omitempty"`
	Format string `yaml:"format,omitempty"`
	Banks  int    `yaml:"banks,omitempty"`
}

// TransparencySpec mirrors the CLUT transparency options
type TransparencySpec struct {
	Index int  `yaml:"index"`
	Lower bool `yaml:"lower"`
}

// DecodedFrame is a frame ready for export
type DecodedFrame struct {
	Name  string
	Image *image.RGBA
}

// FrameDecoder turns the payload of one frame into a picture
type FrameDecoder interface {
	DecodeFrame(disc *cdi.Disc, spec FrameSpec) (*image.RGBA, error)
}

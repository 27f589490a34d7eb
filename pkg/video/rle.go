package video

import (
	"image"

	"github.com/hansbonini/cditools/pkg/common"
)

// RL7 control byte layout
const (
	rleRunFlag   = 0x80
	rleIndexMask = 0x7F
	rleToEOL     = 0 // run length: fill to end of line
	rleNoRun     = 1 // run length: consumes input, emits nothing
)

// RLEConfig describes an RL7 picture. Transparency rules are the same as
// for CLUTConfig.
type RLEConfig struct {
	LineWidth         int
	Height            int
	Palette           Palette
	UseTransparency   bool
	TransparencyIndex int
	UseLowerIndexes   bool
}

// ExpandRLE expands RL7 data into one index per pixel, line by line.
//
// A control byte with the high bit clear is a single pixel of color
// index b&0x7F. With the high bit set it starts a run and is followed by
// a length byte: 0 fills the rest of the line, 1 emits nothing, any
// other value repeats the index that many times, bounded by the line end.
//
// Expansion stops once height lines are complete (height <= 0 means no
// limit). Running out of data inside a run or a line is an error.
func ExpandRLE(data []byte, lineWidth, height int) ([]byte, error) {
	if lineWidth <= 0 {
		return nil, nil
	}

	capacity := len(data)
	if height > 0 {
		capacity = lineWidth * height
	}
	out := make([]byte, 0, capacity)
	line := make([]byte, 0, lineWidth)
	lines := 0
	i := 0

	for i < len(data) && (height <= 0 || lines < height) {
		control := data[i]
		i++
		index := control & rleIndexMask

		if control&rleRunFlag == 0 {
			line = append(line, index)
		} else {
			if i >= len(data) {
				return out, &common.TruncatedPayloadError{What: "RLE run", Offset: i - 1, Need: 2, Have: 1}
			}
			length := int(data[i])
			i++

			switch length {
			case rleToEOL:
				length = lineWidth - len(line)
			case rleNoRun:
				length = 0
			}
			for n := 0; n < length && len(line) < lineWidth; n++ {
				line = append(line, index)
			}
		}

		if len(line) >= lineWidth {
			out = append(out, line...)
			line = line[:0]
			lines++
		}
	}

	if len(line) > 0 {
		return out, &common.TruncatedPayloadError{What: "RLE line", Offset: i, Need: lineWidth, Have: len(line)}
	}
	return out, nil
}

// DecodeRLE expands RL7 data and renders it through the CLUT decoder.
// The image height is the configured Height, or the number of decoded
// lines when Height is zero.
func DecodeRLE(data []byte, config RLEConfig) (*image.RGBA, error) {
	indexes, err := ExpandRLE(data, config.LineWidth, config.Height)
	if err != nil {
		return nil, err
	}

	height := config.Height
	if height <= 0 && config.LineWidth > 0 {
		height = len(indexes) / config.LineWidth
	}

	return DecodeCLUT(indexes, CLUTConfig{
		Width:             config.LineWidth,
		Height:            height,
		Palette:           config.Palette,
		UseTransparency:   config.UseTransparency,
		TransparencyIndex: config.TransparencyIndex,
		UseLowerIndexes:   config.UseLowerIndexes,
	})
}

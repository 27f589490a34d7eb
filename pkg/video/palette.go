// Package video decodes CD-i still and motion picture codings into RGBA
// images: DYUV, CLUT (4, 7 and 8 bit) and RL7 run-length pictures, plus
// the color tables they index.
package video

import (
	"image"
	"image/color"

	"github.com/hansbonini/cditools/pkg/common"
)

// Palette is an ordered color table; the slice index is the CLUT slot
type Palette []color.RGBA

// Palette layout constants
const (
	rgbRecordSize     = 3
	indexedRecordSize = 4
	bankHeaderSize    = 4
	bankColorsSize    = 0x100
)

// CLUTBankSize is the stride of one CLUT bank: a 4-byte header followed by
// 64 four-byte color records
const CLUTBankSize = bankHeaderSize + bankColorsSize

// ReadUnindexedPalette reads consecutive RGB triplets. Trailing bytes that
// do not form a whole triplet are dropped.
func ReadUnindexedPalette(data []byte) Palette {
	count := len(data) / rgbRecordSize
	colors := make(Palette, 0, count)
	for i := 0; i < count; i++ {
		off := i * rgbRecordSize
		colors = append(colors, color.RGBA{R: data[off], G: data[off+1], B: data[off+2], A: 0xFF})
	}
	return colors
}

// ReadIndexedPalette reads 4-byte records of one index byte followed by
// RGB. Table order is buffer order; the stored index is ignored.
func ReadIndexedPalette(data []byte) Palette {
	count := len(data) / indexedRecordSize
	colors := make(Palette, 0, count)
	for i := 0; i < count; i++ {
		off := i * indexedRecordSize
		colors = append(colors, color.RGBA{R: data[off+1], G: data[off+2], B: data[off+3], A: 0xFF})
	}
	return colors
}

// ReadCLUTBanks reads count CLUT banks. Each bank is a 4-byte bank header
// followed by 256 bytes of 4-byte records (one ignored byte then RGB), so
// a full bank contributes 64 colors. Records past the end of data are
// dropped. Each color is reported to trace when it is set.
func ReadCLUTBanks(data []byte, count int, trace common.Tracer) Palette {
	var colors Palette
	for bank := 0; bank < count; bank++ {
		base := bank * CLUTBankSize
		for j := bankHeaderSize; j <= bankColorsSize; j += indexedRecordSize {
			off := base + j
			if off+indexedRecordSize > len(data) {
				break
			}
			c := color.RGBA{R: data[off+1], G: data[off+2], B: data[off+3], A: 0xFF}
			trace.Trace(common.DebugPaletteBankColor, bank, len(colors), c.R, c.G, c.B)
			colors = append(colors, c)
		}
	}
	return colors
}

// Lookup returns the color for index, wrapping indexes past the end of
// the table.
func (p Palette) Lookup(index int) (color.RGBA, error) {
	if len(p) == 0 {
		return color.RGBA{}, &common.PaletteIndexError{Index: index, Size: 0}
	}
	return p[index%len(p)], nil
}

// Grayscale returns a ramp of n opaque grays, used when no color table
// is available.
func Grayscale(n int) Palette {
	colors := make(Palette, n)
	for i := range colors {
		v := uint8(0)
		if n > 1 {
			v = uint8(i * 255 / (n - 1))
		}
		colors[i] = color.RGBA{R: v, G: v, B: v, A: 0xFF}
	}
	return colors
}

// Swatch layout
const (
	swatchSize   = 256
	swatchSquare = 8
)

// PaletteSwatch renders the palette as 8x8 squares on a 256x256 image,
// left to right, top to bottom.
func PaletteSwatch(p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, swatchSize, swatchSize))
	x, y := 0, 0
	for _, c := range p {
		if y >= swatchSize {
			break
		}
		for dy := 0; dy < swatchSquare; dy++ {
			for dx := 0; dx < swatchSquare; dx++ {
				img.SetRGBA(x+dx, y+dy, c)
			}
		}
		x += swatchSquare
		if x >= swatchSize {
			x = 0
			y += swatchSquare
		}
	}
	return img
}

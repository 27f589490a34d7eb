package video

import (
	"image"
	"image/color"

	"github.com/hansbonini/cditools/pkg/common"
)

// dequantizer maps a 4-bit DYUV delta code to its 8-bit step
var dequantizer = [16]uint8{
	0, 1, 4, 9, 16, 27, 44, 79, 128, 177, 212, 229, 240, 247, 252, 255,
}

// DYUVConfig describes a DYUV picture. Every scanline restarts from the
// initial Y, U and V values.
type DYUVConfig struct {
	Width    int
	Height   int
	InitialY uint8
	InitialU uint8
	InitialV uint8
}

// DefaultDYUVConfig returns the usual start values (Y=16, U=V=128)
func DefaultDYUVConfig(width, height int) DYUVConfig {
	return DYUVConfig{Width: width, Height: height, InitialY: 16, InitialU: 128, InitialV: 128}
}

// DecodeDYUV decodes big-endian 16-bit DYUV units, each covering two pixels
// (dU, dY1, dV, dY2 nibbles). Decoding stops when data runs out; pixels not
// reached keep their zero value.
func DecodeDYUV(data []byte, config DYUVConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	index := 0

	for y := 0; y < config.Height; y++ {
		prevY, prevU, prevV := config.InitialY, config.InitialU, config.InitialV

		for x := 0; x < config.Width; x += 2 {
			if index+1 >= len(data) {
				return img
			}

			unit := uint16(data[index])<<8 | uint16(data[index+1])
			index += 2

			du := unit >> 12 & 0x0F
			dy1 := unit >> 8 & 0x0F
			dv := unit >> 4 & 0x0F
			dy2 := unit & 0x0F

			// uint8 arithmetic wraps mod 256
			y1 := prevY + dequantizer[dy1]
			u2 := prevU + dequantizer[du]
			v2 := prevV + dequantizer[dv]
			y2 := y1 + dequantizer[dy2]

			u1 := uint8((uint16(prevU) + uint16(u2)) / 2)
			v1 := uint8((uint16(prevV) + uint16(v2)) / 2)

			prevY, prevU, prevV = y2, u2, v2

			img.SetRGBA(x, y, YUVToRGB(y1, u1, v1))
			if x+1 < config.Width {
				img.SetRGBA(x+1, y, YUVToRGB(y2, u2, v2))
			}
		}
	}

	return img
}

// YUVToRGB converts one CD-i YUV triple to an opaque RGBA color
func YUVToRGB(y, u, v uint8) color.RGBA {
	yy := int32(y) * 256
	uu := int32(u) - 128
	vv := int32(v) - 128

	return color.RGBA{
		R: common.ClampToUint8((yy + 351*vv) / 256),
		G: common.ClampToUint8((yy - (86*uu + 179*vv)) / 256),
		B: common.ClampToUint8((yy + 444*uu) / 256),
		A: 0xFF,
	}
}

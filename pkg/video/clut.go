package video

import (
	"image"
	"image/color"
)

// CLUTConfig describes an indexed picture and its transparency rules.
//
// With UseTransparency set, index 0 is always transparent, and so is every
// index <= TransparencyIndex (UseLowerIndexes) or >= TransparencyIndex
// (otherwise).
type CLUTConfig struct {
	Width             int
	Height            int
	Palette           Palette
	UseTransparency   bool
	TransparencyIndex int
	UseLowerIndexes   bool
}

// IsTransparent reports whether index renders fully transparent
func (c CLUTConfig) IsTransparent(index int) bool {
	if !c.UseTransparency {
		return false
	}
	if index == 0 {
		return true
	}
	if c.UseLowerIndexes {
		return index <= c.TransparencyIndex
	}
	return index >= c.TransparencyIndex
}

// DecodeCLUT decodes one index byte per pixel (CLUT7 / CLUT8). Indexes
// past the end of the palette wrap around. Missing trailing pixels keep
// their zero value.
func DecodeCLUT(data []byte, config CLUTConfig) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	pixels := config.Width * config.Height
	if pixels > len(data) {
		pixels = len(data)
	}

	for i := 0; i < pixels; i++ {
		if err := config.put(img, i, int(data[i])); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// DecodeCLUT4 decodes two 4-bit indexes per byte, high nibble first
func DecodeCLUT4(data []byte, config CLUTConfig) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	pixels := config.Width * config.Height
	if pixels > len(data)*2 {
		pixels = len(data) * 2
	}

	for i := 0; i < pixels; i++ {
		b := data[i/2]
		index := int(b >> 4)
		if i&1 == 1 {
			index = int(b & 0x0F)
		}
		if err := config.put(img, i, index); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// put renders pixel number i (row-major) with the color at index
func (c CLUTConfig) put(img *image.RGBA, i, index int) error {
	x, y := i%c.Width, i/c.Width
	if c.IsTransparent(index) {
		img.SetRGBA(x, y, color.RGBA{})
		return nil
	}
	col, err := c.Palette.Lookup(index)
	if err != nil {
		return err
	}
	img.SetRGBA(x, y, col)
	return nil
}

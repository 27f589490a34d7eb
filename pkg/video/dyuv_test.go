// Package video provides tests for DYUV, CLUT and RLE picture decoding
package video

import (
	"image/color"
	"testing"
)

func TestYUVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		y, u, v uint8
		want    color.RGBA
	}{
		{"black level", 16, 128, 128, color.RGBA{16, 16, 16, 255}},
		{"gray", 128, 128, 128, color.RGBA{128, 128, 128, 255}},
		{"clamped low", 0, 0, 0, color.RGBA{0, 132, 0, 255}},
		{"clamped high", 255, 255, 255, color.RGBA{255, 123, 255, 255}},
		{"chroma offset", 20, 128, 132, color.RGBA{25, 17, 20, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YUVToRGB(tt.y, tt.u, tt.v); got != tt.want {
				t.Errorf("YUVToRGB(%d, %d, %d) = %v, want %v", tt.y, tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestDecodeDYUV_ZeroDeltas(t *testing.T) {
	img := DecodeDYUV([]byte{0x00, 0x00}, DefaultDYUVConfig(2, 1))

	want := YUVToRGB(16, 128, 128)
	for x := 0; x < 2; x++ {
		if got := img.RGBAAt(x, 0); got != want {
			t.Errorf("pixel (%d,0) = %v, want %v", x, got, want)
		}
	}
}

func TestDecodeDYUV_Deltas(t *testing.T) {
	// dU=1 (1), dY1=2 (4), dV=3 (9), dY2=4 (16), two rows
	img := DecodeDYUV([]byte{0x12, 0x34, 0x12, 0x34}, DefaultDYUVConfig(2, 2))

	// pixel 1: Y=20, chroma halfway between (128,128) and (129,137)
	// pixel 2: Y=36, U=129, V=137
	want1 := color.RGBA{25, 17, 20, 255}
	want2 := color.RGBA{48, 29, 37, 255}

	for y := 0; y < 2; y++ {
		if got := img.RGBAAt(0, y); got != want1 {
			t.Errorf("pixel (0,%d) = %v, want %v", y, got, want1)
		}
		if got := img.RGBAAt(1, y); got != want2 {
			t.Errorf("pixel (1,%d) = %v, want %v", y, got, want2)
		}
	}
}

func TestDecodeDYUV_Wraparound(t *testing.T) {
	config := DYUVConfig{Width: 2, Height: 1, InitialY: 250, InitialU: 128, InitialV: 128}
	// dY1 = 15 (255): 250 + 255 wraps to 249
	img := DecodeDYUV([]byte{0x0F, 0x00}, config)

	if got, want := img.RGBAAt(0, 0), YUVToRGB(249, 128, 128); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}
	if got, want := img.RGBAAt(1, 0), YUVToRGB(249, 128, 128); got != want {
		t.Errorf("pixel (1,0) = %v, want %v", got, want)
	}
}

func TestDecodeDYUV_Truncated(t *testing.T) {
	img := DecodeDYUV([]byte{0x00, 0x00, 0x00}, DefaultDYUVConfig(4, 2))

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v, want 4x2", img.Bounds())
	}
	if got := img.RGBAAt(1, 0); got.A != 0xFF {
		t.Errorf("decoded pixel (1,0) should be opaque, got %v", got)
	}
	for _, p := range [][2]int{{2, 0}, {3, 0}, {0, 1}, {3, 1}} {
		if got := img.RGBAAt(p[0], p[1]); got != (color.RGBA{}) {
			t.Errorf("pixel %v = %v, want zero value", p, got)
		}
	}
}

func TestDecodeDYUV_OddWidth(t *testing.T) {
	img := DecodeDYUV([]byte{0x00, 0x00, 0x00, 0x00}, DefaultDYUVConfig(3, 1))
	for x := 0; x < 3; x++ {
		if got := img.RGBAAt(x, 0); got.A != 0xFF {
			t.Errorf("pixel (%d,0) should be decoded, got %v", x, got)
		}
	}
}

// Package pkg provides tests for the image processor
package pkg

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansbonini/cditools/pkg/common"
	"github.com/hansbonini/cditools/pkg/video"
)

var rgbPalette = &PaletteSpec{Sector: 0, Format: PaletteFormatUnindexed, Length: 9}

var (
	red   = color.RGBA{0xFF, 0, 0, 0xFF}
	green = color.RGBA{0, 0xFF, 0, 0xFF}
	blue  = color.RGBA{0, 0, 0xFF, 0xFF}
)

func TestImageProcessor_DecodeFrame_CLUT(t *testing.T) {
	spec := FrameSpec{Name: "clut", Channel: 1, Record: 0, Width: 4, Height: 2, Palette: rgbPalette}

	img, err := NewImageProcessor().DecodeFrame(testDisc(), spec)
	if err != nil {
		t.Fatalf("DecodeFrame() failed: %v", err)
	}

	// indexes 0..7 wrap over a 3 color table
	want := []color.RGBA{red, green, blue, red, green, blue, red, green}
	for i, w := range want {
		if got := img.RGBAAt(i%4, i/4); got != w {
			t.Errorf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

func TestImageProcessor_DecodeFrame_Transparency(t *testing.T) {
	spec := FrameSpec{
		Name: "clut", Channel: 1, Width: 4, Height: 1, Palette: rgbPalette,
		Transparency: &TransparencySpec{Index: 1, Lower: true},
	}

	img, err := NewImageProcessor().DecodeFrame(testDisc(), spec)
	if err != nil {
		t.Fatalf("DecodeFrame() failed: %v", err)
	}
	if img.RGBAAt(0, 0) != (color.RGBA{}) || img.RGBAAt(1, 0) != (color.RGBA{}) {
		t.Error("indexes 0 and 1 should be transparent")
	}
	if img.RGBAAt(2, 0) != blue {
		t.Errorf("pixel 2 = %v, want %v", img.RGBAAt(2, 0), blue)
	}
}

func TestImageProcessor_DecodeFrame_Codings(t *testing.T) {
	tests := []struct {
		name  string
		spec  FrameSpec
		pixel color.RGBA
	}{
		{
			name:  "DYUV from sector coding",
			spec:  FrameSpec{Name: "dyuv", Channel: 1, Record: 1, Width: 4, Height: 2},
			pixel: color.RGBA{16, 16, 16, 0xFF},
		},
		{
			name:  "RL7 with grayscale ramp",
			spec:  FrameSpec{Name: "rl7", Channel: 3, Width: 4, Height: 2},
			pixel: color.RGBA{1, 1, 1, 0xFF},
		},
		{
			name:  "explicit coding overrides sector",
			spec:  FrameSpec{Name: "forced", Coding: "CLUT8", Channel: 1, Record: 1, Width: 2, Height: 1, Palette: rgbPalette},
			pixel: red,
		},
		{
			name:  "sector range",
			spec:  FrameSpec{Name: "range", Coding: "CLUT8", Channel: 1, Start: 1, Count: 1, Width: 2, Height: 1, Palette: rgbPalette},
			pixel: red,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImageProcessor().DecodeFrame(testDisc(), tt.spec)
			if err != nil {
				t.Fatalf("DecodeFrame() failed: %v", err)
			}
			if got := img.RGBAAt(0, 0); got != tt.pixel {
				t.Errorf("pixel (0,0) = %v, want %v", got, tt.pixel)
			}
			if img.Bounds().Dx() != tt.spec.Width || img.Bounds().Dy() != tt.spec.Height {
				t.Errorf("bounds = %v, want %dx%d", img.Bounds(), tt.spec.Width, tt.spec.Height)
			}
		})
	}
}

func TestImageProcessor_DecodeFrame_DataSectors(t *testing.T) {
	disc := testDisc()
	want := video.DecodeDYUV(disc.Sectors()[0].Payload(), video.DefaultDYUVConfig(4, 2))

	tests := []struct {
		name string
		spec FrameSpec
	}{
		{"sector range", FrameSpec{Name: "range", Type: "data", Coding: "DYUV", Channel: 0, Start: 0, Count: 1, Width: 4, Height: 2}},
		{"record", FrameSpec{Name: "record", Type: "Data", Coding: "DYUV", Channel: 0, Record: 0, Width: 4, Height: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewImageProcessor().DecodeFrame(disc, tt.spec)
			if err != nil {
				t.Fatalf("DecodeFrame() failed: %v", err)
			}
			if !bytes.Equal(img.Pix, want.Pix) {
				t.Errorf("pixels = %v, want %v", img.Pix, want.Pix)
			}
		})
	}

	// data sectors carry no video coding byte
	spec := FrameSpec{Name: "nocoding", Type: "data", Channel: 0, Width: 4, Height: 2}
	if _, err := NewImageProcessor().DecodeFrame(disc, spec); err == nil {
		t.Error("DecodeFrame() should fail without a coding for data sectors")
	}
	spec = FrameSpec{Name: "badtype", Type: "subtitle", Channel: 0, Width: 4, Height: 2}
	if _, err := NewImageProcessor().DecodeFrame(disc, spec); err == nil {
		t.Error("DecodeFrame() should fail for an unknown sector type")
	}
}

func TestImageProcessor_DecodeFrame_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		spec FrameSpec
	}{
		{"MPEG sector", FrameSpec{Name: "mpeg", Channel: 4, Width: 4, Height: 2}},
		{"RGB555 requested", FrameSpec{Name: "rgb", Coding: "RGB555L", Channel: 1, Width: 4, Height: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewImageProcessor().DecodeFrame(testDisc(), tt.spec)
			var unsupported *common.UnsupportedCodingTypeError
			if !errors.As(err, &unsupported) {
				t.Errorf("DecodeFrame() error = %v, want UnsupportedCodingTypeError", err)
			}
		})
	}
}

func TestImageProcessor_DecodeFrame_Selection(t *testing.T) {
	tests := []struct {
		name string
		spec FrameSpec
	}{
		{"missing record", FrameSpec{Name: "r", Channel: 1, Record: 5, Width: 4, Height: 2}},
		{"empty channel", FrameSpec{Name: "c", Channel: 9, Width: 4, Height: 2}},
		{"range past the end", FrameSpec{Name: "s", Channel: 1, Start: 100, Count: 2, Width: 4, Height: 2}},
		{"unknown coding", FrameSpec{Name: "u", Coding: "XYZ", Channel: 1, Width: 4, Height: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewImageProcessor().DecodeFrame(testDisc(), tt.spec); err == nil {
				t.Error("DecodeFrame() should fail")
			}
		})
	}
}

const testJob = `animation: anim.gif
delay: 20
defaults:
  coding: CLUT8
  channel: 1
  width: 4
  height: 2
  palette:
    sector: 0
    format: rgb
    length: 9
frames:
  - name: first
    record: 0
  - record: 1
    coding: DYUV
    palette:
      sector: 0
      format: rgb
      length: 3
`

func TestImageProcessor_LoadJob(t *testing.T) {
	path := writeTestFile(t, "job.yaml", []byte(testJob))

	job, err := NewImageProcessor().LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob() failed: %v", err)
	}
	if len(job.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, want 2", len(job.Frames))
	}

	first, second := job.Frames[0], job.Frames[1]
	if first.Coding != "CLUT8" || first.Channel != 1 || first.Width != 4 || first.Height != 2 {
		t.Errorf("defaults not applied: %+v", first)
	}
	if first.Palette == nil || first.Palette.Length != 9 {
		t.Errorf("default palette not applied: %+v", first.Palette)
	}
	if second.Name != "frame_0001" || second.Coding != "DYUV" {
		t.Errorf("second frame = %+v", second)
	}
	if second.Palette == nil || second.Palette.Length != 3 {
		t.Errorf("frame palette should win over default: %+v", second.Palette)
	}
	if job.Animation != "anim.gif" || job.Delay != 20 {
		t.Errorf("animation = %q delay %d", job.Animation, job.Delay)
	}
}

func TestImageProcessor_LoadJob_SectorType(t *testing.T) {
	body := `defaults:
  type: data
  coding: DYUV
  width: 4
  height: 2
frames:
  - name: from_data
    count: 1
  - name: from_video
    type: video
    channel: 1
    record: 1
`
	path := writeTestFile(t, "job.yaml", []byte(body))

	job, err := NewImageProcessor().LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob() failed: %v", err)
	}
	if job.Frames[0].Type != "data" || job.Frames[1].Type != "video" {
		t.Errorf("types = %q, %q, want data, video", job.Frames[0].Type, job.Frames[1].Type)
	}

	outputDir := t.TempDir()
	if err := NewImageProcessor().ProcessJob(context.Background(), testDisc(), job, outputDir); err != nil {
		t.Fatalf("ProcessJob() failed: %v", err)
	}
	for _, name := range []string{"from_data", "from_video"} {
		if _, err := os.Stat(filepath.Join(outputDir, name+".png")); err != nil {
			t.Errorf("frame %s not written: %v", name, err)
		}
	}
}

func TestImageProcessor_LoadJob_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing width", "frames:\n  - name: a\n    channel: 1\n"},
		{"not yaml", "frames: [\n"},
		{"parent directory name", "frames:\n  - name: ../../x\n    width: 4\n"},
		{"nested name", "frames:\n  - name: sub/x\n    width: 4\n"},
		{"dot dot name", "frames:\n  - name: ..\n    width: 4\n"},
		{"animation outside output", "animation: ../anim.gif\nframes:\n  - name: a\n    width: 4\n"},
		{"unknown sector type", "defaults:\n  type: subtitle\nframes:\n  - name: a\n    width: 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "job.yaml", []byte(tt.body))
			if _, err := NewImageProcessor().LoadJob(path); err == nil {
				t.Error("LoadJob() should fail")
			}
		})
	}

	if _, err := NewImageProcessor().LoadJob(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("LoadJob() should fail for a missing file")
	}
}

func TestImageProcessor_ProcessJob(t *testing.T) {
	job := &ImageJob{
		Animation: "anim.gif",
		Frames: []FrameSpec{
			{Name: "clut", Coding: "CLUT8", Channel: 1, Record: 0, Width: 4, Height: 2, Palette: rgbPalette},
			{Name: "dyuv", Channel: 1, Record: 1, Width: 4, Height: 2},
			{Name: "rl7", Channel: 3, Width: 4, Height: 2},
		},
	}
	outputDir := t.TempDir()

	if err := NewImageProcessor().ProcessJob(context.Background(), testDisc(), job, outputDir); err != nil {
		t.Fatalf("ProcessJob() failed: %v", err)
	}

	for _, name := range []string{"clut", "dyuv", "rl7"} {
		file, err := os.Open(filepath.Join(outputDir, name+".png"))
		if err != nil {
			t.Fatalf("frame %s not written: %v", name, err)
		}
		img, err := png.Decode(file)
		file.Close()
		if err != nil {
			t.Fatalf("frame %s is not a PNG: %v", name, err)
		}
		if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
			t.Errorf("frame %s bounds = %v", name, img.Bounds())
		}
	}

	file, err := os.Open(filepath.Join(outputDir, "anim.gif"))
	if err != nil {
		t.Fatalf("animation not written: %v", err)
	}
	defer file.Close()
	anim, err := gif.DecodeAll(file)
	if err != nil {
		t.Fatalf("animation is not a GIF: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("animation has %d frames, want 3", len(anim.Image))
	}
	if anim.Delay[0] != defaultGIFDelay {
		t.Errorf("delay = %d, want %d", anim.Delay[0], defaultGIFDelay)
	}
}

func TestImageProcessor_ProcessJob_RejectsEscapingNames(t *testing.T) {
	root := t.TempDir()
	outputDir := filepath.Join(root, "out")
	job := &ImageJob{
		Frames: []FrameSpec{
			{Name: "../escaped", Channel: 1, Record: 1, Width: 4, Height: 2},
		},
	}

	if err := NewImageProcessor().ProcessJob(context.Background(), testDisc(), job, outputDir); err == nil {
		t.Fatal("ProcessJob() should reject a frame name with a path separator")
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.png")); !os.IsNotExist(err) {
		t.Error("no file should be written outside the output directory")
	}
}

func TestImageProcessor_ProcessJob_FrameError(t *testing.T) {
	job := &ImageJob{
		Frames: []FrameSpec{
			{Name: "ok", Channel: 1, Record: 1, Width: 4, Height: 2},
			{Name: "mpeg", Channel: 4, Width: 4, Height: 2},
		},
	}
	outputDir := t.TempDir()

	err := NewImageProcessor().ProcessJob(context.Background(), testDisc(), job, outputDir)
	var unsupported *common.UnsupportedCodingTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("ProcessJob() error = %v, want UnsupportedCodingTypeError", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "ok.png")); !os.IsNotExist(err) {
		t.Error("no frame should be written when a frame fails")
	}
}

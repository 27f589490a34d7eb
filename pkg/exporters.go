// Package pkg provides the processors behind the cditools commands.
// This file contains exporters for PNG frames, GIF animations, WAV audio
// and YAML documents.
package pkg

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hansbonini/cditools/pkg/audio"
	"github.com/hansbonini/cditools/pkg/common"
	"gopkg.in/yaml.v3"
)

// defaultGIFDelay is used when a job does not set a frame delay (1/100 s)
const defaultGIFDelay = 10

// createOutputFile creates path and any missing parent directories
func createOutputFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, common.FormatError(common.ErrFailedToCreateOutputFile, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	return file, nil
}

// savePNG writes img as a PNG file
func savePNG(img image.Image, path string) error {
	file, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return common.FormatError(common.ErrFailedToEncodePNG, err)
	}
	return nil
}

// saveGIF writes frames as a looping GIF animation. Frames are quantized
// to the Plan 9 palette with Floyd-Steinberg dithering.
func saveGIF(frames []DecodedFrame, delay int, path string) error {
	if len(frames) == 0 {
		return fmt.Errorf("%s: no frames", common.ErrFailedToEncodeGIF)
	}
	if delay <= 0 {
		delay = defaultGIFDelay
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		bounds := frame.Image.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, frame.Image, bounds.Min)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	file, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gif.EncodeAll(file, anim); err != nil {
		return common.FormatError(common.ErrFailedToEncodeGIF, err)
	}
	return nil
}

// saveWAV writes pcm as a 16-bit WAV file
func saveWAV(pcm *audio.PCM, path string) error {
	file, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return audio.WriteWAV(file, pcm)
}

// writeYAMLFile encodes v to path with two-space indentation
func writeYAMLFile(v interface{}, path string) error {
	file, err := createOutputFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return common.FormatError(common.ErrFailedToWriteYAML, err)
	}
	return encoder.Close()
}

// readYAMLFile decodes the YAML document at path into v
func readYAMLFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.FormatError(common.ErrFailedToReadYAMLFile, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return common.FormatError(common.ErrFailedToParseYAML, err)
	}
	return nil
}

// Package pkg provides the processors behind the cditools commands.
// This file contains video frame decoding driven by YAML job files.
package pkg

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/hansbonini/cditools/pkg/common"
	"github.com/hansbonini/cditools/pkg/video"
)

// grayscaleSize is the ramp length used when a frame has no palette
const grayscaleSize = 256

// ImageProcessor decodes DYUV, CLUT and RL7 frames and exports them
type ImageProcessor struct {
	palettes *PaletteProcessor
	workers  int
}

var _ FrameDecoder = (*ImageProcessor)(nil)

// NewImageProcessor creates an image processor that decodes up to one
// frame per CPU at a time.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		palettes: NewPaletteProcessor(),
		workers:  runtime.NumCPU(),
	}
}

// LoadJob reads an image job file and applies its defaults to every frame
func (p *ImageProcessor) LoadJob(path string) (*ImageJob, error) {
	job := &ImageJob{}
	if err := readYAMLFile(path, job); err != nil {
		return nil, err
	}
	job.applyDefaults()

	for i := range job.Frames {
		if job.Frames[i].Name == "" {
			job.Frames[i].Name = fmt.Sprintf("frame_%04d", i)
		}
	}
	if err := job.validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// validate checks every frame before any sector is decoded
func (j *ImageJob) validate() error {
	if j.Animation != "" {
		if err := checkOutputName(j.Animation); err != nil {
			return fmt.Errorf("animation: %w", err)
		}
	}
	for _, f := range j.Frames {
		if err := checkOutputName(f.Name); err != nil {
			return fmt.Errorf("frame %q: %w", f.Name, err)
		}
		if f.Width <= 0 {
			return fmt.Errorf("frame %s: width must be positive", f.Name)
		}
		if _, err := f.sectorType(); err != nil {
			return fmt.Errorf("frame %s: %w", f.Name, err)
		}
	}
	return nil
}

// checkOutputName rejects names that would leave the output directory
func checkOutputName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return common.FormatErrorString(common.ErrInvalidOutputName, "%q", name)
	}
	return nil
}

// sectorType resolves the category the frame reads, video by default
func (f FrameSpec) sectorType() (cdi.SectorType, error) {
	if f.Type == "" {
		return cdi.SectorVideo, nil
	}
	return cdi.ParseSectorType(f.Type)
}

func (j *ImageJob) applyDefaults() {
	d := j.Defaults
	for i := range j.Frames {
		f := &j.Frames[i]
		if f.Coding == "" {
			f.Coding = d.Coding
		}
		if f.Type == "" {
			f.Type = d.Type
		}
		if f.Channel == 0 {
			f.Channel = d.Channel
		}
		if f.Width == 0 {
			f.Width = d.Width
		}
		if f.Height == 0 {
			f.Height = d.Height
		}
		if f.Palette == nil && d.Palette != nil {
			palette := *d.Palette
			f.Palette = &palette
		}
	}
}

// ProcessJob decodes every frame of job concurrently, then writes one PNG
// per frame to outputDir and, when the job names one, a GIF animation of
// all frames in job order.
func (p *ImageProcessor) ProcessJob(ctx context.Context, disc *cdi.Disc, job *ImageJob, outputDir string) error {
	if err := job.validate(); err != nil {
		return err
	}
	common.LogInfo(common.InfoJobFramesScheduled, len(job.Frames), disc.Name())

	frames := make([]DecodedFrame, len(job.Frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, spec := range job.Frames {
		i, spec := i, spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := p.DecodeFrame(disc, spec)
			if err != nil {
				return fmt.Errorf("%s %s: %w", common.ErrFailedToDecodeFrame, spec.Name, err)
			}
			frames[i] = DecodedFrame{Name: spec.Name, Image: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, frame := range frames {
		path := filepath.Join(outputDir, frame.Name+".png")
		if err := savePNG(frame.Image, path); err != nil {
			return err
		}
		bounds := frame.Image.Bounds()
		common.LogInfo(common.InfoFrameExported, frame.Name, bounds.Dx(), bounds.Dy(), path)
	}

	if job.Animation != "" {
		path := filepath.Join(outputDir, job.Animation)
		if err := saveGIF(frames, job.Delay, path); err != nil {
			return err
		}
		common.LogInfo(common.InfoAnimationExported, len(frames), path)
	}
	return nil
}

// DecodeFrame decodes the picture selected by spec
func (p *ImageProcessor) DecodeFrame(disc *cdi.Disc, spec FrameSpec) (*image.RGBA, error) {
	sectors, err := p.frameSectors(disc, spec)
	if err != nil {
		return nil, err
	}
	data := cdi.Payloads(sectors)
	common.LogDebug(common.DebugFrameSectors, spec.Name, len(sectors), len(data))

	coding, err := frameCoding(spec, sectors[0])
	if err != nil {
		return nil, err
	}

	switch coding {
	case cdi.CodingDYUV:
		if need := spec.Width * spec.Height; len(data) < need {
			common.LogWarn(common.WarnShortFrame, spec.Name, len(data))
		}
		return video.DecodeDYUV(data, p.dyuvConfig(spec)), nil

	case cdi.CodingCLUT4, cdi.CodingCLUT7, cdi.CodingCLUT8:
		palette, err := p.framePalette(disc, spec)
		if err != nil {
			return nil, err
		}
		config := clutConfig(spec, palette)
		if coding == cdi.CodingCLUT4 {
			return video.DecodeCLUT4(data, config)
		}
		return video.DecodeCLUT(data, config)

	case cdi.CodingRL7:
		palette, err := p.framePalette(disc, spec)
		if err != nil {
			return nil, err
		}
		clut := clutConfig(spec, palette)
		return video.DecodeRLE(data, video.RLEConfig{
			LineWidth:         clut.Width,
			Height:            clut.Height,
			Palette:           clut.Palette,
			UseTransparency:   clut.UseTransparency,
			TransparencyIndex: clut.TransparencyIndex,
			UseLowerIndexes:   clut.UseLowerIndexes,
		})

	default:
		return nil, &common.UnsupportedCodingTypeError{Coding: coding.String(), Value: uint8(coding)}
	}
}

// frameSectors picks the sectors of one frame, video sectors unless the
// frame names another category
func (p *ImageProcessor) frameSectors(disc *cdi.Disc, spec FrameSpec) ([]*cdi.Sector, error) {
	t, err := spec.sectorType()
	if err != nil {
		return nil, err
	}
	sel := SectorSelection{Channel: spec.Channel, File: spec.File, Type: t}
	sectors := sel.Select(disc)

	if spec.Count > 0 {
		var picked []*cdi.Sector
		for _, s := range sectors {
			if s.Index() >= spec.Start && len(picked) < spec.Count {
				picked = append(picked, s)
			}
		}
		if len(picked) == 0 {
			return nil, common.FormatErrorString(common.ErrNoSectorsSelected,
				"frame %s: no %s sectors on channel %d from sector %d", spec.Name, t, spec.Channel, spec.Start)
		}
		return picked, nil
	}

	records := cdi.SplitRecords(sectors, cdi.TriggerBoundary)
	common.LogDebug(common.DebugRecordSplit, len(sectors), len(records))
	if spec.Record < 0 || spec.Record >= len(records) {
		return nil, common.FormatErrorString(common.ErrNoSectorsSelected,
			"frame %s: record %d not found (channel %d has %d)", spec.Name, spec.Record, spec.Channel, len(records))
	}
	return records[spec.Record].Sectors, nil
}

// frameCoding resolves the coding named by spec, falling back to the
// coding-info byte of the first frame sector.
func frameCoding(spec FrameSpec, first *cdi.Sector) (cdi.CodingType, error) {
	if spec.Coding != "" {
		return cdi.ParseCodingType(spec.Coding)
	}
	coding, ok := first.VideoCoding()
	if !ok {
		return 0, fmt.Errorf("sector %d is not a video sector, frame %s must name its coding", first.Index(), spec.Name)
	}
	return coding.Coding(), nil
}

func (p *ImageProcessor) dyuvConfig(spec FrameSpec) video.DYUVConfig {
	config := video.DefaultDYUVConfig(spec.Width, spec.Height)
	if spec.InitialY != nil {
		config.InitialY = *spec.InitialY
	}
	if spec.InitialU != nil {
		config.InitialU = *spec.InitialU
	}
	if spec.InitialV != nil {
		config.InitialV = *spec.InitialV
	}
	return config
}

// framePalette loads the frame color table, or a grayscale ramp when the
// frame does not name one.
func (p *ImageProcessor) framePalette(disc *cdi.Disc, spec FrameSpec) (video.Palette, error) {
	if spec.Palette == nil {
		common.LogWarn(common.WarnPaletteSectorNotSet, spec.Name)
		return video.Grayscale(grayscaleSize), nil
	}
	return p.palettes.Load(disc, *spec.Palette)
}

func clutConfig(spec FrameSpec, palette video.Palette) video.CLUTConfig {
	config := video.CLUTConfig{
		Width:   spec.Width,
		Height:  spec.Height,
		Palette: palette,
	}
	if spec.Transparency != nil {
		config.UseTransparency = true
		config.TransparencyIndex = spec.Transparency.Index
		config.UseLowerIndexes = spec.Transparency.Lower
	}
	return config
}

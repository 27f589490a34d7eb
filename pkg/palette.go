// Package pkg provides the processors behind the cditools commands.
// This file contains color table loading and palette swatch export.
package pkg

import (
	"fmt"

	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/hansbonini/cditools/pkg/common"
	"github.com/hansbonini/cditools/pkg/video"
)

// PaletteProcessor reads color tables out of sector payloads
type PaletteProcessor struct {
	trace common.Tracer
}

// NewPaletteProcessor creates a palette processor that reports every
// color it reads as a debug message.
func NewPaletteProcessor() *PaletteProcessor {
	return &PaletteProcessor{trace: common.LogDebug}
}

// Load reads the palette described by spec
func (p *PaletteProcessor) Load(disc *cdi.Disc, spec PaletteSpec) (video.Palette, error) {
	sector, err := disc.Sector(spec.Sector)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadPalette, err)
	}

	payload := sector.Payload()
	if spec.Offset < 0 || spec.Offset >= len(payload) {
		return nil, common.FormatError(common.ErrFailedToReadPalette, &common.TruncatedPayloadError{
			What:   "palette",
			Offset: spec.Offset,
			Need:   spec.Offset + 1,
			Have:   len(payload),
		})
	}
	data := payload[spec.Offset:]
	if spec.Length > 0 && spec.Length < len(data) {
		data = data[:spec.Length]
	}

	var colors video.Palette
	switch spec.Format {
	case "", PaletteFormatBanks:
		banks := spec.Banks
		if banks <= 0 {
			banks = (len(data) + video.CLUTBankSize - 1) / video.CLUTBankSize
		}
		colors = video.ReadCLUTBanks(data, banks, p.trace)
	case PaletteFormatIndexed:
		colors = video.ReadIndexedPalette(data)
	case PaletteFormatUnindexed:
		colors = video.ReadUnindexedPalette(data)
	default:
		return nil, fmt.Errorf("%s: unknown format %q", common.ErrFailedToReadPalette, spec.Format)
	}

	if len(colors) == 0 {
		return nil, fmt.Errorf("%s: sector %d holds no colors", common.ErrFailedToReadPalette, spec.Sector)
	}
	return colors, nil
}

// Dump reads the palette described by spec and writes its swatch as PNG
func (p *PaletteProcessor) Dump(disc *cdi.Disc, spec PaletteSpec, outputFile string) error {
	colors, err := p.Load(disc, spec)
	if err != nil {
		return err
	}

	if err := savePNG(video.PaletteSwatch(colors), outputFile); err != nil {
		return err
	}
	common.LogInfo(common.InfoPaletteExported, len(colors), outputFile)
	return nil
}

// Package pkg provides the processors behind the cditools commands.
// This file contains ADPCM audio extraction to WAV.
package pkg

import (
	"github.com/hansbonini/cditools/pkg/audio"
	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/hansbonini/cditools/pkg/common"
)

// AudioProcessor decodes ADPCM audio streams
type AudioProcessor struct{}

// NewAudioProcessor creates a new audio processor instance
func NewAudioProcessor() *AudioProcessor {
	return &AudioProcessor{}
}

// Decode decodes the audio sectors of channel (and file, when set) into PCM
func (p *AudioProcessor) Decode(disc *cdi.Disc, channel uint8, file *uint8) (*audio.PCM, error) {
	sel := SectorSelection{Channel: channel, File: file, Type: cdi.SectorAudio}
	sectors := sel.Select(disc)
	if len(sectors) == 0 {
		return nil, common.FormatErrorString(common.ErrNoSectorsSelected, "audio on channel %d", channel)
	}

	return audio.DecodeSectors(sectors)
}

// Extract decodes one audio channel and writes it to outputFile as WAV
func (p *AudioProcessor) Extract(disc *cdi.Disc, channel uint8, file *uint8, outputFile string) error {
	pcm, err := p.Decode(disc, channel, file)
	if err != nil {
		return err
	}

	if err := saveWAV(pcm, outputFile); err != nil {
		return err
	}
	common.LogInfo(common.InfoAudioExtracted, pcm.Frames(), pcm.SampleRate, outputFile)
	return nil
}

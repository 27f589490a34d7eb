package audio

import (
	"errors"
	"fmt"

	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/hansbonini/cditools/pkg/common"
)

// DecodeSectors decodes the audio sectors of one logical stream (one file
// and channel). The coding of the first sector selects the layout, channel
// count and sample rate for the whole stream.
func DecodeSectors(sectors []*cdi.Sector) (*PCM, error) {
	if len(sectors) == 0 {
		return nil, errors.New(common.ErrNoSectorsSelected)
	}

	coding, ok := sectors[0].AudioCoding()
	if !ok {
		return nil, fmt.Errorf("sector %d is not an audio sector", sectors[0].Index())
	}
	if coding.SampleRateValue() == 0 {
		return nil, &common.UnsupportedCodingTypeError{
			Coding: "audio sample rate " + coding.SampleRateString(),
			Value:  coding.SampleRate(),
		}
	}

	decoder, err := NewDecoderFor(coding)
	if err != nil {
		return nil, err
	}
	common.LogDebug(common.DebugAudioCoding, coding.BitsPerSampleString(), coding.SampleRateString(), coding.ChannelsString())

	for _, s := range sectors {
		if s.Type() != cdi.SectorAudio {
			return nil, fmt.Errorf("sector %d is not an audio sector", s.Index())
		}
	}

	pcm, err := decoder.Decode(cdi.Payloads(sectors))
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToDecodeAudio, err)
	}
	pcm.SampleRate = coding.SampleRateValue()
	return pcm, nil
}

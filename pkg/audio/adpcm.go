// Package audio decodes CD-i ADPCM sound groups into 16-bit PCM.
//
// A sound group is 128 bytes: a 16-byte parameter header followed by 112
// bytes of residuals. Level A groups hold 4 sound units of 8-bit residuals,
// Level B and C groups hold 8 sound units of 4-bit residuals. Every sound
// unit yields 28 samples.
package audio

import (
	"fmt"

	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/hansbonini/cditools/pkg/common"
)

const (
	SoundGroupSize    = 128
	SoundGroupHeader  = 16
	SamplesPerUnit    = 28
	GroupsPerSector   = cdi.AudioPayloadSize / SoundGroupSize
	levelAUnits       = 4
	levelBCUnits      = 8
	levelAGainShift   = 8
	levelBCGainShift  = 12
	levelBCParamStart = 4
)

// Prediction filter coefficients, scaled by 256
var (
	k0 = [4]int32{0, 240, 460, 392}
	k1 = [4]int32{0, 0, -208, -220}
)

// Level selects the sound group layout
type Level int

const (
	LevelA  Level = iota // 8-bit residuals, 4 sound units
	LevelBC              // 4-bit residuals, 8 sound units
)

func (l Level) String() string {
	if l == LevelA {
		return "Level A"
	}
	return "Level B/C"
}

// Units returns the number of sound units per group
func (l Level) Units() int {
	if l == LevelA {
		return levelAUnits
	}
	return levelBCUnits
}

// SamplesPerGroup returns the number of samples one group reconstructs
func (l Level) SamplesPerGroup() int {
	return l.Units() * SamplesPerUnit
}

// LevelFor picks the layout matching an audio coding byte
func LevelFor(coding cdi.AudioCoding) (Level, error) {
	switch coding.BitsPerSampleValue() {
	case 4:
		return LevelBC, nil
	case 8:
		return LevelA, nil
	default:
		return 0, &common.UnsupportedCodingTypeError{
			Coding: "audio " + coding.BitsPerSampleString(),
			Value:  coding.BitsPerSample(),
		}
	}
}

// predictor holds the two most recent outputs of one channel
type predictor struct {
	h0, h1 int32
}

func (p *predictor) next(residual int32, shift, rng uint8, filter uint8) int16 {
	// residual * 2^(shift-range); ranges above shift scale down instead
	scaled := (residual << shift) >> rng
	sample := common.ClampToInt16(scaled + (k0[filter]*p.h0+k1[filter]*p.h1)/256)
	p.h1 = p.h0
	p.h0 = int32(sample)
	return sample
}

// Decoder reconstructs PCM from consecutive sound groups. Prediction
// history is kept per output channel and starts from zero in every group
// unless the decoder was created WithCarryHistory.
type Decoder struct {
	level  Level
	stereo bool
	carry  bool
	left   predictor
	right  predictor
}

// DecoderOption configures a Decoder
type DecoderOption func(*Decoder)

// WithCarryHistory keeps the prediction history from one sound group to the
// next instead of clearing it at each group start
func WithCarryHistory() DecoderOption {
	return func(d *Decoder) { d.carry = true }
}

// NewDecoder creates a decoder for one logical audio stream
func NewDecoder(level Level, stereo bool, opts ...DecoderOption) *Decoder {
	d := &Decoder{level: level, stereo: stereo}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDecoderFor creates a decoder configured from an audio coding byte
func NewDecoderFor(coding cdi.AudioCoding, opts ...DecoderOption) (*Decoder, error) {
	level, err := LevelFor(coding)
	if err != nil {
		return nil, err
	}
	return NewDecoder(level, coding.IsStereo(), opts...), nil
}

// Reset clears the prediction history
func (d *Decoder) Reset() {
	d.left = predictor{}
	d.right = predictor{}
}

// DecodeGroup decodes one 128-byte sound group. Samples are produced unit by
// unit; in stereo mode odd units go to the right channel, otherwise every
// unit goes to the left channel.
func (d *Decoder) DecodeGroup(group []byte) (left, right []int16, err error) {
	if len(group) < SoundGroupSize {
		return nil, nil, &common.TruncatedPayloadError{
			What: "sound group",
			Need: SoundGroupSize,
			Have: len(group),
		}
	}

	var (
		units   = d.level.Units()
		shift   uint8
		ranges  [levelBCUnits]uint8
		filters [levelBCUnits]uint8
		sd      [levelBCUnits][SamplesPerUnit]int32
	)

	if d.level == LevelA {
		shift = levelAGainShift
		for i := 0; i < units; i++ {
			ranges[i] = group[i] & 0x0F
			filters[i] = group[i] >> 4
		}
		index := SoundGroupHeader
		for ss := 0; ss < SamplesPerUnit; ss++ {
			for su := 0; su < units; su++ {
				sd[su][ss] = int32(int8(group[index]))
				index++
			}
		}
	} else {
		shift = levelBCGainShift
		for i := 0; i < units; i++ {
			ranges[i] = group[levelBCParamStart+i] & 0x0F
			filters[i] = group[levelBCParamStart+i] >> 4
		}
		index := SoundGroupHeader
		for ss := 0; ss < SamplesPerUnit; ss++ {
			for su := 0; su < units; su += 2 {
				sb := group[index]
				sd[su][ss] = signExtend4(sb & 0x0F)
				sd[su+1][ss] = signExtend4(sb >> 4)
				index++
			}
		}
	}

	for i := 0; i < units; i++ {
		if int(filters[i]) >= len(k0) {
			return nil, nil, fmt.Errorf("unit %d filter %d: %w", i, filters[i], common.ErrInvalidFilter)
		}
	}

	if !d.carry {
		d.Reset()
	}

	capacity := d.level.SamplesPerGroup()
	if d.stereo {
		capacity /= 2
		right = make([]int16, 0, capacity)
	}
	left = make([]int16, 0, capacity)

	for i := 0; i < units; i++ {
		p, out := &d.left, &left
		if d.stereo && i&1 == 1 {
			p, out = &d.right, &right
		}
		for ss := 0; ss < SamplesPerUnit; ss++ {
			*out = append(*out, p.next(sd[i][ss], shift, ranges[i], filters[i]))
		}
	}

	return left, right, nil
}

// Decode decodes a run of whole sound groups, such as the concatenated
// payloads of one audio channel. Input that does not end on a group
// boundary is rejected.
func (d *Decoder) Decode(data []byte) (*PCM, error) {
	if len(data)%SoundGroupSize != 0 {
		return nil, &common.TruncatedPayloadError{
			What:   "sound group",
			Offset: len(data) - len(data)%SoundGroupSize,
			Need:   SoundGroupSize,
			Have:   len(data) % SoundGroupSize,
		}
	}

	groups := len(data) / SoundGroupSize
	pcm := &PCM{Stereo: d.stereo}
	perChannel := groups * d.level.SamplesPerGroup()
	if d.stereo {
		perChannel /= 2
		pcm.Right = make([]int16, 0, perChannel)
	}
	pcm.Left = make([]int16, 0, perChannel)

	for g := 0; g < groups; g++ {
		offset := g * SoundGroupSize
		left, right, err := d.DecodeGroup(data[offset : offset+SoundGroupSize])
		if err != nil {
			return nil, fmt.Errorf("sound group %d at offset %d: %w", g, offset, err)
		}
		pcm.Left = append(pcm.Left, left...)
		pcm.Right = append(pcm.Right, right...)
	}

	return pcm, nil
}

// signExtend4 interprets a nibble as a two's-complement value
func signExtend4(n uint8) int32 {
	v := int32(n)
	if v >= 8 {
		v -= 16
	}
	return v
}

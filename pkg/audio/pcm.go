package audio

import (
	"encoding/binary"
	"io"

	"github.com/hansbonini/cditools/pkg/common"
)

// PCM holds decoded 16-bit samples. Right is empty for mono streams.
type PCM struct {
	Left       []int16
	Right      []int16
	Stereo     bool
	SampleRate int
}

// Channels returns 1 or 2
func (p *PCM) Channels() int {
	if p.Stereo {
		return 2
	}
	return 1
}

// Frames returns the number of sample frames (samples per channel)
func (p *PCM) Frames() int {
	if p.Stereo && len(p.Right) < len(p.Left) {
		return len(p.Right)
	}
	return len(p.Left)
}

// Interleaved returns the samples in L,R,L,R order for stereo streams or
// the left channel for mono ones.
func (p *PCM) Interleaved() []int16 {
	if !p.Stereo {
		out := make([]int16, len(p.Left))
		copy(out, p.Left)
		return out
	}

	frames := p.Frames()
	out := make([]int16, 0, frames*2)
	for i := 0; i < frames; i++ {
		out = append(out, p.Left[i], p.Right[i])
	}
	return out
}

// WAV constants
const (
	wavHeaderSize = 44
	bitsPerSample = 16
)

// WriteWAV writes p as a canonical 16-bit PCM WAV stream
func WriteWAV(w io.Writer, p *PCM) error {
	samples := p.Interleaved()
	channels := p.Channels()
	dataSize, err := common.SafeIntToUint32(len(samples) * 2)
	if err != nil {
		return common.FormatError(common.ErrFailedToWriteWAV, err)
	}
	blockAlign := channels * bitsPerSample / 8
	byteRate := p.SampleRate * blockAlign

	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // Subchunk1Size (16 for PCM)
	binary.LittleEndian.PutUint16(header[20:22], 1)  // AudioFormat (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(p.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return common.FormatError(common.ErrFailedToWriteWAV, err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return common.FormatError(common.ErrFailedToWriteWAV, err)
	}
	return nil
}

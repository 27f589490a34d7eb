// Package pkg provides shared fixtures for processor tests
package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hansbonini/cditools/pkg/cdi"
)

// rawSector builds one raw sector with both subheader copies set and
// payload copied to the start of the user data area.
func rawSector(file, channel byte, submode cdi.SubmodeBit, coding byte, payload []byte) []byte {
	raw := make([]byte, cdi.SectorSize)
	subheader := []byte{file, channel, byte(submode), coding}
	copy(raw[cdi.HeaderSize:], subheader)
	copy(raw[cdi.HeaderSize+4:], subheader)
	copy(raw[cdi.PayloadOffset:], payload)
	return raw
}

const (
	realTimeVideo = cdi.SubmodeVideo | cdi.SubmodeForm2 | cdi.SubmodeRealTime
	frameEnd      = realTimeVideo | cdi.SubmodeTrigger
)

// testDiscImage lays out a small disc:
//
//	0  data   ch0  RGB palette red, green, blue
//	1  video  ch1  CLUT8, indexes 0..7
//	2  video  ch1  CLUT8, trigger
//	3  video  ch1  DYUV, trigger, zero deltas
//	4  audio  ch2  4-bit mono 37.8 kHz, silence
//	5  empty
//	6  video  ch3  RL7, trigger
//	7  video  ch4  MPEG, trigger
func testDiscImage() []byte {
	var buffer bytes.Buffer
	buffer.Write(rawSector(1, 0, cdi.SubmodeData, 0, []byte{0xFF, 0, 0, 0, 0xFF, 0, 0, 0, 0xFF}))
	buffer.Write(rawSector(1, 1, realTimeVideo, 0x02, []byte{0, 1, 2, 3, 4, 5, 6, 7}))
	buffer.Write(rawSector(1, 1, frameEnd, 0x02, nil))
	buffer.Write(rawSector(1, 1, frameEnd, 0x05, nil))
	buffer.Write(rawSector(1, 2, cdi.SubmodeAudio|cdi.SubmodeForm2|cdi.SubmodeRealTime, 0x00, nil))
	buffer.Write(make([]byte, cdi.SectorSize))
	buffer.Write(rawSector(1, 3, frameEnd, 0x04, []byte{0x81, 0x00, 0x82, 0x00}))
	buffer.Write(rawSector(1, 4, frameEnd, 0x0F, nil))
	return buffer.Bytes()
}

func testDisc() *cdi.Disc {
	return cdi.Open(testDiscImage())
}

// writeTestFile writes data under the test temp dir and returns its path
func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

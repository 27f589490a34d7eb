package common

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame magic number of a zstd stream (little-endian 0xFD2FB528).
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// IsZstd reports whether data starts with a zstd frame header
func IsZstd(data []byte) bool {
	return len(data) >= len(zstdMagic) && bytes.Equal(data[:len(zstdMagic)], zstdMagic)
}

// LoadImage reads a raw disc image from disk. Images compressed with zstd
// (detected by magic number or a .zst suffix) are decompressed in memory.
func LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FormatError(ErrFailedToLoadImage, err)
	}

	if !IsZstd(data) && !strings.HasSuffix(strings.ToLower(path), ".zst") {
		return data, nil
	}

	LogDebug(InfoCompressedImage, path)
	return ReadImage(bytes.NewReader(data))
}

// ReadImage reads a whole disc image from reader, transparently
// decompressing zstd streams.
func ReadImage(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, FormatError(ErrFailedToLoadImage, err)
	}
	if !IsZstd(data) {
		return data, nil
	}

	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, FormatError(ErrFailedToOpenZstd, err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, FormatError(ErrFailedToLoadImage, fmt.Errorf("zstd decode: %w", err))
	}
	return out, nil
}

package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Tracer receives optional diagnostics from decoders.
// A nil Tracer discards everything.
type Tracer func(format string, args ...interface{})

// Trace calls t when it is set.
func (t Tracer) Trace(format string, args ...interface{}) {
	if t != nil {
		t(format, args...)
	}
}

// Error messages
const (
	ErrFailedToLoadImage        = "failed to load disc image"
	ErrFailedToOpenZstd         = "failed to open zstd stream"
	ErrFailedToReadYAMLFile     = "failed to read YAML file"
	ErrFailedToParseYAML        = "failed to parse YAML"
	ErrFailedToWriteYAML        = "failed to write YAML report"
	ErrFailedToCreateOutputFile = "failed to create output file"
	ErrFailedToEncodePNG        = "failed to encode PNG image"
	ErrFailedToEncodeGIF        = "failed to encode GIF animation"
	ErrFailedToWriteWAV         = "failed to write WAV stream"
	ErrFailedToDecodeAudio      = "failed to decode ADPCM audio"
	ErrFailedToDecodeFrame      = "failed to decode video frame"
	ErrFailedToReadPalette      = "failed to read palette data"
	ErrNoSectorsSelected        = "no sectors matched the selection"
	ErrSectorOutOfRange         = "sector index is out of range"
	ErrInvalidOutputName        = "output name must be a plain file name"
)

// Info messages
const (
	InfoDiscLoaded         = "Loaded %d sectors from %s (%d trailing bytes dropped)"
	InfoSectorBreakdown    = "Audio: %d, Video: %d, Data: %d, Empty: %d"
	InfoAudioExtracted     = "Extracted %d samples per channel at %d Hz to: %s"
	InfoFrameExported      = "Exported frame %s (%dx%d) to: %s"
	InfoAnimationExported  = "Exported %d frames as GIF animation to: %s"
	InfoPaletteExported    = "Exported %d palette colors to: %s"
	InfoReportExported     = "Exported sector report (%d sectors) to: %s"
	InfoCompressedImage    = "Decompressing zstd disc image: %s"
	InfoChannelsFound      = "Channels found"
	InfoJobFramesScheduled = "Scheduled %d frames from job %s"
)

// Debug messages
const (
	DebugSectorsSelected  = "Selected %d sectors on channel %d (%s)"
	DebugAudioCoding      = "Audio coding: %s, %s, %s"
	DebugFrameSectors     = "Frame %s: %d sectors, %d payload bytes"
	DebugPaletteBankColor = "bank %d color %d: #%02X%02X%02X"
	DebugRecordSplit      = "Split %d sectors into %d records"
)

// Warning messages
const (
	WarnShortFrame          = "Frame %s ran out of data after %d payload bytes"
	WarnPaletteSectorNotSet = "Palette sector not set for frame %s, using grayscale ramp"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}

// Package cmd provides command-line interface for CD-i audio extraction.
// This file contains commands for decoding ADPCM sound groups to WAV.
package cmd

import (
	"fmt"

	"github.com/hansbonini/cditools/pkg"
	"github.com/spf13/cobra"
)

// audioCmd represents the parent command for all audio operations.
var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Extract ADPCM audio from CD-i disc images",
	Long: `Extract ADPCM audio from CD-i disc images.

Commands:
  extract   Decode one audio channel to a WAV file

Examples:
  cditools audio extract -c 0 game.bin track.wav`,
}

// audioExtractCmd decodes the audio sectors of one channel.
// Sample rate, sample width and channel count come from the coding
// information of the first selected sector.
var audioExtractCmd = &cobra.Command{
	Use:   "extract [input_file] [output_file]",
	Short: "Decode one audio channel to a WAV file",
	Long: `Decode one audio channel to a 16-bit PCM WAV file.

Level A (8-bit) and Level B/C (4-bit) sound groups are supported, in
mono and stereo. Sample rate and layout are taken from the coding
information of the first sector on the channel.

Flags:
  -c, --channel   Channel number to extract (default 0)
  -f, --file      Only use sectors with this file number

Example:
  cditools audio extract -c 1 game.bin channel1.wav`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := args[1]

		channel, file, err := selectionFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		disc, err := pkg.NewDiscProcessor().Load(inputFile)
		if err != nil {
			return fmt.Errorf("failed to load disc image: %w", err)
		}

		fmt.Printf("Extracting audio channel %d from: %s\n", channel, inputFile)
		if err := pkg.NewAudioProcessor().Extract(disc, channel, file, outputFile); err != nil {
			return fmt.Errorf("failed to extract audio: %w", err)
		}

		fmt.Printf("Audio saved to: %s\n", outputFile)
		return nil
	},
}

// init initializes the audio command with its subcommands and flags.
func init() {
	rootCmd.AddCommand(audioCmd)
	audioCmd.AddCommand(audioExtractCmd)

	addSelectionFlags(audioExtractCmd.Flags())
}

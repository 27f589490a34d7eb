// Package cmd provides command-line interface functionality for CDiTools.
// CDiTools is a collection of utilities for inspecting CD-i disc images
// and extracting their audio, pictures and color tables.
package cmd

import (
	"os"

	"github.com/hansbonini/cditools/pkg/common"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the CDiTools application.
var rootCmd = &cobra.Command{
	Use:   "cditools",
	Short: "Tools for extracting data from CD-i disc images",
	Long: `CDiTools - A collection of utilities for inspecting raw CD-i disc images
(2352-byte sectors, plain or zstd compressed).

Currently supports:
  - Sector listing, per-channel statistics and YAML reports
  - ADPCM audio extraction (Level A, B and C) to WAV
  - DYUV, CLUT and RL7 picture decoding to PNG and GIF
  - CLUT palette dumps

Examples:
  cditools disc info game.bin
  cditools disc sectors -c 1 -t video game.bin
  cditools disc report game.bin report.yaml
  cditools audio extract -c 0 game.bin track.wav
  cditools image decode --disc game.bin frames.yaml ./output/
  cditools palette dump -s 112 game.bin palette.png

Use 'cditools [command] --help' for more information about a command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err == nil {
			common.SetVerboseMode(verbose)
		}
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// init initializes the root command with flags shared by every command.
func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output (show debug messages)")
}

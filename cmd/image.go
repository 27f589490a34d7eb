// Package cmd provides command-line interface for CD-i picture decoding.
// This file contains commands for decoding video sectors into PNG frames
// and GIF animations.
package cmd

import (
	"errors"
	"fmt"

	"github.com/hansbonini/cditools/pkg"
	"github.com/spf13/cobra"
)

// imageCmd represents the parent command for all picture operations.
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Decode pictures from CD-i disc images",
	Long: `Decode DYUV, CLUT and RL7 pictures from CD-i disc images.

Commands:
  decode    Decode the frames listed in a YAML job file

Examples:
  cditools image decode --disc game.bin frames.yaml ./output/`,
}

// imageDecodeCmd decodes every frame of a job file.
var imageDecodeCmd = &cobra.Command{
	Use:   "decode [job_file] [output_directory]",
	Short: "Decode the frames listed in a YAML job file",
	Long: `Decode the frames listed in a YAML job file.

Each frame selects sectors by channel and either a record number
(records end at sectors with the trigger flag) or a start sector and
count. Video sectors are read unless the frame sets "type" (data, audio,
video or empty); frames read from other categories must name their
coding. Frames are decoded in parallel and saved as PNG files named after
the frame. Frame and animation names must be plain file names. When the
job sets "animation", all frames are also written as one GIF animation.

Job file example:
  disc: game.bin
  animation: intro.gif
  delay: 8
  defaults:
    channel: 1
    width: 384
    height: 240
  frames:
    - name: title
      coding: DYUV
      record: 0
    - name: logo
      type: data
      channel: 7
      coding: DYUV
      start: 40
      count: 100
    - name: menu
      coding: CLUT7
      record: 1
      palette:
        sector: 1120
        format: banks
        banks: 2
      transparency:
        index: 0
        lower: true

Supported codings: DYUV, CLUT4, CLUT7, CLUT8, RL7.
Palette formats: banks, indexed, rgb.

Flags:
  -d, --disc   Disc image to read (overrides "disc" in the job file)

Example:
  cditools image decode --disc game.bin frames.yaml ./output/`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobFile := args[0]

		discPath, err := cmd.Flags().GetString("disc")
		if err != nil {
			return fmt.Errorf("error getting disc flag: %w", err)
		}

		processor := pkg.NewImageProcessor()
		job, err := processor.LoadJob(jobFile)
		if err != nil {
			return fmt.Errorf("failed to load job file: %w", err)
		}

		if discPath == "" {
			discPath = job.Disc
		}
		if discPath == "" {
			return errors.New("no disc image given (use --disc or set disc in the job file)")
		}

		outputDir := job.Output
		if len(args) == 2 {
			outputDir = args[1]
		}
		if outputDir == "" {
			outputDir = "."
		}

		disc, err := pkg.NewDiscProcessor().Load(discPath)
		if err != nil {
			return fmt.Errorf("failed to load disc image: %w", err)
		}

		fmt.Printf("Decoding %d frames from: %s\n", len(job.Frames), discPath)
		fmt.Printf("Output directory: %s\n", outputDir)

		if err := processor.ProcessJob(cmd.Context(), disc, job, outputDir); err != nil {
			return fmt.Errorf("failed to decode frames: %w", err)
		}

		fmt.Println("Frames decoded successfully!")
		return nil
	},
}

// init initializes the image command with its subcommands and flags.
func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageDecodeCmd)

	imageDecodeCmd.Flags().StringP("disc", "d", "", "Disc image to read (overrides the job file)")
}

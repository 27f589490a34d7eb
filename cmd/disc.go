// Package cmd provides command-line interface for CD-i disc image inspection.
// This file contains commands for listing sectors and exporting sector reports.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/cditools/pkg"
	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/spf13/cobra"
)

// discCmd represents the parent command for all disc image operations.
var discCmd = &cobra.Command{
	Use:   "disc",
	Short: "Inspect CD-i disc images",
	Long: `Inspect raw CD-i disc images (2352-byte sectors).

Images compressed with zstd (.zst) are decompressed on the fly.

Commands:
  info      Show per-channel sector counts
  sectors   List sectors with their subheader fields
  report    Export a YAML sector report

Examples:
  cditools disc info game.bin
  cditools disc sectors -c 1 -t video game.bin
  cditools disc report --sectors game.bin report.yaml`,
}

// discInfoCmd prints how many sectors of each category every channel holds.
var discInfoCmd = &cobra.Command{
	Use:   "info [input_file]",
	Short: "Show per-channel sector counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processor := pkg.NewDiscProcessor()
		disc, err := processor.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load disc image: %w", err)
		}
		return processor.Info(disc, os.Stdout)
	},
}

var sectorType sectorTypeValue

// discSectorsCmd lists sectors, optionally narrowed to a channel, file
// number or category.
var discSectorsCmd = &cobra.Command{
	Use:   "sectors [input_file]",
	Short: "List sectors with their subheader fields",
	Long: `List sectors with their subheader fields.

For each sector this prints:
  - Index within the image
  - MSF (Minutes:Seconds:Frames) relative to the start of the image
  - File and channel numbers
  - Resolved category (Audio, Video, Data or Empty)
  - Submode flags (F=EOF R=real-time 2=form 2 T=trigger D=data A=audio V=video E=EOR)
  - Coding information

Flags:
  -c, --channel   Only list this channel (every channel when omitted)
  -f, --file      Only list this file number
  -t, --type      Only list this category: all, empty, data, audio, video

Example:
  cditools disc sectors -c 1 -t video game.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, file, err := selectionFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		allChannels := !cmd.Flags().Changed("channel")

		processor := pkg.NewDiscProcessor()
		disc, err := processor.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load disc image: %w", err)
		}

		keep := func(s *cdi.Sector) bool {
			if !allChannels && s.ChannelNumber() != channel {
				return false
			}
			if file != nil && s.FileNumber() != *file {
				return false
			}
			return sectorType.matches(s)
		}
		return processor.ListSectors(disc, keep, os.Stdout)
	},
}

// discReportCmd exports the disc summary as YAML.
var discReportCmd = &cobra.Command{
	Use:   "report [input_file] [output_file]",
	Short: "Export a YAML sector report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		withSectors, err := cmd.Flags().GetBool("sectors")
		if err != nil {
			return fmt.Errorf("error getting sectors flag: %w", err)
		}

		processor := pkg.NewDiscProcessor()
		disc, err := processor.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load disc image: %w", err)
		}

		if err := processor.ExportReport(disc, args[1], withSectors); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		fmt.Printf("Report saved to: %s\n", args[1])
		return nil
	},
}

// init initializes the disc command with its subcommands and flags.
func init() {
	rootCmd.AddCommand(discCmd)
	discCmd.AddCommand(discInfoCmd)
	discCmd.AddCommand(discSectorsCmd)
	discCmd.AddCommand(discReportCmd)

	addSelectionFlags(discSectorsCmd.Flags())
	discSectorsCmd.Flags().VarP(&sectorType, "type", "t", "Sector category: all, empty, data, audio, video")

	discReportCmd.Flags().Bool("sectors", false, "Include one entry per sector")
}

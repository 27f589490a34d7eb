// Package cmd provides command-line interface for CD-i color tables.
// This file contains commands for dumping palettes as swatch images.
package cmd

import (
	"fmt"

	"github.com/hansbonini/cditools/pkg"
	"github.com/spf13/cobra"
)

// paletteCmd represents the parent command for all palette operations.
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Extract color tables from CD-i disc images",
	Long: `Extract color tables from CD-i disc images.

Commands:
  dump      Render a palette as a PNG swatch

Examples:
  cditools palette dump -s 1120 --banks 2 game.bin palette.png`,
}

// paletteDumpCmd renders the palette stored in one sector payload.
var paletteDumpCmd = &cobra.Command{
	Use:   "dump [input_file] [output_file]",
	Short: "Render a palette as a PNG swatch",
	Long: `Render the color table stored in a sector payload as a 256x256 PNG
swatch of 8x8 squares.

Flags:
  -s, --sector    Sector holding the palette
  -o, --offset    Byte offset of the palette inside the payload
  -l, --length    Number of payload bytes to read (0 reads to the end)
      --format    banks (4-byte bank header, 64 colors per bank), indexed or rgb
      --banks     Number of CLUT banks to read (0 derives it from the length)

Example:
  cditools palette dump -s 1120 --banks 2 game.bin palette.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := args[1]

		spec, err := paletteSpecFromFlags(cmd)
		if err != nil {
			return err
		}

		disc, err := pkg.NewDiscProcessor().Load(inputFile)
		if err != nil {
			return fmt.Errorf("failed to load disc image: %w", err)
		}

		if err := pkg.NewPaletteProcessor().Dump(disc, spec, outputFile); err != nil {
			return fmt.Errorf("failed to dump palette: %w", err)
		}

		fmt.Printf("Palette saved to: %s\n", outputFile)
		return nil
	},
}

func paletteSpecFromFlags(cmd *cobra.Command) (pkg.PaletteSpec, error) {
	var spec pkg.PaletteSpec
	var err error

	flags := cmd.Flags()
	if spec.Sector, err = flags.GetInt("sector"); err != nil {
		return spec, fmt.Errorf("error getting sector flag: %w", err)
	}
	if spec.Offset, err = flags.GetInt("offset"); err != nil {
		return spec, fmt.Errorf("error getting offset flag: %w", err)
	}
	if spec.Length, err = flags.GetInt("length"); err != nil {
		return spec, fmt.Errorf("error getting length flag: %w", err)
	}
	if spec.Format, err = flags.GetString("format"); err != nil {
		return spec, fmt.Errorf("error getting format flag: %w", err)
	}
	if spec.Banks, err = flags.GetInt("banks"); err != nil {
		return spec, fmt.Errorf("error getting banks flag: %w", err)
	}
	return spec, nil
}

// init initializes the palette command with its subcommands and flags.
func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.AddCommand(paletteDumpCmd)

	paletteDumpCmd.Flags().IntP("sector", "s", 0, "Sector holding the palette")
	paletteDumpCmd.Flags().IntP("offset", "o", 0, "Byte offset of the palette inside the payload")
	paletteDumpCmd.Flags().IntP("length", "l", 0, "Number of payload bytes to read (0 reads to the end)")
	paletteDumpCmd.Flags().String("format", pkg.PaletteFormatBanks, "Palette format: banks, indexed, rgb")
	paletteDumpCmd.Flags().Int("banks", 0, "Number of CLUT banks (0 derives it from the length)")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

func newExtractCmd() *cobra.Command {
	var layout string
	var heightsFile string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract metadata from OCR text",
		Long: `Reads OCR text from a file, or stdin when no file is given, and prints
the extracted metadata as JSON.

Line heights from an OCR engine can be supplied as a JSON file of the form
{"lineHeights": [..], "maxHeight": 0, "largestTextIndices": [..]}.`,
		Example: `  # Extract from a text file
  bookmeta extract cover.txt

  # Extract from stdin as an author-first cover
  cat cover.txt | bookmeta extract --layout author-first

  # Use line heights to assemble the title
  bookmeta extract cover.txt --heights cover.heights.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := cm.Get()

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			in := extraction.Input{Text: text, Layout: layout}
			if in.Layout == "" {
				in.Layout = cfg.Extraction.DefaultLayout
			}
			if heightsFile != "" {
				meta, err := readMetadata(heightsFile)
				if err != nil {
					return err
				}
				in.OCR = meta
			}

			result := extraction.New(cfg.ToExtractionConfig()).Extract(in)
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&layout, "layout", "l", "", "Cover layout (standard, author-first, title-only, full-info)")
	cmd.Flags().StringVar(&heightsFile, "heights", "", "JSON file with OCR line heights")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func readMetadata(path string) (*extraction.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read heights file: %w", err)
	}
	var meta extraction.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse heights file: %w", err)
	}
	return &meta, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

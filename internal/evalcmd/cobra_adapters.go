package evalcmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
	"github.com/spf13/cobra"
)

// EngineFactory builds the extraction engine from the active configuration.
type EngineFactory func() (*extraction.Engine, error)

const datasetHint = "Please clone the dataset first:\n  git clone https://huggingface.co/datasets/instdin/institutional-books-1.0"

func checkDataset(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("dataset file not found: %s\n\n%s", path, datasetHint)
	}
	return nil
}

// NewIBCmd creates the ib command for evaluating with Institutional Books dataset
func NewIBCmd(newEngine EngineFactory) *cobra.Command {
	var opts ibOptions

	cmd := &cobra.Command{
		Use:   "ib",
		Short: "Evaluate extraction against the Institutional Books 1.0 dataset",
		Long: `Evaluate title-page extraction using the Institutional Books 1.0 dataset from HuggingFace.

Each record's title-page OCR text is run through the extraction heuristics and the
title, author, year and ISBN are compared against the catalog metadata using
normalized Levenshtein similarity.

Dataset: https://huggingface.co/datasets/instdin/institutional-books-1.0`,
		Example: `  # Evaluate 10 records with the standard layout
  bookmeta eval ib --sample 10

  # Evaluate 1000 records as title-only covers with 8 workers
  bookmeta eval ib --sample 1000 --layout title-only --concurrency 8

  # Evaluate the full file
  bookmeta eval ib --sample -1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDataset(opts.datasetPath); err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			return executeIB(cmd.Context(), engine, opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetPath, "dataset", "./institutional-books-1.0/data/train-00000-of-09831.parquet", "Path to Institutional Books parquet or jsonl file")
	cmd.Flags().StringVar(&opts.outputJSON, "output-json", "eval_results.json", "Path to output JSON results file")
	cmd.Flags().StringVar(&opts.outputReport, "output-report", "eval_report.txt", "Path to output detailed report file")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "evals", "Directory for timestamped YAML results")
	cmd.Flags().IntVar(&opts.sampleSize, "sample", 10, "Number of records to evaluate (-1 for all)")
	cmd.Flags().StringVar(&opts.layout, "layout", "standard", "Layout to assume (standard, author-first, title-only, full-info)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "Records evaluated in parallel")

	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd(newEngine EngineFactory) *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect dataset records next to what extraction makes of them",
		Long: `Inspect records from a parquet or jsonl dataset file.

Shows the catalog metadata, the selected title page OCR text, and the
extraction result for each record.`,
		Example: `  # Inspect first 5 records interactively
  bookmeta eval inspect --dataset ./data.parquet --limit 5 --interactive

  # Show only extraction results
  bookmeta eval inspect --dataset ./data.parquet --ocr=false --metadata=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDataset(opts.datasetPath); err != nil {
				return err
			}
			engine, err := newEngine()
			if err != nil {
				return err
			}
			return executeInspect(cmd.Context(), engine, cmd.OutOrStdout(), cmd.InOrStdin(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetPath, "dataset", "", "Path to parquet or jsonl dataset file (required)")
	cmd.Flags().IntVar(&opts.limit, "limit", 10, "Number of records to inspect (0 for all)")
	cmd.Flags().StringVar(&opts.layout, "layout", "standard", "Layout to assume")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "Pause after each record (press Enter to continue)")
	cmd.Flags().BoolVar(&opts.showOCR, "ocr", true, "Show title page OCR text")
	cmd.Flags().BoolVar(&opts.showMetadata, "metadata", true, "Show catalog metadata (title, author, date, ISBN)")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

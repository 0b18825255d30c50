package evalcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/bookmeta/internal/eval/dataset"
	"github.com/lehigh-university-libraries/bookmeta/internal/eval/metadata"
	"github.com/lehigh-university-libraries/bookmeta/internal/eval/metrics"
	resultsutil "github.com/lehigh-university-libraries/bookmeta/internal/eval/results"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

// ibOptions collects the flags of the ib command.
type ibOptions struct {
	datasetPath  string
	outputJSON   string
	outputReport string
	outputDir    string
	sampleSize   int
	layout       string
	concurrency  int
}

func executeIB(ctx context.Context, engine *extraction.Engine, opts ibOptions) error {
	slog.Info("Starting bookmeta evaluation",
		"dataset", opts.datasetPath,
		"sample_size", opts.sampleSize,
		"layout", opts.layout,
		"concurrency", opts.concurrency)

	loader := dataset.NewLoader(opts.datasetPath)
	records, err := loader.LoadSample(opts.sampleSize)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.Info("Dataset loaded", "records", len(records))

	results, err := evaluateRecords(ctx, engine, records, opts.layout, opts.concurrency)
	if err != nil {
		return err
	}

	slog.Info("Aggregating results")
	aggregated := metrics.AggregateEvaluationResults(results, extraction.ParseLayout(opts.layout).String())
	aggregated.PrintSummary(os.Stdout)

	slog.Info("Saving results", "json", opts.outputJSON, "report", opts.outputReport)

	if err := aggregated.SaveToJSON(opts.outputJSON); err != nil {
		slog.Warn("Failed to save JSON results", "err", err)
	} else {
		fmt.Printf("\nResults saved to: %s\n", opts.outputJSON)
	}

	if err := aggregated.SaveDetailedReport(opts.outputReport); err != nil {
		slog.Warn("Failed to save detailed report", "err", err)
	} else {
		fmt.Printf("Detailed report saved to: %s\n", opts.outputReport)
	}

	cfg := engine.Config()
	path, err := resultsutil.SaveToYAML(opts.outputDir, resultsutil.EvalConfig{
		Layout:         aggregated.Layout,
		HeightRatio:    cfg.HeightRatio,
		NoiseTokens:    cfg.NoiseTokens,
		AuthorMinWords: cfg.AuthorMinWords,
		AuthorMaxWords: cfg.AuthorMaxWords,
		DatasetPath:    opts.datasetPath,
		SampleSize:     opts.sampleSize,
	}, aggregated.Results)
	if err != nil {
		slog.Warn("Failed to save YAML results", "err", err)
	} else {
		fmt.Printf("Evaluation results saved to: %s\n", path)
	}

	slog.Info("Evaluation complete")
	return nil
}

// evaluateRecords runs extraction over records with at most concurrency
// workers. Results keep the order of records.
func evaluateRecords(ctx context.Context, engine *extraction.Engine, records []dataset.InstitutionalBooksRecord, layout string, concurrency int) ([]metrics.EvaluationResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]metrics.EvaluationResult, len(records))
	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := range records {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case semaphore <- struct{}{}: // Acquire
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release

			results[idx] = evaluateRecord(engine, records[idx], layout)
			slog.Debug("Processed record", "barcode", records[idx].BarcodeSource, "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
		}(i)
	}

	wg.Wait()
	return results, nil
}

// evaluateRecord evaluates a single dataset record
func evaluateRecord(engine *extraction.Engine, record dataset.InstitutionalBooksRecord, layout string) metrics.EvaluationResult {
	startTime := time.Now()

	result := metrics.EvaluationResult{
		Barcode: record.BarcodeSource,
		Title:   record.TitleSource,
		Author:  record.AuthorSource,
	}

	titlePageText := record.TitlePage()
	if titlePageText == "" {
		result.Error = "No OCR text available for title page"
		result.ProcessingTime = time.Since(startTime)
		return result
	}
	result.InputText = titlePageText

	result.Extracted = engine.Extract(extraction.Input{Text: titlePageText, Layout: layout})
	result.Comparison = metadata.CompareResult(record, result.Extracted)
	result.ProcessingTime = time.Since(startTime)

	slog.Debug("Comparison complete",
		"barcode", record.BarcodeSource,
		"overall_score", result.Comparison.OverallScore,
		"levenshtein_total", result.Comparison.LevenshteinTotal,
		"fields_matched", result.Comparison.FieldsMatched,
		"fields_missing", result.Comparison.FieldsMissing)

	return result
}

package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/bookmeta/internal/eval/metadata"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

// EvaluationResult represents the results for a single book evaluation
type EvaluationResult struct {
	Barcode        string                       `json:"barcode"`
	Title          string                       `json:"title"`
	Author         string                       `json:"author"`
	InputText      string                       `json:"input_text,omitempty"`
	Extracted      extraction.Result            `json:"extracted"`
	Comparison     *metadata.MetadataComparison `json:"comparison,omitempty"`
	ProcessingTime time.Duration                `json:"processing_time"`
	Error          string                       `json:"error,omitempty"` // If extraction could not run
}

// AggregateResults represents aggregated evaluation metrics
type AggregateResults struct {
	TotalRecords int `json:"total_records"`
	SuccessCount int `json:"success_count"`
	FailureCount int `json:"failure_count"`

	// Field-level statistics keyed by metadata.Fields
	Fields map[string]*FieldStats `json:"fields"`

	// Overall
	OverallAccuracy float64 `json:"overall_accuracy"`

	// Timing
	AverageProcessingTime time.Duration `json:"average_processing_time"`
	TotalProcessingTime   time.Duration `json:"total_processing_time"`

	// Detailed results
	Results []EvaluationResult `json:"results"`

	// Metadata
	EvaluationDate time.Time `json:"evaluation_date"`
	Layout         string    `json:"layout"`
	SampleSize     int       `json:"sample_size"`
}

// FieldStats contains statistics for one compared field. Scores only
// cover records that carry a reference value.
type FieldStats struct {
	ExactMatches  int       `json:"exact_matches"`
	FuzzyMatches  int       `json:"fuzzy_matches"`
	NoMatches     int       `json:"no_matches"`
	MissingFields int       `json:"missing_fields"`
	NoReference   int       `json:"no_reference"`
	AverageScore  float64   `json:"average_score"`
	Scores        []float64 `json:"-"`
}

// AggregateEvaluationResults aggregates multiple evaluation results
func AggregateEvaluationResults(results []EvaluationResult, layout string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Fields:         make(map[string]*FieldStats, len(metadata.Fields)),
		Results:        results,
		EvaluationDate: time.Now(),
		Layout:         layout,
		SampleSize:     len(results),
	}
	for _, name := range metadata.Fields {
		agg.Fields[name] = &FieldStats{Scores: []float64{}}
	}

	totalOverallScore := 0.0
	var totalDuration time.Duration
	var successDuration time.Duration

	for _, result := range results {
		totalDuration += result.ProcessingTime

		if result.Error != "" {
			agg.FailureCount++
			continue
		}

		agg.SuccessCount++
		successDuration += result.ProcessingTime

		if result.Comparison == nil {
			continue
		}

		for _, name := range metadata.Fields {
			aggregateFieldStats(agg.Fields[name], result.Comparison.Fields[name])
		}
		totalOverallScore += result.Comparison.OverallScore
	}

	// Calculate averages
	if agg.SuccessCount > 0 {
		for _, stats := range agg.Fields {
			stats.AverageScore = calculateAverage(stats.Scores)
		}
		agg.OverallAccuracy = totalOverallScore / float64(agg.SuccessCount)
		agg.AverageProcessingTime = successDuration / time.Duration(agg.SuccessCount)
	}

	agg.TotalProcessingTime = totalDuration

	return agg
}

// aggregateFieldStats updates field statistics
func aggregateFieldStats(stats *FieldStats, comp metadata.FieldComparison) {
	switch comp.Match {
	case "no_reference", "both_empty", "":
		stats.NoReference++
		return
	case "exact":
		stats.ExactMatches++
	case "fuzzy_high", "fuzzy_medium", "fuzzy_low":
		stats.FuzzyMatches++
	case "no_match":
		stats.NoMatches++
	case "missing":
		stats.MissingFields++
	}
	stats.Scores = append(stats.Scores, comp.Score)
}

// calculateAverage calculates the average of a slice of scores
func calculateAverage(scores []float64) float64 {
	if len(scores) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, score := range scores {
		sum += score
	}

	return sum / float64(len(scores))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// PrintSummary writes a human-readable summary of the evaluation
func (a *AggregateResults) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "BOOKMETA EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Evaluation Date: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Layout: %s\n", a.Layout)
	fmt.Fprintf(w, "Sample Size: %d records\n", a.SampleSize)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROCESSING STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Total Records: %d\n", a.TotalRecords)
	fmt.Fprintf(w, "Successful: %d (%.1f%%)\n", a.SuccessCount, percent(a.SuccessCount, a.TotalRecords))
	fmt.Fprintf(w, "Failed: %d (%.1f%%)\n", a.FailureCount, percent(a.FailureCount, a.TotalRecords))
	fmt.Fprintf(w, "Average Processing Time: %s\n", a.AverageProcessingTime)
	fmt.Fprintf(w, "Total Processing Time: %s\n", a.TotalProcessingTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FIELD-LEVEL ACCURACY")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, name := range metadata.Fields {
		printFieldStats(w, name, a.Fields[name])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERALL SCORE")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Overall Accuracy: %.2f%% (%.3f)\n", a.OverallAccuracy*100, a.OverallAccuracy)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// printFieldStats prints statistics for a single field
func printFieldStats(w io.Writer, fieldName string, stats *FieldStats) {
	fmt.Fprintf(w, "\n%s:\n", strings.ToUpper(fieldName[:1])+fieldName[1:])
	fmt.Fprintf(w, "  Average Score: %.2f%% (%.3f)\n", stats.AverageScore*100, stats.AverageScore)
	fmt.Fprintf(w, "  Exact Matches: %d\n", stats.ExactMatches)
	fmt.Fprintf(w, "  Fuzzy Matches: %d\n", stats.FuzzyMatches)
	fmt.Fprintf(w, "  No Matches: %d\n", stats.NoMatches)
	fmt.Fprintf(w, "  Missing Fields: %d\n", stats.MissingFields)
	fmt.Fprintf(w, "  No Reference: %d\n", stats.NoReference)
}

// SaveToJSON saves the aggregate results to a JSON file
func (a *AggregateResults) SaveToJSON(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(a); err != nil {
		return fmt.Errorf("failed to encode results to JSON: %w", err)
	}

	return nil
}

// SaveDetailedReport saves a detailed report with individual results
func (a *AggregateResults) SaveDetailedReport(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "BOOKMETA EVALUATION DETAILED REPORT\n")
	fmt.Fprintf(file, "Generated: %s\n", a.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Layout: %s\n", a.Layout)
	separator := strings.Repeat("=", 80)
	fmt.Fprintf(file, "%s\n\n", separator)

	dash := strings.Repeat("-", 80)
	for i, result := range a.Results {
		fmt.Fprintf(file, "RECORD %d: %s\n", i+1, result.Barcode)
		fmt.Fprintf(file, "%s\n", dash)
		fmt.Fprintf(file, "Title: %s\n", result.Title)
		fmt.Fprintf(file, "Author: %s\n", result.Author)
		fmt.Fprintf(file, "Processing Time: %s\n", result.ProcessingTime)

		if result.Error != "" {
			fmt.Fprintf(file, "ERROR: %s\n", result.Error)
		} else if result.Comparison != nil {
			fmt.Fprintf(file, "\nField Comparisons (layout %s):\n", result.Extracted.Layout)
			for _, name := range metadata.Fields {
				comp := result.Comparison.Fields[name]
				fmt.Fprintf(file, "  %-7s %.2f (%s) - Expected: %s, Actual: %s\n",
					name+":", comp.Score, comp.Match, comp.Expected, comp.Actual)
			}
			fmt.Fprintf(file, "\nOverall Score: %.2f%%\n", result.Comparison.OverallScore*100)
		}

		fmt.Fprintf(file, "\n%s\n\n", separator)
	}

	return nil
}

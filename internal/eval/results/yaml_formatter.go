package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/bookmeta/internal/eval/metrics"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Layout         string   `yaml:"layout"`
	HeightRatio    float64  `yaml:"heightratio"`
	NoiseTokens    []string `yaml:"noisetokens"`
	AuthorMinWords int      `yaml:"authorminwords"`
	AuthorMaxWords int      `yaml:"authormaxwords"`
	DatasetPath    string   `yaml:"datasetpath"`
	SampleSize     int      `yaml:"samplesize"`
	Timestamp      string   `yaml:"timestamp"`
}

// EvalResult represents a single evaluation result
type EvalResult struct {
	Identifier       string             `yaml:"identifier"`
	Title            string             `yaml:"title"`
	Author           string             `yaml:"author,omitempty"`
	Extracted        extraction.Result  `yaml:"extracted"`
	OverallScore     float64            `yaml:"overallscore"`
	LevenshteinTotal int                `yaml:"levenshteintotal"`
	FieldsMatched    int                `yaml:"fieldsmatched"`
	FieldsMissing    int                `yaml:"fieldsmissing"`
	FieldsIncorrect  int                `yaml:"fieldsincorrect"`
	FieldScores      map[string]float64 `yaml:"fieldscores"`
}

// EvalSpec represents the complete evaluation specification
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML writes evaluation results to <dir>/<layout>-<timestamp>.yaml
// and returns the file path. Failed evaluations are skipped.
func SaveToYAML(dir string, config EvalConfig, results []metrics.EvaluationResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	if config.Timestamp == "" {
		config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	spec := EvalSpec{
		Config:  config,
		Results: make([]EvalResult, 0, len(results)),
	}

	for _, r := range results {
		if r.Error != "" {
			continue
		}

		evalResult := EvalResult{
			Identifier: r.Barcode,
			Title:      r.Title,
			Author:     r.Author,
			Extracted:  r.Extracted,
		}

		if r.Comparison != nil {
			evalResult.OverallScore = r.Comparison.OverallScore
			evalResult.LevenshteinTotal = r.Comparison.LevenshteinTotal
			evalResult.FieldsMatched = r.Comparison.FieldsMatched
			evalResult.FieldsMissing = r.Comparison.FieldsMissing
			evalResult.FieldsIncorrect = r.Comparison.FieldsIncorrect

			evalResult.FieldScores = make(map[string]float64, len(r.Comparison.Fields))
			for name, comp := range r.Comparison.Fields {
				evalResult.FieldScores[name] = comp.Score
			}
		}

		spec.Results = append(spec.Results, evalResult)
	}

	layout := config.Layout
	if layout == "" {
		layout = "standard"
	}
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", layout, config.Timestamp))

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}

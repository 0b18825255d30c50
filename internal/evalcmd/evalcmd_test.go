package evalcmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/bookmeta/internal/eval/dataset"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

const testJSONL = `{"barcode_src":"1","title_src":"Chiếc lư đồng mắt cua","author_src":"Nguyễn Tuân","date1_src":"2015","text_by_page_src":["CHIẾC LƯ ĐỒNG MẮT CUA\nNguyễn Tuân\nNXB Kim Đồng\n2015"]}
{"barcode_src":"2","title_src":"Empty","text_by_page_src":[]}
{"barcode_src":"3","title_src":"Sapiens","author_src":"Yuval Noah Harari","text_by_page_src":["SAPIENS\nTác giả: Yuval Noah Harari"]}
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ib.jsonl")
	if err := os.WriteFile(path, []byte(testJSONL), 0644); err != nil {
		t.Fatalf("Failed to write dataset: %v", err)
	}
	return path
}

func TestEvaluateRecords(t *testing.T) {
	records, err := dataset.NewLoader(writeDataset(t)).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	engine := extraction.New(extraction.DefaultConfig())
	for _, concurrency := range []int{0, 1, 3} {
		results, err := evaluateRecords(context.Background(), engine, records, "standard", concurrency)
		if err != nil {
			t.Fatalf("evaluateRecords failed: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("Expected 3 results, got %d", len(results))
		}
		for i, want := range []string{"1", "2", "3"} {
			if results[i].Barcode != want {
				t.Errorf("Expected result %d to be barcode %s, got %s", i, want, results[i].Barcode)
			}
		}

		first := results[0]
		if first.Comparison == nil || first.Comparison.FieldsMatched != 3 {
			t.Errorf("Expected title, author and year to match for record 1, got %+v", first.Comparison)
		}
		if results[1].Error == "" {
			t.Error("Expected error for record without OCR text")
		}
		if results[2].Extracted.Author != "Yuval Noah Harari" {
			t.Errorf("Expected keyword author, got %q", results[2].Extracted.Author)
		}
	}
}

func TestEvaluateRecordsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := make([]dataset.InstitutionalBooksRecord, 5)
	if _, err := evaluateRecords(ctx, extraction.New(extraction.DefaultConfig()), records, "", 1); err == nil {
		t.Error("Expected error for canceled context")
	}
}

func TestExecuteIBWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	opts := ibOptions{
		datasetPath:  writeDataset(t),
		outputJSON:   filepath.Join(dir, "results.json"),
		outputReport: filepath.Join(dir, "report.txt"),
		outputDir:    filepath.Join(dir, "evals"),
		sampleSize:   -1,
		layout:       "standard",
		concurrency:  2,
	}

	if err := executeIB(context.Background(), extraction.New(extraction.DefaultConfig()), opts); err != nil {
		t.Fatalf("executeIB failed: %v", err)
	}

	for _, path := range []string{opts.outputJSON, opts.outputReport} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
	entries, err := os.ReadDir(opts.outputDir)
	if err != nil || len(entries) != 1 {
		t.Errorf("Expected one YAML file in %s, got %v (%v)", opts.outputDir, entries, err)
	}
}

func TestExecuteInspect(t *testing.T) {
	var out bytes.Buffer
	opts := inspectOptions{
		datasetPath:  writeDataset(t),
		limit:        1,
		layout:       "standard",
		showOCR:      true,
		showMetadata: true,
	}

	if err := executeInspect(context.Background(), extraction.New(extraction.DefaultConfig()), &out, strings.NewReader(""), opts); err != nil {
		t.Fatalf("executeInspect failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Loaded 1 records", "RECORD 1/1", "Barcode:        1", "EXTRACTED (standard)", "Title:     CHIẾC LƯ ĐỒNG MẮT CUA"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestNewIBCmdMissingDataset(t *testing.T) {
	called := false
	cmd := NewIBCmd(func() (*extraction.Engine, error) {
		called = true
		return extraction.New(extraction.DefaultConfig()), nil
	})
	cmd.SetArgs([]string{"--dataset", filepath.Join(t.TempDir(), "missing.parquet")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "dataset file not found") {
		t.Errorf("Expected dataset not found error, got %v", err)
	}
	if called {
		t.Error("Expected engine not to be built when the dataset is missing")
	}
}

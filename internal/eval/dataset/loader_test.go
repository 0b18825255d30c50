package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestTitlePage(t *testing.T) {
	tests := []struct {
		name     string
		record   InstitutionalBooksRecord
		expected string
	}{
		{
			name: "uses gen text when available",
			record: InstitutionalBooksRecord{
				TextByPageGen:    []string{"TITLE\nAuthor gen"},
				TextByPageSource: []string{"TITLE\nAuthor src"},
			},
			expected: "TITLE\nAuthor gen",
		},
		{
			name: "falls back to source text",
			record: InstitutionalBooksRecord{
				TextByPageSource: []string{"TITLE\nAuthor src"},
			},
			expected: "TITLE\nAuthor src",
		},
		{
			name: "skips blank and single-line pages",
			record: InstitutionalBooksRecord{
				TextByPageSource: []string{"", "  \n ", "Harvard Library", "THE ODYSSEY\nHomer\n1900"},
			},
			expected: "THE ODYSSEY\nHomer\n1900",
		},
		{
			name: "falls back to first non-empty page",
			record: InstitutionalBooksRecord{
				TextByPageSource: []string{"", "Harvard Library", "X"},
			},
			expected: "Harvard Library",
		},
		{
			name: "does not search past the first pages",
			record: InstitutionalBooksRecord{
				TextByPageSource: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "TITLE\nAuthor"},
			},
			expected: "1",
		},
		{
			name:     "returns empty for no pages",
			record:   InstitutionalBooksRecord{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.record.TitlePage()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestRecordAccessors(t *testing.T) {
	r := InstitutionalBooksRecord{
		Date2Source:       "1936",
		IdentifiersSource: Identifiers{ISBN: []string{"978-604-1-00000-1", "604-1-00000-X"}},
	}
	if got := r.GetPrimaryDate(); got != "1936" {
		t.Errorf("Expected date2 fallback 1936, got %q", got)
	}
	r.Date1Source = "1930"
	if got := r.GetPrimaryDate(); got != "1930" {
		t.Errorf("Expected date1 1930, got %q", got)
	}
	if got := r.GetISBN(); got != "978-604-1-00000-1" {
		t.Errorf("Expected first ISBN, got %q", got)
	}

	var empty InstitutionalBooksRecord
	if empty.GetPrimaryDate() != "" || empty.GetISBN() != "" {
		t.Errorf("Expected empty accessors, got %q %q", empty.GetPrimaryDate(), empty.GetISBN())
	}
}

const vietnameseJSONL = `{"barcode_src":"VN001","title_src":"Số đỏ","author_src":"Vũ Trọng Phụng","date1_src":"1936"}
{"barcode_src":"VN002","title_src":"Tắt đèn","author_src":"Ngô Tất Tố","date1_src":"1939"}
{"barcode_src":"VN003","title_src":"Chí Phèo","author_src":"Nam Cao","date1_src":"1941"}
`

func TestLoadSample(t *testing.T) {
	jsonlPath := filepath.Join(t.TempDir(), "books.jsonl")
	if err := os.WriteFile(jsonlPath, []byte(vietnameseJSONL), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		limit    int
		barcodes []string
		wantErr  bool
	}{
		{name: "limit", path: jsonlPath, limit: 2, barcodes: []string{"VN001", "VN002"}},
		{name: "limit above size", path: jsonlPath, limit: 10, barcodes: []string{"VN001", "VN002", "VN003"}},
		{name: "zero loads all", path: jsonlPath, limit: 0, barcodes: []string{"VN001", "VN002", "VN003"}},
		{name: "unsupported format", path: "books.csv", limit: 10, wantErr: true},
		{name: "missing file", path: "/nonexistent/books.jsonl", limit: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := NewLoader(tt.path).LoadSample(tt.limit)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadSample failed: %v", err)
			}
			if len(records) != len(tt.barcodes) {
				t.Fatalf("Expected %d records, got %d", len(tt.barcodes), len(records))
			}
			for i, want := range tt.barcodes {
				if records[i].BarcodeSource != want {
					t.Errorf("Expected barcode %s at %d, got %s", want, i, records[i].BarcodeSource)
				}
			}
		})
	}
}

func TestLoadMatchesLoadSampleZero(t *testing.T) {
	jsonlPath := filepath.Join(t.TempDir(), "books.jsonl")
	if err := os.WriteFile(jsonlPath, []byte(vietnameseJSONL), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	records, err := NewLoader(jsonlPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 3 || records[2].AuthorSource != "Nam Cao" {
		t.Errorf("Expected 3 records ending with Nam Cao, got %+v", records)
	}
}

func TestLoadJSONLSkipsMalformedLines(t *testing.T) {
	jsonlPath := filepath.Join(t.TempDir(), "test.jsonl")
	testData := `{"barcode_src":"123"}
not json

{"barcode_src":"456"}
`
	if err := os.WriteFile(jsonlPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	records, err := NewLoader(jsonlPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 2 || records[1].BarcodeSource != "456" {
		t.Errorf("Expected records 123 and 456, got %+v", records)
	}
}

func TestLoadParquet(t *testing.T) {
	parquetPath := filepath.Join(t.TempDir(), "test.parquet")
	rows := []InstitutionalBooksRecord{
		{BarcodeSource: "1", TitleSource: "Truyện Kiều", AuthorSource: "Nguyễn Du", TextByPageSource: []string{"TRUYỆN KIỀU\nNguyễn Du"}},
		{BarcodeSource: "2", TitleSource: "Số Đỏ", AuthorSource: "Vũ Trọng Phụng", IdentifiersSource: Identifiers{ISBN: []string{"9786049535826"}}},
		{BarcodeSource: "3", TitleSource: "Tắt Đèn", AuthorSource: "Ngô Tất Tố"},
	}
	if err := parquet.WriteFile(parquetPath, rows); err != nil {
		t.Fatalf("Failed to write parquet file: %v", err)
	}

	loader := NewLoader(parquetPath)

	records, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].TitleSource != "Truyện Kiều" {
		t.Errorf("Expected title 'Truyện Kiều', got %s", records[0].TitleSource)
	}
	if records[1].GetISBN() != "9786049535826" {
		t.Errorf("Expected ISBN 9786049535826, got %s", records[1].GetISBN())
	}

	sample, err := loader.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(sample) != 2 {
		t.Errorf("Expected 2 records, got %d", len(sample))
	}
}

func TestLoadWithFilter(t *testing.T) {
	jsonlPath := filepath.Join(t.TempDir(), "test.jsonl")
	testData := `{"barcode_src":"1","language_src":"vie"}
{"barcode_src":"2","language_src":"eng"}
{"barcode_src":"3","language_src":"vie"}
`
	if err := os.WriteFile(jsonlPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	records, err := NewLoader(jsonlPath).LoadWithFilter(func(r *InstitutionalBooksRecord) bool {
		return r.LanguageSource == "vie"
	})
	if err != nil {
		t.Fatalf("LoadWithFilter failed: %v", err)
	}
	if len(records) != 2 || records[0].BarcodeSource != "1" || records[1].BarcodeSource != "3" {
		t.Errorf("Expected records 1 and 3, got %+v", records)
	}
}

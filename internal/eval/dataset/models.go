package dataset

import "strings"

// InstitutionalBooksRecord represents a record from the Institutional Books 1.0 dataset
// Dataset: https://huggingface.co/datasets/instdin/institutional-books-1.0
type InstitutionalBooksRecord struct {
	// Core identifiers
	BarcodeSource string `json:"barcode_src" parquet:"barcode_src"` // Primary key

	// Bibliographic metadata (ground truth for extraction)
	TitleSource     string `json:"title_src" parquet:"title_src"`
	AuthorSource    string `json:"author_src" parquet:"author_src"`
	Date1Source     string `json:"date1_src" parquet:"date1_src"`
	Date2Source     string `json:"date2_src" parquet:"date2_src"`
	DateTypesSource string `json:"date_types_src" parquet:"date_types_src"`

	// Additional metadata for evaluation
	LanguageSource       string `json:"language_src" parquet:"language_src"`                 // ISO 639-3 code
	TopicOrSubjectSource string `json:"topic_or_subject_src" parquet:"topic_or_subject_src"` // Topic/subject info
	GenreOrFormSource    string `json:"genre_or_form_src" parquet:"genre_or_form_src"`
	GeneralNoteSource    string `json:"general_note_src" parquet:"general_note_src"`

	// Identifiers for cross-referencing
	IdentifiersSource Identifiers `json:"identifiers_src" parquet:"identifiers_src"`

	// HathiTrust data for accessing the full book
	HathitrustDataExt HathitrustData `json:"hathitrust_data_ext" parquet:"hathitrust_data_ext"`

	// OCR text, the input to extraction
	TextByPageSource []string `json:"text_by_page_src" parquet:"text_by_page_src,list"` // Original OCR text
	TextByPageGen    []string `json:"text_by_page_gen" parquet:"text_by_page_gen,list"` // Post-processed OCR text

	// Statistics
	PageCountSource int `json:"page_count_src" parquet:"page_count_src"`
	TokenCountGen   int `json:"token_count_o200k_base_gen" parquet:"token_count_o200k_base_gen"`
}

// Identifiers contains bibliographic identifiers
type Identifiers struct {
	LCCN []string `json:"lccn" parquet:"lccn,list"`   // Library of Congress Control Numbers
	ISBN []string `json:"isbn" parquet:"isbn,list"`   // International Standard Book Numbers
	OCLC []string `json:"ocolc" parquet:"ocolc,list"` // OCLC Control Numbers
}

// HathitrustData contains rights and access information from HathiTrust
type HathitrustData struct {
	URL        string `json:"url" parquet:"url"`                 // Permalink to volume on HathiTrust
	RightsCode string `json:"rights_code" parquet:"rights_code"` // Rights determination code
	ReasonCode string `json:"reason_code" parquet:"reason_code"` // Rights determination reason
	LastCheck  string `json:"last_check" parquet:"last_check"`   // Date info was pulled
}

// TitlePageSearchDepth bounds how far into a book TitlePage looks.
const TitlePageSearchDepth = 10

// TitlePage returns the OCR text of the most likely title page: the first
// page within TitlePageSearchDepth that has between 2 and 30 non-empty lines.
// Otherwise it falls back to the first non-empty page.
func (r *InstitutionalBooksRecord) TitlePage() string {
	// Use post-processed text if available, otherwise use source
	pages := r.TextByPageGen
	if len(pages) == 0 {
		pages = r.TextByPageSource
	}

	fallback := ""
	for i := 0; i < len(pages) && i < TitlePageSearchDepth; i++ {
		n := countLines(pages[i])
		if n == 0 {
			continue
		}
		if fallback == "" {
			fallback = pages[i]
		}
		if n >= 2 && n <= 30 {
			return pages[i]
		}
	}
	return fallback
}

func countLines(page string) int {
	n := 0
	for _, line := range strings.Split(page, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// GetPrimaryDate returns the primary date for the publication
func (r *InstitutionalBooksRecord) GetPrimaryDate() string {
	if r.Date1Source != "" {
		return r.Date1Source
	}
	return r.Date2Source
}

// GetISBN returns the first ISBN if available
func (r *InstitutionalBooksRecord) GetISBN() string {
	if len(r.IdentifiersSource.ISBN) > 0 {
		return r.IdentifiersSource.ISBN[0]
	}
	return ""
}

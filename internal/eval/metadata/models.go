package metadata

// Field names compared by CompareResult, in report order.
var Fields = []string{"title", "author", "year", "isbn"}

// MetadataComparison represents field-by-field comparison of metadata
type MetadataComparison struct {
	Fields           map[string]FieldComparison `json:"fields" yaml:"fields"`
	OverallScore     float64                    `json:"overall_score" yaml:"overallscore"`
	FieldsMatched    int                        `json:"fields_matched" yaml:"fieldsmatched"`
	FieldsMissing    int                        `json:"fields_missing" yaml:"fieldsmissing"`
	FieldsIncorrect  int                        `json:"fields_incorrect" yaml:"fieldsincorrect"`
	LevenshteinTotal int                        `json:"levenshtein_total" yaml:"levenshteintotal"`
}

// FieldComparison represents comparison for a single metadata field
type FieldComparison struct {
	FieldName string  `json:"field_name" yaml:"fieldname"`
	Expected  string  `json:"expected" yaml:"expected"`
	Actual    string  `json:"actual" yaml:"actual"`
	Score     float64 `json:"score" yaml:"score"`       // 0.0 to 1.0
	Distance  int     `json:"distance" yaml:"distance"` // Levenshtein distance in runes
	Match     string  `json:"match" yaml:"match"`       // "exact", "fuzzy_high", "fuzzy_medium", "fuzzy_low", "no_match", "missing", "no_reference", "both_empty"
	Notes     string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

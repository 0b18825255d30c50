package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lehigh-university-libraries/bookmeta/internal/eval/dataset"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

var (
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	isbnNoise   = regexp.MustCompile(`[^0-9Xx]`)
	// Catalog dates carry brackets and question marks, e.g. "[1923?]"
	yearDigits = regexp.MustCompile(`\d{4}`)
)

// CompareResult scores an extraction result against a dataset record.
func CompareResult(reference dataset.InstitutionalBooksRecord, extracted extraction.Result) *MetadataComparison {
	pairs := map[string][2]string{
		"title":  {normalizeText(reference.TitleSource), normalizeText(extracted.Title)},
		"author": {normalizeText(reference.AuthorSource), normalizeText(extracted.Author)},
		"year":   {normalizeYear(reference.GetPrimaryDate()), normalizeYear(extracted.Year)},
		"isbn":   {normalizeISBN(reference.GetISBN()), normalizeISBN(extracted.ISBN)},
	}
	raw := map[string][2]string{
		"title":  {reference.TitleSource, extracted.Title},
		"author": {reference.AuthorSource, extracted.Author},
		"year":   {reference.GetPrimaryDate(), extracted.Year},
		"isbn":   {reference.GetISBN(), extracted.ISBN},
	}

	comparison := &MetadataComparison{
		Fields: make(map[string]FieldComparison, len(Fields)),
	}

	totalScore := 0.0
	for _, name := range Fields {
		comp := compareField(name, pairs[name][0], pairs[name][1])
		comp.Expected, comp.Actual = raw[name][0], raw[name][1]
		comparison.Fields[name] = comp

		totalScore += comp.Score
		comparison.LevenshteinTotal += comp.Distance
		switch {
		case comp.Score > 0.8:
			comparison.FieldsMatched++
		case comp.Match == "missing":
			comparison.FieldsMissing++
		case comp.Match == "no_reference", comp.Match == "both_empty":
		default:
			comparison.FieldsIncorrect++
		}
	}

	comparison.OverallScore = totalScore / float64(len(Fields))
	return comparison
}

// compareField compares two normalized values using Levenshtein distance
func compareField(fieldName, expNorm, actNorm string) FieldComparison {
	comp := FieldComparison{
		FieldName: fieldName,
	}

	// Handle empty fields
	if expNorm == "" && actNorm == "" {
		comp.Score = 0.5
		comp.Match = "both_empty"
		comp.Notes = "Both fields are empty"
		return comp
	}

	if expNorm == "" {
		comp.Distance = runeCount(actNorm)
		comp.Match = "no_reference"
		comp.Notes = "No reference value (ground truth missing)"
		return comp
	}

	if actNorm == "" {
		comp.Distance = runeCount(expNorm)
		comp.Match = "missing"
		comp.Notes = "Field missing from extracted metadata"
		return comp
	}

	if expNorm == actNorm {
		comp.Score = 1.0
		comp.Match = "exact"
		comp.Notes = "Exact match"
		return comp
	}

	distance := levenshteinDistance(expNorm, actNorm)
	comp.Distance = distance

	maxLen := max(runeCount(expNorm), runeCount(actNorm))
	similarity := 1.0 - (float64(distance) / float64(maxLen))
	comp.Score = similarity

	switch {
	case similarity > 0.9:
		comp.Match = "fuzzy_high"
	case similarity > 0.7:
		comp.Match = "fuzzy_medium"
	case similarity > 0.5:
		comp.Match = "fuzzy_low"
	default:
		comp.Match = "no_match"
	}
	comp.Notes = fmt.Sprintf("Similarity %.1f%%, Levenshtein: %d", similarity*100, distance)

	return comp
}

// normalizeText lowercases, composes diacritics and strips punctuation
func normalizeText(text string) string {
	text = norm.NFC.String(strings.ToLower(text))
	text = punctuation.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

func normalizeYear(date string) string {
	return yearDigits.FindString(date)
}

func normalizeISBN(isbn string) string {
	return strings.ToUpper(isbnNoise.ReplaceAllString(isbn, ""))
}

func runeCount(s string) int {
	return len([]rune(s))
}

// levenshteinDistance is the edit distance between two strings in runes
func levenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

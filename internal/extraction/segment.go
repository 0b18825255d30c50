package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Strategy records which step of the segmenter produced the lines.
type Strategy int

const (
	SplitNewline Strategy = iota
	SplitDelimiter
	SplitCapsBoundary
	SplitWhole
)

func (s Strategy) String() string {
	switch s {
	case SplitNewline:
		return "newline"
	case SplitDelimiter:
		return "delimiter"
	case SplitCapsBoundary:
		return "caps-boundary"
	default:
		return "whole"
	}
}

// Segmentation is the ordered, non-empty line sequence derived from raw OCR
// text.
type Segmentation struct {
	Lines []string
	// RawLineCount is the number of non-empty newline-delimited lines
	// before any re-segmentation.
	RawLineCount int
	Strategy     Strategy
}

var (
	delimiterPattern = regexp.MustCompile(`(?i)\s{2,}|\t+|\n|tác giả|author|nhà xuất bản|nxb|isbn`)
	capsRunPattern   = regexp.MustCompile(`\p{Lu}{2,}(?:[ \t]+\p{Lu}{2,})*`)
)

// Segment splits text into candidate lines. OCR engines often return a
// cover as one or two long lines; those are re-split on wide gaps and field
// keywords, then on ALL-CAPS runs, before giving up and keeping the blob.
func Segment(text string) Segmentation {
	text = norm.NFC.String(strings.ReplaceAll(text, "\r", ""))
	lines := splitNewlines(text)
	seg := Segmentation{Lines: lines, RawLineCount: len(lines), Strategy: SplitNewline}
	if len(lines) > 2 {
		return seg
	}

	if parts := splitOnDelimiters(text); len(parts) >= 3 {
		seg.Lines, seg.Strategy = parts, SplitDelimiter
		return seg
	}
	if parts, ok := splitOnCapsRuns(text); ok {
		seg.Lines, seg.Strategy = parts, SplitCapsBoundary
		return seg
	}

	seg.Strategy = SplitWhole
	seg.Lines = nil
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		seg.Lines = []string{trimmed}
	}
	return seg
}

func splitNewlines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func splitOnDelimiters(text string) []string {
	var parts []string
	for _, p := range delimiterPattern.Split(text, -1) {
		p = strings.TrimFunc(p, func(r rune) bool {
			return unicode.IsSpace(r) || unicode.IsPunct(r)
		})
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// splitOnCapsRuns cuts text at the start of every ALL-CAPS run. A run must
// begin a word and must not run into a lowercase letter.
func splitOnCapsRuns(text string) ([]string, bool) {
	var starts []int
	for _, loc := range capsRunPattern.FindAllStringIndex(text, -1) {
		if loc[0] > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
			if unicode.IsLetter(prev) {
				continue
			}
		}
		if loc[1] < len(text) {
			next, _ := utf8.DecodeRuneInString(text[loc[1]:])
			if unicode.IsLower(next) {
				continue
			}
		}
		starts = append(starts, loc[0])
	}
	if len(starts) < 2 {
		return nil, false
	}

	var parts []string
	for i, start := range starts {
		if i == 0 {
			start = 0
		}
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		parts = append(parts, splitNewlines(text[start:end])...)
	}
	return parts, true
}

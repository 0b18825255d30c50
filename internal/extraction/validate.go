package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PositionalLine returns the trimmed line at index, or "" when the line is
// out of range or looks like OCR noise rather than a field value.
func (e *Engine) PositionalLine(lines []string, index int) string {
	if index < 0 || index >= len(lines) {
		return ""
	}
	line := strings.TrimSpace(lines[index])
	n := runeLen(line)
	switch {
	case n < 2:
		return ""
	case !hasLatinLetter(line):
		return ""
	case e.isNoise(line):
		return ""
	case n < 5 && isAllCaps(line):
		return ""
	}
	return line
}

func (e *Engine) isNoise(line string) bool {
	upper := strings.ToUpper(line)
	for _, tok := range e.noise {
		if strings.HasPrefix(upper, tok) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func hasLatinLetter(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// isAllCaps reports whether s holds only uppercase letters and whitespace,
// with at least one letter. Vietnamese capitals such as Ư and Đ count.
func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
		case unicode.IsUpper(r):
			letters++
		default:
			return false
		}
	}
	return letters > 0
}

// isTitleCase reports whether s starts with an uppercase letter and
// contains at least one lowercase letter.
func isTitleCase(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(first) && hasLower(s)
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

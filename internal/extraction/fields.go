package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Rule is one candidate heuristic for a field. It reports false when it has
// nothing to offer so that the next rule gets a chance.
type Rule func(lines []string, text string) (string, bool)

// Rules is an ordered cascade of candidate heuristics.
type Rules []Rule

// Apply returns the value of the first rule that matches, or "".
func (rs Rules) Apply(lines []string, text string) string {
	for _, rule := range rs {
		if v, ok := rule(lines, text); ok {
			return v
		}
	}
	return ""
}

// Keywords must start a word. RE2 has no Unicode-aware \b, so the leading
// boundary is matched explicitly and excluded from the capture.
const wordStart = `(?:^|[^\p{L}\n])`

var (
	authorKeyword = regexp.MustCompile(`(?im)` + wordStart +
		`(?:tác giả|tac gia|author|by|của|viết bởi|sáng tác bởi|biên soạn)(?:\s*[:\-]\s*|[ \t]+)(.+)$`)
	authorLeadIn   = regexp.MustCompile(`(?i)^(?:bởi|by|của)\s+`)
	authorConjunct = regexp.MustCompile(`(?i)[,;]|\s+và\s+`)
	// Publisher or ISBN keywords running into an author capture on a
	// single-line blob.
	authorRunOn = regexp.MustCompile(`(?i)` + wordStart + `(?:nhà xuất bản|nha xuat ban|nxb|isbn)(?:[^\p{L}]|$)`)

	publisherKeyword = regexp.MustCompile(`(?i)nhà xuất bản|nha xuat ban|nxb|xuất bản`)
	publisherPrefix  = regexp.MustCompile(`(?i)^(?:nhà xuất bản|nha xuat ban|nxb|xuất bản)\s*[:.\-–]?\s*`)
	publisherSuffix  = regexp.MustCompile(`(?i)\s*(?:xuất bản|phát hành)\s*$`)
	publisherPattern = regexp.MustCompile(`(?i)(?:nhà xuất bản|nxb|xuất bản bởi|phát hành bởi)[ \t]*[:.\-–]?[ \t]*([^,;\n]+)`)

	yearKeyword = regexp.MustCompile(`(?i)(?:năm|year|xuất bản|published)[^\d\n]{0,12}(\d{4})\b`)
	yearBare    = regexp.MustCompile(`\b(\d{4})\b`)

	isbnKeyword13 = regexp.MustCompile(`(?i)isbn(?:-1[03])?[\s:\-]*((?:\d-?){12}\d)\b`)
	isbnKeyword10 = regexp.MustCompile(`(?i)isbn(?:-10)?[\s:\-]*((?:\d-?){9}[\dXx])\b`)
	isbnGrouped   = regexp.MustCompile(`\b\d{3}-\d{10}\b`)
	isbnBare      = regexp.MustCompile(`\b\d{13}\b`)

	titleStrip = []*regexp.Regexp{
		regexp.MustCompile(`(?im)` + wordStart + `(?:tác giả|tac gia|author|by|viết bởi|sáng tác bởi|biên soạn)(?:\s*[:\-]\s*|[ \t]+)[^\n]*`),
		regexp.MustCompile(`(?im)` + wordStart + `(?:nhà xuất bản|nha xuat ban|nxb)(?:\s*[:.\-]\s*|[ \t]+)[^\n]*`),
		regexp.MustCompile(`(?i)isbn[^\n]*`),
	}
)

// FindAuthor looks for a keyword-introduced author first, then for a single
// Title-Case line that is shaped like a personal name.
func (e *Engine) FindAuthor(lines []string, text string) string {
	return e.authorRules.Apply(lines, text)
}

func authorByKeyword(_ []string, text string) (string, bool) {
	for _, m := range authorKeyword.FindAllStringSubmatch(text, -1) {
		author := authorLeadIn.ReplaceAllString(strings.TrimSpace(m[1]), "")
		if loc := authorConjunct.FindStringIndex(author); loc != nil {
			author = author[:loc[0]]
		}
		if loc := authorRunOn.FindStringIndex(author); loc != nil {
			author = author[:loc[0]]
		}
		author = trimField(author)
		if n := runeLen(author); n > 2 && n < 100 {
			return author, true
		}
	}
	return "", false
}

func (e *Engine) authorByTitleCaseLine(lines []string, _ string) (string, bool) {
	for _, raw := range physicalLines(lines) {
		line := strings.TrimSpace(raw)
		if isAllCaps(line) || !isTitleCase(line) {
			continue
		}
		if publisherKeyword.MatchString(line) || strings.Contains(strings.ToLower(line), "isbn") {
			continue
		}
		words := len(strings.Fields(line))
		n := runeLen(line)
		if words >= e.cfg.AuthorMinWords && words <= e.cfg.AuthorMaxWords && n >= 10 && n <= 100 {
			return line, true
		}
	}
	return "", false
}

// FindPublisher prefers a line carrying a publisher keyword and falls back
// to a keyword pattern over the whole text.
func (e *Engine) FindPublisher(lines []string, text string) string {
	return e.publisherRules.Apply(lines, text)
}

func publisherByLine(lines []string, _ string) (string, bool) {
	for _, raw := range physicalLines(lines) {
		line := strings.TrimSpace(raw)
		if !publisherKeyword.MatchString(line) {
			continue
		}
		publisher := stripPublisherKeywords(line)
		// The keyword may sit mid-line when a cover was OCRed as one blob.
		if loc := publisherKeyword.FindStringIndex(publisher); loc != nil && loc[0] > 0 {
			tail := stripPublisherKeywords(publisher[loc[0]:])
			// "Năm xuất bản 2015" names a year, not a publisher.
			if tail != "" && !hasLatinLetter(tail) {
				continue
			}
			if runeLen(tail) > 2 {
				publisher = tail
			}
		}
		if !hasLatinLetter(publisher) {
			continue
		}
		if n := runeLen(publisher); n > 2 && n < 200 {
			return publisher, true
		}
	}
	return "", false
}

// physicalLines splits any multi-line element, such as the whole-text
// fallback of Segment, so line rules always see single lines.
func physicalLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		out = append(out, splitNewlines(l)...)
	}
	return out
}

func stripPublisherKeywords(s string) string {
	s = publisherPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	return trimField(publisherSuffix.ReplaceAllString(s, ""))
}

func publisherByPattern(_ []string, text string) (string, bool) {
	for _, m := range publisherPattern.FindAllStringSubmatch(text, -1) {
		publisher := trimField(m[1])
		if !hasLatinLetter(publisher) {
			continue
		}
		if n := runeLen(publisher); n > 2 && n < 200 {
			return publisher, true
		}
	}
	return "", false
}

var yearRules = Rules{
	func(_ []string, text string) (string, bool) { return firstYear(yearKeyword, text) },
	func(_ []string, text string) (string, bool) { return firstYear(yearBare, text) },
}

// FindYear returns the first plausible publication year (1900-2099),
// preferring years introduced by a keyword.
func FindYear(text string) string {
	return yearRules.Apply(nil, text)
}

func firstYear(re *regexp.Regexp, text string) (string, bool) {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year >= 1900 && year <= 2099 {
			return strconv.Itoa(year), true
		}
	}
	return "", false
}

var isbnRules = Rules{
	func(_ []string, text string) (string, bool) { return firstISBN(isbnKeyword13, text) },
	func(_ []string, text string) (string, bool) { return firstISBN(isbnKeyword10, text) },
	func(_ []string, text string) (string, bool) { return firstISBN(isbnGrouped, text) },
	func(_ []string, text string) (string, bool) { return firstISBN(isbnBare, text) },
}

// FindIsbn returns the first ISBN-10 or ISBN-13 in text with separators
// removed.
func FindIsbn(text string) string {
	return isbnRules.Apply(nil, text)
}

func firstISBN(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	isbn := m[len(m)-1]
	isbn = strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, isbn)
	return isbn, true
}

// FindTitle is the single-line fallback: it drops keyword-led author,
// publisher and ISBN fragments and keeps the first line that is left.
func FindTitle(text string) string {
	cleaned := text
	for _, re := range titleStrip {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	for _, line := range strings.Split(cleaned, "\n") {
		if line = trimField(line); line != "" {
			return line
		}
	}
	return truncateRunes(strings.TrimSpace(cleaned), 100)
}

// trimField trims whitespace and dangling separators left over from
// keyword captures.
func trimField(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(":;,-–", r)
	})
}

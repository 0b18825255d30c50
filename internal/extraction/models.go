package extraction

import "strings"

// Layout selects which spatial arrangement of a book cover the extraction
// policy assumes.
type Layout int

const (
	// Standard is the default: title first, then author and publisher.
	// Unrecognized layout tags resolve to Standard.
	Standard Layout = iota
	// AuthorFirst expects the author on the first line.
	AuthorFirst
	// TitleOnly trusts the title assembler and pattern-matches the rest.
	TitleOnly
	// FullInfo expects title, author, publisher, year and ISBN on lines 0..4.
	FullInfo
)

// Result tags that are not layouts of their own.
const (
	TagUnknown         = "unknown"
	TagStandardPattern = "standard-pattern"
)

var layoutTags = map[Layout]string{
	Standard:    "standard",
	AuthorFirst: "author-first",
	TitleOnly:   "title-only",
	FullInfo:    "full-info",
}

// String returns the wire tag for the layout.
func (l Layout) String() string {
	if tag, ok := layoutTags[l]; ok {
		return tag
	}
	return layoutTags[Standard]
}

// ParseLayout maps a layout tag to a Layout. Empty and unrecognized tags
// return Standard.
func ParseLayout(tag string) Layout {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for l, t := range layoutTags {
		if t == tag {
			return l
		}
	}
	return Standard
}

// Metadata carries the optional geometry reported by the OCR engine.
type Metadata struct {
	// LineHeights is aligned 1:1 with the segmented lines. It may be shorter
	// or longer than the lines; scans truncate to the shorter of the two.
	LineHeights []float64 `json:"lineHeights,omitempty"`
	MaxHeight   float64   `json:"maxHeight,omitempty"`
	// LargestTextIndices is informational only.
	LargestTextIndices []int `json:"largestTextIndices,omitempty"`
}

func (m *Metadata) usable() bool {
	return m != nil && len(m.LineHeights) > 0 && m.MaxHeight > 0
}

// Input is one extraction request.
type Input struct {
	Text   string    `json:"text"`
	Layout string    `json:"layoutType,omitempty"`
	OCR    *Metadata `json:"ocrResult,omitempty"`
}

// Result is the fixed-shape extraction output. Unmatched fields are empty
// strings, never absent.
type Result struct {
	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	Publisher string `json:"publisher" yaml:"publisher"`
	Year      string `json:"year" yaml:"year"`
	ISBN      string `json:"isbn" yaml:"isbn"`
	Layout    string `json:"layout" yaml:"layout"`
}

// EmptyResult is returned for empty or whitespace-only text.
func EmptyResult() Result {
	return Result{Layout: TagUnknown}
}

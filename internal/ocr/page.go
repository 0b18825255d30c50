package ocr

import (
	"strings"

	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

// Line is one recognized text line and its glyph height in pixels.
type Line struct {
	Text   string
	Height float64
}

// Page is the outcome of recognizing one image.
type Page struct {
	Text     string               `json:"text"`
	Metadata *extraction.Metadata `json:"ocrResult,omitempty"`
	Provider string               `json:"provider"`
	Model    string               `json:"model,omitempty"`
}

// Input converts the page into an extraction request for the given layout tag.
func (p *Page) Input(layout string) extraction.Input {
	return extraction.Input{Text: p.Text, Layout: layout, OCR: p.Metadata}
}

// PageFromLines joins lines into text and derives the height metadata.
// Blank lines are dropped so heights stay aligned with the lines the
// segmenter will produce. LargestTextIndices lists every line at the
// maximum height.
func PageFromLines(lines []Line) (string, *extraction.Metadata) {
	texts := make([]string, 0, len(lines))
	heights := make([]float64, 0, len(lines))
	var maxHeight float64
	for _, l := range lines {
		text := strings.TrimSpace(l.Text)
		if text == "" {
			continue
		}
		texts = append(texts, text)
		heights = append(heights, l.Height)
		if l.Height > maxHeight {
			maxHeight = l.Height
		}
	}
	if len(texts) == 0 {
		return "", nil
	}

	meta := &extraction.Metadata{
		LineHeights: heights,
		MaxHeight:   maxHeight,
	}
	for i, h := range heights {
		if maxHeight > 0 && h == maxHeight {
			meta.LargestTextIndices = append(meta.LargestTextIndices, i)
		}
	}
	return strings.Join(texts, "\n"), meta
}

// Package tesseract recognizes title pages with a local Tesseract install
// through gosseract, reporting each text line with its pixel height.
//
// Tesseract and the requested language data must be installed:
//
//	apt-get install tesseract-ocr tesseract-ocr-vie
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/lehigh-university-libraries/bookmeta/internal/ocr"
)

// Engine implements ocr.Recognizer.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// New constructs an engine for the given tesseract language codes.
func New(languages ...string) *Engine {
	return &Engine{languages: languages, clientFactory: gosseract.NewClient}
}

// Recognize returns one Line per RIL_TEXTLINE box, top to bottom.
func (e *Engine) Recognize(ctx context.Context, image []byte) ([]ocr.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return nil, fmt.Errorf("set page segmentation: %w", err)
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize lines: %w", err)
	}
	return toLines(boxes), nil
}

func toLines(boxes []gosseract.BoundingBox) []ocr.Line {
	lines := make([]ocr.Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, ocr.Line{Text: text, Height: float64(b.Box.Dy())})
	}
	return lines
}

package models

import (
	"time"

	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

// ExtractionSession records one uploaded cover and what was extracted from it
type ExtractionSession struct {
	ID        string               `json:"id"`
	Image     ImageItem            `json:"image"`
	Provider  string               `json:"provider,omitempty"`
	Model     string               `json:"model,omitempty"`
	Layout    string               `json:"layoutType"`
	OCRText   string               `json:"ocr_text"`
	OCR       *extraction.Metadata `json:"ocrResult,omitempty"`
	Result    *extraction.Result   `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// ImageItem represents an uploaded cover or title page image
type ImageItem struct {
	ImagePath   string `json:"image_path"`
	ImageURL    string `json:"image_url"`
	ImageWidth  int    `json:"image_width"`
	ImageHeight int    `json:"image_height"`
}

package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/bookmeta/internal/gemini"
	"github.com/lehigh-university-libraries/bookmeta/internal/ollama"
	"github.com/lehigh-university-libraries/bookmeta/internal/openai"
	"github.com/lehigh-university-libraries/bookmeta/internal/providers"
)

// Tesseract is the provider name for the local line-geometry engine.
const Tesseract = "tesseract"

// Recognizer is a local OCR engine that reports per-line geometry.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]Line, error)
}

// Service handles OCR extraction from images
type Service struct {
	provider    string
	model       string
	providers   map[string]providers.Provider
	recognizers map[string]Recognizer
}

// Option configures a Service.
type Option func(*Service)

// WithProvider registers or replaces a vision provider.
func WithProvider(name string, p providers.Provider) Option {
	return func(s *Service) { s.providers[name] = p }
}

// WithRecognizer registers a local engine such as tesseract.
func WithRecognizer(name string, r Recognizer) Option {
	return func(s *Service) { s.recognizers[name] = r }
}

// NewService creates a new OCR service. provider and model are the defaults
// used when a request leaves them empty.
func NewService(provider, model string, opts ...Option) *Service {
	if provider == "" {
		provider = Tesseract
	}
	s := &Service{
		provider: provider,
		model:    model,
		providers: map[string]providers.Provider{
			"ollama": ollama.New(),
			"openai": openai.New(),
			"gemini": gemini.New(),
		},
		recognizers: map[string]Recognizer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecognizeFile reads an image from disk and recognizes it.
func (s *Service) RecognizeFile(ctx context.Context, imagePath, provider, model string) (*Page, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image for OCR: %w", err)
	}
	return s.Recognize(ctx, imageData, provider, model)
}

// Recognize transcribes an image. Local recognizers return line heights;
// vision providers return text only.
func (s *Service) Recognize(ctx context.Context, imageData []byte, provider, model string) (*Page, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	if provider == "" {
		provider = s.provider
	}

	if r, ok := s.recognizers[provider]; ok {
		lines, err := r.Recognize(ctx, imageData)
		if err != nil {
			return nil, fmt.Errorf("%s OCR failed: %w", provider, err)
		}
		text, meta := PageFromLines(lines)
		slog.Info("Extracted OCR text", "provider", provider, "lines", len(lines), "length", len(text))
		return &Page{Text: text, Metadata: meta, Provider: provider}, nil
	}

	p, ok := s.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OCR provider: %s", provider)
	}
	if model == "" {
		if provider == s.provider && s.model != "" {
			model = s.model
		} else {
			model = defaultModel(provider)
		}
	}

	text, err := p.ExtractText(ctx, providers.Config{
		Model:       model,
		Temperature: 0.0,
		Prompt:      buildOCRPrompt(),
		Image:       imageData,
		MIMEType:    http.DetectContentType(imageData),
	})
	if err != nil {
		return nil, fmt.Errorf("%s OCR failed: %w", provider, err)
	}
	text = strings.TrimSpace(text)

	slog.Info("Extracted OCR text", "provider", provider, "model", model, "length", len(text))
	return &Page{Text: text, Provider: provider, Model: model}, nil
}

func defaultModel(provider string) string {
	env, fallback := "", ""
	switch provider {
	case "openai":
		env, fallback = "OPENAI_MODEL", "gpt-4o"
	case "ollama":
		env, fallback = "OLLAMA_MODEL", "mistral-small3.2:24b"
	case "gemini":
		env, fallback = "GEMINI_MODEL", "gemini-2.5-flash"
	default:
		return ""
	}
	if model := os.Getenv(env); model != "" {
		return model
	}
	return fallback
}

func buildOCRPrompt() string {
	return `You are performing OCR on the title page or cover of a book. Most books are Vietnamese.

Transcribe ALL visible text exactly as it appears, preserving:
- Line breaks, one printed line per output line
- Capitalization and Vietnamese diacritics
- Punctuation
- Order of text elements, top to bottom

Do not add interpretation, commentary, or labels. Do not translate.
If text is illegible, use [?] for that portion.

Provide ONLY the transcribed text. Example output:
DẾ MÈN PHIÊU LƯU KÝ
Tô Hoài
NHÀ XUẤT BẢN KIM ĐỒNG
2019`
}

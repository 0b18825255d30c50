package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookmeta/internal/config"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
	"github.com/lehigh-university-libraries/bookmeta/internal/ocr"
	"github.com/lehigh-university-libraries/bookmeta/internal/ocr/tesseract"
)

func newOCRService(cfg *config.Config) *ocr.Service {
	return ocr.NewService(cfg.OCR.Provider, cfg.OCR.Model,
		ocr.WithRecognizer(ocr.Tesseract, tesseract.New(cfg.OCR.Languages...)),
	)
}

func newOCRCmd() *cobra.Command {
	var provider string
	var model string
	var layout string

	cmd := &cobra.Command{
		Use:   "ocr <image>",
		Short: "OCR a cover image and extract its metadata",
		Long: `Runs OCR on a cover or title page image and extracts metadata from the text.

Providers:
  tesseract  local Tesseract, reports line heights for title assembly
  ollama     vision model served by Ollama (OLLAMA_URL)
  openai     OpenAI vision model (OPENAI_API_KEY)
  gemini     Google Gemini (GEMINI_API_KEY)`,
		Example: `  # Use the configured provider
  bookmeta ocr cover.jpg

  # Use Gemini for a title-only cover
  bookmeta ocr cover.jpg --provider gemini --layout title-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := cm.Get()

			page, err := newOCRService(cfg).RecognizeFile(cmd.Context(), args[0], provider, model)
			if err != nil {
				return err
			}

			if layout == "" {
				layout = cfg.Extraction.DefaultLayout
			}
			result := extraction.New(cfg.ToExtractionConfig()).Extract(page.Input(layout))

			return writeJSON(cmd.OutOrStdout(), struct {
				OCR    *ocr.Page         `json:"ocr"`
				Result extraction.Result `json:"result"`
			}{page, result})
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "OCR provider (tesseract, ollama, openai, gemini); defaults to ocr.provider")
	cmd.Flags().StringVar(&model, "model", "", "Model name for vision providers")
	cmd.Flags().StringVarP(&layout, "layout", "l", "", "Cover layout (standard, author-first, title-only, full-info)")

	return cmd
}

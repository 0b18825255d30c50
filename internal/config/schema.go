package config

import "github.com/lehigh-university-libraries/bookmeta/internal/extraction"

// Config holds bookmeta configuration.
// Stored at: ./bookmeta.yaml or $HOME/.bookmeta/bookmeta.yaml
type Config struct {
	Extraction ExtractionCfg `mapstructure:"extraction" yaml:"extraction"`
	OCR        OCRCfg        `mapstructure:"ocr" yaml:"ocr"`
	Server     ServerCfg     `mapstructure:"server" yaml:"server"`
}

// ExtractionCfg holds the tunable heuristics parameters.
type ExtractionCfg struct {
	HeightRatio    float64  `mapstructure:"height_ratio" yaml:"height_ratio"`         // Fraction of max glyph height that marks a title line
	NoiseTokens    []string `mapstructure:"noise_tokens" yaml:"noise_tokens"`         // Line prefixes ignored as cover noise
	AuthorMinWords int      `mapstructure:"author_min_words" yaml:"author_min_words"` // Bounds for a bare author line
	AuthorMaxWords int      `mapstructure:"author_max_words" yaml:"author_max_words"`
	DefaultLayout  string   `mapstructure:"default_layout" yaml:"default_layout"` // Used when a request names no layout
}

// OCRCfg selects the OCR engine used by the ocr command and upload endpoint.
type OCRCfg struct {
	Provider  string   `mapstructure:"provider" yaml:"provider"` // "tesseract", "ollama", "openai", "gemini"
	Model     string   `mapstructure:"model" yaml:"model"`       // Model name for LLM vision providers
	Languages []string `mapstructure:"languages" yaml:"languages"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	ext := extraction.DefaultConfig()
	return &Config{
		Extraction: ExtractionCfg{
			HeightRatio:    ext.HeightRatio,
			NoiseTokens:    ext.NoiseTokens,
			AuthorMinWords: ext.AuthorMinWords,
			AuthorMaxWords: ext.AuthorMaxWords,
			DefaultLayout:  extraction.Standard.String(),
		},
		OCR: OCRCfg{
			Provider:  "tesseract",
			Languages: []string{"vie", "eng"},
		},
		Server: ServerCfg{
			Port: "8888",
		},
	}
}

// ToExtractionConfig converts the extraction section for extraction.New.
func (c *Config) ToExtractionConfig() extraction.Config {
	return extraction.Config{
		HeightRatio:    c.Extraction.HeightRatio,
		NoiseTokens:    append([]string(nil), c.Extraction.NoiseTokens...),
		AuthorMinWords: c.Extraction.AuthorMinWords,
		AuthorMaxWords: c.Extraction.AuthorMaxWords,
	}
}

// Package extraction turns raw OCR output from a book cover or title page
// into bibliographic fields using layout-specific heuristics.
package extraction

import (
	"log/slog"
	"strings"
)

// Config holds the empirically tuned parameters of the heuristics.
type Config struct {
	// HeightRatio is the fraction of the tallest glyph height a line needs
	// to count as part of the title.
	HeightRatio float64
	// NoiseTokens are line prefixes (case-insensitive) that never belong to
	// a title, e.g. "BESTSELLER" banners.
	NoiseTokens    []string
	AuthorMinWords int
	AuthorMaxWords int
}

// DefaultConfig returns the parameters the heuristics were tuned with.
func DefaultConfig() Config {
	return Config{
		HeightRatio:    0.85,
		NoiseTokens:    []string{"NATIONAL", "BESTSELLER", "NEW YORK", "TIMES"},
		AuthorMinWords: 2,
		AuthorMaxWords: 6,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine runs extractions. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	cfg    Config
	noise  []string
	logger *slog.Logger

	authorRules    Rules
	publisherRules Rules
}

// New builds an Engine. Zero or out-of-range values in cfg fall back to
// DefaultConfig.
func New(cfg Config, opts ...Option) *Engine {
	def := DefaultConfig()
	if cfg.HeightRatio <= 0 || cfg.HeightRatio > 1 {
		cfg.HeightRatio = def.HeightRatio
	}
	if cfg.NoiseTokens == nil {
		cfg.NoiseTokens = def.NoiseTokens
	}
	if cfg.AuthorMinWords <= 0 {
		cfg.AuthorMinWords = def.AuthorMinWords
	}
	if cfg.AuthorMaxWords < cfg.AuthorMinWords {
		cfg.AuthorMaxWords = max(def.AuthorMaxWords, cfg.AuthorMinWords)
	}

	e := &Engine{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, tok := range cfg.NoiseTokens {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if tok != "" {
			e.noise = append(e.noise, tok)
		}
	}
	for _, opt := range opts {
		opt(e)
	}

	e.authorRules = Rules{authorByKeyword, e.authorByTitleCaseLine}
	e.publisherRules = Rules{publisherByLine, publisherByPattern}
	return e
}

// Config returns a copy of the engine's parameters.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.NoiseTokens = append([]string(nil), e.cfg.NoiseTokens...)
	return cfg
}

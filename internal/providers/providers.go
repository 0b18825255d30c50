package providers

import (
	"context"
)

// Config is a single vision request sent to a provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	Image       []byte
	MIMEType    string // defaults to image/jpeg
}

// Provider transcribes an image with a vision-capable model
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}

// ImageMIMEType returns the configured image type or image/jpeg
func (c Config) ImageMIMEType() string {
	if c.MIMEType == "" {
		return "image/jpeg"
	}
	return c.MIMEType
}

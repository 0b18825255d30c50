package handlers

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/bookmeta/internal/models"
)

// saveImage stores the upload under its content hash so repeated uploads
// of the same cover share one file.
func (h *Handler) saveImage(data []byte, filename string) (models.ImageItem, error) {
	if err := h.ensureUploadsDir(); err != nil {
		return models.ImageItem{}, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	sum := md5.Sum(data)
	name := hex.EncodeToString(sum[:]) + strings.ToLower(filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(h.uploadsDir, name), data, 0644); err != nil {
		return models.ImageItem{}, fmt.Errorf("failed to save image: %w", err)
	}
	slog.Info("Image saved", "filename", name)

	item := models.ImageItem{
		ImagePath: name,
		ImageURL:  "/static/uploads/" + name,
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		slog.Warn("Failed to get image dimensions", "filename", name, "error", err)
	} else {
		item.ImageWidth, item.ImageHeight = cfg.Width, cfg.Height
	}
	return item, nil
}

// newSession saves the image, runs OCR and extraction, and stores the
// session. OCR failures are recorded on the session rather than returned.
func (h *Handler) newSession(ctx context.Context, filename string, data []byte, req uploadRequest) (*models.ExtractionSession, error) {
	img, err := h.saveImage(data, filename)
	if err != nil {
		return nil, err
	}

	// Filename without extension, timestamp and upload counter
	id := fmt.Sprintf("%s_%d_%d", strings.TrimSuffix(filename, filepath.Ext(filename)), time.Now().Unix(), h.uploads.Add(1))
	session := &models.ExtractionSession{
		ID:        id,
		Image:     img,
		Provider:  req.Provider,
		Model:     req.Model,
		Layout:    h.layoutOrDefault(req.Layout),
		CreatedAt: time.Now(),
	}
	defer h.sessionStore.Set(id, session)

	page, err := h.ocr.Recognize(ctx, data, req.Provider, req.Model)
	if err != nil {
		slog.Error("Failed to OCR image", "session_id", id, "error", err)
		session.Error = "Error running OCR: " + err.Error()
		return session, nil
	}

	session.Provider = page.Provider
	session.Model = page.Model
	session.OCRText = page.Text
	session.OCR = page.Metadata

	res := h.engine.Load().Extract(page.Input(session.Layout))
	session.Result = &res
	slog.Info("Metadata extracted", "session_id", id, "layout", res.Layout, "title", res.Title)

	return session, nil
}

func downloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}

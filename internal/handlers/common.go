package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
	"github.com/lehigh-university-libraries/bookmeta/internal/models"
	"github.com/lehigh-university-libraries/bookmeta/internal/ocr"
	"github.com/lehigh-university-libraries/bookmeta/internal/storage"
)

// maxUploadSize bounds image uploads and JSON bodies.
const maxUploadSize = 10 * 1024 * 1024

// Recognizer turns image bytes into OCR text and optional line geometry.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, provider, model string) (*ocr.Page, error)
}

type Handler struct {
	sessionStore  *storage.SessionStore
	engine        atomic.Pointer[extraction.Engine]
	ocr           Recognizer
	uploadsDir    string
	defaultLayout string
	uploads       atomic.Uint64
}

// Option configures a Handler.
type Option func(*Handler)

// WithUploadsDir sets where uploaded images are written.
func WithUploadsDir(dir string) Option {
	return func(h *Handler) { h.uploadsDir = dir }
}

// WithDefaultLayout sets the layout tag used when a request omits one.
func WithDefaultLayout(tag string) Option {
	return func(h *Handler) { h.defaultLayout = tag }
}

func New(engine *extraction.Engine, recognizer Recognizer, opts ...Option) *Handler {
	h := &Handler{
		sessionStore: storage.New(),
		ocr:          recognizer,
		uploadsDir:   "uploads",
	}
	h.engine.Store(engine)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetEngine swaps the extraction engine, e.g. after a config reload.
func (h *Handler) SetEngine(engine *extraction.Engine) {
	h.engine.Store(engine)
}

func (h *Handler) layoutOrDefault(tag string) string {
	if tag == "" {
		return h.defaultLayout
	}
	return tag
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.ExtractionSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll(h.uploadsDir, 0755)
}

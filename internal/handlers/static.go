package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// HandleStatic serves uploaded images under /static/uploads/.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutPrefix(r.URL.Path, "/static/uploads/")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}

	// Prevent directory traversal attacks
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.uploadsDir, name))
}

// HandleHealthcheck reports liveness.
func (h *Handler) HandleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Unable to write healthcheck", "err", err)
	}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/extract", h.HandleExtract)
	mux.HandleFunc("/api/upload", h.HandleUpload)
	mux.HandleFunc("/api/sessions", h.HandleSessions)
	mux.HandleFunc("/api/sessions/", h.HandleSessionDetail)
	mux.HandleFunc("/static/", h.HandleStatic)
	mux.HandleFunc("/healthcheck", h.HandleHealthcheck)
	return mux
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

// HandleExtract runs the heuristics on OCR text posted as JSON.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in extraction.Input
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&in); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	in.Layout = h.layoutOrDefault(in.Layout)

	h.writeJSON(w, h.engine.Load().Extract(in))
}

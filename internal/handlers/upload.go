package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// uploadRequest carries the OCR options of an upload. Multipart uploads send
// them as form values, JSON uploads as body fields next to image_url.
type uploadRequest struct {
	ImageURL string `json:"image_url"`
	Layout   string `json:"layoutType"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// HandleUpload accepts a cover image as multipart form data or a JSON
// body naming an image_url, then runs OCR and extraction on it.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		req      uploadRequest
		filename string
		data     []byte
		err      error
		source   = "file"
	)
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		source = "url"
		req, filename, data, err = h.readURLUpload(r)
	} else {
		req, filename, data, err = readFileUpload(r)
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.newSession(r.Context(), filename, data, req)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]any{
		"session_id": session.ID,
		"source":     source,
		"result":     session.Result,
		"error":      session.Error,
	})
}

func (h *Handler) readURLUpload(r *http.Request) (uploadRequest, string, []byte, error) {
	var req uploadRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadSize)).Decode(&req); err != nil {
		return req, "", nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if req.ImageURL == "" {
		return req, "", nil, errors.New("image_url is required")
	}

	u, err := url.Parse(req.ImageURL)
	if err != nil {
		return req, "", nil, fmt.Errorf("invalid image_url: %w", err)
	}
	filename := path.Base(u.Path)
	if filename == "/" || filename == "." {
		filename = "image.jpg"
	}

	data, err := downloadImage(r.Context(), req.ImageURL)
	if err != nil {
		return req, "", nil, err
	}
	return req, filename, data, checkSize(data)
}

func readFileUpload(r *http.Request) (uploadRequest, string, []byte, error) {
	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			return uploadRequest{}, "", nil, fmt.Errorf("failed to read file: %w", err)
		}
	}
	defer file.Close()

	req := uploadRequest{
		Layout:   r.FormValue("layoutType"),
		Provider: r.FormValue("provider"),
		Model:    r.FormValue("model"),
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return req, "", nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	return req, header.Filename, data, checkSize(data)
}

func checkSize(data []byte) error {
	if len(data) >= maxUploadSize {
		return errors.New("file too large (max 10MB)")
	}
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bynzo/biblio/internal/capture"
	"github.com/bynzo/biblio/internal/ocr"
)

// HandleScan runs the scan workflow on an uploaded image. Accepts
// either a JSON body with a data URL / bare base64 payload, or a
// multipart file upload.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleJSONScan(w, r)
		return
	}
	h.handleFileScan(w, r)
}

func (h *Handler) handleJSONScan(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Image == "" {
		h.writeError(w, "image is required", http.StatusBadRequest)
		return
	}

	img, err := capture.ParseDataURL(request.Image)
	if err != nil {
		h.writeError(w, "Invalid image: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.runScan(w, r, img, "upload")
}

func (h *Handler) handleFileScan(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("files")
	if err != nil {
		file, header, err = r.FormFile("file")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	// Limit file size to 10MB
	fileData, err := io.ReadAll(io.LimitReader(file, 10*1024*1024))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(fileData) >= 10*1024*1024 {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	h.runScan(w, r, capture.FromBytes(fileData), header.Filename)
}

func (h *Handler) runScan(w http.ResponseWriter, r *http.Request, img capture.EncodedImage, source string) {
	report, err := h.ingestService.Scan(r.Context(), img, source)
	if err != nil {
		if errors.Is(err, ocr.ErrNoText) {
			h.writeError(w, "No text found in image", http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Scan failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, report)
}

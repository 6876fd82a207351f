package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bynzo/biblio/internal/library"
)

// HandleBooks serves the collection: GET lists, POST adds a record via
// the manual-entry path (no scan).
func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		books, err := h.libraryManager.List()
		if err != nil {
			h.writeError(w, "Failed to load library: "+err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, books)
	case "POST":
		var request struct {
			Title  string `json:"title"`
			Author string `json:"author"`
			Year   string `json:"year"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(request.Title) == "" {
			h.writeError(w, "title is required", http.StatusBadRequest)
			return
		}
		if request.Author == "" {
			request.Author = "Unknown"
		}
		if request.Year == "" {
			request.Year = "Unknown"
		}

		added, err := h.libraryManager.AddIfNew(request.Title, request.Author, request.Year)
		if err != nil {
			h.writeError(w, "Failed to add book: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if !added {
			h.writeError(w, "Book already in library", http.StatusConflict)
			return
		}
		h.writeJSON(w, map[string]any{"added": true, "title": strings.TrimSpace(request.Title)})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleBookDetail serves one record addressed by its list index:
// GET/PUT/DELETE on /api/books/{index}, plus POST /api/books/{index}/read
// and POST /api/books/{index}/rating.
func (h *Handler) HandleBookDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/books/")
	indexPart, action, _ := strings.Cut(rest, "/")

	index, err := strconv.Atoi(indexPart)
	if err != nil {
		h.writeError(w, "Invalid book index", http.StatusBadRequest)
		return
	}

	switch action {
	case "":
		h.handleBook(w, r, index)
	case "read":
		h.handleToggleRead(w, r, index)
	case "rating":
		h.handleRating(w, r, index)
	default:
		h.writeError(w, "Not found", http.StatusNotFound)
	}
}

func (h *Handler) handleBook(w http.ResponseWriter, r *http.Request, index int) {
	switch r.Method {
	case "GET":
		books, err := h.libraryManager.List()
		if err != nil {
			h.writeError(w, "Failed to load library: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if index < 0 || index >= len(books) {
			h.writeError(w, "Book not found", http.StatusNotFound)
			return
		}
		h.writeJSON(w, books[index])
	case "PUT":
		var request struct {
			Title  string `json:"title"`
			Author string `json:"author"`
			Year   string `json:"year"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		h.finishMutation(w, index, h.libraryManager.Edit(index, request.Title, request.Author, request.Year))
	case "DELETE":
		h.finishMutation(w, index, h.libraryManager.Delete(index))
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleToggleRead(w http.ResponseWriter, r *http.Request, index int) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.finishMutation(w, index, h.libraryManager.ToggleRead(index))
}

func (h *Handler) handleRating(w http.ResponseWriter, r *http.Request, index int) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var request struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	err := h.libraryManager.SetRating(index, request.Rating)
	if err != nil && !errors.Is(err, library.ErrNotFound) {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.finishMutation(w, index, err)
}

func (h *Handler) finishMutation(w http.ResponseWriter, index int, err error) {
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			h.writeError(w, "Book not found", http.StatusNotFound)
			return
		}
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]any{"ok": true, "index": index})
}

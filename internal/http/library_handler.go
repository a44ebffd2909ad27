package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"bookclub/internal/entity"
	"bookclub/internal/httpx"
	"bookclub/internal/usecase"
)

// LibraryHandler manages the caller's imported remote-catalog books.
type LibraryHandler struct {
	libraryRepo usecase.LibraryRepository
}

func NewLibraryHandler(libraryRepo usecase.LibraryRepository) *LibraryHandler {
	return &LibraryHandler{libraryRepo: libraryRepo}
}

type addLibraryRequest struct {
	ID          string  `json:"id" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// Add imports a remote book into the caller's library. Adding a book the
// caller already has is a no-op; the membership set does not grow.
func (h *LibraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(r, w, http.StatusUnauthorized, "AUTH_REQUIRED", "Please log in to add books to your library", nil)
		return
	}

	var body addLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book payload", errorDetails(details))
		return
	}

	author := body.Author
	if author == "" {
		author = entity.UnknownAuthor
	}
	book := entity.Book{
		ID:          body.ID,
		Title:       body.Title,
		Author:      author,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		Source:      entity.SourceRemote,
	}

	if err := h.libraryRepo.Add(r.Context(), userID, book); err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Failed to add book to library, please try again", nil)
		return
	}
	httpx.JSONSuccessCreated(r, w, map[string]interface{}{"book_id": body.ID})
}

// Remove drops the caller's membership. Removing a book not in the library
// succeeds without effect.
func (h *LibraryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(r, w, http.StatusUnauthorized, "AUTH_REQUIRED", "Please log in to manage your library", nil)
		return
	}

	id := strings.TrimPrefix(strings.Trim(r.URL.Path, "/"), "library/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	if err := h.libraryRepo.Remove(r.Context(), userID, id); err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Failed to remove book from library, please try again", nil)
		return
	}
	httpx.JSONSuccess(r, w, map[string]interface{}{"book_id": id}, nil)
}

// List is the caller's "my library" view.
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(r, w, http.StatusUnauthorized, "AUTH_REQUIRED", "Please log in to view your library", nil)
		return
	}

	books, err := h.libraryRepo.ListForUser(r.Context(), userID)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Could not load your library, please try again", nil)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	httpx.JSONSuccess(r, w, books, map[string]interface{}{"total": len(books)})
}

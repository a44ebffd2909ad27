package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookclub/internal/httpx"
	"bookclub/internal/usecase"
)

type FavoriteHandler struct {
	bookRepo usecase.BookRepository
}

func NewFavoriteHandler(bookRepo usecase.BookRepository) *FavoriteHandler {
	return &FavoriteHandler{bookRepo: bookRepo}
}

type setFavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

// Set flips the favorite flag on a local book.
func (h *FavoriteHandler) Set(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseBookIDAndAction(r.URL.Path)
	if !ok || action != "favorite" {
		http.NotFound(w, r)
		return
	}

	if httpx.UserIDFrom(r) == "" {
		httpx.JSONError(r, w, http.StatusUnauthorized, "AUTH_REQUIRED", "You must be logged in", nil)
		return
	}

	var body setFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Favorite == nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "favorite flag is required", nil)
		return
	}

	if err := h.bookRepo.SetFavorite(r.Context(), id, *body.Favorite); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			httpx.JSONError(r, w, http.StatusNotFound, "BOOK_NOT_FOUND", "Book not found", nil)
		default:
			httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Failed to update favorite status, please try again", nil)
		}
		return
	}

	httpx.JSONSuccess(r, w, map[string]interface{}{
		"book_id":  id,
		"favorite": *body.Favorite,
	}, nil)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookclub/internal/entity"
	"bookclub/internal/httpx"
	"bookclub/internal/usecase"
)

type RatingHandler struct {
	ratingRepo usecase.RatingRepository
}

func NewRatingHandler(ratingRepo usecase.RatingRepository) *RatingHandler {
	return &RatingHandler{ratingRepo: ratingRepo}
}

type upsertRatingRequest struct {
	Rating  int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment *string `json:"comment"`
}

// Upsert saves or overwrites the caller's rating for the book. Exactly one
// row per (user, book) exists afterwards.
func (h *RatingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseBookIDAndAction(r.URL.Path)
	if !ok || action != "rating" {
		http.NotFound(w, r)
		return
	}

	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(r, w, http.StatusUnauthorized, "AUTH_REQUIRED", "You must be logged in to rate this book", nil)
		return
	}

	var body upsertRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Please provide a rating before submitting", errorDetails(details))
		return
	}

	if err := h.ratingRepo.Upsert(r.Context(), userID, id, body.Rating, body.Comment); err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5", nil)
		default:
			httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Could not save your review, please try again", nil)
		}
		return
	}

	httpx.JSONSuccess(r, w, map[string]interface{}{
		"book_id": id,
		"rating":  body.Rating,
		"comment": body.Comment,
	}, nil)
}

// Get returns the book's aggregate alongside the caller's own rating when
// the request is authenticated.
func (h *RatingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseBookIDAndAction(r.URL.Path)
	if !ok || action != "rating" {
		http.NotFound(w, r)
		return
	}

	average, count, err := h.ratingRepo.GetBookRating(r.Context(), id)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Could not load ratings, please try again", nil)
		return
	}

	data := map[string]interface{}{
		"average_rating": average,
		"total_ratings":  count,
	}
	if count == 0 {
		data["rating_label"] = "No ratings yet"
	}
	if userID := httpx.UserIDFrom(r); userID != "" {
		if rating, err := h.ratingRepo.GetUserRating(r.Context(), userID, id); err == nil {
			data["your_rating"] = rating.Rating
			data["your_comment"] = rating.Comment
		}
	}

	httpx.JSONSuccess(r, w, data, nil)
}

// ListReviews returns every rating row for the book with reviewer names.
func (h *RatingHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseBookIDAndAction(r.URL.Path)
	if !ok || action != "reviews" {
		http.NotFound(w, r)
		return
	}

	reviews, err := h.ratingRepo.ListReviews(r.Context(), id)
	if err != nil {
		httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Could not load reviews, please try again", nil)
		return
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}
	httpx.JSONSuccess(r, w, reviews, map[string]interface{}{"total": len(reviews)})
}

func errorDetails(details []ValidationError) []httpx.ErrorDetail {
	out := make([]httpx.ErrorDetail, 0, len(details))
	for _, d := range details {
		out = append(out, httpx.ErrorDetail{Field: d.Field, Message: d.Message})
	}
	return out
}

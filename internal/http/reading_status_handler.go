package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookclub/internal/httpx"
	"bookclub/internal/usecase"
)

type ReadingStatusHandler struct {
	statusRepo usecase.ReadingStatusRepository
}

func NewReadingStatusHandler(statusRepo usecase.ReadingStatusRepository) *ReadingStatusHandler {
	return &ReadingStatusHandler{statusRepo: statusRepo}
}

type upsertStatusRequest struct {
	Status string `json:"status" validate:"required,reading_status"`
}

func (h *ReadingStatusHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseBookIDAndAction(r.URL.Path)
	if !ok || action != "reading-status" {
		http.NotFound(w, r)
		return
	}

	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(r, w, http.StatusUnauthorized, "AUTH_REQUIRED", "Please log in to update reading status", nil)
		return
	}

	var body upsertStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(body); details != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reading status", errorDetails(details))
		return
	}

	if err := h.statusRepo.Upsert(r.Context(), userID, id, body.Status); err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reading status", nil)
		default:
			httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Failed to update reading status, please try again", nil)
		}
		return
	}

	httpx.JSONSuccess(r, w, map[string]interface{}{
		"book_id": id,
		"status":  body.Status,
	}, nil)
}

// Get returns the caller's status for the book; data is null when unset.
func (h *ReadingStatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, action, ok := parseBookIDAndAction(r.URL.Path)
	if !ok || action != "reading-status" {
		http.NotFound(w, r)
		return
	}

	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(r, w, http.StatusUnauthorized, "AUTH_REQUIRED", "Please log in to view reading status", nil)
		return
	}

	rs, err := h.statusRepo.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONSuccess(r, w, nil, nil)
			return
		}
		httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Could not load reading status, please try again", nil)
		return
	}
	httpx.JSONSuccess(r, w, rs, nil)
}

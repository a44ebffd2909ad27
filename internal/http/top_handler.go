package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"bookclub/internal/catalog"
	"bookclub/internal/entity"
	"bookclub/internal/httpx"
	"bookclub/internal/usecase"
)

// Top list sizes: the homepage preview and the full ranking.
const (
	topPreviewLimit = 9
	topListLimit    = 100
)

type TopHandler struct {
	bookRepo usecase.BookRepository
	remote   usecase.RemoteCatalog
}

func NewTopHandler(bookRepo usecase.BookRepository, remote usecase.RemoteCatalog) *TopHandler {
	return &TopHandler{bookRepo: bookRepo, remote: remote}
}

// List ranks the unfiltered merged set by rating and truncates FIRST; the
// user's filters then apply to the truncated slice. A book ranked below
// the cut never surfaces here even when it would pass the active filters.
// This ordering is carried over deliberately.
func (h *TopHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := topListLimit
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n == topPreviewLimit {
		limit = topPreviewLimit
	}

	merged, err := catalog.FetchMerged(ctx,
		func(ctx context.Context) ([]entity.Book, error) {
			return h.bookRepo.List(ctx, usecase.ScopeAll)
		},
		func(ctx context.Context) ([]entity.Book, error) {
			return h.remote.Search(ctx, defaultBrowseQuery, topListLimit)
		},
	)
	if err != nil {
		slog.Error("both catalog sources failed", slog.String("error", err.Error()))
		httpx.JSONError(r, w, http.StatusInternalServerError, "SOURCES_UNAVAILABLE", "Could not load books, please try again", nil)
		return
	}

	books := catalog.TopN(merged.Books, limit)
	books = catalog.Apply(books, filterFromQuery(r))

	meta := listMeta(merged.Warnings, len(books))
	meta["limit"] = limit
	httpx.JSONSuccess(r, w, books, meta)
}

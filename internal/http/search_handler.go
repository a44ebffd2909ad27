package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"bookclub/internal/catalog"
	"bookclub/internal/entity"
	"bookclub/internal/httpx"
	"bookclub/internal/usecase"
)

// SearchHandler drives both catalog searches off the single q parameter.
type SearchHandler struct {
	bookRepo usecase.BookRepository
	remote   usecase.RemoteCatalog
}

func NewSearchHandler(bookRepo usecase.BookRepository, remote usecase.RemoteCatalog) *SearchHandler {
	return &SearchHandler{bookRepo: bookRepo, remote: remote}
}

// Search returns the merged result for q. An empty or missing q is not an
// error: it yields an empty set and a prompt to enter a query.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httpx.JSONSuccess(r, w, []entity.Book{}, map[string]interface{}{
			"message": "Please enter a search query",
			"total":   0,
		})
		return
	}

	merged, err := catalog.FetchMerged(ctx,
		func(ctx context.Context) ([]entity.Book, error) {
			books, err := h.bookRepo.List(ctx, usecase.ScopeAll)
			if err != nil {
				return nil, err
			}
			// The local store has no text index; title matching happens in
			// the same pipeline filter the browse page uses. Fetch order is
			// kept so the merge tie-break stays stable.
			return catalog.FilterBooks(books, catalog.Filter{Title: query}), nil
		},
		func(ctx context.Context) ([]entity.Book, error) {
			return h.remote.Search(ctx, query, 0)
		},
	)
	if err != nil {
		slog.Error("search failed on both sources", slog.String("q", query), slog.String("error", err.Error()))
		httpx.JSONError(r, w, http.StatusInternalServerError, "SOURCES_UNAVAILABLE", "Could not search books, please try again", nil)
		return
	}

	books := catalog.Apply(merged.Books, filterFromQuery(r))
	httpx.JSONSuccess(r, w, books, listMeta(merged.Warnings, len(books)))
}

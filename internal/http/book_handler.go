package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"bookclub/internal/catalog"
	"bookclub/internal/entity"
	"bookclub/internal/httpx"
	"bookclub/internal/usecase"
)

// defaultBrowseQuery seeds the remote side of browse pages; the search
// endpoint threads the user's own query through instead.
const defaultBrowseQuery = "fiction"

type BookHandler struct {
	bookRepo    usecase.BookRepository
	statusRepo  usecase.ReadingStatusRepository
	ratingRepo  usecase.RatingRepository
	libraryRepo usecase.LibraryRepository
	remote      usecase.RemoteCatalog
}

func NewBookHandler(
	bookRepo usecase.BookRepository,
	statusRepo usecase.ReadingStatusRepository,
	ratingRepo usecase.RatingRepository,
	libraryRepo usecase.LibraryRepository,
	remote usecase.RemoteCatalog,
) *BookHandler {
	return &BookHandler{
		bookRepo:    bookRepo,
		statusRepo:  statusRepo,
		ratingRepo:  ratingRepo,
		libraryRepo: libraryRepo,
		remote:      remote,
	}
}

// parseBookIDAndAction splits /books/{id} or /books/{id}/{action}.
// Remote volume IDs are opaque but never contain slashes.
func parseBookIDAndAction(path string) (id, action string, ok bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	switch {
	case len(parts) == 2 && parts[0] == "books" && parts[1] != "":
		return parts[1], "", true
	case len(parts) == 3 && parts[0] == "books" && parts[1] != "":
		return parts[1], parts[2], true
	}
	return "", "", false
}

func filterFromQuery(r *http.Request) catalog.Filter {
	minRating, _ := strconv.ParseFloat(r.URL.Query().Get("min_rating"), 64)
	if minRating < 0 {
		minRating = 0
	}
	return catalog.Filter{
		Title:     r.URL.Query().Get("title"),
		MinRating: minRating,
		Status:    r.URL.Query().Get("status"),
		Ascending: r.URL.Query().Get("sort") == "asc",
	}
}

// List merges both catalog sources, decorates local entries with the
// caller's reading statuses, and applies the user's filter/sort state.
// One source failing degrades to the other's subset plus a warning.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scope := usecase.ScopeAll
	if r.URL.Query().Get("favorites") == "true" {
		scope = usecase.ScopeFavorites
	}

	merged, err := catalog.FetchMerged(ctx,
		func(ctx context.Context) ([]entity.Book, error) {
			return h.bookRepo.List(ctx, scope)
		},
		func(ctx context.Context) ([]entity.Book, error) {
			return h.remote.Search(ctx, defaultBrowseQuery, 0)
		},
	)
	if err != nil {
		slog.Error("both catalog sources failed", slog.String("error", err.Error()))
		httpx.JSONError(r, w, http.StatusInternalServerError, "SOURCES_UNAVAILABLE", "Could not load books, please try again", nil)
		return
	}

	books := h.decorateStatuses(r, merged.Books)
	books = catalog.Apply(books, filterFromQuery(r))

	httpx.JSONSuccess(r, w, books, listMeta(merged.Warnings, len(books)))
}

// Get serves the detail view: local store first, remote catalog on a miss,
// terminal 404 after both. Local books carry reviews and the caller's own
// rating and status.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, action, ok := parseBookIDAndAction(r.URL.Path)
	if !ok || action != "" {
		http.NotFound(w, r)
		return
	}

	book, localErr := h.bookRepo.Get(ctx, id)
	if localErr == nil {
		h.writeLocalDetail(w, r, book)
		return
	}
	storeDown := !errors.Is(localErr, usecase.ErrNotFound)
	if storeDown {
		// Store failure on a read path: still try the remote side before
		// giving up.
		slog.Warn("local detail fetch failed", slog.String("book_id", id), slog.String("error", localErr.Error()))
	}

	remoteBook, err := h.remote.GetVolume(ctx, id)
	if err != nil {
		// A 404 means both sources were consulted and neither has the
		// book; a store failure is not a miss, so it stays retry-eligible.
		if storeDown {
			httpx.JSONError(r, w, http.StatusInternalServerError, "DATA_STORE_ERROR", "Could not load book details, please try again", nil)
			return
		}
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(r, w, http.StatusNotFound, "BOOK_NOT_FOUND", "Failed to load book details", nil)
			return
		}
		httpx.JSONError(r, w, http.StatusInternalServerError, "REMOTE_ERROR", "Failed to load book details, please try again", nil)
		return
	}

	inLibrary := false
	if userID := httpx.UserIDFrom(r); userID != "" && h.libraryRepo != nil {
		var err error
		if inLibrary, err = h.libraryRepo.Contains(ctx, userID, remoteBook.ID); err != nil {
			slog.Warn("library membership check failed", slog.String("book_id", remoteBook.ID), slog.String("error", err.Error()))
		}
	}

	httpx.JSONSuccess(r, w, map[string]interface{}{
		"book":       remoteBook,
		"reviews":    []entity.Review{},
		"in_library": inLibrary,
	}, nil)
}

func (h *BookHandler) writeLocalDetail(w http.ResponseWriter, r *http.Request, book entity.Book) {
	ctx := r.Context()

	reviews, err := h.ratingRepo.ListReviews(ctx, book.ID)
	if err != nil {
		slog.Warn("reviews fetch failed", slog.String("book_id", book.ID), slog.String("error", err.Error()))
		reviews = nil
	}
	if reviews == nil {
		reviews = []entity.Review{}
	}

	detail := map[string]interface{}{
		"book":    book,
		"reviews": reviews,
	}

	if userID := httpx.UserIDFrom(r); userID != "" {
		if rating, err := h.ratingRepo.GetUserRating(ctx, userID, book.ID); err == nil {
			detail["your_rating"] = rating
		}
		if rs, err := h.statusRepo.Get(ctx, userID, book.ID); err == nil {
			detail["your_status"] = rs.Status
		}
	}

	httpx.JSONSuccess(r, w, detail, nil)
}

// decorateStatuses attaches the caller's reading statuses to matching
// entries. Anonymous callers get the list as-is.
func (h *BookHandler) decorateStatuses(r *http.Request, books []entity.Book) []entity.Book {
	userID := httpx.UserIDFrom(r)
	if userID == "" || h.statusRepo == nil {
		return books
	}

	statuses, err := h.statusRepo.ListForUser(r.Context(), userID)
	if err != nil {
		slog.Warn("status decoration failed", slog.String("error", err.Error()))
		return books
	}
	byBook := make(map[string]string, len(statuses))
	for _, s := range statuses {
		byBook[s.BookID] = s.Status
	}
	for i := range books {
		if status, ok := byBook[books[i].ID]; ok {
			books[i].Status = status
		}
	}
	return books
}

func listMeta(warnings []catalog.Warning, total int) map[string]interface{} {
	meta := map[string]interface{}{"total": total}
	if len(warnings) > 0 {
		meta["warnings"] = warnings
	}
	return meta
}

package http

import (
	"context"
	"sort"

	"bookclub/internal/entity"
	"bookclub/internal/usecase"
)

// Hand-rolled fakes for the repository contracts. Handlers are exercised
// through httptest; the store layer is covered separately.

type fakeBookRepo struct {
	books     []entity.Book
	listErr   error
	getErr    error
	favorites map[string]bool
}

func (f *fakeBookRepo) List(ctx context.Context, scope usecase.Scope) ([]entity.Book, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if scope == usecase.ScopeFavorites {
		var out []entity.Book
		for _, b := range f.books {
			if b.IsFavorite {
				out = append(out, b)
			}
		}
		return out, nil
	}
	return f.books, nil
}

func (f *fakeBookRepo) Get(ctx context.Context, id string) (entity.Book, error) {
	if f.getErr != nil {
		return entity.Book{}, f.getErr
	}
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return entity.Book{}, usecase.ErrNotFound
}

func (f *fakeBookRepo) SetFavorite(ctx context.Context, id string, favorite bool) error {
	if _, err := f.Get(ctx, id); err != nil {
		return err
	}
	if f.favorites == nil {
		f.favorites = make(map[string]bool)
	}
	f.favorites[id] = favorite
	return nil
}

type fakeRemote struct {
	searchBooks []entity.Book
	searchErr   error
	volumes     map[string]entity.Book
	lastQuery   string
	lastMax     int
}

func (f *fakeRemote) Search(ctx context.Context, query string, maxResults int) ([]entity.Book, error) {
	f.lastQuery = query
	f.lastMax = maxResults
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchBooks, nil
}

func (f *fakeRemote) GetVolume(ctx context.Context, id string) (entity.Book, error) {
	if b, ok := f.volumes[id]; ok {
		return b, nil
	}
	return entity.Book{}, usecase.ErrNotFound
}

type ratingKey struct {
	userID string
	bookID string
}

type fakeRatingRepo struct {
	ratings   map[ratingKey]entity.Rating
	upsertErr error
	average   float64
	count     int
	statsErr  error
	reviews   []entity.Review
}

func (f *fakeRatingRepo) Upsert(ctx context.Context, userID, bookID string, rating int, comment *string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.ratings == nil {
		f.ratings = make(map[ratingKey]entity.Rating)
	}
	f.ratings[ratingKey{userID, bookID}] = entity.Rating{
		UserID: userID, BookID: bookID, Rating: rating, Comment: comment,
	}
	return nil
}

func (f *fakeRatingRepo) GetUserRating(ctx context.Context, userID, bookID string) (entity.Rating, error) {
	if r, ok := f.ratings[ratingKey{userID, bookID}]; ok {
		return r, nil
	}
	return entity.Rating{}, usecase.ErrNotFound
}

func (f *fakeRatingRepo) GetBookRating(ctx context.Context, bookID string) (float64, int, error) {
	if f.statsErr != nil {
		return 0, 0, f.statsErr
	}
	return f.average, f.count, nil
}

func (f *fakeRatingRepo) ListReviews(ctx context.Context, bookID string) ([]entity.Review, error) {
	return f.reviews, nil
}

type fakeStatusRepo struct {
	statuses  map[ratingKey]entity.ReadingStatus
	upsertErr error
}

func (f *fakeStatusRepo) Upsert(ctx context.Context, userID, bookID, status string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if !entity.ValidReadingStatus(status) {
		return usecase.ErrValidation
	}
	if f.statuses == nil {
		f.statuses = make(map[ratingKey]entity.ReadingStatus)
	}
	f.statuses[ratingKey{userID, bookID}] = entity.ReadingStatus{UserID: userID, BookID: bookID, Status: status}
	return nil
}

func (f *fakeStatusRepo) Get(ctx context.Context, userID, bookID string) (entity.ReadingStatus, error) {
	if s, ok := f.statuses[ratingKey{userID, bookID}]; ok {
		return s, nil
	}
	return entity.ReadingStatus{}, usecase.ErrNotFound
}

func (f *fakeStatusRepo) ListForUser(ctx context.Context, userID string) ([]entity.ReadingStatus, error) {
	var out []entity.ReadingStatus
	for k, s := range f.statuses {
		if k.userID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}

type fakeLibraryRepo struct {
	books   map[string]entity.Book
	members map[ratingKey]bool
	err     error
}

func newFakeLibraryRepo() *fakeLibraryRepo {
	return &fakeLibraryRepo{
		books:   make(map[string]entity.Book),
		members: make(map[ratingKey]bool),
	}
}

func (f *fakeLibraryRepo) Add(ctx context.Context, userID string, book entity.Book) error {
	if f.err != nil {
		return f.err
	}
	f.books[book.ID] = book
	f.members[ratingKey{userID, book.ID}] = true
	return nil
}

func (f *fakeLibraryRepo) Remove(ctx context.Context, userID, bookID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.members, ratingKey{userID, bookID})
	return nil
}

func (f *fakeLibraryRepo) Contains(ctx context.Context, userID, bookID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.members[ratingKey{userID, bookID}], nil
}

func (f *fakeLibraryRepo) ListForUser(ctx context.Context, userID string) ([]entity.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entity.Book
	for k := range f.members {
		if k.userID == userID {
			out = append(out, f.books[k.bookID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLibraryRepo) size() int {
	return len(f.members)
}

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookclub/internal/entity"
	"bookclub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteHandler_RequiresAuth(t *testing.T) {
	h := NewFavoriteHandler(&fakeBookRepo{})

	w := httptest.NewRecorder()
	h.Set(w, testutil.NewRequest(http.MethodPost, "/books/b1/favorite", map[string]interface{}{"favorite": true}))
	resp := testutil.RecordHTTPResponse(w)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestFavoriteHandler_FlagIsRequired(t *testing.T) {
	h := NewFavoriteHandler(&fakeBookRepo{books: []entity.Book{localBook("b1", "A Book", 3)}})

	w := httptest.NewRecorder()
	h.Set(w, asUser(testutil.NewRequest(http.MethodPost, "/books/b1/favorite", map[string]interface{}{})))
	resp := testutil.RecordHTTPResponse(w)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestFavoriteHandler_UnknownBookIs404(t *testing.T) {
	h := NewFavoriteHandler(&fakeBookRepo{})

	w := httptest.NewRecorder()
	h.Set(w, asUser(testutil.NewRequest(http.MethodPost, "/books/ghost/favorite", map[string]interface{}{"favorite": true})))
	resp := testutil.RecordHTTPResponse(w)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestFavoriteHandler_SetAndUnset(t *testing.T) {
	repo := &fakeBookRepo{books: []entity.Book{localBook("b1", "A Book", 3)}}
	h := NewFavoriteHandler(repo)

	for _, favorite := range []bool{true, false} {
		w := httptest.NewRecorder()
		h.Set(w, asUser(testutil.NewRequest(http.MethodPost, "/books/b1/favorite", map[string]interface{}{"favorite": favorite})))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, favorite, repo.favorites["b1"])
	}
}

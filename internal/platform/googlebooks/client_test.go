package googlebooks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookclub/internal/entity"
	"bookclub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, "test-key", 40, 100, 2*time.Second)
}

func TestSearch_NormalizesVolumes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "space opera", r.URL.Query().Get("q"))
		assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"id": "vol1",
					"volumeInfo": {
						"title": "Consider Phlebas",
						"authors": ["Iain M. Banks"],
						"averageRating": 4.5,
						"imageLinks": {"thumbnail": "http://img/1.jpg"}
					}
				},
				{
					"id": "vol2",
					"volumeInfo": {}
				}
			]
		}`))
	}))
	defer srv.Close()

	books, err := newTestClient(srv).Search(context.Background(), "space opera", 0)

	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "vol1", books[0].ID)
	assert.Equal(t, "Consider Phlebas", books[0].Title)
	assert.Equal(t, "Iain M. Banks", books[0].Author)
	assert.Equal(t, 4.5, books[0].AverageRating)
	require.NotNil(t, books[0].ImageURL)
	assert.Equal(t, "http://img/1.jpg", *books[0].ImageURL)
	assert.Equal(t, entity.SourceRemote, books[0].Source)

	// Missing fields normalize to the display sentinels.
	assert.Equal(t, entity.UnknownTitle, books[1].Title)
	assert.Equal(t, entity.UnknownAuthor, books[1].Author)
	assert.Nil(t, books[1].ImageURL)
	assert.Equal(t, 0.0, books[1].AverageRating)
	assert.Equal(t, entity.NoRatingsLabel, books[1].RatingLabel)
}

func TestSearch_ClampsOutOfRangeRatings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"id":"high","volumeInfo":{"title":"H","averageRating":7.3}},
			{"id":"low","volumeInfo":{"title":"L","averageRating":-1}}
		]}`))
	}))
	defer srv.Close()

	books, err := newTestClient(srv).Search(context.Background(), "q", 0)

	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 5.0, books[0].AverageRating)
	assert.Equal(t, 0.0, books[1].AverageRating)
	assert.Equal(t, entity.NoRatingsLabel, books[1].RatingLabel)
}

func TestSearch_JoinsMultipleAuthors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":"v","volumeInfo":{"title":"T","authors":["A One","B Two"]}}]}`))
	}))
	defer srv.Close()

	books, err := newTestClient(srv).Search(context.Background(), "q", 0)

	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "A One, B Two", books[0].Author)
}

func TestSearch_NoItemsMeansEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer srv.Close()

	books, err := newTestClient(srv).Search(context.Background(), "nothing", 0)

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	client := NewClient("http://unused", "k", 40, 100, time.Second)

	_, err := client.Search(context.Background(), "   ", 0)

	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestSearch_CapsMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40", r.URL.Query().Get("maxResults"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "q", 500)
	require.NoError(t, err)
}

func TestSearch_ServerErrorIsRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "q", 0)

	assert.ErrorIs(t, err, usecase.ErrRemote)
}

func TestGetVolume_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes/vol1", r.URL.Path)
		w.Write([]byte(`{"id":"vol1","volumeInfo":{"title":"Use of Weapons","authors":["Iain M. Banks"]}}`))
	}))
	defer srv.Close()

	bk, err := newTestClient(srv).GetVolume(context.Background(), "vol1")

	require.NoError(t, err)
	assert.Equal(t, "Use of Weapons", bk.Title)
	assert.Equal(t, entity.SourceRemote, bk.Source)
}

func TestGetVolume_MissIsNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"http 404",
			func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
		},
		{
			"http 500",
			func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		},
		{
			"error payload",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":{"message":"The volume ID could not be found."}}`))
			},
		},
		{
			"empty payload",
			func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{}`)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestClient(srv).GetVolume(context.Background(), "missing")
			assert.ErrorIs(t, err, usecase.ErrNotFound)
		})
	}
}

func TestGetVolume_TimeoutCountsAsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"id":"late"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", 40, 100, 50*time.Millisecond)

	_, err := client.GetVolume(context.Background(), "slow")

	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrNotFound), "timeout should be NotFound-equivalent, got %v", err)
}

package catalog

import (
	"context"
	"errors"
	"testing"

	"bookclub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(books []entity.Book, err error) Source {
	return func(ctx context.Context) ([]entity.Book, error) {
		return books, err
	}
}

func TestFetchMerged_BothSucceed(t *testing.T) {
	local := []entity.Book{book("l1", "Local", 4)}
	remote := []entity.Book{remoteBook("r1", "Remote", 3)}

	merged, err := FetchMerged(context.Background(), source(local, nil), source(remote, nil))

	require.NoError(t, err)
	require.Len(t, merged.Books, 2)
	assert.Equal(t, "l1", merged.Books[0].ID)
	assert.Equal(t, "r1", merged.Books[1].ID)
	assert.Empty(t, merged.Warnings)
}

func TestFetchMerged_LocalFailureStillYieldsRemote(t *testing.T) {
	remote := []entity.Book{remoteBook("r1", "Remote", 3)}

	merged, err := FetchMerged(context.Background(),
		source(nil, errors.New("connection refused")),
		source(remote, nil),
	)

	require.NoError(t, err)
	require.Len(t, merged.Books, 1)
	assert.Equal(t, "r1", merged.Books[0].ID)
	require.Len(t, merged.Warnings, 1)
	assert.Equal(t, entity.SourceLocal, merged.Warnings[0].Source)
}

func TestFetchMerged_RemoteFailureStillYieldsLocal(t *testing.T) {
	local := []entity.Book{book("l1", "Local", 4)}

	merged, err := FetchMerged(context.Background(),
		source(local, nil),
		source(nil, errors.New("timeout")),
	)

	require.NoError(t, err)
	require.Len(t, merged.Books, 1)
	require.Len(t, merged.Warnings, 1)
	assert.Equal(t, entity.SourceRemote, merged.Warnings[0].Source)
}

func TestFetchMerged_BothFail(t *testing.T) {
	_, err := FetchMerged(context.Background(),
		source(nil, errors.New("db down")),
		source(nil, errors.New("api down")),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "both catalog sources failed")
}

func TestFetchMerged_EmptySources(t *testing.T) {
	merged, err := FetchMerged(context.Background(), source(nil, nil), source(nil, nil))

	require.NoError(t, err)
	assert.Empty(t, merged.Books)
	assert.Empty(t, merged.Warnings)
}

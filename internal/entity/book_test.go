package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabeled_ZeroRatingGetsLabel(t *testing.T) {
	b := Book{ID: "b1", AverageRating: 0}.Labeled()
	assert.Equal(t, NoRatingsLabel, b.RatingLabel)
}

func TestLabeled_RatedBookKeepsEmptyLabel(t *testing.T) {
	b := Book{ID: "b1", AverageRating: 0.5}.Labeled()
	assert.Empty(t, b.RatingLabel)
}

func TestValidReadingStatus(t *testing.T) {
	for _, s := range []string{StatusCurrentlyReading, StatusCompleted, StatusPlanToRead, StatusOnHold} {
		assert.True(t, ValidReadingStatus(s), s)
	}
	for _, s := range []string{StatusFilterAll, "", "completed", "DROPPED"} {
		assert.False(t, ValidReadingStatus(s), s)
	}
}

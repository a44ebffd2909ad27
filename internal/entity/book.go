package entity

// Book source kinds. The two identity spaces are never reconciled: a book
// present in both sources keeps both entries.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Sentinels used when a source omits the field.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
)

// NoRatingsLabel is what a zero average renders as instead of "0.0/5".
const NoRatingsLabel = "No ratings yet"

// Book is the normalized shape shared by both catalog sources.
// AverageRating is derived, never stored: the mean of the rating rows for
// local books, or the remote API's own aggregate for remote ones. Zero means
// "no ratings yet", not a zero-star score.
type Book struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Description   string  `json:"description,omitempty"`
	ImageURL      *string `json:"image_url"`
	AverageRating float64 `json:"average_rating"`
	RatingLabel   string  `json:"rating_label,omitempty"`
	Status        string  `json:"status,omitempty"`
	Source        string  `json:"source"`
	IsFavorite    bool    `json:"is_favorite,omitempty"`
}

// Labeled returns the book with RatingLabel set for the zero-rating case.
func (b Book) Labeled() Book {
	if b.AverageRating == 0 {
		b.RatingLabel = NoRatingsLabel
	}
	return b
}

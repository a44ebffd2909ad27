package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookclub/internal/entity"
	"bookclub/internal/usecase"

	"golang.org/x/time/rate"
)

const defaultMaxResults = 40

// Client queries the Google Books volumes API. Read-only; the third party
// rate-limits by API key, so requests go through a local limiter as well.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	limiter    *rate.Limiter
}

func NewClient(baseURL, apiKey string, maxResults, rps int, timeout time.Duration) *Client {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		maxResults: maxResults,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// volumesResponse matches GET /volumes.
type volumesResponse struct {
	Items []volume `json:"items"`
}

type volume struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	AverageRating float64  `json:"averageRating"`
	ImageLinks    struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// Search queries volumes by free text and normalizes the result. A response
// without an items array is an empty result, not an error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]entity.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty search query", usecase.ErrValidation)
	}
	if maxResults <= 0 || maxResults > c.maxResults {
		maxResults = c.maxResults
	}

	u := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d&key=%s",
		c.baseURL, url.QueryEscape(query), maxResults, url.QueryEscape(c.apiKey))

	var res volumesResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrRemote, err)
	}

	books := make([]entity.Book, 0, len(res.Items))
	for _, item := range res.Items {
		books = append(books, normalize(item))
	}
	return books, nil
}

// GetVolume looks up a single volume by its remote identifier. A service
// error or empty payload is ErrNotFound: the caller has a fallback path, so
// this is recoverable rather than fatal. Timeouts count as misses too.
func (c *Client) GetVolume(ctx context.Context, id string) (entity.Book, error) {
	u := fmt.Sprintf("%s/volumes/%s?key=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(c.apiKey))

	var item volume
	if err := c.get(ctx, u, &item); err != nil {
		if isMiss(err) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, fmt.Errorf("%w: %v", usecase.ErrRemote, err)
	}
	if item.Error != nil || item.ID == "" {
		return entity.Book{}, usecase.ErrNotFound
	}
	return normalize(item), nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

// isMiss classifies errors on the single-volume path, where the caller has
// a local fallback. Any non-200 from the service counts, not just 404: a
// remote 5xx must not fail a detail view whose book may not even be remote.
// The search path keeps these as ErrRemote and degrades with a warning.
func isMiss(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

// normalize maps a volume onto the shared Book shape. Missing fields get
// the display sentinels; the remote aggregate stands in for an average.
func normalize(item volume) entity.Book {
	info := item.VolumeInfo

	title := info.Title
	if title == "" {
		title = entity.UnknownTitle
	}
	author := strings.Join(info.Authors, ", ")
	if author == "" {
		author = entity.UnknownAuthor
	}
	var imageURL *string
	if info.ImageLinks.Thumbnail != "" {
		u := info.ImageLinks.Thumbnail
		imageURL = &u
	}

	// The service's aggregate is not validated; clamp so every catalog
	// entry stays on the [0,5] scale the pipeline filters against.
	rating := info.AverageRating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	return entity.Book{
		ID:            item.ID,
		Title:         title,
		Author:        author,
		Description:   info.Description,
		ImageURL:      imageURL,
		AverageRating: rating,
		Source:        entity.SourceRemote,
	}.Labeled()
}

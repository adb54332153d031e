package study

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultNewsBaseURL = "https://newsapi.org/v2"

// NewsItem is one article for listening practice.
type NewsItem struct {
	Title    string
	Date     string
	Summary  string
	ImageURL string
	AudioURL string
}

// NewsClient fetches Japan-related articles. When the upstream API is
// unreachable it serves a small built-in set so the listening screen
// still has content.
type NewsClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	query      string
	language   string
	pageSize   int
	now        func() time.Time
}

// NewsOption configures a NewsClient.
type NewsOption func(*NewsClient)

// WithNewsBaseURL overrides the API base URL. Used in tests.
func WithNewsBaseURL(u string) NewsOption {
	return func(c *NewsClient) { c.baseURL = u }
}

// WithNewsQuery overrides the search topic.
func WithNewsQuery(q string) NewsOption {
	return func(c *NewsClient) { c.query = q }
}

// WithNewsClock overrides the time source for fallback articles.
func WithNewsClock(now func() time.Time) NewsOption {
	return func(c *NewsClient) { c.now = now }
}

// NewNewsClient creates a news client. apiKey may be empty, in which
// case every fetch serves the fallback set.
func NewNewsClient(apiKey string, opts ...NewsOption) *NewsClient {
	c := &NewsClient{
		httpClient: newHTTPClient(),
		baseURL:    defaultNewsBaseURL,
		apiKey:     apiKey,
		query:      "japan",
		language:   "en",
		pageSize:   5,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type newsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		PublishedAt string `json:"publishedAt"`
		Description string `json:"description"`
		URLToImage  string `json:"urlToImage"`
	} `json:"articles"`
}

// Fetch returns recent articles, falling back to built-in content on
// any failure. The error is returned alongside the fallback so callers
// can surface it without losing the screen.
func (c *NewsClient) Fetch(ctx context.Context) ([]NewsItem, error) {
	items, err := c.fetch(ctx)
	if err != nil {
		return c.fallback(), &ServiceError{Service: "news", Err: err}
	}
	return items, nil
}

func (c *NewsClient) fetch(ctx context.Context) ([]NewsItem, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no API key configured")
	}

	q := url.Values{}
	q.Set("q", c.query)
	q.Set("language", c.language)
	q.Set("pageSize", fmt.Sprint(c.pageSize))
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var payload newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := make([]NewsItem, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		item := NewsItem{
			Title:    a.Title,
			Date:     a.PublishedAt,
			Summary:  a.Description,
			ImageURL: a.URLToImage,
		}
		if item.Summary == "" {
			item.Summary = "No description available"
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *NewsClient) fallback() []NewsItem {
	now := c.now().UTC().Format(time.RFC3339)
	return []NewsItem{
		{
			Title:   "Japanese Language Study Tips",
			Date:    now,
			Summary: "Discover effective methods to learn Japanese faster.",
		},
		{
			Title:   "Japanese Culture Update",
			Date:    now,
			Summary: "Latest news about Japanese traditional festivals.",
		},
	}
}

package study

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"unicode/utf8"
)

const defaultKanjiBaseURL = "https://kanjiapi.dev/v1"

// KanjiInfo is the detail record for a single kanji character.
type KanjiInfo struct {
	Kanji       string   `json:"kanji"`
	Grade       int      `json:"grade"`
	StrokeCount int      `json:"stroke_count"`
	Meanings    []string `json:"meanings"`
	KunReadings []string `json:"kun_readings"`
	OnReadings  []string `json:"on_readings"`
	JLPT        int      `json:"jlpt"`
}

// KanjiClient looks up kanji details.
type KanjiClient struct {
	httpClient *http.Client
	baseURL    string
}

// KanjiOption configures a KanjiClient.
type KanjiOption func(*KanjiClient)

// WithKanjiBaseURL overrides the API base URL. Used in tests.
func WithKanjiBaseURL(u string) KanjiOption {
	return func(c *KanjiClient) { c.baseURL = u }
}

// NewKanjiClient creates a kanji lookup client.
func NewKanjiClient(opts ...KanjiOption) *KanjiClient {
	c := &KanjiClient{
		httpClient: newHTTPClient(),
		baseURL:    defaultKanjiBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsKanji reports whether s is exactly one character in the CJK
// unified ideograph range.
func IsKanji(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return false
	}
	return r >= 0x4E00 && r <= 0x9FAF
}

// Lookup fetches details for a single kanji character.
func (c *KanjiClient) Lookup(ctx context.Context, kanji string) (KanjiInfo, error) {
	if !IsKanji(kanji) {
		return KanjiInfo{}, &ServiceError{Service: "kanji", Err: fmt.Errorf("not a single kanji character: %q", kanji)}
	}

	u := fmt.Sprintf("%s/kanji/%s", c.baseURL, url.PathEscape(kanji))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return KanjiInfo{}, &ServiceError{Service: "kanji", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return KanjiInfo{}, &ServiceError{Service: "kanji", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return KanjiInfo{}, &ServiceError{Service: "kanji", Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	var info KanjiInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return KanjiInfo{}, &ServiceError{Service: "kanji", Err: fmt.Errorf("decode response: %w", err)}
	}
	return info, nil
}

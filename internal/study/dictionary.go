package study

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const defaultJishoBaseURL = "https://jisho.org/api/v1"

// maxDictionaryResults caps how many entries a search returns.
const maxDictionaryResults = 5

// DictionaryEntry is one dictionary result.
type DictionaryEntry struct {
	Slug         string
	Word         string
	Reading      string
	Definitions  []string
	PartOfSpeech string
}

// DictionaryClient searches the Jisho dictionary API.
type DictionaryClient struct {
	httpClient *http.Client
	baseURL    string
}

// DictionaryOption configures a DictionaryClient.
type DictionaryOption func(*DictionaryClient)

// WithDictionaryBaseURL overrides the API base URL. Used in tests.
func WithDictionaryBaseURL(u string) DictionaryOption {
	return func(c *DictionaryClient) { c.baseURL = u }
}

// WithDictionaryHTTPClient overrides the HTTP client.
func WithDictionaryHTTPClient(hc *http.Client) DictionaryOption {
	return func(c *DictionaryClient) { c.httpClient = hc }
}

// NewDictionaryClient creates a Jisho client.
func NewDictionaryClient(opts ...DictionaryOption) *DictionaryClient {
	c := &DictionaryClient{
		httpClient: newHTTPClient(),
		baseURL:    defaultJishoBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// jishoResponse mirrors the API payload shape.
type jishoResponse struct {
	Data []struct {
		Slug     string `json:"slug"`
		Japanese []struct {
			Word    string `json:"word"`
			Reading string `json:"reading"`
		} `json:"japanese"`
		Senses []struct {
			EnglishDefinitions []string `json:"english_definitions"`
			PartsOfSpeech      []string `json:"parts_of_speech"`
		} `json:"senses"`
	} `json:"data"`
}

// Search looks up term and returns at most five entries.
func (c *DictionaryClient) Search(ctx context.Context, term string) ([]DictionaryEntry, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, &ServiceError{Service: "dictionary", Err: fmt.Errorf("empty search term")}
	}

	u := fmt.Sprintf("%s/search/words?keyword=%s", c.baseURL, url.QueryEscape(term))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ServiceError{Service: "dictionary", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Service: "dictionary", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Service: "dictionary", Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	var payload jishoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ServiceError{Service: "dictionary", Err: fmt.Errorf("decode response: %w", err)}
	}

	entries := make([]DictionaryEntry, 0, maxDictionaryResults)
	for _, d := range payload.Data {
		if len(entries) == maxDictionaryResults {
			break
		}
		e := DictionaryEntry{Slug: d.Slug}
		if len(d.Japanese) > 0 {
			e.Word = d.Japanese[0].Word
			e.Reading = d.Japanese[0].Reading
			if e.Word == "" {
				e.Word = e.Reading
			}
		}
		for _, s := range d.Senses {
			e.Definitions = append(e.Definitions, s.EnglishDefinitions...)
			if e.PartOfSpeech == "" && len(s.PartsOfSpeech) > 0 {
				e.PartOfSpeech = s.PartsOfSpeech[0]
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

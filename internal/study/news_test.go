package study

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "japan" || q.Get("language") != "en" || q.Get("pageSize") != "5" {
			t.Errorf("query: %v", q)
		}
		if q.Get("apiKey") != "test-key" {
			t.Errorf("apiKey: %q", q.Get("apiKey"))
		}
		w.Write([]byte(`{
			"articles": [
				{"title": "First", "publishedAt": "2026-03-01T00:00:00Z", "description": "d1", "urlToImage": "u1"},
				{"title": "Second", "publishedAt": "2026-03-02T00:00:00Z", "description": ""}
			]
		}`))
	}))
	defer srv.Close()

	c := NewNewsClient("test-key", WithNewsBaseURL(srv.URL))
	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].Title != "First" || items[0].Summary != "d1" {
		t.Errorf("first item: %+v", items[0])
	}
	if items[1].Summary != "No description available" {
		t.Errorf("empty description: %q", items[1].Summary)
	}
}

func TestNewsFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewNewsClient("bad-key", WithNewsBaseURL(srv.URL), WithNewsClock(func() time.Time { return now }))

	items, err := c.Fetch(context.Background())
	if err == nil {
		t.Error("want error alongside fallback")
	}
	if len(items) != 2 {
		t.Fatalf("want 2 fallback items, got %d", len(items))
	}
	if items[0].Title != "Japanese Language Study Tips" {
		t.Errorf("fallback title: %q", items[0].Title)
	}
	if items[0].Date != "2026-03-01T00:00:00Z" {
		t.Errorf("fallback date: %q", items[0].Date)
	}
}

func TestNewsFallbackWithoutKey(t *testing.T) {
	c := NewNewsClient("")
	items, err := c.Fetch(context.Background())
	if err == nil {
		t.Error("want error without key")
	}
	if len(items) != 2 {
		t.Errorf("want fallback items, got %d", len(items))
	}
}

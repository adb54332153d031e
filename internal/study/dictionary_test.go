package study

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const jishoPayload = `{
  "data": [
    {
      "slug": "水",
      "japanese": [{"word": "水", "reading": "みず"}],
      "senses": [{"english_definitions": ["water"], "parts_of_speech": ["Noun"]}]
    },
    {
      "slug": "みず-2",
      "japanese": [{"reading": "みず"}],
      "senses": [{"english_definitions": ["cold water"], "parts_of_speech": []}]
    },
    {"slug": "a", "japanese": [{"word": "a"}], "senses": []},
    {"slug": "b", "japanese": [{"word": "b"}], "senses": []},
    {"slug": "c", "japanese": [{"word": "c"}], "senses": []},
    {"slug": "d", "japanese": [{"word": "d"}], "senses": []},
    {"slug": "e", "japanese": [{"word": "e"}], "senses": []}
  ]
}`

func TestDictionarySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("keyword"); got != "水" {
			t.Errorf("keyword: got %q", got)
		}
		w.Write([]byte(jishoPayload))
	}))
	defer srv.Close()

	c := NewDictionaryClient(WithDictionaryBaseURL(srv.URL))
	entries, err := c.Search(context.Background(), "水")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("want 5 entries (capped), got %d", len(entries))
	}

	first := entries[0]
	if first.Word != "水" || first.Reading != "みず" {
		t.Errorf("first entry: %+v", first)
	}
	if len(first.Definitions) != 1 || first.Definitions[0] != "water" {
		t.Errorf("definitions: %v", first.Definitions)
	}
	if first.PartOfSpeech != "Noun" {
		t.Errorf("part of speech: %q", first.PartOfSpeech)
	}

	// Kana-only entries use the reading as the headword.
	if entries[1].Word != "みず" {
		t.Errorf("kana-only entry word: %q", entries[1].Word)
	}
}

func TestDictionarySearchEmptyTerm(t *testing.T) {
	c := NewDictionaryClient()
	if _, err := c.Search(context.Background(), "  "); err == nil {
		t.Error("want error for empty term")
	}
}

func TestDictionarySearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewDictionaryClient(WithDictionaryBaseURL(srv.URL))
	if _, err := c.Search(context.Background(), "水"); err == nil {
		t.Error("want error on 500")
	}
}

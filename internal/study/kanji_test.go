package study

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestKanjiLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/kanji/水" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"kanji": "水",
			"grade": 1,
			"stroke_count": 4,
			"meanings": ["water"],
			"kun_readings": ["みず"],
			"on_readings": ["スイ"],
			"jlpt": 4
		}`))
	}))
	defer srv.Close()

	c := NewKanjiClient(WithKanjiBaseURL(srv.URL))
	info, err := c.Lookup(context.Background(), "水")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.Kanji != "水" || info.StrokeCount != 4 {
		t.Errorf("info: %+v", info)
	}
	if len(info.Meanings) != 1 || info.Meanings[0] != "water" {
		t.Errorf("meanings: %v", info.Meanings)
	}
}

func TestKanjiLookupRejectsNonKanji(t *testing.T) {
	c := NewKanjiClient()
	for _, bad := range []string{"", "ab", "水水", "み", "a"} {
		if _, err := c.Lookup(context.Background(), bad); err == nil {
			t.Errorf("%q: want error", bad)
		}
	}
}

func TestIsKanji(t *testing.T) {
	cases := map[string]bool{
		"水":  true,
		"日":  true,
		"み":  false,
		"a":  false,
		"":   false,
		"水日": false,
	}
	for in, want := range cases {
		if got := IsKanji(in); got != want {
			t.Errorf("IsKanji(%q) = %v, want %v", in, got, want)
		}
	}
}

package game

import (
	"context"
	"errors"
	"testing"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/history"
	"github.com/kdnguyen/gogaku/internal/store"
)

func sentenceBank() []catalog.SentenceChallenge {
	return []catalog.SentenceChallenge{
		{
			ID:           1,
			Words:        []string{"b", "a", "c"},
			CorrectOrder: []int{1, 0, 2}, // a b c
			English:      "abc",
			Explanation:  "order",
		},
		{
			ID:           2,
			Words:        []string{"y", "x"},
			CorrectOrder: []int{1, 0}, // x y
			English:      "xy",
		},
	}
}

// buildArrangement selects words from the pool in the given target
// order.
func buildArrangement(t *testing.T, s *Sentence, target []string) {
	t.Helper()
	for _, w := range target {
		found := false
		for i, avail := range s.Available() {
			if avail == w {
				if err := s.Select(i); err != nil {
					t.Fatalf("Select(%d): %v", i, err)
				}
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("word %q not in pool %v", w, s.Available())
		}
	}
}

// correctOrderOf resolves a challenge's correct word sequence.
func correctOrderOf(c catalog.SentenceChallenge) []string {
	out := make([]string, len(c.CorrectOrder))
	for i, idx := range c.CorrectOrder {
		out[i] = c.Words[idx]
	}
	return out
}

func TestSentencePlayThrough(t *testing.T) {
	s, err := NewSentence(sentenceBank(), testRNG())
	if err != nil {
		t.Fatalf("NewSentence: %v", err)
	}
	if s.Total() != 2 {
		t.Fatalf("total: want 2, got %d", s.Total())
	}

	for !s.Complete() {
		cur, err := s.Current()
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		buildArrangement(t, s, correctOrderOf(cur))
		res, err := s.SubmitArrangement()
		if err != nil {
			t.Fatalf("SubmitArrangement: %v", err)
		}
		if !res.Correct {
			t.Errorf("correct arrangement graded wrong: %v", s.Selected())
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if s.Score() != 2 {
		t.Errorf("score: want 2, got %d", s.Score())
	}
}

func TestSentenceWrongOrder(t *testing.T) {
	bank := []catalog.SentenceChallenge{{
		ID:           1,
		Words:        []string{"a", "b"},
		CorrectOrder: []int{0, 1},
		English:      "ab",
	}}
	s, err := NewSentence(bank, testRNG())
	if err != nil {
		t.Fatal(err)
	}
	buildArrangement(t, s, []string{"b", "a"})
	res, err := s.SubmitArrangement()
	if err != nil {
		t.Fatal(err)
	}
	if res.Correct {
		t.Error("wrong order graded correct")
	}
	if s.Score() != 0 {
		t.Errorf("score: want 0, got %d", s.Score())
	}
}

func TestSentenceIncompleteArrangement(t *testing.T) {
	s, err := NewSentence(sentenceBank(), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Select(0); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitArrangement(); !errors.Is(err, ErrIncompleteArrangement) {
		t.Errorf("partial arrangement: got %v", err)
	}
}

func TestSentenceUnselect(t *testing.T) {
	s, err := NewSentence(sentenceBank(), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	cur, _ := s.Current()
	poolSize := len(cur.Words)

	if err := s.Select(0); err != nil {
		t.Fatal(err)
	}
	if len(s.Selected()) != 1 || len(s.Available()) != poolSize-1 {
		t.Fatalf("after select: %d selected, %d available", len(s.Selected()), len(s.Available()))
	}
	word := s.Selected()[0]
	if err := s.Unselect(0); err != nil {
		t.Fatalf("Unselect: %v", err)
	}
	if len(s.Selected()) != 0 || len(s.Available()) != poolSize {
		t.Errorf("after unselect: %d selected, %d available", len(s.Selected()), len(s.Available()))
	}
	found := false
	for _, w := range s.Available() {
		if w == word {
			found = true
		}
	}
	if !found {
		t.Errorf("word %q did not return to pool", word)
	}
}

func TestSentenceClearArrangement(t *testing.T) {
	s, err := NewSentence(sentenceBank(), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	cur, _ := s.Current()
	if err := s.Select(0); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearArrangement(); err != nil {
		t.Fatalf("ClearArrangement: %v", err)
	}
	if len(s.Selected()) != 0 || len(s.Available()) != len(cur.Words) {
		t.Errorf("after clear: %d selected, %d available", len(s.Selected()), len(s.Available()))
	}
}

func TestSentenceReset(t *testing.T) {
	s, err := NewSentence(sentenceBank(), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	cur, _ := s.Current()
	buildArrangement(t, s, correctOrderOf(cur))
	if _, err := s.SubmitArrangement(); err != nil {
		t.Fatal(err)
	}

	s.Reset()
	if s.Score() != 0 || s.Index() != 0 || s.Complete() {
		t.Errorf("after reset: score=%d index=%d complete=%v", s.Score(), s.Index(), s.Complete())
	}
}

func TestSentenceFinish(t *testing.T) {
	ctx := context.Background()
	s, err := NewSentence(sentenceBank(), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	svc := history.NewService(store.NewMemKV())

	for !s.Complete() {
		cur, _ := s.Current()
		buildArrangement(t, s, correctOrderOf(cur))
		if _, err := s.SubmitArrangement(); err != nil {
			t.Fatal(err)
		}
		if err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := s.Finish(ctx, svc, 3)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if rec.Title != "Completed Sentence Building Game" || rec.Icon != "BookOpen" {
		t.Errorf("record: title=%q icon=%q", rec.Title, rec.Icon)
	}
}

package game

import (
	"errors"
	"testing"

	"github.com/kdnguyen/gogaku/internal/catalog"
)

func cardBank(n int) []catalog.VocabularyCard {
	bank := make([]catalog.VocabularyCard, n)
	for i := range bank {
		bank[i] = catalog.VocabularyCard{
			ID:       i + 1,
			Kanji:    "字",
			Hiragana: "じ",
			English:  "character",
			Level:    "N5",
		}
	}
	return bank
}

func TestFlashcardsFlipAndMark(t *testing.T) {
	f, err := NewFlashcards(cardBank(5), testRNG())
	if err != nil {
		t.Fatalf("NewFlashcards: %v", err)
	}
	if f.Flipped() {
		t.Error("new card starts face down")
	}

	if err := f.MarkKnown(); !errors.Is(err, ErrNotFlipped) {
		t.Errorf("mark before flip: got %v", err)
	}

	first := f.Current().ID
	f.Flip()
	if !f.Flipped() {
		t.Error("card not flipped")
	}
	if err := f.MarkKnown(); err != nil {
		t.Fatalf("MarkKnown: %v", err)
	}
	if !f.Known(first) {
		t.Error("card not filed as known")
	}
	if f.KnownCount() != 1 || f.StudyingCount() != 0 {
		t.Errorf("counts: known=%d studying=%d", f.KnownCount(), f.StudyingCount())
	}
	if f.Index() != 1 {
		t.Errorf("index after mark: want 1, got %d", f.Index())
	}
	if f.Flipped() {
		t.Error("next card should start face down")
	}

	second := f.Current().ID
	f.Flip()
	if err := f.MarkStudying(); err != nil {
		t.Fatalf("MarkStudying: %v", err)
	}
	if !f.Studying(second) {
		t.Error("card not filed as studying")
	}
}

func TestFlashcardsNavigationClamps(t *testing.T) {
	f, err := NewFlashcards(cardBank(2), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	f.Prev()
	if f.Index() != 0 {
		t.Errorf("prev at start: index %d", f.Index())
	}
	f.Next()
	if f.Index() != 1 {
		t.Errorf("next: index %d", f.Index())
	}
	f.Next()
	if f.Index() != 1 {
		t.Errorf("next at end: index %d", f.Index())
	}
}

func TestFlashcardsNavigationResetsFlip(t *testing.T) {
	f, err := NewFlashcards(cardBank(3), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	f.Flip()
	f.Next()
	if f.Flipped() {
		t.Error("flip survives Next")
	}
	f.Flip()
	f.Prev()
	if f.Flipped() {
		t.Error("flip survives Prev")
	}
}

func TestFlashcardsReset(t *testing.T) {
	f, err := NewFlashcards(cardBank(4), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	f.Flip()
	if err := f.MarkKnown(); err != nil {
		t.Fatal(err)
	}
	f.Flip()
	if err := f.MarkStudying(); err != nil {
		t.Fatal(err)
	}

	f.Reset()
	if f.KnownCount() != 0 || f.StudyingCount() != 0 {
		t.Errorf("sets survive reset: known=%d studying=%d", f.KnownCount(), f.StudyingCount())
	}
	if f.Index() != 0 || f.Flipped() {
		t.Errorf("after reset: index=%d flipped=%v", f.Index(), f.Flipped())
	}
	if f.Total() != 4 {
		t.Errorf("total after reset: %d", f.Total())
	}
}

func TestFlashcardsMarkTwiceCountsOnce(t *testing.T) {
	f, err := NewFlashcards(cardBank(1), testRNG())
	if err != nil {
		t.Fatal(err)
	}
	f.Flip()
	if err := f.MarkKnown(); err != nil {
		t.Fatal(err)
	}
	// Single-card deck: the mark stays on the same card, which is
	// still face up because there was nowhere to advance.
	if err := f.MarkKnown(); err != nil {
		t.Fatal(err)
	}
	if f.KnownCount() != 1 {
		t.Errorf("known count: want 1, got %d", f.KnownCount())
	}
}

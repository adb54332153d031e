package game

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kdnguyen/gogaku/internal/catalog"
)

// Flashcards is a vocabulary review session. Cards are graded into
// "known" and "studying" sets; nothing is written to history.
type Flashcards struct {
	id       string
	rng      *rand.Rand
	bank     []catalog.VocabularyCard
	deck     []catalog.VocabularyCard
	index    int
	flipped  bool
	known    map[int]bool
	studying map[int]bool
}

// NewFlashcards shuffles the whole bank into a deck.
func NewFlashcards(bank []catalog.VocabularyCard, rng *rand.Rand) (*Flashcards, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyDeck
	}
	f := &Flashcards{
		id:   uuid.NewString(),
		rng:  newRNG(rng),
		bank: bank,
	}
	f.deal()
	return f, nil
}

func (f *Flashcards) deal() {
	f.deck = shuffled(f.rng, f.bank)
	f.index = 0
	f.flipped = false
	f.known = make(map[int]bool)
	f.studying = make(map[int]bool)
}

// ID identifies this session.
func (f *Flashcards) ID() string { return f.id }

// Current returns the card being studied.
func (f *Flashcards) Current() catalog.VocabularyCard { return f.deck[f.index] }

// Flipped reports whether the current card shows its back.
func (f *Flashcards) Flipped() bool { return f.flipped }

// Flip turns the current card over.
func (f *Flashcards) Flip() { f.flipped = !f.flipped }

// MarkKnown files the current card as known and moves on. The card
// must be flipped so the answer was actually seen.
func (f *Flashcards) MarkKnown() error {
	if !f.flipped {
		return ErrNotFlipped
	}
	f.known[f.Current().ID] = true
	f.Next()
	return nil
}

// MarkStudying files the current card for more review and moves on.
func (f *Flashcards) MarkStudying() error {
	if !f.flipped {
		return ErrNotFlipped
	}
	f.studying[f.Current().ID] = true
	f.Next()
	return nil
}

// Next moves to the following card face down. At the end of the deck it
// stays put.
func (f *Flashcards) Next() {
	if f.index < len(f.deck)-1 {
		f.index++
		f.flipped = false
	}
}

// Prev moves to the previous card face down. At the start it stays put.
func (f *Flashcards) Prev() {
	if f.index > 0 {
		f.index--
		f.flipped = false
	}
}

// Reset reshuffles the deck and clears both graded sets.
func (f *Flashcards) Reset() { f.deal() }

// Index is the zero-based position in the deck.
func (f *Flashcards) Index() int { return f.index }

// Total is the deck size.
func (f *Flashcards) Total() int { return len(f.deck) }

// KnownCount is how many cards are filed as known.
func (f *Flashcards) KnownCount() int { return len(f.known) }

// StudyingCount is how many cards are filed for more review.
func (f *Flashcards) StudyingCount() int { return len(f.studying) }

// Known reports whether the card with the given ID is filed as known.
func (f *Flashcards) Known(cardID int) bool { return f.known[cardID] }

// Studying reports whether the card with the given ID is filed for more
// review.
func (f *Flashcards) Studying(cardID int) bool { return f.studying[cardID] }

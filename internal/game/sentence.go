package game

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/history"
)

// SentenceDeckSize is how many challenges one session samples.
const SentenceDeckSize = 10

// Sentence is a word-ordering session. The player moves words from the
// available pool into an arrangement, then submits it for grading.
type Sentence struct {
	id        string
	rng       *rand.Rand
	bank      []catalog.SentenceChallenge
	deck      []catalog.SentenceChallenge
	index     int
	score     int
	available []string
	selected  []string
	answered  bool
	complete  bool
}

// NewSentence samples up to SentenceDeckSize challenges from bank.
func NewSentence(bank []catalog.SentenceChallenge, rng *rand.Rand) (*Sentence, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyDeck
	}
	s := &Sentence{
		id:   uuid.NewString(),
		rng:  newRNG(rng),
		bank: bank,
	}
	s.deal()
	return s, nil
}

func (s *Sentence) deal() {
	s.deck = sample(s.rng, s.bank, SentenceDeckSize)
	s.index = 0
	s.score = 0
	s.complete = false
	s.prepare()
}

// prepare shuffles the current challenge's words into the pool.
func (s *Sentence) prepare() {
	cur := s.deck[s.index]
	s.available = shuffled(s.rng, cur.Words)
	s.selected = nil
	s.answered = false
}

// ID identifies this session.
func (s *Sentence) ID() string { return s.id }

// Current returns the challenge being built.
func (s *Sentence) Current() (catalog.SentenceChallenge, error) {
	if s.complete {
		return catalog.SentenceChallenge{}, ErrComplete
	}
	return s.deck[s.index], nil
}

// Available is the unplaced word pool in display order.
func (s *Sentence) Available() []string { return s.available }

// Selected is the arrangement built so far.
func (s *Sentence) Selected() []string { return s.selected }

// Select moves the available word at index i to the end of the
// arrangement.
func (s *Sentence) Select(i int) error {
	if s.complete {
		return ErrComplete
	}
	if s.answered {
		return ErrAlreadyAnswered
	}
	if i < 0 || i >= len(s.available) {
		return ErrIncompleteArrangement
	}
	s.selected = append(s.selected, s.available[i])
	s.available = append(s.available[:i], s.available[i+1:]...)
	return nil
}

// Unselect returns the arranged word at index i to the pool.
func (s *Sentence) Unselect(i int) error {
	if s.complete {
		return ErrComplete
	}
	if s.answered {
		return ErrAlreadyAnswered
	}
	if i < 0 || i >= len(s.selected) {
		return ErrIncompleteArrangement
	}
	s.available = append(s.available, s.selected[i])
	s.selected = append(s.selected[:i], s.selected[i+1:]...)
	return nil
}

// ClearArrangement reshuffles the current challenge's words back into
// the pool.
func (s *Sentence) ClearArrangement() error {
	if s.complete {
		return ErrComplete
	}
	if s.answered {
		return ErrAlreadyAnswered
	}
	s.prepare()
	return nil
}

// SubmitArrangement grades the arrangement. Every word must be placed.
// The arrangement is correct when each position holds the word the
// challenge's order calls for.
func (s *Sentence) SubmitArrangement() (AnswerResult, error) {
	if s.complete {
		return AnswerResult{}, ErrComplete
	}
	if s.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}
	cur := s.deck[s.index]
	if len(s.selected) != len(cur.Words) {
		return AnswerResult{}, ErrIncompleteArrangement
	}

	correct := true
	for i, wordIdx := range cur.CorrectOrder {
		if s.selected[i] != cur.Words[wordIdx] {
			correct = false
			break
		}
	}
	s.answered = true
	if correct {
		s.score++
	}
	return AnswerResult{Correct: correct, Explanation: cur.Explanation}, nil
}

// Advance moves to the next challenge, completing the session after the
// last one.
func (s *Sentence) Advance() error {
	if s.complete {
		return ErrComplete
	}
	if !s.answered {
		return ErrNotAnswered
	}
	s.index++
	if s.index >= len(s.deck) {
		s.complete = true
		return nil
	}
	s.prepare()
	return nil
}

// Reset deals a fresh deck and zeroes the score.
func (s *Sentence) Reset() { s.deal() }

// Index is the zero-based position in the deck.
func (s *Sentence) Index() int { return s.index }

// Score is the number of correct sentences so far.
func (s *Sentence) Score() int { return s.score }

// Total is the deck size.
func (s *Sentence) Total() int { return len(s.deck) }

// Complete reports whether every challenge has been graded.
func (s *Sentence) Complete() bool { return s.complete }

// Finish saves the completed session to the user's history.
func (s *Sentence) Finish(ctx context.Context, rec Recorder, userID int64) (history.Record, error) {
	if !s.complete {
		return history.Record{}, ErrNotAnswered
	}
	return rec.Record(ctx, userID, history.Entry{
		Type:  "SentenceBuilding",
		Title: "Completed Sentence Building Game",
		Icon:  "BookOpen",
		Score: s.score,
		Total: len(s.deck),
	})
}

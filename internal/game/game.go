// Package game holds the session state machines for the four study
// games. Each game is a plain in-memory machine; nothing is persisted
// until a finished game's Entry is handed to the history service.
package game

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/kdnguyen/gogaku/internal/history"
)

var (
	// ErrEmptyDeck means the content bank had nothing to play with.
	ErrEmptyDeck = errors.New("no content available")
	// ErrComplete means the session is over and only Reset applies.
	ErrComplete = errors.New("session is complete")
	// ErrAlreadyAnswered means the current item was already resolved.
	ErrAlreadyAnswered = errors.New("already answered")
	// ErrNotAnswered means Advance was called before an answer.
	ErrNotAnswered = errors.New("answer first")
	// ErrIncompleteArrangement means not every word was placed.
	ErrIncompleteArrangement = errors.New("arrangement is incomplete")
	// ErrNotFlipped means the card must be flipped before grading.
	ErrNotFlipped = errors.New("flip the card first")
)

// AnswerResult reports how a single answer was graded.
type AnswerResult struct {
	Correct     bool
	Explanation string
}

// Recorder saves a finished game. *history.Service implements it.
type Recorder interface {
	Record(ctx context.Context, userID int64, e history.Entry) (history.Record, error)
}

// sample returns up to n elements of src in random order without
// mutating src.
func sample[T any](rng *rand.Rand, src []T, n int) []T {
	out := make([]T, len(src))
	copy(out, src)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// shuffled returns a shuffled copy of src.
func shuffled[T any](rng *rand.Rand, src []T) []T {
	return sample(rng, src, len(src))
}

func newRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

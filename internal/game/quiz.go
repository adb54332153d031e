package game

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/history"
)

// QuizDeckSize is how many questions one quiz session samples.
const QuizDeckSize = 10

// Quiz is a multiple-choice session over a sampled deck of questions.
type Quiz struct {
	id       string
	rng      *rand.Rand
	bank     []catalog.Question
	deck     []catalog.Question
	index    int
	score    int
	answered bool
	choice   int
	complete bool
}

// NewQuiz samples up to QuizDeckSize questions from bank. Pass a nil
// rng for real randomness.
func NewQuiz(bank []catalog.Question, rng *rand.Rand) (*Quiz, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyDeck
	}
	q := &Quiz{
		id:   uuid.NewString(),
		rng:  newRNG(rng),
		bank: bank,
	}
	q.deal()
	return q, nil
}

func (q *Quiz) deal() {
	q.deck = sample(q.rng, q.bank, QuizDeckSize)
	q.index = 0
	q.score = 0
	q.answered = false
	q.complete = false
}

// ID identifies this session.
func (q *Quiz) ID() string { return q.id }

// Current returns the question being asked.
func (q *Quiz) Current() (catalog.Question, error) {
	if q.complete {
		return catalog.Question{}, ErrComplete
	}
	return q.deck[q.index], nil
}

// Submit grades choice against the current question. A question can
// only be answered once.
func (q *Quiz) Submit(choice int) (AnswerResult, error) {
	if q.complete {
		return AnswerResult{}, ErrComplete
	}
	if q.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}
	cur := q.deck[q.index]
	q.answered = true
	q.choice = choice
	res := AnswerResult{
		Correct:     choice == cur.CorrectAnswer,
		Explanation: cur.Explanation,
	}
	if res.Correct {
		q.score++
	}
	return res, nil
}

// Advance moves to the next question, completing the session after the
// last one.
func (q *Quiz) Advance() error {
	if q.complete {
		return ErrComplete
	}
	if !q.answered {
		return ErrNotAnswered
	}
	q.answered = false
	q.index++
	if q.index >= len(q.deck) {
		q.complete = true
	}
	return nil
}

// Reset deals a fresh deck and zeroes the score.
func (q *Quiz) Reset() { q.deal() }

// Choice returns the submitted answer for the current question.
func (q *Quiz) Choice() (int, bool) { return q.choice, q.answered }

// Index is the zero-based position in the deck.
func (q *Quiz) Index() int { return q.index }

// Score is the number of correct answers so far.
func (q *Quiz) Score() int { return q.score }

// Total is the deck size.
func (q *Quiz) Total() int { return len(q.deck) }

// Complete reports whether every question has been answered.
func (q *Quiz) Complete() bool { return q.complete }

// Finish saves the completed session to the user's history.
func (q *Quiz) Finish(ctx context.Context, rec Recorder, userID int64) (history.Record, error) {
	if !q.complete {
		return history.Record{}, ErrNotAnswered
	}
	return rec.Record(ctx, userID, history.Entry{
		Type:  "MultipleChoice",
		Title: "Completed Multiple Choice Game",
		Icon:  "BookOpen",
		Score: q.score,
		Total: len(q.deck),
	})
}

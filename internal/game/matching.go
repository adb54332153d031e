package game

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kdnguyen/gogaku/internal/catalog"
	"github.com/kdnguyen/gogaku/internal/history"
)

const (
	// MatchingRounds is how many rounds one session plays.
	MatchingRounds = 2
	// PairsPerRound is how many pairs each round samples.
	PairsPerRound = 5
)

// Matching is a pair-matching session: grammar patterns on the left,
// example sentences on the right, each round sampled fresh from the
// bank. A correct match locks both sides; the score carries across
// rounds.
type Matching struct {
	id    string
	rng   *rand.Rand
	bank  []catalog.MatchingPair
	round int
	score int

	left     []catalog.MatchingPair
	right    []catalog.MatchingPair
	matched  map[int]bool // pair ID -> locked
	selLeft  int          // index into left, -1 when none
	selRight int

	roundDone bool
	complete  bool
}

// NewMatching starts round one. The bank must hold at least
// PairsPerRound pairs.
func NewMatching(bank []catalog.MatchingPair, rng *rand.Rand) (*Matching, error) {
	if len(bank) < PairsPerRound {
		return nil, ErrEmptyDeck
	}
	m := &Matching{
		id:    uuid.NewString(),
		rng:   newRNG(rng),
		bank:  bank,
		round: 1,
	}
	m.deal()
	return m, nil
}

// deal samples a fresh set of pairs and shuffles each column
// independently.
func (m *Matching) deal() {
	pairs := sample(m.rng, m.bank, PairsPerRound)
	m.left = shuffled(m.rng, pairs)
	m.right = shuffled(m.rng, pairs)
	m.matched = make(map[int]bool, PairsPerRound)
	m.selLeft = -1
	m.selRight = -1
	m.roundDone = false
}

// ID identifies this session.
func (m *Matching) ID() string { return m.id }

// Left is the grammar column for this round.
func (m *Matching) Left() []catalog.MatchingPair { return m.left }

// Right is the example column for this round.
func (m *Matching) Right() []catalog.MatchingPair { return m.right }

// Matched reports whether the pair with the given ID is locked.
func (m *Matching) Matched(pairID int) bool { return m.matched[pairID] }

// SelectedLeft returns the selected left index, -1 when none.
func (m *Matching) SelectedLeft() int { return m.selLeft }

// SelectedRight returns the selected right index, -1 when none.
func (m *Matching) SelectedRight() int { return m.selRight }

// SelectLeft picks the left item at index i. Selecting a locked item is
// a no-op. When a right item is already selected the match resolves.
func (m *Matching) SelectLeft(i int) (AnswerResult, bool, error) {
	if m.complete {
		return AnswerResult{}, false, ErrComplete
	}
	if i < 0 || i >= len(m.left) || m.matched[m.left[i].ID] {
		return AnswerResult{}, false, nil
	}
	m.selLeft = i
	if m.selRight >= 0 {
		return m.resolve(), true, nil
	}
	return AnswerResult{}, false, nil
}

// SelectRight picks the right item at index i, resolving the match when
// a left item is already selected.
func (m *Matching) SelectRight(i int) (AnswerResult, bool, error) {
	if m.complete {
		return AnswerResult{}, false, ErrComplete
	}
	if i < 0 || i >= len(m.right) || m.matched[m.right[i].ID] {
		return AnswerResult{}, false, nil
	}
	m.selRight = i
	if m.selLeft >= 0 {
		return m.resolve(), true, nil
	}
	return AnswerResult{}, false, nil
}

// resolve grades the selected pair. Either way both selections clear.
func (m *Matching) resolve() AnswerResult {
	l := m.left[m.selLeft]
	r := m.right[m.selRight]
	m.selLeft = -1
	m.selRight = -1

	if l.ID != r.ID {
		return AnswerResult{Correct: false}
	}
	m.matched[l.ID] = true
	m.score++
	if len(m.matched) == len(m.left) {
		m.roundDone = true
	}
	return AnswerResult{Correct: true, Explanation: l.Translation}
}

// RoundDone reports whether every pair in this round is matched.
func (m *Matching) RoundDone() bool { return m.roundDone }

// Round is the 1-based round number.
func (m *Matching) Round() int { return m.round }

// AdvanceRound starts the next round, or completes the session after
// the final round.
func (m *Matching) AdvanceRound() error {
	if m.complete {
		return ErrComplete
	}
	if !m.roundDone {
		return ErrNotAnswered
	}
	if m.round >= MatchingRounds {
		m.complete = true
		return nil
	}
	m.round++
	m.deal()
	return nil
}

// ResetRound redeals the current round. The score already earned is
// kept.
func (m *Matching) ResetRound() error {
	if m.complete {
		return ErrComplete
	}
	m.deal()
	return nil
}

// Score is the number of correct matches so far.
func (m *Matching) Score() int { return m.score }

// Total is the number of pairs across all rounds.
func (m *Matching) Total() int { return MatchingRounds * PairsPerRound }

// Complete reports whether both rounds are finished.
func (m *Matching) Complete() bool { return m.complete }

// Finish saves the completed session to the user's history.
func (m *Matching) Finish(ctx context.Context, rec Recorder, userID int64) (history.Record, error) {
	if !m.complete {
		return history.Record{}, ErrNotAnswered
	}
	return rec.Record(ctx, userID, history.Entry{
		Type:  "WordMatching",
		Title: "Completed Word Matching Game",
		Icon:  "LayoutGrid",
		Score: m.score,
		Total: m.Total(),
	})
}

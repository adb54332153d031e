package study

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Recorder captures audio for pronunciation practice.
type Recorder interface {
	Start(ctx context.Context) error
	// Stop ends the capture and returns the recorded audio.
	Stop(ctx context.Context) ([]byte, error)
}

// PronunciationScorer grades a recording of the given sentence on a
// 0-99 scale.
type PronunciationScorer interface {
	Score(ctx context.Context, audio []byte, sentence string) (int, error)
}

// RandomScorer assigns uniform random scores. Stands in until a real
// speech-assessment backend is wired up.
type RandomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomScorer creates a scorer. Pass a nil rng for real randomness.
func NewRandomScorer(rng *rand.Rand) *RandomScorer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandomScorer{rng: rng}
}

// Score returns a uniform score in [0, 100).
func (s *RandomScorer) Score(_ context.Context, _ []byte, _ string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(100), nil
}

// PracticeSession runs pronunciation practice over a list of sentences,
// tracking the best-known score per sentence. Recording and playback
// are mutually exclusive: starting a recording stops the player.
type PracticeSession struct {
	recorder Recorder
	scorer   PronunciationScorer
	player   *Player

	mu        sync.Mutex
	recording bool
	scores    map[int]int
	sentences []string
	current   int
}

// NewPracticeSession creates a session over sentences. player may be
// nil when no playback is available.
func NewPracticeSession(recorder Recorder, scorer PronunciationScorer, player *Player, sentences []string) (*PracticeSession, error) {
	if len(sentences) == 0 {
		return nil, &ServiceError{Service: "recording", Err: fmt.Errorf("no sentences to practice")}
	}
	return &PracticeSession{
		recorder:  recorder,
		scorer:    scorer,
		player:    player,
		scores:    make(map[int]int),
		sentences: sentences,
	}, nil
}

// Sentence returns the sentence currently being practiced.
func (ps *PracticeSession) Sentence() string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.sentences[ps.current]
}

// Next advances to the following sentence, wrapping at the end.
func (ps *PracticeSession) Next() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.current = (ps.current + 1) % len(ps.sentences)
}

// Recording reports whether a capture is in flight.
func (ps *PracticeSession) Recording() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.recording
}

// StartRecording begins capturing audio, stopping playback first.
func (ps *PracticeSession) StartRecording(ctx context.Context) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.recording {
		return &ServiceError{Service: "recording", Err: fmt.Errorf("already recording")}
	}
	if ps.player != nil {
		if err := ps.player.Stop(); err != nil {
			return err
		}
	}
	if err := ps.recorder.Start(ctx); err != nil {
		return &ServiceError{Service: "recording", Err: err}
	}
	ps.recording = true
	return nil
}

// StopRecording ends the capture, scores it against the current
// sentence, and stores the score.
func (ps *PracticeSession) StopRecording(ctx context.Context) (int, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if !ps.recording {
		return 0, &ServiceError{Service: "recording", Err: fmt.Errorf("not recording")}
	}
	ps.recording = false

	audio, err := ps.recorder.Stop(ctx)
	if err != nil {
		return 0, &ServiceError{Service: "recording", Err: err}
	}

	score, err := ps.scorer.Score(ctx, audio, ps.sentences[ps.current])
	if err != nil {
		return 0, &ServiceError{Service: "recording", Err: err}
	}
	ps.scores[ps.current] = score
	return score, nil
}

// Scores returns the recorded score per sentence index.
func (ps *PracticeSession) Scores() map[int]int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make(map[int]int, len(ps.scores))
	for k, v := range ps.scores {
		out[k] = v
	}
	return out
}

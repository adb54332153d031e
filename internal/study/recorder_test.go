package study

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"
)

type fakeRecorder struct {
	started int
	stopped int
	audio   []byte
}

func (f *fakeRecorder) Start(context.Context) error {
	f.started++
	return nil
}

func (f *fakeRecorder) Stop(context.Context) ([]byte, error) {
	f.stopped++
	return f.audio, nil
}

func TestRandomScorerRange(t *testing.T) {
	s := NewRandomScorer(rand.New(rand.NewPCG(1, 2)))
	for range 200 {
		score, err := s.Score(context.Background(), nil, "水を飲みます")
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if score < 0 || score >= 100 {
			t.Fatalf("score out of range: %d", score)
		}
	}
}

func TestPracticeSessionFlow(t *testing.T) {
	rec := &fakeRecorder{audio: []byte("pcm")}
	scorer := NewRandomScorer(rand.New(rand.NewPCG(1, 2)))
	ps, err := NewPracticeSession(rec, scorer, nil, []string{"おはようございます", "ありがとうございます"})
	if err != nil {
		t.Fatalf("NewPracticeSession: %v", err)
	}

	if ps.Sentence() != "おはようございます" {
		t.Errorf("sentence: %q", ps.Sentence())
	}
	if ps.Recording() {
		t.Error("recording before start")
	}

	if err := ps.StartRecording(context.Background()); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if !ps.Recording() {
		t.Error("not recording after start")
	}

	score, err := ps.StopRecording(context.Background())
	if err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
	if score < 0 || score >= 100 {
		t.Errorf("score out of range: %d", score)
	}
	if ps.Recording() {
		t.Error("still recording after stop")
	}
	if rec.started != 1 || rec.stopped != 1 {
		t.Errorf("recorder calls: started=%d stopped=%d", rec.started, rec.stopped)
	}

	scores := ps.Scores()
	if got, ok := scores[0]; !ok || got != score {
		t.Errorf("scores: %v, want index 0 = %d", scores, score)
	}
}

func TestPracticeSessionNextWraps(t *testing.T) {
	ps, err := NewPracticeSession(&fakeRecorder{}, NewRandomScorer(nil), nil, []string{"a", "b"})
	if err != nil {
		t.Fatalf("NewPracticeSession: %v", err)
	}
	ps.Next()
	if ps.Sentence() != "b" {
		t.Errorf("sentence: %q", ps.Sentence())
	}
	ps.Next()
	if ps.Sentence() != "a" {
		t.Errorf("sentence after wrap: %q", ps.Sentence())
	}
}

func TestPracticeSessionDoubleStart(t *testing.T) {
	ps, err := NewPracticeSession(&fakeRecorder{}, NewRandomScorer(nil), nil, []string{"a"})
	if err != nil {
		t.Fatalf("NewPracticeSession: %v", err)
	}
	if err := ps.StartRecording(context.Background()); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if err := ps.StartRecording(context.Background()); err == nil {
		t.Error("want error on second start")
	}
}

func TestPracticeSessionStopWithoutStart(t *testing.T) {
	ps, err := NewPracticeSession(&fakeRecorder{}, NewRandomScorer(nil), nil, []string{"a"})
	if err != nil {
		t.Fatalf("NewPracticeSession: %v", err)
	}
	if _, err := ps.StopRecording(context.Background()); err == nil {
		t.Error("want error stopping idle session")
	}
}

func TestPracticeSessionStopsPlayback(t *testing.T) {
	sp := newFakeSpeaker()
	sp.block = make(chan struct{})
	player := NewPlayer(sp)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = player.Play(context.Background(), "こんにちは", DefaultSpeechOptions())
	}()
	for !player.Speaking() {
		time.Sleep(time.Millisecond)
	}

	ps, err := NewPracticeSession(&fakeRecorder{}, NewRandomScorer(nil), player, []string{"a"})
	if err != nil {
		t.Fatalf("NewPracticeSession: %v", err)
	}
	if err := ps.StartRecording(context.Background()); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	<-done

	if player.Speaking() {
		t.Error("playback survived recording start")
	}
}

func TestPracticeSessionNoSentences(t *testing.T) {
	if _, err := NewPracticeSession(&fakeRecorder{}, NewRandomScorer(nil), nil, nil); err == nil {
		t.Error("want error for empty sentence list")
	}
}

package study

import (
	"context"
	"fmt"
	"sync"
)

// SpeechOptions control how text is spoken.
type SpeechOptions struct {
	Language string  // BCP 47 tag, e.g. "ja-JP"
	Rate     float64 // 1.0 is normal speed
	Pitch    float64
}

// DefaultSpeechOptions returns the settings used for Japanese reading
// practice.
func DefaultSpeechOptions() SpeechOptions {
	return SpeechOptions{Language: "ja-JP", Rate: 0.9, Pitch: 1.0}
}

// Speaker synthesizes speech. Speak blocks until playback finishes or
// the context is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string, opts SpeechOptions) error
	Stop() error
}

// Player coordinates a Speaker so at most one utterance plays at a
// time. Starting a new utterance stops the current one.
type Player struct {
	speaker Speaker

	mu       sync.Mutex
	speaking bool
	cancel   context.CancelFunc
}

// NewPlayer wraps speaker with exclusive playback.
func NewPlayer(speaker Speaker) *Player {
	return &Player{speaker: speaker}
}

// Speaking reports whether an utterance is in flight.
func (p *Player) Speaking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speaking
}

// Play speaks text, stopping any current utterance first. It blocks
// until playback finishes.
func (p *Player) Play(ctx context.Context, text string, opts SpeechOptions) error {
	if text == "" {
		return &ServiceError{Service: "speech", Err: fmt.Errorf("nothing to speak")}
	}

	p.mu.Lock()
	if p.speaking {
		p.cancel()
		if err := p.speaker.Stop(); err != nil {
			p.mu.Unlock()
			return &ServiceError{Service: "speech", Err: err}
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.speaking = true
	p.mu.Unlock()

	err := p.speaker.Speak(ctx, text, opts)

	p.mu.Lock()
	p.speaking = false
	p.mu.Unlock()
	cancel()

	if err != nil && ctx.Err() == nil {
		return &ServiceError{Service: "speech", Err: err}
	}
	return nil
}

// Stop halts the current utterance, if any.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.speaking {
		return nil
	}
	p.cancel()
	if err := p.speaker.Stop(); err != nil {
		return &ServiceError{Service: "speech", Err: err}
	}
	p.speaking = false
	return nil
}

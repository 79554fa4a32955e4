package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// DefaultSampleRate is the drone's output rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Player owns the speaker and plays the synth through a beep.Ctrl. It
// starts suspended; the first pinch resumes it through the Engine
// interface.
type Player struct {
	ctrl *beep.Ctrl
	mu   sync.Mutex
}

// NewPlayer initializes the speaker and starts the (paused) drone.
func NewPlayer(synth *Synth, sr beep.SampleRate) (*Player, error) {
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	p := &Player{
		ctrl: &beep.Ctrl{Streamer: synth, Paused: true},
	}
	speaker.Play(p.ctrl)

	return p, nil
}

// Suspended reports whether playback is currently paused.
func (p *Player) Suspended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	defer speaker.Unlock()
	return p.ctrl.Paused
}

// Resume unpauses playback.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
}

// Suspend pauses playback.
func (p *Player) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Close stops playback and detaches the drone from the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	speaker.Clear()
}

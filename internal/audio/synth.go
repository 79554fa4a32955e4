// Package audio generates the ambient drone and maps the pinch signal onto
// its synthesis parameters.
package audio

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Ramp time constants, seconds. These are the synth's built-in smoothing:
// parameter changes are exponential approaches computed per sample, never
// steps.
const (
	gainTau   = 0.5
	cutoffTau = 1.0
	pitchTau  = 0.8
)

// The throb: a perpetual slow wobble on the oscillator pitch, independent
// of the pinch-driven ramps.
const (
	lfoRate  = 0.2 // Hz
	lfoDepth = 5.0 // Hz
)

// param is one ramped synthesis parameter.
type param struct {
	current float64
	target  float64
	coeff   float64
}

func newParam(initial, tau, sampleRate float64) param {
	return param{
		current: initial,
		target:  initial,
		coeff:   1 - math.Exp(-1/(tau*sampleRate)),
	}
}

// step advances the ramp one sample and returns the new value.
func (p *param) step() float64 {
	p.current += (p.target - p.current) * p.coeff
	return p.current
}

// Synth is the procedural drone: sine oscillator into a one-pole lowpass
// into a gain stage. It implements beep.Streamer and never ends.
type Synth struct {
	mu         sync.Mutex
	sampleRate float64

	gain   param
	cutoff param
	pitch  param

	phase    float64
	lfoPhase float64
	lp       float64
}

// NewSynth creates a Synth resting at the given idle parameter values.
func NewSynth(sr beep.SampleRate, idle Targets) *Synth {
	rate := float64(sr)
	return &Synth{
		sampleRate: rate,
		gain:       newParam(idle.Gain, gainTau, rate),
		cutoff:     newParam(idle.Cutoff, cutoffTau, rate),
		pitch:      newParam(idle.Pitch, pitchTau, rate),
	}
}

// SetTargets points the three ramps at new values. The instruction is
// fire-and-forget; the ramps converge over their time constants.
func (s *Synth) SetTargets(t Targets) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain.target = t.Gain
	s.cutoff.target = t.Cutoff
	s.pitch.target = t.Pitch
}

// Current returns the instantaneous (ramped) parameter values.
func (s *Synth) Current() Targets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Targets{
		Gain:   s.gain.current,
		Cutoff: s.cutoff.current,
		Pitch:  s.pitch.current,
	}
}

// Stream fills samples with the drone. It always produces a full buffer;
// the drone has no end.
func (s *Synth) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range samples {
		g := s.gain.step()
		c := s.cutoff.step()
		p := s.pitch.step()

		lfo := lfoDepth * math.Sin(2*math.Pi*s.lfoPhase)
		s.lfoPhase += lfoRate / s.sampleRate
		if s.lfoPhase >= 1 {
			s.lfoPhase -= 1
		}

		freq := p + lfo
		s.phase += freq / s.sampleRate
		if s.phase >= 1 {
			s.phase -= 1
		}
		osc := math.Sin(2 * math.Pi * s.phase)

		// One-pole lowpass; the coefficient tracks the ramped cutoff.
		alpha := 1 - math.Exp(-2*math.Pi*c/s.sampleRate)
		s.lp += (osc - s.lp) * alpha

		v := s.lp * g
		samples[i][0] = v
		samples[i][1] = v
	}

	return len(samples), true
}

// Err implements beep.Streamer; the drone cannot fail.
func (s *Synth) Err() error { return nil }

package audio

// Targets is one set of ramp destinations for the synth.
type Targets struct {
	Gain   float64
	Cutoff float64 // Hz
	Pitch  float64 // Hz
}

// Config holds the engaged and idle parameter sets.
type Config struct {
	Engaged Targets
	Idle    Targets
}

// DefaultConfig returns the stock engaged/idle sound.
func DefaultConfig() Config {
	return Config{
		Engaged: Targets{Gain: 0.4, Cutoff: 800, Pitch: 65},
		Idle:    Targets{Gain: 0.1, Cutoff: 100, Pitch: 55},
	}
}

// Engine is the playback backend the controller can wake. The speaker
// starts suspended (the autoplay-policy analog) until the first pinch.
type Engine interface {
	Suspended() bool
	Resume()
}

// Controller maps the pinch level onto synth ramp targets. Apply is
// level-triggered and idempotent: it re-points the ramps at the same
// targets every time the same level is observed, which is a no-op.
type Controller struct {
	config Config
	synth  *Synth
	engine Engine
}

// NewController creates a Controller. engine may be nil when no playback
// backend exists (tests, headless without a sound device).
func NewController(config Config, synth *Synth, engine Engine) *Controller {
	return &Controller{
		config: config,
		synth:  synth,
		engine: engine,
	}
}

// Apply reacts to the current pinch level. Engaging also wakes the engine
// if it is suspended; the check rides along with every engaged apply
// rather than being its own state.
func (c *Controller) Apply(pinched bool) {
	targets := c.config.Idle
	if pinched {
		targets = c.config.Engaged
		if c.engine != nil && c.engine.Suspended() {
			c.engine.Resume()
		}
	}
	c.synth.SetTargets(targets)
}

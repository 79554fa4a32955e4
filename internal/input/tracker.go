package input

import (
	"errors"
	"sync"
	"time"

	"github.com/sarkar13aditya/black-hole-chill/internal/capture"
	"github.com/sarkar13aditya/black-hole-chill/internal/detector"
	"github.com/sarkar13aditya/black-hole-chill/internal/log"
)

// ErrNoDetector is the model-load failure: tracking was started without a
// usable landmark detector.
var ErrNoDetector = errors.New("no hand detector available")

// Config holds configuration options for the tracker.
type Config struct {
	// PinchThreshold is the thumb/index distance below which a pinch
	// registers, in normalized landmark space. Tunable; 0.05-0.1 are all
	// reasonable.
	PinchThreshold float64

	// FrameInterval is the inference cadence.
	FrameInterval time.Duration

	// AutoFallback switches to mouse mode when the camera path fails.
	// When false, failure is terminal and surfaced via Err.
	AutoFallback bool

	// MotionGate skips inference on frames with no scene motion.
	MotionGate bool

	// MotionThresh is the percent pixel change that counts as motion.
	MotionThresh float64
}

// DefaultConfig returns tracker defaults matching config.DefaultConfig.
func DefaultConfig() Config {
	return Config{
		PinchThreshold: 0.08,
		FrameInterval:  time.Second / 30,
		AutoFallback:   true,
		MotionThresh:   1.0,
	}
}

// Tracker owns the input state machine. It is the sole writer of the live
// Signal; every other component only reads it. In camera mode a loop
// goroutine runs inference once per FrameInterval; in mouse mode the signal
// is updated purely by pointer events.
type Tracker struct {
	config Config
	camera capture.Camera
	det    detector.Detector
	motion *capture.MotionDetector

	mu     sync.RWMutex
	status Status
	signal Signal
	err    error

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a Tracker. A nil detector is allowed and treated as a
// model-load failure when Start runs, which triggers fallback.
func New(config Config, camera capture.Camera, det detector.Detector) *Tracker {
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	if config.PinchThreshold <= 0 {
		config.PinchThreshold = DefaultConfig().PinchThreshold
	}
	t := &Tracker{
		config: config,
		camera: camera,
		det:    det,
		status: StatusIdle,
		signal: Signal{X: 50, Y: 50},
	}
	if config.MotionGate {
		t.motion = capture.NewMotionDetector(config.MotionThresh)
	}
	return t
}

// Start moves the tracker from idle through loading into either camera mode
// or, when the camera path fails, mouse fallback. With fallback disabled the
// failure is terminal: the status becomes StatusError and the error is
// returned. Opening the camera may block on the OS permission prompt.
func (t *Tracker) Start() error {
	t.mu.Lock()
	if t.status != StatusIdle {
		t.mu.Unlock()
		return nil
	}
	t.status = StatusLoading
	t.mu.Unlock()

	if err := t.camera.Open(); err != nil {
		return t.failLoading(err)
	}

	if t.det == nil {
		if err := t.camera.Close(); err != nil {
			log.Warn("closing camera after detector failure", "error", err)
		}
		return t.failLoading(ErrNoDetector)
	}

	t.mu.Lock()
	t.status = StatusCamera
	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	t.mu.Unlock()

	go t.run()

	log.Info("hand tracking started", "interval", t.config.FrameInterval)
	return nil
}

// failLoading resolves a loading failure into mouse fallback or a terminal
// error, per configuration.
func (t *Tracker) failLoading(cause error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.config.AutoFallback {
		t.status = StatusMouse
		log.Warn("camera tracking unavailable, using mouse input", "error", cause)
		return nil
	}

	t.status = StatusError
	t.err = cause
	log.Error("camera tracking failed", "error", cause)
	return cause
}

// Stop tears the tracker down from whatever state it is in: the inference
// loop is stopped, then the camera, detector and motion gate are released.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
	done := t.doneCh
	t.doneCh = nil
	t.mu.Unlock()

	if done != nil {
		<-done
	}

	if err := t.camera.Close(); err != nil {
		log.Warn("closing camera", "error", err)
	}
	if t.motion != nil {
		t.motion.Close()
	}
	if t.det != nil {
		if err := t.det.Close(); err != nil {
			log.Warn("closing detector", "error", err)
		}
	}

	t.mu.Lock()
	t.status = StatusIdle
	t.mu.Unlock()
}

// run is the per-frame inference loop. Transient failures are swallowed:
// a bad frame or a failed inference leaves the previous signal live and the
// loop keeps going. Availability beats strictness here, the signal is
// advisory and continuous.
func (t *Tracker) run() {
	t.mu.RLock()
	stop := t.stopCh
	done := t.doneCh
	t.mu.RUnlock()
	defer close(done)

	ticker := time.NewTicker(t.config.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.step()
		}
	}
}

// step processes one tracking frame.
func (t *Tracker) step() {
	frame, err := t.camera.ReadFrame()
	if err != nil {
		log.Debug("read frame", "error", err)
		return
	}
	defer frame.Close()

	// No motion means no hand to follow; skip the model call.
	if t.motion != nil {
		if moving, _ := t.motion.Detect(frame); !moving {
			return
		}
	}

	hands, err := t.det.Detect(frame)
	if err != nil {
		log.Debug("hand inference", "error", err)
		return
	}
	if len(hands) == 0 {
		// Previous signal stays live.
		return
	}

	hand := &hands[0]
	x, y := hand.Cursor()

	t.mu.Lock()
	t.signal = Signal{
		X:       clampPercent(x),
		Y:       clampPercent(y),
		Pinched: hand.Pinched(t.config.PinchThreshold),
	}
	t.mu.Unlock()
}

// Latest returns the live input signal.
func (t *Tracker) Latest() Signal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.signal
}

// Status returns the current tracking status.
func (t *Tracker) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Err returns the terminal error, if any.
func (t *Tracker) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

// SetPinchThreshold updates the pinch threshold at runtime.
// Values outside (0, 1) are ignored.
func (t *Tracker) SetPinchThreshold(v float64) {
	if v <= 0 || v >= 1 {
		return
	}
	t.mu.Lock()
	t.config.PinchThreshold = v
	t.mu.Unlock()
}

// PointerMove feeds a pointer position, as viewport percentages, into the
// signal. Only honored in mouse mode; the pinch level is untouched.
func (t *Tracker) PointerMove(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusMouse {
		return
	}
	t.signal.X = clampPercent(x)
	t.signal.Y = clampPercent(y)
}

// PointerDown sets the pinch level high. Only honored in mouse mode.
func (t *Tracker) PointerDown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusMouse {
		return
	}
	t.signal.Pinched = true
}

// PointerUp clears the pinch level. Only honored in mouse mode.
func (t *Tracker) PointerUp() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusMouse {
		return
	}
	t.signal.Pinched = false
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Package config holds the tunable parameters for the visualization,
// gesture tracking, camera rig and audio engine.
package config

import "time"

// Config holds all tunable parameters for the application.
type Config struct {
	// Input
	CameraID       int           // Webcam device index
	PinchThreshold float64       // Thumb/index distance below which a pinch registers (normalized landmark space)
	FrameInterval  time.Duration // Gesture inference cadence
	AutoFallback   bool          // Fall back to mouse input when the camera path fails
	MotionGate     bool          // Skip inference on static frames
	MotionThresh   float64       // Percent of pixels that must change to count as motion

	// Camera rig
	NearRadius      float64 // Orbit radius while pinched
	FarRadius       float64 // Orbit radius while idle
	RadiusSmoothing float64 // Per-tick lerp factor toward the target radius
	OrbitSmoothing  float64 // Per-tick lerp factor toward the target position

	// Audio (engaged / idle ramp targets)
	EngagedGain   float64
	EngagedCutoff float64 // Hz
	EngagedPitch  float64 // Hz
	IdleGain      float64
	IdleCutoff    float64 // Hz
	IdlePitch     float64 // Hz

	// Probes
	ProbeSpeed    float64 // Units per second toward the origin
	HorizonRadius float64 // Despawn distance from the origin

	// Server
	Addr string
}

// DefaultConfig returns the recommended configuration.
func DefaultConfig() Config {
	return Config{
		// Input. The pinch threshold is deliberately configurable; values
		// between 0.05 and 0.1 all feel usable, 0.08 is a forgiving middle.
		CameraID:       0,
		PinchThreshold: 0.08,
		FrameInterval:  time.Second / 30,
		AutoFallback:   true,
		MotionGate:     false,
		MotionThresh:   1.0,

		// Rig. Small per-tick factors give the slow cinematic drift; the
		// scene updates at a fixed 60 TPS so these are stable in real time.
		NearRadius:      12,
		FarRadius:       40,
		RadiusSmoothing: 0.03,
		OrbitSmoothing:  0.1,

		// Audio
		EngagedGain:   0.4,
		EngagedCutoff: 800,
		EngagedPitch:  65,
		IdleGain:      0.1,
		IdleCutoff:    100,
		IdlePitch:     55,

		// Probes
		ProbeSpeed:    6.0,
		HorizonRadius: 3.0,

		Addr: ":8080",
	}
}

// Package input converts hand-landmark detections or pointer events into a
// normalized cursor-and-pinch signal consumed by the camera rig, audio
// controller and overlay.
package input

// Signal is the normalized input value produced once per tracking frame or
// pointer event. X and Y are viewport percentages in [0,100]; Pinched is the
// system's primary "click". There is no history: the latest value wins.
type Signal struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Pinched bool    `json:"pinched"`
}

// Status is the tracking state machine's current phase.
type Status int

const (
	// StatusIdle means tracking has not been started.
	StatusIdle Status = iota
	// StatusLoading means the camera and landmark model are initializing.
	StatusLoading
	// StatusCamera means the webcam inference loop is driving the signal.
	StatusCamera
	// StatusMouse means pointer events are driving the signal (fallback).
	StatusMouse
	// StatusError is terminal: camera setup failed and fallback is disabled.
	StatusError
)

// String returns the human-readable status shown in the HUD.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusCamera:
		return "hand tracking"
	case StatusMouse:
		return "mouse"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

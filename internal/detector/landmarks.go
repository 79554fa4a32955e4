// Package detector provides hand detection interfaces and types for gesture input.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a normalized landmark coordinate. X and Y are in
// [0,1] relative to the frame; Z is depth relative to the wrist.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for one hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// distance3D calculates the Euclidean distance between two 3D points.
func distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PinchDistance returns the Euclidean distance between the thumb tip and
// the index fingertip in normalized landmark space. This is the raw value
// the pinch "click" signal is thresholded on.
func (h *HandLandmarks) PinchDistance() float64 {
	return distance3D(h.Points[ThumbTip], h.Points[IndexTip])
}

// Pinched reports whether the thumb and index fingertips are within the
// given threshold distance of each other.
func (h *HandLandmarks) Pinched(threshold float64) bool {
	return h.PinchDistance() < threshold
}

// Cursor returns the index fingertip position mapped to viewport
// percentages. The horizontal axis is mirrored so that moving the hand
// right moves the cursor right, as in a selfie view.
func (h *HandLandmarks) Cursor() (x, y float64) {
	tip := h.Points[IndexTip]
	return (1 - tip.X) * 100, tip.Y * 100
}

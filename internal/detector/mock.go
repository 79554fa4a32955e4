package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results. Safe for concurrent use
// so tests can reconfigure it while a tracking loop is running.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PinchedHandLandmarks returns a preset HandLandmarks with the thumb and
// index fingertips touching, well inside any reasonable pinch threshold.
// The index fingertip sits at (0.5, 0.5) in normalized frame space.
func PinchedHandLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	// Wrist below and left of the pinch point
	landmarks.Points[Wrist] = Point3D{X: 0.42, Y: 0.75, Z: 0.0}

	// Thumb curled in to meet the index fingertip
	landmarks.Points[ThumbCMC] = Point3D{X: 0.46, Y: 0.70, Z: 0.0}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.49, Y: 0.63, Z: 0.0}
	landmarks.Points[ThumbIP] = Point3D{X: 0.50, Y: 0.56, Z: 0.0}
	landmarks.Points[ThumbTip] = Point3D{X: 0.51, Y: 0.51, Z: 0.0}

	// Index finger bent toward the thumb
	landmarks.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.62, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.56, Z: -0.01}
	landmarks.Points[IndexDIP] = Point3D{X: 0.48, Y: 0.53, Z: -0.01}
	landmarks.Points[IndexTip] = Point3D{X: 0.50, Y: 0.50, Z: 0.0}

	// Remaining fingers loosely extended
	landmarks.Points[MiddleMCP] = Point3D{X: 0.41, Y: 0.60, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.40, Y: 0.52, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.40, Y: 0.46, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.40, Y: 0.41, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.38, Y: 0.61, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.36, Y: 0.54, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.35, Y: 0.48, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.35, Y: 0.43, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.35, Y: 0.63, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.33, Y: 0.57, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.32, Y: 0.52, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.31, Y: 0.48, Z: 0.0}

	return landmarks
}

// RelaxedHandLandmarks returns a preset HandLandmarks for an open hand with
// the thumb and index fingertips clearly apart. The index fingertip sits at
// (0.6, 0.3) in normalized frame space.
func RelaxedHandLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: 0.56, Y: 0.65, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.58, Y: 0.52, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.59, Y: 0.40, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.60, Y: 0.30, Z: 0.0}

	// Middle finger extended upward
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.64, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.50, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.38, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.27, Z: 0.0}

	// Ring finger extended upward
	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.66, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.53, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.42, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.42, Y: 0.33, Z: 0.0}

	// Pinky finger extended upward
	landmarks.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}

	return landmarks
}

// HandAt returns a hand fixture with the index fingertip placed at the
// given normalized frame coordinates. When pinched is true the thumb tip
// sits on top of the index tip, otherwise it is held well away.
func HandAt(x, y float64, pinched bool) HandLandmarks {
	var landmarks HandLandmarks
	if pinched {
		landmarks = PinchedHandLandmarks()
	} else {
		landmarks = RelaxedHandLandmarks()
	}

	tip := landmarks.Points[IndexTip]
	dx := x - tip.X
	dy := y - tip.Y

	for i := 0; i < NumLandmarks; i++ {
		landmarks.Points[i].X += dx
		landmarks.Points[i].Y += dy
	}

	return landmarks
}

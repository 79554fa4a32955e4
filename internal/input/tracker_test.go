package input

import (
	"errors"
	"math"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/sarkar13aditya/black-hole-chill/internal/capture"
	"github.com/sarkar13aditya/black-hole-chill/internal/detector"
)

func testFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC1)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.FrameInterval = 2 * time.Millisecond
	return cfg
}

// waitFor polls until cond returns true or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestTracker_CameraModeEmitsSignal(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.HandAt(0.25, 0.6, false)})

	tr := New(fastConfig(), cam, det)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer tr.Stop()

	if tr.Status() != StatusCamera {
		t.Fatalf("status = %v, want %v", tr.Status(), StatusCamera)
	}

	waitFor(t, func() bool {
		sig := tr.Latest()
		return math.Abs(sig.X-75) < 1e-9 && math.Abs(sig.Y-60) < 1e-9
	}, "signal never reflected the detected hand")

	if sig := tr.Latest(); sig.Pinched {
		t.Error("relaxed hand should not be pinched")
	}
}

func TestTracker_PinchDetection(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.HandAt(0.5, 0.5, true)})

	tr := New(fastConfig(), cam, det)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer tr.Stop()

	waitFor(t, func() bool {
		return tr.Latest().Pinched
	}, "pinched hand never registered")
}

func TestTracker_NoHandKeepsPreviousSignal(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.HandAt(0.3, 0.4, false)})

	tr := New(fastConfig(), cam, det)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer tr.Stop()

	waitFor(t, func() bool {
		return math.Abs(tr.Latest().X-70) < 1e-9
	}, "signal never reflected the detected hand")

	// Hand leaves the frame: the previous value stays live.
	calls := det.Calls()
	det.SetHands(nil)
	waitFor(t, func() bool {
		return det.Calls() > calls+3
	}, "inference loop stalled after hand left frame")

	if sig := tr.Latest(); math.Abs(sig.X-70) > 1e-9 || math.Abs(sig.Y-40) > 1e-9 {
		t.Errorf("signal changed after hand left frame: %+v", sig)
	}
}

func TestTracker_InferenceErrorsAreSwallowed(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.HandAt(0.5, 0.5, false)})

	tr := New(fastConfig(), cam, det)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer tr.Stop()

	waitFor(t, func() bool {
		return math.Abs(tr.Latest().X-50) < 1e-9
	}, "signal never emitted")

	det.SetError(errors.New("transient inference failure"))
	calls := det.Calls()
	waitFor(t, func() bool {
		return det.Calls() > calls+3
	}, "loop did not continue past inference errors")

	if tr.Status() != StatusCamera {
		t.Errorf("status = %v, want camera mode to survive inference errors", tr.Status())
	}
}

func TestTracker_FallbackOnCameraFailure(t *testing.T) {
	cam := capture.NewMockCamera(nil, false)
	cam.FailOpen(true)

	tr := New(fastConfig(), cam, detector.NewMockDetector())
	if err := tr.Start(); err != nil {
		t.Fatalf("fallback start should not error: %v", err)
	}
	defer tr.Stop()

	if tr.Status() != StatusMouse {
		t.Fatalf("status = %v, want %v", tr.Status(), StatusMouse)
	}
}

func TestTracker_FallbackOnMissingDetector(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)

	tr := New(fastConfig(), cam, nil)
	if err := tr.Start(); err != nil {
		t.Fatalf("fallback start should not error: %v", err)
	}
	defer tr.Stop()

	if tr.Status() != StatusMouse {
		t.Fatalf("status = %v, want %v", tr.Status(), StatusMouse)
	}
	if cam.IsOpen() {
		t.Error("camera should be released when detector init fails")
	}
}

func TestTracker_StrictModeErrorIsTerminal(t *testing.T) {
	cam := capture.NewMockCamera(nil, false)
	cam.FailOpen(true)

	cfg := fastConfig()
	cfg.AutoFallback = false

	tr := New(cfg, cam, detector.NewMockDetector())
	err := tr.Start()
	if err == nil {
		t.Fatal("strict mode should surface the camera failure")
	}
	if tr.Status() != StatusError {
		t.Errorf("status = %v, want %v", tr.Status(), StatusError)
	}
	if tr.Err() == nil {
		t.Error("terminal error should be recorded")
	}
}

func TestTracker_MouseEvents(t *testing.T) {
	cam := capture.NewMockCamera(nil, false)
	cam.FailOpen(true)

	tr := New(fastConfig(), cam, nil)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer tr.Stop()

	tr.PointerMove(30, 80)
	sig := tr.Latest()
	if sig.X != 30 || sig.Y != 80 || sig.Pinched {
		t.Fatalf("after move: %+v", sig)
	}

	// Down then up with no move in between: one rising and one falling
	// edge, position unchanged.
	tr.PointerDown()
	down := tr.Latest()
	if !down.Pinched || down.X != 30 || down.Y != 80 {
		t.Fatalf("after down: %+v", down)
	}

	tr.PointerUp()
	up := tr.Latest()
	if up.Pinched || up.X != 30 || up.Y != 80 {
		t.Fatalf("after up: %+v", up)
	}

	// Out-of-range positions are clamped to the viewport.
	tr.PointerMove(-20, 400)
	sig = tr.Latest()
	if sig.X != 0 || sig.Y != 100 {
		t.Errorf("clamping failed: %+v", sig)
	}
}

func TestTracker_PointerEventsIgnoredInCameraMode(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.HandAt(0.5, 0.5, false)})

	tr := New(fastConfig(), cam, det)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer tr.Stop()

	tr.PointerDown()
	if tr.Latest().Pinched {
		t.Error("pointer events must not drive the signal in camera mode")
	}
}

func TestTracker_StopReleasesEverything(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	det := detector.NewMockDetector()

	tr := New(fastConfig(), cam, det)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	tr.Stop()

	if cam.IsOpen() {
		t.Error("camera still open after Stop")
	}
	if tr.Status() != StatusIdle {
		t.Errorf("status = %v, want %v after Stop", tr.Status(), StatusIdle)
	}

	// The loop must not run again after teardown.
	calls := det.Calls()
	time.Sleep(20 * time.Millisecond)
	if det.Calls() != calls {
		t.Error("inference loop survived Stop")
	}
}

func TestTracker_SetPinchThreshold(t *testing.T) {
	cam := capture.NewMockCamera([]*gocv.Mat{testFrame(t)}, true)
	det := detector.NewMockDetector()

	// A hand whose pinch distance sits between the strict and loose
	// thresholds flips when the threshold is retuned.
	var h detector.HandLandmarks
	h.Points[detector.ThumbTip] = detector.Point3D{X: 0.5, Y: 0.5}
	h.Points[detector.IndexTip] = detector.Point3D{X: 0.57, Y: 0.5}
	det.SetHands([]detector.HandLandmarks{h})

	cfg := fastConfig()
	cfg.PinchThreshold = 0.05
	tr := New(cfg, cam, det)
	if err := tr.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer tr.Stop()

	waitFor(t, func() bool { return det.Calls() > 3 }, "loop never ran")
	if tr.Latest().Pinched {
		t.Fatal("0.07 distance should not pinch under 0.05 threshold")
	}

	tr.SetPinchThreshold(0.1)
	waitFor(t, func() bool { return tr.Latest().Pinched },
		"0.07 distance should pinch under 0.1 threshold")
}

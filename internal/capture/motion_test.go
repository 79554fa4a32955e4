package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

// halfFrame returns a frame whose left half is dark and right half bright,
// with the split at the given column.
func halfFrame(split int) *gocv.Mat {
	mat := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC1)
	for r := 0; r < mat.Rows(); r++ {
		for c := 0; c < mat.Cols(); c++ {
			if c < split {
				mat.SetUCharAt(r, c, 0)
			} else {
				mat.SetUCharAt(r, c, 255)
			}
		}
	}
	return &mat
}

func TestMotionDetector_FirstFrameIsBaseline(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	frame := solidFrame(100)
	defer frame.Close()

	detected, change := md.Detect(frame)
	if detected {
		t.Error("first frame should never report motion")
	}
	if change != 0 {
		t.Errorf("first frame change = %f, want 0", change)
	}
}

func TestMotionDetector_StaticScene(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	for i := 0; i < 3; i++ {
		frame := solidFrame(100)
		detected, _ := md.Detect(frame)
		frame.Close()
		if detected {
			t.Errorf("identical frame %d reported motion", i)
		}
	}
}

func TestMotionDetector_LargeChange(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	baseline := halfFrame(16)
	defer baseline.Close()
	md.Detect(baseline)

	moved := halfFrame(48)
	defer moved.Close()

	detected, change := md.Detect(moved)
	if !detected {
		t.Errorf("expected motion for a half-frame shift (change %f%%)", change)
	}
	if change <= 1.0 {
		t.Errorf("change percent = %f, want > 1.0", change)
	}
}

func TestMotionDetector_NilAndEmpty(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	if detected, _ := md.Detect(nil); detected {
		t.Error("nil frame should not report motion")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if detected, _ := md.Detect(&empty); detected {
		t.Error("empty frame should not report motion")
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	a := solidFrame(0)
	defer a.Close()
	md.Detect(a)

	md.Reset()

	// After reset the next frame is a fresh baseline, even if it differs
	// wildly from the previous one.
	b := solidFrame(255)
	defer b.Close()
	if detected, _ := md.Detect(b); detected {
		t.Error("frame after reset should be treated as baseline")
	}
}

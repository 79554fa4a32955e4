package probe

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var camPos = mgl64.Vec3{0, 2, 30}

func TestField_SpawnsOncePerRisingEdge(t *testing.T) {
	f := NewField(DefaultConfig())

	// false -> true: exactly one spawn.
	f.Observe(false, camPos)
	f.Observe(true, camPos)
	if f.Count() != 1 {
		t.Fatalf("count = %d after rising edge, want 1", f.Count())
	}

	// Held true: no further spawns.
	for i := 0; i < 10; i++ {
		f.Observe(true, camPos)
	}
	if f.Count() != 1 {
		t.Errorf("count = %d after sustained pinch, want 1", f.Count())
	}

	// true -> false: no spawn.
	f.Observe(false, camPos)
	if f.Count() != 1 {
		t.Errorf("count = %d after falling edge, want 1", f.Count())
	}

	// Another rising edge: second probe.
	f.Observe(true, camPos)
	if f.Count() != 2 {
		t.Errorf("count = %d after second rising edge, want 2", f.Count())
	}
	if f.Spawned() != 2 {
		t.Errorf("spawned = %d, want 2", f.Spawned())
	}
}

func TestField_ProbeSpawnsBelowCamera(t *testing.T) {
	f := NewField(DefaultConfig())

	f.Observe(true, camPos)
	probes := f.Probes()
	if len(probes) != 1 {
		t.Fatalf("expected 1 probe, got %d", len(probes))
	}

	want := camPos.Add(mgl64.Vec3{0, -2, 0})
	if probes[0].Position != want {
		t.Errorf("spawn position = %v, want %v", probes[0].Position, want)
	}
	if probes[0].ID == "" {
		t.Error("probe has no id")
	}
}

func TestField_DistanceStrictlyDecreases(t *testing.T) {
	f := NewField(DefaultConfig())
	f.Observe(true, camPos)

	const dt = 1.0 / 60

	prev := f.Probes()[0].Position.Len()
	for i := 0; i < 1000 && f.Count() > 0; i++ {
		f.Update(dt)
		probes := f.Probes()
		if len(probes) == 0 {
			break
		}
		cur := probes[0].Position.Len()
		if cur >= prev {
			t.Fatalf("tick %d: distance went %f -> %f, want strictly decreasing", i, prev, cur)
		}
		prev = cur
	}
}

func TestField_RemovedAtHorizonExactlyOnce(t *testing.T) {
	f := NewField(DefaultConfig())
	f.Observe(true, camPos)

	const dt = 1.0 / 60

	removedAt := -1
	for i := 0; i < 2000; i++ {
		f.Update(dt)
		if f.Count() == 0 {
			removedAt = i
			break
		}
		// Live probes are always outside the horizon after an update.
		if d := f.Probes()[0].Position.Len(); d < 3.0 {
			t.Fatalf("tick %d: live probe inside horizon at distance %f", i, d)
		}
	}

	if removedAt < 0 {
		t.Fatal("probe never reached the horizon")
	}

	// Once gone, it stays gone.
	for i := 0; i < 100; i++ {
		f.Update(dt)
		if f.Count() != 0 {
			t.Fatal("removed probe came back")
		}
	}
}

func TestField_ProbesAreIndependent(t *testing.T) {
	cfg := DefaultConfig()
	f := NewField(cfg)

	far := mgl64.Vec3{0, 2, 40}
	near := mgl64.Vec3{0, 2, 8}

	f.Observe(true, far)
	f.Observe(false, far)
	f.Observe(true, near)

	if f.Count() != 2 {
		t.Fatalf("count = %d, want 2", f.Count())
	}

	// The near probe falls in first; the far one keeps flying.
	const dt = 1.0 / 60
	for i := 0; i < 60 && f.Count() == 2; i++ {
		f.Update(dt)
	}
	if f.Count() != 1 {
		t.Fatalf("count = %d, want the near probe gone first", f.Count())
	}
}

func TestField_SpinAdvances(t *testing.T) {
	f := NewField(DefaultConfig())
	f.Observe(true, camPos)

	f.Update(0.5)
	probes := f.Probes()
	if len(probes) != 1 {
		t.Fatalf("expected 1 probe, got %d", len(probes))
	}
	if probes[0].Spin <= 0 {
		t.Errorf("spin = %f, want > 0 after update", probes[0].Spin)
	}
}

func TestField_NoFlightDirectionAtOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpawnOffset = mgl64.Vec3{}
	f := NewField(cfg)

	f.Observe(true, mgl64.Vec3{})
	if f.Count() != 0 {
		t.Error("a probe spawned exactly at the origin should be rejected")
	}
}

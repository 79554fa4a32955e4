// Package probe manages the probes flung into the black hole on each pinch.
package probe

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Config holds probe behavior tuning.
type Config struct {
	Speed         float64    // Units per second toward the origin
	HorizonRadius float64    // Despawn distance from the origin
	SpinRate      float64    // Radians per second of continuous spin
	SpawnOffset   mgl64.Vec3 // Offset from the camera at spawn time
}

// DefaultConfig returns the stock probe tuning.
func DefaultConfig() Config {
	return Config{
		Speed:         6.0,
		HorizonRadius: 3.0,
		SpinRate:      4.0,
		SpawnOffset:   mgl64.Vec3{0, -2, 0},
	}
}

// Probe is one object in flight. Its course is fixed at spawn time: a
// straight line from the spawn point toward the world origin.
type Probe struct {
	ID        string
	Position  mgl64.Vec3
	Spin      float64
	direction mgl64.Vec3
}

// Field owns the live probe collection and the pinch edge detector.
// Probes are independent; each one's removal is triggered only by its own
// position crossing the horizon.
type Field struct {
	config      Config
	mu          sync.Mutex
	probes      map[string]*Probe
	prevPinched bool
	spawned     int
}

// NewField creates an empty Field.
func NewField(config Config) *Field {
	return &Field{
		config: config,
		probes: make(map[string]*Probe),
	}
}

// Observe watches the pinch level and spawns exactly one probe per rising
// edge, just below the camera, aimed at the origin. Sustained or falling
// levels never spawn.
func (f *Field) Observe(pinched bool, cameraPos mgl64.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rising := pinched && !f.prevPinched
	f.prevPinched = pinched
	if !rising {
		return
	}

	start := cameraPos.Add(f.config.SpawnOffset)
	length := start.Len()
	if length < 1e-9 {
		// Spawning on top of the origin has no flight direction.
		return
	}

	p := &Probe{
		ID:        uuid.NewString(),
		Position:  start,
		direction: start.Mul(-1 / length),
	}
	f.probes[p.ID] = p
	f.spawned++
}

// Update advances every probe by dt seconds and removes the ones that have
// crossed the horizon. A removed probe never comes back.
func (f *Field) Update(dt float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, p := range f.probes {
		p.Position = p.Position.Add(p.direction.Mul(f.config.Speed * dt))
		p.Spin += f.config.SpinRate * dt

		if p.Position.Len() < f.config.HorizonRadius {
			delete(f.probes, id)
		}
	}
}

// Probes returns a snapshot of the live probes for rendering.
func (f *Field) Probes() []Probe {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Probe, 0, len(f.probes))
	for _, p := range f.probes {
		out = append(out, *p)
	}
	return out
}

// Count returns the number of live probes.
func (f *Field) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.probes)
}

// Spawned returns the lifetime spawn count (session stats).
func (f *Field) Spawned() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spawned
}

// Package rig places the scene camera on a smoothed orbit around the black
// hole, steered by the normalized input signal.
package rig

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sarkar13aditya/black-hole-chill/internal/input"
)

// Config holds the orbit tuning.
type Config struct {
	NearRadius      float64 // Orbit radius while pinched (diving toward the horizon)
	FarRadius       float64 // Orbit radius while idle
	RadiusSmoothing float64 // Per-tick lerp factor toward the target radius
	OrbitSmoothing  float64 // Per-tick lerp factor toward the target position
}

// DefaultConfig returns the recommended orbit tuning.
func DefaultConfig() Config {
	return Config{
		NearRadius:      12,
		FarRadius:       40,
		RadiusSmoothing: 0.03,
		OrbitSmoothing:  0.1,
	}
}

// Orbital angle mapping. Yaw is linear in the horizontal offset from screen
// center; the polar angle is clamped away from the poles so the camera can
// never flip over the top of the scene.
const (
	yawPerPercent = 0.1 // radians of yaw per percent of horizontal offset
	phiMin        = 0.1
	phiMax        = 3.0
)

// Rig is the orbital camera state. Update is called once per scene tick
// (fixed 60 TPS) with the latest input signal; both the radius and the
// position are first-order smoothed so the camera never snaps. The mutex
// covers retuning from the settings API while the scene is running.
type Rig struct {
	mu          sync.Mutex
	config      Config
	radius      float64
	position    mgl64.Vec3
	initialized bool
}

// New creates a Rig resting at the far orbit radius.
func New(config Config) *Rig {
	return &Rig{
		config: config,
		radius: config.FarRadius,
	}
}

// Update advances the camera one tick toward the orbit implied by the
// signal. Pinching pulls the orbit in toward the near radius; releasing
// lets it drift back out.
func (r *Rig) Update(sig input.Signal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targetRadius := r.config.FarRadius
	if sig.Pinched {
		targetRadius = r.config.NearRadius
	}
	r.radius = lerp(r.radius, targetRadius, r.config.RadiusSmoothing)

	theta := -(sig.X - 50) * yawPerPercent
	phi := mapLinear(sig.Y, 0, 100, phiMin, phiMax)

	target := sphericalToCartesian(r.radius, theta, phi)

	if !r.initialized {
		r.position = target
		r.initialized = true
		return
	}

	r.position = lerpVec(r.position, target, r.config.OrbitSmoothing)
}

// Position returns the current camera position.
func (r *Rig) Position() mgl64.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.position
}

// Radius returns the current smoothed orbit radius.
func (r *Rig) Radius() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.radius
}

// Target returns the camera's look-at point, always the world origin.
func (r *Rig) Target() mgl64.Vec3 {
	return mgl64.Vec3{}
}

// ViewMatrix returns the view transform looking from the camera position
// at the origin.
func (r *Rig) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(r.Position(), r.Target(), mgl64.Vec3{0, 1, 0})
}

// SetRadii retunes the orbit radii at runtime (settings hot-apply).
// Non-positive or inverted values are ignored.
func (r *Rig) SetRadii(near, far float64) {
	if near <= 0 || far <= near {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config.NearRadius = near
	r.config.FarRadius = far
}

// sphericalToCartesian converts orbit coordinates to a y-up world position:
// theta is yaw about +Y measured from +Z, phi the polar angle from +Y.
func sphericalToCartesian(radius, theta, phi float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// mapLinear maps v from [inMin, inMax] to [outMin, outMax], clamped to the
// output range.
func mapLinear(v, inMin, inMax, outMin, outMax float64) float64 {
	t := (v - inMin) / (inMax - inMin)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return outMin + t*(outMax-outMin)
}

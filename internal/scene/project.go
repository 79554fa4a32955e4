package scene

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// project maps a world-space point through the view matrix and a simple
// pinhole projection onto screen coordinates. ok is false when the point
// sits behind the camera.
func project(view mgl64.Mat4, world mgl64.Vec3, cx, cy, focal float64) (x, y float64, ok bool) {
	eye := view.Mul4x1(mgl64.Vec4{world.X(), world.Y(), world.Z(), 1})
	if eye.Z() >= -1e-9 {
		return 0, 0, false
	}
	x = cx + focal*eye.X()/-eye.Z()
	y = cy - focal*eye.Y()/-eye.Z()
	return x, y, true
}

// apparentRadius converts a world-space radius at the given distance into
// pixels for the same pinhole projection used by project.
func apparentRadius(worldRadius, distance, focal float64) float64 {
	if distance < worldRadius {
		distance = worldRadius
	}
	return worldRadius / distance * focal
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

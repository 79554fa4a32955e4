// Package scene renders the black hole, the probes and the HUD, and drives
// the per-tick update of the rig, probe field and audio controller.
package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/sarkar13aditya/black-hole-chill/internal/audio"
	"github.com/sarkar13aditya/black-hole-chill/internal/input"
	"github.com/sarkar13aditya/black-hole-chill/internal/probe"
	"github.com/sarkar13aditya/black-hole-chill/internal/rig"
)

const (
	windowWidth  = 1024
	windowHeight = 768

	// Ebiten runs Update at a fixed 60 TPS; the smoothing factors in the
	// rig and the probe flight speed are calibrated against this.
	tickSeconds = 1.0 / 60

	horizonRadius = 3.0
	glowRings     = 4
)

// Game is the ebiten application. It is single-threaded by construction:
// Update and Draw run on the game loop, reading the latest input signal
// whenever they fire.
type Game struct {
	tracker  *input.Tracker
	orbit    *rig.Rig
	audioCtl *audio.Controller
	field    *probe.Field

	elapsed     float64
	prevPinched bool
	pinches     int
}

// New wires the scene to its collaborators.
func New(tracker *input.Tracker, orbit *rig.Rig, audioCtl *audio.Controller, field *probe.Field) *Game {
	return &Game{
		tracker:  tracker,
		orbit:    orbit,
		audioCtl: audioCtl,
		field:    field,
	}
}

// Update advances the world one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.feedPointer()

	sig := g.tracker.Latest()
	if sig.Pinched && !g.prevPinched {
		g.pinches++
	}
	g.prevPinched = sig.Pinched

	g.orbit.Update(sig)
	g.field.Observe(sig.Pinched, g.orbit.Position())
	g.field.Update(tickSeconds)
	g.audioCtl.Apply(sig.Pinched)

	g.elapsed += tickSeconds
	return nil
}

// PinchCount returns how many pinch gestures were seen. Read after the
// game loop has exited.
func (g *Game) PinchCount() int {
	return g.pinches
}

// feedPointer forwards mouse events to the tracker. The tracker ignores
// them unless it is in mouse fallback mode.
func (g *Game) feedPointer() {
	if g.tracker.Status() != input.StatusMouse {
		return
	}

	mx, my := ebiten.CursorPosition()
	g.tracker.PointerMove(
		float64(mx)/windowWidth*100,
		float64(my)/windowHeight*100,
	)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.tracker.PointerDown()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.tracker.PointerUp()
	}
}

// Draw renders the scene and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 4, G: 4, B: 10, A: 255})

	view := g.orbit.ViewMatrix()
	cx, cy := float64(windowWidth)/2, float64(windowHeight)/2

	g.drawHorizon(screen, cx, cy)
	g.drawProbes(screen, view, cx, cy)
	g.drawHUD(screen)
}

// drawHorizon draws the event horizon disk and its accretion glow. The
// apparent size follows the camera distance, so pinch-diving visibly
// swells the hole.
func (g *Game) drawHorizon(screen *ebiten.Image, cx, cy float64) {
	dist := g.orbit.Position().Len()
	r := apparentRadius(horizonRadius, dist, windowHeight)

	for i := glowRings; i >= 1; i-- {
		ringR := r * (1 + 0.35*float64(i))
		pulse := 0.5 + 0.5*math.Sin(g.elapsed*1.3+float64(i))
		alpha := uint8(30 + 40*pulse/float64(i))
		glow := color.RGBA{R: 235, G: 140, B: 40, A: alpha}
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(ringR), float32(2+r*0.04), glow, true)
	}

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), color.RGBA{A: 255}, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 1.5, color.RGBA{R: 255, G: 190, B: 90, A: 200}, true)
}

// drawProbes projects each probe through the rig camera and draws it as a
// small spinning cross.
func (g *Game) drawProbes(screen *ebiten.Image, view mgl64.Mat4, cx, cy float64) {
	for _, p := range g.field.Probes() {
		sx, sy, ok := project(view, p.Position, cx, cy, windowHeight)
		if !ok {
			continue
		}

		size := 5.0
		c := color.RGBA{R: 140, G: 200, B: 255, A: 230}
		for _, a := range []float64{p.Spin, p.Spin + math.Pi/2} {
			dx, dy := math.Cos(a)*size, math.Sin(a)*size
			vector.StrokeLine(screen,
				float32(sx-dx), float32(sy-dy),
				float32(sx+dx), float32(sy+dy),
				1.5, c, true)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	sig := g.tracker.Latest()
	status := g.tracker.Status()

	line := "tracking: " + status.String()
	if status == input.StatusError && g.tracker.Err() != nil {
		line += " (" + g.tracker.Err().Error() + ")"
	}
	ebitenutil.DebugPrintAt(screen, line, 12, 12)

	cursor := "cursor: " + formatPercent(sig.X) + ", " + formatPercent(sig.Y)
	if sig.Pinched {
		cursor += "  [pinch]"
	}
	ebitenutil.DebugPrintAt(screen, cursor, 12, 28)

	// Pinch reticle at the cursor position.
	rx := sig.X / 100 * windowWidth
	ry := sig.Y / 100 * windowHeight
	reticle := color.RGBA{R: 255, G: 255, B: 255, A: 120}
	radius := float32(10)
	if sig.Pinched {
		reticle = color.RGBA{R: 255, G: 160, B: 60, A: 220}
		radius = 6
	}
	vector.StrokeCircle(screen, float32(rx), float32(ry), radius, 1.5, reticle, true)
}

// Layout implements ebiten.Game with a fixed logical resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

// Run opens the window and blocks until the player quits.
func (g *Game) Run() error {
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("black hole chill - pinch to dive, Esc/Q to quit")
	return ebiten.RunGame(g)
}

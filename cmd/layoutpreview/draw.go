package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/placement"
)

var (
	colorCanopy = rl.NewColor(22, 101, 52, 255)
	colorForest = rl.NewColor(20, 70, 40, 255)
	colorTrunk  = rl.NewColor(92, 64, 51, 255)
	colorGround = rl.NewColor(235, 240, 245, 255)
	colorWire   = rl.NewColor(30, 30, 30, 255)
	colorStar   = rl.NewColor(255, 215, 0, 255)
	colorPicked = rl.NewColor(255, 255, 255, 255)
)

func v3(x, y, z float64) rl.Vector3 {
	return rl.NewVector3(float32(x), float32(y), float32(z))
}

// drawLayout renders the layout. t is the time in seconds for the blink,
// opened holds gifts whose lid is lifted and selected is highlighted.
func drawLayout(l *layout.Layout, colors colorCache, t float64, opened map[string]bool, selected string) {
	origin := l.TreeOrigin
	rl.DrawPlane(v3(0, origin-0.01, 0), rl.NewVector2(90, 90), colorGround)

	// Tree
	rl.DrawCylinder(v3(0, origin, 0), 0.3, 0.35, 1.2, 12, colorTrunk)
	for _, b := range l.Profile.Bands() {
		rl.DrawCylinder(v3(0, origin+b.Bottom(), 0), 0, float32(b.BaseScale), float32(b.BandHeight), 24, colorCanopy)
	}
	_, top := l.Profile.Extent()
	rl.DrawSphere(v3(0, origin+top, 0), 0.2, colorStar)

	for _, w := range l.Wires {
		for i := 1; i < len(w.Points); i++ {
			a, b := w.Points[i-1], w.Points[i]
			rl.DrawLine3D(v3(a.X, a.Y+origin, a.Z), v3(b.X, b.Y+origin, b.Z), colorWire)
		}
	}

	for _, p := range l.AllLights() {
		k := 0.55 + 0.45*math.Sin(t*2+p.Phase)
		drawSurface(p, origin, 0.06, dim(colors.get(p.Color, rl.White), k))
	}
	for _, p := range l.Ornaments {
		drawSurface(p, origin, 0.13, colors.get(p.Color, rl.Red))
	}

	for _, g := range l.Gifts {
		drawGift(g, colors, opened[g.ID], g.ID == selected)
	}

	for _, f := range l.Forest {
		s := float32(f.Scale)
		rl.DrawCylinder(v3(f.Position.X, f.Position.Y, f.Position.Z), 0.15*s, 0.2*s, 0.8*s, 6, colorTrunk)
		rl.DrawCylinder(v3(f.Position.X, f.Position.Y+0.6*f.Scale, f.Position.Z), 0, 1.2*s, 3*s, 8, colorForest)
	}
}

func drawSurface(p placement.SurfacePoint, origin float64, radius float32, col rl.Color) {
	rl.DrawSphere(v3(p.Position.X, p.Position.Y+origin, p.Position.Z), radius, col)
}

func drawGift(g placement.Item, colors colorCache, open, selected bool) {
	s := float32(g.Scale) * 0.5
	body := v3(g.Position.X, g.Position.Y+float64(s)/2, g.Position.Z)
	rl.DrawCube(body, s, s, s, colors.get(g.Color, rl.Red))

	ribbon := colors.get(g.Ribbon, rl.Gold)
	rl.DrawCube(body, s*1.02, s*1.02, s*0.15, ribbon)
	rl.DrawCube(body, s*0.15, s*1.02, s*1.02, ribbon)

	lid := body
	lid.Y += s/2 + 0.05
	if open {
		lid.Y += 0.4
	}
	rl.DrawCube(lid, s*1.1, 0.1, s*1.1, colors.get(g.Color, rl.Red))

	if selected {
		rl.DrawCubeWires(body, s*1.2, s*1.2, s*1.2, colorPicked)
	}
}

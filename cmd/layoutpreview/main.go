// Layout preview tool - orbit a 3D view of the placement with sliders for
// the tuned constants.
//
// Usage: go run ./cmd/layoutpreview [-config layout.yaml] [-seed 42]
//
// Right-drag orbits, the wheel zooms, left-click opens an interactive gift.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/garland/camera"
	"github.com/pthm-cable/garland/components"
	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/inspector"
	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/systems"
)

const controlWidth = 300

// previewParams holds the values the sliders edit.
type previewParams struct {
	MinSpacing    float32
	SurfaceFactor float32
	Turns         float32
	Seed          int64
}

func paramsFrom(cfg *config.Config, seed int64) previewParams {
	return previewParams{
		MinSpacing:    float32(cfg.Gifts.MinSpacing),
		SurfaceFactor: float32(cfg.Lights.Spiral.SurfaceFactor),
		Turns:         float32(cfg.Lights.Spiral.Turns),
		Seed:          seed,
	}
}

// apply returns a copy of base with the slider values set.
func (p previewParams) apply(base *config.Config) *config.Config {
	cfg := *base
	cfg.Gifts.MinSpacing = float64(p.MinSpacing)
	cfg.Lights.Spiral.SurfaceFactor = float64(p.SurfaceFactor)
	cfg.Lights.Spiral.Turns = float64(p.Turns)
	return &cfg
}

// session is the layout currently on screen.
type session struct {
	layout   *layout.Layout
	scene    *systems.Scene
	opened   map[string]bool
	selected string
}

func newSession(cache *layout.Cache, cfg *config.Config, seed int64) (*session, error) {
	l, err := cache.Get(cfg, seed)
	if err != nil {
		return nil, err
	}
	s := &session{
		layout: l,
		scene:  systems.NewScene(l, cfg.Scene),
		opened: make(map[string]bool),
	}
	for _, g := range l.Gifts {
		if !g.Interactive {
			continue
		}
		if err := s.scene.OnClick(g.ID, func(item components.Item, _ components.Position) {
			s.opened[item.ID] = !s.opened[item.ID]
			slog.Info("gift toggled", "id", item.ID, "open", s.opened[item.ID])
		}); err != nil {
			return nil, err
		}
	}
	slog.Info("layout ready", append([]any{"seed", seed, "cached_builds", cache.Builds()}, l.Summary()...)...)
	return s, nil
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 1, "RNG seed for scattered lights")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	base := config.Cfg()
	slog.SetDefault(base.NewLogger())

	cache := layout.NewCache()
	defaults := paramsFrom(base, *seed)
	params := defaults

	sess, err := newSession(cache, params.apply(base), params.Seed)
	if err != nil {
		slog.Error("failed to build layout", "error", err)
		os.Exit(1)
	}

	width, height := int32(base.Preview.Width), int32(base.Preview.Height)
	rl.InitWindow(width, height, "Layout Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(base.Preview.TargetFPS))

	orbit := camera.New(1.5, 14)
	colors := colorCache{}
	needsRebuild := false

	for !rl.WindowShouldClose() {
		// Rebuild if needed
		if needsRebuild {
			next, err := newSession(cache, params.apply(base), params.Seed)
			if err != nil {
				slog.Warn("layout rejected", "error", err)
			} else {
				sess = next
			}
			needsRebuild = false
		}

		mouse := rl.GetMousePosition()
		overPanel := mouse.X > float32(width-controlWidth)

		// Camera input
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			d := rl.GetMouseDelta()
			orbit.Orbit(-d.X*0.01, d.Y*0.01)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
			orbit.ZoomBy(1 + wheel*0.1)
		}
		if rl.IsKeyPressed(rl.KeyR) {
			orbit.Reset()
		}

		cam := rl.Camera3D{
			Target:     rl.NewVector3(orbit.TargetX, orbit.TargetY, orbit.TargetZ),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}
		cam.Position.X, cam.Position.Y, cam.Position.Z = orbit.Position()

		// Picking on the gift plane
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
			ray := rl.GetScreenToWorldRay(mouse, cam)
			plane := float32(base.Gifts.PlaneHeight)
			if x, z, ok := camera.GroundHit(
				ray.Position.X, ray.Position.Y, ray.Position.Z,
				ray.Direction.X, ray.Direction.Y, ray.Direction.Z,
				plane,
			); ok {
				sess.selected = ""
				if item, ok := sess.scene.Pick(float64(x), float64(z)); ok {
					sess.selected = item.ID
				}
				sess.scene.Click(float64(x), float64(z))
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(12, 18, 32, 255))

		rl.BeginMode3D(cam)
		drawLayout(sess.layout, colors, rl.GetTime(), sess.opened, sess.selected)
		rl.EndMode3D()

		// Control panel
		panelX := float32(width - controlWidth + 10)
		panelY := float32(10)
		sliderW := float32(controlWidth - 90)
		rl.DrawRectangle(width-controlWidth, 0, controlWidth, height, rl.NewColor(30, 30, 35, 230))

		rl.DrawText("Placement", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		rl.DrawText("Gift min spacing", int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 18
		newSpacing := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"", "",
			params.MinSpacing, 0.5, 3.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.MinSpacing), int32(panelX+sliderW+10), int32(panelY+2), 16, rl.RayWhite)
		if newSpacing != params.MinSpacing {
			params.MinSpacing = newSpacing
			needsRebuild = true
		}
		panelY += 35

		rl.DrawText("Light surface factor", int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 18
		newFactor := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"", "",
			params.SurfaceFactor, 0.8, 1.3,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.SurfaceFactor), int32(panelX+sliderW+10), int32(panelY+2), 16, rl.RayWhite)
		if newFactor != params.SurfaceFactor {
			params.SurfaceFactor = newFactor
			needsRebuild = true
		}
		panelY += 35

		rl.DrawText("Spiral turns", int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 18
		newTurns := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderW, Height: 20},
			"", "",
			params.Turns, 0.25, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Turns), int32(panelX+sliderW+10), int32(panelY+2), 16, rl.RayWhite)
		if newTurns != params.Turns {
			params.Turns = newTurns
			needsRebuild = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 130, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 99999))
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 140, Y: panelY, Width: 130, Height: 30}, "Reset All") {
			params = defaults
			needsRebuild = true
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("Gifts: %d placed, %d dropped", len(sess.layout.Gifts), len(sess.layout.Dropped)), int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("Layouts built: %d", cache.Builds()), int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 30

		// Inspector for the picked gift
		if e, ok := sess.scene.Entity(sess.selected); ok && sess.selected != "" {
			drawPanel(int32(panelX)-10, int32(panelY), sess.selected, inspector.Sections(sess.scene.Components(e)))
		}

		rl.DrawText("Right-drag orbit, wheel zoom, R reset view", 10, height-24, 14, rl.LightGray)
		rl.DrawFPS(10, 10)

		rl.EndDrawing()
	}
}

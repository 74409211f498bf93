package systems

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/garland/components"
	"github.com/pthm-cable/garland/config"
	"github.com/pthm-cable/garland/geom"
	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/placement"
)

// ClickHandler is invoked when an interactive item is picked.
type ClickHandler func(item components.Item, pos components.Position)

// Scene holds every placed item of a layout as an entity. It is built once
// and only read afterwards; the layout positions are never changed.
type Scene struct {
	world *ecs.World

	itemMapper *ecs.Map4[
		components.Position,
		components.Item,
		components.Orientation,
		components.Appearance,
	]
	itemFilter *ecs.Filter1[components.Item]

	posMap         *ecs.Map1[components.Position]
	itemMap        *ecs.Map1[components.Item]
	orientMap      *ecs.Map1[components.Orientation]
	appearanceMap  *ecs.Map1[components.Appearance]
	blinkMap       *ecs.Map[components.Blink]
	interactiveMap *ecs.Map[components.Interactive]

	gifts      map[string]ecs.Entity // manifest ids
	decor      map[string]ecs.Entity // generated ids of lights, ornaments and forest trees
	handlers   map[string]ClickHandler
	grid       *SpatialGrid
	pickRadius float64
}

// NewScene spawns the layout into a fresh world. Surface points are moved
// from the tree's local frame into world space. Gifts keep their manifest
// ids; other items get generated ids, and a gift id shadows a generated id
// of the same name.
func NewScene(l *layout.Layout, cfg config.SceneConfig) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world: world,
		itemMapper: ecs.NewMap4[
			components.Position,
			components.Item,
			components.Orientation,
			components.Appearance,
		](world),
		itemFilter:     ecs.NewFilter1[components.Item](world),
		posMap:         ecs.NewMap1[components.Position](world),
		itemMap:        ecs.NewMap1[components.Item](world),
		orientMap:      ecs.NewMap1[components.Orientation](world),
		appearanceMap:  ecs.NewMap1[components.Appearance](world),
		blinkMap:       ecs.NewMap[components.Blink](world),
		interactiveMap: ecs.NewMap[components.Interactive](world),
		gifts:          make(map[string]ecs.Entity),
		decor:          make(map[string]ecs.Entity),
		handlers:       make(map[string]ClickHandler),
		pickRadius:     cfg.PickRadius,
	}

	for i, g := range l.Gifts {
		e := s.spawn(s.gifts, g.ID, components.KindGift, i, g.Position,
			components.Orientation{Tilt: geom.OutwardTilt(g.Position.X, g.Position.Z)},
			components.Appearance{Color: g.Color, Ribbon: g.Ribbon, Scale: g.Scale},
		)
		if g.Interactive {
			s.interactiveMap.Add(e, &components.Interactive{})
		}
	}

	for i, p := range l.AllLights() {
		e := s.spawnSurface(fmt.Sprintf("light-%d", i), components.KindLight, i, p, l.TreeOrigin)
		s.blinkMap.Add(e, &components.Blink{Phase: p.Phase, Strand: p.Strand})
	}
	for i, p := range l.Ornaments {
		s.spawnSurface(fmt.Sprintf("ornament-%d", i), components.KindOrnament, i, p, l.TreeOrigin)
	}
	for _, t := range l.Forest {
		s.spawn(s.decor, fmt.Sprintf("forest-%d", t.Index), components.KindForestTree, t.Index, t.Position,
			components.Orientation{},
			components.Appearance{Scale: t.Scale},
		)
	}

	s.buildGrid(cfg.GridCellSize)

	slog.Debug("scene built",
		"entities", len(s.gifts)+len(s.decor),
		"gifts", s.Count(components.KindGift),
	)
	return s
}

func (s *Scene) spawn(ids map[string]ecs.Entity, id string, kind components.Kind, index int, p geom.Vec3, orient components.Orientation, look components.Appearance) ecs.Entity {
	pos := components.Position{X: p.X, Y: p.Y, Z: p.Z}
	item := components.Item{ID: id, Kind: kind, Index: index}
	e := s.itemMapper.NewEntity(&pos, &item, &orient, &look)
	ids[id] = e
	if _, shadowed := s.gifts[id]; shadowed && kind != components.KindGift {
		slog.Debug("generated id shadowed by gift", "id", id, "kind", kind.String())
	}
	return e
}

func (s *Scene) spawnSurface(id string, kind components.Kind, index int, p placement.SurfacePoint, origin float64) ecs.Entity {
	pos := p.Position
	pos.Y += origin
	return s.spawn(s.decor, id, kind, index, pos,
		components.Orientation{Tilt: p.Tilt, Hang: p.Hang},
		components.Appearance{Color: p.Color, Scale: 1},
	)
}

// buildGrid indexes every item on the ground plane.
func (s *Scene) buildGrid(cellSize float64) {
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	var entities []ecs.Entity
	query := s.itemFilter.Query()
	for query.Next() {
		e := query.Entity()
		pos := s.posMap.Get(e)
		minX, maxX = min(minX, pos.X), max(maxX, pos.X)
		minZ, maxZ = min(minZ, pos.Z), max(maxZ, pos.Z)
		entities = append(entities, e)
	}
	if len(entities) == 0 {
		minX, minZ, maxX, maxZ = 0, 0, 0, 0
	}

	s.grid = NewSpatialGrid(minX, minZ, maxX, maxZ, cellSize)
	for _, e := range entities {
		pos := s.posMap.Get(e)
		s.grid.Insert(e, pos.X, pos.Z)
	}
}

// entity resolves an id, gifts first.
func (s *Scene) entity(id string) (ecs.Entity, bool) {
	if e, ok := s.gifts[id]; ok {
		return e, true
	}
	e, ok := s.decor[id]
	return e, ok
}

// Lookup returns the position of the item with the given id.
func (s *Scene) Lookup(id string) (components.Position, bool) {
	e, ok := s.entity(id)
	if !ok {
		return components.Position{}, false
	}
	return *s.posMap.Get(e), true
}

// Entity returns the entity spawned for id.
func (s *Scene) Entity(id string) (ecs.Entity, bool) {
	return s.entity(id)
}

// Components returns copies of the components attached to e, for display.
func (s *Scene) Components(e ecs.Entity) []any {
	if !s.world.Alive(e) {
		return nil
	}
	out := []any{*s.itemMap.Get(e), *s.posMap.Get(e), *s.orientMap.Get(e), *s.appearanceMap.Get(e)}
	if s.blinkMap.Has(e) {
		out = append(out, *s.blinkMap.Get(e))
	}
	return out
}

// Count returns the number of items of the given kind.
func (s *Scene) Count(kind components.Kind) int {
	n := 0
	query := s.itemFilter.Query()
	for query.Next() {
		if query.Get().Kind == kind {
			n++
		}
	}
	return n
}

// Interactive reports whether the item with the given id can be picked.
func (s *Scene) Interactive(id string) bool {
	e, ok := s.gifts[id]
	return ok && s.interactiveMap.Has(e)
}

// Pick returns the interactive item nearest to (x, z) on the ground plane
// within the configured pick radius.
func (s *Scene) Pick(x, z float64) (components.Item, bool) {
	e, ok := s.grid.Nearest(x, z, s.pickRadius, s.posMap, s.interactiveMap.Has)
	if !ok {
		return components.Item{}, false
	}
	return *s.itemMap.Get(e), true
}

// OnClick registers the handler run when the item with the given id is
// clicked. Only interactive items accept handlers.
func (s *Scene) OnClick(id string, h ClickHandler) error {
	if !s.Interactive(id) {
		return fmt.Errorf("item %q is not interactive", id)
	}
	s.handlers[id] = h
	return nil
}

// Click picks at (x, z) and runs the handler registered for the picked item.
// It reports whether a handler ran.
func (s *Scene) Click(x, z float64) bool {
	item, ok := s.Pick(x, z)
	if !ok {
		return false
	}
	h, ok := s.handlers[item.ID]
	if !ok {
		return false
	}
	pos, _ := s.Lookup(item.ID)
	h(item, pos)
	return true
}

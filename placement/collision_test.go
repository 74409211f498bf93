package placement

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/garland/geom"
)

// referenceGifts is the gift manifest of the reference scene.
func referenceGifts() []Request {
	return []Request{
		{ID: "main", Angle: -0.25, Radius: Float(2.5), Scale: 1.4, Interactive: true},
		{ID: "g1", Angle: 0.2, Scale: 1.8},
		{ID: "g2", Angle: 1.0, Scale: 1.8},
		{ID: "g3", Angle: 2.0, Scale: 1.8},
		{ID: "g4", Angle: -1.0, Scale: 1.8},
		{ID: "g5", Angle: -2.0, Scale: 1.8},
		{ID: "g6", Angle: -3.0, Scale: 1.8},
	}
}

func mustManifest(t *testing.T, reqs []Request, primary string) *Manifest {
	t.Helper()
	m, err := NewManifest(reqs, primary)
	require.NoError(t, err)
	return m
}

func assertSpacing(t *testing.T, items []Item, spacing float64) {
	t.Helper()
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			d := geom.Dist2D(items[i].Position, items[j].Position)
			assert.GreaterOrEqual(t, d, spacing, "%s and %s overlap", items[i].ID, items[j].ID)
		}
	}
}

func TestSolveCollisionsReferenceScene(t *testing.T) {
	opts := DefaultCollisionOptions()
	m := mustManifest(t, referenceGifts(), "main")

	res := SolveCollisions(m, opts)

	require.Len(t, res.Placed, 7, "every gift should fit")
	assert.Empty(t, res.Dropped)
	assert.Equal(t, []string{"main", "g1", "g2", "g3", "g4", "g5", "g6"}, res.IDs())
	assertSpacing(t, res.Placed, opts.MinSpacing)

	// main: max(2.5 + 1.4*0.25, 2 + 1.4*0.5) = 2.85
	main, ok := res.Find("main")
	require.True(t, ok)
	_, r := geom.ToPolar(main.Position.X, main.Position.Z)
	assert.InDelta(t, 2.85, r, 1e-12)
	assert.Equal(t, 0, main.Attempts)

	// Decorative gifts: max(2.0 + 1.8*0.25, 2 + 1.8*0.5) = 2.9, placed first try.
	for _, it := range res.Placed[1:] {
		_, r := geom.ToPolar(it.Position.X, it.Position.Z)
		assert.InDelta(t, 2.9, r, 1e-12, it.ID)
		assert.Equal(t, 1, it.Attempts, it.ID)
		assert.Equal(t, -2.0, it.Position.Y)
	}
}

func TestSolveCollisionsPrimaryNeverMoves(t *testing.T) {
	opts := DefaultCollisionOptions()
	reqs := []Request{
		{ID: "a", Angle: 0, Scale: 1},
		{ID: "b", Angle: 0, Scale: 1},
		{ID: "hero", Angle: 0, Scale: 1, Interactive: true},
	}
	m := mustManifest(t, reqs, "")
	require.Equal(t, "hero", m.Primary().ID)

	res := SolveCollisions(m, opts)

	require.NotEmpty(t, res.Placed)
	assert.Equal(t, "hero", res.Placed[0].ID)
	assert.Equal(t, opts.InitialPosition(reqs[2]), res.Placed[0].Position)
}

func TestSolveCollisionsDuplicateSlotDropsLater(t *testing.T) {
	reqs := []Request{
		{ID: "first", Angle: 1.0, Radius: Float(2.0), Scale: 1},
		{ID: "second", Angle: 1.0, Radius: Float(2.0), Scale: 1},
	}

	t.Run("nudges cannot clear spacing", func(t *testing.T) {
		opts := DefaultCollisionOptions()
		// Five nudges of 0.25 reach 1.25, short of 1.5.
		opts.MinSpacing = 1.5

		res := SolveCollisions(mustManifest(t, reqs, ""), opts)

		assert.Equal(t, []string{"first"}, res.IDs())
		assert.Equal(t, []string{"second"}, res.Dropped)
	})

	t.Run("short budget", func(t *testing.T) {
		opts := DefaultCollisionOptions()
		opts.RetryBudget = 4

		res := SolveCollisions(mustManifest(t, reqs, ""), opts)

		assert.Equal(t, []string{"first"}, res.IDs())
		assert.Equal(t, []string{"second"}, res.Dropped)
	})

	t.Run("defaults push the duplicate out", func(t *testing.T) {
		opts := DefaultCollisionOptions()

		res := SolveCollisions(mustManifest(t, reqs, ""), opts)

		require.Len(t, res.Placed, 2)
		first, second := res.Placed[0], res.Placed[1]
		_, r1 := geom.ToPolar(first.Position.X, first.Position.Z)
		_, r2 := geom.ToPolar(second.Position.X, second.Position.Z)
		assert.InDelta(t, 1.25, r2-r1, 1e-9)
		assert.Equal(t, 6, second.Attempts)
	})
}

func TestSolveCollisionsSpacingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		n := 2 + rng.Intn(14)
		reqs := make([]Request, n)
		for i := range reqs {
			reqs[i] = Request{
				ID:    string(rune('a'+i%26)) + string(rune('A'+i/26)),
				Angle: (rng.Float64()*2 - 1) * 3.5,
				Scale: rng.Float64() * 2,
			}
			if rng.Intn(2) == 0 {
				reqs[i].Radius = Float(rng.Float64() * 4)
			}
		}
		opts := DefaultCollisionOptions()
		opts.RetryBudget = 1 + rng.Intn(8)
		opts.NudgeStep = rng.Float64() * 0.5
		opts.MinSpacing = 0.2 + rng.Float64()*2
		require.NoError(t, opts.Validate())

		m := mustManifest(t, reqs, "")
		res := SolveCollisions(m, opts)

		assert.LessOrEqual(t, len(res.Placed), n)
		assert.Equal(t, n, len(res.Placed)+len(res.Dropped))
		assertSpacing(t, res.Placed, opts.MinSpacing)
		assert.Equal(t, m.Primary().ID, res.Placed[0].ID)
		assert.Equal(t, opts.InitialPosition(m.Primary()), res.Placed[0].Position)
	}
}

func TestSolveCollisionsRemovalNeverGrowsDenseManifest(t *testing.T) {
	opts := DefaultCollisionOptions()

	// Every request wants the same slot.
	var reqs []Request
	for i := 0; i < 8; i++ {
		reqs = append(reqs, Request{ID: string(rune('a' + i)), Angle: 0.5, Scale: 1})
	}

	m := mustManifest(t, reqs, "")
	prev := len(SolveCollisions(m, opts).Placed)
	for _, r := range reqs[:len(reqs)-1] {
		var err error
		m, err = m.Without(r.ID)
		require.NoError(t, err)

		got := len(SolveCollisions(m, opts).Placed)
		assert.LessOrEqual(t, got, prev, "removing %s grew the layout", r.ID)
		prev = got
	}
	assert.Equal(t, 1, prev)
}

func TestSolveCollisionsDeterministic(t *testing.T) {
	opts := DefaultCollisionOptions()
	opts.MinSpacing = 2.5

	a := SolveCollisions(mustManifest(t, referenceGifts(), "main"), opts)
	b := SolveCollisions(mustManifest(t, referenceGifts(), "main"), opts)

	assert.Equal(t, a, b)
	assertSpacing(t, a.Placed, opts.MinSpacing)
}

func TestCollisionOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CollisionOptions)
	}{
		{"zero spacing", func(o *CollisionOptions) { o.MinSpacing = 0 }},
		{"zero budget", func(o *CollisionOptions) { o.RetryBudget = 0 }},
		{"negative step", func(o *CollisionOptions) { o.NudgeStep = -0.1 }},
		{"negative default scale", func(o *CollisionOptions) { o.DefaultScale = -1 }},
	}

	require.NoError(t, DefaultCollisionOptions().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultCollisionOptions()
			tt.mutate(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}

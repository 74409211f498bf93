package telemetry

import (
	"github.com/pthm-cable/garland/geom"
	"github.com/pthm-cable/garland/layout"
	"github.com/pthm-cable/garland/placement"
)

// GiftRecord is one row of gifts.csv.
type GiftRecord struct {
	ID          string  `csv:"id"`
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	Z           float64 `csv:"z"`
	Angle       float64 `csv:"angle"`
	Radius      float64 `csv:"radius"`
	Scale       float64 `csv:"scale"`
	Interactive bool    `csv:"interactive"`
	Attempts    int     `csv:"attempts"`
	Color       string  `csv:"color"`
	Ribbon      string  `csv:"ribbon"`
}

// PointRecord is one row of lights.csv or ornaments.csv. Positions are in
// world space; Height is the height on the tree.
type PointRecord struct {
	Strand   int     `csv:"strand"`
	Index    int     `csv:"index"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Z        float64 `csv:"z"`
	Height   float64 `csv:"height"`
	Progress float64 `csv:"progress"`
	Tilt     float64 `csv:"tilt"`
	Hang     float64 `csv:"hang"`
	Phase    float64 `csv:"phase"`
	Color    string  `csv:"color"`
}

// ForestRecord is one row of forest.csv.
type ForestRecord struct {
	Index int     `csv:"index"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
	Scale float64 `csv:"scale"`
}

// GiftRecords converts placed gifts to CSV rows.
func GiftRecords(items []placement.Item) []GiftRecord {
	out := make([]GiftRecord, len(items))
	for i, it := range items {
		angle, radius := geom.ToPolar(it.Position.X, it.Position.Z)
		out[i] = GiftRecord{
			ID:          it.ID,
			X:           it.Position.X,
			Y:           it.Position.Y,
			Z:           it.Position.Z,
			Angle:       angle,
			Radius:      radius,
			Scale:       it.Scale,
			Interactive: it.Interactive,
			Attempts:    it.Attempts,
			Color:       it.Color,
			Ribbon:      it.Ribbon,
		}
	}
	return out
}

// PointRecords converts surface points to CSV rows, lifting them by origin.
func PointRecords(points []placement.SurfacePoint, origin float64) []PointRecord {
	out := make([]PointRecord, len(points))
	for i, p := range points {
		out[i] = PointRecord{
			Strand:   p.Strand,
			Index:    p.Index,
			X:        p.Position.X,
			Y:        p.Position.Y + origin,
			Z:        p.Position.Z,
			Height:   p.Position.Y,
			Progress: p.Progress,
			Tilt:     p.Tilt,
			Hang:     p.Hang,
			Phase:    p.Phase,
			Color:    p.Color,
		}
	}
	return out
}

// ForestRecords converts background trees to CSV rows.
func ForestRecords(trees []placement.ForestTree) []ForestRecord {
	out := make([]ForestRecord, len(trees))
	for i, t := range trees {
		out[i] = ForestRecord{Index: t.Index, X: t.Position.X, Y: t.Position.Y, Z: t.Position.Z, Scale: t.Scale}
	}
	return out
}

// layoutLights returns the spiral and scattered lights as rows.
func layoutLights(l *layout.Layout) []PointRecord {
	return PointRecords(l.AllLights(), l.TreeOrigin)
}

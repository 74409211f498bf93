// Package systems provides the ECS scene built from a layout.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/garland/components"
)

// Neighbor holds a nearby entity with precomputed ground-plane data.
type Neighbor struct {
	E      ecs.Entity
	DX, DZ float64 // delta from query origin
	DistSq float64
}

// SpatialGrid provides cell-based neighbor lookups on the (x, z) ground
// plane. The grid covers a fixed rectangle; positions outside it are clamped
// into the border cells.
type SpatialGrid struct {
	cellSize   float64
	cols       int
	rows       int
	minX, minZ float64
	cells      [][]ecs.Entity // flat grid of entity lists
}

// maxGridDim bounds the number of cells along each axis.
const maxGridDim = 1024

// NewSpatialGrid creates a grid covering [minX, maxX] x [minZ, maxZ]. The
// cell size is raised when the area would need more than maxGridDim cells
// along an axis.
func NewSpatialGrid(minX, minZ, maxX, maxZ, cellSize float64) *SpatialGrid {
	cellSize = max(cellSize, (maxX-minX)/maxGridDim, (maxZ-minZ)/maxGridDim)
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int((maxX-minX)/cellSize) + 1
	rows := int((maxZ-minZ)/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		minX:     minX,
		minZ:     minZ,
		cells:    cells,
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, z float64) {
	col, row := g.cell(x, z)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
}

// visit calls fn for every entity within radius of (x, z) that keep accepts.
// A nil keep accepts everything.
func (g *SpatialGrid) visit(x, z, radius float64, posMap *ecs.Map1[components.Position], keep func(ecs.Entity) bool, fn func(Neighbor)) {
	minCol, minRow := g.cell(x-radius, z-radius)
	maxCol, maxRow := g.cell(x+radius, z+radius)
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if keep != nil && !keep(e) {
					continue
				}
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}

				dx, dz := pos.X-x, pos.Z-z
				distSq := dx*dx + dz*dz
				if distSq <= radiusSq {
					fn(Neighbor{E: e, DX: dx, DZ: dz, DistSq: distSq})
				}
			}
		}
	}
}

// Nearest returns the closest entity within radius that keep accepts.
func (g *SpatialGrid) Nearest(x, z, radius float64, posMap *ecs.Map1[components.Position], keep func(ecs.Entity) bool) (ecs.Entity, bool) {
	var (
		best   ecs.Entity
		bestSq = math.Inf(1)
		found  bool
	)
	g.visit(x, z, radius, posMap, keep, func(n Neighbor) {
		if n.DistSq < bestSq {
			best, bestSq, found = n.E, n.DistSq, true
		}
	})
	return best, found
}

// cell returns the clamped column and row for a ground position.
func (g *SpatialGrid) cell(x, z float64) (col, row int) {
	col = int(math.Floor((x - g.minX) / g.cellSize))
	row = int(math.Floor((z - g.minZ) / g.cellSize))

	col = min(max(col, 0), g.cols-1)
	row = min(max(row, 0), g.rows-1)
	return col, row
}

package world

import (
	"math"
	"slices"

	"github.com/l1jgo/arena/internal/core/ecs"
	"github.com/l1jgo/arena/internal/physics"
)

// boundaryEpsilon widens the max edge so a box ending exactly on a cell
// boundary still lands in the cell it touches.
const boundaryEpsilon = 1e-6

// Grid is a uniform broad-phase index over the horizontal (X,Z) plane.
// Y is ignored: arena objects are short relative to their horizontal spread,
// so the 2D buckets only over-report candidates, never miss them. Tall or
// vertically stacked dynamic objects would make this wasteful.
//
// Accessed only from the game loop goroutine ; no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey]map[ecs.EntityID]struct{} // cellKey → set of entities
	occupied map[ecs.EntityID][]cellKey            // entity → cells it was inserted into
}

type cellKey struct {
	cx int32
	cz int32
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[ecs.EntityID]struct{}, 256),
		occupied: make(map[ecs.EntityID][]cellKey, 256),
	}
}

// CellSize returns the edge length of one cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

// toCellCoord floors, so negative coordinates map to negative cells.
func (g *Grid) toCellCoord(v float64) int32 {
	return int32(math.Floor(v / g.cellSize))
}

// span returns the inclusive cell range covered by box.
func (g *Grid) span(box physics.AABB) (minX, minZ, maxX, maxZ int32) {
	return g.toCellCoord(box.Min.X()), g.toCellCoord(box.Min.Z()),
		g.toCellCoord(box.Max.X() + boundaryEpsilon), g.toCellCoord(box.Max.Z() + boundaryEpsilon)
}

// Insert registers id in every cell its bounds overlap. Re-inserting an id
// replaces its previous cells.
func (g *Grid) Insert(id ecs.EntityID, box physics.AABB) {
	if _, ok := g.occupied[id]; ok {
		g.Remove(id)
	}
	minX, minZ, maxX, maxZ := g.span(box)
	keys := make([]cellKey, 0, int(maxX-minX+1)*int(maxZ-minZ+1))
	for cx := minX; cx <= maxX; cx++ {
		for cz := minZ; cz <= maxZ; cz++ {
			k := cellKey{cx: cx, cz: cz}
			cell := g.cells[k]
			if cell == nil {
				cell = make(map[ecs.EntityID]struct{})
				g.cells[k] = cell
			}
			cell[id] = struct{}{}
			keys = append(keys, k)
		}
	}
	g.occupied[id] = keys
}

// Remove takes id out of every cell. No-op for unknown ids.
func (g *Grid) Remove(id ecs.EntityID) {
	for _, k := range g.occupied[id] {
		cell := g.cells[k]
		if cell == nil {
			continue
		}
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
	delete(g.occupied, id)
}

// Query returns every id sharing a cell with box, deduplicated and sorted.
// The result is a superset of true overlaps and may include the caller.
func (g *Grid) Query(box physics.AABB) []ecs.EntityID {
	minX, minZ, maxX, maxZ := g.span(box)
	seen := make(map[ecs.EntityID]struct{})
	var result []ecs.EntityID
	for cx := minX; cx <= maxX; cx++ {
		for cz := minZ; cz <= maxZ; cz++ {
			for id := range g.cells[cellKey{cx: cx, cz: cz}] {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				result = append(result, id)
			}
		}
	}
	slices.Sort(result)
	return result
}

// Clear drops all cell and reverse-index state.
func (g *Grid) Clear() {
	clear(g.cells)
	clear(g.occupied)
}

// Len returns the number of indexed entities.
func (g *Grid) Len() int { return len(g.occupied) }

// Cells returns the number of non-empty cells.
func (g *Grid) Cells() int { return len(g.cells) }

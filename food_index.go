package main

import "math"

// cellKey identifies one cell of the hash grid.
type cellKey struct {
	cx, cy int
}

type foodPoint struct {
	id   string
	x, y float64
}

// foodIndex is a cell-hash over food positions for proximity queries. Bots
// rebuild it from a store snapshot each tick, so it never aliases live state.
type foodIndex struct {
	cells    map[cellKey][]foodPoint
	cellSize float64
}

func newFoodIndex(cellSize float64) *foodIndex {
	return &foodIndex{
		cells:    make(map[cellKey][]foodPoint),
		cellSize: cellSize,
	}
}

func (g *foodIndex) keyFor(x, y float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / g.cellSize)),
		cy: int(math.Floor(y / g.cellSize)),
	}
}

// Rebuild replaces the index contents with the given food snapshot.
func (g *foodIndex) Rebuild(items []Food) {
	g.cells = make(map[cellKey][]foodPoint, len(g.cells))
	for _, f := range items {
		k := g.keyFor(f.X, f.Y)
		g.cells[k] = append(g.cells[k], foodPoint{id: f.ID, x: f.X, y: f.Y})
	}
}

// Nearest returns the closest food item within radius of (x, y).
func (g *foodIndex) Nearest(x, y, radius float64) (foodPoint, bool) {
	minCX := int(math.Floor((x - radius) / g.cellSize))
	maxCX := int(math.Floor((x + radius) / g.cellSize))
	minCY := int(math.Floor((y - radius) / g.cellSize))
	maxCY := int(math.Floor((y + radius) / g.cellSize))

	best := foodPoint{}
	bestD2 := radius * radius
	found := false
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			for _, e := range g.cells[cellKey{cx, cy}] {
				dx := e.x - x
				dy := e.y - y
				d2 := dx*dx + dy*dy
				if d2 <= bestD2 {
					best = e
					bestD2 = d2
					found = true
				}
			}
		}
	}
	return best, found
}

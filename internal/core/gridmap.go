package core

// neighborOffsets is the 4-connectivity used for all adjacency traversals.
var neighborOffsets = [4]Cell{
	{X: 0, Y: -1}, // north
	{X: -1, Y: 0}, // west
	{X: 1, Y: 0},  // east
	{X: 0, Y: 1},  // south
}

// GridMap is a rectangular occupancy model. Blocked cells are permanently
// non-traversable. The map is treated as immutable once agents are planned
// on it; Block is only called during construction.
type GridMap struct {
	width, height int
	blocked       map[Cell]bool
}

// NewGridMap creates an all-free grid of the given dimensions.
func NewGridMap(width, height int) *GridMap {
	return &GridMap{
		width:   width,
		height:  height,
		blocked: make(map[Cell]bool),
	}
}

// Width returns the number of columns.
func (g *GridMap) Width() int { return g.width }

// Height returns the number of rows.
func (g *GridMap) Height() int { return g.height }

// Block marks a cell as an obstacle.
func (g *GridMap) Block(c Cell) {
	if g.InBounds(c) {
		g.blocked[c] = true
	}
}

// InBounds reports whether c lies within the grid boundaries.
func (g *GridMap) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Blocked reports whether c is an obstacle. Out-of-bounds cells count as
// blocked, so callers get "no such cell" semantics for free.
func (g *GridMap) Blocked(c Cell) bool {
	return !g.InBounds(c) || g.blocked[c]
}

// Traversable reports whether an agent may occupy c.
func (g *GridMap) Traversable(c Cell) bool {
	return g.InBounds(c) && !g.blocked[c]
}

// Neighbors returns the traversable 4-adjacent cells of c.
func (g *GridMap) Neighbors(c Cell) []Cell {
	neighbors := make([]Cell, 0, 4)
	for _, off := range neighborOffsets {
		n := c.Add(off)
		if g.Traversable(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// FreeCellCount returns the number of traversable cells. Used by the
// planner as a search horizon: a simple path never needs more steps than
// there are free cells.
func (g *GridMap) FreeCellCount() int {
	return g.width*g.height - len(g.blocked)
}

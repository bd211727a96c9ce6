// Package core defines the domain model for grid-based multi-agent path finding.
package core

import "fmt"

// AgentID is a unique agent identifier.
type AgentID int

// Cell is a grid coordinate. X grows to the right, Y grows downward.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d/%d", c.X, c.Y)
}

// Add returns the cell offset by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Manhattan returns the L1 distance to other.
func (c Cell) Manhattan(other Cell) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TimedCell is a position at a discrete time step.
type TimedCell struct {
	Cell Cell
	Step int
}

// Agent has a fixed start and goal. Name is the map letter ('A'..'D').
type Agent struct {
	ID    AgentID
	Name  rune
	Start Cell
	Goal  Cell
}

// Path is a sequence of cells indexed by time step. Consecutive cells are
// identical (wait) or 4-adjacent (move). path[0] is the agent's start, the
// last cell its goal; afterwards the agent holds at the goal.
type Path []Cell

// Duration returns the arrival step, i.e. the index of the last cell.
func (p Path) Duration() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Cost is the number of steps until arrival. Waits and moves cost one each.
func (p Path) Cost() int {
	return p.Duration()
}

// At returns the cell occupied at the given step, holding at the final
// cell for steps past the arrival time.
func (p Path) At(step int) Cell {
	if len(p) == 0 {
		return Cell{}
	}
	if step >= len(p) {
		return p[len(p)-1]
	}
	if step < 0 {
		return p[0]
	}
	return p[step]
}

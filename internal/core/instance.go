package core

import "fmt"

// Instance is a MAPF problem: a grid plus the agents to route on it.
type Instance struct {
	Grid   *GridMap
	Agents []Agent
}

// NewInstance creates an empty instance over the given grid.
func NewInstance(grid *GridMap) *Instance {
	return &Instance{Grid: grid}
}

// InvalidInputError reports an agent whose endpoints cannot be planned.
// It is raised by Validate before any search begins.
type InvalidInputError struct {
	Agent  Agent
	Cell   Cell
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("agent %c: cell %s %s", e.Agent.Name, e.Cell, e.Reason)
}

// Validate checks that every agent's start and goal lie on traversable
// cells. Unsolvable but well-formed instances pass validation; they are
// reported as infeasible by the solver instead.
func (inst *Instance) Validate() error {
	for _, a := range inst.Agents {
		for _, c := range []Cell{a.Start, a.Goal} {
			if !inst.Grid.InBounds(c) {
				return &InvalidInputError{Agent: a, Cell: c, Reason: "is out of bounds"}
			}
			if inst.Grid.Blocked(c) {
				return &InvalidInputError{Agent: a, Cell: c, Reason: "is blocked"}
			}
		}
	}
	return nil
}

// AgentByID finds an agent by ID, or nil.
func (inst *Instance) AgentByID(id AgentID) *Agent {
	for i := range inst.Agents {
		if inst.Agents[i].ID == id {
			return &inst.Agents[i]
		}
	}
	return nil
}

package algo

import (
	"context"
	"sort"

	"github.com/gollth/shaman/internal/core"
)

// Prioritized plans agents one after another in id order, treating every
// previously planned route as a moving obstacle. It is fast and its
// results are collision-free, but it is neither optimal nor complete: a
// bad priority order can make it report infeasible where CBS still finds a
// solution. Kept as a baseline behind the same Solver interface.
type Prioritized struct{}

// NewPrioritized creates a prioritized planning solver.
func NewPrioritized() *Prioritized {
	return &Prioritized{}
}

func (p *Prioritized) Name() string { return "prioritized" }

// Solve implements the Solver interface.
func (p *Prioritized) Solve(ctx context.Context, inst *core.Instance) (*core.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	order := make([]core.Agent, len(inst.Agents))
	copy(order, inst.Agents)
	sort.Slice(order, func(i, j int) bool { return order[i].ID < order[j].ID })

	sol := core.NewSolution()
	var constraints []Constraint

	for _, agent := range order {
		if err := ctx.Err(); err != nil {
			return nil, ErrBudgetExceeded
		}

		path, ok := PlanPath(inst.Grid, agent, constraints)
		if !ok {
			return nil, ErrInfeasible
		}
		sol.Paths[agent.ID] = path

		// Reserve this route against all still-unplanned agents. The
		// reservation horizon must outlast any path a later agent could
		// need, including its hold at the goal.
		horizon := path.Duration() + inst.Grid.FreeCellCount() + 1
		for _, other := range order {
			if _, planned := sol.Paths[other.ID]; planned {
				continue
			}
			constraints = append(constraints, reserve(path, other.ID, horizon)...)
		}
	}

	// Reservations are finite while goal holds are not, so a later agent
	// could in principle slip through an expired reservation. Verify the
	// joint plan before handing it out; a colliding plan counts as a
	// failure of this priority ordering.
	if FindFirstConflict(sol.Paths) != nil {
		return nil, ErrInfeasible
	}

	sol.ComputeCost()
	sol.Expansions = len(order)
	return sol, nil
}

// reserve converts a planned path into constraints for another agent: a
// vertex constraint per occupied (cell, step) including the goal hold, and
// an edge constraint per move to rule out swaps.
func reserve(path core.Path, agent core.AgentID, horizon int) []Constraint {
	cs := make([]Constraint, 0, horizon+path.Duration())
	for step := 0; step <= horizon; step++ {
		cs = append(cs, Constraint{Agent: agent, Step: step, From: path.At(step)})
	}
	for step := 0; step < path.Duration(); step++ {
		from, to := path.At(step), path.At(step+1)
		if from == to {
			continue
		}
		cs = append(cs, Constraint{Agent: agent, Step: step, Edge: true, From: to, To: from})
	}
	return cs
}

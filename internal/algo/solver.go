// Package algo implements the two-level conflict-based MAPF solver: a
// constrained space-time A* for single agents and a high-level search over
// constraint trees that resolves collisions pairwise.
package algo

import (
	"context"
	"errors"
	"sort"

	"github.com/gollth/shaman/internal/core"
)

// Solver is the interface for MAPF algorithms.
type Solver interface {
	// Solve attempts to find a collision-free joint plan for the instance.
	// It returns ErrInfeasible when no such plan exists and
	// ErrBudgetExceeded when the search budget or context deadline ran out
	// first. Both are ordinary, caller-recoverable outcomes.
	Solve(ctx context.Context, inst *core.Instance) (*core.Solution, error)

	// Name returns the algorithm name.
	Name() string
}

// ErrInfeasible means no assignment of collision-free paths exists. This
// includes the degenerate case of a single agent with no route at all.
var ErrInfeasible = errors.New("no collision-free solution exists")

// ErrBudgetExceeded means the search stopped before exhausting the
// constraint tree; a solution may still exist.
var ErrBudgetExceeded = errors.New("search budget exceeded")

// PlanIndependent routes every agent alone, ignoring all other agents.
// The resulting joint plan usually conflicts; it exists so callers can
// display the unresolved routes of a problem.
func PlanIndependent(inst *core.Instance) (*core.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	paths := planRoot(inst)
	if paths == nil {
		return nil, ErrInfeasible
	}
	sol := core.NewSolution()
	sol.Paths = paths
	sol.ComputeCost()
	return sol, nil
}

// ConflictKind distinguishes the two closed conflict cases.
type ConflictKind int

const (
	// VertexConflict: two agents occupy the same cell at the same step.
	VertexConflict ConflictKind = iota
	// EdgeConflict: two agents swap cells across one step transition.
	EdgeConflict
)

func (k ConflictKind) String() string {
	return [...]string{"vertex", "edge"}[k]
}

// Conflict is a collision between agents A and B (A < B).
//
// For a vertex conflict, both agents occupy Cell at Step. For an edge
// conflict, A moves From->To while B moves To->From during the transition
// from Step to Step+1.
type Conflict struct {
	Kind ConflictKind
	A, B core.AgentID
	Step int
	Cell core.Cell // vertex conflicts only
	From core.Cell // edge conflicts: A's departure cell
	To   core.Cell // edge conflicts: A's arrival cell
}

// Constraint forbids one agent a specific timed move.
//
// A vertex constraint (Edge == false) forbids Agent from occupying From at
// Step. An edge constraint forbids Agent from leaving From at Step and
// arriving at To at Step+1.
type Constraint struct {
	Agent core.AgentID
	Step  int
	Edge  bool
	From  core.Cell
	To    core.Cell // edge constraints only
}

// sortedAgentIDs returns the path map's keys in ascending order, so that
// pair iteration is deterministic.
func sortedAgentIDs(paths map[core.AgentID]core.Path) []core.AgentID {
	ids := make([]core.AgentID, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FindFirstConflict scans the joint plan for the earliest conflict,
// padding each path by holding at its goal. At equal steps vertex
// conflicts win over edge conflicts, and the lowest agent-id pair wins
// among those, so repeated runs branch identically.
func FindFirstConflict(paths map[core.AgentID]core.Path) *Conflict {
	ids := sortedAgentIDs(paths)

	horizon := 0
	for _, p := range paths {
		if d := p.Duration(); d > horizon {
			horizon = d
		}
	}

	for step := 0; step <= horizon; step++ {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := paths[ids[i]], paths[ids[j]]
				if a.At(step) == b.At(step) {
					return &Conflict{
						Kind: VertexConflict,
						A:    ids[i],
						B:    ids[j],
						Step: step,
						Cell: a.At(step),
					}
				}
			}
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := paths[ids[i]], paths[ids[j]]
				from, to := a.At(step), a.At(step+1)
				if from != to && from == b.At(step+1) && to == b.At(step) {
					return &Conflict{
						Kind: EdgeConflict,
						A:    ids[i],
						B:    ids[j],
						Step: step,
						From: from,
						To:   to,
					}
				}
			}
		}
	}

	return nil
}

// FindAllConflicts collects every conflict in the joint plan, in the same
// order FindFirstConflict would report them.
func FindAllConflicts(paths map[core.AgentID]core.Path) []*Conflict {
	ids := sortedAgentIDs(paths)

	horizon := 0
	for _, p := range paths {
		if d := p.Duration(); d > horizon {
			horizon = d
		}
	}

	var conflicts []*Conflict
	for step := 0; step <= horizon; step++ {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := paths[ids[i]], paths[ids[j]]
				if a.At(step) == b.At(step) {
					conflicts = append(conflicts, &Conflict{
						Kind: VertexConflict,
						A:    ids[i],
						B:    ids[j],
						Step: step,
						Cell: a.At(step),
					})
				}
			}
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				a, b := paths[ids[i]], paths[ids[j]]
				from, to := a.At(step), a.At(step+1)
				if from != to && from == b.At(step+1) && to == b.At(step) {
					conflicts = append(conflicts, &Conflict{
						Kind: EdgeConflict,
						A:    ids[i],
						B:    ids[j],
						Step: step,
						From: from,
						To:   to,
					})
				}
			}
		}
	}

	return conflicts
}

package core

// Solution is a collision-free joint plan: one path per agent, all sharing
// a common horizon (shorter paths hold at their goal).
type Solution struct {
	Paths    map[AgentID]Path
	Cost     int // sum of per-agent path costs
	Makespan int // latest arrival step over all agents

	// Expansions counts high-level search nodes popped while producing
	// this solution. Informational, used by the benchmark tooling.
	Expansions int
}

// NewSolution creates an empty solution.
func NewSolution() *Solution {
	return &Solution{Paths: make(map[AgentID]Path)}
}

// CellAt returns the cell agent id occupies at the given step, holding at
// the goal past its arrival time.
func (s *Solution) CellAt(id AgentID, step int) Cell {
	return s.Paths[id].At(step)
}

// ComputeCost recalculates Cost and Makespan from the paths.
func (s *Solution) ComputeCost() int {
	s.Cost = 0
	s.Makespan = 0
	for _, p := range s.Paths {
		s.Cost += p.Cost()
		if d := p.Duration(); d > s.Makespan {
			s.Makespan = d
		}
	}
	return s.Cost
}

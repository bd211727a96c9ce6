package algo

import (
	"container/heap"
	"context"
	"sync"

	"github.com/gollth/shaman/internal/core"
)

// CBS implements conflict-based search: a best-first search over a tree of
// constraint sets, branching on one conflict at a time. The first popped
// node without conflicts carries a minimum-total-cost joint plan, because
// every branch only forbids one agent one timed move while the sibling
// branch keeps the symmetric alternative reachable.
type CBS struct {
	// MaxExpansions bounds how many constraint-tree nodes may be popped
	// before the search gives up with ErrBudgetExceeded. Zero means
	// unlimited; the context deadline still applies.
	MaxExpansions int
}

// NewCBS creates a CBS solver with the given expansion budget.
func NewCBS(maxExpansions int) *CBS {
	return &CBS{MaxExpansions: maxExpansions}
}

func (c *CBS) Name() string { return "cbs" }

// ctNode is a node of the constraint tree. Nodes only store their own
// incremental constraint and a parent pointer; the full constraint set is
// reconstructed by walking ancestors. Nodes are never mutated after they
// are pushed onto the frontier.
type ctNode struct {
	parent     *ctNode
	constraint Constraint // meaningless on the root
	paths      map[core.AgentID]core.Path
	cost       int
	depth      int // number of accumulated constraints
	seq        int // insertion order
	index      int // heap index
}

// constraintsFor collects the constraints scoped to one agent by walking
// up to the root.
func (n *ctNode) constraintsFor(id core.AgentID) []Constraint {
	var cs []Constraint
	for cur := n; cur.parent != nil; cur = cur.parent {
		if cur.constraint.Agent == id {
			cs = append(cs, cur.constraint)
		}
	}
	return cs
}

// ctHeap orders the frontier by total cost, then fewer constraints, then
// insertion order. The tie-breaks keep runs reproducible.
type ctHeap []*ctNode

func (h ctHeap) Len() int { return len(h) }
func (h ctHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	if h[i].depth != h[j].depth {
		return h[i].depth < h[j].depth
	}
	return h[i].seq < h[j].seq
}
func (h ctHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *ctHeap) Push(x any) {
	n := x.(*ctNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *ctHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Solve implements the Solver interface.
func (c *CBS) Solve(ctx context.Context, inst *core.Instance) (*core.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	root := &ctNode{paths: planRoot(inst)}
	if root.paths == nil {
		// Some agent cannot reach its goal even alone.
		return nil, ErrInfeasible
	}
	root.cost = totalCost(root.paths)

	open := &ctHeap{}
	heap.Init(open)
	heap.Push(open, root)
	seq := 1

	expansions := 0
	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, ErrBudgetExceeded
		}
		if c.MaxExpansions > 0 && expansions >= c.MaxExpansions {
			return nil, ErrBudgetExceeded
		}
		expansions++

		node := heap.Pop(open).(*ctNode)

		conflict := FindFirstConflict(node.paths)
		if conflict == nil {
			sol := core.NewSolution()
			for id, p := range node.paths {
				sol.Paths[id] = p
			}
			sol.ComputeCost()
			sol.Expansions = expansions
			return sol, nil
		}

		for _, constraint := range branchConstraints(conflict) {
			child := &ctNode{
				parent:     node,
				constraint: constraint,
				depth:      node.depth + 1,
				seq:        seq,
			}
			seq++

			agent := inst.AgentByID(constraint.Agent)
			path, ok := PlanPath(inst.Grid, *agent, child.constraintsFor(agent.ID))
			if !ok {
				continue // prune: this branch can never hold a solution
			}

			// Only the constrained agent replans; everyone else keeps the
			// parent's path.
			child.paths = make(map[core.AgentID]core.Path, len(node.paths))
			for id, p := range node.paths {
				child.paths[id] = p
			}
			child.paths[agent.ID] = path
			child.cost = totalCost(child.paths)
			heap.Push(open, child)
		}
	}

	return nil, ErrInfeasible
}

// branchConstraints derives the two symmetric child constraints from a
// conflict: each child forbids one of the involved agents the conflicting
// vertex or directed edge.
func branchConstraints(conflict *Conflict) [2]Constraint {
	switch conflict.Kind {
	case EdgeConflict:
		return [2]Constraint{
			{Agent: conflict.A, Step: conflict.Step, Edge: true, From: conflict.From, To: conflict.To},
			{Agent: conflict.B, Step: conflict.Step, Edge: true, From: conflict.To, To: conflict.From},
		}
	default:
		return [2]Constraint{
			{Agent: conflict.A, Step: conflict.Step, From: conflict.Cell},
			{Agent: conflict.B, Step: conflict.Step, From: conflict.Cell},
		}
	}
}

// planRoot plans every agent independently under no constraints. The
// searches share only the read-only grid, so they run concurrently. A nil
// result means at least one agent has no route at all.
func planRoot(inst *core.Instance) map[core.AgentID]core.Path {
	type result struct {
		id   core.AgentID
		path core.Path
		ok   bool
	}

	results := make([]result, len(inst.Agents))
	var wg sync.WaitGroup
	for i, agent := range inst.Agents {
		wg.Add(1)
		go func(i int, agent core.Agent) {
			defer wg.Done()
			path, ok := PlanPath(inst.Grid, agent, nil)
			results[i] = result{id: agent.ID, path: path, ok: ok}
		}(i, agent)
	}
	wg.Wait()

	paths := make(map[core.AgentID]core.Path, len(results))
	for _, r := range results {
		if !r.ok {
			return nil
		}
		paths[r.id] = r.path
	}
	return paths
}

func totalCost(paths map[core.AgentID]core.Path) int {
	cost := 0
	for _, p := range paths {
		cost += p.Cost()
	}
	return cost
}

package algo

import (
	"container/heap"

	"github.com/gollth/shaman/internal/core"
)

// astarNode is a search node over (cell, step) states.
type astarNode struct {
	state  core.TimedCell
	g      int // cost so far = state.Step
	f      int // g + h
	seq    int // insertion order, breaks f ties deterministically
	parent *astarNode
	index  int // heap index
}

// astarHeap implements heap.Interface ordered by f, then insertion order.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// PlanPath computes a minimum-cost path for one agent from start to goal
// that violates none of the agent's constraints. Constraints scoped to
// other agents are ignored. Each call owns its entire search state, so
// invocations are independent and may run concurrently.
//
// The boolean result is false when no feasible path exists under the given
// constraints, which is an expected outcome during high-level search.
func PlanPath(grid *core.GridMap, agent core.Agent, constraints []Constraint) (core.Path, bool) {
	dist := distanceToGoal(grid, agent.Goal)
	if _, reachable := dist[agent.Start]; !reachable {
		return nil, false
	}

	// An agent may not be forced to vacate its goal: a state counts as a
	// goal only once every vertex constraint on the goal cell lies in the
	// past. Also track the latest constrained step at all, which bounds
	// how long waiting can remain useful.
	lastGoalConstraint := -1
	lastConstraint := -1
	for _, c := range constraints {
		if c.Agent != agent.ID {
			continue
		}
		if c.Step > lastConstraint {
			lastConstraint = c.Step
		}
		if !c.Edge && c.From == agent.Goal && c.Step > lastGoalConstraint {
			lastGoalConstraint = c.Step
		}
	}

	// A cost-optimal path visits no (cell, step) state twice; past the
	// last constraint it has no reason to wait either, so anything beyond
	// this horizon is waiting forever or stuck in a loop.
	horizon := grid.FreeCellCount() + lastConstraint + 1

	violates := func(from, to core.Cell, departure int) bool {
		for _, c := range constraints {
			if c.Agent != agent.ID {
				continue
			}
			if !c.Edge && c.From == to && c.Step == departure+1 {
				return true
			}
			if c.Edge && c.From == from && c.To == to && c.Step == departure {
				return true
			}
		}
		return false
	}

	open := &astarHeap{}
	heap.Init(open)

	seq := 0
	push := func(state core.TimedCell, parent *astarNode) {
		h, ok := dist[state.Cell]
		if !ok {
			return // goal unreachable from here
		}
		node := &astarNode{state: state, g: state.Step, f: state.Step + h, seq: seq, parent: parent}
		seq++
		heap.Push(open, node)
	}

	start := core.TimedCell{Cell: agent.Start, Step: 0}
	if violatesStart(constraints, agent, start) {
		return nil, false
	}
	push(start, nil)

	visited := make(map[core.TimedCell]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)

		if current.state.Cell == agent.Goal && current.state.Step > lastGoalConstraint {
			return reconstructPath(current), true
		}

		if visited[current.state] {
			continue
		}
		visited[current.state] = true

		if current.state.Step >= horizon {
			continue
		}

		// Wait in place, then the four moves.
		here := current.state.Cell
		then := current.state.Step + 1
		if !violates(here, here, current.state.Step) {
			next := core.TimedCell{Cell: here, Step: then}
			if !visited[next] {
				push(next, current)
			}
		}
		for _, neighbor := range grid.Neighbors(here) {
			if violates(here, neighbor, current.state.Step) {
				continue
			}
			next := core.TimedCell{Cell: neighbor, Step: then}
			if !visited[next] {
				push(next, current)
			}
		}
	}

	return nil, false
}

// violatesStart reports whether a vertex constraint already forbids the
// agent's initial state. High-level branching never produces such a
// constraint for the agent it replans, but the check keeps PlanPath total.
func violatesStart(constraints []Constraint, agent core.Agent, start core.TimedCell) bool {
	for _, c := range constraints {
		if c.Agent == agent.ID && !c.Edge && c.From == start.Cell && c.Step == start.Step {
			return true
		}
	}
	return false
}

func reconstructPath(node *astarNode) core.Path {
	length := node.state.Step + 1
	path := make(core.Path, length)
	for n := node; n != nil; n = n.parent {
		path[n.state.Step] = n.state.Cell
	}
	return path
}

package algo

import "github.com/gollth/shaman/internal/core"

// distanceToGoal runs a breadth-first search backwards from goal over the
// unconstrained grid and returns the exact shortest-path distance of every
// reachable cell. As an A* heuristic this is admissible and consistent:
// time-expanded moves cost one and can shrink the grid distance by at most
// one. Cells absent from the result cannot reach the goal at all.
func distanceToGoal(grid *core.GridMap, goal core.Cell) map[core.Cell]int {
	dist := make(map[core.Cell]int)
	if !grid.Traversable(goal) {
		return dist
	}

	dist[goal] = 0
	queue := []core.Cell{goal}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range grid.Neighbors(cur) {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

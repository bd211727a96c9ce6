package algo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gollth/shaman/internal/core"
)

func TestPrioritized_Crossing(t *testing.T) {
	grid := buildGrid(
		"    ",
		"    ",
		"    ",
		"    ",
	)
	inst := instance(grid,
		core.Agent{ID: 0, Name: 'A', Start: cell(0, 0), Goal: cell(3, 3)},
		core.Agent{ID: 1, Name: 'B', Start: cell(3, 0), Goal: cell(0, 3)},
	)

	sol, err := NewPrioritized().Solve(context.Background(), inst)
	require.NoError(t, err)
	requireCollisionFree(t, sol)
	requireGoalsReached(t, inst, sol)

	// Agent A plans first and unconstrained, so it walks its shortest route.
	assert.Equal(t, 6, sol.Paths[0].Cost())
}

func TestPrioritized_YieldsToEarlierAgent(t *testing.T) {
	// B's shortest route crosses A's held goal; it has to go around or wait.
	grid := buildGrid(
		"   ",
		"   ",
	)
	inst := instance(grid,
		core.Agent{ID: 0, Name: 'A', Start: cell(1, 0), Goal: cell(1, 0)},
		core.Agent{ID: 1, Name: 'B', Start: cell(0, 0), Goal: cell(2, 0)},
	)

	sol, err := NewPrioritized().Solve(context.Background(), inst)
	require.NoError(t, err)
	requireCollisionFree(t, sol)
	requireGoalsReached(t, inst, sol)
	assert.Equal(t, 4, sol.Paths[1].Cost(), "detour through the second row")
}

func TestPrioritized_IncompleteWhereCBSSolves(t *testing.T) {
	// A's goal sits on B's only route and A settles there before B can
	// pass. Planning A first walls B off for good, while CBS simply
	// delays A until B is through.
	grid := buildGrid(
		"    ",
		"#  #",
	)
	inst := instance(grid,
		core.Agent{ID: 0, Name: 'A', Start: cell(1, 1), Goal: cell(1, 0)},
		core.Agent{ID: 1, Name: 'B', Start: cell(3, 0), Goal: cell(0, 0)},
	)

	_, err := NewPrioritized().Solve(context.Background(), inst)
	assert.ErrorIs(t, err, ErrInfeasible)

	sol, err := NewCBS(0).Solve(context.Background(), inst)
	require.NoError(t, err)
	requireCollisionFree(t, sol)
	requireGoalsReached(t, inst, sol)
}

func TestPrioritized_ContextCancelled(t *testing.T) {
	grid := buildGrid("   ")
	inst := instance(grid, core.Agent{ID: 0, Name: 'A', Start: cell(0, 0), Goal: cell(2, 0)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPrioritized().Solve(ctx, inst)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

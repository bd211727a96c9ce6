package mapfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gollth/shaman/internal/core"
)

func parse(t *testing.T, drawing string) (*core.Instance, error) {
	t.Helper()
	return Parse("test.txt", strings.NewReader(drawing))
}

func TestParse_Simple(t *testing.T) {
	inst, err := parse(t, ""+
		"A  b\n"+
		"## #\n"+
		"B  a\n")
	require.NoError(t, err)

	assert.Equal(t, 4, inst.Grid.Width())
	assert.Equal(t, 3, inst.Grid.Height())
	assert.True(t, inst.Grid.Blocked(core.Cell{X: 0, Y: 1}))
	assert.True(t, inst.Grid.Blocked(core.Cell{X: 3, Y: 1}))
	assert.False(t, inst.Grid.Blocked(core.Cell{X: 2, Y: 1}))

	require.Len(t, inst.Agents, 2)
	a, b := inst.Agents[0], inst.Agents[1]
	assert.Equal(t, 'A', a.Name)
	assert.Equal(t, core.Cell{X: 0, Y: 0}, a.Start)
	assert.Equal(t, core.Cell{X: 3, Y: 2}, a.Goal)
	assert.Equal(t, 'B', b.Name)
	assert.Equal(t, core.Cell{X: 0, Y: 2}, b.Start)
	assert.Equal(t, core.Cell{X: 3, Y: 0}, b.Goal)
}

func TestParse_UnicodeObstacles(t *testing.T) {
	inst, err := parse(t, ""+
		"A█ \n"+
		" █a\n")
	require.NoError(t, err)

	assert.True(t, inst.Grid.Blocked(core.Cell{X: 1, Y: 0}))
	assert.True(t, inst.Grid.Blocked(core.Cell{X: 1, Y: 1}))
	// '█' is multi-byte; the goal after it must still land on column 2.
	require.Len(t, inst.Agents, 1)
	assert.Equal(t, core.Cell{X: 2, Y: 1}, inst.Agents[0].Goal)
}

func TestParse_ShortLinesAreFree(t *testing.T) {
	inst, err := parse(t, ""+
		"A\n"+
		"   a\n")
	require.NoError(t, err)

	assert.Equal(t, 4, inst.Grid.Width())
	assert.True(t, inst.Grid.Traversable(core.Cell{X: 3, Y: 0}))
}

func TestParse_AgentsNumberedInLetterOrder(t *testing.T) {
	// Drawn out of order; IDs still follow the alphabet.
	inst, err := parse(t, ""+
		"C b c\n"+
		"B a A\n")
	require.NoError(t, err)

	require.Len(t, inst.Agents, 3)
	for i, name := range []rune{'A', 'B', 'C'} {
		assert.Equal(t, core.AgentID(i), inst.Agents[i].ID)
		assert.Equal(t, name, inst.Agents[i].Name)
	}
}

func TestParse_GoalLessAgentHoldsStart(t *testing.T) {
	inst, err := parse(t, "A B b\n")
	require.NoError(t, err)

	require.Len(t, inst.Agents, 2)
	a := inst.Agents[0]
	assert.Equal(t, a.Start, a.Goal, "agent without a goal stays put")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		drawing   string
		want      error
		line, col int
	}{
		{"invalid cell", "A ?\n  a\n", ErrInvalidCell, 1, 3},
		{"duplicate robot", "A a\nA  \n", ErrDuplicateRobot, 2, 1},
		{"duplicate goal", "A aa\n", ErrDuplicateGoal, 1, 4},
		{"goal without robot", "A a\n  b\n", ErrNoRobotForGoal, 2, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.drawing)
			require.ErrorIs(t, err, tc.want)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.line, perr.Line)
			assert.Equal(t, tc.col, perr.Col)
			assert.Contains(t, perr.Error(), "test.txt:")
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("does/not/exist.txt")
	assert.Error(t, err)
}

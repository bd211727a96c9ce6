package scen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gollth/shaman/internal/core"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_InlineGrid(t *testing.T) {
	path := write(t, t.TempDir(), "scenario.yaml", `
grid:
  - "A  b"
  - "    "
  - "B  a"
solver: prioritized
budget: 500
fps: 4
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prioritized", s.Solver)
	assert.Equal(t, 500, s.Budget)
	assert.Equal(t, 4.0, s.FPS)

	inst, err := s.Instance()
	require.NoError(t, err)
	assert.Equal(t, 4, inst.Grid.Width())
	assert.Equal(t, 3, inst.Grid.Height())
	require.Len(t, inst.Agents, 2)
	assert.Equal(t, core.Cell{X: 3, Y: 2}, inst.Agents[0].Goal)
}

func TestLoad_MapReference(t *testing.T) {
	// The map path resolves relative to the scenario file, not the
	// working directory.
	dir := t.TempDir()
	write(t, dir, "corridor.txt", "A  a\n")
	path := write(t, dir, "scenario.yaml", "map: corridor.txt\n")

	s, err := Load(path)
	require.NoError(t, err)

	inst, err := s.Instance()
	require.NoError(t, err)
	require.Len(t, inst.Agents, 1)
	assert.Equal(t, core.Cell{X: 0, Y: 0}, inst.Agents[0].Start)
	assert.Equal(t, core.Cell{X: 3, Y: 0}, inst.Agents[0].Goal)
}

func TestLoad_AgentOverrides(t *testing.T) {
	path := write(t, t.TempDir(), "scenario.yaml", `
grid:
  - "A  a"
  - "    "
agents:
  - {name: X, start: [0, 1], goal: [3, 1]}
  - {start: [3, 0], goal: [0, 0]}
`)

	s, err := Load(path)
	require.NoError(t, err)

	inst, err := s.Instance()
	require.NoError(t, err)
	require.Len(t, inst.Agents, 2)

	// Overrides replace the drawn agents entirely.
	x := inst.Agents[0]
	assert.Equal(t, 'X', x.Name)
	assert.Equal(t, core.Cell{X: 0, Y: 1}, x.Start)
	assert.Equal(t, core.Cell{X: 3, Y: 1}, x.Goal)

	// Unnamed overrides fall back to letters by position.
	assert.Equal(t, 'B', inst.Agents[1].Name)
}

func TestLoad_OverrideOffGrid(t *testing.T) {
	path := write(t, t.TempDir(), "scenario.yaml", `
grid:
  - "  "
agents:
  - {start: [0, 0], goal: [5, 5]}
`)

	s, err := Load(path)
	require.NoError(t, err)

	_, err = s.Instance()
	var invalid *core.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestLoad_NoGrid(t *testing.T) {
	path := write(t, t.TempDir(), "scenario.yaml", "solver: cbs\n")

	s, err := Load(path)
	require.NoError(t, err)

	_, err = s.Instance()
	assert.ErrorIs(t, err, ErrNoGrid)
}

func TestLoad_Malformed(t *testing.T) {
	path := write(t, t.TempDir(), "scenario.yaml", "grid: [unclosed\n")

	_, err := Load(path)
	assert.Error(t, err)
}

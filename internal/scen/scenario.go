// Package scen loads YAML scenario files. A scenario names a map file (or
// embeds the drawing inline) and may override the agents and solver
// defaults, which keeps benchmark definitions next to their maps.
package scen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/gollth/shaman/internal/core"
	"github.com/gollth/shaman/internal/mapfile"
)

// ErrNoGrid means a scenario defines neither a map file nor inline rows.
var ErrNoGrid = errors.New("scen: scenario needs either map: or grid:")

// AgentSpec declares one agent. Coordinates are [x, y].
type AgentSpec struct {
	Name  string `yaml:"name"`
	Start [2]int `yaml:"start"`
	Goal  [2]int `yaml:"goal"`
}

// Scenario is the on-disk scenario document.
type Scenario struct {
	// Map is a map file path, relative to the scenario file.
	Map string `yaml:"map,omitempty"`
	// Grid embeds the drawing inline as rows, alternative to Map.
	Grid []string `yaml:"grid,omitempty"`
	// Agents overrides the agents drawn on the map when non-empty.
	Agents []AgentSpec `yaml:"agents,omitempty"`

	Solver string  `yaml:"solver,omitempty"` // cbs (default) or prioritized
	Budget int     `yaml:"budget,omitempty"` // max constraint-tree expansions
	FPS    float64 `yaml:"fps,omitempty"`    // animation default

	dir string // directory of the loaded file, for resolving Map
}

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scen: %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return &s, nil
}

// Instance materializes the scenario into a problem instance.
func (s *Scenario) Instance() (*core.Instance, error) {
	var inst *core.Instance
	var err error
	switch {
	case len(s.Grid) > 0:
		inst, err = mapfile.Parse("grid", strings.NewReader(strings.Join(s.Grid, "\n")))
	case s.Map != "":
		inst, err = mapfile.ParseFile(filepath.Join(s.dir, s.Map))
	default:
		return nil, ErrNoGrid
	}
	if err != nil {
		return nil, err
	}

	if len(s.Agents) > 0 {
		inst.Agents = inst.Agents[:0]
		for i, spec := range s.Agents {
			name := 'A' + rune(i)
			if spec.Name != "" {
				name = []rune(spec.Name)[0]
			}
			inst.Agents = append(inst.Agents, core.Agent{
				ID:    core.AgentID(i),
				Name:  name,
				Start: core.Cell{X: spec.Start[0], Y: spec.Start[1]},
				Goal:  core.Cell{X: spec.Goal[0], Y: spec.Goal[1]},
			})
		}
		if err := inst.Validate(); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

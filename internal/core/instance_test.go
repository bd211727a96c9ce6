package core

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	grid := NewGridMap(3, 3)
	grid.Block(Cell{X: 1, Y: 1})

	tests := []struct {
		name  string
		agent Agent
		valid bool
	}{
		{"ok", Agent{Name: 'A', Start: Cell{X: 0, Y: 0}, Goal: Cell{X: 2, Y: 2}}, true},
		{"start out of bounds", Agent{Name: 'A', Start: Cell{X: -1, Y: 0}, Goal: Cell{X: 2, Y: 2}}, false},
		{"goal out of bounds", Agent{Name: 'A', Start: Cell{X: 0, Y: 0}, Goal: Cell{X: 3, Y: 0}}, false},
		{"start blocked", Agent{Name: 'A', Start: Cell{X: 1, Y: 1}, Goal: Cell{X: 2, Y: 2}}, false},
		{"goal blocked", Agent{Name: 'A', Start: Cell{X: 0, Y: 0}, Goal: Cell{X: 1, Y: 1}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inst := NewInstance(grid)
			inst.Agents = []Agent{tc.agent}

			err := inst.Validate()
			if tc.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("want InvalidInputError, got %v", err)
			}
		})
	}
}

func TestAgentByID(t *testing.T) {
	inst := NewInstance(NewGridMap(2, 2))
	inst.Agents = []Agent{
		{ID: 0, Name: 'A'},
		{ID: 1, Name: 'B'},
	}

	if got := inst.AgentByID(1); got == nil || got.Name != 'B' {
		t.Errorf("AgentByID(1) = %v; want agent B", got)
	}
	if got := inst.AgentByID(7); got != nil {
		t.Errorf("AgentByID(7) = %v; want nil", got)
	}
}

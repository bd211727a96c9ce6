// Package mapfile parses the textual map drawing format into a problem
// instance. The alphabet: ' ' is a free cell, '#' or '█' an obstacle,
// 'A'..'D' an agent's start and the matching lowercase letter its goal.
package mapfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gollth/shaman/internal/core"
)

const maxAgents = 4

var (
	// ErrInvalidCell marks a character outside the map alphabet.
	ErrInvalidCell = errors.New("expected either an obstacle (# or █), a free cell (space), a robot (A..D) or a goal (a..d)")
	// ErrDuplicateRobot marks a robot letter drawn twice.
	ErrDuplicateRobot = errors.New("robot names must be unique")
	// ErrDuplicateGoal marks a second goal for the same robot.
	ErrDuplicateGoal = errors.New("only one goal per robot")
	// ErrNoRobotForGoal marks a goal whose robot letter is not on the map.
	ErrNoRobotForGoal = errors.New("no robot defined for this goal")
)

// ParseError is a diagnostic tied to a position in the map drawing.
// Line and Col are 1-based.
type ParseError struct {
	File string
	Line int
	Col  int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Col, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile reads and parses a map file.
func ParseFile(path string) (*core.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse parses a map drawing into an instance. The grid spans the longest
// line times the number of lines; cells beyond a short line are free.
// Agents are numbered in letter order, A first. An agent without a drawn
// goal is given its start as goal: it stands still but occupies space.
func Parse(name string, r io.Reader) (*core.Instance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	width := 0
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
		if n := len([]rune(lines[i])); n > width {
			width = n
		}
	}

	grid := core.NewGridMap(width, len(lines))

	starts := make(map[rune]core.Cell)
	goals := make(map[rune]core.Cell)
	type spot struct{ line, col int }
	goalSpots := make(map[rune]spot)

	for y, line := range lines {
		for x, ch := range []rune(line) {
			cell := core.Cell{X: x, Y: y}
			switch {
			case ch == ' ':
				// free
			case ch == '#' || ch == '█':
				grid.Block(cell)
			case ch >= 'A' && ch <= 'D':
				if _, dup := starts[ch]; dup {
					return nil, &ParseError{File: name, Line: y + 1, Col: x + 1, Err: ErrDuplicateRobot}
				}
				starts[ch] = cell
			case ch >= 'a' && ch <= 'd':
				up := ch - 'a' + 'A'
				if _, dup := goals[up]; dup {
					return nil, &ParseError{File: name, Line: y + 1, Col: x + 1, Err: ErrDuplicateGoal}
				}
				goals[up] = cell
				goalSpots[up] = spot{line: y + 1, col: x + 1}
			default:
				return nil, &ParseError{File: name, Line: y + 1, Col: x + 1, Err: ErrInvalidCell}
			}
		}
	}

	for up, s := range goalSpots {
		if _, ok := starts[up]; !ok {
			return nil, &ParseError{File: name, Line: s.line, Col: s.col, Err: ErrNoRobotForGoal}
		}
	}

	inst := core.NewInstance(grid)
	for i := 0; i < maxAgents; i++ {
		letter := rune('A' + i)
		start, ok := starts[letter]
		if !ok {
			continue
		}
		goal, ok := goals[letter]
		if !ok {
			goal = start
		}
		inst.Agents = append(inst.Agents, core.Agent{
			ID:    core.AgentID(len(inst.Agents)),
			Name:  letter,
			Start: start,
			Goal:  goal,
		})
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

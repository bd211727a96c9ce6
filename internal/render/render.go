// Package render draws instances and their solutions as terminal frames
// and animates them in place.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/gollth/shaman/internal/algo"
	"github.com/gollth/shaman/internal/core"
)

// Agent colors by letter, A..D.
var palette = []*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
}

var crossing = color.New(color.FgMagenta)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// Renderer draws one instance/solution pair.
type Renderer struct {
	inst      *core.Instance
	sol       *core.Solution
	ids       []core.AgentID       // ascending, drawing order
	colors    map[core.AgentID]*color.Color
	routes    map[core.Cell]core.AgentID // first route covering each cell
	crossings map[core.Cell]bool         // cells where routes collide
}

// New prepares a renderer. The solution may still contain conflicts (for
// instance when conflict resolution was skipped); conflicting cells are
// marked in the frames.
func New(inst *core.Instance, sol *core.Solution) *Renderer {
	r := &Renderer{
		inst:      inst,
		sol:       sol,
		colors:    make(map[core.AgentID]*color.Color),
		routes:    make(map[core.Cell]core.AgentID),
		crossings: make(map[core.Cell]bool),
	}

	for _, a := range inst.Agents {
		r.ids = append(r.ids, a.ID)
		r.colors[a.ID] = palette[int(a.ID)%len(palette)]
	}

	for i := len(r.ids) - 1; i >= 0; i-- {
		id := r.ids[i]
		for _, cell := range sol.Paths[id] {
			r.routes[cell] = id
		}
	}

	for _, c := range algo.FindAllConflicts(sol.Paths) {
		switch c.Kind {
		case algo.VertexConflict:
			r.crossings[c.Cell] = true
		case algo.EdgeConflict:
			r.crossings[c.From] = true
			r.crossings[c.To] = true
		}
	}

	return r
}

// Frame renders the grid at one time step, bordered with box-drawing
// characters, agents as ●, their routes as ·, route collisions as ✕ and
// obstacles as █.
func (r *Renderer) Frame(step int) string {
	var b strings.Builder

	width := r.inst.Grid.Width()
	b.WriteString("╭" + strings.Repeat("─", width) + "╮\n")

	for y := 0; y < r.inst.Grid.Height(); y++ {
		b.WriteString("│")
		for x := 0; x < width; x++ {
			cell := core.Cell{X: x, Y: y}
			b.WriteString(r.glyph(cell, step))
		}
		b.WriteString("│\n")
	}

	b.WriteString("╰" + strings.Repeat("─", width) + "╯\n")
	return b.String()
}

func (r *Renderer) glyph(cell core.Cell, step int) string {
	for _, id := range r.ids {
		if r.sol.CellAt(id, step) == cell {
			return r.colors[id].Sprint("●")
		}
	}
	if r.crossings[cell] {
		return crossing.Sprint("✕")
	}
	if id, ok := r.routes[cell]; ok {
		return r.colors[id].Sprint("·")
	}
	if r.inst.Grid.Blocked(cell) {
		return "█"
	}
	return " "
}

// Height returns the number of terminal lines per frame.
func (r *Renderer) Height() int {
	return r.inst.Grid.Height() + 2
}

// Animate replays the solution at the given frame rate, redrawing the
// frame in place. It blocks until the last agent has arrived.
func (r *Renderer) Animate(w io.Writer, fps float64) {
	if fps <= 0 {
		fmt.Fprint(w, r.Frame(0))
		return
	}

	dt := time.Duration(float64(time.Second) / fps)
	fmt.Fprint(w, hideCursor)
	for step := 0; step <= r.sol.Makespan; step++ {
		fmt.Fprint(w, r.Frame(step))
		if step < r.sol.Makespan {
			// Move the cursor back to the frame's first line.
			fmt.Fprintf(w, "\x1b[%dA\r", r.Height())
			time.Sleep(dt)
		}
	}
	fmt.Fprint(w, showCursor)
}

// Package vis implements a Gio-based playback view of a solved instance:
// the grid with its obstacles, every agent's route, and the agents gliding
// along their paths. Space plays/pauses, the arrow keys step one time
// step, Home rewinds.
package vis

import (
	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"

	"github.com/gollth/shaman/internal/core"
)

// App is the playback application.
type App struct {
	inst     *core.Instance
	sol      *core.Solution
	playback *Playback
}

// NewApp creates a playback app over a solved instance.
func NewApp(inst *core.Instance, sol *core.Solution) *App {
	return &App{
		inst:     inst,
		sol:      sol,
		playback: NewPlayback(sol.Makespan),
	}
}

// Run drives the window event loop until the window is closed.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKey(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.playback.Playing {
				a.playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKey(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.playback.TogglePlay()
	case key.NameLeftArrow:
		a.playback.StepBack()
	case key.NameRightArrow:
		a.playback.StepForward()
	case key.NameHome:
		a.playback.Reset()
	}
}

func (a *App) layout(gtx layout.Context) {
	paint.Fill(gtx.Ops, colorBackground)

	width := a.inst.Grid.Width()
	height := a.inst.Grid.Height()
	if width == 0 || height == 0 {
		return
	}

	// Fit the grid into the window, centered.
	cell := min(
		float32(gtx.Constraints.Max.X)/float32(width),
		float32(gtx.Constraints.Max.Y)/float32(height),
	)
	offX := (float32(gtx.Constraints.Max.X) - cell*float32(width)) / 2
	offY := (float32(gtx.Constraints.Max.Y) - cell*float32(height)) / 2

	center := func(c core.Cell) (float32, float32) {
		return offX + (float32(c.X)+0.5)*cell, offY + (float32(c.Y)+0.5)*cell
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := core.Cell{X: x, Y: y}
			cx, cy := center(c)
			col := colorFreeCell
			if a.inst.Grid.Blocked(c) {
				col = colorObstacle
			}
			drawSquare(gtx, cx, cy, cell-2, col)
		}
	}

	// Routes underneath the agents.
	for i, agent := range a.inst.Agents {
		col := agentColor(i)
		col.A = 110
		for _, c := range a.sol.Paths[agent.ID] {
			cx, cy := center(c)
			drawFilledCircle(gtx, cx, cy, cell*0.08, col)
		}
	}

	// Agents interpolated between their current and next step.
	step := int(a.playback.CurrentTime)
	frac := float32(a.playback.CurrentTime - float64(step))
	for i, agent := range a.inst.Agents {
		from := a.sol.CellAt(agent.ID, step)
		to := a.sol.CellAt(agent.ID, step+1)
		fx, fy := center(from)
		tx, ty := center(to)
		cx := fx + (tx-fx)*frac
		cy := fy + (ty-fy)*frac
		drawFilledCircle(gtx, cx, cy, cell*0.33, agentColor(i))
	}
}

package vis

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// Agent colors by id, matching the terminal palette.
var agentPalette = []color.NRGBA{
	{R: 80, G: 140, B: 255, A: 255},  // blue
	{R: 235, G: 80, B: 80, A: 255},   // red
	{R: 80, G: 200, B: 110, A: 255},  // green
	{R: 230, G: 200, B: 60, A: 255},  // yellow
}

var (
	colorBackground = color.NRGBA{R: 30, G: 30, B: 35, A: 255}
	colorFreeCell   = color.NRGBA{R: 48, G: 48, B: 56, A: 255}
	colorObstacle   = color.NRGBA{R: 14, G: 14, B: 16, A: 255}
)

func agentColor(i int) color.NRGBA {
	return agentPalette[i%len(agentPalette)]
}

func drawSquare(gtx layout.Context, cx, cy, size float32, col color.NRGBA) {
	half := size / 2
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx-half, cy-half))
	path.LineTo(f32.Pt(cx+half, cy-half))
	path.LineTo(f32.Pt(cx+half, cy+half))
	path.LineTo(f32.Pt(cx-half, cy+half))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := 24
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

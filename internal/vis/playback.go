package vis

import "time"

// Playback manages replay timing over a solution's step range. Time is
// continuous so agents glide between steps.
type Playback struct {
	CurrentTime float64 // current replay time in steps
	MaxStep     float64 // solution makespan
	Speed       float64 // steps per second
	Playing     bool
	lastUpdate  time.Time
}

// NewPlayback creates a paused playback over [0, maxStep].
func NewPlayback(maxStep int) *Playback {
	return &Playback{
		MaxStep:    float64(maxStep),
		Speed:      2.0,
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback, restarting from 0 when at the end.
func (p *Playback) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxStep {
			p.CurrentTime = 0
		}
	}
}

// Reset rewinds to the beginning and pauses.
func (p *Playback) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves time forward by the wall clock elapsed since last call.
func (p *Playback) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.CurrentTime += now.Sub(p.lastUpdate).Seconds() * p.Speed
	p.lastUpdate = now

	if p.CurrentTime >= p.MaxStep {
		p.CurrentTime = p.MaxStep
		p.Playing = false
	}
}

// SetTime clamps and sets the current replay time.
func (p *Playback) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxStep {
		t = p.MaxStep
	}
	p.CurrentTime = t
}

// StepForward pauses and advances one step.
func (p *Playback) StepForward() {
	p.Playing = false
	p.SetTime(p.CurrentTime + 1)
}

// StepBack pauses and rewinds one step.
func (p *Playback) StepBack() {
	p.Playing = false
	p.SetTime(p.CurrentTime - 1)
}

package vis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaybackStepping(t *testing.T) {
	p := NewPlayback(5)

	p.StepForward()
	p.StepForward()
	assert.Equal(t, 2.0, p.CurrentTime)
	assert.False(t, p.Playing, "stepping pauses")

	p.StepBack()
	assert.Equal(t, 1.0, p.CurrentTime)

	p.StepBack()
	p.StepBack()
	assert.Equal(t, 0.0, p.CurrentTime, "clamped at the start")
}

func TestPlaybackSetTimeClamps(t *testing.T) {
	p := NewPlayback(3)

	p.SetTime(99)
	assert.Equal(t, 3.0, p.CurrentTime)
	p.SetTime(-1)
	assert.Equal(t, 0.0, p.CurrentTime)
}

func TestPlaybackToggleRestartsAtEnd(t *testing.T) {
	p := NewPlayback(4)
	p.SetTime(4)

	p.TogglePlay()
	assert.True(t, p.Playing)
	assert.Equal(t, 0.0, p.CurrentTime, "replay from the start when at the end")

	p.TogglePlay()
	assert.False(t, p.Playing)
}

func TestPlaybackReset(t *testing.T) {
	p := NewPlayback(4)
	p.SetTime(2)
	p.Playing = true

	p.Reset()
	assert.Equal(t, 0.0, p.CurrentTime)
	assert.False(t, p.Playing)
}

package render

import (
	"testing"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropAnimationFrames(t *testing.T) {
	l := DefaultLayout()
	a := NewDropAnimation(l, 0, 3)

	frames := a.Frames()
	require.NotEmpty(t, frames)

	assert.Equal(t, l.Margin+l.Cell/2, frames[0])
	assert.Equal(t, l.CellCenter(0, 3).Y, frames[len(frames)-1])
	for i := 1; i < len(frames)-1; i++ {
		assert.Equal(t, float64(DropPixelsPerStep), frames[i]-frames[i-1])
	}
	assert.LessOrEqual(t, frames[len(frames)-1]-frames[len(frames)-2], float64(DropPixelsPerStep))

	// Frames must not advance the animation itself
	assert.Equal(t, frames[0], a.Y)
	assert.Equal(t, time.Duration(len(frames)-1)*DropStepMS*time.Millisecond, a.Duration())
}

func TestDropAnimationStep(t *testing.T) {
	l := DefaultLayout()
	a := NewDropAnimation(l, domain.Rows-1, 0)

	steps := 0
	for a.Step() {
		steps++
	}
	assert.True(t, a.Done())
	assert.Equal(t, a.EndY, a.Y)
	assert.Equal(t, len(a.Frames()), 1)
	assert.Positive(t, steps)
	assert.False(t, a.Step())
}

func TestDropAnimationView(t *testing.T) {
	l := DefaultLayout()
	a := NewDropAnimation(l, 2, 6)

	v := a.View(DefaultPalette, domain.Player2)
	assert.Equal(t, l.CellCenter(2, 6).X, v.X)
	assert.Equal(t, DefaultPalette.Yellow, v.Color)
	assert.Equal(t, DropStepMS, v.StepMS)
	assert.InDelta(t, 92*0.37, v.Radius, 1e-9)
	assert.Equal(t, a.Frames(), v.Frames)
}

func TestDropAnimationRun(t *testing.T) {
	a := NewDropAnimation(DefaultLayout(), domain.Rows-1, 1)
	want := a.Frames()

	var got []float64
	done := false
	a.Run(func(y float64) { got = append(got, y) }, func() { done = true })

	assert.Equal(t, want, got)
	assert.True(t, done)
}

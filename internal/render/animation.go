package render

import (
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	DropPixelsPerStep = 14
	DropStepMS        = 12
	WinDelay          = 2 * time.Second
)

// DropAnimation interpolates the falling disk from the lane above the board
// down to the center of its target cell at a fixed speed per frame.
type DropAnimation struct {
	Row  int
	Col  int
	X    float64
	Y    float64
	EndY float64

	radius float64
	step   float64
}

func NewDropAnimation(l Layout, row, col int) *DropAnimation {
	return &DropAnimation{
		Row:    row,
		Col:    col,
		X:      l.BoardLeft() + float64(col)*l.Cell + l.Cell/2,
		Y:      l.Margin + l.Cell/2,
		EndY:   l.CellCenter(row, col).Y,
		radius: l.DiskRadius(),
		step:   DropPixelsPerStep,
	}
}

// Step advances one frame and reports whether the disk moved.
func (a *DropAnimation) Step() bool {
	if a.Done() {
		return false
	}
	a.Y = min(a.Y+a.step, a.EndY)
	return true
}

func (a *DropAnimation) Done() bool {
	return a.Y >= a.EndY
}

// Frames returns every y position from the current one to the end, without
// advancing the animation.
func (a *DropAnimation) Frames() []float64 {
	sim := *a
	frames := []float64{sim.Y}
	for sim.Step() {
		frames = append(frames, sim.Y)
	}
	return frames
}

func (a *DropAnimation) Duration() time.Duration {
	return time.Duration(len(a.Frames())-1) * DropStepMS * time.Millisecond
}

func (a *DropAnimation) View(p Palette, player domain.PlayerID) *domain.DropView {
	return &domain.DropView{
		X:      a.X,
		Radius: a.radius,
		Frames: a.Frames(),
		StepMS: DropStepMS,
		Color:  p.ColorFor(player),
	}
}

// Run drives the animation on a ticker, calling onFrame for every position
// and onDone once the disk has landed.
func (a *DropAnimation) Run(onFrame func(y float64), onDone func()) {
	ticker := time.NewTicker(DropStepMS * time.Millisecond)
	defer ticker.Stop()

	onFrame(a.Y)
	for a.Step() {
		<-ticker.C
		onFrame(a.Y)
	}
	if onDone != nil {
		onDone()
	}
}

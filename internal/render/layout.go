package render

import (
	"math"

	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	DefaultCell   = 92
	DefaultMargin = 20
)

// Layout maps board coordinates to canvas pixels. The board is drawn one
// cell below the top margin so the falling disk has a lane to start from.
type Layout struct {
	Cell   float64 `json:"cell"`
	Margin float64 `json:"margin"`
}

type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func DefaultLayout() Layout {
	return Layout{Cell: DefaultCell, Margin: DefaultMargin}
}

func (l Layout) BoardLeft() float64 { return l.Margin }
func (l Layout) BoardTop() float64  { return l.Margin + l.Cell }
func (l Layout) BoardWidth() float64 {
	return domain.Columns * l.Cell
}
func (l Layout) BoardHeight() float64 {
	return domain.Rows * l.Cell
}

func (l Layout) CanvasWidth() float64 {
	return l.BoardLeft() + l.BoardWidth() + l.Margin
}

func (l Layout) CanvasHeight() float64 {
	return l.BoardTop() + l.BoardHeight() + l.Margin
}

// CellRect returns the square occupied by a cell. Row 0 is drawn at the bottom.
func (l Layout) CellRect(row, col int) Rect {
	x1 := l.BoardLeft() + float64(col)*l.Cell
	y1 := l.BoardTop() + float64(domain.Rows-1-row)*l.Cell
	return Rect{X1: x1, Y1: y1, X2: x1 + l.Cell, Y2: y1 + l.Cell}
}

func (l Layout) CellCenter(row, col int) domain.Point {
	r := l.CellRect(row, col)
	return domain.Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// HoleRect is the drawn disk inside a cell, inset by 10px on each side.
func (l Layout) HoleRect(row, col int) Rect {
	r := l.CellRect(row, col)
	return Rect{X1: r.X1 + 10, Y1: r.Y1 + 10, X2: r.X2 - 10, Y2: r.Y2 - 10}
}

// ColumnAt translates a pointer x coordinate into a column index. The result
// is not clamped; validate it with domain.ColumnHasSpace.
func (l Layout) ColumnAt(x float64) int {
	return int(math.Floor((x - l.BoardLeft()) / l.Cell))
}

// RowAt is the grid row under a canvas y coordinate. Points above the board
// give domain.Rows or more.
func (l Layout) RowAt(y float64) int {
	return domain.Rows - 1 - int(math.Floor((y-l.BoardTop())/l.Cell))
}

// DiskRadius is the radius of the falling disk.
func (l Layout) DiskRadius() float64 {
	return l.Cell * 0.37
}

package render

import (
	"testing"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLayoutCanvas(t *testing.T) {
	l := DefaultLayout()

	assert.Equal(t, float64(20+7*92+20), l.CanvasWidth())
	assert.Equal(t, float64(20+92+6*92+20), l.CanvasHeight())
}

func TestCellRectBottomRowIsLowest(t *testing.T) {
	l := DefaultLayout()

	bottom := l.CellRect(0, 0)
	top := l.CellRect(domain.Rows-1, 0)

	assert.Equal(t, Rect{X1: 20, Y1: 572, X2: 112, Y2: 664}, bottom)
	assert.Equal(t, l.BoardTop(), top.Y1)
	assert.Equal(t, domain.Point{X: 66, Y: 618}, l.CellCenter(0, 0))
	assert.Equal(t, Rect{X1: 30, Y1: 582, X2: 102, Y2: 654}, l.HoleRect(0, 0))
}

func TestColumnAt(t *testing.T) {
	l := DefaultLayout()

	for c := 0; c < domain.Columns; c++ {
		r := l.CellRect(0, c)
		assert.Equal(t, c, l.ColumnAt(r.X1), "left edge of column %d", c)
		assert.Equal(t, c, l.ColumnAt((r.X1+r.X2)/2), "middle of column %d", c)
	}
	assert.Equal(t, -1, l.ColumnAt(5))
}

func TestRowAt(t *testing.T) {
	l := DefaultLayout()

	for r := 0; r < domain.Rows; r++ {
		assert.Equal(t, r, l.RowAt(l.CellCenter(r, 2).Y), "center of row %d", r)
	}
	assert.Equal(t, domain.Rows, l.RowAt(NewDropAnimation(l, 0, 0).Y))
	assert.Equal(t, domain.Columns, l.ColumnAt(l.BoardLeft()+l.BoardWidth()+1))
}

func TestPaletteColorFor(t *testing.T) {
	p := DefaultPalette

	assert.Equal(t, "#ff6b6b", p.ColorFor(domain.Player1))
	assert.Equal(t, "#ffd166", p.ColorFor(domain.Player2))
	assert.Equal(t, "#dfe7ee", p.ColorFor(domain.Empty))
}

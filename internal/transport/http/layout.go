package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/render"
)

type layoutResponse struct {
	Rows          int             `json:"rows"`
	Columns       int             `json:"columns"`
	Cell          float64         `json:"cell"`
	Margin        float64         `json:"margin"`
	CanvasWidth   float64         `json:"canvasWidth"`
	CanvasHeight  float64         `json:"canvasHeight"`
	BoardLeft     float64         `json:"boardLeft"`
	BoardTop      float64         `json:"boardTop"`
	DiskRadius    float64         `json:"diskRadius"`
	DropStepMS    int             `json:"dropStepMs"`
	DropStepPixel int             `json:"dropStepPx"`
	WinDelayMS    int             `json:"winDelayMs"`
	Palette       render.Palette  `json:"palette"`
	Holes         [][]render.Rect `json:"holes"` // [row][col], row 0 at the bottom
}

// GetLayout tells clients how to draw the board.
func GetLayout(c *gin.Context) {
	l := render.DefaultLayout()
	c.JSON(http.StatusOK, layoutResponse{
		Rows:          domain.Rows,
		Columns:       domain.Columns,
		Cell:          l.Cell,
		Margin:        l.Margin,
		CanvasWidth:   l.CanvasWidth(),
		CanvasHeight:  l.CanvasHeight(),
		BoardLeft:     l.BoardLeft(),
		BoardTop:      l.BoardTop(),
		DiskRadius:    l.DiskRadius(),
		DropStepMS:    render.DropStepMS,
		DropStepPixel: render.DropPixelsPerStep,
		WinDelayMS:    int(render.WinDelay.Milliseconds()),
		Palette:       render.DefaultPalette,
		Holes:         holes(l),
	})
}

func holes(l render.Layout) [][]render.Rect {
	rects := make([][]render.Rect, domain.Rows)
	for r := range rects {
		rects[r] = make([]render.Rect, domain.Columns)
		for c := range rects[r] {
			rects[r][c] = l.HoleRect(r, c)
		}
	}
	return rects
}

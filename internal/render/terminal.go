package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/muesli/termenv"
)

// TerminalRenderer draws the grid as text, top row first.
type TerminalRenderer struct {
	out     *termenv.Output
	palette Palette
}

func NewTerminalRenderer(w io.Writer, p Palette, opts ...termenv.OutputOption) *TerminalRenderer {
	return &TerminalRenderer{
		out:     termenv.NewOutput(w, opts...),
		palette: p,
	}
}

func (t *TerminalRenderer) symbol(player domain.PlayerID, winning bool) string {
	var s termenv.Style
	switch player {
	case domain.Player1:
		s = t.out.String("R").Foreground(t.out.Color(t.palette.Red))
	case domain.Player2:
		s = t.out.String("Y").Foreground(t.out.Color(t.palette.Yellow))
	default:
		return t.out.String(".").Faint().String()
	}
	if winning {
		s = s.Bold().Underline()
	}
	return s.String()
}

func (t *TerminalRenderer) Board(board [][]domain.PlayerID, winning []domain.Position) string {
	marked := make(map[domain.Position]bool, len(winning))
	for _, p := range winning {
		marked[p] = true
	}

	var b strings.Builder
	for r := domain.Rows - 1; r >= 0; r-- {
		b.WriteString("|")
		for c := 0; c < domain.Columns; c++ {
			b.WriteString(" ")
			b.WriteString(t.symbol(board[r][c], marked[domain.Position{Row: r, Col: c}]))
		}
		b.WriteString(" |\n")
	}
	b.WriteString("+")
	b.WriteString(strings.Repeat("--", domain.Columns))
	b.WriteString("-+\n ")
	for c := 1; c <= domain.Columns; c++ {
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(c))
	}
	b.WriteString("\n")
	return b.String()
}

// Status is the line shown under the board.
func (t *TerminalRenderer) Status(g *domain.Game) string {
	if v := VictoryText(t.palette, g.Status, g.Winner); v != nil {
		return t.out.String(v.Text).Foreground(t.out.Color(v.Color)).Bold().String()
	}
	return t.out.String(TurnText(g.CurrentPlayer)).Foreground(t.out.Color(t.palette.ColorFor(g.CurrentPlayer))).String()
}

func (t *TerminalRenderer) Render(g *domain.Game) string {
	return t.Board(g.Board, g.WinningCells) + t.Status(g) + "\n"
}

package render

import "github.com/iamasit07/connect-four/internal/domain"

const winLineWidth = 12

// WinLine runs through the centers of the first and last winning cells.
func WinLine(l Layout, p Palette, cells []domain.Position, winner domain.PlayerID) *domain.LineView {
	if len(cells) == 0 {
		return nil
	}
	first, last := cells[0], cells[len(cells)-1]
	return &domain.LineView{
		From:  l.CellCenter(first.Row, first.Col),
		To:    l.CellCenter(last.Row, last.Col),
		Color: p.ColorFor(winner),
		Width: winLineWidth,
	}
}

func VictoryText(p Palette, status domain.GameStatus, winner domain.PlayerID) *domain.VictoryView {
	switch {
	case status == domain.StatusWon && winner == domain.Player1:
		return &domain.VictoryView{Text: "RED PLAYER WINS!", Color: p.Red}
	case status == domain.StatusWon && winner == domain.Player2:
		return &domain.VictoryView{Text: "YELLOW PLAYER WINS!", Color: p.Yellow}
	case status == domain.StatusDraw:
		return &domain.VictoryView{Text: "IT'S A DRAW!", Color: p.TextDark}
	default:
		return nil
	}
}

func TurnText(player domain.PlayerID) string {
	if player == domain.Player1 {
		return "Turn: Player 1 (Red)"
	}
	return "Turn: Player 2 (Yellow)"
}

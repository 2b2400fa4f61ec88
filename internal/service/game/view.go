package game

import (
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/render"
)

var (
	layout  = render.DefaultLayout()
	palette = render.DefaultPalette
)

func boolPtr(b bool) *bool { return &b }

func gameStartMessage(gs *GameSession, userID int64) domain.ServerMessage {
	msg := domain.ServerMessage{
		Type:        "game_start",
		GameID:      gs.GameID,
		Mode:        string(gs.Mode),
		CurrentTurn: int(gs.Game.CurrentPlayer),
		TurnText:    render.TurnText(gs.Game.CurrentPlayer),
		Board:       domain.CopyBoard(gs.Game.Board),
	}
	if gs.IsLocal() {
		return msg
	}

	if userID == gs.Player1ID {
		msg.YourPlayer = int(domain.Player1)
		msg.Opponent = gs.Player2Username
	} else {
		msg.YourPlayer = int(domain.Player2)
		msg.Opponent = gs.Player1Username
	}
	return msg
}

func moveMadeMessage(gs *GameSession, playerID domain.PlayerID, column, row int) domain.ServerMessage {
	msg := domain.ServerMessage{
		Type:   "move_made",
		GameID: gs.GameID,
		Column: &column,
		Row:    &row,
		Player: int(playerID),
		Board:  domain.CopyBoard(gs.Game.Board),
		Drop:   render.NewDropAnimation(layout, row, column).View(palette, playerID),
	}
	if !gs.Game.IsFinished() {
		msg.NextTurn = int(gs.Game.CurrentPlayer)
		msg.TurnText = render.TurnText(gs.Game.CurrentPlayer)
	}
	return msg
}

func gameOverMessage(gs *GameSession, winner string, allowRestart bool) domain.ServerMessage {
	msg := domain.ServerMessage{
		Type:         "game_over",
		GameID:       gs.GameID,
		Winner:       winner,
		Reason:       gs.Reason,
		Board:        domain.CopyBoard(gs.Game.Board),
		AllowRestart: boolPtr(allowRestart),
	}
	if gs.Game.IsFinished() {
		msg.WinningCells = append([]domain.Position(nil), gs.Game.WinningCells...)
		msg.WinLine = render.WinLine(layout, palette, gs.Game.WinningCells, gs.Game.Winner)
		msg.Victory = render.VictoryText(palette, gs.Game.Status, gs.Game.Winner)
		msg.WinDelayMS = int(render.WinDelay.Milliseconds())
	}
	return msg
}

func (gs *GameSession) announceStart(conn ConnectionManagerInterface) {
	for _, id := range gs.recipients() {
		conn.SendMessage(id, gameStartMessage(gs, id))
	}
}

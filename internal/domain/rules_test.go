package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawBoard fills every cell so that no player has more than two in a row
// in any direction.
func drawBoard() [][]PlayerID {
	board := NewBoard()
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if (c/2+r)%2 == 0 {
				board[r][c] = Player1
			} else {
				board[r][c] = Player2
			}
		}
	}
	return board
}

func TestWinningCells(t *testing.T) {
	tests := []struct {
		name  string
		cells []Position
	}{
		{
			name:  "vertical",
			cells: []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		},
		{
			name:  "horizontal",
			cells: []Position{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		},
		{
			name:  "diagonal up right",
			cells: []Position{{0, 2}, {1, 3}, {2, 4}, {3, 5}},
		},
		{
			name:  "diagonal down right",
			cells: []Position{{3, 1}, {2, 2}, {1, 3}, {0, 4}},
		},
		{
			name:  "top right corner",
			cells: []Position{{5, 3}, {5, 4}, {5, 5}, {5, 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := NewBoard()
			for _, p := range tt.cells {
				require.NoError(t, PlacePiece(board, p.Row, p.Col, Player2))
			}

			got := WinningCells(board, Player2)
			require.NotNil(t, got)
			assert.ElementsMatch(t, tt.cells, got)
			assert.Nil(t, WinningCells(board, Player1))
		})
	}
}

func TestWinningCellsNeedsFour(t *testing.T) {
	board := NewBoard()
	for c := 0; c < 3; c++ {
		board[0][c] = Player1
	}
	for r := 1; r < 4; r++ {
		board[r][6] = Player1
	}
	board[2][1], board[3][2], board[4][3] = Player1, Player1, Player1
	board[0][4] = Player2

	assert.Nil(t, WinningCells(board, Player1))
	assert.False(t, HasWon(board, Player1))
}

func TestWinningCellsScanOrder(t *testing.T) {
	board := NewBoard()
	// a horizontal and a vertical run share (0,0); horizontal is scanned first
	for i := 0; i < 4; i++ {
		board[0][i] = Player1
		board[i][0] = Player1
	}

	got := WinningCells(board, Player1)
	assert.Equal(t, []Position{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, got)
	assert.Equal(t, got, WinningCells(board, Player1))
}

func TestWinningCellsEmptyPlayer(t *testing.T) {
	assert.Nil(t, WinningCells(NewBoard(), Empty))
}

func TestDrawBoard(t *testing.T) {
	board := drawBoard()

	assert.True(t, IsBoardFull(board))
	assert.Nil(t, WinningCells(board, Player1))
	assert.Nil(t, WinningCells(board, Player2))
}

func TestCountDiskInDirection(t *testing.T) {
	board := NewBoard()
	board[0][1], board[0][2], board[0][3] = Player1, Player1, Player1

	assert.Equal(t, 3, CountDiskInDirection(board, 0, 0, 0, 1, Player1))
	assert.Equal(t, 0, CountDiskInDirection(board, 0, 0, 1, 0, Player1))
	assert.Equal(t, 3, CountDiskInDirection(board, 0, 4, 0, -1, Player1))
}

func TestConnectsAt(t *testing.T) {
	board := NewBoard()
	board[0][0], board[1][1], board[3][3] = Player1, Player1, Player1
	assert.False(t, ConnectsAt(board, 3, 3, Player1))

	board[2][2] = Player1
	for _, p := range []Position{{0, 0}, {1, 1}, {2, 2}, {3, 3}} {
		assert.True(t, ConnectsAt(board, p.Row, p.Col, Player1), "cell %v", p)
	}
	assert.False(t, ConnectsAt(board, 2, 2, Player2))
	assert.False(t, ConnectsAt(board, 4, 4, Player1))
}

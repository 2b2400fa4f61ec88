package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	board := NewBoard()

	require.Len(t, board, Rows)
	for _, row := range board {
		require.Len(t, row, Columns)
		for _, cell := range row {
			assert.Equal(t, Empty, cell)
		}
	}
}

func TestDropDiskStacksFromBottom(t *testing.T) {
	board := NewBoard()

	for want := 0; want < 3; want++ {
		row, err := DropDisk(board, 4, Player1)
		require.NoError(t, err)
		assert.Equal(t, want, row)
	}
	assert.Equal(t, Player1, board[0][4])
	assert.Equal(t, Player1, board[2][4])
	assert.Equal(t, Empty, board[3][4])
}

func TestColumnHasSpace(t *testing.T) {
	board := NewBoard()
	for i := 0; i < Rows; i++ {
		_, err := DropDisk(board, 0, Player2)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		column int
		want   bool
	}{
		{"full column", 0, false},
		{"empty column", 1, true},
		{"negative index", -1, false},
		{"past last column", Columns, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnHasSpace(board, tt.column))
		})
	}

	_, err := DropDisk(board, 0, Player1)
	assert.ErrorIs(t, err, ErrColumnFull)

	_, err = DropDisk(board, Columns, Player1)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestLowestOpenRow(t *testing.T) {
	board := NewBoard()

	row, ok := LowestOpenRow(board, 3)
	assert.True(t, ok)
	assert.Equal(t, 0, row)

	require.NoError(t, PlacePiece(board, 0, 3, Player1))
	require.NoError(t, PlacePiece(board, 1, 3, Player2))
	row, ok = LowestOpenRow(board, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, row)

	_, ok = LowestOpenRow(board, -2)
	assert.False(t, ok)
	_, ok = LowestOpenRow(board, 9)
	assert.False(t, ok)

	for r := 0; r < Rows; r++ {
		board[r][6] = Player1
	}
	_, ok = LowestOpenRow(board, 6)
	assert.False(t, ok)
}

func TestPlacePieceRejectsBadWrites(t *testing.T) {
	board := NewBoard()
	require.NoError(t, PlacePiece(board, 0, 0, Player1))

	assert.ErrorIs(t, PlacePiece(board, 0, 0, Player2), ErrCellOccupied)
	assert.ErrorIs(t, PlacePiece(board, Rows, 0, Player2), ErrOutOfBounds)
	assert.ErrorIs(t, PlacePiece(board, 0, -1, Player2), ErrOutOfBounds)
	assert.ErrorIs(t, PlacePiece(board, 1, 1, Empty), ErrInvalidPlayer)

	assert.Equal(t, Player1, board[0][0])
	assert.Equal(t, Empty, board[1][1])
}

func TestIsBoardFull(t *testing.T) {
	board := NewBoard()
	assert.False(t, IsBoardFull(board))

	for r := range board {
		for c := range board[r] {
			board[r][c] = Player1
		}
	}
	assert.True(t, IsBoardFull(board))

	board[Rows-1][2] = Empty
	assert.False(t, IsBoardFull(board))
}

func TestSimulateMoveLeavesOriginal(t *testing.T) {
	board := NewBoard()

	next, row, err := SimulateMove(board, 2, Player2)
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, Player2, next[0][2])
	assert.Equal(t, Empty, board[0][2])
}

func TestGetValidMoves(t *testing.T) {
	board := NewBoard()
	for r := 0; r < Rows; r++ {
		board[r][1] = Player1
		board[r][5] = Player2
	}
	assert.Equal(t, []int{0, 2, 3, 4, 6}, GetValidMoves(board))
}

func TestBoardIntsRoundTrip(t *testing.T) {
	board := NewBoard()
	board[0][0] = Player1
	board[0][1] = Player2

	ints := BoardToInts(board)
	assert.Equal(t, 1, ints[0][0])
	assert.Equal(t, 2, ints[0][1])

	ints[1][1] = 7
	back := BoardFromInts(ints)
	assert.Equal(t, Player1, back[0][0])
	assert.Equal(t, Player2, back[0][1])
	assert.Equal(t, Empty, back[1][1])
}

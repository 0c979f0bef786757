package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

func TestBotService_PickMove(t *testing.T) {
	bot := NewBotService()

	t.Run("Easy picks one of the legal moves", func(t *testing.T) {
		// Given: the start board with White to move
		board := entity.NewBoard()
		legal := board.LegalMoves(entity.White)

		// When: the easy policy picks a move
		move := bot.PickMove(board, entity.White, entity.DifficultyEasy)

		// Then: the move is legal
		require.NotNil(t, move)
		assert.Contains(t, legal, *move)
	})

	t.Run("Returns nil when no legal move exists", func(t *testing.T) {
		// Given: a board without a single black disc to flip
		var board entity.Board
		board[4][4] = entity.White

		// When: picking a move for White
		move := bot.PickMove(board, entity.White, entity.DifficultyEasy)

		// Then: there is none; the caller must treat this as a turn skip
		assert.Nil(t, move)
	})

	t.Run("Medium prefers a corner", func(t *testing.T) {
		// Given: a board where (0,0) is White's only legal corner
		var board entity.Board
		board[0][1] = entity.Black
		board[0][2] = entity.White

		// When: the medium policy picks a move
		move := bot.PickMove(board, entity.White, entity.DifficultyMedium)

		// Then: the corner is taken
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, *move)
	})

	t.Run("Medium falls back to an edge without corners", func(t *testing.T) {
		// Given: a board where White's only legal move is the edge cell (0,3)
		var board entity.Board
		board[1][3] = entity.Black
		board[2][3] = entity.White

		// When: the medium policy picks a move
		move := bot.PickMove(board, entity.White, entity.DifficultyMedium)

		// Then: the edge is taken
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{Row: 0, Col: 3}, *move)
	})

	t.Run("Hard takes the corner over a plain capture", func(t *testing.T) {
		// Given: White can either take the corner (0,0) or capture at (5,2)
		var board entity.Board
		board[0][1] = entity.Black
		board[0][2] = entity.White
		board[5][3] = entity.Black
		board[5][4] = entity.White

		// When: the hard policy evaluates one ply ahead
		move := bot.PickMove(board, entity.White, entity.DifficultyHard)

		// Then: the corner wins the evaluation
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, *move)
	})

	t.Run("Hard breaks ties by enumeration order", func(t *testing.T) {
		// Given: the symmetric start board, every opening move evaluates equal
		board := entity.NewBoard()
		legal := board.LegalMoves(entity.White)

		// When: the hard policy picks a move
		move := bot.PickMove(board, entity.White, entity.DifficultyHard)

		// Then: the first enumerated move is kept
		require.NotNil(t, move)
		assert.Equal(t, legal[0], *move)
	})

	t.Run("Unknown difficulty behaves like medium", func(t *testing.T) {
		// Given: a board with a single legal corner for White
		var board entity.Board
		board[0][1] = entity.Black
		board[0][2] = entity.White

		// When: picking with an unrecognized difficulty
		move := bot.PickMove(board, entity.White, "nightmare")

		// Then: the corner preference applies
		require.NotNil(t, move)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, *move)
	})
}

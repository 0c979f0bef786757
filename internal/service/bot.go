package service

import (
	"math/rand"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

const (
	cornerWeight = 25
	edgeWeight   = 5
)

// BotService selects a move for the built-in opponent. PickMove returns nil
// when no legal move exists; callers treat that as a forced turn skip.
type BotService interface {
	PickMove(board entity.Board, disc entity.Disc, difficulty string) *entity.Move
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

func (that *botService) PickMove(board entity.Board, disc entity.Disc, difficulty string) *entity.Move {
	moves := board.LegalMoves(disc)
	if len(moves) == 0 {
		return nil
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return randomMove(moves)
	case entity.DifficultyMedium:
		return mediumMove(moves)
	case entity.DifficultyHard:
		return hardMove(board, moves, disc)
	default:
		return mediumMove(moves)
	}
}

func randomMove(moves []entity.Move) *entity.Move {
	move := moves[rand.Intn(len(moves))] //nolint: gosec // it's ok
	return &move
}

// mediumMove prefers corners, then edges, then any legal cell.
func mediumMove(moves []entity.Move) *entity.Move {
	var corners, edges []entity.Move
	for _, move := range moves {
		switch {
		case move.IsCorner():
			corners = append(corners, move)
		case move.IsEdge():
			edges = append(edges, move)
		}
	}

	if len(corners) > 0 {
		return randomMove(corners)
	}
	if len(edges) > 0 {
		return randomMove(edges)
	}

	return randomMove(moves)
}

// hardMove is a one-ply lookahead: apply each legal move and keep the one
// with the strictly highest static evaluation. Ties keep the move seen
// first in enumeration order.
func hardMove(board entity.Board, moves []entity.Move, disc entity.Disc) *entity.Move {
	best := moves[0]
	bestScore := evaluateBoard(board.Apply(moves[0], disc), disc)

	for _, move := range moves[1:] {
		score := evaluateBoard(board.Apply(move, disc), disc)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}

	return &best
}

func evaluateBoard(board entity.Board, disc entity.Disc) int {
	opponent := disc.Opponent()
	scores := board.Scores()
	score := scores.ByDisc(disc) - scores.ByDisc(opponent)

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			occupant := board[row][col]
			if occupant == entity.Empty {
				continue
			}

			move := entity.Move{Row: row, Col: col}
			weight := 0
			switch {
			case move.IsCorner():
				weight = cornerWeight
			case move.IsEdge():
				weight = edgeWeight
			}

			if occupant == disc {
				score += weight
			} else {
				score -= weight
			}
		}
	}

	return score
}

package entity

const BoardSize = 8

// Disc is the content of a single board cell. The zero value is an empty cell.
type Disc int8

const (
	Empty Disc = iota
	Black
	White
)

func (that Disc) Opponent() Disc {
	switch that {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (that Disc) String() string {
	switch that {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// The 8 compass offsets, scanned in a fixed order. Every qualifying direction
// is flipped unconditionally, so the order never affects the result.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Move is a board coordinate, row and column both in [0, 8).
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) IsCorner() bool {
	return (that.Row == 0 || that.Row == BoardSize-1) && (that.Col == 0 || that.Col == BoardSize-1)
}

func (that Move) IsEdge() bool {
	return that.Row == 0 || that.Row == BoardSize-1 || that.Col == 0 || that.Col == BoardSize-1
}

// Score holds the disc counts of both sides.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

func (that Score) ByDisc(disc Disc) int {
	if disc == Black {
		return that.Black
	}
	return that.White
}

// Board is an 8x8 grid of cells. It is a value type: Apply returns a new
// board rather than mutating the receiver, so a game state swap is explicit.
type Board [BoardSize][BoardSize]Disc

// NewBoard returns the canonical start position: the four center cells
// occupied, two per side, diagonally arranged.
func NewBoard() Board {
	var board Board
	board[3][3] = White
	board[3][4] = Black
	board[4][3] = Black
	board[4][4] = White

	return board
}

// LegalMoves returns every empty cell where placing a disc would flip at
// least one opposing run in at least one direction, in row-major order.
func (that Board) LegalMoves(disc Disc) []Move {
	var moves []Move
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] != Empty {
				continue
			}
			if that.canPlace(row, col, disc) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

func (that Board) canPlace(row, col int, disc Disc) bool {
	for _, dir := range directions {
		if that.flipsInDirection(row, col, dir[0], dir[1], disc) {
			return true
		}
	}
	return false
}

// flipsInDirection reports whether walking outward from (row, col) meets
// one-or-more contiguous opposing discs immediately followed by an own disc.
func (that Board) flipsInDirection(row, col, dr, dc int, disc Disc) bool {
	opponent := disc.Opponent()
	r, c := row+dr, col+dc
	sawOpponent := false

	for r >= 0 && r < BoardSize && c >= 0 && c < BoardSize {
		switch that[r][c] {
		case Empty:
			return false
		case opponent:
			sawOpponent = true
		default:
			return sawOpponent
		}
		r += dr
		c += dc
	}

	return false
}

// Apply returns a new board with the disc placed and every flippable run
// converted. The move must be legal; callers pre-validate via LegalMoves.
func (that Board) Apply(move Move, disc Disc) Board {
	next := that
	next[move.Row][move.Col] = disc

	for _, dir := range directions {
		if !that.flipsInDirection(move.Row, move.Col, dir[0], dir[1], disc) {
			continue
		}

		opponent := disc.Opponent()
		r, c := move.Row+dir[0], move.Col+dir[1]
		for r >= 0 && r < BoardSize && c >= 0 && c < BoardSize && next[r][c] == opponent {
			next[r][c] = disc
			r += dir[0]
			c += dir[1]
		}
	}

	return next
}

// Scores counts the occupied cells per side.
func (that Board) Scores() Score {
	var score Score
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			switch that[row][col] {
			case Black:
				score.Black++
			case White:
				score.White++
			}
		}
	}

	return score
}

// IsTerminal reports whether neither side has any legal move.
func (that Board) IsTerminal() bool {
	return len(that.LegalMoves(Black)) == 0 && len(that.LegalMoves(White)) == 0
}

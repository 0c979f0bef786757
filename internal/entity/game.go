package entity

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// WinnerDraw marks a finished game with equal scores.
const WinnerDraw = "draw"

// LastMove records the most recently applied move and who made it.
type LastMove struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	PlayerID string `json:"player_id"`
}

// CoinsAward is the one-shot reward record attached to a finished game.
type CoinsAward struct {
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
}

// GameState is the authoritative shared state of one game. ValidMoves is
// always recomputed to match {Board, Turn} and is never stale.
type GameState struct {
	Board      Board       `json:"board"`
	Turn       Disc        `json:"turn"`
	Players    []*Player   `json:"players"`
	Status     string      `json:"status"`
	Scores     Score       `json:"scores"`
	ValidMoves []Move      `json:"valid_moves"`
	TimeLeft   int         `json:"time_left"`
	WinnerID   string      `json:"winner_id,omitempty"`
	LastMove   *LastMove   `json:"last_move,omitempty"`
	CoinsAward *CoinsAward `json:"coins_awarded,omitempty"`
}

// NewGameState returns a fresh waiting game on the canonical start board,
// Black to move with their opening moves precomputed.
func NewGameState(turnSeconds int) *GameState {
	board := NewBoard()

	return &GameState{
		Board:      board,
		Turn:       Black,
		Status:     StatusWaiting,
		Scores:     board.Scores(),
		ValidMoves: board.LegalMoves(Black),
		TimeLeft:   turnSeconds,
	}
}

func (that *GameState) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *GameState) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *GameState) IsFinished() bool {
	return that.Status == StatusFinished
}

// PlayerByDisc returns the participant seated on the given side, or nil.
func (that *GameState) PlayerByDisc(disc Disc) *Player {
	for _, player := range that.Players {
		if player.Disc == disc {
			return player
		}
	}
	return nil
}

// PlayerByID returns the participant with the given connection id, or nil.
func (that *GameState) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}
	return nil
}

// HumanPlayer returns the first non-bot participant, or nil.
func (that *GameState) HumanPlayer() *Player {
	for _, player := range that.Players {
		if !player.IsBot() {
			return player
		}
	}
	return nil
}

// BotPlayer returns the synthetic opponent participant, or nil.
func (that *GameState) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}
	return nil
}

// ContainsMove reports whether the cell is in the current legal-move set.
func (that *GameState) ContainsMove(row, col int) bool {
	for _, move := range that.ValidMoves {
		if move.Row == row && move.Col == col {
			return true
		}
	}
	return false
}

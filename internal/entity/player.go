package entity

import "strings"

// BotID is the fixed connection identifier of the built-in opponent.
const BotID = "bot"

const botAvatar = "\U0001F916"

// PieceGlyphs is an optional custom pair of piece symbols chosen by a player.
type PieceGlyphs struct {
	Black string `json:"black"`
	White string `json:"white"`
}

// PlayerInfo is the client-supplied part of a player profile.
type PlayerInfo struct {
	Name   string       `json:"name"`
	Avatar string       `json:"avatar"`
	Pieces *PieceGlyphs `json:"pieces,omitempty"`
}

// Player is a room participant. The first participant is seated as Black,
// the second as White; seating never changes once both are present.
type Player struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Avatar string       `json:"avatar"`
	Ready  bool         `json:"ready"`
	Disc   Disc         `json:"disc,omitempty"`
	Pieces *PieceGlyphs `json:"pieces,omitempty"`
	Coins  int          `json:"coins"`
}

func NewPlayer(id string, info PlayerInfo, disc Disc, coins int) *Player {
	return &Player{
		ID:     id,
		Name:   info.Name,
		Avatar: info.Avatar,
		Disc:   disc,
		Pieces: info.Pieces,
		Coins:  coins,
	}
}

// NewBotPlayer returns the synthetic opponent: always seat White, always
// ready, never holds coins.
func NewBotPlayer(difficulty string, pieces *PieceGlyphs) *Player {
	return &Player{
		ID:     BotID,
		Name:   "Bot (" + strings.ToUpper(difficulty) + ")",
		Avatar: botAvatar,
		Ready:  true,
		Disc:   White,
		Pieces: pieces,
	}
}

func (that *Player) IsBot() bool {
	return that.ID == BotID
}

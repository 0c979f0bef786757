package entity

// MaxChatMessages bounds the per-room chat log; the oldest message is
// evicted first.
const MaxChatMessages = 50

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ChatMessage is a single chat entry broadcast to the room.
type ChatMessage struct {
	ID         string `json:"id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// Room owns one game state, a bounded chat log and the opponent-mode
// configuration. Rooms live in the registry for as long as at least one
// human participant is connected.
type Room struct {
	ID         string         `json:"id"`
	Game       *GameState     `json:"game"`
	Messages   []*ChatMessage `json:"messages,omitempty"`
	WithBot    bool           `json:"with_bot,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
}

func NewRoom(id string, turnSeconds int) *Room {
	return &Room{
		ID:   id,
		Game: NewGameState(turnSeconds),
	}
}

// AppendMessage adds a chat entry, dropping the oldest once the log
// exceeds MaxChatMessages.
func (that *Room) AppendMessage(msg *ChatMessage) {
	that.Messages = append(that.Messages, msg)
	if len(that.Messages) > MaxChatMessages {
		that.Messages = that.Messages[len(that.Messages)-MaxChatMessages:]
	}
}

// HumanIDs returns the connection ids of all human participants.
func (that *Room) HumanIDs() []string {
	ids := make([]string, 0, len(that.Game.Players))
	for _, player := range that.Game.Players {
		if player.IsBot() {
			continue
		}
		ids = append(ids, player.ID)
	}

	return ids
}

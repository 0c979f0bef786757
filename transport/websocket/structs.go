package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

// Message is the envelope of every frame in both directions: an action name
// and one well-typed payload per action.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateRoomPayload struct {
	Player entity.PlayerInfo `json:"player"`
}

type JoinRoomPayload struct {
	RoomID string            `json:"room_id"`
	Player entity.PlayerInfo `json:"player"`
}

type BotGamePayload struct {
	Player     entity.PlayerInfo `json:"player"`
	Difficulty string            `json:"difficulty"`
}

type ReadyPayload struct {
	RoomID string `json:"room_id"`
}

type MovePayload struct {
	RoomID string `json:"room_id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type NewGamePayload struct {
	RoomID     string `json:"room_id"`
	WithBot    bool   `json:"with_bot,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type ChatPayload struct {
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}

type ConnectPayload struct {
	PlayerID string `json:"player_id"`
}

type RoomPayload struct {
	RoomID     string            `json:"room_id"`
	Game       *entity.GameState `json:"game"`
	Difficulty string            `json:"difficulty,omitempty"`
}

type StatePayload struct {
	RoomID string            `json:"room_id"`
	Game   *entity.GameState `json:"game"`
}

type TimerPayload struct {
	RoomID   string `json:"room_id"`
	TimeLeft int    `json:"time_left"`
}

type ChatEventPayload struct {
	RoomID  string              `json:"room_id"`
	Message *entity.ChatMessage `json:"message"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

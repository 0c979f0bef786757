package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

type fakeManager struct {
	mu sync.Mutex

	room    *entity.Room
	moveErr error

	moves        []entity.Move
	disconnected []string
}

func (that *fakeManager) CreateRoom(_ context.Context, playerID string, info entity.PlayerInfo) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.room.Game.Players = []*entity.Player{entity.NewPlayer(playerID, info, entity.Black, 0)}

	return that.room, nil
}

func (that *fakeManager) JoinRoom(_ context.Context, roomID, _ string, _ entity.PlayerInfo) (*entity.Room, error) {
	if that.room == nil || that.room.ID != roomID {
		return nil, apperror.ErrRoomNotFound
	}

	return that.room, nil
}

func (that *fakeManager) CreateBotGame(_ context.Context, _ string, _ entity.PlayerInfo, _ string) (*entity.Room, error) {
	return that.room, nil
}

func (that *fakeManager) PlayerReady(_, _ string) error { return nil }

func (that *fakeManager) MakeMove(_ context.Context, _, _ string, row, col int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.moveErr != nil {
		return that.moveErr
	}

	that.moves = append(that.moves, entity.Move{Row: row, Col: col})

	return nil
}

func (that *fakeManager) NewGame(_ context.Context, _, _ string, _ bool, _ string) error {
	return nil
}

func (that *fakeManager) SendMessage(_, _, _ string) error { return nil }

func (that *fakeManager) Disconnect(_ context.Context, playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.disconnected = append(that.disconnected, playerID)
}

func (that *fakeManager) disconnectedIDs() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]string(nil), that.disconnected...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dialTestServer(t *testing.T, manager *fakeManager) (*Server, *websocket.Conn) {
	t.Helper()

	server := New(testLogger(), manager)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.serveConnection(context.Background(), w, r)
	}))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return server, conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	return &msg
}

func writeFrame(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(&Message{Action: action, Payload: body}))
}

func TestServer_Connection(t *testing.T) {
	t.Run("A fresh connection is greeted with its identity", func(t *testing.T) {
		manager := &fakeManager{room: entity.NewRoom("AB12CD", 30)}
		_, conn := dialTestServer(t, manager)

		// When: the connection is established
		msg := readFrame(t, conn)

		// Then: the first frame carries the assigned player id
		assert.Equal(t, actionConnect, msg.Action)

		var payload ConnectPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.NotEmpty(t, payload.PlayerID)
	})

	t.Run("Closing the connection reports the departure", func(t *testing.T) {
		manager := &fakeManager{room: entity.NewRoom("AB12CD", 30)}
		_, conn := dialTestServer(t, manager)

		msg := readFrame(t, conn)
		var payload ConnectPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))

		// When: the client hangs up
		require.NoError(t, conn.Close())

		// Then: the manager learns about the departure
		assert.Eventually(t, func() bool {
			ids := manager.disconnectedIDs()
			return len(ids) == 1 && ids[0] == payload.PlayerID
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestServer_Actions(t *testing.T) {
	t.Run("Creating a room answers with the room snapshot", func(t *testing.T) {
		manager := &fakeManager{room: entity.NewRoom("AB12CD", 30)}
		_, conn := dialTestServer(t, manager)
		readFrame(t, conn) // connect greeting

		// When: the client asks for a room
		writeFrame(t, conn, actionCreateRoom, CreateRoomPayload{Player: entity.PlayerInfo{Name: "alice"}})

		// Then: the reply carries the room id and the waiting game
		msg := readFrame(t, conn)
		assert.Equal(t, actionRoomCreated, msg.Action)

		var payload RoomPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, "AB12CD", payload.RoomID)
		require.NotNil(t, payload.Game)
		assert.Equal(t, entity.StatusWaiting, payload.Game.Status)
	})

	t.Run("Joining a missing room reports the failure", func(t *testing.T) {
		manager := &fakeManager{room: entity.NewRoom("AB12CD", 30)}
		_, conn := dialTestServer(t, manager)
		readFrame(t, conn)

		// When: the client joins a room that does not exist
		writeFrame(t, conn, actionJoinRoom, JoinRoomPayload{RoomID: "NOPE42", Player: entity.PlayerInfo{Name: "bob"}})

		// Then: the client alone receives the error frame
		msg := readFrame(t, conn)
		assert.Equal(t, actionError, msg.Action)

		var payload ErrorPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, apperror.ErrRoomNotFound.Error(), payload.Error)
	})

	t.Run("A rejected move comes back as an error frame", func(t *testing.T) {
		manager := &fakeManager{room: entity.NewRoom("AB12CD", 30), moveErr: apperror.ErrNotYourTurn}
		_, conn := dialTestServer(t, manager)
		readFrame(t, conn)

		// When: the move is rejected by the game
		writeFrame(t, conn, actionMove, MovePayload{RoomID: "AB12CD", Row: 2, Col: 3})

		// Then: the rejection reaches the caller
		msg := readFrame(t, conn)
		assert.Equal(t, actionError, msg.Action)

		var payload ErrorPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, apperror.ErrNotYourTurn.Error(), payload.Error)
	})

	t.Run("An accepted move produces no direct reply", func(t *testing.T) {
		manager := &fakeManager{room: entity.NewRoom("AB12CD", 30)}
		_, conn := dialTestServer(t, manager)
		readFrame(t, conn)

		// When: a valid move is submitted
		writeFrame(t, conn, actionMove, MovePayload{RoomID: "AB12CD", Row: 2, Col: 3})

		// Then: the manager received it
		assert.Eventually(t, func() bool {
			manager.mu.Lock()
			defer manager.mu.Unlock()
			return len(manager.moves) == 1 && manager.moves[0] == (entity.Move{Row: 2, Col: 3})
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestServer_Broadcast(t *testing.T) {
	t.Run("State updates reach the room's human participants", func(t *testing.T) {
		manager := &fakeManager{room: entity.NewRoom("AB12CD", 30)}
		server, conn := dialTestServer(t, manager)

		msg := readFrame(t, conn)
		var connect ConnectPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &connect))

		// Given: a room whose roster names the connected player and the bot
		room := entity.NewRoom("AB12CD", 30)
		room.Game.Players = []*entity.Player{
			entity.NewPlayer(connect.PlayerID, entity.PlayerInfo{Name: "alice"}, entity.Black, 0),
			entity.NewBotPlayer(entity.DifficultyEasy, nil),
		}

		// When: a state broadcast fires
		server.GameState(room)

		// Then: the frame arrives with the room snapshot
		update := readFrame(t, conn)
		assert.Equal(t, actionGameState, update.Action)

		var payload StatePayload
		require.NoError(t, json.Unmarshal(update.Payload, &payload))
		assert.Equal(t, "AB12CD", payload.RoomID)
		require.NotNil(t, payload.Game)

		// When: a timer broadcast fires
		server.TimeLeft(room, 17)

		// Then: the countdown frame follows
		update = readFrame(t, conn)
		assert.Equal(t, actionGameTimer, update.Action)

		var timer TimerPayload
		require.NoError(t, json.Unmarshal(update.Payload, &timer))
		assert.Equal(t, 17, timer.TimeLeft)
	})
}

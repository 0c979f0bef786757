package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/othello-backend/internal/entity"
)

const (
	actionConnect     = "connect"
	actionCreateRoom  = "room:create"
	actionJoinRoom    = "room:join"
	actionBotGame     = "room:bot"
	actionRoomCreated = "room:created"
	actionRoomJoined  = "room:joined"
	actionReady       = "player:ready"
	actionMove        = "game:move"
	actionNewGame     = "game:new"
	actionGameState   = "game:state"
	actionGameTimer   = "game:timer"
	actionChat        = "chat:message"
	actionError       = "error"
)

type roomManager interface {
	CreateRoom(ctx context.Context, playerID string, info entity.PlayerInfo) (*entity.Room, error)
	JoinRoom(ctx context.Context, roomID, playerID string, info entity.PlayerInfo) (*entity.Room, error)
	CreateBotGame(ctx context.Context, playerID string, info entity.PlayerInfo, difficulty string) (*entity.Room, error)
	PlayerReady(roomID, playerID string) error
	MakeMove(ctx context.Context, roomID, playerID string, row, col int) error
	NewGame(ctx context.Context, roomID, playerID string, withBot bool, difficulty string) error
	SendMessage(roomID, playerID, text string) error
	Disconnect(ctx context.Context, playerID string)
}

// client is one websocket connection. Writes are serialized through the
// mutex because gorilla connections allow a single concurrent writer.
type client struct {
	id   string
	conn *websocket.Conn

	mu sync.Mutex
}

func (that *client) send(msg *Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger  *slog.Logger
	manager roomManager

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client

	handlers map[string]func(ctx context.Context, c *client, payload json.RawMessage) error
}

func New(logger *slog.Logger, manager roomManager) *Server {
	server := &Server{
		logger:  logger,
		manager: manager,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		clients: make(map[string]*client),

		handlers: make(map[string]func(context.Context, *client, json.RawMessage) error),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionBotGame] = server.handleBotGame
	server.handlers[actionReady] = server.handleReady
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionChat] = server.handleChat

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
	}

	that.mu.Lock()
	that.clients[c.id] = c
	that.mu.Unlock()

	log.Info("connection established", "playerID", c.id)

	if err = that.sendMessage(c, actionConnect, ConnectPayload{PlayerID: c.id}); err != nil {
		log.Error("failed to send connect message", "error", err)
	}

	that.readLoop(ctx, c)

	that.mu.Lock()
	delete(that.clients, c.id)
	that.mu.Unlock()

	that.manager.Disconnect(ctx, c.id)

	if err = conn.Close(); err != nil {
		log.Error("failed to close connection", "error", err)
	}

	log.Info("connection closed", "playerID", c.id)
}

// readLoop processes messages from the client until the connection drops.
func (that *Server) readLoop(ctx context.Context, c *client) {
	log := that.logger.With("method", "readLoop", "playerID", c.id)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Info("read ended", "error", err)
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, c, message.Payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) sendMessage(c *client, action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return c.send(&Message{Action: action, Payload: body})
}

func (that *Server) sendError(c *client, errorMsg string) error {
	if err := that.sendMessage(c, actionError, ErrorPayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

// broadcast sends the same message to every listed player that still has a
// live connection.
func (that *Server) broadcast(playerIDs []string, action string, payload any) {
	log := that.logger.With("method", "broadcast", "action", action)

	for _, playerID := range playerIDs {
		that.mu.RLock()
		c, ok := that.clients[playerID]
		that.mu.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", playerID)
			continue
		}

		if err := that.sendMessage(c, action, payload); err != nil {
			log.Error("failed to send update", "playerID", playerID, "error", err)
		}
	}
}

// GameState implements usecase.Notifier.
func (that *Server) GameState(room *entity.Room) {
	that.broadcast(room.HumanIDs(), actionGameState, StatePayload{RoomID: room.ID, Game: room.Game})
}

// TimeLeft implements usecase.Notifier.
func (that *Server) TimeLeft(room *entity.Room, seconds int) {
	that.broadcast(room.HumanIDs(), actionGameTimer, TimerPayload{RoomID: room.ID, TimeLeft: seconds})
}

// Chat implements usecase.Notifier.
func (that *Server) Chat(room *entity.Room, msg *entity.ChatMessage) {
	that.broadcast(room.HumanIDs(), actionChat, ChatEventPayload{RoomID: room.ID, Message: msg})
}

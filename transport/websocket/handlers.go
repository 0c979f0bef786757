package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
)

func (that *Server) handleCreateRoom(ctx context.Context, c *client, payload json.RawMessage) error {
	log := that.logger.With("method", "handleCreateRoom", "playerID", c.id)

	var req CreateRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	room, err := that.manager.CreateRoom(ctx, c.id, req.Player)
	if err != nil {
		log.Error("failed to create room", "error", err)
		return that.sendError(c, "failed to create a new room")
	}

	log.Info("room created", "roomID", room.ID)

	return that.sendMessage(c, actionRoomCreated, RoomPayload{RoomID: room.ID, Game: room.Game})
}

func (that *Server) handleJoinRoom(ctx context.Context, c *client, payload json.RawMessage) error {
	log := that.logger.With("method", "handleJoinRoom", "playerID", c.id)

	var req JoinRoomPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	room, err := that.manager.JoinRoom(ctx, req.RoomID, c.id, req.Player)
	if errors.Is(err, apperror.ErrRoomNotFound) || errors.Is(err, apperror.ErrRoomFull) {
		return that.sendError(c, err.Error())
	}
	if err != nil {
		log.Error("failed to join room", "roomID", req.RoomID, "error", err)
		return that.sendError(c, "failed to join the room")
	}

	log.Info("player joined room", "roomID", room.ID)

	return that.sendMessage(c, actionRoomJoined, RoomPayload{RoomID: room.ID, Game: room.Game})
}

func (that *Server) handleBotGame(ctx context.Context, c *client, payload json.RawMessage) error {
	log := that.logger.With("method", "handleBotGame", "playerID", c.id)

	var req BotGamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	room, err := that.manager.CreateBotGame(ctx, c.id, req.Player, req.Difficulty)
	if err != nil {
		log.Error("failed to create bot game", "error", err)
		return that.sendError(c, "failed to create a bot game")
	}

	log.Info("bot game created", "roomID", room.ID, "difficulty", room.Difficulty)

	return that.sendMessage(c, actionRoomCreated, RoomPayload{RoomID: room.ID, Game: room.Game, Difficulty: room.Difficulty})
}

func (that *Server) handleReady(_ context.Context, c *client, payload json.RawMessage) error {
	var req ReadyPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.manager.PlayerReady(req.RoomID, c.id); err != nil {
		return that.sendError(c, err.Error())
	}

	return nil
}

func (that *Server) handleMove(ctx context.Context, c *client, payload json.RawMessage) error {
	var req MovePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	// a rejected move mutates nothing and is reported to the caller only
	if err := that.manager.MakeMove(ctx, req.RoomID, c.id, req.Row, req.Col); err != nil {
		return that.sendError(c, err.Error())
	}

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, c *client, payload json.RawMessage) error {
	var req NewGamePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.manager.NewGame(ctx, req.RoomID, c.id, req.WithBot, req.Difficulty); err != nil {
		return that.sendError(c, err.Error())
	}

	return nil
}

func (that *Server) handleChat(_ context.Context, c *client, payload json.RawMessage) error {
	var req ChatPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if err := that.manager.SendMessage(req.RoomID, c.id, req.Text); err != nil {
		return that.sendError(c, err.Error())
	}

	return nil
}

package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/othello-backend/internal/apperror"
	"github.com/rocketscienceinc/othello-backend/internal/entity"
	"github.com/rocketscienceinc/othello-backend/internal/metrics"
)

// WinReward is the fixed coin payout for the sole winner of a game.
const WinReward = 10

const roomIDLength = 6

type botService interface {
	PickMove(board entity.Board, disc entity.Disc, difficulty string) *entity.Move
}

type walletRepo interface {
	Balance(ctx context.Context, playerID string) (int, error)
	Deposit(ctx context.Context, playerID string, amount int) (int, error)
}

// Notifier delivers room updates to connected clients. Implementations must
// not call back into the RoomManager.
type Notifier interface {
	GameState(room *entity.Room)
	TimeLeft(room *entity.Room, seconds int)
	Chat(room *entity.Room, msg *entity.ChatMessage)
}

// RoomManager owns the room registry, the turn clocks and the wallet handle.
// One mutex serializes every room-mutating operation - a move, a clock tick,
// a bot move and a disconnect are never processed concurrently against the
// same game state.
type RoomManager struct {
	logger *slog.Logger
	wallet walletRepo
	bot    botService

	turnSeconds int
	botDelay    time.Duration

	mu       sync.Mutex
	rooms    map[string]*entity.Room
	clocks   map[string]*turnClock
	notifier Notifier
}

func NewRoomManager(logger *slog.Logger, wallet walletRepo, bot botService, turnSeconds int, botDelay time.Duration) *RoomManager {
	return &RoomManager{
		logger: logger,
		wallet: wallet,
		bot:    bot,

		turnSeconds: turnSeconds,
		botDelay:    botDelay,

		rooms:  make(map[string]*entity.Room),
		clocks: make(map[string]*turnClock),
	}
}

// SetNotifier binds the broadcast sink. Called once during wiring, before
// any client traffic arrives.
func (that *RoomManager) SetNotifier(notifier Notifier) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.notifier = notifier
}

// CreateRoom registers a new waiting room with the creator seated as Black.
func (that *RoomManager) CreateRoom(ctx context.Context, playerID string, info entity.PlayerInfo) (*entity.Room, error) {
	coins, err := that.wallet.Balance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room := entity.NewRoom(newRoomID(), that.turnSeconds)
	room.Game.Players = []*entity.Player{entity.NewPlayer(playerID, info, entity.Black, coins)}

	that.rooms[room.ID] = room
	metrics.RoomsActive.Set(float64(len(that.rooms)))

	that.logger.Info("room created", "roomID", room.ID, "playerID", playerID)

	return room, nil
}

// JoinRoom seats the caller as White and broadcasts the updated state.
func (that *RoomManager) JoinRoom(ctx context.Context, roomID, playerID string, info entity.PlayerInfo) (*entity.Room, error) {
	coins, err := that.wallet.Balance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	if len(room.Game.Players) >= 2 {
		return nil, apperror.ErrRoomFull
	}

	room.Game.Players = append(room.Game.Players, entity.NewPlayer(playerID, info, entity.White, coins))

	that.notifyGameState(room)

	that.logger.Info("player joined room", "roomID", room.ID, "playerID", playerID)

	return room, nil
}

// CreateBotGame registers a room pre-seated with the caller (Black) and the
// built-in opponent (White), already playing, with the clock running for the
// human's opening turn.
func (that *RoomManager) CreateBotGame(ctx context.Context, playerID string, info entity.PlayerInfo, difficulty string) (*entity.Room, error) {
	coins, err := that.wallet.Balance(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	human := entity.NewPlayer(playerID, info, entity.Black, coins)
	human.Ready = true

	room := entity.NewRoom(newRoomID(), that.turnSeconds)
	room.Game.Players = []*entity.Player{human, entity.NewBotPlayer(difficulty, info.Pieces)}
	room.Game.Status = entity.StatusPlaying
	room.WithBot = true
	room.Difficulty = difficulty

	that.rooms[room.ID] = room
	metrics.RoomsActive.Set(float64(len(that.rooms)))

	that.startClockLocked(room.ID)

	that.logger.Info("bot room created", "roomID", room.ID, "playerID", playerID, "difficulty", difficulty)

	return room, nil
}

// PlayerReady marks the caller ready. Seats were fixed at create/join time
// and are never reassigned here; once both participants are ready the game
// starts and the clock is armed for Black's opening turn.
func (that *RoomManager) PlayerReady(roomID, playerID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return apperror.ErrRoomNotFound
	}

	player := room.Game.PlayerByID(playerID)
	if player == nil {
		return apperror.ErrNotInRoom
	}

	player.Ready = true

	if room.Game.IsWaiting() && len(room.Game.Players) == 2 && allReady(room.Game.Players) {
		room.Game.Status = entity.StatusPlaying
		that.startClockLocked(room.ID)
	}

	that.notifyGameState(room)

	return nil
}

// MakeMove validates and applies a human move. Rejections leave the state
// untouched and nothing is broadcast.
func (that *RoomManager) MakeMove(ctx context.Context, roomID, playerID string, row, col int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return apperror.ErrRoomNotFound
	}

	game := room.Game
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}
	if !game.IsPlaying() {
		return apperror.ErrGameIsNotStarted
	}

	actor := game.PlayerByDisc(game.Turn)
	if actor == nil || actor.ID != playerID {
		return apperror.ErrNotYourTurn
	}

	if !game.ContainsMove(row, col) {
		return apperror.ErrIllegalMove
	}

	that.applyMove(ctx, room, entity.Move{Row: row, Col: col}, actor)

	return nil
}

// applyMove places a validated move, handles the skip-back and terminal
// cascades, broadcasts, and arms whichever of the clock or the bot delay
// governs the next turn. Callers must hold the manager mutex.
func (that *RoomManager) applyMove(ctx context.Context, room *entity.Room, move entity.Move, actor *entity.Player) {
	game := room.Game
	mover := game.Turn

	game.Board = game.Board.Apply(move, mover)
	game.Scores = game.Board.Scores()
	game.LastMove = &entity.LastMove{Row: move.Row, Col: move.Col, PlayerID: actor.ID}
	metrics.MovesTotal.Inc()

	next := mover.Opponent()
	game.Turn = next
	game.ValidMoves = game.Board.LegalMoves(next)

	if len(game.ValidMoves) == 0 {
		moverMoves := game.Board.LegalMoves(mover)
		if len(moverMoves) == 0 {
			that.finishGame(ctx, room)
		} else {
			// skip back to the original mover without ending the game
			game.Turn = mover
			game.ValidMoves = moverMoves
		}
	}

	that.notifyGameState(room)

	if !game.IsPlaying() {
		return
	}

	if that.isBotTurn(room) {
		that.stopClockLocked(room.ID)
		that.scheduleBotMove(room.ID)
	} else {
		that.startClockLocked(room.ID)
	}
}

// handleTurnSkip is invoked by the clock at zero. Callers must hold the
// manager mutex.
func (that *RoomManager) handleTurnSkip(ctx context.Context, room *entity.Room) {
	game := room.Game
	next := game.Turn.Opponent()
	nextMoves := game.Board.LegalMoves(next)

	if len(nextMoves) > 0 {
		game.Turn = next
		game.ValidMoves = nextMoves

		that.notifyGameState(room)

		if that.isBotTurn(room) {
			that.stopClockLocked(room.ID)
			that.scheduleBotMove(room.ID)
		} else {
			that.startClockLocked(room.ID)
		}

		return
	}

	if game.Board.IsTerminal() {
		that.finishGame(ctx, room)
		that.notifyGameState(room)

		return
	}

	// the skip cascades: hand the turn over anyway and let the next expiry
	// continue the sequence
	game.Turn = next
	game.ValidMoves = nextMoves

	that.notifyGameState(room)
	that.startClockLocked(room.ID)
}

// MakeBotMove runs one opponent turn. It no-ops if the room disappeared or
// the turn moved on while the delay was pending.
func (that *RoomManager) MakeBotMove(roomID string) {
	ctx := context.Background()

	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return
	}

	game := room.Game
	if !game.IsPlaying() || !that.isBotTurn(room) {
		return
	}

	bot := game.BotPlayer()
	if bot == nil {
		return
	}

	move := that.bot.PickMove(game.Board, game.Turn, room.Difficulty)
	if move == nil {
		// no move for the bot: skip straight to the human
		human := game.Turn.Opponent()
		game.Turn = human
		game.ValidMoves = game.Board.LegalMoves(human)

		that.notifyGameState(room)
		that.startClockLocked(room.ID)

		return
	}

	that.applyMove(ctx, room, *move, bot)
}

func (that *RoomManager) scheduleBotMove(roomID string) {
	time.AfterFunc(that.botDelay, func() {
		that.MakeBotMove(roomID)
	})
}

// finishGame transitions to finished, stops the clock, records the winner
// and pays out the reward. Callers must hold the manager mutex.
func (that *RoomManager) finishGame(ctx context.Context, room *entity.Room) {
	game := room.Game
	game.Status = entity.StatusFinished
	game.Scores = game.Board.Scores()

	that.stopClockLocked(room.ID)

	var winner *entity.Player
	switch {
	case game.Scores.Black > game.Scores.White:
		winner = game.PlayerByDisc(entity.Black)
	case game.Scores.White > game.Scores.Black:
		winner = game.PlayerByDisc(entity.White)
	default:
		game.WinnerID = entity.WinnerDraw
	}

	result := entity.WinnerDraw
	if winner != nil {
		game.WinnerID = winner.ID
		result = winner.Disc.String()
	}
	metrics.GamesFinished.WithLabelValues(result).Inc()

	if winner == nil || winner.IsBot() {
		return
	}

	balance, err := that.wallet.Deposit(ctx, winner.ID, WinReward)
	if err != nil {
		that.logger.Error("failed to award coins", "roomID", room.ID, "playerID", winner.ID, "error", err)
		return
	}

	winner.Coins = balance
	game.CoinsAward = &entity.CoinsAward{PlayerID: winner.ID, Amount: WinReward}
	metrics.CoinsAwarded.Add(WinReward)

	that.logger.Info("coins awarded", "roomID", room.ID, "playerID", winner.ID, "amount", WinReward)
}

// NewGame rebuilds a fresh game in an existing room, keeping the current
// participants. A bot rematch starts playing right away; a human-vs-human
// rematch returns to the waiting/ready flow.
func (that *RoomManager) NewGame(ctx context.Context, roomID, playerID string, withBot bool, difficulty string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return apperror.ErrRoomNotFound
	}

	if room.Game.PlayerByID(playerID) == nil {
		return apperror.ErrNotInRoom
	}

	that.stopClockLocked(room.ID)

	finished := room.Game
	room.Game = entity.NewGameState(that.turnSeconds)

	if withBot && difficulty != "" {
		that.restartWithBot(ctx, room, finished.HumanPlayer(), difficulty)
	} else {
		that.restartHumans(ctx, room, finished.Players)
	}

	that.notifyGameState(room)

	return nil
}

func (that *RoomManager) restartWithBot(ctx context.Context, room *entity.Room, human *entity.Player, difficulty string) {
	var pieces *entity.PieceGlyphs
	if human != nil {
		human.Ready = true
		human.Disc = entity.Black
		human.Coins = that.refreshBalance(ctx, human.ID)
		pieces = human.Pieces

		room.Game.Players = append(room.Game.Players, human)
	}
	room.Game.Players = append(room.Game.Players, entity.NewBotPlayer(difficulty, pieces))

	room.Game.Status = entity.StatusPlaying
	room.WithBot = true
	room.Difficulty = difficulty

	that.startClockLocked(room.ID)
}

func (that *RoomManager) restartHumans(ctx context.Context, room *entity.Room, previous []*entity.Player) {
	seat := entity.Black
	for _, player := range previous {
		if player.IsBot() {
			continue
		}

		player.Ready = false
		player.Disc = seat
		player.Coins = that.refreshBalance(ctx, player.ID)
		seat = entity.White

		room.Game.Players = append(room.Game.Players, player)
	}

	room.WithBot = false
	room.Difficulty = ""
}

func (that *RoomManager) refreshBalance(ctx context.Context, playerID string) int {
	coins, err := that.wallet.Balance(ctx, playerID)
	if err != nil {
		that.logger.Error("failed to get balance", "playerID", playerID, "error", err)
		return 0
	}
	return coins
}

// SendMessage appends a chat entry to the room's bounded log and broadcasts
// it. Non-participants are rejected without any state change.
func (that *RoomManager) SendMessage(roomID, playerID, text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return apperror.ErrRoomNotFound
	}

	player := room.Game.PlayerByID(playerID)
	if player == nil {
		return apperror.ErrNotInRoom
	}

	msg := &entity.ChatMessage{
		ID:         uuid.NewString(),
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Text:       text,
		Timestamp:  time.Now().UnixMilli(),
	}

	room.AppendMessage(msg)
	that.notifyChat(room, msg)

	return nil
}

// Disconnect removes the participant from every room they belong to. An
// emptied room is torn down with its clock; otherwise, if the departure
// freed the active turn, the turn advances with the usual terminal check.
func (that *RoomManager) Disconnect(ctx context.Context, playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for roomID, room := range that.rooms {
		game := room.Game

		departing := game.PlayerByID(playerID)
		if departing == nil {
			continue
		}

		game.Players = removePlayer(game.Players, playerID)

		if len(room.HumanIDs()) == 0 {
			that.stopClockLocked(roomID)
			delete(that.rooms, roomID)
			metrics.RoomsActive.Set(float64(len(that.rooms)))

			that.logger.Info("room removed", "roomID", roomID)

			continue
		}

		if game.IsPlaying() && departing.Disc == game.Turn {
			next := game.Turn.Opponent()
			game.Turn = next
			game.ValidMoves = game.Board.LegalMoves(next)

			if len(game.ValidMoves) == 0 && game.Board.IsTerminal() {
				that.finishGame(ctx, room)
			} else {
				that.startClockLocked(roomID)
			}
		}

		that.notifyGameState(room)
	}
}

func (that *RoomManager) isBotTurn(room *entity.Room) bool {
	player := room.Game.PlayerByDisc(room.Game.Turn)
	return player != nil && player.IsBot()
}

func (that *RoomManager) notifyGameState(room *entity.Room) {
	if that.notifier == nil {
		return
	}
	that.notifier.GameState(room)
}

func (that *RoomManager) notifyTimeLeft(room *entity.Room, seconds int) {
	if that.notifier == nil {
		return
	}
	that.notifier.TimeLeft(room, seconds)
}

func (that *RoomManager) notifyChat(room *entity.Room, msg *entity.ChatMessage) {
	if that.notifier == nil {
		return
	}
	that.notifier.Chat(room, msg)
}

func allReady(players []*entity.Player) bool {
	for _, player := range players {
		if !player.Ready {
			return false
		}
	}
	return true
}

func removePlayer(players []*entity.Player, playerID string) []*entity.Player {
	remaining := make([]*entity.Player, 0, len(players))
	for _, player := range players {
		if player.ID == playerID {
			continue
		}
		remaining = append(remaining, player)
	}

	return remaining
}

// newRoomID generates a short join code for the room.
func newRoomID() string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	b := make([]byte, roomIDLength)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-room-id"
	}

	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}

	return string(b)
}

package usecase

import (
	"context"
	"time"
)

// turnClock is one room's countdown. At most one clock is registered per
// room; a superseded clock discovers that on its next tick and exits.
type turnClock struct {
	roomID string
	stop   chan struct{}
}

// startClockLocked arms a fresh countdown for the room, canceling any
// previous one. Callers must hold the manager mutex.
func (that *RoomManager) startClockLocked(roomID string) {
	that.stopClockLocked(roomID)

	room, ok := that.rooms[roomID]
	if !ok {
		return
	}

	room.Game.TimeLeft = that.turnSeconds

	clock := &turnClock{roomID: roomID, stop: make(chan struct{})}
	that.clocks[roomID] = clock

	go that.runClock(clock)
}

// stopClockLocked cancels the room's clock, if any. Callers must hold the
// manager mutex.
func (that *RoomManager) stopClockLocked(roomID string) {
	clock, ok := that.clocks[roomID]
	if !ok {
		return
	}

	close(clock.stop)
	delete(that.clocks, roomID)
}

func (that *RoomManager) runClock(clock *turnClock) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-clock.stop:
			return
		case <-ticker.C:
			if !that.clockTick(clock) {
				return
			}
		}
	}
}

// clockTick decrements and broadcasts the remaining time, invoking the
// turn-skip procedure once the countdown reaches zero. It reports whether
// this clock is still the room's live one.
func (that *RoomManager) clockTick(clock *turnClock) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clocks[clock.roomID] != clock {
		return false
	}

	room, ok := that.rooms[clock.roomID]
	if !ok {
		return false
	}

	if !room.Game.IsPlaying() {
		return false
	}

	room.Game.TimeLeft--
	that.notifyTimeLeft(room, room.Game.TimeLeft)

	if room.Game.TimeLeft > 0 {
		return true
	}

	that.handleTurnSkip(context.Background(), room)

	// the skip either armed a new clock or stopped this one
	return that.clocks[clock.roomID] == clock
}

package game

import (
	"context"
	"time"

	"github.com/scythe504/spyfall-backend/internal"
)

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

// armTimer replaces the room's timer with a fresh deadline. Caller holds room.Mu.
func (e *Engine) armTimer(room *internal.Room) *internal.RoundTimer {
	stopTimer(room)

	ctx, cancel := context.WithCancel(context.Background())
	timer := &internal.RoundTimer{
		Deadline: e.now().Add(room.RoundDuration),
		Context:  ctx,
		Cancel:   cancel,
	}
	room.Timer = timer
	return timer
}

// stopTimer cancels the countdown goroutine but keeps the deadline.
// Caller holds room.Mu.
func stopTimer(room *internal.Room) {
	if room.Timer != nil && room.Timer.Cancel != nil {
		room.Timer.Cancel()
	}
}

// runCountdown broadcasts the remaining time once per tick and resolves the
// round when the deadline passes. It exits as soon as the round is no longer
// active or its timer has been replaced or cancelled.
func (e *Engine) runCountdown(room *internal.Room, timer *internal.RoundTimer) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		if done := e.countdownTick(room, timer); done {
			return
		}
		select {
		case <-ticker.C:
		case <-timer.Context.Done():
			e.log.Debug().Str("room", room.Code).Msg("countdown cancelled")
			return
		}
	}
}

func (e *Engine) countdownTick(room *internal.Room, timer *internal.RoundTimer) (done bool) {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.State != internal.StateActive || room.Timer != timer {
		return true
	}

	remaining := timer.Deadline.Sub(e.now())
	if remaining <= 0 {
		e.log.Info().Str("room", room.Code).Msg("round timed out")
		e.resolve(room, false, internal.ReasonTimeout)
		return true
	}

	e.notify.Broadcast(room.Code, internal.NewMessage(internal.EventTimer, internal.TimerUpdateData{
		Remaining: ceilSeconds(remaining),
	}))
	return false
}

func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

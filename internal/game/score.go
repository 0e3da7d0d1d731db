package game

import (
	"context"

	"github.com/scythe504/spyfall-backend/internal"
)

// resolve ends the active round exactly once. It is the only place that moves
// a room to finished and the only place that awards points; calls made while
// the room is not active do nothing. Caller holds room.Mu.
func (e *Engine) resolve(room *internal.Room, spyWin bool, reason internal.Reason) bool {
	if room.State != internal.StateActive {
		return false
	}
	room.State = internal.StateFinished
	stopTimer(room)

	for _, p := range room.Players {
		switch {
		case spyWin && p.IsSpy:
			p.Score += internal.SpyPoints
		case !spyWin && !p.IsSpy:
			p.Score += internal.TeamPoints
		}
	}

	outcome := internal.Outcome{
		RoomCode:   room.Code,
		SpyWin:     spyWin,
		Reason:     reason,
		SpyNames:   room.SpyNames(),
		Scores:     room.Scores(),
		FinishedAt: e.now(),
	}
	finished := internal.FinishedData{
		SpyWin:   spyWin,
		Reason:   reason,
		SpyNames: outcome.SpyNames,
		Scores:   outcome.Scores,
	}
	if room.Location != nil {
		outcome.LocationID = room.Location.ID
		locationID := room.Location.ID
		finished.LocationID = &locationID
	}

	e.notify.Broadcast(room.Code, internal.NewMessage(internal.EventFinished, finished))
	e.notify.Broadcast(room.Code, internal.NewMessage(internal.EventUpdate, room.Snapshot()))

	e.log.Info().
		Str("room", room.Code).
		Bool("spy_win", spyWin).
		Str("reason", string(reason)).
		Strs("spies", outcome.SpyNames).
		Msg("round finished")

	e.archiveOutcome(outcome)
	return true
}

// archiveOutcome hands the outcome to the archiver without blocking the room.
func (e *Engine) archiveOutcome(outcome internal.Outcome) {
	if e.archive == nil {
		return
	}

	e.pending.Add(1)
	go func() {
		defer e.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), e.archiveTimeout)
		defer cancel()

		if err := e.archive.RecordOutcome(ctx, outcome); err != nil {
			e.log.Error().Err(err).Str("room", outcome.RoomCode).Msg("failed to archive round outcome")
		}
	}()
}

package game

import (
	"github.com/scythe504/spyfall-backend/internal"
)

// =============================================================================
// GAME FLOW - ROUND START & HOST RESET
// =============================================================================

// Start deals a new round. Requests from anyone but the host are ignored.
func (e *Engine) Start(code, requester string) error {
	room, err := e.rooms.Lookup(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if requester != room.Host {
		e.log.Debug().Str("room", room.Code).Str("player", requester).Msg("start ignored, not host")
		return nil
	}
	if !room.CanStartGame() {
		e.log.Info().
			Str("room", room.Code).
			Int("players", room.GetPlayerCount()).
			Msg("start refused, not enough players")
		return ErrInsufficientPlayers
	}

	setup := NewRound(room.PlayerIDs(), e.catalog.Locations())
	setup.apply(room)
	timer := e.armTimer(room)

	order := room.AnswerOrderNames()
	duration := int(room.RoundDuration.Seconds())
	for _, p := range room.OrderedPlayers() {
		data := internal.RoundData{
			Role:     internal.RoleAgent,
			Location: room.Location,
			Cards:    append([]internal.Location(nil), room.Cards...),
			Order:    order,
			Duration: duration,
		}
		if p.IsSpy {
			data.Role = internal.RoleSpy
			data.Location = nil
		}
		e.notify.Send(p.Id, internal.NewMessage(internal.EventRound, data))
	}

	e.log.Info().
		Str("room", room.Code).
		Int("players", room.GetPlayerCount()).
		Int("cards", len(room.Cards)).
		Dur("duration", room.RoundDuration).
		Msg("round started")

	go e.runCountdown(room, timer)
	return nil
}

// NextRound sends everyone back to the lobby. It works from any state, so an
// active round is aborted without scoring.
func (e *Engine) NextRound(code, requester string) error {
	room, err := e.rooms.Lookup(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if requester != room.Host {
		e.log.Debug().Str("room", room.Code).Str("player", requester).Msg("next round ignored, not host")
		return nil
	}

	previous := room.State
	stopTimer(room)
	room.ResetRound()

	e.notify.Broadcast(room.Code, internal.NewMessage(internal.EventGoLobby, room.Snapshot()))

	e.log.Info().
		Str("room", room.Code).
		Str("from", string(previous)).
		Msg("room reset to lobby")
	return nil
}

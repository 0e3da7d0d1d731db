package game

import (
	"github.com/scythe504/spyfall-backend/internal"
)

// =============================================================================
// GUESS HANDLING
// =============================================================================

// Guess ends the round with the spy's pick of the secret location. Only the
// current spy may guess, and only while the round is active.
func (e *Engine) Guess(code, spyID, locationID string) error {
	room, err := e.rooms.Lookup(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.State != internal.StateActive {
		return nil
	}
	player, ok := room.Players[spyID]
	if !ok || !player.IsSpy {
		e.log.Debug().Str("room", room.Code).Str("player", spyID).Msg("guess ignored, not the spy")
		return nil
	}

	correct := room.Location != nil && room.Location.ID == locationID

	e.log.Info().
		Str("room", room.Code).
		Str("guess", locationID).
		Bool("correct", correct).
		Msg("spy guessed")

	e.resolve(room, correct, internal.ReasonSpyGuess)
	return nil
}

package game

import (
	"github.com/scythe504/spyfall-backend/internal"
	"github.com/scythe504/spyfall-backend/internal/utils"
)

// =============================================================================
// ROUND SETUP
// =============================================================================

// RoundSetup is the assignment for one round. It is computed without touching
// the room so it can be checked in isolation.
type RoundSetup struct {
	SpyID       string
	Cards       []internal.Location
	Location    internal.Location
	AnswerOrder []string
}

// NewRound picks a spy among playerIDs, draws up to MaxCardsPerRound distinct
// cards from locations, picks the secret location among the cards and
// shuffles the answer order. playerIDs and locations must not be empty.
func NewRound(playerIDs []string, locations []internal.Location) RoundSetup {
	cards := utils.Sample(locations, internal.MaxCardsPerRound)
	return RoundSetup{
		SpyID:       utils.Choice(playerIDs),
		Cards:       cards,
		Location:    utils.Choice(cards),
		AnswerOrder: utils.Shuffled(playerIDs),
	}
}

// apply writes the setup into the room. Caller holds room.Mu.
func (s RoundSetup) apply(room *internal.Room) {
	room.Votes = make(map[string]map[string]struct{})
	for _, p := range room.Players {
		p.ResetRoundState()
	}
	room.Players[s.SpyID].IsSpy = true

	location := s.Location
	room.Location = &location
	room.Cards = s.Cards
	room.AnswerOrder = s.AnswerOrder
	room.State = internal.StateActive
}

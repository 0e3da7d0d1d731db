package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/spyfall-backend/internal"
	"github.com/scythe504/spyfall-backend/internal/catalog"
)

func TestNewRoundProperties(t *testing.T) {
	locations := catalog.Default().Locations()
	players := []string{"a", "b", "c", "d", "e"}

	for range 500 {
		setup := NewRound(players, locations)

		assert.Contains(t, players, setup.SpyID)

		require.Len(t, setup.Cards, internal.MaxCardsPerRound)
		seen := make(map[string]bool)
		for _, card := range setup.Cards {
			require.False(t, seen[card.ID], "duplicate card %s", card.ID)
			seen[card.ID] = true
		}
		assert.True(t, seen[setup.Location.ID], "secret location must be one of the cards")

		assert.ElementsMatch(t, players, setup.AnswerOrder)
	}
}

func TestNewRoundWithSmallCatalog(t *testing.T) {
	locations := []internal.Location{{ID: "bank"}, {ID: "zoo"}, {ID: "farm"}}

	setup := NewRound([]string{"a", "b", "c"}, locations)

	assert.ElementsMatch(t, locations, setup.Cards)
	assert.Contains(t, locations, setup.Location)
}

func TestNewRoundPicksEverySpyEventually(t *testing.T) {
	locations := catalog.Default().Locations()
	players := []string{"a", "b", "c"}
	picked := make(map[string]bool)

	for range 300 {
		picked[NewRound(players, locations).SpyID] = true
	}
	assert.Len(t, picked, len(players))
}

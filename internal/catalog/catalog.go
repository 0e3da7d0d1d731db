// Package catalog holds the immutable set of locations a round's cards are
// drawn from.
package catalog

import (
	"errors"
	"fmt"

	"github.com/scythe504/spyfall-backend/internal"
)

var (
	ErrEmpty       = errors.New("catalog: no locations")
	ErrDuplicateID = errors.New("catalog: duplicate location id")
)

// Catalog is safe for concurrent use; it is never mutated after New.
type Catalog struct {
	locations []internal.Location
	byID      map[string]int
}

func New(locations []internal.Location) (*Catalog, error) {
	if len(locations) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		locations: append([]internal.Location(nil), locations...),
		byID:      make(map[string]int, len(locations)),
	}
	for i, loc := range c.locations {
		if loc.ID == "" {
			return nil, fmt.Errorf("catalog: location %d has an empty id", i)
		}
		if _, dup := c.byID[loc.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, loc.ID)
		}
		c.byID[loc.ID] = i
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultLocations)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.locations)
}

// Locations returns a copy in catalog order.
func (c *Catalog) Locations() []internal.Location {
	return append([]internal.Location(nil), c.locations...)
}

func (c *Catalog) Lookup(id string) (internal.Location, bool) {
	i, ok := c.byID[id]
	if !ok {
		return internal.Location{}, false
	}
	return c.locations[i], true
}

var defaultLocations = []internal.Location{
	{ID: "mall", Icon: "🏬"},
	{ID: "aquapark", Icon: "🏊"},
	{ID: "airport", Icon: "✈️"},
	{ID: "train_station", Icon: "🚉"},
	{ID: "bus_station", Icon: "🚌"},
	{ID: "metro", Icon: "🚇"},
	{ID: "police", Icon: "👮"},
	{ID: "hospital", Icon: "🏥"},
	{ID: "fire_station", Icon: "🚒"},
	{ID: "car_wash", Icon: "🚗"},
	{ID: "barbershop", Icon: "💈"},
	{ID: "school", Icon: "🏫"},
	{ID: "university", Icon: "🎓"},
	{ID: "office_building", Icon: "🏢"},
	{ID: "music_school", Icon: "🎵"},
	{ID: "post_office", Icon: "📮"},
	{ID: "bank", Icon: "🏦"},
	{ID: "night_club", Icon: "🎧"},
	{ID: "restaurant", Icon: "🍽️"},
	{ID: "cafe", Icon: "☕"},
	{ID: "bar", Icon: "🍺"},
	{ID: "cinema", Icon: "🎬"},
	{ID: "gym", Icon: "🏋️"},
	{ID: "football_stadium", Icon: "⚽"},
	{ID: "basketball_court", Icon: "🏀"},
	{ID: "tennis_court", Icon: "🎾"},
	{ID: "pool", Icon: "🏊‍♂️"},
	{ID: "skate_park", Icon: "🛹"},
	{ID: "bowling_club", Icon: "🎳"},
	{ID: "passenger_train", Icon: "🚆"},
	{ID: "cruise_ship", Icon: "🛳️"},
	{ID: "cargo_ship", Icon: "🚢"},
	{ID: "airplane", Icon: "🛫"},
	{ID: "submarine", Icon: "🛥️"},
	{ID: "space_station", Icon: "🛰️"},
	{ID: "factory", Icon: "🏭"},
	{ID: "construction_site", Icon: "🚧"},
	{ID: "farm", Icon: "🚜"},
	{ID: "bakery", Icon: "🥐"},
	{ID: "tv_studio", Icon: "📺"},
	{ID: "radio_station", Icon: "📻"},
	{ID: "fire_department", Icon: "🚒"},
	{ID: "court", Icon: "⚖️"},
	{ID: "beach", Icon: "🏖️"},
	{ID: "forest", Icon: "🌲"},
	{ID: "mountain", Icon: "⛰️"},
	{ID: "camp", Icon: "🏕️"},
	{ID: "fishing_base", Icon: "🎣"},
	{ID: "amusement_park", Icon: "🎡"},
	{ID: "zoo", Icon: "🦁"},
	{ID: "aquarium", Icon: "🐠"},
	{ID: "military_base", Icon: "🪖"},
	{ID: "laboratory", Icon: "🧪"},
	{ID: "bunker", Icon: "🚷"},
	{ID: "prison", Icon: "🚔"},
	{ID: "castle", Icon: "🏰"},
	{ID: "magic_school", Icon: "🧙‍♂️"},
}

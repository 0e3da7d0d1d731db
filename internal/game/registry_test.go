package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/spyfall-backend/internal"
)

func TestCreateRoomRegistersWaitingRoom(t *testing.T) {
	reg := NewRegistry()
	room := reg.CreateRoom(internal.NewPlayer("h", "Hana"), time.Minute)

	assert.Len(t, room.Code, 4)
	assert.Equal(t, "h", room.Host)
	assert.Equal(t, internal.StateWaiting, room.State)
	assert.Equal(t, time.Minute, room.RoundDuration)
	assert.Equal(t, []string{"h"}, room.JoinOrder)

	found, err := reg.Lookup(room.Code)
	require.NoError(t, err)
	assert.Same(t, room, found)
}

func TestCreateRoomRetriesOnCollision(t *testing.T) {
	codes := []string{"AAAA", "AAAA", "AAAA", "BBBB"}
	var mu sync.Mutex
	next := func() string {
		mu.Lock()
		defer mu.Unlock()
		code := codes[0]
		codes = codes[1:]
		return code
	}
	reg := NewRegistry(WithCodeSource(next))

	first := reg.CreateRoom(internal.NewPlayer("a", "A"), 0)
	second := reg.CreateRoom(internal.NewPlayer("b", "B"), 0)

	assert.Equal(t, "AAAA", first.Code)
	assert.Equal(t, "BBBB", second.Code)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, internal.DefaultRoundDuration, first.RoundDuration)
}

func TestLookupNormalizesCode(t *testing.T) {
	reg := NewRegistry(WithCodeSource(func() string { return "QWER" }))
	room := reg.CreateRoom(internal.NewPlayer("a", "A"), 0)

	found, err := reg.Lookup("  qwer ")
	require.NoError(t, err)
	assert.Same(t, room, found)
}

func TestLookupUnknownRoom(t *testing.T) {
	reg := NewRegistry()

	room, err := reg.Lookup("ZZZZ")
	assert.Nil(t, room)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

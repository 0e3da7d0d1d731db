package game

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scythe504/spyfall-backend/internal"
)

type delivery struct {
	to   string // connection id for Send
	room string // room code for Broadcast
	msg  internal.Message[any]
}

// recorder is an in-memory Notifier.
type recorder struct {
	mu         sync.Mutex
	subscribed map[string][]string
	log        []delivery
}

func newRecorder() *recorder {
	return &recorder{subscribed: make(map[string][]string)}
}

func (r *recorder) Subscribe(code, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribed[code] = append(r.subscribed[code], connID)
}

func (r *recorder) Send(connID string, msg internal.Message[any]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, delivery{to: connID, msg: msg})
}

func (r *recorder) Broadcast(code string, msg internal.Message[any]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, delivery{room: code, msg: msg})
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = nil
}

func (r *recorder) sentTo(connID, eventType string) []internal.Message[any] {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internal.Message[any]
	for _, d := range r.log {
		if d.to == connID && d.msg.Type == eventType {
			out = append(out, d.msg)
		}
	}
	return out
}

func (r *recorder) broadcasts(eventType string) []internal.Message[any] {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []internal.Message[any]
	for _, d := range r.log {
		if d.room != "" && d.msg.Type == eventType {
			out = append(out, d.msg)
		}
	}
	return out
}

// types lists every recorded event type in order, skipping timer ticks.
func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, d := range r.log {
		if d.msg.Type == internal.EventTimer {
			continue
		}
		out = append(out, d.msg.Type)
	}
	return out
}

type fakeArchive struct {
	mu       sync.Mutex
	outcomes []internal.Outcome
	err      error
}

func (a *fakeArchive) RecordOutcome(_ context.Context, o internal.Outcome) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outcomes = append(a.outcomes, o)
	return a.err
}

func (a *fakeArchive) recorded() []internal.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]internal.Outcome(nil), a.outcomes...)
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *recorder) {
	t.Helper()
	rec := newRecorder()
	return NewEngine(NewRegistry(), rec, opts...), rec
}

// seatPlayers creates a room hosted by "host" and joins n-1 more players
// named p1, p2, ... It returns the room code and all ids in join order.
func seatPlayers(t *testing.T, e *Engine, n int) (string, []string) {
	t.Helper()
	snapshot := e.Create("host", "Host")
	ids := []string{"host"}
	for i := 1; i < n; i++ {
		id := fmt.Sprintf("p%d", i)
		_, err := e.Join(snapshot.Code, id, fmt.Sprintf("Player %d", i))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return snapshot.Code, ids
}

func lookupRoom(t *testing.T, e *Engine, code string) *internal.Room {
	t.Helper()
	room, err := e.rooms.Lookup(code)
	require.NoError(t, err)
	return room
}

// roles returns the spy id and the agent ids of the current round.
func roles(t *testing.T, room *internal.Room) (string, []string) {
	t.Helper()
	room.Mu.Lock()
	defer room.Mu.Unlock()

	var spy string
	var agents []string
	for _, id := range room.JoinOrder {
		if room.Players[id].IsSpy {
			require.Empty(t, spy, "more than one spy")
			spy = id
		} else {
			agents = append(agents, id)
		}
	}
	require.NotEmpty(t, spy, "no spy assigned")
	return spy, agents
}

func scores(room *internal.Room) map[string]int {
	room.Mu.Lock()
	defer room.Mu.Unlock()
	return room.Scores()
}

func stateOf(room *internal.Room) internal.RoomState {
	room.Mu.Lock()
	defer room.Mu.Unlock()
	return room.State
}

func secretOf(t *testing.T, room *internal.Room) string {
	t.Helper()
	room.Mu.Lock()
	defer room.Mu.Unlock()
	require.NotNil(t, room.Location)
	return room.Location.ID
}

package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/scythe504/spyfall-backend/internal"
	"github.com/scythe504/spyfall-backend/internal/catalog"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrInsufficientPlayers = fmt.Errorf("need at least %d players", internal.MinPlayersToStart)
)

// Notifier delivers outbound events. Implementations must not block: the
// engine publishes while holding the room lock so that the events of one
// operation reach every member in order.
type Notifier interface {
	Subscribe(code, connID string)
	Send(connID string, msg internal.Message[any])
	Broadcast(code string, msg internal.Message[any])
}

// Archiver stores resolved rounds. It is called off the room lock.
type Archiver interface {
	RecordOutcome(ctx context.Context, outcome internal.Outcome) error
}

type Engine struct {
	rooms   *Registry
	catalog *catalog.Catalog
	notify  Notifier
	archive Archiver

	roundDuration  time.Duration
	tickInterval   time.Duration
	archiveTimeout time.Duration
	now            func() time.Time

	log     zerolog.Logger
	pending sync.WaitGroup
}

type Option func(*Engine)

func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

func WithRoundDuration(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.roundDuration = d
		}
	}
}

func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// WithArchiver records every resolved round. A non-positive timeout keeps
// the default.
func WithArchiver(a Archiver, timeout time.Duration) Option {
	return func(e *Engine) {
		e.archive = a
		if timeout > 0 {
			e.archiveTimeout = timeout
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.log = logger }
}

func NewEngine(rooms *Registry, notify Notifier, opts ...Option) *Engine {
	e := &Engine{
		rooms:          rooms,
		catalog:        catalog.Default(),
		notify:         notify,
		roundDuration:  internal.DefaultRoundDuration,
		tickInterval:   time.Second,
		archiveTimeout: 5 * time.Second,
		now:            time.Now,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// =============================================================================
// MEMBERSHIP
// =============================================================================

// Create opens a room hosted by connID and sends the creator a joined event.
func (e *Engine) Create(connID, name string) internal.RoomSnapshot {
	room := e.rooms.CreateRoom(internal.NewPlayer(connID, name), e.roundDuration)

	room.Mu.Lock()
	defer room.Mu.Unlock()

	e.notify.Subscribe(room.Code, connID)
	snapshot := room.Snapshot()
	e.notify.Send(connID, internal.NewMessage(internal.EventJoined, snapshot))

	return snapshot
}

// Join adds a fresh player to the room. A player rejoining with the same id
// starts over at zero points. Joining is allowed in any state.
func (e *Engine) Join(code, connID, name string) (internal.RoomSnapshot, error) {
	room, err := e.rooms.Lookup(code)
	if err != nil {
		return internal.RoomSnapshot{}, err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	room.AddPlayer(internal.NewPlayer(connID, name))
	e.notify.Subscribe(room.Code, connID)

	snapshot := room.Snapshot()
	e.notify.Send(connID, internal.NewMessage(internal.EventJoined, snapshot))
	e.notify.Broadcast(room.Code, internal.NewMessage(internal.EventUpdate, snapshot))

	e.log.Info().
		Str("room", room.Code).
		Str("player", connID).
		Str("state", string(room.State)).
		Int("players", room.GetPlayerCount()).
		Msg("player joined")

	return snapshot, nil
}

// Snapshot returns the current public view of a room.
func (e *Engine) Snapshot(code string) (internal.RoomSnapshot, error) {
	room, err := e.rooms.Lookup(code)
	if err != nil {
		return internal.RoomSnapshot{}, err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	return room.Snapshot(), nil
}

// Wait blocks until every pending archive write has finished.
func (e *Engine) Wait() {
	e.pending.Wait()
}

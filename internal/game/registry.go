package game

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/scythe504/spyfall-backend/internal"
	"github.com/scythe504/spyfall-backend/internal/utils"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

// Registry maps room codes to rooms for the lifetime of the process.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*internal.Room
	newCode func() string
	log     zerolog.Logger
}

type RegistryOption func(*Registry)

// WithCodeSource replaces the random room code generator.
func WithCodeSource(next func() string) RegistryOption {
	return func(r *Registry) { r.newCode = next }
}

func WithRegistryLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.log = logger }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		rooms:   make(map[string]*internal.Room),
		newCode: utils.GenerateRoomCode,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateRoom registers a new waiting room with host as its only player.
func (r *Registry) CreateRoom(host *internal.Player, roundDuration time.Duration) *internal.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := r.newCode()
	for attempts := 1; ; attempts++ {
		if _, taken := r.rooms[code]; !taken {
			break
		}
		r.log.Debug().Str("room", code).Int("attempt", attempts).Msg("room code collision, retrying")
		code = r.newCode()
	}

	room := internal.NewRoom(code, host)
	if roundDuration > 0 {
		room.RoundDuration = roundDuration
	}
	r.rooms[code] = room

	r.log.Info().Str("room", code).Str("host", host.Id).Msg("created room")
	return room
}

// Lookup finds a room by code. Input is trimmed and upper-cased.
func (r *Registry) Lookup(code string) (*internal.Room, error) {
	code = NormalizeCode(code)

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[code]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

package internal

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultRoundDuration = 180 * time.Second
	MinPlayersToStart    = 3
	MaxCardsPerRound     = 12
	SpyPoints            = 3
	TeamPoints           = 2
	DefaultDisplayName   = "Player"
)

type RoomState string

const (
	StateWaiting  RoomState = "waiting"
	StateActive   RoomState = "active"
	StateFinished RoomState = "finished"
)

type Role string

const (
	RoleSpy   Role = "spy"
	RoleAgent Role = "agent"
)

type Reason string

const (
	ReasonTimeout     Reason = "timeout"
	ReasonSpyGuess    Reason = "spy_guess"
	ReasonCorrectVote Reason = "vote_correct"
	ReasonWrongVote   Reason = "vote_wrong"
)

type Location struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
}

// RoundTimer holds the deadline of the active round and the cancel handle of
// the countdown goroutine bound to it.
type RoundTimer struct {
	Deadline time.Time
	Context  context.Context
	Cancel   context.CancelFunc
}

type Room struct {
	Code string
	Host string

	Players map[string]*Player
	// JoinOrder keeps Players in insertion order; map iteration is random.
	JoinOrder []string

	// Round state
	State         RoomState
	Location      *Location
	Cards         []Location
	AnswerOrder   []string
	RoundDuration time.Duration

	// Timer is nil while no deadline is set.
	Timer *RoundTimer

	// Votes maps target id to the set of distinct voter ids.
	Votes map[string]map[string]struct{}

	// Concurrency control
	Mu sync.Mutex
}

// Outcome is the record of one resolved round.
type Outcome struct {
	RoomCode   string         `json:"roomCode"`
	SpyWin     bool           `json:"spyWin"`
	Reason     Reason         `json:"reason"`
	LocationID string         `json:"locationId"`
	SpyNames   []string       `json:"spyNames"`
	Scores     map[string]int `json:"scores"`
	FinishedAt time.Time      `json:"finishedAt"`
}

package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound event types
const (
	EventCreate    = "create"
	EventJoin      = "join"
	EventStart     = "start"
	EventGuess     = "guess"
	EventVote      = "vote"
	EventNextRound = "next_round"
)

// Outbound event types
const (
	EventConnected  = "connected"
	EventJoined     = "joined"
	EventUpdate     = "update"
	EventRound      = "round"
	EventTimer      = "timer"
	EventVoteUpdate = "vote_update"
	EventFinished   = "finished"
	EventGoLobby    = "go_lobby"
	EventError      = "error"
)

type CreateData struct {
	Name string `json:"name"`
}

type JoinData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type RoomActionData struct {
	Code string `json:"code"`
}

type GuessData struct {
	Code     string `json:"code"`
	Location string `json:"location"`
}

type VoteData struct {
	Code   string `json:"code"`
	Target string `json:"target"`
}

type ConnectedData struct {
	ID string `json:"id"`
}

type RoomSnapshot struct {
	Code    string           `json:"code"`
	State   RoomState        `json:"state"`
	Host    string           `json:"host"`
	Players []PlayerSnapshot `json:"players"`
}

type RoundData struct {
	Role     Role       `json:"role"`
	Location *Location  `json:"location"`
	Cards    []Location `json:"cards"`
	Order    []string   `json:"order"`
	Duration int        `json:"duration"`
}

type TimerUpdateData struct {
	Remaining int `json:"remaining"`
}

type VoteUpdateData struct {
	Target    string `json:"target"`
	Count     int    `json:"count"`
	Threshold int    `json:"threshold"`
}

type FinishedData struct {
	SpyWin     bool           `json:"spyWin"`
	Reason     Reason         `json:"reason"`
	LocationID *string        `json:"locationId"`
	SpyNames   []string       `json:"spyNames"`
	Scores     map[string]int `json:"scores"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// NewMessage boxes typed data for the transport, which works on Message[any].
func NewMessage[T any](eventType string, data T) Message[any] {
	return Message[any]{Type: eventType, Data: data}
}

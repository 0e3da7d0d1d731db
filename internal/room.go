package internal

// Methods (Room Struct). Callers hold room.Mu.

func NewRoom(code string, host *Player) *Room {
	room := &Room{
		Code:          code,
		Host:          host.Id,
		Players:       make(map[string]*Player),
		JoinOrder:     make([]string, 0, MinPlayersToStart),
		State:         StateWaiting,
		Cards:         make([]Location, 0),
		AnswerOrder:   make([]string, 0),
		RoundDuration: DefaultRoundDuration,
		Votes:         make(map[string]map[string]struct{}),
	}
	room.AddPlayer(host)
	return room
}

// AddPlayer registers p, replacing any player with the same id in place.
func (r *Room) AddPlayer(p *Player) {
	if _, exists := r.Players[p.Id]; !exists {
		r.JoinOrder = append(r.JoinOrder, p.Id)
	}
	r.Players[p.Id] = p
}

func (r *Room) GetPlayerCount() int {
	return len(r.Players)
}

func (r *Room) CanStartGame() bool {
	return r.GetPlayerCount() >= MinPlayersToStart
}

// OrderedPlayers returns the players in join order.
func (r *Room) OrderedPlayers() []*Player {
	players := make([]*Player, 0, len(r.JoinOrder))
	for _, id := range r.JoinOrder {
		if p, ok := r.Players[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

func (r *Room) PlayerIDs() []string {
	return append([]string(nil), r.JoinOrder...)
}

// SpyNames lists the display names of every player flagged as spy.
func (r *Room) SpyNames() []string {
	names := make([]string, 0, 1)
	for _, p := range r.OrderedPlayers() {
		if p.IsSpy {
			names = append(names, p.DisplayName)
		}
	}
	return names
}

func (r *Room) Scores() map[string]int {
	scores := make(map[string]int, len(r.Players))
	for id, p := range r.Players {
		scores[id] = p.Score
	}
	return scores
}

// VoteThreshold is everyone except the accused, never below two.
func (r *Room) VoteThreshold() int {
	return max(2, len(r.Players)-1)
}

func (r *Room) VoteCount(target string) int {
	return len(r.Votes[target])
}

// AnswerOrderNames renders the answer order as display names.
func (r *Room) AnswerOrderNames() []string {
	names := make([]string, 0, len(r.AnswerOrder))
	for _, id := range r.AnswerOrder {
		if p, ok := r.Players[id]; ok {
			names = append(names, p.DisplayName)
		}
	}
	return names
}

// ResetRound clears every round-scoped field. Scores survive.
func (r *Room) ResetRound() {
	r.State = StateWaiting
	r.Votes = make(map[string]map[string]struct{})
	r.Location = nil
	r.Cards = make([]Location, 0)
	r.AnswerOrder = make([]string, 0)
	r.Timer = nil
	for _, p := range r.Players {
		p.ResetRoundState()
	}
}

func (r *Room) Snapshot() RoomSnapshot {
	players := make([]PlayerSnapshot, 0, len(r.JoinOrder))
	for _, p := range r.OrderedPlayers() {
		players = append(players, CreatePlayerSnapshot(p))
	}
	return RoomSnapshot{
		Code:    r.Code,
		State:   r.State,
		Host:    r.Host,
		Players: players,
	}
}

package internal

type Player struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsSpy       bool   `json:"isSpy"`
	Score       int    `json:"score"`
}

type PlayerSnapshot struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
	IsSpy       bool   `json:"isSpy"`
}

func NewPlayer(id, displayName string) *Player {
	if displayName == "" {
		displayName = DefaultDisplayName
	}
	return &Player{
		Id:          id,
		DisplayName: displayName,
	}
}

func (p *Player) ResetRoundState() {
	p.IsSpy = false
}

func CreatePlayerSnapshot(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		ID:          p.Id,
		DisplayName: p.DisplayName,
		Score:       p.Score,
		IsSpy:       p.IsSpy,
	}
}

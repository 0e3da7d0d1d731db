package game

import (
	"github.com/scythe504/spyfall-backend/internal"
)

// Vote records voterID's accusation against targetID and resolves the round
// once the target reaches the quorum. Votes are never retracted: switching
// targets leaves the earlier accusation standing.
func (e *Engine) Vote(code, voterID, targetID string) error {
	room, err := e.rooms.Lookup(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.State != internal.StateActive {
		return nil
	}
	voter, ok := room.Players[voterID]
	if !ok {
		return nil
	}
	target, ok := room.Players[targetID]
	if !ok {
		return nil
	}
	if voter.IsSpy {
		e.log.Debug().Str("room", room.Code).Str("player", voterID).Msg("vote ignored, spies cannot vote")
		return nil
	}

	voters, ok := room.Votes[targetID]
	if !ok {
		voters = make(map[string]struct{})
		room.Votes[targetID] = voters
	}
	voters[voterID] = struct{}{}

	count := len(voters)
	threshold := room.VoteThreshold()
	e.notify.Broadcast(room.Code, internal.NewMessage(internal.EventVoteUpdate, internal.VoteUpdateData{
		Target:    targetID,
		Count:     count,
		Threshold: threshold,
	}))

	e.log.Debug().
		Str("room", room.Code).
		Str("voter", voterID).
		Str("target", targetID).
		Int("count", count).
		Int("threshold", threshold).
		Msg("vote recorded")

	if count < threshold {
		return nil
	}
	if target.IsSpy {
		e.resolve(room, false, internal.ReasonCorrectVote)
	} else {
		e.resolve(room, true, internal.ReasonWrongVote)
	}
	return nil
}

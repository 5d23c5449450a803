package japjap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"japjap-server/pkg/snapshot"
)

func TestGame_GetPlayerState_snapshot(t *testing.T) {
	g := newDealtGame(t, 3, humansOnly())
	arrange(g, "9c,4d", "10d,1d,11c", "2h,2s,13c,7d,1c", "4h,5h,6h,1s,2c", "12h,12d,3s,3c,8s")

	state, err := g.GetPlayerState(1)
	assert.NoError(t, err)
	snapshot.Validate(t, state, "player 1 before playing")

	assert.NoError(t, g.Play(1, cards("2h,2s"), SourceDiscard))

	state, err = g.GetPlayerState(2)
	assert.NoError(t, err)
	snapshot.Validate(t, state, "player 2 on turn")

	// spectators only see the public state
	state, err = g.GetPlayerState(99)
	assert.NoError(t, err)
	snapshot.Validate(t, state, "spectator")

	res := state.Data.(*Response)
	assert.Empty(t, res.Hand)
	for _, p := range res.GameState.Participants {
		assert.Nil(t, p.Hand, "hand of %d is hidden while the round is played", p.PlayerID)
	}
}

package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_EndGame(t *testing.T) {
	owner, tbl := newTable(t)
	guest, _ := seatAt(t, tbl)

	game, err := tbl.CreateGame(bg, "japjap")
	require.NoError(t, err)

	stored, err := GameByID(bg, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "japjap", stored.GameType)
	assert.Nil(t, stored.Data())
	assert.True(t, stored.Ended.IsZero(), "the game is still running")

	started := time.Now().Add(-time.Minute)
	scores := map[int64]int{owner.ID: 12, guest.ID: 91}
	require.NoError(t, game.EndGame(bg, map[string]string{"winner": "owner"}, scores, []int64{owner.ID}))

	for _, tc := range []struct {
		player *Player
		wins   int
	}{
		{owner, 1},
		{guest, 0},
	} {
		seat, err := tc.player.GetPlayerTable(bg, tbl)
		require.NoError(t, err)
		assert.Equal(t, 1, seat.GamesPlayed)
		assert.Equal(t, tc.wins, seat.Wins)
		assert.Equal(t, scores[tc.player.ID], seat.TotalPoints)
	}

	stored, err = GameByID(bg, game.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"winner": "owner"}, stored.Data())
	assert.True(t, stored.Ended.After(started))
}

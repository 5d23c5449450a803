package playable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"japjap-server/pkg/deck"
)

func TestPayloadIn_decode(t *testing.T) {
	var in PayloadIn
	raw := `{"action":"play","cards":[{"rank":3,"suit":"clubs"}],"additionalData":{"bots":3,"strategy":"greedy","fast":true},"context":"c1"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	assert.Equal(t, "play", in.Action)
	assert.Equal(t, "c1", in.Context)
	assert.Equal(t, []*deck.Card{deck.CardFromString("3c")}, in.Cards)

	data := in.AdditionalData
	bots, ok := data.GetInt("bots")
	assert.True(t, ok)
	assert.Equal(t, 3, bots)

	id, ok := data.GetInt64("bots")
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	strategy, ok := data.GetString("strategy")
	assert.True(t, ok)
	assert.Equal(t, "greedy", strategy)

	fast, ok := data.GetBool("fast")
	assert.True(t, ok)
	assert.True(t, fast)
}

func TestAdditionalData_wrongType(t *testing.T) {
	data := AdditionalData{"strategy": "greedy", "bots": 2, "seed": int64(7)}

	_, ok := data.GetInt("strategy")
	assert.False(t, ok)
	_, ok = data.GetBool("bots")
	assert.False(t, ok)
	_, ok = data.GetString("missing")
	assert.False(t, ok)

	// values set in Go rather than decoded from JSON
	bots, ok := data.GetInt("bots")
	assert.True(t, ok)
	assert.Equal(t, 2, bots)

	seed, ok := data.GetInt64("seed")
	assert.True(t, ok)
	assert.Equal(t, int64(7), seed)
}

package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	d := New(rand.New(rand.NewSource(1))) // nolint:gosec

	assert.Equal(t, 52, d.CardsLeft())
	assert.Equal(t, Card{Rank: 1, Suit: Clubs}, *d.Cards[0])
	assert.Equal(t, Card{Rank: 13, Suit: Spades}, *d.Cards[51])
}

func TestNew_defaultGenerator(t *testing.T) {
	d := New(nil)
	d.Shuffle()
	assert.Equal(t, 52, d.CardsLeft())
}

func TestDeck_Shuffle(t *testing.T) {
	d := New(rand.New(rand.NewSource(1))) // nolint:gosec
	unshuffled := d.HashCode()

	d.Shuffle()
	assert.Equal(t, 52, d.CardsLeft())
	assert.NotEqual(t, unshuffled, d.HashCode())

	seen := make(map[Card]bool)
	for _, c := range d.Cards {
		seen[*c] = true
	}
	assert.Equal(t, 52, len(seen))

	// the same seed gives the same order
	d2 := New(rand.New(rand.NewSource(1))) // nolint:gosec
	d2.Shuffle()
	assert.Equal(t, d.HashCode(), d2.HashCode())

	// shuffling again rebuilds the full deck
	_, _ = d.Draw()
	d.Shuffle()
	assert.Equal(t, 52, d.CardsLeft())
}

func TestDeck_ShuffleDiscards(t *testing.T) {
	d := New(rand.New(rand.NewSource(3))) // nolint:gosec
	discards := CardsFromString("1c,2c,3c,4c")
	d.ShuffleDiscards(discards)

	assert.Equal(t, 4, d.CardsLeft())
	assert.ElementsMatch(t, discards, d.Cards)
	// the caller's slice is untouched
	assert.Equal(t, "1c,2c,3c,4c", CardsToString(discards))
}

func TestDeck_Draw(t *testing.T) {
	d := New(nil)

	assert.True(t, d.CanDraw(52))
	assert.False(t, d.CanDraw(53))

	for i := 0; i < 52; i++ {
		card, err := d.Draw()
		assert.NotNil(t, card)
		assert.NoError(t, err)
	}

	assert.False(t, d.CanDraw(1))

	card, err := d.Draw()
	assert.Nil(t, card)
	assert.Equal(t, ErrEndOfDeck, err)
}

package japjap

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"japjap-server/pkg/deck"
)

func card(s string) *deck.Card {
	return deck.CardFromString(s)
}

func cards(s string) []*deck.Card {
	return deck.CardsFromString(s)
}

// newDealtGame returns a dealt game where player IDs 1..humans are human and the first seat is up
func newDealtGame(t *testing.T, humans int, opts Options) *Game {
	t.Helper()

	ids := make([]int64, humans)
	for i := range ids {
		ids[i] = int64(i + 1)
	}

	g, err := NewGame(logrus.StandardLogger(), ids, opts)
	assert.NoError(t, err)
	g.startSeat = 0
	assert.NoError(t, g.Deal())

	return g
}

// arrange replaces the dealt cards with a known layout
func arrange(g *Game, discards, deckCards string, hands ...string) {
	for i, h := range hands {
		g.participants[i].hand = deck.Hand(cards(h))
	}

	g.discards = &deck.Pile{Cards: cards(discards)}
	g.deck.Cards = cards(deckCards)
}

func handEqual(t *testing.T, g *Game, playerID int64, expected string) {
	t.Helper()
	assert.Equal(t, deck.Hand(cards(expected)).Sorted(), g.idToParticipant[playerID].hand.Sorted())
}

// expirePendingAction makes the pending dealer action runnable now
func expirePendingAction(t *testing.T, g *Game) {
	t.Helper()
	if assert.NotNil(t, g.pendingDealerAction) {
		g.pendingDealerAction.ExecuteAfter = time.Now().Add(-time.Millisecond)
	}
}

func humansOnly() Options {
	opts := DefaultOptions()
	opts.Bots = 0
	return opts
}

package japjap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"japjap-server/pkg/deck"
)

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("naive")
	assert.NoError(t, err)
	assert.Equal(t, NaiveStrategy{}, s)

	s, err = StrategyByName("greedy")
	assert.NoError(t, err)
	assert.Equal(t, "greedy", s.Name())

	s, err = StrategyByName("smart")
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
	assert.EqualError(t, err, `unknown strategy: "smart"`)
}

func TestNaiveStrategy_ChooseDiscard(t *testing.T) {
	tests := []struct {
		hand     string
		expected string
	}{
		{"3c,3d,9h,9s,12c", "3c,3d"},
		{"9c,9d,4h,4s,1c", "4h,4s"},
		{"1h,2h,3h,9c,9d", "9c,9d"},
		{"4h,5h,6h,2c,13d", "4h,5h,6h"},
		{"8c,9c,10c,1d,2d,3d,13s", "1d,2d,3d"},
		{"2c,7d,9h,11s,12c", "2c"},
		{"7s,7d", "7d,7s"},
	}

	for _, test := range tests {
		assert.Equal(t, cards(test.expected), NaiveStrategy{}.ChooseDiscard(deck.Hand(cards(test.hand))), test.hand)
	}

	assert.Nil(t, NaiveStrategy{}.ChooseDiscard(deck.Hand{}))
}

func TestGreedyStrategy_ChooseDiscard(t *testing.T) {
	tests := []struct {
		hand     string
		expected string
	}{
		{"1h,2h,3h,9c,9d", "9c,9d"},
		{"2c,7d,13h,11s,12c", "13h"},
		{"11h,12h,13h,13c", "11h,12h,13h"},
		{"6c,6d,12s", "6c,6d"},
		{"1c", "1c"},
	}

	for _, test := range tests {
		assert.Equal(t, cards(test.expected), GreedyStrategy{}.ChooseDiscard(deck.Hand(cards(test.hand))), test.hand)
	}

	assert.Nil(t, GreedyStrategy{}.ChooseDiscard(nil))
}

func Test_chooseSource(t *testing.T) {
	tests := []struct {
		kept      string
		available string
		expected  Source
	}{
		{"9c,2h", "9d", SourceDiscard},
		{"4s,6s", "5s", SourceDiscard},
		{"4s,5s", "6s", SourceDiscard},
		{"4s,5h", "6s", SourceDeck},
		{"10c,12d", "2h", SourceDiscard},
		{"2c,4d", "1h", SourceDeck},
		{"10c,12d", "4h", SourceDeck},
		{"", "3c", SourceDiscard},
		{"", "9c", SourceDeck},
		{"10c", "", SourceDeck},
	}

	for _, test := range tests {
		got := chooseSource(deck.Hand(cards(test.kept)), deck.CardFromString(test.available))
		assert.Equal(t, test.expected, got, "%s + %s", test.kept, test.available)
	}
}

func Test_remaining(t *testing.T) {
	hand := deck.Hand(cards("3c,3d,9h"))
	assert.Equal(t, deck.Hand(cards("9h")), remaining(hand, cards("3c,3d")))
	assert.Len(t, hand, 3, "the hand is not modified")
}

package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit is one of the four French suits
type Suit string

const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Suits lists the suits in deck order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// suitGlyphs and suitLetters are indexed like Suits
var (
	suitGlyphs  = [...]string{"♣", "♢", "♡", "♠"}
	suitLetters = [...]string{"c", "d", "h", "s"}
)

// index is the suit's position in Suits, or -1
func (s Suit) index() int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}

	return -1
}

// Ranks run from the ace, which is always low, to the king
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13

	MinRank = Ace
	MaxRank = King
)

var faceNames = map[int]string{Ace: "A", Jack: "J", Queen: "Q", King: "K"}

// Card is a single playing card
// Cards are shared between hands and piles and never modified
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// String is the display form, e.g., "10♡"
func (c *Card) String() string {
	i := c.Suit.index()
	if i < 0 {
		panic(fmt.Sprintf("unknown suit %q", c.Suit))
	}

	rank, ok := faceNames[c.Rank]
	if !ok {
		rank = strconv.Itoa(c.Rank)
	}

	return rank + suitGlyphs[i]
}

// Value is how many points the card counts for, its rank
func (c *Card) Value() int {
	return c.Rank
}

// Equal compares rank and suit, two nil cards are equal
func (c *Card) Equal(other *Card) bool {
	if c == nil || other == nil {
		return c == other
	}

	return *c == *other
}

var cardRx = regexp.MustCompile(`(?i)^(1[0-3]|[1-9])([cdhs])\z`)

// ParseCard reads the short form <rank><suit>, e.g., "1c" or "13h"
func ParseCard(s string) (*Card, error) {
	m := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, fmt.Errorf("could not parse card: %q", s)
	}

	rank, _ := strconv.Atoi(m[1])
	letter := strings.ToLower(m[2])
	for i, l := range suitLetters {
		if l == letter {
			return &Card{Rank: rank, Suit: Suits[i]}, nil
		}
	}

	return nil, fmt.Errorf("could not parse card: %q", s)
}

// ParseCards reads a comma separated list of short forms
func ParseCards(s string) ([]*Card, error) {
	if strings.TrimSpace(s) == "" {
		return []*Card{}, nil
	}

	fields := strings.Split(s, ",")
	cards := make([]*Card, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}

		cards = append(cards, card)
	}

	return cards, nil
}

// CardFromString is ParseCard for tests and constants, it panics on bad input
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return card
}

// CardsFromString is ParseCards for tests, it panics on bad input
func CardsFromString(s string) []*Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}

	return cards
}

// CardToString returns the short form of the card, "" for nil
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	letter := ""
	if i := card.Suit.index(); i >= 0 {
		letter = suitLetters[i]
	}

	return strconv.Itoa(card.Rank) + letter
}

// CardsToString joins the short forms with commas
func CardsToString(cards []*Card) string {
	var sb strings.Builder
	for i, card := range cards {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(CardToString(card))
	}

	return sb.String()
}

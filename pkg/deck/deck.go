package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"japjap-server/internal/rng"
)

// ErrEndOfDeck is returned by Draw once the deck is empty
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a full deck
const Size = 52

// Deck is the face-down draw pile, cards are drawn from the front
type Deck struct {
	Cards []*Card `json:"cards"`
	rng   rng.Generator
}

// New returns a full deck in order
// Call Shuffle before dealing from it
// A nil generator uses crypto/rand
func New(gen rng.Generator) *Deck {
	if gen == nil {
		gen = rng.Crypto{}
	}

	return &Deck{Cards: fullDeck(), rng: gen}
}

func fullDeck() []*Card {
	cards := make([]*Card, 0, Size)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, &Card{Rank: rank, Suit: suit})
		}
	}

	return cards
}

// Shuffle replaces the deck with a freshly shuffled full deck
func (d *Deck) Shuffle() {
	d.Cards = fullDeck()
	d.shuffle()
}

// ShuffleDiscards makes a new deck from a copy of the discards, shuffled
func (d *Deck) ShuffleDiscards(discards []*Card) {
	d.Cards = append([]*Card(nil), discards...)
	d.shuffle()
}

// shuffle is a Fisher-Yates shuffle driven by the deck's generator
func (d *Deck) shuffle() {
	for n := len(d.Cards); n > 1; n-- {
		k := d.rng.Intn(n)
		d.Cards[k], d.Cards[n-1] = d.Cards[n-1], d.Cards[k]
	}
}

// HashCode fingerprints the order of the remaining cards
func (d *Deck) HashCode() string {
	h := sha1.New() // nolint:gosec
	for _, c := range d.Cards {
		_, _ = h.Write([]byte(CardToString(c)))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Draw takes the next card, ErrEndOfDeck is returned when there is none
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) == 0 {
		return nil, ErrEndOfDeck
	}

	next := d.Cards[0]
	d.Cards = d.Cards[1:]
	return next, nil
}

// CanDraw reports whether at least want cards are left
func (d *Deck) CanDraw(want int) bool {
	return d.CardsLeft() >= want
}

// CardsLeft is the number of cards still in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

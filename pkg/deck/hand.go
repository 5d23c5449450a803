package deck

import "slices"

// Hand is the cards a player holds
type Hand []*Card

// AddCard appends the card
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard reports whether the hand holds the card
func (h Hand) HasCard(card *Card) bool {
	return slices.ContainsFunc(h, card.Equal)
}

// HasCards reports whether the hand holds every card, each requested once
func (h Hand) HasCards(cards []*Card) bool {
	seen := make(map[Card]bool, len(cards))
	for _, card := range cards {
		if card == nil || seen[*card] || !h.HasCard(card) {
			return false
		}

		seen[*card] = true
	}

	return true
}

// Discard removes every copy of the card and returns how many were removed
func (h *Hand) Discard(card *Card) int {
	before := len(*h)
	*h = slices.DeleteFunc(h.Clone(), card.Equal)
	return before - len(*h)
}

// Value is the sum of the card values
func (h Hand) Value() int {
	total := 0
	for _, c := range h {
		total += c.Value()
	}

	return total
}

// Average is the mean card value, zero for an empty hand
func (h Hand) Average() float64 {
	if len(h) == 0 {
		return 0
	}

	return float64(h.Value()) / float64(len(h))
}

// Sorted returns a copy ordered by suit, in deck order, then rank
func (h Hand) Sorted() Hand {
	sorted := h.Clone()
	slices.SortStableFunc(sorted, func(a, b *Card) int {
		if d := a.Suit.index() - b.Suit.index(); d != 0 {
			return d
		}

		return a.Rank - b.Rank
	})

	return sorted
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a copy of the hand, the cards themselves are shared
func (h Hand) Clone() Hand {
	return append(make(Hand, 0, len(h)), h...)
}

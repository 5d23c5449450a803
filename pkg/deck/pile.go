package deck

import "errors"

// ErrEmptyPile is returned when a card is taken from an empty pile
var ErrEmptyPile = errors.New("the discard pile is empty")

// Pile is a face-up discard pile, the last card is on top
type Pile struct {
	Cards []*Card `json:"cards"`
}

// Top returns the top card, or nil
func (p *Pile) Top() *Card {
	if len(p.Cards) == 0 {
		return nil
	}

	return p.Cards[len(p.Cards)-1]
}

// Push puts the cards on the pile, the last card ends up on top
func (p *Pile) Push(cards ...*Card) {
	p.Cards = append(p.Cards, cards...)
}

// TakeTop removes the top card
func (p *Pile) TakeTop() (*Card, error) {
	n := len(p.Cards)
	if n == 0 {
		return nil, ErrEmptyPile
	}

	card := p.Cards[n-1]
	p.Cards = p.Cards[:n-1]
	return card, nil
}

// TakeAllButTop removes every card except the top card
func (p *Pile) TakeAllButTop() []*Card {
	n := len(p.Cards)
	if n <= 1 {
		return nil
	}

	under := make([]*Card, n-1)
	copy(under, p.Cards[:n-1])
	p.Cards = []*Card{p.Cards[n-1]}
	return under
}

// Len returns the number of cards in the pile
func (p *Pile) Len() int {
	return len(p.Cards)
}

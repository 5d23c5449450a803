package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPile(t *testing.T) {
	a := assert.New(t)

	var p Pile
	a.Nil(p.Top())
	card, err := p.TakeTop()
	a.Nil(card)
	a.Equal(ErrEmptyPile, err)
	a.Nil(p.TakeAllButTop())

	p.Push(CardsFromString("1c,2c,3c")...)
	a.Equal(3, p.Len())
	a.Equal("3c", CardToString(p.Top()))

	card, err = p.TakeTop()
	a.NoError(err)
	a.Equal("3c", CardToString(card))
	a.Equal("2c", CardToString(p.Top()))

	p.Push(CardFromString("9h"))
	under := p.TakeAllButTop()
	a.Equal("1c,2c", CardsToString(under))
	a.Equal(1, p.Len())
	a.Equal("9h", CardToString(p.Top()))
}

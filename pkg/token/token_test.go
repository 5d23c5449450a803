package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	token, err := Generate(8)
	assert.NoError(t, err)
	assert.Equal(t, 8, len(token))

	token2, err := Generate(8)
	assert.NoError(t, err)
	assert.NotEqual(t, token, token2)

	rx := regexp.MustCompile(`^[A-Za-z0-9_-]+\z`)
	for _, n := range []int{1, 2, 3, 4, 5, 31, 32, 64} {
		token, err := Generate(n)
		assert.NoError(t, err)
		assert.Len(t, token, n)
		assert.Regexp(t, rx, token)
	}

	_, err = Generate(0)
	assert.EqualError(t, err, "token length must be greater than zero")
}

package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrypto_Intn(t *testing.T) {
	const n = 5

	counts := make([]int, n)
	for i := 0; i < 1000; i++ {
		v := Crypto{}.Intn(n)
		if !assert.True(t, v >= 0 && v < n, "out of range: %d", v) {
			return
		}

		counts[v]++
	}

	// each value is expected about 200 times
	for v, count := range counts {
		assert.Positive(t, count, "never drew %d", v)
	}

	assert.Panics(t, func() { Crypto{}.Intn(0) })
}

func TestNewSeeded(t *testing.T) {
	assert.IsType(t, Crypto{}, NewSeeded(0))

	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

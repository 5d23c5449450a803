package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from crypto/rand, it is the default for real games
type Crypto struct{}

// Intn returns a uniform number in [0, n)
// It panics if n <= 0 or the system's entropy source fails
func (Crypto) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(v.Int64())
}

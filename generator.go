package rowmem

import (
	"math/rand/v2"
	"unsafe"
)

// alphabet holds the printable characters generated values are drawn from.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator produces fixed-length random strings.
//
// Characters are precomputed once into a pool; Get copies a window of the
// pool starting at a random offset, so each call costs one allocation and one
// random number regardless of length.
type Generator struct {
	pool []byte
	rng  *rand.Rand
}

// NewGenerator precomputes poolSize random characters.
// A seed of 0 picks a random seed. poolSize below 1 is treated as 1.
func NewGenerator(poolSize int, seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	poolSize = max(poolSize, 1)

	rng := rand.New(rand.NewPCG(seed, seed+1))
	pool := make([]byte, poolSize)
	for i := range pool {
		pool[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return &Generator{pool: pool, rng: rng}
}

// Cap returns the number of precomputed characters.
func (g *Generator) Cap() int {
	return len(g.pool)
}

// Get returns a new string of exactly length characters.
// Lengths above Cap wrap around the pool.
func (g *Generator) Get(length int) string {
	if length <= 0 {
		return ""
	}
	b := g.GetBytes(length)
	// b is never exposed, so it can back the string directly.
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// GetBytes is Get for callers that store bytes.
func (g *Generator) GetBytes(length int) []byte {
	if length <= 0 {
		return []byte{}
	}
	b := make([]byte, length)
	g.fill(b)
	return b
}

// fill overwrites b with the next value. It draws exactly one random number,
// like Get, so mixing the two keeps same-seed generators in step.
func (g *Generator) fill(b []byte) {
	off := g.rng.IntN(len(g.pool))
	for n := 0; n < len(b); {
		n += copy(b[n:], g.pool[off:])
		off = 0
	}
}

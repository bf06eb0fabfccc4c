package hstring

import (
	cryptorand "crypto/rand"
	"math/rand/v2"
	"time"
)

const lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"

// WordGenerator produces random lowercase words from its own random source.
// It is not safe for concurrent use.
type WordGenerator struct {
	rng *rand.Rand
}

// NewWordGenerator returns a generator drawing from src. A nil src is replaced
// by a ChaCha8 source seeded from crypto/rand.
func NewWordGenerator(src rand.Source) *WordGenerator {
	if src == nil {
		src = entropySource()
	}
	return &WordGenerator{rng: rand.New(src)}
}

// NewSeededWordGenerator returns a deterministic generator for the given seed
func NewSeededWordGenerator(seed uint64) *WordGenerator {
	return NewWordGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns n bytes drawn uniformly from a-z. n <= 0 yields an empty string.
func (g *WordGenerator) Generate(n int) String {
	w := New()
	for i := 0; i < n; i++ {
		w.Append(lowercaseLetters[g.rng.IntN(len(lowercaseLetters))])
	}
	return w
}

// GenerateRandomWord returns a random word of n letters from a freshly seeded
// generator
func GenerateRandomWord(n int) String {
	return NewWordGenerator(nil).Generate(n)
}

func entropySource() rand.Source {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		now := uint64(time.Now().UnixNano())
		return rand.NewPCG(now, now>>1|1)
	}
	return rand.NewChaCha8(seed)
}

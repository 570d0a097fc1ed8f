package pipeline

import (
	"math/rand"

	"github.com/ShamindaKanchana/RS-codes/dna"
)

// mix decorrelates per-block seeds derived from nearby indices
// (splitmix64 increment).
const mix uint64 = 0x9e3779b97f4a7c15

// Substitutions returns an error model that flips exactly perBlock distinct
// positions of each block to a different base. Every block gets its own
// random source seeded from the model seed and the block index, so runs are
// reproducible for a fixed seed and workers never contend on shared state.
func Substitutions(perBlock int, seed int64) ErrorModel {
	return func(index int, block string) string {
		if perBlock <= 0 || len(block) == 0 {
			return block
		}
		rng := rand.New(rand.NewSource(seed ^ int64(uint64(index+1)*mix)))

		n := perBlock
		if n > len(block) {
			n = len(block)
		}
		b := []byte(block)
		for _, pos := range rng.Perm(len(b))[:n] {
			b[pos] = otherBase(rng, b[pos])
		}
		return string(b)
	}
}

// RandomSequence returns a uniformly random DNA sequence of the given
// length, for benchmarks and tests.
func RandomSequence(length int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, length)
	for i := range b {
		b[i] = dna.Alphabet[rng.Intn(len(dna.Alphabet))]
	}
	return string(b)
}

func otherBase(rng *rand.Rand, base byte) byte {
	for {
		alt := dna.Alphabet[rng.Intn(len(dna.Alphabet))]
		if alt != base {
			return alt
		}
	}
}

package rs

import (
	"fmt"

	"github.com/ShamindaKanchana/RS-codes/dna"
)

// Encode systematically encodes a block of exactly k DNA bases. It returns
// the data portion canonicalized to uppercase together with the n-k parity
// symbols. The input is validated eagerly; nothing is emitted on failure.
func (c *Codec) Encode(seq string) (string, []byte, error) {
	if len(seq) != c.k {
		return "", nil, fmt.Errorf("got %d bases, want %d: %w", len(seq), c.k, ErrInvalidBlockLength)
	}
	msg, err := dna.ToSymbols(seq)
	if err != nil {
		return "", nil, err
	}
	out, err := dna.ToDNA(msg)
	if err != nil {
		return "", nil, err
	}
	return out, c.parity(msg), nil
}

// parity computes the remainder of msg(x) * x^(n-k) mod g(x) by synthetic
// division. The generator is monic, so no divisions are needed.
func (c *Codec) parity(msg []byte) []byte {
	nsym := c.n - c.k
	rem := make([]byte, len(msg)+nsym)
	copy(rem, msg)
	for i := 0; i < len(msg); i++ {
		coef := rem[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(c.gen); j++ {
			rem[i+j] ^= c.f.Mul(c.gen[j], coef)
		}
	}
	parity := make([]byte, nsym)
	copy(parity, rem[len(msg):])
	return parity
}

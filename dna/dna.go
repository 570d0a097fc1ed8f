package dna

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet lists the four bases in symbol order, so Alphabet[s] is the base
// for symbol s.
const Alphabet = "ACGT"

var (
	// ErrInvalidAlphabet is returned when a sequence contains a non-ACGT base.
	ErrInvalidAlphabet = errors.New("sequence contains a non-ACGT base")

	// ErrInvalidSymbol is returned when a symbol value has no base, i.e. is
	// greater than 3.
	ErrInvalidSymbol = errors.New("symbol has no DNA base")
)

// baseToSymbol maps ASCII bases (either case) to symbols; 0xff marks bytes
// outside the alphabet.
var baseToSymbol = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 0xff
	}
	for s := 0; s < len(Alphabet); s++ {
		t[Alphabet[s]] = byte(s)
		t[Alphabet[s]|0x20] = byte(s) // lowercase
	}
	return t
}()

// ToSymbols converts a DNA sequence to field symbols using the fixed
// bijection A=0, C=1, G=2, T=3. Input is case-insensitive.
func ToSymbols(seq string) ([]byte, error) {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		s := baseToSymbol[seq[i]]
		if s == 0xff {
			return nil, fmt.Errorf("base %q at position %d: %w", seq[i], i, ErrInvalidAlphabet)
		}
		out[i] = s
	}
	return out, nil
}

// ToDNA converts symbols back to an uppercase DNA sequence.
func ToDNA(symbols []byte) (string, error) {
	var b strings.Builder
	b.Grow(len(symbols))
	for i, s := range symbols {
		if int(s) >= len(Alphabet) {
			return "", fmt.Errorf("symbol %d at position %d: %w", s, i, ErrInvalidSymbol)
		}
		b.WriteByte(Alphabet[s])
	}
	return b.String(), nil
}

// Validate checks that every base of seq is in the alphabet, either case.
func Validate(seq string) error {
	for i := 0; i < len(seq); i++ {
		if baseToSymbol[seq[i]] == 0xff {
			return fmt.Errorf("base %q at position %d: %w", seq[i], i, ErrInvalidAlphabet)
		}
	}
	return nil
}

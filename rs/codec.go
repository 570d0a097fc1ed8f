package rs

import (
	"errors"
	"fmt"

	"github.com/ShamindaKanchana/RS-codes/field"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("rs")

// Default code parameters: RS(15,11) over GF(16), correcting up to 2
// substitution errors per block with 4 parity symbols.
const (
	DefaultN = 15
	DefaultK = 11

	defaultM         = 4
	defaultPrimPoly  = 0x13 // x^4 + x + 1
	defaultFirstRoot = 1
)

var (
	// ErrInvalidParameters is returned when (n, k) do not describe a valid
	// code for the configured field.
	ErrInvalidParameters = errors.New("invalid code parameters")

	// ErrInvalidBlockLength is returned when a block or parity slice does
	// not match the code's dimensions.
	ErrInvalidBlockLength = errors.New("length does not match code dimensions")

	// ErrUncorrectable is returned when a codeword holds more errors than
	// the code can correct, or when correction is internally inconsistent.
	ErrUncorrectable = errors.New("errors exceed correction capability")

	// ErrGeneratorConstruction is returned when the generator polynomial
	// root set is degenerate.
	ErrGeneratorConstruction = errors.New("degenerate generator root set")
)

// Codec is a Reed-Solomon block codec for DNA sequences. The field tables
// and the generator polynomial are computed once at construction; a Codec is
// immutable afterwards and safe to share across goroutines.
type Codec struct {
	n, k      int
	t         int // correction capability, (n-k)/2
	firstRoot int
	f         *field.Field
	gen       []byte
}

// Option configures a Codec during construction.
type Option func(*Codec) error

// WithField replaces the default GF(16) with GF(2^m) built from the given
// primitive polynomial.
func WithField(m int, primPoly uint16) Option {
	return func(c *Codec) error {
		f, err := field.New(m, primPoly)
		if err != nil {
			return err
		}
		c.f = f
		return nil
	}
}

// WithFirstRoot sets the exponent of the first generator root (default 1,
// giving consecutive roots alpha^1 .. alpha^(n-k)).
func WithFirstRoot(fcr int) Option {
	return func(c *Codec) error {
		if fcr < 0 {
			return fmt.Errorf("first root exponent must not be negative, got %d", fcr)
		}
		c.firstRoot = fcr
		return nil
	}
}

// NewCodec builds a codec for codewords of n symbols carrying k data
// symbols. It fails with ErrInvalidParameters unless 0 < k < n and n fits
// the field's nonzero symbol range.
func NewCodec(n, k int, opts ...Option) (*Codec, error) {
	f, err := field.New(defaultM, defaultPrimPoly)
	if err != nil {
		return nil, err
	}
	c := &Codec{n: n, k: k, firstRoot: defaultFirstRoot, f: f}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if k <= 0 || n <= k {
		return nil, fmt.Errorf("need 0 < k < n, got n=%d k=%d: %w", n, k, ErrInvalidParameters)
	}
	if n > c.f.Size()-1 {
		return nil, fmt.Errorf("n=%d exceeds the %d nonzero elements of GF(2^%d): %w",
			n, c.f.Size()-1, c.f.M(), ErrInvalidParameters)
	}

	c.t = (n - k) / 2
	c.gen, err = Generator(c.f, n-k, c.firstRoot)
	if err != nil {
		return nil, err
	}

	log.Debugw("codec ready", "n", n, "k", k, "t", c.t, "m", c.f.M())
	return c, nil
}

// Generator builds the monic generator polynomial of degree numRoots with
// the consecutive roots alpha^firstRoot .. alpha^(firstRoot+numRoots-1). It
// fails with ErrGeneratorConstruction if any root repeats, which can only
// happen when numRoots spans more than the field's nonzero elements.
func Generator(f *field.Field, numRoots, firstRoot int) ([]byte, error) {
	if numRoots <= 0 {
		return nil, fmt.Errorf("generator needs at least one root, got %d: %w", numRoots, ErrInvalidParameters)
	}
	g := []byte{1}
	seen := make(map[byte]struct{}, numRoots)
	for i := 0; i < numRoots; i++ {
		root := f.Exp(firstRoot + i)
		if _, dup := seen[root]; dup {
			return nil, fmt.Errorf("root alpha^%d repeats an earlier root: %w", firstRoot+i, ErrGeneratorConstruction)
		}
		seen[root] = struct{}{}
		g = f.PolyMul(g, []byte{1, root})
	}
	return g, nil
}

// N returns the codeword length.
func (c *Codec) N() int { return c.n }

// K returns the number of data symbols per codeword.
func (c *Codec) K() int { return c.k }

// T returns the number of symbol errors the codec can correct per block.
func (c *Codec) T() int { return c.t }

// Field returns the codec's Galois field.
func (c *Codec) Field() *field.Field { return c.f }

package rs

import (
	"fmt"

	"github.com/ShamindaKanchana/RS-codes/dna"
	"github.com/ShamindaKanchana/RS-codes/field"
)

// Decode corrects up to t substitution errors in a received block. seq must
// be exactly k bases and ecc exactly n-k parity symbols from Encode. It
// returns the corrected uppercase data portion and the number of symbols
// corrected, or ErrUncorrectable when the error count exceeds the code's
// capability. A successful decode means "corrected to a valid codeword";
// beyond t errors the result may be a different codeword than the original.
func (c *Codec) Decode(seq string, ecc []byte) (string, int, error) {
	if len(seq) != c.k {
		return "", 0, fmt.Errorf("got %d bases, want %d: %w", len(seq), c.k, ErrInvalidBlockLength)
	}
	if len(ecc) != c.n-c.k {
		return "", 0, fmt.Errorf("got %d parity symbols, want %d: %w", len(ecc), c.n-c.k, ErrInvalidBlockLength)
	}
	msg, err := dna.ToSymbols(seq)
	if err != nil {
		return "", 0, err
	}

	recv := make([]byte, c.n)
	copy(recv, msg)
	for i, s := range ecc {
		if !c.f.Contains(s) {
			return "", 0, fmt.Errorf("parity symbol %d at position %d: %w", s, i, field.ErrInvalidSymbol)
		}
		recv[c.k+i] = s
	}

	corrected, fixed, err := c.correct(recv)
	if err != nil {
		return "", 0, err
	}
	out, err := dna.ToDNA(corrected[:c.k])
	if err != nil {
		// The corrected codeword is valid over the field but its data
		// portion left the 2-bit DNA range, so the block held more errors
		// than the code could repair.
		return "", 0, fmt.Errorf("corrected data is not a DNA sequence: %w", ErrUncorrectable)
	}
	return out, fixed, nil
}

// correct runs syndrome decoding over a full codeword.
func (c *Codec) correct(recv []byte) ([]byte, int, error) {
	synd := c.syndromes(recv)
	if allZero(synd) {
		return recv, 0, nil
	}

	errLoc, err := c.errorLocator(synd)
	if err != nil {
		return nil, 0, err
	}
	positions, err := c.errorPositions(reversed(errLoc), len(recv))
	if err != nil {
		return nil, 0, err
	}
	out, err := c.correctErrata(recv, synd, positions)
	if err != nil {
		return nil, 0, err
	}
	if !allZero(c.syndromes(out)) {
		return nil, 0, fmt.Errorf("residual syndromes after correction: %w", ErrUncorrectable)
	}
	return out, len(positions), nil
}

// syndromes evaluates the received polynomial at each generator root. Index
// 0 holds a padding zero so locator indexing matches the textbook recursion.
func (c *Codec) syndromes(recv []byte) []byte {
	nsym := c.n - c.k
	synd := make([]byte, nsym+1)
	for i := 0; i < nsym; i++ {
		synd[i+1] = c.f.PolyEval(recv, c.f.Exp(i+c.firstRoot))
	}
	return synd
}

// errorLocator derives the error locator polynomial from the syndromes with
// the Berlekamp-Massey algorithm. The locator's degree bounds the number of
// errors; a degree above t means the block is uncorrectable.
func (c *Codec) errorLocator(synd []byte) ([]byte, error) {
	nsym := c.n - c.k
	errLoc := []byte{1}
	oldLoc := []byte{1}
	shift := len(synd) - nsym

	for i := 0; i < nsym; i++ {
		k := i + shift
		delta := synd[k]
		for j := 1; j < len(errLoc); j++ {
			delta ^= c.f.Mul(errLoc[len(errLoc)-1-j], synd[k-j])
		}

		oldLoc = append(oldLoc, 0)
		if delta != 0 {
			if len(oldLoc) > len(errLoc) {
				newLoc := c.f.PolyScale(oldLoc, delta)
				inv, err := c.f.Inverse(delta)
				if err != nil {
					return nil, err
				}
				oldLoc = c.f.PolyScale(errLoc, inv)
				errLoc = newLoc
			}
			errLoc = c.f.PolyAdd(errLoc, c.f.PolyScale(oldLoc, delta))
		}
	}

	for len(errLoc) > 0 && errLoc[0] == 0 {
		errLoc = errLoc[1:]
	}
	if errs := len(errLoc) - 1; errs*2 > nsym {
		return nil, fmt.Errorf("locator degree %d exceeds capability t=%d: %w", errs, c.t, ErrUncorrectable)
	}
	return errLoc, nil
}

// errorPositions finds the locator's roots by exhaustive evaluation over the
// codeword positions (Chien search; the field is small enough for brute
// force). A mismatch between root count and locator degree means the errors
// were detected but cannot be located.
func (c *Codec) errorPositions(locRev []byte, n int) ([]int, error) {
	var positions []int
	for i := 0; i < n; i++ {
		if c.f.PolyEval(locRev, c.f.Exp(i)) == 0 {
			positions = append(positions, n-1-i)
		}
	}
	if len(positions) != len(locRev)-1 {
		return nil, fmt.Errorf("locator degree %d but %d roots found: %w", len(locRev)-1, len(positions), ErrUncorrectable)
	}
	return positions, nil
}

// correctErrata computes the error magnitude at each located position with
// the Forney algorithm and adds the resulting error polynomial onto the
// received word.
func (c *Codec) correctErrata(recv, synd []byte, errPos []int) ([]byte, error) {
	// positions counted from the polynomial's low-degree end
	coefPos := make([]int, len(errPos))
	for i, p := range errPos {
		coefPos[i] = len(recv) - 1 - p
	}

	errataLoc := c.errataLocator(coefPos)
	errEval := c.errorEvaluator(reversed(synd), errataLoc, len(errataLoc)-1)

	// error locations as field elements X_i = alpha^coefPos
	locations := make([]byte, len(coefPos))
	for i, cp := range coefPos {
		locations[i] = c.f.Exp(cp)
	}

	e := make([]byte, len(recv))
	for i, xi := range locations {
		xiInv, err := c.f.Inverse(xi)
		if err != nil {
			return nil, fmt.Errorf("zero error location: %w", ErrUncorrectable)
		}

		// formal derivative of the errata locator, evaluated at 1/X_i
		locPrime := byte(1)
		for j, xj := range locations {
			if j != i {
				locPrime = c.f.Mul(locPrime, 1^c.f.Mul(xiInv, xj))
			}
		}
		if locPrime == 0 {
			return nil, fmt.Errorf("errata locator derivative is zero: %w", ErrUncorrectable)
		}

		y := c.f.Mul(c.f.Pow(xi, 1-c.firstRoot), c.f.PolyEval(errEval, xiInv))
		magnitude, err := c.f.Div(y, locPrime)
		if err != nil {
			return nil, err
		}
		e[errPos[i]] = magnitude
	}

	out := make([]byte, len(recv))
	for i := range recv {
		out[i] = recv[i] ^ e[i]
	}
	return out, nil
}

// errataLocator builds the errata locator polynomial from known coefficient
// positions: product of (1 - x*alpha^p) over the positions.
func (c *Codec) errataLocator(coefPos []int) []byte {
	loc := []byte{1}
	for _, cp := range coefPos {
		loc = c.f.PolyMul(loc, []byte{c.f.Exp(cp), 1})
	}
	return loc
}

// errorEvaluator returns Omega(x) = S(x) * Lambda(x) mod x^(degree+1), the
// numerator of the Forney magnitude formula.
func (c *Codec) errorEvaluator(syndRev, errataLoc []byte, degree int) []byte {
	prod := c.f.PolyMul(syndRev, errataLoc)
	if len(prod) > degree+1 {
		prod = prod[len(prod)-(degree+1):]
	}
	return prod
}

func allZero(p []byte) bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

func reversed(p []byte) []byte {
	r := make([]byte, len(p))
	for i, c := range p {
		r[len(p)-1-i] = c
	}
	return r
}

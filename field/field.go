package field

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when dividing by or inverting the zero element.
	ErrDivisionByZero = errors.New("division by zero in the field")

	// ErrInvalidSymbol is returned when a symbol value lies outside the field.
	ErrInvalidSymbol = errors.New("symbol value outside the field")
)

// Field implements arithmetic over the binary extension field GF(2^m) using
// precomputed log/antilog tables. Symbols are byte values in [0, 2^m-1], so
// m is limited to 8. A Field is immutable after construction and safe for
// concurrent use.
type Field struct {
	m        int
	primPoly uint16
	size     int // number of field elements, 2^m
	exp      []byte
	log      []byte
}

// New builds GF(2^m) from a primitive polynomial of degree m. The tables are
// generated by iterating the primitive element x; construction fails if the
// polynomial has the wrong degree or is not primitive.
func New(m int, primPoly uint16) (*Field, error) {
	if m < 2 || m > 8 {
		return nil, fmt.Errorf("field exponent m must be in [2, 8], got %d", m)
	}
	if primPoly>>uint(m) != 1 {
		return nil, fmt.Errorf("polynomial %#x does not have degree %d", primPoly, m)
	}

	f := &Field{
		m:        m,
		primPoly: primPoly,
		size:     1 << m,
		exp:      make([]byte, 1<<m),
		log:      make([]byte, 1<<m),
	}

	x := 1
	for i := 0; i < f.size-1; i++ {
		f.exp[i] = byte(x)
		f.log[x] = byte(i)
		x <<= 1
		if x&f.size != 0 {
			x ^= int(primPoly)
		}
		if x == 1 && i != f.size-2 {
			return nil, fmt.Errorf("polynomial %#x is not primitive over GF(2^%d)", primPoly, m)
		}
	}
	// alpha^(2^m-1) wraps around to 1
	f.exp[f.size-1] = 1

	return f, nil
}

// M returns the field exponent m.
func (f *Field) M() int { return f.m }

// Size returns the number of field elements, 2^m.
func (f *Field) Size() int { return f.size }

// Contains reports whether a is a valid symbol of the field.
func (f *Field) Contains(a byte) bool { return int(a) < f.size }

// Exp returns alpha^i, taking the exponent modulo 2^m-1.
func (f *Field) Exp(i int) byte {
	i %= f.size - 1
	if i < 0 {
		i += f.size - 1
	}
	return f.exp[i]
}

// Add returns a + b. The field has characteristic 2, so addition is XOR and
// every element is its own additive inverse.
func (f *Field) Add(a, b byte) byte { return a ^ b }

// Mul returns a * b via the log/antilog tables.
func (f *Field) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[(int(f.log[a])+int(f.log[b]))%(f.size-1)]
}

// Div returns a / b, or ErrDivisionByZero when b is zero.
func (f *Field) Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}
	return f.exp[(int(f.log[a])-int(f.log[b])+f.size-1)%(f.size-1)], nil
}

// Pow returns a^p for an arbitrary (possibly negative) integer power.
func (f *Field) Pow(a byte, p int) byte {
	if a == 0 {
		if p == 0 {
			return 1
		}
		return 0
	}
	e := (int(f.log[a]) * p) % (f.size - 1)
	if e < 0 {
		e += f.size - 1
	}
	return f.exp[e]
}

// Inverse returns the multiplicative inverse of a, or ErrDivisionByZero when
// a is zero.
func (f *Field) Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	return f.exp[(f.size-1)-int(f.log[a])], nil
}

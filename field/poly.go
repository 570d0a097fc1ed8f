package field

// Polynomial arithmetic over the field. Polynomials are byte slices with
// coefficients ordered from the highest degree down, matching the order in
// which codeword symbols travel on the wire.

// PolyAdd returns p + q. The inputs may have different lengths; the shorter
// one is aligned at the low-degree end.
func (f *Field) PolyAdd(p, q []byte) []byte {
	size := len(p)
	if len(q) > size {
		size = len(q)
	}
	r := make([]byte, size)
	copy(r[size-len(p):], p)
	for i, c := range q {
		r[i+size-len(q)] ^= c
	}
	return r
}

// PolyMul returns the product p * q.
func (f *Field) PolyMul(p, q []byte) []byte {
	r := make([]byte, len(p)+len(q)-1)
	for i, pc := range p {
		if pc == 0 {
			continue
		}
		for j, qc := range q {
			r[i+j] ^= f.Mul(pc, qc)
		}
	}
	return r
}

// PolyScale returns p scaled by the constant c.
func (f *Field) PolyScale(p []byte, c byte) []byte {
	r := make([]byte, len(p))
	for i, pc := range p {
		r[i] = f.Mul(pc, c)
	}
	return r
}

// PolyEval evaluates p at x using Horner's rule.
func (f *Field) PolyEval(p []byte, x byte) byte {
	if len(p) == 0 {
		return 0
	}
	y := p[0]
	for i := 1; i < len(p); i++ {
		y = f.Mul(y, x) ^ p[i]
	}
	return y
}

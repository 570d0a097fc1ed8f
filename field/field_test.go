package field

import (
	"errors"
	"testing"
)

func setupGF16(t *testing.T) *Field {
	t.Helper()
	f, err := New(4, 0x13)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return f
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		m    int
		poly uint16
	}{
		{"m too small", 1, 0x3},
		{"m too large", 9, 0x3ff},
		{"wrong degree", 4, 0x11d},
		{"irreducible but not primitive", 4, 0x1f}, // x^4+x^3+x^2+x+1 has order-5 roots
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.m, tt.poly); err == nil {
				t.Errorf("New(%d, %#x) should fail", tt.m, tt.poly)
			}
		})
	}

	t.Run("valid fields", func(t *testing.T) {
		for _, cfg := range []struct {
			m    int
			poly uint16
		}{
			{4, 0x13},
			{8, 0x11d},
			{3, 0xb},
		} {
			f, err := New(cfg.m, cfg.poly)
			if err != nil {
				t.Fatalf("New(%d, %#x) failed: %v", cfg.m, cfg.poly, err)
			}
			if f.Size() != 1<<cfg.m {
				t.Errorf("expected size %d, got %d", 1<<cfg.m, f.Size())
			}
		}
	})
}

func TestGF16Tables(t *testing.T) {
	f := setupGF16(t)

	// powers of alpha=2 under x^4+x+1
	wantExp := []byte{1, 2, 4, 8, 3, 6, 12, 11, 5, 10, 7, 14, 15, 13, 9}
	for i, want := range wantExp {
		if got := f.Exp(i); got != want {
			t.Errorf("Exp(%d) = %d, want %d", i, got, want)
		}
	}

	// exponents wrap modulo 2^m-1
	if got := f.Exp(15); got != 1 {
		t.Errorf("Exp(15) = %d, want 1", got)
	}
	if got := f.Exp(-1); got != 9 {
		t.Errorf("Exp(-1) = %d, want 9", got)
	}
}

func TestAdd(t *testing.T) {
	f := setupGF16(t)
	if got := f.Add(5, 9); got != 12 {
		t.Errorf("Add(5, 9) = %d, want 12", got)
	}
	for a := byte(0); a < 16; a++ {
		if f.Add(a, a) != 0 {
			t.Errorf("Add(%d, %d) should be 0 in characteristic 2", a, a)
		}
	}
}

func TestMulDivInverse(t *testing.T) {
	f := setupGF16(t)

	for a := byte(1); a < 16; a++ {
		for b := byte(1); b < 16; b++ {
			prod := f.Mul(a, b)
			if prod == 0 {
				t.Fatalf("Mul(%d, %d) = 0 for nonzero operands", a, b)
			}
			got, err := f.Div(prod, b)
			if err != nil {
				t.Fatalf("Div(%d, %d) failed: %v", prod, b, err)
			}
			if got != a {
				t.Errorf("Div(Mul(%d, %d), %d) = %d, want %d", a, b, b, got, a)
			}
		}

		inv, err := f.Inverse(a)
		if err != nil {
			t.Fatalf("Inverse(%d) failed: %v", a, err)
		}
		if f.Mul(a, inv) != 1 {
			t.Errorf("Mul(%d, Inverse(%d)) != 1", a, a)
		}
	}

	if f.Mul(0, 7) != 0 || f.Mul(7, 0) != 0 {
		t.Error("multiplication by zero should be zero")
	}
	if got, err := f.Div(0, 7); err != nil || got != 0 {
		t.Errorf("Div(0, 7) = (%d, %v), want (0, nil)", got, err)
	}
}

func TestDivisionByZero(t *testing.T) {
	f := setupGF16(t)
	if _, err := f.Div(3, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div(3, 0) error = %v, want ErrDivisionByZero", err)
	}
	if _, err := f.Inverse(0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Inverse(0) error = %v, want ErrDivisionByZero", err)
	}
}

func TestPow(t *testing.T) {
	f := setupGF16(t)

	tests := []struct {
		name string
		a    byte
		p    int
		want byte
	}{
		{"a^0", 7, 0, 1},
		{"0^0", 0, 0, 1},
		{"0^p", 0, 5, 0},
		{"alpha^4", 2, 4, 3},
		{"alpha^-1", 2, -1, 9},
		{"wraparound", 2, 15, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Pow(tt.a, tt.p); got != tt.want {
				t.Errorf("Pow(%d, %d) = %d, want %d", tt.a, tt.p, got, tt.want)
			}
		})
	}

	// Pow agrees with repeated multiplication
	for a := byte(1); a < 16; a++ {
		acc := byte(1)
		for p := 0; p < 20; p++ {
			if got := f.Pow(a, p); got != acc {
				t.Fatalf("Pow(%d, %d) = %d, want %d", a, p, got, acc)
			}
			acc = f.Mul(acc, a)
		}
	}
}

func TestContains(t *testing.T) {
	f := setupGF16(t)
	if !f.Contains(15) {
		t.Error("15 should be in GF(16)")
	}
	if f.Contains(16) {
		t.Error("16 should not be in GF(16)")
	}
}

package poly

import (
	"math/rand"
	"testing"

	"github.com/ppopth/galois/gf"
)

func randomPoly(rng *rand.Rand, field *gf.Field, maxLen int) *Poly {
	vs := make([]uint, rng.Intn(maxLen+1))
	for i := range vs {
		vs[i] = uint(rng.Intn(int(field.Base())))
	}
	return FromSlice(field, vs)
}

func TestPolyAddSub(t *testing.T) {
	f := gf.MustField(7)

	tests := []struct {
		name string
		a, b []uint
		sum  string
		diff string
	}{
		{"same_length", []uint{1, 2, 3}, []uint{6, 1, 1}, "[ 0, 3, 4 ]", "[ 2, 1, 2 ]"},
		{"cancel_leading", []uint{1, 2, 3}, []uint{1, 2, 4}, "[ 2, 4 ]", "[ 0, 0, 6 ]"},
		{"shorter_rhs", []uint{1, 2, 3}, []uint{5}, "[ 6, 2, 3 ]", "[ 3, 2, 3 ]"},
		{"zero_rhs", []uint{4, 4}, nil, "[ 4, 4 ]", "[ 4, 4 ]"},
		{"opposite", []uint{1, 2}, []uint{6, 5}, "[  ]", "[ 2, 4 ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromSlice(f, tt.a)
			b := FromSlice(f, tt.b)
			if got := a.Add(b).String(); got != tt.sum {
				t.Errorf("sum: expected %s, got %s", tt.sum, got)
			}
			if got := a.Sub(b).String(); got != tt.diff {
				t.Errorf("difference: expected %s, got %s", tt.diff, got)
			}
		})
	}
}

func TestPolySubSelfIsZero(t *testing.T) {
	f := gf.MustField(13)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		p := randomPoly(rng, f, 8)
		if !p.Sub(p).IsZero() {
			t.Errorf("p - p should be zero for %s", p)
		}
		if !p.Add(p.Neg()).IsZero() {
			t.Errorf("p + (-p) should be zero for %s", p)
		}
	}
}

func TestPolyMul(t *testing.T) {
	f := gf.MustField(5)

	// (1 + x)(1 + 4x) = 1 + 5x + 4x^2 = 1 + 4x^2 in GF(5)
	got := FromSlice(f, []uint{1, 1}).Mul(FromSlice(f, []uint{1, 4}))
	if got.String() != "[ 1, 0, 4 ]" {
		t.Errorf("expected [ 1, 0, 4 ], got %s", got)
	}

	if !FromSlice(f, []uint{1, 2}).Mul(Zero(f)).IsZero() {
		t.Errorf("multiplying by zero should give zero")
	}

	p := FromSlice(f, []uint{3, 0, 2})
	if !p.Mul(New(f, 1)).Equal(p) {
		t.Errorf("multiplying by one should be the identity")
	}
	if s := p.Scale(f.Elem(2)).String(); s != "[ 1, 0, 4 ]" {
		t.Errorf("expected [ 1, 0, 4 ], got %s", s)
	}
	if !p.Scale(f.Zero()).IsZero() {
		t.Errorf("scaling by zero should give zero")
	}
}

func TestPolyMulDegree(t *testing.T) {
	f := gf.MustField(11)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		a := randomPoly(rng, f, 6)
		b := randomPoly(rng, f, 6)
		c := a.Mul(b)
		if a.IsZero() || b.IsZero() {
			if !c.IsZero() {
				t.Errorf("product with zero should be zero")
			}
			continue
		}
		if c.Deg() != a.Deg()+b.Deg() {
			t.Errorf("deg(%s * %s) = %d, expected %d", a, b, c.Deg(), a.Deg()+b.Deg())
		}
		x := f.Elem(uint(rng.Intn(11)))
		if !c.Eval(x).Equal(a.Eval(x).Mul(b.Eval(x))) {
			t.Errorf("(a*b)(x) != a(x)*b(x) at x=%s", x)
		}
	}
}

func TestPolyEval(t *testing.T) {
	f := gf.MustField(7)
	// 2 + 3x + x^2
	p := FromSlice(f, []uint{2, 3, 1})

	expected := map[uint]uint{0: 2, 1: 6, 2: 12 % 7, 3: 20 % 7, 6: 56 % 7}
	for x, want := range expected {
		if got := p.Eval(f.Elem(x)); got.Num() != want {
			t.Errorf("p(%d) = %s, expected %d", x, got, want)
		}
	}
	if !Zero(f).Eval(f.Elem(3)).IsZero() {
		t.Errorf("zero polynomial should evaluate to zero")
	}
}

func TestPolyDivMod(t *testing.T) {
	f := gf.MustField(13)
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 100; i++ {
		a := randomPoly(rng, f, 8)
		d := randomPoly(rng, f, 4)
		if d.IsZero() {
			continue
		}
		q, r := a.DivMod(d)
		if !q.Mul(d).Add(r).Equal(a) {
			t.Fatalf("q*d + r != a for a=%s d=%s (q=%s r=%s)", a, d, q, r)
		}
		if !r.IsZero() && r.Deg() >= d.Deg() {
			t.Errorf("deg r = %d should be below deg d = %d", r.Deg(), d.Deg())
		}
	}

	// (x^2 - 1) / (x - 1) = x + 1
	q, r := FromSlice(f, []uint{12, 0, 1}).DivMod(FromSlice(f, []uint{12, 1}))
	if q.String() != "[ 1, 1 ]" || !r.IsZero() {
		t.Errorf("expected quotient [ 1, 1 ] and zero remainder, got %s and %s", q, r)
	}
}

func TestPolyDivModByZero(t *testing.T) {
	f := gf.MustField(13)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("division by the zero polynomial should panic")
		}
	}()
	FromSlice(f, []uint{1, 2}).DivMod(Zero(f))
}

func TestPolyLeadingAndCoeff(t *testing.T) {
	f := gf.MustField(7)
	p := FromSlice(f, []uint{1, 0, 5})
	if p.Leading().Num() != 5 {
		t.Errorf("expected leading 5, got %s", p.Leading())
	}
	if !p.Coeff(1).IsZero() || !p.Coeff(9).IsZero() || !p.Coeff(-1).IsZero() {
		t.Errorf("missing coefficients should be zero")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Leading of zero polynomial should panic")
		}
	}()
	Zero(f).Leading()
}

func TestPolyEqualAndClone(t *testing.T) {
	f := gf.MustField(7)
	p := FromSlice(f, []uint{1, 2, 3})
	c := p.Clone()
	if !p.Equal(c) {
		t.Errorf("clone should equal the original")
	}
	c.Coefficients()[0] = f.Elem(4)
	if p.Coefficients()[0].Num() != 1 {
		t.Errorf("clone should not share storage")
	}
	if p.Equal(c) {
		t.Errorf("modified clone should differ")
	}
	if p.Equal(FromSlice(gf.MustField(11), []uint{1, 2, 3})) {
		t.Errorf("polynomials over different fields should differ")
	}
}

package poly

import (
	"slices"
	"testing"

	"github.com/ppopth/galois/gf"
)

func setupGF5() *gf.Field {
	return gf.MustField(5)
}

// TestPolyString checks the textual rendering of each constructor
func TestPolyString(t *testing.T) {
	f := setupGF5()

	tests := []struct {
		name     string
		poly     *Poly
		expected string
	}{
		{"constant", New(f, 3), "[ 3 ]"},
		{"constant_reduced", New(f, 8), "[ 3 ]"},
		{"zero_constant", New(f, 5), "[  ]"},
		{"zero_element", FromElement(f.Elem(5)), "[  ]"},
		{"element", FromElement(f.Elem(4)), "[ 4 ]"},
		{"list", FromSlice(f, []uint{1, 2, 3, 0, 0}), "[ 1, 2, 3 ]"},
		{"list_reduced", FromSlice(f, []uint{6, 0, 7, 10}), "[ 1, 0, 2 ]"},
		{"all_zero", FromSlice(f, []uint{0, 5, 10}), "[  ]"},
		{"empty", FromSlice(f, nil), "[  ]"},
		{"zero", Zero(f), "[  ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestPolyNormalizedFromList checks the accessors of a normalized polynomial
func TestPolyNormalizedFromList(t *testing.T) {
	f := setupGF5()
	p := FromSlice(f, []uint{1, 2, 3, 0, 0})

	if p.Field() != f {
		t.Errorf("polynomial should keep its field")
	}
	if p.Len() != 3 {
		t.Errorf("expected length 3, got %d", p.Len())
	}
	if p.Deg() != 2 {
		t.Errorf("expected degree 2, got %d", p.Deg())
	}
	if p.IsZero() {
		t.Errorf("polynomial should not be zero")
	}
	if got := p.Slice(); !slices.Equal(got, []uint{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", got)
	}

	want := f.Elems([]uint{1, 2, 3})
	coeffs := p.Coefficients()
	if len(coeffs) != len(want) {
		t.Fatalf("expected %d coefficients, got %d", len(want), len(coeffs))
	}
	for i := range want {
		if !coeffs[i].Equal(want[i]) {
			t.Errorf("coefficient %d: expected %s, got %s", i, want[i], coeffs[i])
		}
	}

	elems := p.Elements()
	elems[0] = f.Elem(4)
	if p.Coefficients()[0].Num() != 1 {
		t.Errorf("Elements should return a copy")
	}
}

// TestPolyFromElementsCopies checks that the caller's slice is not retained
func TestPolyFromElementsCopies(t *testing.T) {
	f := setupGF5()
	coeffs := f.Elems([]uint{1, 2, 0})
	p := FromElements(f, coeffs)
	coeffs[0] = f.Elem(3)

	if p.Len() != 2 || p.Coefficients()[0].Num() != 1 {
		t.Errorf("expected [ 1, 2 ], got %s", p)
	}
}

// TestPolySetZero checks that SetZero yields the zero polynomial
func TestPolySetZero(t *testing.T) {
	f := setupGF5()
	p := FromSlice(f, []uint{1, 2, 3, 0, 0})
	p.SetZero()

	if !p.IsZero() {
		t.Errorf("polynomial should be zero after SetZero")
	}
	if p.Len() != 0 {
		t.Errorf("expected length 0, got %d", p.Len())
	}
	if p.String() != "[  ]" {
		t.Errorf("expected \"[  ]\", got %q", p.String())
	}
}

// TestPolyAllZeroList checks that an all-zero list is the zero polynomial
func TestPolyAllZeroList(t *testing.T) {
	f := setupGF5()
	p := FromSlice(f, []uint{0, 0, 0, 0})
	if p.Len() != 0 || !p.IsZero() {
		t.Errorf("expected zero polynomial, got %s", p)
	}
}

// TestPolyDegreeOfZero checks that the degree of zero panics
func TestPolyDegreeOfZero(t *testing.T) {
	f := setupGF5()
	p := New(f, 5)

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Deg of zero polynomial should panic")
		}
	}()
	p.Deg()
}

// TestPolyNormalize checks in-place normalization after direct edits
func TestPolyNormalize(t *testing.T) {
	f := setupGF5()
	p := FromSlice(f, []uint{1, 2, 3})

	// Zero the leading coefficient through the shared backing slice
	p.Coefficients()[2] = f.Zero()
	p.Normalize()
	if p.Deg() != 1 {
		t.Errorf("expected degree 1 after normalize, got %d", p.Deg())
	}

	p.Coefficients()[0] = f.Zero()
	p.Coefficients()[1] = f.Zero()
	p.Normalize()
	if !p.IsZero() {
		t.Errorf("expected zero polynomial, got %s", p)
	}
}

// TestMonomial checks c * x^n construction
func TestMonomial(t *testing.T) {
	f := setupGF5()
	if s := Monomial(f.Elem(2), 3).String(); s != "[ 0, 0, 0, 2 ]" {
		t.Errorf("expected \"[ 0, 0, 0, 2 ]\", got %q", s)
	}
	if !Monomial(f.Zero(), 3).IsZero() {
		t.Errorf("zero monomial should be the zero polynomial")
	}
}

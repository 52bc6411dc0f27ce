// Package poly implements polynomials with coefficients in a prime field.
//
// A Poly stores its coefficients lowest degree first and is kept normalized:
// the highest stored coefficient is never zero, so the zero polynomial is the
// empty coefficient list.
package poly

import (
	"strings"

	"github.com/ppopth/galois/gf"
)

// Poly is a polynomial over a *gf.Field. Coefficient i is the coefficient of
// x^i.
type Poly struct {
	field  *gf.Field
	coeffs []gf.Element
}

// New returns the constant polynomial v.
func New(field *gf.Field, v uint) *Poly {
	p := &Poly{
		field:  field,
		coeffs: []gf.Element{field.Elem(v)},
	}
	p.Normalize()
	return p
}

// FromElement returns the constant polynomial e over e's field.
func FromElement(e gf.Element) *Poly {
	p := &Poly{
		field:  e.Field(),
		coeffs: []gf.Element{e},
	}
	p.Normalize()
	return p
}

// FromSlice returns the polynomial whose i-th coefficient is vs[i] reduced
// into the field.
func FromSlice(field *gf.Field, vs []uint) *Poly {
	p := &Poly{
		field:  field,
		coeffs: field.Elems(vs),
	}
	p.Normalize()
	return p
}

// FromElements returns the polynomial with the given coefficients. The slice
// is copied.
func FromElements(field *gf.Field, coeffs []gf.Element) *Poly {
	p := &Poly{
		field:  field,
		coeffs: append([]gf.Element(nil), coeffs...),
	}
	p.Normalize()
	return p
}

// Zero returns the zero polynomial.
func Zero(field *gf.Field) *Poly {
	return &Poly{field: field}
}

// Monomial returns c * x^degree.
func Monomial(c gf.Element, degree int) *Poly {
	if degree < 0 {
		panic("negative degree")
	}
	coeffs := make([]gf.Element, degree+1)
	for i := range coeffs {
		coeffs[i] = c.Field().Zero()
	}
	coeffs[degree] = c
	p := &Poly{field: c.Field(), coeffs: coeffs}
	p.Normalize()
	return p
}

// Slice returns the raw coefficient values.
func (p *Poly) Slice() []uint {
	out := make([]uint, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Num()
	}
	return out
}

// Elements returns a copy of the coefficients.
func (p *Poly) Elements() []gf.Element {
	return append([]gf.Element(nil), p.coeffs...)
}

// Field returns the coefficient field.
func (p *Poly) Field() *gf.Field {
	return p.field
}

// Coefficients returns the coefficients without copying. Callers must not
// modify the returned slice.
func (p *Poly) Coefficients() []gf.Element {
	return p.coeffs
}

// Len returns the number of stored coefficients.
func (p *Poly) Len() int {
	return len(p.coeffs)
}

// Deg returns the degree of p. It panics for the zero polynomial, whose
// degree is undefined.
func (p *Poly) Deg() int {
	if len(p.coeffs) == 0 {
		panic("degree is undefined for zero polynomial")
	}
	return len(p.coeffs) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool {
	return len(p.coeffs) == 0
}

// SetZero turns p into the zero polynomial.
func (p *Poly) SetZero() {
	p.coeffs = nil
}

// Normalize drops trailing zero coefficients.
func (p *Poly) Normalize() {
	i := len(p.coeffs) - 1
	for i >= 0 && p.coeffs[i].IsZero() {
		i--
	}
	p.coeffs = p.coeffs[:i+1]
}

// String renders p as "[ c0, c1, ..., cn ]". The zero polynomial renders
// as "[  ]".
func (p *Poly) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for i, c := range p.coeffs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteString(" ]")
	return b.String()
}

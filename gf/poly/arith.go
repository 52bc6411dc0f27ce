package poly

import "github.com/ppopth/galois/gf"

// Clone returns a deep copy of p.
func (p *Poly) Clone() *Poly {
	return &Poly{field: p.field, coeffs: p.Elements()}
}

// Equal reports whether p and q have the same coefficients over the same
// field.
func (p *Poly) Equal(q *Poly) bool {
	if !p.field.Equal(q.field) || len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// Coeff returns the coefficient of x^i, which is zero beyond the degree.
func (p *Poly) Coeff(i int) gf.Element {
	if i < 0 || i >= len(p.coeffs) {
		return p.field.Zero()
	}
	return p.coeffs[i]
}

// Leading returns the coefficient of the highest power. It panics for the
// zero polynomial.
func (p *Poly) Leading() gf.Element {
	return p.coeffs[p.Deg()]
}

// Add returns p + q.
func (p *Poly) Add(q *Poly) *Poly {
	n := max(len(p.coeffs), len(q.coeffs))
	coeffs := make([]gf.Element, n)
	for i := range coeffs {
		coeffs[i] = p.Coeff(i).Add(q.Coeff(i))
	}
	r := &Poly{field: p.field, coeffs: coeffs}
	r.Normalize()
	return r
}

// Sub returns p - q.
func (p *Poly) Sub(q *Poly) *Poly {
	n := max(len(p.coeffs), len(q.coeffs))
	coeffs := make([]gf.Element, n)
	for i := range coeffs {
		coeffs[i] = p.Coeff(i).Sub(q.Coeff(i))
	}
	r := &Poly{field: p.field, coeffs: coeffs}
	r.Normalize()
	return r
}

// Neg returns -p.
func (p *Poly) Neg() *Poly {
	coeffs := make([]gf.Element, len(p.coeffs))
	for i, c := range p.coeffs {
		coeffs[i] = c.Neg()
	}
	return &Poly{field: p.field, coeffs: coeffs}
}

// Scale returns c * p.
func (p *Poly) Scale(c gf.Element) *Poly {
	if c.IsZero() {
		return Zero(p.field)
	}
	coeffs := make([]gf.Element, len(p.coeffs))
	for i, a := range p.coeffs {
		coeffs[i] = a.Mul(c)
	}
	return &Poly{field: p.field, coeffs: coeffs}
}

// Mul returns p * q.
func (p *Poly) Mul(q *Poly) *Poly {
	if p.IsZero() || q.IsZero() {
		return Zero(p.field)
	}
	coeffs := make([]gf.Element, len(p.coeffs)+len(q.coeffs)-1)
	for i := range coeffs {
		coeffs[i] = p.field.Zero()
	}
	for i, a := range p.coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range q.coeffs {
			coeffs[i+j].AddAssign(a.Mul(b))
		}
	}
	// A field has no zero divisors, so the leading term is nonzero.
	return &Poly{field: p.field, coeffs: coeffs}
}

// Eval returns p(x) using Horner's rule.
func (p *Poly) Eval(x gf.Element) gf.Element {
	result := p.field.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

// DivMod returns the quotient and remainder of p divided by d, so that
// p = q*d + r with r zero or deg r < deg d. It panics if d is zero.
func (p *Poly) DivMod(d *Poly) (q, r *Poly) {
	if d.IsZero() {
		panic("polynomial division by zero")
	}
	if len(p.coeffs) < len(d.coeffs) {
		return Zero(p.field), p.Clone()
	}

	dn := len(d.coeffs)
	rem := p.Elements()
	quot := make([]gf.Element, len(rem)-dn+1)
	leadInv := d.Leading().MulInv()

	for i := len(quot) - 1; i >= 0; i-- {
		c := rem[i+dn-1].Mul(leadInv)
		quot[i] = c
		if c.IsZero() {
			continue
		}
		for j, b := range d.coeffs {
			rem[i+j].SubAssign(c.Mul(b))
		}
	}

	q = &Poly{field: p.field, coeffs: quot}
	q.Normalize()
	r = &Poly{field: p.field, coeffs: rem[:dn-1]}
	r.Normalize()
	return q, r
}

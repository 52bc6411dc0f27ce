// Package gf implements arithmetic over prime fields GF(p) whose elements fit
// in a machine word. A Field carries a precomputed table of multiplicative
// inverses and is shared by pointer between every Element built from it.
package gf

import (
	"crypto/rand"
	"io"
	"math"
	"math/big"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("gf")

// Field represents the prime field GF(p). It is immutable once built, so a
// single *Field may be read from any number of goroutines.
type Field struct {
	base uint   // the cardinality p
	inv  []uint // inv[i] is the inverse of i; inv[0] is unused
}

// NewField builds GF(base) together with its inverse table.
//
// There is no separate primality test: the table is filled with the
// extended Euclidean algorithm and construction fails with a
// *NotAFieldError at the first element that shares a factor with base.
func NewField(base uint) (*Field, error) {
	switch base {
	case 0:
		return nil, ErrEmptyField
	case 1:
		return nil, ErrZeroField
	}
	// (base-1)^2 must fit in a signed word so that products of two elements
	// and the Euclidean intermediates never overflow.
	if uint(math.MaxInt)/(base-1) < base-1 {
		log.Debugf("rejecting GF[%d]: too large", base)
		return nil, &TooLargeFieldError{Base: base}
	}

	inv := make([]uint, base)
	inv[1] = 1
	for i := uint(2); i < base; i++ {
		if inv[i] != 0 {
			continue
		}
		y, ok := inverse(int(base), int(i))
		if !ok {
			log.Debugf("rejecting GF[%d]: %d has no inverse", base, i)
			return nil, &NotAFieldError{Base: base, Divisor: i}
		}
		inv[i] = uint(y)
		inv[y] = i
	}

	log.Debugf("constructed GF[%d]", base)
	return &Field{base: base, inv: inv}, nil
}

// MustField is like NewField but panics if base does not describe a field.
func MustField(base uint) *Field {
	f, err := NewField(base)
	if err != nil {
		panic(err)
	}
	return f
}

// inverse runs the extended Euclidean algorithm on (base, val) and returns y
// in [0, base) with val*y = 1 mod base. It reports false when
// gcd(base, val) > 1.
func inverse(base, val int) (int, bool) {
	u0, u2 := base, 0
	v0, v2 := val, 1
	for v0 > 0 {
		q := u0 / v0
		u0, v0 = v0, u0-q*v0
		u2, v2 = v2, u2-q*v2
	}
	if u0 > 1 {
		return 0, false
	}
	if u2 < 0 {
		u2 += base
	}
	return u2, true
}

// Base returns the cardinality of the field.
func (f *Field) Base() uint {
	return f.base
}

// MulInv returns the multiplicative inverse of v mod base. The second result
// is false when v is a multiple of base.
func (f *Field) MulInv(v uint) (uint, bool) {
	i := v % f.base
	if i == 0 {
		return 0, false
	}
	return f.inv[i], true
}

// Equal reports whether f and g describe the same field. Only the bases are
// compared.
func (f *Field) Equal(g *Field) bool {
	if f == g {
		return true
	}
	if f == nil || g == nil {
		return false
	}
	return f.base == g.base
}

// Zero returns the additive identity.
func (f *Field) Zero() Element {
	return Element{field: f}
}

// One returns the multiplicative identity.
func (f *Field) One() Element {
	return Element{field: f, num: 1}
}

// Elem returns v reduced into the field.
func (f *Field) Elem(v uint) Element {
	return Element{field: f, num: v % f.base}
}

// Elems reduces every value of vs into the field.
func (f *Field) Elems(vs []uint) []Element {
	out := make([]Element, len(vs))
	for i, v := range vs {
		out[i] = f.Elem(v)
	}
	return out
}

// Random returns a uniformly random element read from r. A nil r means
// crypto/rand.Reader.
func (f *Field) Random(r io.Reader) (Element, error) {
	if r == nil {
		r = rand.Reader
	}
	val, err := rand.Int(r, new(big.Int).SetUint64(uint64(f.base)))
	if err != nil {
		return Element{}, err
	}
	return Element{field: f, num: uint(val.Uint64())}, nil
}

// String returns the field in GF[p] notation.
func (f *Field) String() string {
	return "GF[" + uintString(f.base) + "]"
}

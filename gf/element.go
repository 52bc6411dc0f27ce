package gf

import (
	"cmp"
	"strconv"
)

// Element is a value of GF(p). Its raw value is always held in [0, p).
//
// Binary operations expect both operands to come from the same field. That
// is only checked when built with the gfdebug tag; mixing fields otherwise
// gives meaningless results.
//
// Methods named Raw* take a plain integer operand, which is reduced modulo p
// before use. Package-level functions RawAdd, RawSub, RawMul and RawDiv take
// the integer on the left.
type Element struct {
	field *Field
	num   uint
}

// NewElement returns v reduced into f.
func NewElement(f *Field, v uint) Element {
	return f.Elem(v)
}

// Field returns the field e belongs to.
func (e Element) Field() *Field {
	return e.field
}

// Num returns the raw value of e.
func (e Element) Num() uint {
	return e.num
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.num == 0
}

// Clone returns a copy of e.
func (e Element) Clone() Element {
	return e
}

func (e Element) String() string {
	return uintString(e.num)
}

func (e Element) check(b Element) {
	if debug && !e.field.Equal(b.field) {
		panic("elements from different fields")
	}
}

func (e Element) reduce(v uint) uint {
	return v % e.field.base
}

// Add returns e + b.
func (e Element) Add(b Element) Element {
	e.check(b)
	return Element{e.field, (e.num + b.num) % e.field.base}
}

// AddRaw returns e + v.
func (e Element) AddRaw(v uint) Element {
	return Element{e.field, (e.num + e.reduce(v)) % e.field.base}
}

// RawAdd returns v + e.
func RawAdd(v uint, e Element) Element {
	return e.AddRaw(v)
}

// AddAssign sets e to e + b.
func (e *Element) AddAssign(b Element) {
	*e = e.Add(b)
}

// AddAssignRaw sets e to e + v.
func (e *Element) AddAssignRaw(v uint) {
	*e = e.AddRaw(v)
}

// Sub returns e - b.
func (e Element) Sub(b Element) Element {
	e.check(b)
	return Element{e.field, (e.field.base + e.num - b.num) % e.field.base}
}

// SubRaw returns e - v.
func (e Element) SubRaw(v uint) Element {
	return Element{e.field, (e.field.base + e.num - e.reduce(v)) % e.field.base}
}

// RawSub is the reflected form of SubRaw: the integer is written first but
// the result is still e - v. In GF(5), RawSub(2, Elem(3)) is 1.
func RawSub(v uint, e Element) Element {
	return e.SubRaw(v)
}

// SubAssign sets e to e - b.
func (e *Element) SubAssign(b Element) {
	*e = e.Sub(b)
}

// SubAssignRaw sets e to e - v.
func (e *Element) SubAssignRaw(v uint) {
	*e = e.SubRaw(v)
}

// Neg returns the additive inverse of e.
func (e Element) Neg() Element {
	return Element{e.field, (e.field.base - e.num) % e.field.base}
}

// Mul returns e * b.
func (e Element) Mul(b Element) Element {
	e.check(b)
	return Element{e.field, e.num * b.num % e.field.base}
}

// MulRaw returns e * v.
func (e Element) MulRaw(v uint) Element {
	return Element{e.field, e.num * e.reduce(v) % e.field.base}
}

// RawMul returns v * e.
func RawMul(v uint, e Element) Element {
	return e.MulRaw(v)
}

// MulAssign sets e to e * b.
func (e *Element) MulAssign(b Element) {
	*e = e.Mul(b)
}

// MulAssignRaw sets e to e * v.
func (e *Element) MulAssignRaw(v uint) {
	*e = e.MulRaw(v)
}

// MulInv returns the multiplicative inverse of e. It panics if e is zero.
func (e Element) MulInv() Element {
	return Element{e.field, e.field.mustInv(e.num)}
}

// Div returns e / b. It panics if b is zero.
func (e Element) Div(b Element) Element {
	e.check(b)
	return Element{e.field, e.num * e.field.mustInv(b.num) % e.field.base}
}

// DivRaw returns e / v. It panics if v is a multiple of p.
func (e Element) DivRaw(v uint) Element {
	return Element{e.field, e.num * e.field.mustInv(v) % e.field.base}
}

// RawDiv returns v / e. It panics if e is zero.
func RawDiv(v uint, e Element) Element {
	return Element{e.field, e.reduce(v) * e.field.mustInv(e.num) % e.field.base}
}

// DivAssign sets e to e / b. It panics if b is zero.
func (e *Element) DivAssign(b Element) {
	*e = e.Div(b)
}

// DivAssignRaw sets e to e / v. It panics if v is a multiple of p.
func (e *Element) DivAssignRaw(v uint) {
	*e = e.DivRaw(v)
}

// Pow returns e raised to the n-th power. Pow(0) is one, including for zero.
func (e Element) Pow(n uint) Element {
	result := e.field.One()
	base := e
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

func (f *Field) mustInv(v uint) uint {
	inv, ok := f.MulInv(v)
	if !ok {
		panic("element is not invertible")
	}
	return inv
}

// Equal reports whether e and b hold the same raw value.
func (e Element) Equal(b Element) bool {
	e.check(b)
	return e.num == b.num
}

// EqualRaw reports whether e equals v reduced into the field.
func (e Element) EqualRaw(v uint) bool {
	return e.num == e.reduce(v)
}

// Cmp compares the raw values of e and b, returning -1, 0 or +1. The order
// is that of the representative integers, not a field-theoretic one.
func (e Element) Cmp(b Element) int {
	e.check(b)
	return cmp.Compare(e.num, b.num)
}

// CmpRaw compares e with v reduced into the field.
func (e Element) CmpRaw(v uint) int {
	return cmp.Compare(e.num, e.reduce(v))
}

// RawCmp compares v reduced into the field with e.
func RawCmp(v uint, e Element) int {
	return cmp.Compare(e.reduce(v), e.num)
}

// Less reports whether e orders before b. It is meant for sort.Slice and
// slices.SortFunc style callers.
func (e Element) Less(b Element) bool {
	return e.Cmp(b) < 0
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

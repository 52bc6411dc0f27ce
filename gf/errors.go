package gf

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyField is returned when constructing a field with zero elements.
	ErrEmptyField = errors.New("GF[0] is empty")

	// ErrZeroField is returned when constructing a field that would contain
	// only the additive identity.
	ErrZeroField = errors.New("GF[1] can contain only zero")

	// ErrTooLargeField is matched by every *TooLargeFieldError.
	ErrTooLargeField = errors.New("field is too large")

	// ErrNotAField is matched by every *NotAFieldError.
	ErrNotAField = errors.New("field does not exist")
)

// TooLargeFieldError reports a base whose squared maximum element does not
// fit in a signed machine word.
type TooLargeFieldError struct {
	Base uint
}

func (e *TooLargeFieldError) Error() string {
	return fmt.Sprintf("GF[%d] is too large", e.Base)
}

func (e *TooLargeFieldError) Is(target error) bool {
	return target == ErrTooLargeField
}

// NotAFieldError reports a base with a nonzero element that has no
// multiplicative inverse. Divisor is the first such element met while
// building the inverse table, which is the smallest prime factor of Base.
type NotAFieldError struct {
	Base    uint
	Divisor uint
}

func (e *NotAFieldError) Error() string {
	return fmt.Sprintf("field GF[%d] does not exist", e.Base)
}

func (e *NotAFieldError) Is(target error) bool {
	return target == ErrNotAField
}

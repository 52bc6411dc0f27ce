package poly

import (
	"errors"
	"fmt"

	"github.com/ppopth/galois/gf"
)

var (
	// ErrNoPoints is returned when interpolating an empty point set.
	ErrNoPoints = errors.New("no points to interpolate")

	// ErrDuplicatePoint is returned when two points share an x-coordinate.
	ErrDuplicatePoint = errors.New("duplicate x-coordinate")
)

// Interpolate returns the unique polynomial of degree less than len(xs) that
// passes through (xs[i], ys[i]) for every i.
func Interpolate(field *gf.Field, xs, ys []gf.Element) (*Poly, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("got %d x-coordinates and %d y-coordinates", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, ErrNoPoints
	}
	seen := make(map[uint]struct{}, len(xs))
	for _, x := range xs {
		if _, ok := seen[x.Num()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePoint, x)
		}
		seen[x.Num()] = struct{}{}
	}

	// Lagrange form: sum of y_i * prod_{j != i} (x - x_j) / (x_i - x_j)
	result := Zero(field)
	for i, xi := range xs {
		if ys[i].IsZero() {
			continue
		}
		basis := New(field, 1)
		denom := field.One()
		for j, xj := range xs {
			if j == i {
				continue
			}
			basis = basis.Mul(FromElements(field, []gf.Element{xj.Neg(), field.One()}))
			denom.MulAssign(xi.Sub(xj))
		}
		result = result.Add(basis.Scale(ys[i].Div(denom)))
	}
	return result, nil
}

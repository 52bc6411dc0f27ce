// Package shamir implements Shamir secret sharing over a prime field.
package shamir

import (
	"errors"
	"fmt"
	"io"

	"github.com/ppopth/galois/gf"
	"github.com/ppopth/galois/gf/poly"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("shamir")

var (
	// ErrNoShares is returned when combining an empty set of shares.
	ErrNoShares = errors.New("no shares to combine")

	// ErrDifferentFields is returned when shares belong to different fields.
	ErrDifferentFields = errors.New("expected shares to all be in the same field")

	// ErrDuplicateShare is returned when two shares have the same index.
	ErrDuplicateShare = errors.New("duplicate share index")

	// ErrZeroIndex is returned for a share at x = 0, which is the secret itself.
	ErrZeroIndex = errors.New("a share cannot be the secret itself")
)

// Share is the evaluation of the sharing polynomial at X.
type Share struct {
	X gf.Element
	Y gf.Element
}

// Split shares secret into n shares such that any k of them recover it. The
// shares are the evaluations at x = 1..n of a random polynomial of degree k-1
// whose constant term is the secret. A nil rand uses crypto/rand.
func Split(f *gf.Field, secret gf.Element, n, k int, rand io.Reader) ([]Share, error) {
	if k < 1 {
		return nil, fmt.Errorf("threshold must be positive, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cannot make %d shares with threshold %d", n, k)
	}
	if uint(n) >= f.Base() {
		return nil, fmt.Errorf("%s has only %d nonzero share indices, need %d", f, f.Base()-1, n)
	}
	if !secret.Field().Equal(f) {
		return nil, ErrDifferentFields
	}

	coeffs := make([]gf.Element, k)
	coeffs[0] = secret
	for i := 1; i < k; i++ {
		c, err := f.Random(rand)
		if err != nil {
			return nil, fmt.Errorf("failed to sample coefficient: %w", err)
		}
		coeffs[i] = c
	}
	p := poly.FromElements(f, coeffs)

	shares := make([]Share, n)
	for i := range shares {
		x := f.Elem(uint(i + 1))
		shares[i] = Share{X: x, Y: p.Eval(x)}
	}

	log.Debugf("split secret over %s into %d shares with threshold %d", f, n, k)
	return shares, nil
}

// Combine recovers the secret from shares by Lagrange interpolation at zero.
// With fewer shares than the threshold the result is unrelated to the secret.
func Combine(f *gf.Field, shares []Share) (gf.Element, error) {
	if len(shares) == 0 {
		return f.Zero(), ErrNoShares
	}

	seen := make(map[uint]struct{}, len(shares))
	for _, s := range shares {
		if !s.X.Field().Equal(f) || !s.Y.Field().Equal(f) {
			return f.Zero(), ErrDifferentFields
		}
		if s.X.IsZero() {
			return f.Zero(), ErrZeroIndex
		}
		if _, ok := seen[s.X.Num()]; ok {
			return f.Zero(), fmt.Errorf("%w: %s", ErrDuplicateShare, s.X)
		}
		seen[s.X.Num()] = struct{}{}
	}

	// secret = Σ y_i * Π_{j≠i} x_j / (x_j - x_i)
	secret := f.Zero()
	for i, s := range shares {
		numerator := f.One()
		denominator := f.One()
		for j, o := range shares {
			if j == i {
				continue
			}
			numerator.MulAssign(o.X)
			denominator.MulAssign(o.X.Sub(s.X))
		}
		secret.AddAssign(s.Y.Mul(numerator.Div(denominator)))
	}
	return secret, nil
}

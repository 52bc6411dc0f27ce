package shamir

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ppopth/galois/gf"
)

func TestSplitCombine(t *testing.T) {
	tests := []struct {
		name string
		base uint
		n, k int
	}{
		{"threshold one", 7, 3, 1},
		{"two of three", 7, 3, 2},
		{"all shares needed", 13, 5, 5},
		{"three of ten", 257, 10, 3},
		{"large field", 65537, 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := gf.MustField(tt.base)
			rng := rand.New(rand.NewSource(int64(tt.base)))

			for trial := 0; trial < 10; trial++ {
				secret := f.Elem(uint(rng.Intn(int(tt.base))))
				shares, err := Split(f, secret, tt.n, tt.k, rng)
				if err != nil {
					t.Fatalf("Split failed: %v", err)
				}
				if len(shares) != tt.n {
					t.Fatalf("expected %d shares, got %d", tt.n, len(shares))
				}

				// Any k shares in any order recover the secret
				perm := rng.Perm(tt.n)[:tt.k]
				subset := make([]Share, tt.k)
				for i, idx := range perm {
					subset[i] = shares[idx]
				}
				got, err := Combine(f, subset)
				if err != nil {
					t.Fatalf("Combine failed: %v", err)
				}
				if !got.Equal(secret) {
					t.Errorf("expected secret %s, got %s from shares %v", secret, got, perm)
				}

				got, err = Combine(f, shares)
				if err != nil {
					t.Fatalf("Combine failed: %v", err)
				}
				if !got.Equal(secret) {
					t.Errorf("expected secret %s from all shares, got %s", secret, got)
				}
			}
		})
	}
}

func TestCombineBelowThreshold(t *testing.T) {
	f := gf.MustField(65537)
	rng := rand.New(rand.NewSource(42))

	misses := 0
	for trial := 0; trial < 20; trial++ {
		secret := f.Elem(uint(rng.Intn(65537)))
		shares, err := Split(f, secret, 6, 4, rng)
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		got, err := Combine(f, shares[:3])
		if err != nil {
			t.Fatalf("Combine failed: %v", err)
		}
		if !got.Equal(secret) {
			misses++
		}
	}
	if misses < 15 {
		t.Errorf("three of four shares recovered the secret in %d of 20 trials", 20-misses)
	}
}

func TestSplitErrors(t *testing.T) {
	f := gf.MustField(7)
	tests := []struct {
		name   string
		secret gf.Element
		n, k   int
	}{
		{"zero threshold", f.Elem(3), 3, 0},
		{"fewer shares than threshold", f.Elem(3), 2, 3},
		{"more shares than indices", f.Elem(3), 7, 2},
		{"secret from another field", gf.MustField(11).Elem(3), 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split(f, tt.secret, tt.n, tt.k, nil); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestSplitUsesCryptoRandByDefault(t *testing.T) {
	f := gf.MustField(257)
	secret := f.Elem(99)
	shares, err := Split(f, secret, 5, 3, nil)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	got, err := Combine(f, shares[2:])
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if !got.Equal(secret) {
		t.Errorf("expected %s, got %s", secret, got)
	}
}

func TestCombineErrors(t *testing.T) {
	f := gf.MustField(7)

	if _, err := Combine(f, nil); !errors.Is(err, ErrNoShares) {
		t.Errorf("expected ErrNoShares, got %v", err)
	}

	zero := []Share{{X: f.Zero(), Y: f.Elem(1)}, {X: f.Elem(1), Y: f.Elem(2)}}
	if _, err := Combine(f, zero); !errors.Is(err, ErrZeroIndex) {
		t.Errorf("expected ErrZeroIndex, got %v", err)
	}

	duplicate := []Share{{X: f.Elem(2), Y: f.Elem(1)}, {X: f.Elem(9), Y: f.Elem(2)}}
	if _, err := Combine(f, duplicate); !errors.Is(err, ErrDuplicateShare) {
		t.Errorf("expected ErrDuplicateShare, got %v", err)
	}

	g := gf.MustField(11)
	mixed := []Share{{X: f.Elem(1), Y: f.Elem(1)}, {X: g.Elem(2), Y: g.Elem(2)}}
	if _, err := Combine(f, mixed); !errors.Is(err, ErrDifferentFields) {
		t.Errorf("expected ErrDifferentFields, got %v", err)
	}
}

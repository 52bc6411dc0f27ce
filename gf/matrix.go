package gf

import (
	"fmt"
)

// Matrix operations over GF(p)

// IsLinearlyIndependent checks if the list of element vectors is linearly
// independent.
func IsLinearlyIndependent(vectors [][]Element, field *Field) bool {
	n := len(vectors)
	if n == 0 {
		return true // empty set is vacuously independent
	}
	m := len(vectors[0])

	// More vectors than dimensions are always dependent
	if n > m {
		return false
	}

	A := copyMatrix(vectors)

	// Forward elimination only; the rank is all we need
	rank := 0
	for col := 0; col < m && rank < n; col++ {
		pivot := -1
		for i := rank; i < n; i++ {
			if !A[i][col].IsZero() {
				pivot = i
				break
			}
		}
		if pivot == -1 {
			continue
		}

		if pivot != rank {
			A[rank], A[pivot] = A[pivot], A[rank]
		}

		for i := rank + 1; i < n; i++ {
			if A[i][col].IsZero() {
				continue
			}
			factor := A[i][col].Div(A[rank][col])
			for j := col; j < m; j++ {
				A[i][j].SubAssign(factor.Mul(A[rank][j]))
			}
		}
		rank++
	}

	return rank == n
}

// IsLinearlyIndependentIncremental checks whether newVector is independent of
// the rows of existing, which must be in row echelon form sorted by pivot
// column. On success it returns a new echelon matrix containing the reduced
// newVector at its sorted position. existing is not modified.
func IsLinearlyIndependentIncremental(existing [][]Element, newVector []Element, field *Field) ([][]Element, bool) {
	n := len(existing)
	m := len(newVector)

	// m independent vectors already span the space
	if n >= m {
		return nil, false
	}

	reduced := make([]Element, m)
	copy(reduced, newVector)

	for i := 0; i < n; i++ {
		col := pivotColumn(existing[i])
		if col == -1 || reduced[col].IsZero() {
			continue
		}
		factor := reduced[col].Div(existing[i][col])
		for j := col; j < m; j++ {
			reduced[j].SubAssign(factor.Mul(existing[i][j]))
		}
	}

	pivot := pivotColumn(reduced)
	if pivot == -1 {
		return nil, false
	}

	insertPos := n
	for i := 0; i < n; i++ {
		if pivot < pivotColumn(existing[i]) {
			insertPos = i
			break
		}
	}

	echelon := make([][]Element, 0, n+1)
	echelon = append(echelon, copyMatrix(existing[:insertPos])...)
	echelon = append(echelon, reduced)
	echelon = append(echelon, copyMatrix(existing[insertPos:])...)
	return echelon, true
}

// pivotColumn returns the index of the first nonzero entry of row, or -1.
func pivotColumn(row []Element) int {
	for j, e := range row {
		if !e.IsZero() {
			return j
		}
	}
	return -1
}

// InvertMatrix computes the inverse of an n x n matrix over the field using
// Gauss-Jordan elimination.
func InvertMatrix(A [][]Element, field *Field) ([][]Element, error) {
	n := len(A)
	inv := Identity(n, field)
	B := copyMatrix(A)

	for i := 0; i < n; i++ {
		if len(B[i]) != n {
			return nil, fmt.Errorf("matrix is not square: row %d has %d columns, want %d", i, len(B[i]), n)
		}
	}

	for i := 0; i < n; i++ {
		// Find a non-zero pivot in column i
		pivot := -1
		for k := i; k < n; k++ {
			if !B[k][i].IsZero() {
				pivot = k
				break
			}
		}
		if pivot == -1 {
			return nil, fmt.Errorf("matrix not invertible")
		}

		if pivot != i {
			B[i], B[pivot] = B[pivot], B[i]
			inv[i], inv[pivot] = inv[pivot], inv[i]
		}

		// Normalize the pivot row
		invPivot := B[i][i].MulInv()
		for j := 0; j < n; j++ {
			B[i][j].MulAssign(invPivot)
			inv[i][j].MulAssign(invPivot)
		}

		// Eliminate the pivot column from every other row
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			factor := B[k][i]
			if factor.IsZero() {
				continue
			}
			for j := 0; j < n; j++ {
				B[k][j].SubAssign(factor.Mul(B[i][j]))
				inv[k][j].SubAssign(factor.Mul(inv[i][j]))
			}
		}
	}
	return inv, nil
}

// MatrixMultiply computes A × B over the field. A is m×n, B is n×p and the
// result is m×p.
func MatrixMultiply(A, B [][]Element, field *Field) [][]Element {
	if len(A) == 0 || len(B) == 0 {
		return nil
	}

	m := len(A)
	n := len(A[0])
	p := len(B[0])

	if len(B) != n {
		panic(fmt.Sprintf("matrix dimensions mismatch: A is %d×%d, B is %d×%d", m, n, len(B), p))
	}

	C := make([][]Element, m)
	for i := range C {
		C[i] = make([]Element, p)
		for j := 0; j < p; j++ {
			sum := field.Zero()
			for k := 0; k < n; k++ {
				sum.AddAssign(A[i][k].Mul(B[k][j]))
			}
			C[i][j] = sum
		}
	}
	return C
}

// RecoverVectors solves V = A⁻¹ * R, where A is the coefficient matrix and R
// the combined vectors.
func RecoverVectors(A [][]Element, R [][]Element, field *Field) ([][]Element, error) {
	if len(A) != len(R) {
		return nil, fmt.Errorf("coefficient matrix has %d rows but %d vectors were given", len(A), len(R))
	}
	Ainv, err := InvertMatrix(A, field)
	if err != nil {
		return nil, err
	}
	return MatrixMultiply(Ainv, R, field), nil
}

// Identity returns the n×n identity matrix.
func Identity(n int, field *Field) [][]Element {
	I := make([][]Element, n)
	for i := range I {
		I[i] = make([]Element, n)
		for j := range I[i] {
			if i == j {
				I[i][j] = field.One()
			} else {
				I[i][j] = field.Zero()
			}
		}
	}
	return I
}

// Vandermonde returns the matrix V with V[i][j] = points[i]^j and cols
// columns.
func Vandermonde(points []Element, cols int, field *Field) [][]Element {
	V := make([][]Element, len(points))
	for i, x := range points {
		V[i] = make([]Element, cols)
		power := field.One()
		for j := 0; j < cols; j++ {
			V[i][j] = power
			power = power.Mul(x)
		}
	}
	return V
}

func copyMatrix(A [][]Element) [][]Element {
	B := make([][]Element, len(A))
	for i := range A {
		B[i] = make([]Element, len(A[i]))
		copy(B[i], A[i])
	}
	return B
}

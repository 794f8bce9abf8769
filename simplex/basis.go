package simplex

import (
	"fmt"
	"slices"
)

// Basis is a sorted set of distinct column indices.
type Basis struct {
	idx []int
}

// NewBasis returns the basis made of cols. Negative or repeated indices are rejected.
func NewBasis(cols ...int) (*Basis, error) {
	idx := slices.Clone(cols)
	slices.Sort(idx)
	for i, c := range idx {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative column %d", ErrInvalidBasis, c)
		}
		if i > 0 && idx[i-1] == c {
			return nil, fmt.Errorf("%w: column %d repeated", ErrInvalidBasis, c)
		}
	}
	return &Basis{idx: idx}, nil
}

func (b *Basis) Len() int {
	return len(b.idx)
}

// At returns the i-th smallest column of the basis.
func (b *Basis) At(i int) int {
	return b.idx[i]
}

// Indices returns a copy of the columns in ascending order.
func (b *Basis) Indices() []int {
	return slices.Clone(b.idx)
}

func (b *Basis) Contains(col int) bool {
	_, ok := slices.BinarySearch(b.idx, col)
	return ok
}

func (b *Basis) Clone() *Basis {
	return &Basis{idx: slices.Clone(b.idx)}
}

// Replace removes leaving and inserts entering, keeping the order.
func (b *Basis) Replace(leaving, entering int) error {
	pos, ok := slices.BinarySearch(b.idx, leaving)
	if !ok {
		return fmt.Errorf("%w: column %d is not basic", ErrInvalidBasisState, leaving)
	}
	if leaving != entering && b.Contains(entering) {
		return fmt.Errorf("%w: column %d is already basic", ErrInvalidBasisState, entering)
	}

	b.idx = slices.Delete(b.idx, pos, pos+1)
	at, _ := slices.BinarySearch(b.idx, entering)
	b.idx = slices.Insert(b.idx, at, entering)
	return nil
}

func (b *Basis) String() string {
	return fmt.Sprint(b.idx)
}

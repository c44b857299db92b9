// Package stock tracks the raw material available for a cutting run and
// checks whether a cut list can possibly be served from it.
package stock

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidStock indicates a non-positive stock length or a negative piece count.
	ErrInvalidStock = errors.New("stock length must be positive and count non-negative")
	// ErrInsufficientStock indicates the requested cuts add up to more than the available stock.
	ErrInsufficientStock = errors.New("not enough stock")
)

// Stock describes a batch of identical stock pieces.
type Stock struct {
	length int
	count  int
}

// New validates and returns a Stock of count pieces, each length long. The
// combined length must fit in an int.
func New(length, count int) (Stock, error) {
	if length <= 0 || count < 0 {
		return Stock{}, fmt.Errorf("%w: length=%d count=%d", ErrInvalidStock, length, count)
	}
	if count > math.MaxInt/length {
		return Stock{}, fmt.Errorf("%w: total of %d x %d overflows", ErrInvalidStock, count, length)
	}
	return Stock{length: length, count: count}, nil
}

// Length returns the length of a single piece.
func (s Stock) Length() int {
	return s.length
}

// Count returns the number of pieces on hand.
func (s Stock) Count() int {
	return s.count
}

// Total returns the combined length of all pieces.
func (s Stock) Total() int {
	return s.length * s.count
}

// Check fails with ErrInsufficientStock when the cuts add up to more than
// Total. Passing the check does not mean the cuts can be packed into Count
// pieces.
func (s Stock) Check(cuts []int) error {
	return s.CheckTotal(Sum(cuts))
}

// CheckTotal is Check for a precomputed total cut length.
func (s Stock) CheckTotal(requested int) error {
	if requested > s.Total() {
		return fmt.Errorf("%w: requested %d exceeds available %d", ErrInsufficientStock, requested, s.Total())
	}
	return nil
}

// MinBins returns the lower bound on pieces needed for totalRequested,
// ceil(totalRequested / length).
func (s Stock) MinBins(totalRequested int) int {
	if totalRequested <= 0 {
		return 0
	}
	return (totalRequested + s.length - 1) / s.length
}

func (s Stock) String() string {
	return fmt.Sprintf("Stock(length=%d, count=%d, total=%d)", s.length, s.count, s.Total())
}

// Sum adds up cut lengths.
func Sum(cuts []int) int {
	total := 0
	for _, c := range cuts {
		total += c
	}
	return total
}

package packer

import (
	"cmp"
	"fmt"
	"slices"
)

type ffdPacker struct{}

// New creates a Packer based on First Fit Decreasing.
func New() Packer {
	return &ffdPacker{}
}

func (p *ffdPacker) Pack(values []int, binSize int) ([]*Bin, error) {
	return Pack(values, binSize)
}

// Pack places values into bins of binSize, largest first.
//
// Only the most recently opened bin is considered for each value, and a value
// fits only when it leaves the bin strictly below capacity. A value that would
// fill the bin exactly opens a new one.
func Pack(values []int, binSize int) ([]*Bin, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if largest := slices.Max(values); largest > binSize {
		return nil, fmt.Errorf("%w: cut %d exceeds bin size %d", ErrCapacityTooSmall, largest, binSize)
	}

	cuts := slices.Clone(values)
	slices.SortFunc(cuts, func(a, b int) int { return cmp.Compare(b, a) })

	first, err := NewBin(binSize)
	if err != nil {
		return nil, err
	}
	bins := []*Bin{first}

	for _, cut := range cuts {
		current := bins[len(bins)-1]
		if current.used+cut < current.capacity {
			current.Add(cut)
			continue
		}

		next, err := NewBin(binSize)
		if err != nil {
			return nil, err
		}
		next.Add(cut)
		bins = append(bins, next)
	}

	return bins, nil
}

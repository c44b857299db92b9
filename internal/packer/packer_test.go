package packer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestPack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		values  []int
		binSize int
		want    [][]int
	}{
		{
			name:    "SingleBin",
			values:  []int{10, 20, 20},
			binSize: 60,
			want:    [][]int{{20, 20, 10}},
		},
		{
			name:    "DescendingRun",
			values:  []int{10, 20, 30, 40, 50},
			binSize: 60,
			want:    [][]int{{50}, {40}, {30, 20}, {10}},
		},
		{
			name:    "ExactFillOpensNewBin",
			values:  []int{20, 20, 20, 20},
			binSize: 40,
			want:    [][]int{{20}, {20}, {20}, {20}},
		},
		{
			name:    "OnlyLastBinIsConsidered",
			values:  []int{5, 25, 30, 50},
			binSize: 60,
			want:    [][]int{{50}, {30, 25}, {5}},
		},
		{
			name:    "CutEqualToBinSizeLeavesFirstBinEmpty",
			values:  []int{60},
			binSize: 60,
			want:    [][]int{{}, {60}},
		},
		{
			name:    "RepeatedCuts",
			values:  []int{3, 3, 3, 7, 7, 10},
			binSize: 15,
			want:    [][]int{{10}, {7, 7}, {3, 3, 3}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bins, err := Pack(tc.values, tc.binSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(bins) != len(tc.want) {
				t.Fatalf("expected %d bins, got %d: %v", len(tc.want), len(bins), bins)
			}
			for i, want := range tc.want {
				if got := bins[i].Items(); !slices.Equal(got, want) {
					t.Fatalf("bin %d: expected %v, got %v", i, want, got)
				}
				if bins[i].Capacity() != tc.binSize {
					t.Fatalf("bin %d: expected capacity %d, got %d", i, tc.binSize, bins[i].Capacity())
				}
			}
		})
	}
}

func TestPack_SingleBinTotals(t *testing.T) {
	t.Parallel()

	bins, err := Pack([]int{10, 20, 20}, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bins) != 1 {
		t.Fatalf("expected 1 bin, got %d", len(bins))
	}
	if bins[0].Used() != 50 {
		t.Fatalf("expected used 50, got %d", bins[0].Used())
	}
}

func TestPack_UsedDistribution(t *testing.T) {
	t.Parallel()

	bins, err := Pack([]int{10, 20, 30, 40, 50}, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	used := make([]int, 0, len(bins))
	for _, b := range bins {
		used = append(used, b.Used())
	}

	if want := []int{50, 40, 50, 10}; !slices.Equal(used, want) {
		t.Fatalf("expected used totals %v in creation order, got %v", want, used)
	}

	slices.SortFunc(used, func(a, b int) int { return b - a })
	if want := []int{50, 50, 40, 10}; !slices.Equal(used, want) {
		t.Fatalf("expected used distribution %v, got %v", want, used)
	}
}

func TestPack_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, binSize := range []int{-1, 0, 1, 60} {
		if _, err := Pack(nil, binSize); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("expected ErrEmptyInput for bin size %d, got %v", binSize, err)
		}
		if _, err := Pack([]int{}, binSize); !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("expected ErrEmptyInput for bin size %d, got %v", binSize, err)
		}
	}
}

func TestPack_CapacityTooSmall(t *testing.T) {
	t.Parallel()

	cases := []struct {
		values  []int
		binSize int
	}{
		{values: []int{61}, binSize: 60},
		{values: []int{10, 20, 70}, binSize: 60},
		{values: []int{1}, binSize: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("%v/%d", tc.values, tc.binSize), func(t *testing.T) {
			t.Parallel()
			if _, err := Pack(tc.values, tc.binSize); !errors.Is(err, ErrCapacityTooSmall) {
				t.Fatalf("expected ErrCapacityTooSmall, got %v", err)
			}
		})
	}
}

func TestPack_NonPositiveBinSize(t *testing.T) {
	t.Parallel()

	if _, err := Pack([]int{0}, 0); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestPack_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	values := []int{10, 50, 30}
	if _, err := Pack(values, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{10, 50, 30}; !slices.Equal(values, want) {
		t.Fatalf("expected input %v to be untouched, got %v", want, values)
	}
}

func TestPack_Deterministic(t *testing.T) {
	t.Parallel()

	values := []int{12, 7, 33, 7, 18, 25, 3, 40, 12}
	first, err := Pack(values, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for run := 0; run < 5; run++ {
		again, err := Pack(values, 50)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: expected %d bins, got %d", run, len(first), len(again))
		}
		for i := range first {
			if !slices.Equal(first[i].Items(), again[i].Items()) {
				t.Fatalf("run %d bin %d: expected %v, got %v", run, i, first[i].Items(), again[i].Items())
			}
		}
	}
}

func TestPack_RandomizedInvariants(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(0, 42))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.IntN(40)
		binSize := 20 + rng.IntN(100)
		values := make([]int, n)
		for i := range values {
			values[i] = 1 + rng.IntN(binSize)
		}

		bins, err := Pack(values, binSize)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", iter, err)
		}

		assertConservation(t, values, bins)

		for i, b := range bins {
			if b.Used() > b.Capacity() {
				t.Fatalf("iteration %d: bin %d over capacity: %s", iter, i, b)
			}
			if i+1 < len(bins) {
				opener := bins[i+1].Items()[0]
				if b.Used()+opener < b.Capacity() {
					t.Fatalf("iteration %d: cut %d would have fit in bin %d (%s)", iter, opener, i, b)
				}
			}
		}
	}
}

func TestNewReturnsPacker(t *testing.T) {
	t.Parallel()

	bins, err := New().Pack([]int{10, 20, 20}, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bins) != 1 || bins[0].Used() != 50 {
		t.Fatalf("unexpected packing: %v", bins)
	}
}

func assertConservation(t *testing.T, values []int, bins []*Bin) {
	t.Helper()

	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	for _, b := range bins {
		sum := 0
		for _, item := range b.Items() {
			counts[item]--
			sum += item
		}
		if sum != b.Used() {
			t.Fatalf("bin used %d does not match item sum %d", b.Used(), sum)
		}
	}
	for v, c := range counts {
		if c != 0 {
			t.Fatalf("value %d off by %d after packing", v, c)
		}
	}
}

func BenchmarkPackSmall(b *testing.B) {
	values := []int{10, 20, 30, 40, 50, 15, 25, 35}
	for i := 0; i < b.N; i++ {
		if _, err := Pack(values, 60); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkPackLarge(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	values := make([]int, 10_000)
	for i := range values {
		values[i] = 1 + rng.IntN(150)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Pack(values, 150); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
